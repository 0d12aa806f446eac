package bulksms

import (
	"context"

	"github.com/s0up4200/bulksms/result"
)

// MessagingService sends SMS and reports on their delivery.
type MessagingService struct {
	client *Client
}

// SendSafe sends a quick SMS to one or more recipients.
func (s *MessagingService) SendSafe(ctx context.Context, req SendSMSRequest) Result[*SendSMSResponse] {
	ep := EndpointSendSMS
	if err := req.validate(); err != nil {
		return failure[*SendSMSResponse](validationError(err.Error(), ep.context()))
	}

	r := s.client.call(ctx, ep, nil, req, nil)
	return result.AndThen(r, decodeOne(ep, "SendSMS", isSendSMSResponse, normalizeSendSMSResponse))
}

// Send is SendSafe using the (value, error) convention.
func (s *MessagingService) Send(ctx context.Context, req SendSMSRequest) (*SendSMSResponse, error) {
	return s.SendSafe(ctx, req).Unwrap()
}

// StatusSafe returns the delivery reports of a sent message, one per
// recipient.
func (s *MessagingService) StatusSafe(ctx context.Context, messageID string) Result[[]DeliveryReport] {
	ep := EndpointSMSStatus
	r := s.client.call(ctx, ep, map[string]string{"messageId": messageID}, nil, nil)
	return result.AndThen(r, func(raw any) Result[[]DeliveryReport] {
		if _, isList := unwrapList(raw, "reports", "report"); isList {
			return decodeList(ep, "DeliveryReport", isDeliveryReport, normalizeDeliveryReport, "reports", "report")(raw)
		}
		single := decodeOne(ep, "DeliveryReport", isDeliveryReport, normalizeDeliveryReport, "report")(raw)
		return result.Map(single, func(d *DeliveryReport) []DeliveryReport {
			return []DeliveryReport{*d}
		})
	})
}

// Status is StatusSafe using the (value, error) convention.
func (s *MessagingService) Status(ctx context.Context, messageID string) ([]DeliveryReport, error) {
	return s.StatusSafe(ctx, messageID).Unwrap()
}
