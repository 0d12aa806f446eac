package bulksms

import (
	"context"
	"net/http"
	"strings"

	"github.com/s0up4200/bulksms/result"
)

// AccountService exposes balance and sender identity operations.
type AccountService struct {
	client *Client
}

// BalanceSafe returns the remaining SMS credit.
func (s *AccountService) BalanceSafe(ctx context.Context) Result[*BalanceResponse] {
	ep := EndpointBalance
	r := s.client.call(ctx, ep, nil, nil, nil)
	return result.AndThen(r, decodeOne(ep, "Balance", isBalance, normalizeBalance, "balance"))
}

// Balance is BalanceSafe using the (value, error) convention.
func (s *AccountService) Balance(ctx context.Context) (*BalanceResponse, error) {
	return s.BalanceSafe(ctx).Unwrap()
}

// RegisterSenderSafe submits a sender identity for approval.
func (s *AccountService) RegisterSenderSafe(ctx context.Context, req RegisterSenderRequest) Result[*SenderID] {
	ep := EndpointRegisterSender
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Purpose) == "" {
		return failure[*SenderID](validationError("sender name and purpose are required", ep.context()))
	}

	r := s.client.call(ctx, ep, nil, req, nil)
	return result.AndThen(r, decodeOne(ep, "SenderId", isSenderID, normalizeSenderID, "sender"))
}

// RegisterSender is RegisterSenderSafe using the (value, error) convention.
func (s *AccountService) RegisterSender(ctx context.Context, req RegisterSenderRequest) (*SenderID, error) {
	return s.RegisterSenderSafe(ctx, req).Unwrap()
}

// SenderStatusSafe returns the approval state of one sender identity.
func (s *AccountService) SenderStatusSafe(ctx context.Context, senderName string) Result[*SenderID] {
	ep := EndpointSenderStatus
	r := s.client.call(ctx, ep, map[string]string{"senderId": senderName}, nil, nil)
	return result.AndThen(r, decodeOne(ep, "SenderId", isSenderID, normalizeSenderID, "sender"))
}

// SenderStatus is SenderStatusSafe using the (value, error) convention.
func (s *AccountService) SenderStatus(ctx context.Context, senderName string) (*SenderID, error) {
	return s.SenderStatusSafe(ctx, senderName).Unwrap()
}

// ListSendersSafe always fails: the API has no endpoint listing every
// registered sender. Query each sender with SenderStatusSafe instead.
func (s *AccountService) ListSendersSafe(ctx context.Context) Result[[]SenderID] {
	return failure[[]SenderID](NewError(
		"listing sender IDs is not supported by the API; use SenderStatus with a sender name instead",
		http.StatusBadRequest,
		WithErrorContext(ErrorContext{
			Service:   "account",
			Operation: "listSenders",
			Stage:     StageValidation,
			Method:    http.MethodGet,
			Path:      EndpointSenderStatus.Path,
		}),
	))
}

// ListSenders is ListSendersSafe using the (value, error) convention.
func (s *AccountService) ListSenders(ctx context.Context) ([]SenderID, error) {
	return s.ListSendersSafe(ctx).Unwrap()
}
