package bulksms

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/s0up4200/bulksms/result"
)

// Result is the calling convention of every Safe operation.
type Result[T any] = result.Result[T, *Error]

func success[T any](v T) Result[T] {
	return result.Ok[T, *Error](v)
}

func failure[T any](e *Error) Result[T] {
	return result.Err[T](e)
}

// StatusPending is the status assumed when the API omits one.
const StatusPending = "pending"

// Recipients is a list of phone numbers. When decoded from JSON it accepts
// either a single string or an array; it always encodes as an array.
type Recipients []string

// UnmarshalJSON implements json.Unmarshaler
func (r *Recipients) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*r = Recipients{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("recipients must be a string or an array of strings: %w", err)
	}
	*r = many
	return nil
}

// MarshalJSON implements json.Marshaler
func (r Recipients) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(r))
}

// SendSMSRequest describes a quick SMS.
type SendSMSRequest struct {
	Recipients   Recipients `json:"recipient"`
	Sender       string     `json:"sender"`
	Message      string     `json:"message"`
	IsSchedule   bool       `json:"is_schedule"`
	ScheduleDate string     `json:"schedule_date,omitempty"`
}

func (r SendSMSRequest) validate() error {
	fields := map[string]any{}
	if len(r.Recipients) > 0 {
		fields["recipient"] = []string(r.Recipients)
	}
	if strings.TrimSpace(r.Sender) != "" {
		fields["sender"] = r.Sender
	}
	if strings.TrimSpace(r.Message) != "" {
		fields["message"] = r.Message
	}
	if r.ScheduleDate != "" {
		fields["schedule_date"] = r.ScheduleDate
	}

	required := []string{"recipient", "sender", "message"}
	if r.IsSchedule {
		required = append(required, "schedule_date")
	}
	return validateRequired(fields, required...)
}

// SendSummary is the per-send accounting returned by the API.
type SendSummary struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	TotalSent     int      `json:"total_sent"`
	Contacts      int      `json:"contacts"`
	TotalRejected int      `json:"total_rejected"`
	NumbersSent   []string `json:"numbers_sent"`
	CreditUsed    float64  `json:"credit_used"`
	CreditLeft    float64  `json:"credit_left"`
}

// SendSMSResponse is the result of a send.
type SendSMSResponse struct {
	Status  string      `json:"status"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Summary SendSummary `json:"summary"`
}

// DeliveryReport is the delivery state of one sent message.
type DeliveryReport struct {
	ID          string `json:"id"`
	Recipient   string `json:"recipient"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	SentAt      string `json:"sent_at,omitempty"`
	DeliveredAt string `json:"delivered_at,omitempty"`
}

// IsDelivered reports whether the carrier confirmed delivery.
func (d *DeliveryReport) IsDelivered() bool {
	return strings.EqualFold(d.Status, "delivered")
}

// Contact is a phonebook entry.
type Contact struct {
	ID        string `json:"id"`
	Phone     string `json:"phone"`
	Title     string `json:"title,omitempty"`
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
	Email     string `json:"email,omitempty"`
	DOB       string `json:"dob,omitempty"`
	GroupID   string `json:"group_id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// DisplayName returns the best available name for the contact
func (c *Contact) DisplayName() string {
	name := strings.TrimSpace(strings.Join([]string{c.Title, c.FirstName, c.LastName}, " "))
	if name != "" {
		return name
	}
	return c.Phone
}

// CreateContactRequest is the payload for creating a contact in a group.
type CreateContactRequest struct {
	GroupID   string `json:"-"`
	Phone     string `json:"phone"`
	Title     string `json:"title,omitempty"`
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
	Email     string `json:"email,omitempty"`
	DOB       string `json:"dob,omitempty"`
}

// ListContactsOptions narrows a contact listing.
type ListContactsOptions struct {
	GroupID string
}

// Group is a named set of contacts.
type Group struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TotalContacts int    `json:"total_contacts"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// Template is a reusable message body.
type Template struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CreateTemplateRequest is the payload for creating a template.
type CreateTemplateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SenderID is a registered sender identity.
type SenderID struct {
	Name      string `json:"sender_name"`
	Purpose   string `json:"purpose,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
}

// IsApproved reports whether the sender may be used.
func (s *SenderID) IsApproved() bool {
	return strings.EqualFold(s.Status, "approved")
}

// RegisterSenderRequest is the payload for registering a sender identity.
type RegisterSenderRequest struct {
	Name    string `json:"sender_name"`
	Purpose string `json:"purpose"`
}

// BalanceResponse is the account's remaining credit.
type BalanceResponse struct {
	Balance  float64 `json:"balance"`
	Bonus    float64 `json:"bonus"`
	Currency string  `json:"currency,omitempty"`
}

// DeleteResult confirms a deletion.
type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
	Message string `json:"message,omitempty"`
}
