package bulksms

import (
	"context"
	"strings"

	"github.com/s0up4200/bulksms/result"
)

// ContactsService manages phonebook contacts.
type ContactsService struct {
	client *Client
}

// CreateSafe creates a contact inside a group. The group is part of the
// route, so a missing GroupID fails without contacting the API.
func (s *ContactsService) CreateSafe(ctx context.Context, req CreateContactRequest) Result[*Contact] {
	ep := EndpointCreateContact
	if strings.TrimSpace(req.Phone) == "" && strings.TrimSpace(req.GroupID) != "" {
		return failure[*Contact](validationError("phone is required", ep.context()))
	}

	r := s.client.call(ctx, ep, map[string]string{"groupId": req.GroupID}, req, nil)
	return result.AndThen(r, decodeOne(ep, "Contact", isContact, normalizeContact, "contact"))
}

// Create is CreateSafe using the (value, error) convention.
func (s *ContactsService) Create(ctx context.Context, req CreateContactRequest) (*Contact, error) {
	return s.CreateSafe(ctx, req).Unwrap()
}

// ListSafe lists contacts, optionally restricted to one group.
func (s *ContactsService) ListSafe(ctx context.Context, opts ListContactsOptions) Result[[]Contact] {
	ep := EndpointListContacts
	var params map[string]string
	if opts.GroupID != "" {
		ep = EndpointListGroupContacts
		params = map[string]string{"groupId": opts.GroupID}
	}

	r := s.client.call(ctx, ep, params, nil, nil)
	return result.AndThen(r, decodeList(ep, "Contact", isContact, normalizeContact, "contacts", "contact"))
}

// List is ListSafe using the (value, error) convention.
func (s *ContactsService) List(ctx context.Context, opts ListContactsOptions) ([]Contact, error) {
	return s.ListSafe(ctx, opts).Unwrap()
}
