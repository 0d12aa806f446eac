package bulksms

import (
	"context"
	"strings"

	"github.com/s0up4200/bulksms/result"
)

// GroupsService manages contact groups.
type GroupsService struct {
	client *Client
}

// GroupMembership acknowledges adding or removing a contact.
type GroupMembership struct {
	GroupID   string `json:"group_id"`
	ContactID string `json:"contact_id"`
	Message   string `json:"message,omitempty"`
}

// CreateSafe creates a group.
func (s *GroupsService) CreateSafe(ctx context.Context, name string) Result[*Group] {
	ep := EndpointCreateGroup
	if strings.TrimSpace(name) == "" {
		return failure[*Group](validationError("group name is required", ep.context()))
	}

	r := s.client.call(ctx, ep, nil, map[string]string{"group_name": name}, nil)
	return result.AndThen(r, decodeOne(ep, "Group", isGroup, normalizeGroup, "group"))
}

// Create is CreateSafe using the (value, error) convention.
func (s *GroupsService) Create(ctx context.Context, name string) (*Group, error) {
	return s.CreateSafe(ctx, name).Unwrap()
}

// ListSafe lists every group.
func (s *GroupsService) ListSafe(ctx context.Context) Result[[]Group] {
	ep := EndpointListGroups
	r := s.client.call(ctx, ep, nil, nil, nil)
	return result.AndThen(r, decodeList(ep, "Group", isGroup, normalizeGroup, "groups", "group"))
}

// List is ListSafe using the (value, error) convention.
func (s *GroupsService) List(ctx context.Context) ([]Group, error) {
	return s.ListSafe(ctx).Unwrap()
}

// GetSafe fetches one group.
func (s *GroupsService) GetSafe(ctx context.Context, groupID string) Result[*Group] {
	ep := EndpointGetGroup
	r := s.client.call(ctx, ep, map[string]string{"groupId": groupID}, nil, nil)
	return result.AndThen(r, decodeOne(ep, "Group", isGroup, normalizeGroup, "group"))
}

// Get is GetSafe using the (value, error) convention.
func (s *GroupsService) Get(ctx context.Context, groupID string) (*Group, error) {
	return s.GetSafe(ctx, groupID).Unwrap()
}

// AddContactSafe puts an existing contact into a group.
func (s *GroupsService) AddContactSafe(ctx context.Context, groupID, contactID string) Result[*GroupMembership] {
	return s.membership(ctx, EndpointAddGroupContact, groupID, contactID)
}

// AddContact is AddContactSafe using the (value, error) convention.
func (s *GroupsService) AddContact(ctx context.Context, groupID, contactID string) (*GroupMembership, error) {
	return s.AddContactSafe(ctx, groupID, contactID).Unwrap()
}

// RemoveContactSafe takes a contact out of a group.
func (s *GroupsService) RemoveContactSafe(ctx context.Context, groupID, contactID string) Result[*GroupMembership] {
	return s.membership(ctx, EndpointRemoveGroupContact, groupID, contactID)
}

// RemoveContact is RemoveContactSafe using the (value, error) convention.
func (s *GroupsService) RemoveContact(ctx context.Context, groupID, contactID string) (*GroupMembership, error) {
	return s.RemoveContactSafe(ctx, groupID, contactID).Unwrap()
}

func (s *GroupsService) membership(ctx context.Context, ep Endpoint, groupID, contactID string) Result[*GroupMembership] {
	params := map[string]string{"groupId": groupID, "contactId": contactID}
	r := s.client.call(ctx, ep, params, nil, nil)
	return result.AndThen(r, func(raw any) Result[*GroupMembership] {
		if !isObject(raw) {
			return failure[*GroupMembership](shapeError("GroupMembership", raw, ep.context()))
		}
		obj, _ := asObject(raw)
		return success(&GroupMembership{
			GroupID:   groupID,
			ContactID: contactID,
			Message:   stringOr(obj, "", "message"),
		})
	})
}

// DeleteSafe deletes a group.
func (s *GroupsService) DeleteSafe(ctx context.Context, groupID string) Result[*DeleteResult] {
	ep := EndpointDeleteGroup
	r := s.client.call(ctx, ep, map[string]string{"groupId": groupID}, nil, nil)
	return result.AndThen(r, decodeDelete(ep, groupID))
}

// Delete is DeleteSafe using the (value, error) convention.
func (s *GroupsService) Delete(ctx context.Context, groupID string) (*DeleteResult, error) {
	return s.DeleteSafe(ctx, groupID).Unwrap()
}
