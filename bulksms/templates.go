package bulksms

import (
	"context"
	"strings"

	"github.com/s0up4200/bulksms/result"
)

// TemplatesService manages message templates.
type TemplatesService struct {
	client *Client
}

// CreateSafe creates a template. New templates usually start as pending
// until the provider reviews them.
func (s *TemplatesService) CreateSafe(ctx context.Context, req CreateTemplateRequest) Result[*Template] {
	ep := EndpointCreateTemplate
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return failure[*Template](validationError("template title and content are required", ep.context()))
	}

	r := s.client.call(ctx, ep, nil, req, nil)
	return result.AndThen(r, decodeOne(ep, "Template", isTemplate, normalizeTemplate, "template"))
}

// Create is CreateSafe using the (value, error) convention.
func (s *TemplatesService) Create(ctx context.Context, req CreateTemplateRequest) (*Template, error) {
	return s.CreateSafe(ctx, req).Unwrap()
}

// ListSafe lists every template.
func (s *TemplatesService) ListSafe(ctx context.Context) Result[[]Template] {
	ep := EndpointListTemplates
	r := s.client.call(ctx, ep, nil, nil, nil)
	return result.AndThen(r, decodeList(ep, "Template", isTemplate, normalizeTemplate, "templates", "template"))
}

// List is ListSafe using the (value, error) convention.
func (s *TemplatesService) List(ctx context.Context) ([]Template, error) {
	return s.ListSafe(ctx).Unwrap()
}

// GetSafe fetches one template.
func (s *TemplatesService) GetSafe(ctx context.Context, templateID string) Result[*Template] {
	ep := EndpointGetTemplate
	r := s.client.call(ctx, ep, map[string]string{"templateId": templateID}, nil, nil)
	return result.AndThen(r, decodeOne(ep, "Template", isTemplate, normalizeTemplate, "template"))
}

// Get is GetSafe using the (value, error) convention.
func (s *TemplatesService) Get(ctx context.Context, templateID string) (*Template, error) {
	return s.GetSafe(ctx, templateID).Unwrap()
}

// DeleteSafe deletes a template.
func (s *TemplatesService) DeleteSafe(ctx context.Context, templateID string) Result[*DeleteResult] {
	ep := EndpointDeleteTemplate
	r := s.client.call(ctx, ep, map[string]string{"templateId": templateID}, nil, nil)
	return result.AndThen(r, decodeDelete(ep, templateID))
}

// Delete is DeleteSafe using the (value, error) convention.
func (s *TemplatesService) Delete(ctx context.Context, templateID string) (*DeleteResult, error) {
	return s.DeleteSafe(ctx, templateID).Unwrap()
}
