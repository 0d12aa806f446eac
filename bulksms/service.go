package bulksms

import (
	"context"
	"net/url"
	"strings"
)

// call expands ep, performs the request and stamps the endpoint's service
// and operation onto any failure.
func (c *Client) call(ctx context.Context, ep Endpoint, params map[string]string, body any, query url.Values) Result[any] {
	path, perr := ep.expand(params)
	if perr != nil {
		return failure[any](perr)
	}
	r := c.RequestSafe(ctx, Request{
		Method: ep.Method,
		Path:   path,
		Body:   body,
		Query:  query,
	})
	return AnnotateResult(r, ErrorContext{Service: ep.Service, Operation: ep.Operation})
}

// decodeOne validates and normalizes a single record. The record may be
// the body itself or sit inside a data/<key> envelope.
func decodeOne[T any](ep Endpoint, entity string, valid func(any) bool, normalize func(any) (*T, bool), keys ...string) func(any) Result[*T] {
	return func(raw any) Result[*T] {
		for _, candidate := range []any{raw, unwrapEntity(raw, keys...)} {
			if !valid(candidate) {
				continue
			}
			if rec, ok := normalize(candidate); ok {
				return success(rec)
			}
		}
		return failure[*T](shapeError(entity, raw, ep.context()))
	}
}

// decodeList validates and normalizes every record of a list response.
// A single invalid record fails the whole list.
func decodeList[T any](ep Endpoint, entity string, valid func(any) bool, normalize func(any) (*T, bool), keys ...string) func(any) Result[[]T] {
	return func(raw any) Result[[]T] {
		items, ok := unwrapList(raw, keys...)
		if !ok {
			return failure[[]T](shapeError(entity, raw, ep.context()))
		}
		out := make([]T, 0, len(items))
		for _, item := range items {
			if !valid(item) {
				return failure[[]T](shapeError(entity, item, ep.context()))
			}
			rec, ok := normalize(item)
			if !ok {
				return failure[[]T](shapeError(entity, item, ep.context()))
			}
			out = append(out, *rec)
		}
		return success(out)
	}
}

// decodeDelete turns a deletion acknowledgement into a DeleteResult. Empty
// bodies count as success.
func decodeDelete(ep Endpoint, id string) func(any) Result[*DeleteResult] {
	return func(raw any) Result[*DeleteResult] {
		obj, ok := asObject(raw)
		if !ok {
			return failure[*DeleteResult](shapeError("Delete", raw, ep.context()))
		}
		deleted := true
		if v, ok := obj["deleted"].(bool); ok {
			deleted = v
		} else if status, ok := firstString(obj, "status"); ok {
			switch strings.ToLower(status) {
			case "error", "failed", "false":
				deleted = false
			}
		}
		return success(&DeleteResult{
			ID:      id,
			Deleted: deleted,
			Message: stringOr(obj, "", "message"),
		})
	}
}
