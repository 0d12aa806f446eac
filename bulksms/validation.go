package bulksms

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// The remote API renamed fields between versions. The helpers in this file
// take decoded JSON (any) and resolve each field from every name it has
// been known by, so the resource services only deal with one shape.

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int64, int32, json.Number:
		return true
	}
	return false
}

func isObject(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

func asObject(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	return obj, ok
}

// hasRequiredFields reports whether every key is present and non-null.
func hasRequiredFields(obj map[string]any, keys ...string) bool {
	return len(missingFields(obj, keys...)) == 0
}

// validateRequired returns an error naming the absent keys.
func validateRequired(obj map[string]any, keys ...string) error {
	if missing := missingFields(obj, keys...); len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func missingFields(obj map[string]any, keys ...string) []string {
	var missing []string
	for _, k := range keys {
		if v, ok := obj[k]; !ok || v == nil {
			missing = append(missing, k)
		}
	}
	return missing
}

// hasAny reports whether at least one of names is present and non-null.
func hasAny(obj map[string]any, names ...string) bool {
	for _, n := range names {
		if v, ok := obj[n]; ok && v != nil {
			return true
		}
	}
	return false
}

// firstString resolves a string field from any of its accepted names.
// Numeric identifiers are rendered as strings.
func firstString(obj map[string]any, names ...string) (string, bool) {
	for _, n := range names {
		switch v := obj[n].(type) {
		case string:
			if v != "" {
				return v, true
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), true
		case json.Number:
			return v.String(), true
		}
	}
	return "", false
}

func stringOr(obj map[string]any, def string, names ...string) string {
	if s, ok := firstString(obj, names...); ok {
		return s
	}
	return def
}

// firstNumber resolves a numeric field, accepting numeric strings.
func firstNumber(obj map[string]any, names ...string) (float64, bool) {
	for _, n := range names {
		switch v := obj[n].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f, true
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func numberOr(obj map[string]any, def float64, names ...string) float64 {
	if f, ok := firstNumber(obj, names...); ok {
		return f
	}
	return def
}

func intOr(obj map[string]any, def int, names ...string) int {
	if f, ok := firstNumber(obj, names...); ok {
		return int(f)
	}
	return def
}

func stringSlice(obj map[string]any, names ...string) []string {
	for _, n := range names {
		arr, ok := obj[n].([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(arr))
		for _, item := range arr {
			switch v := item.(type) {
			case string:
				out = append(out, v)
			case float64:
				out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
			}
		}
		return out
	}
	return nil
}

// unwrapEntity peels a {data: {...}} or {<key>: {...}} envelope off a
// single entity. Anything else is returned as is.
func unwrapEntity(v any, keys ...string) any {
	obj, ok := asObject(v)
	if !ok {
		return v
	}
	for _, k := range append([]string{"data"}, keys...) {
		if inner, ok := asObject(obj[k]); ok {
			return inner
		}
	}
	return v
}

// unwrapList finds the array in a list response: a bare array, or one held
// under data or any of keys.
func unwrapList(v any, keys ...string) ([]any, bool) {
	if arr, ok := v.([]any); ok {
		return arr, true
	}
	obj, ok := asObject(v)
	if !ok {
		return nil, false
	}
	for _, k := range append([]string{"data"}, keys...) {
		if arr, ok := obj[k].([]any); ok {
			return arr, true
		}
	}
	return nil, false
}

var (
	idNames        = []string{"id", "_id"}
	createdAtNames = []string{"created_at", "createdAt"}
	updatedAtNames = []string{"updated_at", "updatedAt"}
)

func isContact(v any) bool {
	obj, ok := asObject(v)
	return ok && hasAny(obj, idNames...) && hasStringField(obj, "phone", "phone_number", "msisdn")
}

func hasStringField(obj map[string]any, names ...string) bool {
	for _, n := range names {
		if isString(obj[n]) || isNumber(obj[n]) {
			return true
		}
	}
	return false
}

func normalizeContact(v any) (*Contact, bool) {
	obj, ok := asObject(v)
	if !ok {
		return nil, false
	}
	id, ok := firstString(obj, idNames...)
	if !ok {
		return nil, false
	}
	phone, ok := firstString(obj, "phone", "phone_number", "msisdn")
	if !ok {
		return nil, false
	}
	return &Contact{
		ID:        id,
		Phone:     phone,
		Title:     stringOr(obj, "", "title"),
		FirstName: stringOr(obj, "", "firstname", "first_name"),
		LastName:  stringOr(obj, "", "lastname", "last_name"),
		Email:     stringOr(obj, "", "email"),
		DOB:       stringOr(obj, "", "dob"),
		GroupID:   stringOr(obj, "", "group_id", "groupId"),
		CreatedAt: stringOr(obj, "", createdAtNames...),
		UpdatedAt: stringOr(obj, "", updatedAtNames...),
	}, true
}

func isGroup(v any) bool {
	obj, ok := asObject(v)
	return ok && hasAny(obj, idNames...) && hasStringField(obj, "name", "group_name")
}

func normalizeGroup(v any) (*Group, bool) {
	obj, ok := asObject(v)
	if !ok {
		return nil, false
	}
	id, ok := firstString(obj, idNames...)
	if !ok {
		return nil, false
	}
	name, ok := firstString(obj, "name", "group_name")
	if !ok {
		return nil, false
	}
	return &Group{
		ID:            id,
		Name:          name,
		TotalContacts: intOr(obj, 0, "total", "contacts_count", "total_contacts"),
		CreatedAt:     stringOr(obj, "", createdAtNames...),
	}, true
}

func isTemplate(v any) bool {
	obj, ok := asObject(v)
	return ok && hasAny(obj, idNames...) && hasStringField(obj, "content", "body")
}

func normalizeTemplate(v any) (*Template, bool) {
	obj, ok := asObject(v)
	if !ok {
		return nil, false
	}
	id, ok := firstString(obj, idNames...)
	if !ok {
		return nil, false
	}
	title, ok := firstString(obj, "title", "name")
	if !ok {
		return nil, false
	}
	content, ok := firstString(obj, "content", "body")
	if !ok {
		return nil, false
	}
	return &Template{
		ID:        id,
		Title:     title,
		Content:   content,
		Status:    stringOr(obj, StatusPending, "status"),
		CreatedAt: stringOr(obj, "", createdAtNames...),
	}, true
}

func isSenderID(v any) bool {
	obj, ok := asObject(v)
	return ok && hasStringField(obj, "sender_name", "name", "sender_id")
}

func normalizeSenderID(v any) (*SenderID, bool) {
	obj, ok := asObject(v)
	if !ok {
		return nil, false
	}
	name, ok := firstString(obj, "sender_name", "name", "sender_id")
	if !ok {
		return nil, false
	}
	return &SenderID{
		Name:      name,
		Purpose:   stringOr(obj, "", "purpose"),
		Status:    stringOr(obj, StatusPending, "status"),
		CreatedAt: stringOr(obj, "", createdAtNames...),
	}, true
}

func isBalance(v any) bool {
	obj, ok := asObject(v)
	if !ok {
		return false
	}
	_, ok = firstNumber(obj, "balance", "sms_balance", "credit")
	return ok
}

func normalizeBalance(v any) (*BalanceResponse, bool) {
	obj, ok := asObject(v)
	if !ok {
		return nil, false
	}
	balance, ok := firstNumber(obj, "balance", "sms_balance", "credit")
	if !ok {
		return nil, false
	}
	return &BalanceResponse{
		Balance:  balance,
		Bonus:    numberOr(obj, 0, "bonus"),
		Currency: stringOr(obj, "", "currency"),
	}, true
}

func isSendSMSResponse(v any) bool {
	obj, ok := asObject(v)
	if !ok {
		return false
	}
	if !hasRequiredFields(obj, "summary") {
		return false
	}
	summary, ok := asObject(obj["summary"])
	return ok && hasAny(summary, idNames...)
}

func normalizeSendSMSResponse(v any) (*SendSMSResponse, bool) {
	obj, ok := asObject(v)
	if !ok {
		return nil, false
	}
	summary, ok := asObject(obj["summary"])
	if !ok {
		return nil, false
	}
	id, ok := firstString(summary, idNames...)
	if !ok {
		return nil, false
	}
	return &SendSMSResponse{
		Status:  stringOr(obj, "", "status"),
		Code:    stringOr(obj, "", "code"),
		Message: stringOr(obj, "", "message"),
		Summary: SendSummary{
			ID:            id,
			Type:          stringOr(summary, "", "type"),
			TotalSent:     intOr(summary, 0, "total_sent"),
			Contacts:      intOr(summary, 0, "contacts"),
			TotalRejected: intOr(summary, 0, "total_rejected"),
			NumbersSent:   stringSlice(summary, "numbers_sent"),
			CreditUsed:    numberOr(summary, 0, "credit_used"),
			CreditLeft:    numberOr(summary, 0, "credit_left"),
		},
	}, true
}

func isDeliveryReport(v any) bool {
	obj, ok := asObject(v)
	return ok && hasAny(obj, "id", "_id", "message_id") && hasStringField(obj, "recipient", "phone")
}

func normalizeDeliveryReport(v any) (*DeliveryReport, bool) {
	obj, ok := asObject(v)
	if !ok {
		return nil, false
	}
	id, ok := firstString(obj, "id", "_id", "message_id")
	if !ok {
		return nil, false
	}
	recipient, ok := firstString(obj, "recipient", "phone")
	if !ok {
		return nil, false
	}
	return &DeliveryReport{
		ID:          id,
		Recipient:   recipient,
		Status:      stringOr(obj, StatusPending, "status"),
		Message:     stringOr(obj, "", "message"),
		SentAt:      stringOr(obj, "", "sent_at", "date_sent"),
		DeliveredAt: stringOr(obj, "", "delivered_at"),
	}, true
}
