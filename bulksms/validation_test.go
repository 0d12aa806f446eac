package bulksms

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestTypeGuards(t *testing.T) {
	assert.True(t, isString("x"))
	assert.False(t, isString(1.0))
	assert.True(t, isNumber(1.5))
	assert.True(t, isNumber(json.Number("3")))
	assert.False(t, isNumber("3"))
	assert.True(t, isObject(map[string]any{}))
	assert.False(t, isObject([]any{}))
}

func TestRequiredFields(t *testing.T) {
	obj := map[string]any{"a": 1, "b": nil}

	assert.True(t, hasRequiredFields(obj, "a"))
	assert.False(t, hasRequiredFields(obj, "a", "b"))
	assert.NoError(t, validateRequired(obj, "a"))

	err := validateRequired(obj, "a", "b", "c")
	require.Error(t, err)
	assert.Equal(t, "missing required fields: b, c", err.Error())
}

func TestNormalizeContact(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Contact
	}{
		{
			name:  "current field names",
			input: `{"id":"c1","phone":"0241234567","firstname":"Ama","lastname":"Mensah","group_id":"g1","created_at":"2024-01-01"}`,
			want:  &Contact{ID: "c1", Phone: "0241234567", FirstName: "Ama", LastName: "Mensah", GroupID: "g1", CreatedAt: "2024-01-01"},
		},
		{
			name:  "legacy field names",
			input: `{"_id":42,"phone_number":"0209999999","first_name":"Kofi","groupId":"g2","createdAt":"2023-05-05"}`,
			want:  &Contact{ID: "42", Phone: "0209999999", FirstName: "Kofi", GroupID: "g2", CreatedAt: "2023-05-05"},
		},
		{
			name:  "missing phone",
			input: `{"id":"c1"}`,
		},
		{
			name:  "missing id",
			input: `{"phone":"0241234567"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := decode(t, tt.input)
			got, ok := normalizeContact(v)
			if tt.want == nil {
				assert.False(t, ok)
				assert.Nil(t, got)
				assert.False(t, isContact(v))
				return
			}
			require.True(t, ok)
			assert.True(t, isContact(v))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeTemplate(t *testing.T) {
	got, ok := normalizeTemplate(decode(t, `{"_id":"t1","name":"Promo","body":"Hi {name}"}`))
	require.True(t, ok)
	assert.Equal(t, &Template{ID: "t1", Title: "Promo", Content: "Hi {name}", Status: StatusPending}, got)

	got, ok = normalizeTemplate(decode(t, `{"id":"t2","title":"Promo","content":"Hi","status":"approved"}`))
	require.True(t, ok)
	assert.Equal(t, "approved", got.Status)

	_, ok = normalizeTemplate(decode(t, `{"id":"t3","title":"No body"}`))
	assert.False(t, ok)
}

func TestNormalizeGroup(t *testing.T) {
	got, ok := normalizeGroup(decode(t, `{"_id":"g1","group_name":"VIP","contacts_count":"12"}`))
	require.True(t, ok)
	assert.Equal(t, &Group{ID: "g1", Name: "VIP", TotalContacts: 12}, got)

	got, ok = normalizeGroup(decode(t, `{"id":"g2","name":"All"}`))
	require.True(t, ok)
	assert.Zero(t, got.TotalContacts)
}

func TestNormalizeSenderID(t *testing.T) {
	got, ok := normalizeSenderID(decode(t, `{"sender_name":"MyBrand","purpose":"alerts"}`))
	require.True(t, ok)
	assert.Equal(t, &SenderID{Name: "MyBrand", Purpose: "alerts", Status: StatusPending}, got)
	assert.False(t, got.IsApproved())

	got, ok = normalizeSenderID(decode(t, `{"sender_id":"Shop","status":"Approved"}`))
	require.True(t, ok)
	assert.True(t, got.IsApproved())
}

func TestNormalizeBalance(t *testing.T) {
	got, ok := normalizeBalance(decode(t, `{"balance":"120.5","bonus":3}`))
	require.True(t, ok)
	assert.Equal(t, &BalanceResponse{Balance: 120.5, Bonus: 3}, got)

	got, ok = normalizeBalance(decode(t, `{"sms_balance":7}`))
	require.True(t, ok)
	assert.Equal(t, 7.0, got.Balance)

	assert.False(t, isBalance(decode(t, `{"balance":"lots"}`)))
}

func TestNormalizeSendSMSResponse(t *testing.T) {
	input := `{
		"status": "success",
		"code": "2000",
		"message": "messages sent successfully",
		"summary": {
			"_id": "A1B2",
			"type": "API QUICK SMS",
			"total_sent": 2,
			"contacts": 2,
			"total_rejected": 0,
			"numbers_sent": ["0241234567", "0201234567"],
			"credit_used": 2,
			"credit_left": 98
		}
	}`

	v := decode(t, input)
	require.True(t, isSendSMSResponse(v))
	got, ok := normalizeSendSMSResponse(v)
	require.True(t, ok)
	assert.Equal(t, "A1B2", got.Summary.ID)
	assert.Equal(t, 2, got.Summary.TotalSent)
	assert.Equal(t, []string{"0241234567", "0201234567"}, got.Summary.NumbersSent)
	assert.Equal(t, 98.0, got.Summary.CreditLeft)
	assert.Equal(t, "2000", got.Code)

	missing := decode(t, `{"status":"success","message":"sent"}`)
	assert.False(t, isSendSMSResponse(missing))
}

func TestNormalizeDeliveryReport(t *testing.T) {
	got, ok := normalizeDeliveryReport(decode(t, `{"message_id":"m1","phone":"0241234567","date_sent":"2024-02-02"}`))
	require.True(t, ok)
	assert.Equal(t, &DeliveryReport{ID: "m1", Recipient: "0241234567", Status: StatusPending, SentAt: "2024-02-02"}, got)
	assert.False(t, got.IsDelivered())

	got, ok = normalizeDeliveryReport(decode(t, `{"id":"m2","recipient":"0200000000","status":"DELIVERED"}`))
	require.True(t, ok)
	assert.True(t, got.IsDelivered())
}

func TestUnwrapHelpers(t *testing.T) {
	inner := map[string]any{"id": "1"}
	assert.Equal(t, inner, unwrapEntity(map[string]any{"data": inner}))
	assert.Equal(t, inner, unwrapEntity(map[string]any{"group": inner}, "group"))

	plain := map[string]any{"id": "1"}
	assert.Equal(t, plain, unwrapEntity(plain, "group"))

	list, ok := unwrapList(decode(t, `[{"id":"1"}]`))
	require.True(t, ok)
	assert.Len(t, list, 1)

	list, ok = unwrapList(decode(t, `{"groups":[{"id":"1"},{"id":"2"}]}`), "groups")
	require.True(t, ok)
	assert.Len(t, list, 2)

	_, ok = unwrapList(decode(t, `{"id":"1"}`))
	assert.False(t, ok)
}

func TestRecipientsJSON(t *testing.T) {
	var req SendSMSRequest
	require.NoError(t, json.Unmarshal([]byte(`{"recipient":"0241234567","sender":"S","message":"M"}`), &req))
	assert.Equal(t, Recipients{"0241234567"}, req.Recipients)

	require.NoError(t, json.Unmarshal([]byte(`{"recipient":["a","b"]}`), &req))
	assert.Equal(t, Recipients{"a", "b"}, req.Recipients)

	assert.Error(t, json.Unmarshal([]byte(`{"recipient":7}`), &req))

	out, err := json.Marshal(SendSMSRequest{Recipients: Recipients{"x"}, Sender: "S", Message: "M"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"recipient":["x"],"sender":"S","message":"M","is_schedule":false}`, string(out))
}
