package bulksms

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Endpoint describes one remote operation.
type Endpoint struct {
	Service   string
	Operation string
	Method    string
	// Path is a route template; {name} segments are filled per call.
	Path string
}

// Endpoint catalogue
var (
	EndpointSendSMS   = Endpoint{"messaging", "send", http.MethodPost, "/sms/quick"}
	EndpointSMSStatus = Endpoint{"messaging", "status", http.MethodGet, "/sms/status/{messageId}"}

	EndpointCreateContact     = Endpoint{"contacts", "create", http.MethodPost, "/groups/{groupId}/contacts"}
	EndpointListContacts      = Endpoint{"contacts", "list", http.MethodGet, "/contacts"}
	EndpointListGroupContacts = Endpoint{"contacts", "list", http.MethodGet, "/groups/{groupId}/contacts"}

	EndpointCreateGroup        = Endpoint{"groups", "create", http.MethodPost, "/groups"}
	EndpointListGroups         = Endpoint{"groups", "list", http.MethodGet, "/groups"}
	EndpointGetGroup           = Endpoint{"groups", "get", http.MethodGet, "/groups/{groupId}"}
	EndpointAddGroupContact    = Endpoint{"groups", "addContact", http.MethodPost, "/groups/{groupId}/contacts/{contactId}"}
	EndpointRemoveGroupContact = Endpoint{"groups", "removeContact", http.MethodDelete, "/groups/{groupId}/contacts/{contactId}"}
	EndpointDeleteGroup        = Endpoint{"groups", "delete", http.MethodDelete, "/groups/{groupId}"}

	EndpointCreateTemplate = Endpoint{"templates", "create", http.MethodPost, "/templates"}
	EndpointListTemplates  = Endpoint{"templates", "list", http.MethodGet, "/templates"}
	EndpointGetTemplate    = Endpoint{"templates", "get", http.MethodGet, "/templates/{templateId}"}
	EndpointDeleteTemplate = Endpoint{"templates", "delete", http.MethodDelete, "/templates/{templateId}"}

	EndpointBalance        = Endpoint{"account", "balance", http.MethodGet, "/balance"}
	EndpointRegisterSender = Endpoint{"account", "registerSender", http.MethodPost, "/sender-ids"}
	EndpointSenderStatus   = Endpoint{"account", "senderStatus", http.MethodGet, "/sender-ids/{senderId}"}
)

// context returns the error context identifying this endpoint.
func (e Endpoint) context() ErrorContext {
	return ErrorContext{
		Service:   e.Service,
		Operation: e.Operation,
		Method:    e.Method,
		Path:      e.Path,
	}
}

// expand fills the path template. A missing or blank parameter is a
// validation failure; nothing is sent.
func (e Endpoint) expand(params map[string]string) (string, *Error) {
	path := e.Path
	for {
		start := strings.IndexByte(path, '{')
		if start < 0 {
			return path, nil
		}
		end := strings.IndexByte(path[start:], '}')
		if end < 0 {
			return path, nil
		}
		name := path[start+1 : start+end]
		value := strings.TrimSpace(params[name])
		if value == "" {
			msg := fmt.Sprintf("%s is required for %s.%s (%s %s)", name, e.Service, e.Operation, e.Method, e.Path)
			return "", validationError(msg, e.context())
		}
		// dot segments are cleaned away when the URL is joined
		if value == "." || value == ".." {
			msg := fmt.Sprintf("%s %q is not a valid identifier for %s.%s (%s %s)", name, value, e.Service, e.Operation, e.Method, e.Path)
			return "", validationError(msg, e.context())
		}
		path = path[:start] + url.PathEscape(value) + path[start+end+1:]
	}
}
