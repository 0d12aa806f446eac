// Package bulksms provides a client for a bulk messaging REST API: SMS
// sending and delivery status, contacts, groups, templates and account
// operations.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: the transport. It resolves paths against the base URL (keeping
//     any path prefix), authenticates every call, enforces a hard per-attempt
//     timeout and retries rate-limited (429) calls a bounded number of times
//   - Services: SMS, Contacts, Groups, Templates and Account shape payloads,
//     call the transport and normalize the JSON they get back
//   - Error: a structured error carrying status code, raw payload and the
//     context (service, operation, stage, path, retries) of the failure
//   - Result: every operation has a Safe variant returning a Result and a
//     plain variant returning (value, error) derived from it
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := bulksms.NewClient("your-api-key", logger,
//		bulksms.WithTimeout(10*time.Second),
//		bulksms.WithMaxRetries(3),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res := client.SMS.SendSafe(ctx, bulksms.SendSMSRequest{
//		Recipients: bulksms.Recipients{"0241234567"},
//		Sender:     "MyBrand",
//		Message:    "Hello",
//	})
//	summary, err := res.Unwrap()
//
// # Error Handling
//
// Failures are always *Error values. The status code classifies them:
//
//   - 0: network failure or a response that did not have the expected shape
//   - 408: the request did not complete within the configured timeout
//   - 429: the API kept rate limiting after every retry
//   - 400 with stage "validation": rejected before any request was sent
//   - anything else: the HTTP status returned by the API
//
//	var apiErr *bulksms.Error
//	if errors.As(err, &apiErr) && apiErr.IsTimeout() {
//		// retry later
//	}
package bulksms
