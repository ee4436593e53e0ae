package mtran

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	// StatusTimeout is the synthetic status reported when a deadline expires.
	StatusTimeout = -1
	// StatusNetwork is the synthetic status reported for transport failures.
	StatusNetwork = -2

	messagePrefix = "[MTranServer]"
)

// Kind classifies an adapter failure.
type Kind int

const (
	KindConfig Kind = iota + 1
	KindInvalidRequest
	KindTimeout
	KindNetwork
	KindServer
	KindMalformedResponse
)

var (
	ErrConfig            = errors.New("invalid configuration")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrTimeout           = errors.New("request timed out")
	ErrNetwork           = errors.New("network failure")
	ErrServer            = errors.New("server error")
	ErrMalformedResponse = errors.New("malformed response")
)

func (k Kind) sentinel() error {
	switch k {
	case KindConfig:
		return ErrConfig
	case KindInvalidRequest:
		return ErrInvalidRequest
	case KindTimeout:
		return ErrTimeout
	case KindNetwork:
		return ErrNetwork
	case KindServer:
		return ErrServer
	case KindMalformedResponse:
		return ErrMalformedResponse
	default:
		return nil
	}
}

func (k Kind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the single failure type returned by Client operations. Its
// message is multi-line and meant to be shown to users as is.
type Error struct {
	Kind Kind
	// Message is the short operation label, for example "translate: server returned an error".
	Message string
	// Status is the HTTP status code, StatusTimeout, StatusNetwork, or 0 for local failures.
	Status int
	// Data is the decoded error payload. It is empty when nothing could be decoded.
	Data map[string]any
	// Body is the raw response body, when a response was received.
	Body []byte
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(messagePrefix)
	b.WriteString(" ")
	b.WriteString(e.Message)

	switch {
	case e.Status < 0:
		fmt.Fprintf(&b, "\nerror code: %d", e.Status)
	case e.Status > 0:
		fmt.Fprintf(&b, "\nHTTP status: %d", e.Status)
	}

	if detail := describeData(e.Data); detail != "" {
		b.WriteString("\ndetails: ")
		b.WriteString(detail)
	}
	return b.String()
}

// Unwrap exposes both the kind sentinel and the underlying cause, so
// errors.Is(err, ErrTimeout) and errors.Is(err, context.DeadlineExceeded)
// both hold for a timed out call.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if sentinel := e.Kind.sentinel(); sentinel != nil {
		errs = append(errs, sentinel)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func describeData(data map[string]any) string {
	if len(data) == 0 {
		return ""
	}
	if msg, ok := data["message"].(string); ok && strings.TrimSpace(msg) != "" {
		return msg
	}
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "[unserializable error data]"
	}
	return string(encoded)
}

// decodeObject returns body parsed as a JSON object, or nil when it is not one.
func decodeObject(body []byte) map[string]any {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil
	}
	return parsed
}

func configError(message string) *Error {
	return &Error{Kind: KindConfig, Message: message}
}

func invalidRequestError(op, detail string) *Error {
	return &Error{
		Kind:    KindInvalidRequest,
		Message: op + ": invalid request",
		Data:    map[string]any{"message": detail},
	}
}

func timeoutError(op string, cause error) *Error {
	return &Error{
		Kind:    KindTimeout,
		Message: op + ": request timed out",
		Status:  StatusTimeout,
		Err:     cause,
	}
}

func networkError(op string, cause error) *Error {
	data := map[string]any{}
	if cause != nil {
		data["message"] = cause.Error()
	}
	return &Error{
		Kind:    KindNetwork,
		Message: op + ": network or request failure",
		Status:  StatusNetwork,
		Data:    data,
		Err:     cause,
	}
}

func unavailableError(op string) *Error {
	return &Error{
		Kind:    KindNetwork,
		Message: op + ": translation server is unavailable",
		Status:  StatusNetwork,
	}
}

func serverError(op string, resp *Response) *Error {
	return &Error{
		Kind:    KindServer,
		Message: op + ": server returned an error",
		Status:  resp.StatusCode,
		Data:    decodeObject(resp.Body),
		Body:    resp.Body,
	}
}

func malformedError(op string, resp *Response, cause error) *Error {
	return &Error{
		Kind:    KindMalformedResponse,
		Message: op + ": server returned a malformed response",
		Status:  resp.StatusCode,
		Data:    decodeObject(resp.Body),
		Body:    resp.Body,
		Err:     cause,
	}
}
