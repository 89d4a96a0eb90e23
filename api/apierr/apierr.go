// Package apierr classifies the failures a client operation can
// surface: transport failures (no usable response), backend rejections
// (response with a non-200 envelope status), caller-side validation
// failures, and payment gateway failures.
package apierr

import (
	"errors"
	"fmt"
)

type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) UserMessage() string {
	return "could not reach the server, please try again"
}

func (e *TransportError) Fields() map[string]interface{} {
	return map[string]interface{}{"kind": "transport"}
}

func Transport(err error) error {
	return &TransportError{Err: err}
}

type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend rejected request: status %d: %s", e.StatusCode, e.Message)
}

func (e *BackendError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return "the request was rejected, please try again"
}

func (e *BackendError) Fields() map[string]interface{} {
	return map[string]interface{}{"kind": "backend", "statuscode": e.StatusCode}
}

func Backend(statusCode int, message string) error {
	return &BackendError{StatusCode: statusCode, Message: message}
}

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) UserMessage() string { return e.Msg }

func (e *ValidationError) Fields() map[string]interface{} {
	return map[string]interface{}{"kind": "validation"}
}

func Validation(msg string) error {
	return &ValidationError{Msg: msg}
}

type GatewayError struct {
	Reason string
	Err    error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gateway: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("gateway: %s", e.Reason)
}

func (e *GatewayError) Unwrap() error { return e.Err }

func (e *GatewayError) UserMessage() string {
	if e.Reason != "" {
		return e.Reason
	}
	return "payment could not be confirmed"
}

func (e *GatewayError) Fields() map[string]interface{} {
	return map[string]interface{}{"kind": "gateway"}
}

func Gateway(reason string, err error) error {
	return &GatewayError{Reason: reason, Err: err}
}

func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func IsBackend(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsGateway(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}

type messager interface {
	UserMessage() string
}

// UserMessage extracts the human-readable notification text for err,
// preferring the backend-supplied message when one exists.
func UserMessage(err error) string {
	var me messager
	if errors.As(err, &me) {
		return me.UserMessage()
	}
	return "something went wrong, please try again"
}

type fielder interface {
	Fields() map[string]interface{}
}

func Fields(err error) (map[string]interface{}, bool) {
	var fe fielder
	if errors.As(err, &fe) {
		return fe.Fields(), true
	}
	return nil, false
}
