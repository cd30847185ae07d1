// Package apperrors defines the unified error taxonomy shared by the store,
// repositories, and the API client. Every expected failure in the core is an
// *Error carrying a domain and a kind; callers branch on kinds, never on
// message text.
package apperrors

import (
	"errors"
	"fmt"
)

// Domain partitions errors by the subsystem that produced them.
type Domain string

// Error domains.
const (
	DomainNetworking     Domain = "networking"
	DomainStorage        Domain = "storage"
	DomainValidation     Domain = "validation"
	DomainAuthentication Domain = "authentication"
)

// Kind identifies a specific failure within a domain. Each domain has a
// closed set of kinds.
type Kind string

// Networking kinds.
const (
	KindInvalidResponse       Kind = "invalid_response"
	KindDecodingError         Kind = "decoding_error"
	KindImageProcessingFailed Kind = "image_processing_failed"
	KindNoConnection          Kind = "no_connection"
	KindTimeout               Kind = "timeout"
	KindServerError           Kind = "server_error"
)

// Storage kinds.
const (
	KindEncodingFailed Kind = "encoding_failed"
	KindDecodingFailed Kind = "decoding_failed"
	KindKeyNotFound    Kind = "key_not_found"
	KindKeychainError  Kind = "keychain_error"
	KindPersistFailed  Kind = "persist_failed"
)

// Validation kinds.
const (
	KindInvalidEmail       Kind = "invalid_email"
	KindWeakPassword       Kind = "weak_password"
	KindEmptyFields        Kind = "empty_fields"
	KindInvalidCredentials Kind = "invalid_credentials"
)

// Authentication kinds.
const (
	KindUnauthorized Kind = "unauthorized"
	KindTokenExpired Kind = "token_expired"
	KindUserExists   Kind = "user_exists"
	KindUserNotFound Kind = "user_not_found"
)

// Error is the taxonomy error type. Code is only meaningful for
// server_error kinds, where it carries the HTTP status.
type Error struct {
	Domain Domain
	Kind   Kind
	Code   int
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s/%s (%d): %s", e.Domain, e.Kind, e.Code, e.Message())
	}
	if e.Err != nil {
		return fmt.Sprintf("%s/%s: %v", e.Domain, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s/%s: %s", e.Domain, e.Kind, e.Message())
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by domain and kind, ignoring Code and cause.
// This lets callers write errors.Is(err, &Error{Domain: ..., Kind: ...}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Domain == t.Domain && e.Kind == t.Kind
}

// Message derives the human-readable description from the kind. Messages are
// never stored; presentation derives its copy from here.
func (e *Error) Message() string {
	switch e.Kind {
	case KindInvalidResponse:
		return "the server returned an invalid response"
	case KindDecodingError:
		return "the server response could not be decoded"
	case KindImageProcessingFailed:
		return "the image could not be processed"
	case KindNoConnection:
		return "no network connection"
	case KindTimeout:
		return "the request timed out"
	case KindServerError:
		return fmt.Sprintf("the server reported an error (%d)", e.Code)
	case KindEncodingFailed:
		return "the record could not be encoded for storage"
	case KindDecodingFailed:
		return "a stored record could not be decoded"
	case KindKeyNotFound:
		return "the requested secret was not found"
	case KindKeychainError:
		return "the secret store is unavailable"
	case KindPersistFailed:
		return "changes could not be saved"
	case KindInvalidEmail:
		return "the email address is not valid"
	case KindWeakPassword:
		return "the password is too weak"
	case KindEmptyFields:
		return "required fields are empty"
	case KindInvalidCredentials:
		return "email or password is incorrect"
	case KindUnauthorized:
		return "sign in to continue"
	case KindTokenExpired:
		return "the session has expired"
	case KindUserExists:
		return "an account with this email already exists"
	case KindUserNotFound:
		return "no account matches this email"
	default:
		return "an unexpected error occurred"
	}
}

// Networking creates a networking-domain error.
func Networking(kind Kind, cause error) *Error {
	return &Error{Domain: DomainNetworking, Kind: kind, Err: cause}
}

// ServerError creates a networking/server_error carrying the HTTP status.
func ServerError(code int) *Error {
	return &Error{Domain: DomainNetworking, Kind: KindServerError, Code: code}
}

// Storage creates a storage-domain error.
func Storage(kind Kind, cause error) *Error {
	return &Error{Domain: DomainStorage, Kind: kind, Err: cause}
}

// Validation creates a validation-domain error.
func Validation(kind Kind) *Error {
	return &Error{Domain: DomainValidation, Kind: kind}
}

// Authentication creates an authentication-domain error.
func Authentication(kind Kind) *Error {
	return &Error{Domain: DomainAuthentication, Kind: kind}
}

// KindOf returns the kind of err when it is (or wraps) a taxonomy error,
// and "" otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// DomainOf returns the domain of err when it is (or wraps) a taxonomy error,
// and "" otherwise.
func DomainOf(err error) Domain {
	var e *Error
	if errors.As(err, &e) {
		return e.Domain
	}
	return ""
}

// IsKind reports whether err is (or wraps) a taxonomy error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
