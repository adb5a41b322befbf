// Package errors provides structured errors for the control-plane boundary.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Control-plane call errors
	CodeCoreUnavailable Code = "CORE_UNAVAILABLE"
	CodeTokenGenerate   Code = "TOKEN_GENERATE_FAILED"
	CodeTokenTimeout    Code = "TOKEN_TIMEOUT"

	// Session errors reported by the core daemon
	CodeSessionInactive Code = "SESSION_INACTIVE"
	CodeSessionNotStaff Code = "SESSION_NOT_STAFF"
)

// codeForGRPC maps transport status codes to domain codes when the core
// daemon returned no structured ErrorInfo detail.
func codeForGRPC(c codes.Code) Code {
	switch c {
	case codes.Unavailable:
		return CodeCoreUnavailable
	case codes.DeadlineExceeded:
		return CodeTokenTimeout
	case codes.Unauthenticated:
		return CodeSessionInactive
	case codes.PermissionDenied:
		return CodeSessionNotStaff
	default:
		return CodeUnknown
	}
}
