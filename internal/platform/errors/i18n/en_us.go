package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown = "UNKNOWN"

	// Control-plane call errors
	CodeCoreUnavailable = "CORE_UNAVAILABLE"
	CodeTokenGenerate   = "TOKEN_GENERATE_FAILED"
	CodeTokenTimeout    = "TOKEN_TIMEOUT"

	// Session errors reported by the core daemon
	CodeSessionInactive = "SESSION_INACTIVE"
	CodeSessionNotStaff = "SESSION_NOT_STAFF"
)

var enUSMessages = map[Code]string{
	CodeUnknown: "An unexpected error occurred",

	// Control-plane call errors
	CodeCoreUnavailable: "The core daemon is not reachable",
	CodeTokenGenerate:   "The core daemon could not issue a token",
	CodeTokenTimeout:    "The core daemon took too long to answer",

	// Session errors
	CodeSessionInactive: "Your session is no longer active",
	CodeSessionNotStaff: "Your session does not have operator rights",
}

func init() {
	RegisterCatalog("en-US", NewCatalog("en-US", enUSMessages))
}
