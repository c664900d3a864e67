package server

// HTTP error messages for middleware responses
const (
	ErrMsgRequestTooLarge = "Request body too large"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
)

// Unlogged path prefixes (noise endpoints scraped by infrastructure)
var QuietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}
