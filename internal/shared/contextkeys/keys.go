// Package contextkeys holds the request-scoped context keys shared by middleware and loggers.
package contextkeys

type contextKey string

func (c contextKey) String() string {
	return "chess-fen context key " + string(c)
}

const (
	// UserIDKey holds the id asserted by a verified session token.
	UserIDKey = contextKey("userID")
	// UserEmailKey holds the normalized email from the same token.
	UserEmailKey = contextKey("userEmail")
	RequestIDKey = contextKey("requestID")
)
