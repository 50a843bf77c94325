package core

// error_messages.go maps technical errors to user-facing messages with codes
// for support reference.
//
// # Input Errors (PARSE001-PARSE099)
//
//	PARSE001 - Empty input: No text was provided
//	PARSE002 - Not delimited: Input is not tab-delimited text
//	PARSE003 - Too large: Input exceeds the configured size limit
//
// # Conversion Errors
//
//	COERCE001 - A value could not be converted to its column type
//	SQL001    - Rows and columns of the result do not line up
//
// # Database Errors (DB001-DB099)
//
// PostgreSQL errors are matched by SQLSTATE first, then by message text:
//
//	DB001 - Syntax error in the generated script (42601), usually an
//	        unescaped quote inside a text value
//	DB002 - Invalid value for a column type (22xxx)
//	DB003 - Constraint or dependency violation (23xxx, 2BP01)
//	DB004 - Connection refused / reset
//	DB005 - Deadlock
//
// # Load Errors (LOAD001-LOAD099)
//
//	LOAD001 - Too many concurrent loads
//	LOAD002 - No database configured
//
// # Request Errors (REQ001-REQ099, RATE001)
//
//	REQ001 - Request cancelled
//	REQ002 - Request timed out
//	REQ003 - Request body or form could not be read
//	RATE001 - Too many requests
//
// # Default Error (ERR000)
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so specific patterns come before general ones.

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgTooLarge = UserMessage{
		Message: "Input exceeds the size limit",
		Action:  "Split the input into smaller files",
		Code:    "PARSE003",
	}
	msgSyntax = UserMessage{
		Message: "The generated SQL is not valid",
		Action:  "Check text values for single quotes and column names for spaces",
		Code:    "DB001",
	}
	msgInvalidValue = UserMessage{
		Message: "A value does not fit its column type",
		Action:  "Review the inferred column types",
		Code:    "DB002",
	}
	msgConstraint = UserMessage{
		Message: "The table could not be replaced",
		Action:  "Check for objects that depend on the table",
		Code:    "DB003",
	}
)

var errorPatterns = []errorPattern{
	// =========================================================================
	// Input Errors (PARSE001-PARSE003)
	// =========================================================================
	{
		pattern: "empty input",
		msg: UserMessage{
			Message: "No text was provided",
			Action:  "Paste or upload tab-delimited text",
			Code:    "PARSE001",
		},
	},
	{
		pattern: "not delimited text",
		msg: UserMessage{
			Message: "Input is not tab-delimited text",
			Action:  "Save the file as UTF-8 text with tab separators",
			Code:    "PARSE002",
		},
	},
	{pattern: "input too large", msg: msgTooLarge},
	{pattern: "request body too large", msg: msgTooLarge},

	// =========================================================================
	// Conversion Errors (COERCE001, SQL001)
	// =========================================================================
	{
		pattern: "coercion failure",
		msg: UserMessage{
			Message: "A value could not be converted to its column type",
			Action:  "Check the reported row and column",
			Code:    "COERCE001",
		},
	},
	{
		pattern: "malformed parse result",
		msg: UserMessage{
			Message: "Rows and columns do not line up",
			Action:  "Parse the input again before generating SQL",
			Code:    "SQL001",
		},
	},

	// =========================================================================
	// Load Errors (LOAD001-LOAD002)
	// =========================================================================
	{
		pattern: "too many concurrent loads",
		msg: UserMessage{
			Message: "Too many loads in progress",
			Action:  "Please wait a moment and try again",
			Code:    "LOAD001",
		},
	},
	{
		pattern: "no database configured",
		msg: UserMessage{
			Message: "Loading is not available",
			Action:  "Set DATABASE_URL to enable loading",
			Code:    "LOAD002",
		},
	},

	// =========================================================================
	// Database Errors (DB001-DB005)
	// =========================================================================
	{pattern: "syntax error", msg: msgSyntax},
	{pattern: "invalid input syntax", msg: msgInvalidValue},
	{pattern: "depends on", msg: msgConstraint},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB004",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},

	// =========================================================================
	// Request Errors (REQ001-REQ003, RATE001)
	// =========================================================================
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller input or try again later",
			Code:    "REQ002",
		},
	},
	{
		pattern: "invalid request",
		msg: UserMessage{
			Message: "The request could not be read",
			Action:  "Send text as the body, a multipart file field or a text form field",
			Code:    "REQ003",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// PostgreSQL errors are classified by SQLSTATE; everything else by message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if msg, ok := mapSQLState(pgErr.Code); ok {
			return msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

func mapSQLState(code string) (UserMessage, bool) {
	switch {
	case code == "42601":
		return msgSyntax, true
	case code == "2BP01", strings.HasPrefix(code, "23"):
		return msgConstraint, true
	case strings.HasPrefix(code, "22"):
		return msgInvalidValue, true
	default:
		return UserMessage{}, false
	}
}

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
