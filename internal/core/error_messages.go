// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// When an operator hits an error, the code shown on screen identifies the
// failure class without exposing the technical error.
//
// # Record Errors (REC001-REC099)
//
//	REC001 - Not found: The requested record does not exist
//	         Action: It may have been deleted. Return to the list and refresh
//	         Patterns: "not found"
//
//	REC002 - Invalid input: A submitted field is missing or malformed
//	         Action: Correct the form and submit again
//	         Patterns: "invalid input"
//
//	DB001  - Duplicate key: A record with this ID already exists
//	         Action: Use a different ID or edit the existing record
//	         Patterns: "duplicate key"
//
// # Remote Listing Errors (API001-API099)
//
//	API001 - Listing unavailable: The IPO listing service could not be reached
//	         Action: Try again in a few moments
//	         Patterns: "failed to load", "remote listing"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled: The request was cancelled
//	         Action: Please try again
//	         Patterns: "context canceled"
//
//	REQ002 - Request timeout: The request took too long
//	         Action: Please try again
//	         Patterns: "context deadline exceeded"
//
// # Database Errors (DB004-DB099)
//
//	DB004 - Connection refused: Unable to connect to database
//	        Action: Please try again in a few moments
//	        Patterns: "connection refused"
//
//	DB005 - Connection reset: Database connection was interrupted
//	        Action: Please try again
//	        Patterns: "connection reset"
//
//	DB006 - Timeout: Operation timed out
//	        Action: Please try again later
//	        Patterns: "timeout"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches:
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// # Pattern Matching
//
// A *UserError anywhere in the chain wins. Otherwise patterns are matched
// case-insensitively using strings.Contains and the first match wins, so
// more specific patterns come before general ones.

package core

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened (user-friendly)
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgNotFound = UserMessage{
		Message: "The requested record does not exist",
		Action:  "It may have been deleted. Return to the list and refresh",
		Code:    "REC001",
	}
	msgInvalidInput = UserMessage{
		Message: "A submitted field is missing or malformed",
		Action:  "Correct the form and submit again",
		Code:    "REC002",
	}
	msgListing = UserMessage{
		Message: "The IPO listing service could not be reached",
		Action:  "Try again in a few moments",
		Code:    "API001",
	}
)

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// Order matters: the first matching pattern wins.
var errorPatterns = []errorPattern{
	// Record errors
	{pattern: "not found", msg: msgNotFound},
	{pattern: "invalid input", msg: msgInvalidInput},
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with this ID already exists",
			Action:  "Use a different ID or edit the existing record",
			Code:    "DB001",
		},
	},

	// Remote listing
	{pattern: "failed to load", msg: msgListing},
	{pattern: "remote listing", msg: msgListing},

	// Request lifecycle
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The request took too long",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},

	// Database connectivity
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
			Code:    "DB005",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},

	// Rate limiting
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	err := fmt.Errorf("get %q: %w", id, store.ErrNotFound)
//	msg := MapError(err)
//	// msg.Code == "REC001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var ue *UserError
	if errors.As(err, &ue) {
		return ue.User
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with the message shown to users.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}

// NewValidationError reports a rejected form field with code REC002.
func NewValidationError(field, message string) *UserError {
	return &UserError{
		Technical: fmt.Errorf("invalid input: %s: %s", field, message),
		User: UserMessage{
			Message: message,
			Action:  msgInvalidInput.Action,
			Code:    msgInvalidInput.Code,
		},
	}
}
