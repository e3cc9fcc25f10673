// Package core provides the ingestion and browsing logic for the exoplanet
// archive.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. Codes are grouped by category:
//
// # Source Errors (FETCH001-FETCH099)
//
//	FETCH001 - Failed to load exoplanet data
//	           Action: Retry loading the data
//	           Patterns: "fetch failed", "too many concurrent fetches"
//
//	FETCH002 - The data file is larger than the configured limit
//	           Action: Raise SOURCE_MAX_BYTES or use a smaller export
//	           Patterns: "source too large"
//
//	FETCH003 - The data source did not answer in time
//	           Action: Retry in a few moments
//	           Patterns: "timeout", "deadline exceeded"
//
// # Format Errors (SCHEMA001-SCHEMA099)
//
//	SCHEMA001 - The data file has no archive header line
//	            Action: Check that the file is a NASA Exoplanet Archive CSV export
//	            Patterns: "schema not found"
//
// # Request Errors (VIEW001, REQ001-REQ099)
//
//	VIEW001 - Unknown view
//	REQ001  - Invalid request parameter
//	REQ002  - Request was cancelled
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests
//
// Anything else maps to ERR000; the technical error is only logged.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened (user-friendly)
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user
// messages. The first matching pattern wins, so specific patterns come
// before general ones.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Timeouts (FETCH003)
	// Checked before FETCH001: a timed-out fetch also reads "fetch failed".
	// =========================================================================
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "The data source did not answer in time",
			Action:  "Retry in a few moments",
			Code:    "FETCH003",
		},
	},
	{
		pattern: "deadline exceeded",
		msg: UserMessage{
			Message: "The data source did not answer in time",
			Action:  "Retry in a few moments",
			Code:    "FETCH003",
		},
	},

	// =========================================================================
	// Source Errors (FETCH001-FETCH002)
	// =========================================================================
	{
		pattern: "source too large",
		msg: UserMessage{
			Message: "The data file is larger than the configured limit",
			Action:  "Raise SOURCE_MAX_BYTES or use a smaller export",
			Code:    "FETCH002",
		},
	},
	{
		pattern: "fetch failed",
		msg: UserMessage{
			Message: "Failed to load exoplanet data",
			Action:  "Retry loading the data",
			Code:    "FETCH001",
		},
	},
	{
		pattern: "too many concurrent fetches",
		msg: UserMessage{
			Message: "Failed to load exoplanet data",
			Action:  "Retry loading the data",
			Code:    "FETCH001",
		},
	},

	// =========================================================================
	// Format Errors (SCHEMA001)
	// =========================================================================
	{
		pattern: "schema not found",
		msg: UserMessage{
			Message: "The data file has no archive header line",
			Action:  "Check that the file is a NASA Exoplanet Archive CSV export",
			Code:    "SCHEMA001",
		},
	},

	// =========================================================================
	// Request Errors (VIEW001, REQ001-REQ002)
	// =========================================================================
	{
		pattern: "unknown view",
		msg: UserMessage{
			Message: "Unknown view",
			Action:  "Choose one of the listed views",
			Code:    "VIEW001",
		},
	},
	{
		pattern: "invalid parameter",
		msg: UserMessage{
			Message: "Invalid request parameter",
			Action:  "Check the values you entered",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
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
// It returns the first case-insensitive pattern match, or ERR000.
//
// Example:
//
//	err := &FetchError{Path: "/exoplanet-data.csv", StatusCode: 503}
//	msg := MapError(err)
//	// msg.Code == "FETCH001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
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

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// ParamError reports a request value that could not be used.
type ParamError struct {
	Name  string
	Value string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %q", e.Name, e.Value)
}
