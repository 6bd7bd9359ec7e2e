package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrEnvExpansion  ErrorCode = "ENV_EXPANSION"

	// Lock file errors
	ErrStateLoad ErrorCode = "STATE_LOAD"
	ErrStateSave ErrorCode = "STATE_SAVE"

	// Validation errors, always aggregated over every offending path
	ErrMissingTargets ErrorCode = "MISSING_TARGETS"
	ErrLinkConflict   ErrorCode = "LINK_CONFLICT"

	// FileSystem errors
	ErrLinkInspect   ErrorCode = "LINK_INSPECT"
	ErrFileRemove    ErrorCode = "FILE_REMOVE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
)

// SymkeeperError represents a structured error with code and details.
//
// Paths is set on aggregate errors (missing targets, link conflicts) and
// always holds a sorted, de-duplicated list.
type SymkeeperError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Paths   []string
	Wrapped error
}

// Error implements the error interface
func (e *SymkeeperError) Error() string {
	msg := e.Message
	if len(e.Paths) > 0 {
		msg = fmt.Sprintf("%s:\n%s", msg, formatPaths(e.Paths))
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Unwrap implements the errors.Unwrap interface
func (e *SymkeeperError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SymkeeperError) Is(target error) bool {
	var targetErr *SymkeeperError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SymkeeperError with the given code and message
func New(code ErrorCode, message string) *SymkeeperError {
	return &SymkeeperError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SymkeeperError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SymkeeperError {
	return &SymkeeperError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// NewPathSet creates an aggregate error listing every offending path once,
// in sorted order.
func NewPathSet(code ErrorCode, message string, paths []string) *SymkeeperError {
	err := New(code, message)
	err.Paths = sortedUnique(paths)
	return err
}

// Wrap wraps an existing error with a SymkeeperError
func Wrap(err error, code ErrorCode, message string) *SymkeeperError {
	if err == nil {
		return nil
	}
	return &SymkeeperError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SymkeeperError {
	if err == nil {
		return nil
	}
	return &SymkeeperError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SymkeeperError) WithDetail(key string, value interface{}) *SymkeeperError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var skErr *SymkeeperError
	if errors.As(err, &skErr) {
		return skErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SymkeeperError
func GetErrorCode(err error) ErrorCode {
	var skErr *SymkeeperError
	if errors.As(err, &skErr) {
		return skErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SymkeeperError
func GetErrorDetails(err error) map[string]interface{} {
	var skErr *SymkeeperError
	if errors.As(err, &skErr) {
		return skErr.Details
	}
	return nil
}

// GetErrorPaths returns the offending paths of the first aggregate error in
// the chain, or nil
func GetErrorPaths(err error) []string {
	for err != nil {
		var skErr *SymkeeperError
		if !errors.As(err, &skErr) {
			return nil
		}
		if len(skErr.Paths) > 0 {
			return skErr.Paths
		}
		err = skErr.Wrapped
	}
	return nil
}

func sortedUnique(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func formatPaths(paths []string) string {
	lines := make([]string, len(paths))
	for i, p := range paths {
		lines[i] = "- " + p
	}
	return strings.Join(lines, "\n")
}
