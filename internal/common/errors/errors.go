// Package errors provides standardized error handling for the WordPress tool surfaces.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Image pipeline errors. These never abort a post creation; the pipeline
// turns them into an inline failure marker.
const (
	ErrCodeFileNotFound       ErrorCode = "FILE_NOT_FOUND"
	ErrCodeMediaUploadFailed  ErrorCode = "MEDIA_UPLOAD_FAILED"
	ErrCodeMediaResolveFailed ErrorCode = "MEDIA_RESOLVE_FAILED"
)

// Operation errors. These abort the tool call.
const (
	ErrCodeNoUpdateFields     ErrorCode = "NO_UPDATE_FIELDS"
	ErrCodeWordPressAPI       ErrorCode = "WORDPRESS_API_ERROR"
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeCredentialsMissing ErrorCode = "CREDENTIALS_MISSING"
	ErrCodeInputParsingFailed ErrorCode = "INPUT_PARSING_FAILED"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Summary())
}

// Summary is the human readable form used in tool output and inline failure markers.
func (e *StandardError) Summary() string {
	if e.Details == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Details)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewFileNotFoundError reports a local image that is missing at upload time.
func NewFileNotFoundError(path string) *StandardError {
	return &StandardError{
		Code:      ErrCodeFileNotFound,
		Message:   "File not found",
		Details:   path,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewFileReadError reports a local image that exists but cannot be read. It
// keeps the not-found code so callers treat both cases alike.
func NewFileReadError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFileNotFound,
		Message:   "File could not be read",
		Details:   fmt.Sprintf("%s: %v", path, err),
		Retryable: false,
		Metadata:  map[string]interface{}{"path": path},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewMediaUploadError wraps a rejected or failed multipart upload. The remote
// message, when there is one, is already folded into err by the WordPress client.
func NewMediaUploadError(filename string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMediaUploadFailed,
		Message:   "Media upload error",
		Details:   err.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"filename": filename},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewMediaResolveError wraps a failed media-detail lookup.
func NewMediaResolveError(assetID int64, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMediaResolveFailed,
		Message:   "Media lookup error",
		Details:   err.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"assetId": assetID},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewNoUpdateFieldsError rejects an update that would change nothing.
func NewNoUpdateFieldsError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNoUpdateFields,
		Message:   "No update data provided",
		Details:   "Please specify at least one field to update.",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewWordPressAPIError wraps a failed post create/update/read call.
func NewWordPressAPIError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWordPressAPI,
		Message:   fmt.Sprintf("WordPress %s failed", operation),
		Details:   err.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"operation": operation},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewValidationError carries the flattened schema violations.
func NewValidationError(messages []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Input validation failed",
		Details:   strings.Join(messages, "; "),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCredentialsMissingError is returned when neither the call nor the
// environment supplies a site URL and credential pair.
func NewCredentialsMissingError() *StandardError {
	return &StandardError{
		Code:      ErrCodeCredentialsMissing,
		Message:   "WordPress credentials not found",
		Details:   "Please set WORDPRESS_SITE_URL, WORDPRESS_USERNAME, and WORDPRESS_PASSWORD environment variables or provide them as parameters.",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInputParsingError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputParsingFailed,
		Message:   "Failed to parse input",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// GetRetryCount returns the job retry count for a code. Every WordPress call
// is made once; a rerun of create-post would upload its images again and may
// create a second post, so no code is handed back to the broker for retry.
func GetRetryCount(code ErrorCode) int {
	switch code {
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandard returns the first StandardError in err's chain.
func AsStandard(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandard(err)
	return ok && stdErr.Code == code
}

// Normalize always yields a StandardError, wrapping foreign errors as internal.
func Normalize(err error) *StandardError {
	if stdErr, ok := AsStandard(err); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// Summarize renders any error for display without the StandardError prefix.
func Summarize(err error) string {
	if stdErr, ok := AsStandard(err); ok {
		return stdErr.Summary()
	}
	return err.Error()
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeFileNotFound, ErrCodeMediaUploadFailed, ErrCodeMediaResolveFailed:
		return "MEDIA"
	case ErrCodeWordPressAPI:
		return "REMOTE"
	case ErrCodeValidationFailed, ErrCodeInputParsingFailed, ErrCodeNoUpdateFields, ErrCodeCredentialsMissing:
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
