package bridge

import (
	"fmt"

	"github.com/sudandigitalarchive/sda-mcp/internal/archive"
)

// ValidationError reports caller-supplied arguments that fail the
// normalizer's constraints. It is local: no HTTP call was attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Error codes carried in every error envelope.
const (
	CodeInvalidArgument    = "invalid_argument"
	CodeArchiveUnreachable = "archive_unreachable"
	CodeArchiveStatus      = "archive_status"
	CodeArchiveDecode      = "archive_decode"
	CodeInternal           = "internal_error"
)

// ErrorInfo is the envelope-ready view of a failed tool call.
// StatusCode is the remote HTTP status, set only for CodeArchiveStatus.
type ErrorInfo struct {
	Code       string
	Message    string
	StatusCode int
}

// MapError converts any error from the normalize/call pipeline into a
// coded ErrorInfo. It is total: unknown errors map to internal_error so
// every failure still produces a well-formed envelope.
func MapError(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: CodeInternal, Message: "internal error"}
	}

	if verr, ok := err.(*ValidationError); ok {
		return ErrorInfo{Code: CodeInvalidArgument, Message: verr.Message}
	}

	if apiErr := archive.AsError(err); apiErr != nil {
		switch apiErr.Origin {
		case archive.OriginTransport:
			return ErrorInfo{Code: CodeArchiveUnreachable, Message: apiErr.Error()}
		case archive.OriginStatus:
			return ErrorInfo{Code: CodeArchiveStatus, Message: apiErr.Error(), StatusCode: apiErr.StatusCode}
		case archive.OriginDecode:
			return ErrorInfo{Code: CodeArchiveDecode, Message: apiErr.Error()}
		}
	}

	return ErrorInfo{Code: CodeInternal, Message: err.Error()}
}

func (i ErrorInfo) render() string {
	return fmt.Sprintf("%s: %s", i.Code, i.Message)
}
