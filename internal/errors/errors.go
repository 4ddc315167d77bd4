package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned on any login failure. The message never
	// reveals whether the name or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid name or password")
	// ErrInvalidName is returned when a username is empty after trimming.
	ErrInvalidName = errors.New("invalid username")
	// ErrDuplicateName is returned when the username is already taken.
	ErrDuplicateName = errors.New("username already taken")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrWeakPassword is returned when the password is shorter than 6 characters.
	ErrWeakPassword = errors.New("password must be at least 6 characters")
	// ErrPasswordMismatch is returned when the confirmation does not match.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrInvalidCode is returned when a submitted verification code does not match.
	ErrInvalidCode = errors.New("invalid verification code")
	// ErrCodeExpired is returned when a code is submitted past its expiry.
	ErrCodeExpired = errors.New("verification code expired")
	// ErrAlreadyVerified is returned when verification is attempted on a verified account.
	ErrAlreadyVerified = errors.New("account is already verified")
	// ErrNotVerified is returned when an unverified account attempts a gated operation.
	ErrNotVerified = errors.New("account is not verified")

	// ErrInvalidCategory is returned for a category outside vegfruit/grocery.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidItemName is returned for an empty or over-long item name.
	ErrInvalidItemName = errors.New("invalid item name")
	// ErrDuplicateItem is returned when (owner, name, category) already exists.
	ErrDuplicateItem = errors.New("item already exists")
	// ErrItemNotFound covers both missing items and items owned by someone else,
	// so ownership failures are indistinguishable from nonexistence.
	ErrItemNotFound = errors.New("item not found")
	// ErrUndoNotFound is the same rule applied to deleted-item records.
	ErrUndoNotFound = errors.New("cannot undo")

	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case ErrInvalidName:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_NAME")
	case ErrDuplicateName:
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_NAME")
	case ErrDuplicateEmail:
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_EMAIL")
	case ErrWeakPassword:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "WEAK_PASSWORD")
	case ErrPasswordMismatch:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_MISMATCH")
	case ErrInvalidCode:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CODE")
	case ErrCodeExpired:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CODE_EXPIRED")
	case ErrAlreadyVerified:
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_VERIFIED")
	case ErrNotVerified:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_VERIFIED")
	case ErrInvalidCategory:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CATEGORY")
	case ErrInvalidItemName:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ITEM_NAME")
	case ErrDuplicateItem:
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_ITEM")
	case ErrItemNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ITEM_NOT_FOUND")
	case ErrUndoNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "UNDO_NOT_FOUND")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
