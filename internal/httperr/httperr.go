// Package httperr defines the domain error taxonomy and its mapping to HTTP
// responses. Services return these sentinels; handlers translate them at the
// boundary so status codes are decided in exactly one place.
package httperr

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when a resource id does not resolve.
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden is returned when the caller lacks ownership or role.
	ErrForbidden = errors.New("you are not allowed to perform this action")
	// ErrUnauthenticated is returned when no valid token accompanies a protected call.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidCredentials is returned on login with a bad username/password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAccountInactive is returned on login for expired or deactivated accounts.
	ErrAccountInactive = errors.New("account is inactive")
	// ErrUserExists is returned when a username or email is already taken.
	ErrUserExists = errors.New("username or email already taken")
	// ErrInvalidRefreshToken is returned for unknown or expired refresh tokens.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")

	// ErrAlreadyVoted is returned on a second vote by the same user.
	ErrAlreadyVoted = errors.New("already voted on this poll")
	// ErrPollExpired is returned when voting after the poll window closed.
	ErrPollExpired = errors.New("poll has expired")
	// ErrInvalidOption is returned when the option index is out of range.
	ErrInvalidOption = errors.New("invalid poll option")

	// ErrAlreadyRegistered is returned on duplicate workshop registration.
	ErrAlreadyRegistered = errors.New("already registered for this workshop")
	// ErrWorkshopFull is returned when a workshop is at capacity.
	ErrWorkshopFull = errors.New("workshop is at full capacity")
	// ErrNotRegistered is returned when cancelling a registration that does not exist.
	ErrNotRegistered = errors.New("not registered for this workshop")

	// ErrAlreadyResponded is returned on a second response to the same question.
	ErrAlreadyResponded = errors.New("already responded to this question")
	// ErrFeedbackClosed is returned when the question is inactive or past expiry.
	ErrFeedbackClosed = errors.New("feedback question is closed")

	// ErrRedirectURLRequired is returned when a blogs update lacks a redirect URL.
	ErrRedirectURLRequired = errors.New("redirect url is required for blogs")
	// ErrInvalidUpdateType is returned for an unknown update type.
	ErrInvalidUpdateType = errors.New("invalid update type")
	// ErrInvalidCategory is returned for an unknown feedback category.
	ErrInvalidCategory = errors.New("invalid feedback category")
	// ErrInvalidStatus is returned for an unknown review status.
	ErrInvalidStatus = errors.New("invalid status")
)

// Response is the JSON error body.
type Response struct {
	Msg string `json:"msg"`
}

// ValidationResponse is the JSON body for field-level validation failures.
type ValidationResponse struct {
	Errors []string `json:"errors"`
}

// MapToHTTP maps a domain error to its status code and response body.
// Unrecognized errors become an opaque 500 so internals never leak.
func MapToHTTP(err error) (int, Response) {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, Response{Msg: err.Error()}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, Response{Msg: err.Error()}
	case errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrAccountInactive),
		errors.Is(err, ErrInvalidRefreshToken):
		return http.StatusUnauthorized, Response{Msg: err.Error()}
	case errors.Is(err, ErrUserExists),
		errors.Is(err, ErrAlreadyVoted),
		errors.Is(err, ErrAlreadyRegistered),
		errors.Is(err, ErrWorkshopFull),
		errors.Is(err, ErrAlreadyResponded):
		return http.StatusConflict, Response{Msg: err.Error()}
	case errors.Is(err, ErrPollExpired),
		errors.Is(err, ErrFeedbackClosed):
		return http.StatusGone, Response{Msg: err.Error()}
	case errors.Is(err, ErrInvalidOption),
		errors.Is(err, ErrNotRegistered),
		errors.Is(err, ErrRedirectURLRequired),
		errors.Is(err, ErrInvalidUpdateType),
		errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrInvalidStatus):
		return http.StatusBadRequest, Response{Msg: err.Error()}
	default:
		return http.StatusInternalServerError, Response{Msg: "internal server error"}
	}
}
