package common

import (
	"fmt"
)

// ResourceType names an entity kind for error messages (see NewErrNotFound /
// NewErrAlreadyExists).
type ResourceType string

const (
	ResourceTypeUser               ResourceType = "User"
	ResourceTypeAuthIdentity       ResourceType = "AuthIdentity"
	ResourceTypeAuthOtp            ResourceType = "AuthOtp"
	ResourceTypeAuthSession        ResourceType = "AuthSession"
	ResourceTypeUserProfile        ResourceType = "UserProfile"
	ResourceTypeUserLadderState    ResourceType = "UserLadderState"
	ResourceTypeCategory           ResourceType = "Category"
	ResourceTypeMatch              ResourceType = "Match"
	ResourceTypeMatchParticipant   ResourceType = "MatchParticipant"
	ResourceTypeMatchConfirmation  ResourceType = "MatchConfirmation"
	ResourceTypeRatingEvent        ResourceType = "RatingEvent"
	ResourceTypeUserAnalyticsState ResourceType = "UserAnalyticsState"
	ResourceTypeBillingCustomer    ResourceType = "BillingCustomer"
	ResourceTypeBillingSubscription ResourceType = "BillingSubscription"
	ResourceTypeBillingWebhookEvent ResourceType = "BillingWebhookEvent"
	ResourceTypeUserEntitlement    ResourceType = "UserEntitlement"
)

// Error types for type assertions. Every handler boundary ends up switching
// on one of these via WriteErrorFromDomainError (http_response.go).
type ErrUnauthorized struct{ message string }

func (e *ErrUnauthorized) Error() string { return e.message }

type ErrForbidden struct{ message string }

func (e *ErrForbidden) Error() string { return e.message }

type ErrNotFound struct{ message string }

func (e *ErrNotFound) Error() string { return e.message }

type ErrAlreadyExists struct{ message string }

func (e *ErrAlreadyExists) Error() string { return e.message }

type ErrInvalidInput struct{ message string }

func (e *ErrInvalidInput) Error() string { return e.message }

type ErrBadRequest struct{ message string }

func (e *ErrBadRequest) Error() string { return e.message }

// ErrConflict covers spec taxonomy's 409 bucket: proposal-limit-reached,
// lazy-expired-during-confirm, ratified-match-reconfirmation, etc.
type ErrConflict struct{ message string }

func (e *ErrConflict) Error() string { return e.message }

// ErrRateLimited covers the 429 bucket: OTP cooldown, login attempt window.
type ErrRateLimited struct{ message string }

func (e *ErrRateLimited) Error() string { return e.message }

// ErrUnavailable covers the 503 bucket: misconfigured billing provider.
type ErrUnavailable struct{ message string }

func (e *ErrUnavailable) Error() string { return e.message }

func NewErrUnauthorized(messages ...string) error {
	msg := "Unauthorized"
	if len(messages) > 0 && messages[0] != "" {
		msg = messages[0]
	}
	return &ErrUnauthorized{message: msg}
}

func NewErrForbidden(messages ...string) error {
	msg := "Forbidden"
	if len(messages) > 0 && messages[0] != "" {
		msg = messages[0]
	}
	return &ErrForbidden{message: msg}
}

func NewErrAlreadyExists(resourceType ResourceType, fieldName string, value interface{}) error {
	return &ErrAlreadyExists{message: fmt.Sprintf("%s with %s %v already exists", resourceType, fieldName, value)}
}

func NewErrNotFound(resourceType ResourceType, fieldName string, value interface{}) error {
	return &ErrNotFound{message: fmt.Sprintf("%s with %s %v not found", resourceType, fieldName, value)}
}

func NewErrInvalidInput(message string) error {
	return &ErrInvalidInput{message: message}
}

func NewErrBadRequest(message string) error {
	return &ErrBadRequest{message: message}
}

func NewErrConflict(message string) error {
	return &ErrConflict{message: message}
}

func NewErrRateLimited(message string) error {
	return &ErrRateLimited{message: message}
}

func NewErrUnavailable(message string) error {
	return &ErrUnavailable{message: message}
}

func IsNotFoundError(err error) bool {
	_, ok := err.(*ErrNotFound)
	return ok
}

func IsUnauthorizedError(err error) bool {
	_, ok := err.(*ErrUnauthorized)
	return ok
}

func IsForbiddenError(err error) bool {
	_, ok := err.(*ErrForbidden)
	return ok
}

func IsBadRequestError(err error) bool {
	_, ok := err.(*ErrBadRequest)
	return ok
}

func IsInvalidInputError(err error) bool {
	_, ok := err.(*ErrInvalidInput)
	return ok
}

func IsAlreadyExistsError(err error) bool {
	_, ok := err.(*ErrAlreadyExists)
	return ok
}

func IsConflictError(err error) bool {
	_, ok := err.(*ErrConflict)
	return ok
}

func IsRateLimitedError(err error) bool {
	_, ok := err.(*ErrRateLimited)
	return ok
}

func IsUnavailableError(err error) bool {
	_, ok := err.(*ErrUnavailable)
	return ok
}
