package common

import (
	"context"
)

// BaseUseCase centralizes the authentication/ownership checks every
// command/query use case performs before touching a repository.
type BaseUseCase struct{}

func NewBaseUseCase() *BaseUseCase {
	return &BaseUseCase{}
}

func (uc *BaseUseCase) RequireAuthentication(ctx context.Context) error {
	isAuthenticated, _ := ctx.Value(AuthenticatedKey).(bool)
	if !isAuthenticated {
		return NewErrUnauthorized()
	}
	return nil
}

// RequireOwnership fails unless the authenticated caller's user id matches
// resourceOwner's, or the caller is a tenant/client admin (see IsAdmin).
func (uc *BaseUseCase) RequireOwnership(ctx context.Context, resourceOwner ResourceOwner) error {
	if IsAdmin(ctx) {
		return nil
	}

	currentOwner := GetResourceOwner(ctx)
	if resourceOwner.UserID != currentOwner.UserID {
		return NewErrForbidden()
	}
	return nil
}
