package identity_in

import (
	"context"

	"github.com/google/uuid"

	identity_entities "github.com/rivio-api/rivio-api/pkg/domain/identity/entities"
)

type RequestOtpCommand struct {
	Kind    identity_entities.ContactKind
	Value   string
	Purpose identity_entities.OtpPurpose
}

type RequestOtpResult struct {
	Purpose identity_entities.OtpPurpose
	// DevCode is only populated in development mode.
	DevCode string
}

type RequestOtpCommandHandler interface {
	Handle(ctx context.Context, cmd RequestOtpCommand) (RequestOtpResult, error)
}

type RegisterCompleteCommand struct {
	Kind     identity_entities.ContactKind
	Value    string
	Code     string
	Password string
}

type AuthTokens struct {
	AccessToken  string
	RefreshToken string
	UserID       uuid.UUID
}

type RegisterCompleteCommandHandler interface {
	Handle(ctx context.Context, cmd RegisterCompleteCommand) (AuthTokens, error)
}

type LoginCommand struct {
	Identifier string
	Password   string
}

type LoginCommandHandler interface {
	Handle(ctx context.Context, cmd LoginCommand) (AuthTokens, error)
}

type RefreshCommand struct {
	RefreshToken string
}

type RefreshCommandHandler interface {
	Handle(ctx context.Context, cmd RefreshCommand) (AuthTokens, error)
}

type LogoutCommand struct {
	RefreshToken string
}

type LogoutCommandHandler interface {
	Handle(ctx context.Context, cmd LogoutCommand) error
}

type PasswordResetRequestCommand struct {
	Kind  identity_entities.ContactKind
	Value string
}

type PasswordResetRequestCommandHandler interface {
	Handle(ctx context.Context, cmd PasswordResetRequestCommand) (RequestOtpResult, error)
}

type PasswordResetConfirmCommand struct {
	Kind        identity_entities.ContactKind
	Value       string
	Code        string
	NewPassword string
}

type PasswordResetConfirmCommandHandler interface {
	Handle(ctx context.Context, cmd PasswordResetConfirmCommand) error
}

type ContactChangeRequestCommand struct {
	UserID   uuid.UUID
	NewKind  identity_entities.ContactKind
	NewValue string
}

type ContactChangeRequestCommandHandler interface {
	Handle(ctx context.Context, cmd ContactChangeRequestCommand) (RequestOtpResult, error)
}

type ContactChangeConfirmCommand struct {
	UserID   uuid.UUID
	NewKind  identity_entities.ContactKind
	NewValue string
	Code     string
}

type ContactChangeConfirmCommandHandler interface {
	Handle(ctx context.Context, cmd ContactChangeConfirmCommand) error
}
