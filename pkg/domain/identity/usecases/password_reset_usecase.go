package identity_usecases

import (
	"context"
	"log/slog"
	"time"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	identity_entities "github.com/rivio-api/rivio-api/pkg/domain/identity/entities"
	identity_in "github.com/rivio-api/rivio-api/pkg/domain/identity/ports/in"
	identity_out "github.com/rivio-api/rivio-api/pkg/domain/identity/ports/out"
	identity_services "github.com/rivio-api/rivio-api/pkg/domain/identity/services"
)

// PasswordResetRequestUseCase is request_otp scoped to purpose=password_reset.
type PasswordResetRequestUseCase struct {
	Inner identity_in.RequestOtpCommandHandler
}

func NewPasswordResetRequestUseCase(inner identity_in.RequestOtpCommandHandler) identity_in.PasswordResetRequestCommandHandler {
	return &PasswordResetRequestUseCase{Inner: inner}
}

func (uc *PasswordResetRequestUseCase) Handle(ctx context.Context, cmd identity_in.PasswordResetRequestCommand) (identity_in.RequestOtpResult, error) {
	return uc.Inner.Handle(ctx, identity_in.RequestOtpCommand{
		Kind:    cmd.Kind,
		Value:   cmd.Value,
		Purpose: identity_entities.OtpPurposePasswordReset,
	})
}

// PasswordResetConfirmUseCase verifies the OTP, rotates the credential, and
// revokes every active session for the user.
type PasswordResetConfirmUseCase struct {
	Tx          common.Transactor
	Otps        identity_out.AuthOtpReader
	OtpsWriter  identity_out.AuthOtpWriter
	Identities  identity_out.AuthIdentityReader
	Credentials identity_out.AuthCredentialWriter
	Hasher      identity_out.PasswordHasher
	Sessions    identity_out.AuthSessionWriter
	Pepper      *identity_services.PepperHasher
}

func NewPasswordResetConfirmUseCase(
	tx common.Transactor,
	otps identity_out.AuthOtpReader,
	otpsWriter identity_out.AuthOtpWriter,
	identities identity_out.AuthIdentityReader,
	credentials identity_out.AuthCredentialWriter,
	hasher identity_out.PasswordHasher,
	sessions identity_out.AuthSessionWriter,
	pepper *identity_services.PepperHasher,
) identity_in.PasswordResetConfirmCommandHandler {
	return &PasswordResetConfirmUseCase{
		Tx: tx, Otps: otps, OtpsWriter: otpsWriter, Identities: identities,
		Credentials: credentials, Hasher: hasher, Sessions: sessions, Pepper: pepper,
	}
}

func (uc *PasswordResetConfirmUseCase) Handle(ctx context.Context, cmd identity_in.PasswordResetConfirmCommand) error {
	kind, value, err := identity_services.NormalizeContact(cmd.Kind, cmd.Value)
	if err != nil {
		return err
	}

	return uc.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		otp, err := uc.Otps.FindLatestForUpdate(ctx, kind, value, identity_entities.OtpPurposePasswordReset)
		if common.IsNotFoundError(err) {
			return common.NewErrNotFound(common.ResourceTypeAuthOtp, "contact", value)
		}
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if otp.IsConsumed() {
			return common.NewErrConflict("otp already used")
		}
		if otp.IsExpired(now) {
			return common.NewErrBadRequest("otp expired")
		}
		if !otp.HasAttemptsRemaining() {
			return common.NewErrRateLimited("too many otp attempts")
		}
		if otp.CodeHash != uc.Pepper.HashOtpCode(cmd.Code) {
			otp.RecordAttempt()
			_ = uc.OtpsWriter.Update(ctx, otp)
			return common.NewErrInvalidInput("invalid code")
		}

		identity, err := uc.Identities.FindVerifiedByKindValue(ctx, kind, value)
		if common.IsNotFoundError(err) {
			return common.NewErrNotFound(common.ResourceTypeAuthIdentity, "contact", value)
		}
		if err != nil {
			return err
		}

		otp.Consume(now)
		if err := uc.OtpsWriter.Update(ctx, otp); err != nil {
			return err
		}

		passwordHash, err := uc.Hasher.HashPassword(ctx, cmd.NewPassword)
		if err != nil {
			return err
		}
		if err := uc.Credentials.Upsert(ctx, identity_entities.NewAuthCredential(identity.UserID, passwordHash)); err != nil {
			return err
		}

		if err := uc.Sessions.RevokeAllForUser(ctx, identity.UserID, identity_entities.RevokedReasonPasswordReset, now); err != nil {
			slog.ErrorContext(ctx, "failed to revoke sessions after password reset", "err", err)
			return err
		}

		return nil
	})
}
