package identity_usecases

import (
	"context"
	"time"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	identity_entities "github.com/rivio-api/rivio-api/pkg/domain/identity/entities"
	identity_in "github.com/rivio-api/rivio-api/pkg/domain/identity/ports/in"
	identity_out "github.com/rivio-api/rivio-api/pkg/domain/identity/ports/out"
	identity_services "github.com/rivio-api/rivio-api/pkg/domain/identity/services"
)

// ContactChangeRequestUseCase issues an OTP scoped to (user_id, kind)
//
// latest-row semantics").
type ContactChangeRequestUseCase struct {
	Otps   identity_out.AuthOtpWriter
	Pepper *identity_services.PepperHasher
	OtpTTL time.Duration
	IsDev  bool
}

func NewContactChangeRequestUseCase(otps identity_out.AuthOtpWriter, pepper *identity_services.PepperHasher, otpTTL time.Duration, isDev bool) identity_in.ContactChangeRequestCommandHandler {
	return &ContactChangeRequestUseCase{Otps: otps, Pepper: pepper, OtpTTL: otpTTL, IsDev: isDev}
}

func (uc *ContactChangeRequestUseCase) Handle(ctx context.Context, cmd identity_in.ContactChangeRequestCommand) (identity_in.RequestOtpResult, error) {
	kind, value, err := identity_services.NormalizeContact(cmd.NewKind, cmd.NewValue)
	if err != nil {
		return identity_in.RequestOtpResult{}, err
	}

	code, err := identity_services.GenerateOtpCode()
	if err != nil {
		return identity_in.RequestOtpResult{}, err
	}

	otp := identity_entities.NewAuthOtp(kind, value, identity_entities.OtpPurposeContactChange, uc.Pepper.HashOtpCode(code), uc.OtpTTL)
	if err := uc.Otps.Create(ctx, otp); err != nil {
		return identity_in.RequestOtpResult{}, err
	}

	result := identity_in.RequestOtpResult{Purpose: identity_entities.OtpPurposeContactChange}
	if uc.IsDev {
		result.DevCode = code
	}
	return result, nil
}

// ContactChangeConfirmUseCase verifies the OTP, ensures the new contact is
// not already claimed, and updates the User mirror column + AuthIdentity row.
type ContactChangeConfirmUseCase struct {
	Tx         common.Transactor
	Otps       identity_out.AuthOtpReader
	OtpsWriter identity_out.AuthOtpWriter
	Identities identity_out.AuthIdentityReader
	IdentityW  identity_out.AuthIdentityWriter
	Users      identity_out.UserReader
	UsersW     identity_out.UserWriter
	Pepper     *identity_services.PepperHasher
}

func NewContactChangeConfirmUseCase(
	tx common.Transactor,
	otps identity_out.AuthOtpReader,
	otpsWriter identity_out.AuthOtpWriter,
	identities identity_out.AuthIdentityReader,
	identityW identity_out.AuthIdentityWriter,
	users identity_out.UserReader,
	usersW identity_out.UserWriter,
	pepper *identity_services.PepperHasher,
) identity_in.ContactChangeConfirmCommandHandler {
	return &ContactChangeConfirmUseCase{
		Tx: tx, Otps: otps, OtpsWriter: otpsWriter, Identities: identities, IdentityW: identityW,
		Users: users, UsersW: usersW, Pepper: pepper,
	}
}

func (uc *ContactChangeConfirmUseCase) Handle(ctx context.Context, cmd identity_in.ContactChangeConfirmCommand) error {
	kind, value, err := identity_services.NormalizeContact(cmd.NewKind, cmd.NewValue)
	if err != nil {
		return err
	}

	return uc.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		otp, err := uc.Otps.FindLatestForUpdate(ctx, kind, value, identity_entities.OtpPurposeContactChange)
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

		existing, err := uc.Identities.FindVerifiedByKindValue(ctx, kind, value)
		if err != nil && !common.IsNotFoundError(err) {
			return err
		}
		if existing != nil && existing.UserID != cmd.UserID {
			return common.NewErrConflict("contact already in use")
		}

		otp.Consume(now)
		if err := uc.OtpsWriter.Update(ctx, otp); err != nil {
			return err
		}

		user, err := uc.Users.FindByID(ctx, cmd.UserID)
		if err != nil {
			return err
		}
		if kind == identity_entities.ContactKindPhone {
			user.Phone = value
		} else {
			user.Email = value
		}
		user.UpdatedAt = now
		if err := uc.UsersW.Update(ctx, user); err != nil {
			return err
		}

		current, err := uc.Identities.FindByUserAndKind(ctx, cmd.UserID, kind)
		if common.IsNotFoundError(err) {
			identity := identity_entities.NewAuthIdentity(cmd.UserID, kind, value)
			identity.MarkVerified(now)
			return uc.IdentityW.Create(ctx, identity)
		}
		if err != nil {
			return err
		}

		current.Value = value
		current.MarkVerified(now)
		return uc.IdentityW.Update(ctx, current)
	})
}
