package identity_usecases

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	identity_entities "github.com/rivio-api/rivio-api/pkg/domain/identity/entities"
	identity_in "github.com/rivio-api/rivio-api/pkg/domain/identity/ports/in"
	identity_out "github.com/rivio-api/rivio-api/pkg/domain/identity/ports/out"
	identity_services "github.com/rivio-api/rivio-api/pkg/domain/identity/services"
)

// RegisterCompleteUseCase implements register_complete.
type RegisterCompleteUseCase struct {
	Tx          common.Transactor
	Otps        identity_out.AuthOtpReader
	OtpsWriter  identity_out.AuthOtpWriter
	Identities  identity_out.AuthIdentityReader
	IdentityW   identity_out.AuthIdentityWriter
	Users       identity_out.UserWriter
	Credentials identity_out.AuthCredentialWriter
	Hasher      identity_out.PasswordHasher
	Profiles    identity_out.ProfileProvisioner
	Sessions    identity_out.SessionIssuer
	Pepper      *identity_services.PepperHasher
}

func NewRegisterCompleteUseCase(
	tx common.Transactor,
	otps identity_out.AuthOtpReader,
	otpsWriter identity_out.AuthOtpWriter,
	identities identity_out.AuthIdentityReader,
	identityW identity_out.AuthIdentityWriter,
	users identity_out.UserWriter,
	credentials identity_out.AuthCredentialWriter,
	hasher identity_out.PasswordHasher,
	profiles identity_out.ProfileProvisioner,
	sessions identity_out.SessionIssuer,
	pepper *identity_services.PepperHasher,
) identity_in.RegisterCompleteCommandHandler {
	return &RegisterCompleteUseCase{
		Tx: tx, Otps: otps, OtpsWriter: otpsWriter, Identities: identities, IdentityW: identityW,
		Users: users, Credentials: credentials, Hasher: hasher, Profiles: profiles,
		Sessions: sessions, Pepper: pepper,
	}
}

func (uc *RegisterCompleteUseCase) Handle(ctx context.Context, cmd identity_in.RegisterCompleteCommand) (identity_in.AuthTokens, error) {
	kind, value, err := identity_services.NormalizeContact(cmd.Kind, cmd.Value)
	if err != nil {
		return identity_in.AuthTokens{}, err
	}

	var tokens identity_in.AuthTokens

	err = uc.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		otp, err := uc.Otps.FindLatestForUpdate(ctx, kind, value, identity_entities.OtpPurposeRegister)
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
		if existing != nil {
			return common.NewErrConflict("contact already registered")
		}

		otp.Consume(now)
		if err := uc.OtpsWriter.Update(ctx, otp); err != nil {
			return err
		}

		tenantID := common.GetResourceOwner(ctx).TenantID
		resourceOwner := common.NewResourceOwner(tenantID, uuid.Nil, uuid.Nil, uuid.Nil)
		user := identity_entities.NewUser(resourceOwner, "", "")
		if kind == identity_entities.ContactKindPhone {
			user.Phone = value
		} else {
			user.Email = value
		}

		if err := uc.Users.Create(ctx, user); err != nil {
			return err
		}

		identity := identity_entities.NewAuthIdentity(user.ID, kind, value)
		identity.MarkVerified(now)
		if err := uc.IdentityW.Create(ctx, identity); err != nil {
			return err
		}

		passwordHash, err := uc.Hasher.HashPassword(ctx, cmd.Password)
		if err != nil {
			return err
		}
		credential := identity_entities.NewAuthCredential(user.ID, passwordHash)
		if err := uc.Credentials.Upsert(ctx, credential); err != nil {
			return err
		}

		if err := uc.Profiles.EnsureProfile(ctx, user.ID); err != nil {
			return err
		}

		accessToken, refreshToken, err := uc.Sessions.IssueSession(ctx, user.ID)
		if err != nil {
			return err
		}

		tokens = identity_in.AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken, UserID: user.ID}
		return nil
	})

	if err != nil {
		slog.ErrorContext(ctx, "register_complete failed", "err", err)
		return identity_in.AuthTokens{}, err
	}

	return tokens, nil
}
