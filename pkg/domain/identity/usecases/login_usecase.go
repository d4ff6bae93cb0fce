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

const loginAttemptWindowFailureMax = 8

// LoginUseCase implements login: identifier-kind inference,
// sliding-window attempt throttling, bcrypt comparison, session minting.
type LoginUseCase struct {
	Identities  identity_out.AuthIdentityReader
	Users       identity_out.UserReader
	UsersWriter identity_out.UserWriter
	Credentials identity_out.AuthCredentialReader
	Attempts    identity_out.AuthLoginAttemptWriter
	AttemptsR   identity_out.AuthLoginAttemptReader
	Hasher      identity_out.PasswordHasher
	Sessions    identity_out.SessionIssuer
	Pepper      *identity_services.PepperHasher
	WindowMin   int
	MaxFailures int
}

func NewLoginUseCase(
	identities identity_out.AuthIdentityReader,
	users identity_out.UserReader,
	usersWriter identity_out.UserWriter,
	credentials identity_out.AuthCredentialReader,
	attempts identity_out.AuthLoginAttemptWriter,
	attemptsR identity_out.AuthLoginAttemptReader,
	hasher identity_out.PasswordHasher,
	sessions identity_out.SessionIssuer,
	pepper *identity_services.PepperHasher,
	windowMin, maxFailures int,
) identity_in.LoginCommandHandler {
	if maxFailures <= 0 {
		maxFailures = loginAttemptWindowFailureMax
	}
	return &LoginUseCase{
		Identities: identities, Users: users, UsersWriter: usersWriter, Credentials: credentials,
		Attempts: attempts, AttemptsR: attemptsR, Hasher: hasher, Sessions: sessions, Pepper: pepper,
		WindowMin: windowMin, MaxFailures: maxFailures,
	}
}

func (uc *LoginUseCase) Handle(ctx context.Context, cmd identity_in.LoginCommand) (identity_in.AuthTokens, error) {
	kind := identity_services.InferContactKind(cmd.Identifier)
	_, value, err := identity_services.NormalizeContact(kind, cmd.Identifier)
	if err != nil {
		return identity_in.AuthTokens{}, err
	}

	loginKeyHash := uc.Pepper.HashLoginKey(kind, value)

	since := time.Now().UTC().Add(-time.Duration(uc.WindowMin) * time.Minute)
	failures, err := uc.AttemptsR.CountFailuresSince(ctx, loginKeyHash, since)
	if err != nil {
		return identity_in.AuthTokens{}, err
	}
	if failures >= uc.MaxFailures {
		return identity_in.AuthTokens{}, common.NewErrRateLimited("too many failed login attempts, try again later")
	}

	fail := func() (identity_in.AuthTokens, error) {
		_ = uc.Attempts.Create(ctx, identity_entities.NewAuthLoginAttempt(loginKeyHash, false))
		return identity_in.AuthTokens{}, common.NewErrUnauthorized("invalid credentials")
	}

	identity, err := uc.Identities.FindVerifiedByKindValue(ctx, kind, value)
	if common.IsNotFoundError(err) {
		return fail()
	}
	if err != nil {
		return identity_in.AuthTokens{}, err
	}

	credential, err := uc.Credentials.FindByUserID(ctx, identity.UserID)
	if err != nil {
		return fail()
	}

	if err := uc.Hasher.ComparePassword(ctx, credential.PasswordHash, cmd.Password); err != nil {
		return fail()
	}

	user, err := uc.Users.FindByID(ctx, identity.UserID)
	if err != nil {
		return identity_in.AuthTokens{}, err
	}
	if !user.IsActive() {
		return identity_in.AuthTokens{}, common.NewErrForbidden("account blocked")
	}

	if err := uc.Attempts.Create(ctx, identity_entities.NewAuthLoginAttempt(loginKeyHash, true)); err != nil {
		slog.WarnContext(ctx, "failed to record successful login attempt", "err", err)
	}

	user.RecordLogin(time.Now().UTC())
	if err := uc.UsersWriter.Update(ctx, user); err != nil {
		slog.WarnContext(ctx, "failed to update last_login_at", "err", err)
	}

	accessToken, refreshToken, err := uc.Sessions.IssueSession(ctx, user.ID)
	if err != nil {
		return identity_in.AuthTokens{}, err
	}

	return identity_in.AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken, UserID: user.ID}, nil
}
