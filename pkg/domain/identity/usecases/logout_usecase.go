package identity_usecases

import (
	"context"
	"log/slog"
	"time"

	identity_entities "github.com/rivio-api/rivio-api/pkg/domain/identity/entities"
	identity_in "github.com/rivio-api/rivio-api/pkg/domain/identity/ports/in"
	identity_out "github.com/rivio-api/rivio-api/pkg/domain/identity/ports/out"
)

// LogoutUseCase implements logout: best-effort revocation,
// idempotent success regardless of whether the session is found.
type LogoutUseCase struct {
	Sessions identity_out.AuthSessionReader
	SessionW identity_out.AuthSessionWriter
	Issuer   identity_out.SessionIssuer
}

func NewLogoutUseCase(sessions identity_out.AuthSessionReader, sessionW identity_out.AuthSessionWriter, issuer identity_out.SessionIssuer) identity_in.LogoutCommandHandler {
	return &LogoutUseCase{Sessions: sessions, SessionW: sessionW, Issuer: issuer}
}

func (uc *LogoutUseCase) Handle(ctx context.Context, cmd identity_in.LogoutCommand) error {
	sessionID, _, err := uc.Issuer.ParseRefreshToken(cmd.RefreshToken)
	if err != nil {
		return nil
	}

	session, err := uc.Sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil
	}

	session.Revoke(identity_entities.RevokedReasonLogout, time.Now().UTC())
	if err := uc.SessionW.Update(ctx, session); err != nil {
		slog.WarnContext(ctx, "logout: failed to persist revocation", "err", err)
	}

	return nil
}
