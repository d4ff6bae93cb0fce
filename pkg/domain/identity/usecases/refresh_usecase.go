package identity_usecases

import (
	"context"
	"log/slog"
	"time"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	identity_in "github.com/rivio-api/rivio-api/pkg/domain/identity/ports/in"
	identity_out "github.com/rivio-api/rivio-api/pkg/domain/identity/ports/out"
)

// RefreshUseCase implements refresh: locks the claimed session,
// validates it, and atomically rotates it to a replacement.
type RefreshUseCase struct {
	Tx       common.Transactor
	Sessions identity_out.AuthSessionReader
	SessionW identity_out.AuthSessionWriter
	Issuer   identity_out.SessionIssuer
}

func NewRefreshUseCase(tx common.Transactor, sessions identity_out.AuthSessionReader, sessionW identity_out.AuthSessionWriter, issuer identity_out.SessionIssuer) identity_in.RefreshCommandHandler {
	return &RefreshUseCase{Tx: tx, Sessions: sessions, SessionW: sessionW, Issuer: issuer}
}

func (uc *RefreshUseCase) Handle(ctx context.Context, cmd identity_in.RefreshCommand) (identity_in.AuthTokens, error) {
	sessionID, claimedUserID, err := uc.Issuer.ParseRefreshToken(cmd.RefreshToken)
	if err != nil {
		return identity_in.AuthTokens{}, common.NewErrUnauthorized("invalid refresh token")
	}

	var tokens identity_in.AuthTokens

	err = uc.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		session, err := uc.Sessions.FindByIDForUpdate(ctx, sessionID)
		if common.IsNotFoundError(err) {
			return common.NewErrUnauthorized("session not found")
		}
		if err != nil {
			return err
		}

		if session.UserID != claimedUserID {
			return common.NewErrUnauthorized("session user mismatch")
		}

		presentedHash := uc.Issuer.HashRefreshToken(cmd.RefreshToken)
		now := time.Now().UTC()
		if !session.IsUsable(now, presentedHash) {
			return common.NewErrUnauthorized("revoked")
		}

		replacement, accessToken, refreshToken, err := uc.Issuer.RotateSession(ctx, session.UserID)
		if err != nil {
			return err
		}

		session.Rotate(replacement.ID, now)
		if err := uc.SessionW.Update(ctx, session); err != nil {
			return err
		}

		tokens = identity_in.AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken, UserID: session.UserID}
		return nil
	})

	if err != nil {
		slog.WarnContext(ctx, "refresh failed", "err", err)
		return identity_in.AuthTokens{}, err
	}

	return tokens, nil
}
