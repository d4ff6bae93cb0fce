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

// RequestOtpUseCase implements request_otp: normalize contact,
// enforce the per-(kind,value,purpose) cooldown, skip issuance silently for
// password_reset against an unverified contact (anti-enumeration), otherwise
// insert a fresh peppered code.
type RequestOtpUseCase struct {
	Otps             identity_out.AuthOtpWriter
	OtpReader        identity_out.AuthOtpReader
	Identities       identity_out.AuthIdentityReader
	Pepper           *identity_services.PepperHasher
	OtpTTL           time.Duration
	CooldownSeconds  int
	IsDevelopment    bool
}

func NewRequestOtpUseCase(
	otps identity_out.AuthOtpWriter,
	otpReader identity_out.AuthOtpReader,
	identities identity_out.AuthIdentityReader,
	pepper *identity_services.PepperHasher,
	otpTTL time.Duration,
	cooldownSeconds int,
	isDevelopment bool,
) identity_in.RequestOtpCommandHandler {
	return &RequestOtpUseCase{
		Otps:            otps,
		OtpReader:       otpReader,
		Identities:      identities,
		Pepper:          pepper,
		OtpTTL:          otpTTL,
		CooldownSeconds: cooldownSeconds,
		IsDevelopment:   isDevelopment,
	}
}

func (uc *RequestOtpUseCase) Handle(ctx context.Context, cmd identity_in.RequestOtpCommand) (identity_in.RequestOtpResult, error) {
	kind, value, err := identity_services.NormalizeContact(cmd.Kind, cmd.Value)
	if err != nil {
		return identity_in.RequestOtpResult{}, err
	}

	if cmd.Purpose == identity_entities.OtpPurposePasswordReset {
		_, err := uc.Identities.FindVerifiedByKindValue(ctx, kind, value)
		if common.IsNotFoundError(err) {
			slog.InfoContext(ctx, "password reset requested for unverified contact, silently succeeding", "kind", kind)
			return identity_in.RequestOtpResult{Purpose: cmd.Purpose}, nil
		}
		if err != nil {
			return identity_in.RequestOtpResult{}, err
		}
	}

	now := time.Now().UTC()
	latest, err := uc.OtpReader.FindLatest(ctx, kind, value, cmd.Purpose)
	if err != nil && !common.IsNotFoundError(err) {
		return identity_in.RequestOtpResult{}, err
	}
	if latest != nil {
		elapsed := now.Sub(latest.CreatedAt)
		if elapsed < time.Duration(uc.CooldownSeconds)*time.Second {
			return identity_in.RequestOtpResult{}, common.NewErrRateLimited("otp requested too recently, retry later")
		}
	}

	code, err := identity_services.GenerateOtpCode()
	if err != nil {
		return identity_in.RequestOtpResult{}, err
	}

	otp := identity_entities.NewAuthOtp(kind, value, cmd.Purpose, uc.Pepper.HashOtpCode(code), uc.OtpTTL)
	if err := uc.Otps.Create(ctx, otp); err != nil {
		slog.ErrorContext(ctx, "failed to persist otp", "err", err)
		return identity_in.RequestOtpResult{}, err
	}

	result := identity_in.RequestOtpResult{Purpose: cmd.Purpose}
	if uc.IsDevelopment {
		result.DevCode = code
	}
	return result, nil
}
