package ioc

import (
	"context"
	"log/slog"
	"os"
	"time"

	// env
	"github.com/joho/godotenv"

	// container
	container "github.com/golobby/container/v3"
	"github.com/google/uuid"

	// db
	"github.com/jmoiron/sqlx"
	postgres "github.com/rivio-api/rivio-api/pkg/infra/db/postgres"

	// crypto/security
	crypto "github.com/rivio-api/rivio-api/pkg/infra/crypto"
	security "github.com/rivio-api/rivio-api/pkg/infra/security"

	// billing adapters
	appstore "github.com/rivio-api/rivio-api/pkg/infra/adapters/appstore"
	googleplay "github.com/rivio-api/rivio-api/pkg/infra/adapters/googleplay"
	stripe "github.com/rivio-api/rivio-api/pkg/infra/adapters/stripe"

	// shared
	common "github.com/rivio-api/rivio-api/pkg/domain"

	// identity
	identity_entities "github.com/rivio-api/rivio-api/pkg/domain/identity/entities"
	identity_in "github.com/rivio-api/rivio-api/pkg/domain/identity/ports/in"
	identity_out "github.com/rivio-api/rivio-api/pkg/domain/identity/ports/out"
	identity_services "github.com/rivio-api/rivio-api/pkg/domain/identity/services"
	identity_usecases "github.com/rivio-api/rivio-api/pkg/domain/identity/usecases"

	// profile
	profile_in "github.com/rivio-api/rivio-api/pkg/domain/profile/ports/in"
	profile_out "github.com/rivio-api/rivio-api/pkg/domain/profile/ports/out"
	profile_services "github.com/rivio-api/rivio-api/pkg/domain/profile/services"
	profile_usecases "github.com/rivio-api/rivio-api/pkg/domain/profile/usecases"

	// match
	match_in "github.com/rivio-api/rivio-api/pkg/domain/match/ports/in"
	match_out "github.com/rivio-api/rivio-api/pkg/domain/match/ports/out"
	match_usecases "github.com/rivio-api/rivio-api/pkg/domain/match/usecases"

	// elo
	elo_in "github.com/rivio-api/rivio-api/pkg/domain/elo/ports/in"
	elo_out "github.com/rivio-api/rivio-api/pkg/domain/elo/ports/out"
	elo_usecases "github.com/rivio-api/rivio-api/pkg/domain/elo/usecases"

	// analytics
	analytics_in "github.com/rivio-api/rivio-api/pkg/domain/analytics/ports/in"
	analytics_out "github.com/rivio-api/rivio-api/pkg/domain/analytics/ports/out"
	analytics_usecases "github.com/rivio-api/rivio-api/pkg/domain/analytics/usecases"

	// ranking
	ranking_in "github.com/rivio-api/rivio-api/pkg/domain/ranking/ports/in"
	ranking_out "github.com/rivio-api/rivio-api/pkg/domain/ranking/ports/out"
	ranking_usecases "github.com/rivio-api/rivio-api/pkg/domain/ranking/usecases"

	// history
	history_in "github.com/rivio-api/rivio-api/pkg/domain/history/ports/in"
	history_out "github.com/rivio-api/rivio-api/pkg/domain/history/ports/out"
	history_usecases "github.com/rivio-api/rivio-api/pkg/domain/history/usecases"

	// billing
	billing_entities "github.com/rivio-api/rivio-api/pkg/domain/billing/entities"
	billing_in "github.com/rivio-api/rivio-api/pkg/domain/billing/ports/in"
	billing_out "github.com/rivio-api/rivio-api/pkg/domain/billing/ports/out"
	billing_services "github.com/rivio-api/rivio-api/pkg/domain/billing/services"
	billing_usecases "github.com/rivio-api/rivio-api/pkg/domain/billing/usecases"

	// audit
	audit_out "github.com/rivio-api/rivio-api/pkg/domain/audit/ports/out"
	audit_usecases "github.com/rivio-api/rivio-api/pkg/domain/audit/usecases"
)

type ContainerBuilder struct {
	Container container.Container
}

func NewContainerBuilder() *ContainerBuilder {
	c := container.New()

	b := &ContainerBuilder{
		c,
	}

	err := c.Singleton(func() container.Container {
		return b.Container
	})

	if err != nil {
		slog.Error("Failed to register *container.Container in NewContainerBuilder.")
		panic(err)
	}

	err = c.Singleton(func() *ContainerBuilder {
		return b
	})

	if err != nil {
		slog.Error("Failed to register *ContainerBuilder in NewContainerBuilder.")
		panic(err)
	}

	return b
}

func (b *ContainerBuilder) Build() container.Container {
	return b.Container
}

func (b *ContainerBuilder) WithEnvFile() *ContainerBuilder {
	if os.Getenv("DEV_ENV") == "true" {
		err := godotenv.Load()
		if err != nil {
			slog.Error("Failed to load .env file")
			panic(err)
		}
	}

	err := b.Container.Singleton(func() (common.Config, error) {
		return EnvironmentConfig()
	})

	if err != nil {
		slog.Error("Failed to load EnvironmentConfig.")
		panic(err)
	}

	return b
}

func (b *ContainerBuilder) With(resolver interface{}) *ContainerBuilder {
	c := b.Container

	err := c.Singleton(resolver)

	if err != nil {
		slog.Error("Failed to register resolver.", "err", err)
		panic(err)
	}

	return b
}

// InjectPostgres registers the *sqlx.DB pool, the common.Transactor, every
// repository across all nine domains, and binds each to its ports/out
// interface(s).
func InjectPostgres(c container.Container) error {
	err := c.Singleton(func() (*sqlx.DB, error) {
		var config common.Config
		if err := c.Resolve(&config); err != nil {
			slog.Error("Failed to resolve config for *sqlx.DB.", "err", err)
			return nil, err
		}

		db, err := postgres.Connect(postgres.Config{
			DSN:             config.DB.URL,
			MaxOpenConns:    config.DB.MaxOpenConns,
			MaxIdleConns:    config.DB.MaxIdleConns,
			ConnMaxLifetime: config.DB.ConnMaxLifetime,
		})
		if err != nil {
			slog.Error("Failed to connect to postgres.", "err", err)
			return nil, err
		}
		return db, nil
	})
	if err != nil {
		slog.Error("Failed to load *sqlx.DB.", "err", err)
		return err
	}

	err = c.Singleton(func() (common.Transactor, error) {
		var db *sqlx.DB
		if err := c.Resolve(&db); err != nil {
			slog.Error("Failed to resolve *sqlx.DB for common.Transactor.", "err", err)
			return nil, err
		}
		return postgres.NewTransactor(db), nil
	})
	if err != nil {
		slog.Error("Failed to load common.Transactor.", "err", err)
		return err
	}

	if err := injectIdentityRepositories(c); err != nil {
		return err
	}
	if err := injectProfileRepositories(c); err != nil {
		return err
	}
	if err := injectMatchRepositories(c); err != nil {
		return err
	}
	if err := injectEloRepositories(c); err != nil {
		return err
	}
	if err := injectAnalyticsRepositories(c); err != nil {
		return err
	}
	if err := injectRankingRepositories(c); err != nil {
		return err
	}
	if err := injectHistoryRepositories(c); err != nil {
		return err
	}
	if err := injectBillingRepositories(c); err != nil {
		return err
	}
	if err := injectAuditRepositories(c); err != nil {
		return err
	}
	if err := injectSecurity(c); err != nil {
		return err
	}

	return nil
}

func resolveDB(c container.Container) (*sqlx.DB, error) {
	var db *sqlx.DB
	err := c.Resolve(&db)
	return db, err
}

// Close releases resources held by the container, namely the Postgres pool.
// Safe to call even if the pool was never wired (e.g. in tests).
func (b *ContainerBuilder) Close(c container.Container) {
	db, err := resolveDB(c)
	if err != nil || db == nil {
		return
	}
	if err := db.Close(); err != nil {
		slog.Error("Failed to close *sqlx.DB.", "err", err)
	}
}

func injectIdentityRepositories(c container.Container) error {
	if err := c.Singleton(func() (identity_out.UserWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewUserRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load identity_out.UserWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (identity_out.UserReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewUserRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load identity_out.UserReader.", "err", err)
		return err
	}

	if err := c.Singleton(func() (identity_out.AuthIdentityWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewAuthIdentityRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load identity_out.AuthIdentityWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (identity_out.AuthIdentityReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewAuthIdentityRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load identity_out.AuthIdentityReader.", "err", err)
		return err
	}

	if err := c.Singleton(func() (identity_out.AuthCredentialWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewAuthCredentialRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load identity_out.AuthCredentialWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (identity_out.AuthCredentialReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewAuthCredentialRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load identity_out.AuthCredentialReader.", "err", err)
		return err
	}

	if err := c.Singleton(func() (identity_out.AuthOtpWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewAuthOtpRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load identity_out.AuthOtpWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (identity_out.AuthOtpReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewAuthOtpRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load identity_out.AuthOtpReader.", "err", err)
		return err
	}

	if err := c.Singleton(func() (identity_out.AuthSessionWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewAuthSessionRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load identity_out.AuthSessionWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (identity_out.AuthSessionReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewAuthSessionRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load identity_out.AuthSessionReader.", "err", err)
		return err
	}

	if err := c.Singleton(func() (identity_out.AuthLoginAttemptWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewAuthLoginAttemptRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load identity_out.AuthLoginAttemptWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (identity_out.AuthLoginAttemptReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewAuthLoginAttemptRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load identity_out.AuthLoginAttemptReader.", "err", err)
		return err
	}

	return nil
}

func injectProfileRepositories(c container.Container) error {
	if err := c.Singleton(func() (profile_out.UserProfileWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewUserProfileRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load profile_out.UserProfileWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (profile_out.UserProfileReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewUserProfileRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load profile_out.UserProfileReader.", "err", err)
		return err
	}

	if err := c.Singleton(func() (profile_out.CategoryReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewCategoryRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load profile_out.CategoryReader.", "err", err)
		return err
	}

	if err := c.Singleton(func() (profile_out.MxCategoryMapReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewMxCategoryMapRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load profile_out.MxCategoryMapReader.", "err", err)
		return err
	}

	if err := c.Singleton(func() (profile_out.UserLadderStateWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewUserLadderStateRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load profile_out.UserLadderStateWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (profile_out.UserLadderStateReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewUserLadderStateRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load profile_out.UserLadderStateReader.", "err", err)
		return err
	}

	return nil
}

func injectMatchRepositories(c container.Container) error {
	if err := c.Singleton(func() (match_out.MatchWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewMatchRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load match_out.MatchWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (match_out.MatchReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewMatchRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load match_out.MatchReader.", "err", err)
		return err
	}

	if err := c.Singleton(func() (match_out.MatchParticipantReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewMatchParticipantRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load match_out.MatchParticipantReader.", "err", err)
		return err
	}

	if err := c.Singleton(func() (match_out.MatchScoreWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewMatchScoreRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load match_out.MatchScoreWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (match_out.MatchScoreReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewMatchScoreRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load match_out.MatchScoreReader.", "err", err)
		return err
	}

	if err := c.Singleton(func() (match_out.MatchConfirmationWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewMatchConfirmationRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load match_out.MatchConfirmationWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (match_out.MatchConfirmationReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewMatchConfirmationRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load match_out.MatchConfirmationReader.", "err", err)
		return err
	}

	if err := c.Singleton(func() (match_out.MatchDisputeWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewMatchDisputeRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load match_out.MatchDisputeWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (match_out.ClubReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewClubRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load match_out.ClubReader.", "err", err)
		return err
	}

	return nil
}

func injectEloRepositories(c container.Container) error {
	if err := c.Singleton(func() (elo_out.RatingEventWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewRatingEventRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load elo_out.RatingEventWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (elo_out.RatingEventReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewRatingEventRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load elo_out.RatingEventReader.", "err", err)
		return err
	}

	return nil
}

func injectAnalyticsRepositories(c container.Container) error {
	if err := c.Singleton(func() (analytics_out.MatchContextReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewMatchContextRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load analytics_out.MatchContextReader.", "err", err)
		return err
	}

	if err := c.Singleton(func() (analytics_out.UserAnalyticsStateWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewUserAnalyticsStateRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load analytics_out.UserAnalyticsStateWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (analytics_out.UserAnalyticsStateReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewUserAnalyticsStateRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load analytics_out.UserAnalyticsStateReader.", "err", err)
		return err
	}

	if err := c.Singleton(func() (analytics_out.UserAnalyticsMatchAppliedWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewUserAnalyticsMatchAppliedRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load analytics_out.UserAnalyticsMatchAppliedWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (analytics_out.UserAnalyticsPartnerStatsWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewUserAnalyticsPartnerStatsRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load analytics_out.UserAnalyticsPartnerStatsWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (analytics_out.UserAnalyticsRivalStatsWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewUserAnalyticsRivalStatsRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load analytics_out.UserAnalyticsRivalStatsWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (analytics_out.CurrentRatingReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewCurrentRatingRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load analytics_out.CurrentRatingReader.", "err", err)
		return err
	}

	return nil
}

func injectRankingRepositories(c container.Container) error {
	if err := c.Singleton(func() (ranking_out.RankingReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewRankingRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load ranking_out.RankingReader.", "err", err)
		return err
	}

	return nil
}

func injectHistoryRepositories(c container.Container) error {
	if err := c.Singleton(func() (history_out.MatchHistoryReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewMatchHistoryRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load history_out.MatchHistoryReader.", "err", err)
		return err
	}

	if err := c.Singleton(func() (history_out.ProfileVisibilityReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewProfileVisibilityRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load history_out.ProfileVisibilityReader.", "err", err)
		return err
	}

	return nil
}

func injectBillingRepositories(c container.Container) error {
	if err := c.Singleton(func() (billing_out.BillingCustomerWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewBillingCustomerRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load billing_out.BillingCustomerWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (billing_out.BillingCustomerReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewBillingCustomerRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load billing_out.BillingCustomerReader.", "err", err)
		return err
	}

	if err := c.Singleton(func() (billing_out.BillingSubscriptionWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewBillingSubscriptionRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load billing_out.BillingSubscriptionWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (billing_out.BillingSubscriptionReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewBillingSubscriptionRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load billing_out.BillingSubscriptionReader.", "err", err)
		return err
	}

	if err := c.Singleton(func() (billing_out.BillingWebhookEventWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewBillingWebhookEventRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load billing_out.BillingWebhookEventWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (billing_out.UserEntitlementWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewUserEntitlementRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load billing_out.UserEntitlementWriter.", "err", err)
		return err
	}

	if err := c.Singleton(func() (billing_out.UserEntitlementReader, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewUserEntitlementRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load billing_out.UserEntitlementReader.", "err", err)
		return err
	}

	if err := c.Singleton(func() (billing_out.WebhookSignatureVerifier, error) {
		return billing_services.NewHMACSignatureVerifier(), nil
	}); err != nil {
		slog.Error("Failed to load billing_out.WebhookSignatureVerifier.", "err", err)
		return err
	}

	if err := c.Singleton(func() (map[billing_entities.Provider]billing_out.WebhookNormalizer, error) {
		return map[billing_entities.Provider]billing_out.WebhookNormalizer{
			billing_entities.ProviderStripe:     stripe.NewStripeAdapter(),
			billing_entities.ProviderAppStore:   appstore.NewWebhookNormalizer(),
			billing_entities.ProviderGooglePlay: googleplay.NewWebhookNormalizer(),
		}, nil
	}); err != nil {
		slog.Error("Failed to load billing webhook normalizers.", "err", err)
		return err
	}

	if err := c.Singleton(func() (map[billing_entities.Provider]string, error) {
		var config common.Config
		if err := c.Resolve(&config); err != nil {
			return nil, err
		}
		return map[billing_entities.Provider]string{
			billing_entities.ProviderAppStore:   config.Billing.WebhookSigningSecret,
			billing_entities.ProviderGooglePlay: config.Billing.WebhookSigningSecret,
		}, nil
	}); err != nil {
		slog.Error("Failed to load billing webhook secrets map.", "err", err)
		return err
	}

	if err := c.Singleton(func() (map[billing_entities.Provider]billing_out.ReceiptValidator, error) {
		var config common.Config
		if err := c.Resolve(&config); err != nil {
			return nil, err
		}

		googlePlayAdapter, err := googleplay.NewAdapter(config.Billing.GooglePlayServiceAccount, config.Billing.GooglePlayPackageName)
		if err != nil {
			slog.Error("Failed to build googleplay.Adapter.", "err", err)
			return nil, err
		}

		return map[billing_entities.Provider]billing_out.ReceiptValidator{
			billing_entities.ProviderAppStore:   appstore.NewAdapter(config.Billing.AppStoreSharedSecret, config.Billing.AppStoreSandbox),
			billing_entities.ProviderGooglePlay: googlePlayAdapter,
		}, nil
	}); err != nil {
		slog.Error("Failed to load billing receipt validators.", "err", err)
		return err
	}

	return nil
}

// injectSecurity registers the adaptive rate limiter the REST router applies
// as inbound middleware (see cmd/rest-api).
func injectSecurity(c container.Container) error {
	if err := c.Singleton(func() (*security.AdaptiveRateLimiter, error) {
		return security.NewAdaptiveRateLimiter(nil), nil
	}); err != nil {
		slog.Error("Failed to load *security.AdaptiveRateLimiter.", "err", err)
		return err
	}
	return nil
}

func injectAuditRepositories(c container.Container) error {
	if err := c.Singleton(func() (audit_out.AuditLogWriter, error) {
		db, err := resolveDB(c)
		if err != nil {
			return nil, err
		}
		return postgres.NewAuditLogRepository(db), nil
	}); err != nil {
		slog.Error("Failed to load audit_out.AuditLogWriter.", "err", err)
		return err
	}

	return nil
}

// WithUseCases wires every domain's use-case constructors as golobby
// singletons, resolving each dependency from the registrations InjectPostgres
// and the crypto/security/billing adapters above provide.
func (b *ContainerBuilder) WithUseCases() *ContainerBuilder {
	c := b.Container

	if err := wireIdentityUseCases(c); err != nil {
		slog.Error("Failed to wire identity use cases.", "err", err)
		panic(err)
	}
	if err := wireProfileUseCases(c); err != nil {
		slog.Error("Failed to wire profile use cases.", "err", err)
		panic(err)
	}
	if err := wireEloUseCase(c); err != nil {
		slog.Error("Failed to wire elo use case.", "err", err)
		panic(err)
	}
	if err := wireAnalyticsUseCases(c); err != nil {
		slog.Error("Failed to wire analytics use cases.", "err", err)
		panic(err)
	}
	if err := wireAuditUseCase(c); err != nil {
		slog.Error("Failed to wire audit use case.", "err", err)
		panic(err)
	}
	if err := wireMatchUseCases(c); err != nil {
		slog.Error("Failed to wire match use cases.", "err", err)
		panic(err)
	}
	if err := wireRankingUseCase(c); err != nil {
		slog.Error("Failed to wire ranking use case.", "err", err)
		panic(err)
	}
	if err := wireHistoryUseCases(c); err != nil {
		slog.Error("Failed to wire history use cases.", "err", err)
		panic(err)
	}
	if err := wireBillingUseCases(c); err != nil {
		slog.Error("Failed to wire billing use cases.", "err", err)
		panic(err)
	}

	return b
}

func wireIdentityUseCases(c container.Container) error {
	if err := c.Singleton(func() (*identity_services.PepperHasher, error) {
		var config common.Config
		if err := c.Resolve(&config); err != nil {
			return nil, err
		}
		return identity_services.NewPepperHasher(config.Auth.OTPPepper, config.Auth.LoginKeyPepper), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (identity_out.PasswordHasher, error) {
		return crypto.NewBcryptPasswordHasherAdapter(0), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (*crypto.JWTIssuer, error) {
		var config common.Config
		if err := c.Resolve(&config); err != nil {
			return nil, err
		}
		return crypto.NewJWTIssuer(
			config.Auth.JWTSigningKey,
			time.Duration(config.Auth.JWTAccessMinutes)*time.Minute,
			time.Duration(config.Auth.JWTRefreshDays)*24*time.Hour,
		), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (identity_out.SessionIssuer, error) {
		var jwtIssuer *crypto.JWTIssuer
		if err := c.Resolve(&jwtIssuer); err != nil {
			return nil, err
		}
		var pepper *identity_services.PepperHasher
		if err := c.Resolve(&pepper); err != nil {
			return nil, err
		}
		var sessions identity_out.AuthSessionWriter
		if err := c.Resolve(&sessions); err != nil {
			return nil, err
		}
		var config common.Config
		if err := c.Resolve(&config); err != nil {
			return nil, err
		}
		refreshTTL := time.Duration(config.Auth.JWTRefreshDays) * 24 * time.Hour
		return crypto.NewSessionIssuerAdapter(jwtIssuer, pepper, sessions, refreshTTL), nil
	}); err != nil {
		return err
	}

	// ProfileProvisioner is implemented by profile's EnsureProfileUseCase,
	// wired after profile's own use cases register below — see
	// wireProfileUseCases, which also registers identity_out.ProfileProvisioner.

	if err := c.Singleton(func() (identity_in.RequestOtpCommandHandler, error) {
		var otps identity_out.AuthOtpWriter
		var otpReader identity_out.AuthOtpReader
		var identities identity_out.AuthIdentityReader
		var pepper *identity_services.PepperHasher
		var config common.Config
		if err := c.Resolve(&otps); err != nil {
			return nil, err
		}
		if err := c.Resolve(&otpReader); err != nil {
			return nil, err
		}
		if err := c.Resolve(&identities); err != nil {
			return nil, err
		}
		if err := c.Resolve(&pepper); err != nil {
			return nil, err
		}
		if err := c.Resolve(&config); err != nil {
			return nil, err
		}
		return identity_usecases.NewRequestOtpUseCase(
			otps, otpReader, identities, pepper,
			time.Duration(config.Auth.OTPTTLMinutes)*time.Minute,
			config.Auth.OTPRequestCooldownSec,
			config.Server.Env != "production",
		), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (identity_in.RegisterCompleteCommandHandler, error) {
		var tx common.Transactor
		var otps identity_out.AuthOtpReader
		var otpsWriter identity_out.AuthOtpWriter
		var identities identity_out.AuthIdentityReader
		var identityW identity_out.AuthIdentityWriter
		var users identity_out.UserWriter
		var credentials identity_out.AuthCredentialWriter
		var hasher identity_out.PasswordHasher
		var profiles identity_out.ProfileProvisioner
		var sessions identity_out.SessionIssuer
		var pepper *identity_services.PepperHasher
		if err := c.Resolve(&tx); err != nil {
			return nil, err
		}
		if err := c.Resolve(&otps); err != nil {
			return nil, err
		}
		if err := c.Resolve(&otpsWriter); err != nil {
			return nil, err
		}
		if err := c.Resolve(&identities); err != nil {
			return nil, err
		}
		if err := c.Resolve(&identityW); err != nil {
			return nil, err
		}
		if err := c.Resolve(&users); err != nil {
			return nil, err
		}
		if err := c.Resolve(&credentials); err != nil {
			return nil, err
		}
		if err := c.Resolve(&hasher); err != nil {
			return nil, err
		}
		if err := c.Resolve(&profiles); err != nil {
			return nil, err
		}
		if err := c.Resolve(&sessions); err != nil {
			return nil, err
		}
		if err := c.Resolve(&pepper); err != nil {
			return nil, err
		}
		return identity_usecases.NewRegisterCompleteUseCase(
			tx, otps, otpsWriter, identities, identityW, users, credentials, hasher, profiles, sessions, pepper,
		), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (identity_in.LoginCommandHandler, error) {
		var identities identity_out.AuthIdentityReader
		var users identity_out.UserReader
		var usersWriter identity_out.UserWriter
		var credentials identity_out.AuthCredentialReader
		var attempts identity_out.AuthLoginAttemptWriter
		var attemptsR identity_out.AuthLoginAttemptReader
		var hasher identity_out.PasswordHasher
		var sessions identity_out.SessionIssuer
		var pepper *identity_services.PepperHasher
		var config common.Config
		if err := c.Resolve(&identities); err != nil {
			return nil, err
		}
		if err := c.Resolve(&users); err != nil {
			return nil, err
		}
		if err := c.Resolve(&usersWriter); err != nil {
			return nil, err
		}
		if err := c.Resolve(&credentials); err != nil {
			return nil, err
		}
		if err := c.Resolve(&attempts); err != nil {
			return nil, err
		}
		if err := c.Resolve(&attemptsR); err != nil {
			return nil, err
		}
		if err := c.Resolve(&hasher); err != nil {
			return nil, err
		}
		if err := c.Resolve(&sessions); err != nil {
			return nil, err
		}
		if err := c.Resolve(&pepper); err != nil {
			return nil, err
		}
		if err := c.Resolve(&config); err != nil {
			return nil, err
		}
		return identity_usecases.NewLoginUseCase(
			identities, users, usersWriter, credentials, attempts, attemptsR, hasher, sessions, pepper,
			config.Auth.LoginAttemptWindowMin, config.Auth.LoginAttemptMaxFailures,
		), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (identity_in.RefreshCommandHandler, error) {
		var tx common.Transactor
		var sessions identity_out.AuthSessionReader
		var sessionW identity_out.AuthSessionWriter
		var issuer identity_out.SessionIssuer
		if err := c.Resolve(&tx); err != nil {
			return nil, err
		}
		if err := c.Resolve(&sessions); err != nil {
			return nil, err
		}
		if err := c.Resolve(&sessionW); err != nil {
			return nil, err
		}
		if err := c.Resolve(&issuer); err != nil {
			return nil, err
		}
		return identity_usecases.NewRefreshUseCase(tx, sessions, sessionW, issuer), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (identity_in.LogoutCommandHandler, error) {
		var sessions identity_out.AuthSessionReader
		var sessionW identity_out.AuthSessionWriter
		var issuer identity_out.SessionIssuer
		if err := c.Resolve(&sessions); err != nil {
			return nil, err
		}
		if err := c.Resolve(&sessionW); err != nil {
			return nil, err
		}
		if err := c.Resolve(&issuer); err != nil {
			return nil, err
		}
		return identity_usecases.NewLogoutUseCase(sessions, sessionW, issuer), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (identity_in.PasswordResetRequestCommandHandler, error) {
		var inner identity_in.RequestOtpCommandHandler
		if err := c.Resolve(&inner); err != nil {
			return nil, err
		}
		return identity_usecases.NewPasswordResetRequestUseCase(inner), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (identity_in.PasswordResetConfirmCommandHandler, error) {
		var tx common.Transactor
		var otps identity_out.AuthOtpReader
		var otpsWriter identity_out.AuthOtpWriter
		var identities identity_out.AuthIdentityReader
		var credentials identity_out.AuthCredentialWriter
		var hasher identity_out.PasswordHasher
		var sessions identity_out.AuthSessionWriter
		var pepper *identity_services.PepperHasher
		if err := c.Resolve(&tx); err != nil {
			return nil, err
		}
		if err := c.Resolve(&otps); err != nil {
			return nil, err
		}
		if err := c.Resolve(&otpsWriter); err != nil {
			return nil, err
		}
		if err := c.Resolve(&identities); err != nil {
			return nil, err
		}
		if err := c.Resolve(&credentials); err != nil {
			return nil, err
		}
		if err := c.Resolve(&hasher); err != nil {
			return nil, err
		}
		if err := c.Resolve(&sessions); err != nil {
			return nil, err
		}
		if err := c.Resolve(&pepper); err != nil {
			return nil, err
		}
		return identity_usecases.NewPasswordResetConfirmUseCase(
			tx, otps, otpsWriter, identities, credentials, hasher, sessions, pepper,
		), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (identity_in.ContactChangeRequestCommandHandler, error) {
		var otps identity_out.AuthOtpWriter
		var pepper *identity_services.PepperHasher
		var config common.Config
		if err := c.Resolve(&otps); err != nil {
			return nil, err
		}
		if err := c.Resolve(&pepper); err != nil {
			return nil, err
		}
		if err := c.Resolve(&config); err != nil {
			return nil, err
		}
		return identity_usecases.NewContactChangeRequestUseCase(
			otps, pepper,
			time.Duration(config.Auth.OTPTTLMinutes)*time.Minute,
			config.Server.Env != "production",
		), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (identity_in.ContactChangeConfirmCommandHandler, error) {
		var tx common.Transactor
		var otps identity_out.AuthOtpReader
		var otpsWriter identity_out.AuthOtpWriter
		var identities identity_out.AuthIdentityReader
		var identityW identity_out.AuthIdentityWriter
		var users identity_out.UserReader
		var usersW identity_out.UserWriter
		var pepper *identity_services.PepperHasher
		if err := c.Resolve(&tx); err != nil {
			return nil, err
		}
		if err := c.Resolve(&otps); err != nil {
			return nil, err
		}
		if err := c.Resolve(&otpsWriter); err != nil {
			return nil, err
		}
		if err := c.Resolve(&identities); err != nil {
			return nil, err
		}
		if err := c.Resolve(&identityW); err != nil {
			return nil, err
		}
		if err := c.Resolve(&users); err != nil {
			return nil, err
		}
		if err := c.Resolve(&usersW); err != nil {
			return nil, err
		}
		if err := c.Resolve(&pepper); err != nil {
			return nil, err
		}
		return identity_usecases.NewContactChangeConfirmUseCase(
			tx, otps, otpsWriter, identities, identityW, users, usersW, pepper,
		), nil
	}); err != nil {
		return err
	}

	return nil
}

func wireProfileUseCases(c container.Container) error {
	if err := c.Singleton(func() (*profile_services.AliasGenerator, error) {
		var profiles profile_out.UserProfileReader
		if err := c.Resolve(&profiles); err != nil {
			return nil, err
		}
		return profile_services.NewAliasGenerator(profiles), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (*profile_usecases.EnsureProfileUseCase, error) {
		var writer profile_out.UserProfileWriter
		var reader profile_out.UserProfileReader
		var aliases *profile_services.AliasGenerator
		if err := c.Resolve(&writer); err != nil {
			return nil, err
		}
		if err := c.Resolve(&reader); err != nil {
			return nil, err
		}
		if err := c.Resolve(&aliases); err != nil {
			return nil, err
		}
		return profile_usecases.NewEnsureProfileUseCase(writer, reader, aliases), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (profile_in.EnsureProfileHandler, error) {
		var uc *profile_usecases.EnsureProfileUseCase
		if err := c.Resolve(&uc); err != nil {
			return nil, err
		}
		return uc, nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (identity_out.ProfileProvisioner, error) {
		var uc *profile_usecases.EnsureProfileUseCase
		if err := c.Resolve(&uc); err != nil {
			return nil, err
		}
		return uc, nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (profile_in.UpdateProfileCommandHandler, error) {
		var profiles profile_out.UserProfileWriter
		var profileR profile_out.UserProfileReader
		var categories profile_out.CategoryReader
		var mxMap profile_out.MxCategoryMapReader
		var ladderStateW profile_out.UserLadderStateWriter
		var ladderStateR profile_out.UserLadderStateReader
		if err := c.Resolve(&profiles); err != nil {
			return nil, err
		}
		if err := c.Resolve(&profileR); err != nil {
			return nil, err
		}
		if err := c.Resolve(&categories); err != nil {
			return nil, err
		}
		if err := c.Resolve(&mxMap); err != nil {
			return nil, err
		}
		if err := c.Resolve(&ladderStateW); err != nil {
			return nil, err
		}
		if err := c.Resolve(&ladderStateR); err != nil {
			return nil, err
		}
		return profile_usecases.NewUpdateProfileUseCase(profiles, profileR, categories, mxMap, ladderStateW, ladderStateR), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (profile_in.PlayEligibilityQueryHandler, error) {
		var profiles profile_out.UserProfileReader
		var ladderStates profile_out.UserLadderStateReader
		if err := c.Resolve(&profiles); err != nil {
			return nil, err
		}
		if err := c.Resolve(&ladderStates); err != nil {
			return nil, err
		}
		return profile_usecases.NewPlayEligibilityUseCase(profiles, ladderStates), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (profile_in.GetProfileQueryHandler, error) {
		var profiles profile_out.UserProfileReader
		if err := c.Resolve(&profiles); err != nil {
			return nil, err
		}
		return profile_usecases.NewGetProfileUseCase(profiles), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (profile_in.ListLadderStatesQueryHandler, error) {
		var ladderStates profile_out.UserLadderStateReader
		if err := c.Resolve(&ladderStates); err != nil {
			return nil, err
		}
		return profile_usecases.NewListLadderStatesUseCase(ladderStates), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (profile_in.SearchProfilesQueryHandler, error) {
		var profiles profile_out.UserProfileReader
		if err := c.Resolve(&profiles); err != nil {
			return nil, err
		}
		return profile_usecases.NewSearchProfilesUseCase(profiles), nil
	}); err != nil {
		return err
	}

	return nil
}

func wireEloUseCase(c container.Container) error {
	if err := c.Singleton(func() (*elo_usecases.ApplyRatingsUseCase, error) {
		var matches match_out.MatchReader
		var matchWriter match_out.MatchWriter
		var participants match_out.MatchParticipantReader
		var scores match_out.MatchScoreReader
		var ladderStates profile_out.UserLadderStateReader
		var ladderStateW profile_out.UserLadderStateWriter
		var ratingEvents elo_out.RatingEventWriter
		var config common.Config
		if err := c.Resolve(&matches); err != nil {
			return nil, err
		}
		if err := c.Resolve(&matchWriter); err != nil {
			return nil, err
		}
		if err := c.Resolve(&participants); err != nil {
			return nil, err
		}
		if err := c.Resolve(&scores); err != nil {
			return nil, err
		}
		if err := c.Resolve(&ladderStates); err != nil {
			return nil, err
		}
		if err := c.Resolve(&ladderStateW); err != nil {
			return nil, err
		}
		if err := c.Resolve(&ratingEvents); err != nil {
			return nil, err
		}
		if err := c.Resolve(&config); err != nil {
			return nil, err
		}
		return elo_usecases.NewApplyRatingsUseCase(
			matches, matchWriter, participants, scores, ladderStates, ladderStateW, ratingEvents,
			config.Match.ProvisionalMatches, config.Match.ProvisionalCap,
		), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (elo_in.ApplyRatingsHandler, error) {
		var uc *elo_usecases.ApplyRatingsUseCase
		if err := c.Resolve(&uc); err != nil {
			return nil, err
		}
		return uc, nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (match_out.RatingEngine, error) {
		var uc *elo_usecases.ApplyRatingsUseCase
		if err := c.Resolve(&uc); err != nil {
			return nil, err
		}
		return uc, nil
	}); err != nil {
		return err
	}

	return nil
}

func wireAnalyticsUseCases(c container.Container) error {
	if err := c.Singleton(func() (*analytics_usecases.AnalyticsProjectorUseCase, error) {
		var matchContexts analytics_out.MatchContextReader
		var states analytics_out.UserAnalyticsStateWriter
		var matchApplied analytics_out.UserAnalyticsMatchAppliedWriter
		var partnerStats analytics_out.UserAnalyticsPartnerStatsWriter
		var rivalStats analytics_out.UserAnalyticsRivalStatsWriter
		var currentRatings analytics_out.CurrentRatingReader
		if err := c.Resolve(&matchContexts); err != nil {
			return nil, err
		}
		if err := c.Resolve(&states); err != nil {
			return nil, err
		}
		if err := c.Resolve(&matchApplied); err != nil {
			return nil, err
		}
		if err := c.Resolve(&partnerStats); err != nil {
			return nil, err
		}
		if err := c.Resolve(&rivalStats); err != nil {
			return nil, err
		}
		if err := c.Resolve(&currentRatings); err != nil {
			return nil, err
		}
		return &analytics_usecases.AnalyticsProjectorUseCase{
			MatchContexts:  matchContexts,
			States:         states,
			MatchApplied:   matchApplied,
			PartnerStats:   partnerStats,
			RivalStats:     rivalStats,
			CurrentRatings: currentRatings,
		}, nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (analytics_in.ProjectMatchHandler, error) {
		var uc *analytics_usecases.AnalyticsProjectorUseCase
		if err := c.Resolve(&uc); err != nil {
			return nil, err
		}
		return uc, nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (match_out.AnalyticsProjector, error) {
		var uc *analytics_usecases.AnalyticsProjectorUseCase
		if err := c.Resolve(&uc); err != nil {
			return nil, err
		}
		return uc, nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (analytics_in.RebuildAnalyticsHandler, error) {
		var uc *analytics_usecases.AnalyticsProjectorUseCase
		if err := c.Resolve(&uc); err != nil {
			return nil, err
		}
		return uc, nil
	}); err != nil {
		return err
	}

	return nil
}

func wireAuditUseCase(c container.Container) error {
	if err := c.Singleton(func() (*audit_usecases.RecordUseCase, error) {
		var logs audit_out.AuditLogWriter
		if err := c.Resolve(&logs); err != nil {
			return nil, err
		}
		return audit_usecases.NewRecordUseCase(logs), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (match_out.AuditRecorder, error) {
		var uc *audit_usecases.RecordUseCase
		if err := c.Resolve(&uc); err != nil {
			return nil, err
		}
		return uc, nil
	}); err != nil {
		return err
	}

	return nil
}

// matchIdentityVerifier adapts identity's AuthIdentityReader into
// match_out.IdentityVerifier, kept local to ioc since neither domain should
// import the other just to check "has the actor verified a contact method".
type matchIdentityVerifier struct {
	identities identity_out.AuthIdentityReader
}

func (v *matchIdentityVerifier) HasVerifiedIdentity(ctx context.Context, userID uuid.UUID) (bool, error) {
	for _, kind := range []identity_entities.ContactKind{identity_entities.ContactKindEmail, identity_entities.ContactKindPhone} {
		identity, err := v.identities.FindByUserAndKind(ctx, userID, kind)
		if common.IsNotFoundError(err) {
			continue
		}
		if err != nil {
			return false, err
		}
		if identity != nil && identity.IsVerified {
			return true, nil
		}
	}
	return false, nil
}

func wireMatchUseCases(c container.Container) error {
	if err := c.Singleton(func() (match_out.IdentityVerifier, error) {
		var identities identity_out.AuthIdentityReader
		if err := c.Resolve(&identities); err != nil {
			return nil, err
		}
		return &matchIdentityVerifier{identities: identities}, nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (match_in.CreateMatchCommandHandler, error) {
		var tx common.Transactor
		var matches match_out.MatchWriter
		var matchReader match_out.MatchReader
		var clubs match_out.ClubReader
		var profiles profile_out.UserProfileReader
		var ladderStates profile_out.UserLadderStateReader
		var categories profile_out.CategoryReader
		var identities match_out.IdentityVerifier
		var audit match_out.AuditRecorder
		var config common.Config
		if err := c.Resolve(&tx); err != nil {
			return nil, err
		}
		if err := c.Resolve(&matches); err != nil {
			return nil, err
		}
		if err := c.Resolve(&matchReader); err != nil {
			return nil, err
		}
		if err := c.Resolve(&clubs); err != nil {
			return nil, err
		}
		if err := c.Resolve(&profiles); err != nil {
			return nil, err
		}
		if err := c.Resolve(&ladderStates); err != nil {
			return nil, err
		}
		if err := c.Resolve(&categories); err != nil {
			return nil, err
		}
		if err := c.Resolve(&identities); err != nil {
			return nil, err
		}
		if err := c.Resolve(&audit); err != nil {
			return nil, err
		}
		if err := c.Resolve(&config); err != nil {
			return nil, err
		}
		return match_usecases.NewCreateMatchUseCase(
			tx, matches, matchReader, clubs, profiles, ladderStates, categories, identities, audit,
			config.Match.ConfirmWindowHours,
		), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (match_in.ConfirmMatchCommandHandler, error) {
		var tx common.Transactor
		var matches match_out.MatchWriter
		var matchReader match_out.MatchReader
		var participants match_out.MatchParticipantReader
		var scores match_out.MatchScoreWriter
		var scoreReader match_out.MatchScoreReader
		var confirmations match_out.MatchConfirmationWriter
		var confirmReader match_out.MatchConfirmationReader
		var ratings match_out.RatingEngine
		var analytics match_out.AnalyticsProjector
		var audit match_out.AuditRecorder
		var config common.Config
		if err := c.Resolve(&tx); err != nil {
			return nil, err
		}
		if err := c.Resolve(&matches); err != nil {
			return nil, err
		}
		if err := c.Resolve(&matchReader); err != nil {
			return nil, err
		}
		if err := c.Resolve(&participants); err != nil {
			return nil, err
		}
		if err := c.Resolve(&scores); err != nil {
			return nil, err
		}
		if err := c.Resolve(&scoreReader); err != nil {
			return nil, err
		}
		if err := c.Resolve(&confirmations); err != nil {
			return nil, err
		}
		if err := c.Resolve(&confirmReader); err != nil {
			return nil, err
		}
		if err := c.Resolve(&ratings); err != nil {
			return nil, err
		}
		if err := c.Resolve(&analytics); err != nil {
			return nil, err
		}
		if err := c.Resolve(&audit); err != nil {
			return nil, err
		}
		if err := c.Resolve(&config); err != nil {
			return nil, err
		}
		return match_usecases.NewConfirmMatchUseCase(
			tx, matches, matchReader, participants, scores, scoreReader, confirmations, confirmReader,
			ratings, analytics, audit, config.Match.MaxScoreProposals,
		), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (match_in.DisputeMatchCommandHandler, error) {
		var tx common.Transactor
		var matches match_out.MatchWriter
		var matchReader match_out.MatchReader
		var participants match_out.MatchParticipantReader
		var disputes match_out.MatchDisputeWriter
		var audit match_out.AuditRecorder
		if err := c.Resolve(&tx); err != nil {
			return nil, err
		}
		if err := c.Resolve(&matches); err != nil {
			return nil, err
		}
		if err := c.Resolve(&matchReader); err != nil {
			return nil, err
		}
		if err := c.Resolve(&participants); err != nil {
			return nil, err
		}
		if err := c.Resolve(&disputes); err != nil {
			return nil, err
		}
		if err := c.Resolve(&audit); err != nil {
			return nil, err
		}
		return match_usecases.NewDisputeMatchUseCase(tx, matches, matchReader, participants, disputes, audit), nil
	}); err != nil {
		return err
	}

	return nil
}

func wireRankingUseCase(c container.Container) error {
	if err := c.Singleton(func() (ranking_in.GetRankingQueryHandler, error) {
		var rankings ranking_out.RankingReader
		if err := c.Resolve(&rankings); err != nil {
			return nil, err
		}
		return ranking_usecases.NewGetRankingUseCase(rankings), nil
	}); err != nil {
		return err
	}

	return nil
}

func wireHistoryUseCases(c container.Container) error {
	if err := c.Singleton(func() (history_in.TimelineQueryHandler, error) {
		var matches history_out.MatchHistoryReader
		var profiles history_out.ProfileVisibilityReader
		if err := c.Resolve(&matches); err != nil {
			return nil, err
		}
		if err := c.Resolve(&profiles); err != nil {
			return nil, err
		}
		return history_usecases.NewTimelineUseCase(matches, profiles), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (history_in.MatchDetailQueryHandler, error) {
		var matches history_out.MatchHistoryReader
		if err := c.Resolve(&matches); err != nil {
			return nil, err
		}
		return history_usecases.NewMatchDetailUseCase(matches), nil
	}); err != nil {
		return err
	}

	return nil
}

func wireBillingUseCases(c container.Container) error {
	if err := c.Singleton(func() (billing_in.IngestWebhookCommandHandler, error) {
		var normalizers map[billing_entities.Provider]billing_out.WebhookNormalizer
		var verifier billing_out.WebhookSignatureVerifier
		var secrets map[billing_entities.Provider]string
		var events billing_out.BillingWebhookEventWriter
		var customers billing_out.BillingCustomerWriter
		var subscriptions billing_out.BillingSubscriptionWriter
		var subscriptionsR billing_out.BillingSubscriptionReader
		var entitlements billing_out.UserEntitlementWriter
		var config common.Config
		if err := c.Resolve(&normalizers); err != nil {
			return nil, err
		}
		if err := c.Resolve(&verifier); err != nil {
			return nil, err
		}
		if err := c.Resolve(&secrets); err != nil {
			return nil, err
		}
		if err := c.Resolve(&events); err != nil {
			return nil, err
		}
		if err := c.Resolve(&customers); err != nil {
			return nil, err
		}
		if err := c.Resolve(&subscriptions); err != nil {
			return nil, err
		}
		if err := c.Resolve(&subscriptionsR); err != nil {
			return nil, err
		}
		if err := c.Resolve(&entitlements); err != nil {
			return nil, err
		}
		if err := c.Resolve(&config); err != nil {
			return nil, err
		}
		return billing_usecases.NewIngestWebhookUseCase(
			normalizers, verifier, secrets, config.Billing.RequireWebhookSignature,
			time.Duration(config.Billing.WebhookMaxAgeSeconds)*time.Second,
			events, customers, subscriptions, subscriptionsR, entitlements,
		), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (billing_in.ValidateReceiptCommandHandler, error) {
		var validators map[billing_entities.Provider]billing_out.ReceiptValidator
		var subscriptions billing_out.BillingSubscriptionWriter
		var entitlements billing_out.UserEntitlementWriter
		if err := c.Resolve(&validators); err != nil {
			return nil, err
		}
		if err := c.Resolve(&subscriptions); err != nil {
			return nil, err
		}
		if err := c.Resolve(&entitlements); err != nil {
			return nil, err
		}
		return billing_usecases.NewValidateReceiptUseCase(validators, subscriptions, entitlements), nil
	}); err != nil {
		return err
	}

	if err := c.Singleton(func() (billing_in.GetEntitlementQueryHandler, error) {
		var entitlements billing_out.UserEntitlementReader
		if err := c.Resolve(&entitlements); err != nil {
			return nil, err
		}
		return billing_usecases.NewGetEntitlementUseCase(entitlements), nil
	}); err != nil {
		return err
	}

	return nil
}
