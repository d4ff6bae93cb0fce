package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	billing_entities "github.com/rivio-api/rivio-api/pkg/domain/billing/entities"
)

// BillingCustomerRepository implements billing_out.BillingCustomerWriter/Reader.
type BillingCustomerRepository struct {
	DB *sqlx.DB
}

func NewBillingCustomerRepository(db *sqlx.DB) *BillingCustomerRepository {
	return &BillingCustomerRepository{DB: db}
}

func (r *BillingCustomerRepository) Upsert(ctx context.Context, customer *billing_entities.BillingCustomer) error {
	const q = `INSERT INTO billing_customers (id, user_id, provider, provider_customer_id, created_at, updated_at)
		VALUES (:id, :user_id, :provider, :provider_customer_id, :created_at, :updated_at)
		ON CONFLICT (provider, provider_customer_id) DO UPDATE SET updated_at = EXCLUDED.updated_at`
	_, err := sqlx.NamedExecContext(ctx, Q(ctx, r.DB), q, customer)
	return err
}

func (r *BillingCustomerRepository) FindByProvider(ctx context.Context, provider billing_entities.Provider, providerCustomerID string) (*billing_entities.BillingCustomer, error) {
	const q = `SELECT id, user_id, provider, provider_customer_id, created_at, updated_at
		FROM billing_customers WHERE provider=$1 AND provider_customer_id=$2`
	var row billing_entities.BillingCustomer
	err := r.DB.GetContext(ctx, &row, q, provider, providerCustomerID)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *BillingCustomerRepository) FindByUserAndProvider(ctx context.Context, userID uuid.UUID, provider billing_entities.Provider) (*billing_entities.BillingCustomer, error) {
	const q = `SELECT id, user_id, provider, provider_customer_id, created_at, updated_at
		FROM billing_customers WHERE user_id=$1 AND provider=$2`
	var row billing_entities.BillingCustomer
	err := r.DB.GetContext(ctx, &row, q, userID, provider)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// BillingSubscriptionRepository implements billing_out.BillingSubscriptionWriter/Reader.
type BillingSubscriptionRepository struct {
	DB *sqlx.DB
}

func NewBillingSubscriptionRepository(db *sqlx.DB) *BillingSubscriptionRepository {
	return &BillingSubscriptionRepository{DB: db}
}

const billingSubscriptionColumns = `id, user_id, provider, provider_subscription_id, plan_code, status,
	current_period_start, current_period_end, cancel_at_period_end, raw_payload, created_at, updated_at`

func (r *BillingSubscriptionRepository) Upsert(ctx context.Context, sub *billing_entities.BillingSubscription) error {
	q := `INSERT INTO billing_subscriptions (` + billingSubscriptionColumns + `)
		VALUES (:id, :user_id, :provider, :provider_subscription_id, :plan_code, :status,
			:current_period_start, :current_period_end, :cancel_at_period_end, :raw_payload, :created_at, :updated_at)
		ON CONFLICT (provider, provider_subscription_id) DO UPDATE SET
			plan_code = EXCLUDED.plan_code, status = EXCLUDED.status,
			current_period_start = EXCLUDED.current_period_start, current_period_end = EXCLUDED.current_period_end,
			cancel_at_period_end = EXCLUDED.cancel_at_period_end, raw_payload = EXCLUDED.raw_payload,
			updated_at = EXCLUDED.updated_at`
	_, err := sqlx.NamedExecContext(ctx, Q(ctx, r.DB), q, sub)
	return err
}

func (r *BillingSubscriptionRepository) FindByProviderSubscription(ctx context.Context, provider billing_entities.Provider, providerSubscriptionID string) (*billing_entities.BillingSubscription, error) {
	q := `SELECT ` + billingSubscriptionColumns + ` FROM billing_subscriptions WHERE provider=$1 AND provider_subscription_id=$2`
	var row billing_entities.BillingSubscription
	err := r.DB.GetContext(ctx, &row, q, provider, providerSubscriptionID)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *BillingSubscriptionRepository) FindByPurchaseToken(ctx context.Context, provider billing_entities.Provider, purchaseToken string) (*billing_entities.BillingSubscription, error) {
	// purchase_token for the store providers is persisted as the
	// provider_subscription_id — there's no distinct column for it, since a
	// google play purchase token IS the provider-side subscription handle.
	return r.FindByProviderSubscription(ctx, provider, purchaseToken)
}

func (r *BillingSubscriptionRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*billing_entities.BillingSubscription, error) {
	q := `SELECT ` + billingSubscriptionColumns + ` FROM billing_subscriptions
		WHERE user_id=$1 AND status IN ($2, $3, $4) ORDER BY updated_at DESC LIMIT 1`
	var row billing_entities.BillingSubscription
	err := r.DB.GetContext(ctx, &row, q, userID,
		billing_entities.SubscriptionStatusTrialing, billing_entities.SubscriptionStatusActive, billing_entities.SubscriptionStatusPastDue)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// BillingWebhookEventRepository implements billing_out.BillingWebhookEventWriter.
type BillingWebhookEventRepository struct {
	DB *sqlx.DB
}

func NewBillingWebhookEventRepository(db *sqlx.DB) *BillingWebhookEventRepository {
	return &BillingWebhookEventRepository{DB: db}
}

const webhookEventColumns = `id, provider, event_id, type, user_id, raw_payload, status, error, created_at, updated_at`

func (r *BillingWebhookEventRepository) TryInsert(ctx context.Context, event *billing_entities.BillingWebhookEvent) (bool, *billing_entities.BillingWebhookEvent, error) {
	q := `INSERT INTO billing_webhook_events (` + webhookEventColumns + `)
		VALUES (:id, :provider, :event_id, :type, :user_id, :raw_payload, :status, :error, :created_at, :updated_at)
		ON CONFLICT (provider, event_id) DO NOTHING`
	res, err := sqlx.NamedExecContext(ctx, Q(ctx, r.DB), q, event)
	if err != nil {
		return false, nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, nil, err
	}
	if n > 0 {
		return true, nil, nil
	}

	existingQ := `SELECT ` + webhookEventColumns + ` FROM billing_webhook_events WHERE provider=$1 AND event_id=$2`
	var existing billing_entities.BillingWebhookEvent
	if err := Q(ctx, r.DB).GetContext(ctx, &existing, existingQ, event.Provider, event.EventID); err != nil {
		return false, nil, err
	}
	return false, &existing, nil
}

func (r *BillingWebhookEventRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status billing_entities.WebhookEventStatus, errMsg string) error {
	const q = `UPDATE billing_webhook_events SET status=$2, error=$3, updated_at=now() WHERE id=$1`
	_, err := Q(ctx, r.DB).ExecContext(ctx, q, id, status, errMsg)
	return err
}

// UserEntitlementRepository implements billing_out.UserEntitlementWriter/Reader.
type UserEntitlementRepository struct {
	DB *sqlx.DB
}

func NewUserEntitlementRepository(db *sqlx.DB) *UserEntitlementRepository {
	return &UserEntitlementRepository{DB: db}
}

func (r *UserEntitlementRepository) Upsert(ctx context.Context, entitlement *billing_entities.UserEntitlement) error {
	const q = `INSERT INTO user_entitlements (user_id, plan_code, ads_enabled, expires_at, updated_at)
		VALUES (:user_id, :plan_code, :ads_enabled, :expires_at, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET plan_code=EXCLUDED.plan_code, ads_enabled=EXCLUDED.ads_enabled,
			expires_at=EXCLUDED.expires_at, updated_at=EXCLUDED.updated_at`
	_, err := sqlx.NamedExecContext(ctx, Q(ctx, r.DB), q, entitlement)
	return err
}

func (r *UserEntitlementRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*billing_entities.UserEntitlement, error) {
	const q = `SELECT user_id, plan_code, ads_enabled, expires_at, updated_at FROM user_entitlements WHERE user_id=$1`
	var row billing_entities.UserEntitlement
	err := r.DB.GetContext(ctx, &row, q, userID)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
