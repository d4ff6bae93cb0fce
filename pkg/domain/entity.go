package common

import (
	"time"

	"github.com/google/uuid"
)

// IntendedAudienceKey scopes which audience a resource's VisibilityLevel was
// framed for at creation time.
type IntendedAudienceKey string

const (
	TenantAudienceIDKey            IntendedAudienceKey = "TENANT"
	ClientApplicationAudienceIDKey IntendedAudienceKey = "CLIENT_APPLICATION"
	GroupAudienceIDKey             IntendedAudienceKey = "GROUP"
	UserAudienceIDKey              IntendedAudienceKey = "USER"
)

// VisibilityTypeKey controls whether CanAccessResource treats a resource as
// public, restricted to a client/group, private to its owner, or custom.
type VisibilityTypeKey string

const (
	PublicVisibilityTypeKey     VisibilityTypeKey = "PUBLIC"
	RestrictedVisibilityTypeKey VisibilityTypeKey = "RESTRICTED"
	PrivateVisibilityTypeKey    VisibilityTypeKey = "PRIVATE"
	CustomVisibilityTypeKey     VisibilityTypeKey = "CUSTOM"
)

type BaseEntity struct {
	ID              uuid.UUID              `json:"id" bson:"_id" db:"id"`
	VisibilityLevel IntendedAudienceKey    `json:"visibility_level" bson:"visibility_level" db:"visibility_level"`
	VisibilityType  VisibilityTypeKey      `json:"visibility_type" bson:"visibility_type" db:"visibility_type"`
	ResourceOwner   ResourceOwner          `json:"resource_owner" bson:"resource_owner" db:"-"`
	CreatedAt       time.Time              `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at" bson:"updated_at" db:"updated_at"`
	Includes        map[string]interface{} `json:"includes,omitempty" bson:"-" db:"-"`
}

type Entity interface {
	GetID() uuid.UUID
}

func (b BaseEntity) GetID() uuid.UUID {
	return b.ID
}

func NewEntity(resourceOwner ResourceOwner) BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		ID:              uuid.New(),
		VisibilityLevel: ClientApplicationAudienceIDKey,
		VisibilityType:  CustomVisibilityTypeKey,
		ResourceOwner:   resourceOwner,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// NewUnrestrictedEntity frames a resource visible to the whole tenant, e.g.
// a UserProfile with is_public=true, or a verified Match's public history row.
func NewUnrestrictedEntity(resourceOwner ResourceOwner) BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		ID:              uuid.New(),
		VisibilityLevel: TenantAudienceIDKey,
		VisibilityType:  PublicVisibilityTypeKey,
		ResourceOwner:   resourceOwner,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func NewRestrictedEntity(resourceOwner ResourceOwner) BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		ID:              uuid.New(),
		VisibilityLevel: GroupAudienceIDKey,
		VisibilityType:  RestrictedVisibilityTypeKey,
		ResourceOwner:   resourceOwner,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// NewPrivateEntity frames a resource visible only to its owning user, e.g.
// AuthCredential, AuthSession, BillingCustomer.
func NewPrivateEntity(resourceOwner ResourceOwner) BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		ID:              uuid.New(),
		VisibilityLevel: UserAudienceIDKey,
		VisibilityType:  PrivateVisibilityTypeKey,
		ResourceOwner:   resourceOwner,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
