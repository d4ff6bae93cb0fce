package common

// ContextKey namespaces values stored on a request context so unrelated
// packages never collide on a bare string key.
type ContextKey string

const (
	// Tenancy / resource ownership (see resource_owner.go)
	TenantIDKey ContextKey = "tenant_id"
	ClientIDKey ContextKey = "client_id"
	GroupIDKey  ContextKey = "group_id"
	UserIDKey   ContextKey = "user_id"

	// Authentication
	AudienceKey      ContextKey = "audience"
	AuthenticatedKey ContextKey = "authenticated"
	SessionIDKey     ContextKey = "session_id"

	// Request metadata
	RequestIDKey            ContextKey = "x-request-id"
	ResourceOwnerIDParamKey ContextKey = "x-reso-id"
	ClientIPKey             ContextKey = "x-client-ip"
	UserAgentKey            ContextKey = "x-user-agent"
	MatchIDParamKey         ContextKey = "match_id"
)
