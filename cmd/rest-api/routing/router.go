package routing

import (
	"context"
	"net/http"

	"github.com/golobby/container/v3"
	"github.com/gorilla/mux"

	"github.com/rivio-api/rivio-api/cmd/rest-api/controllers"
	cmd_controllers "github.com/rivio-api/rivio-api/cmd/rest-api/controllers/command"
	query_controllers "github.com/rivio-api/rivio-api/cmd/rest-api/controllers/query"
	"github.com/rivio-api/rivio-api/cmd/rest-api/docs"
	"github.com/rivio-api/rivio-api/cmd/rest-api/middlewares"
)

const (
	Health string = "/health"

	// Identity / session
	OtpRequest        string = "/auth/otp/request"
	RegisterComplete  string = "/auth/register/complete"
	Login             string = "/auth/login"
	Refresh           string = "/auth/refresh"
	Logout            string = "/auth/logout"
	PasswordReset     string = "/auth/password-reset/request"
	PasswordResetConf string = "/auth/password-reset/confirm"
	ContactChange     string = "/me/contact-change/request"
	ContactChangeConf string = "/me/contact-change/confirm"

	// Profile
	MyProfile     string = "/me/profile"
	MyEligibility string = "/me/eligibility"
	MyLadders     string = "/me/ladders"
	Player        string = "/players/{id}"
	PlayerSearch  string = "/players/search"

	// Matches
	Matches          string = "/matches"
	MatchConfirm     string = "/matches/{id}/confirm"
	MatchDispute     string = "/matches/{id}/dispute"
	MatchDetailRoute string = "/matches/{id}"

	// Rankings
	Ranking string = "/rankings/{ladder}/{category_id}"

	// History
	MyMatches     string = "/me/matches"
	PlayerMatches string = "/players/{id}/matches"

	// Billing
	BillingWebhook string = "/billing/webhooks/{provider}"
	BillingReceipt string = "/billing/receipts/validate"
	MyEntitlement  string = "/me/entitlement"
)

// NewRouter wires every transport route onto the domain use cases resolved
// from the container, in the middleware order documented for this service:
// recover (mux's own panic guard) -> request logger -> security headers ->
// CORS -> rate limit -> auth context -> error mapping.
func NewRouter(ctx context.Context, c container.Container) http.Handler {
	authContext := middlewares.NewResourceContextMiddleware(c)
	cors := middlewares.NewCORSMiddleware()
	rateLimit := middlewares.NewRateLimitMiddleware()

	healthController := controllers.NewHealthController(c)
	identityController := cmd_controllers.NewIdentityController(c)
	profileController := cmd_controllers.NewProfileController(c)
	profileQueryController := query_controllers.NewProfileQueryController(c)
	matchController := cmd_controllers.NewMatchController(c)
	historyQueryController := query_controllers.NewHistoryQueryController(c)
	rankingQueryController := query_controllers.NewRankingQueryController(c)
	billingController := cmd_controllers.NewBillingController(c)
	billingQueryController := query_controllers.NewBillingQueryController(c)

	r := mux.NewRouter()

	r.Use(middlewares.ErrorMiddleware)
	r.Use(middlewares.RequestLoggerMiddleware)
	r.Use(middlewares.SecurityHeadersMiddleware)
	r.Use(mux.CORSMethodMiddleware(r))
	r.Use(cors.Handler)
	r.Use(rateLimit.Handler)
	r.Use(authContext.Handler)

	// Health / docs
	r.HandleFunc(Health, healthController.HealthCheck(ctx)).Methods("GET")
	r.HandleFunc("/health/ready", healthController.ReadinessCheck(ctx)).Methods("GET")
	r.HandleFunc("/health/live", healthController.LivenessCheck(ctx)).Methods("GET")
	r.Handle("/metrics", healthController.MetricsHandler()).Methods("GET")
	r.HandleFunc("/api/docs/swagger", docs.SwaggerUIHandler(docs.DefaultSwaggerConfig())).Methods("GET")
	r.HandleFunc("/api/docs/openapi.yaml", docs.OpenAPISpecHandler()).Methods("GET")

	// Identity / session
	r.HandleFunc(OtpRequest, identityController.RequestOtp(ctx)).Methods("POST")
	r.HandleFunc(RegisterComplete, identityController.RegisterComplete(ctx)).Methods("POST")
	r.HandleFunc(Login, identityController.Login(ctx)).Methods("POST")
	r.HandleFunc(Refresh, identityController.Refresh(ctx)).Methods("POST")
	r.HandleFunc(Logout, identityController.Logout(ctx)).Methods("POST")
	r.HandleFunc(PasswordReset, identityController.PasswordResetRequest(ctx)).Methods("POST")
	r.HandleFunc(PasswordResetConf, identityController.PasswordResetConfirm(ctx)).Methods("POST")
	r.Handle(ContactChange, middlewares.RequireAuthentication()(http.HandlerFunc(identityController.ContactChangeRequest(ctx)))).Methods("POST")
	r.Handle(ContactChangeConf, middlewares.RequireAuthentication()(http.HandlerFunc(identityController.ContactChangeConfirm(ctx)))).Methods("POST")

	// Profile
	r.Handle(MyProfile, middlewares.RequireAuthentication()(http.HandlerFunc(profileQueryController.GetMyProfile(ctx)))).Methods("GET")
	r.Handle(MyProfile, middlewares.RequireAuthentication()(http.HandlerFunc(profileController.UpdateProfile(ctx)))).Methods("PATCH")
	r.Handle(MyEligibility, middlewares.RequireAuthentication()(http.HandlerFunc(profileQueryController.GetEligibility(ctx)))).Methods("GET")
	r.Handle(MyLadders, middlewares.RequireAuthentication()(http.HandlerFunc(profileQueryController.ListMyLadders(ctx)))).Methods("GET")
	r.HandleFunc(PlayerSearch, profileQueryController.SearchPlayers(ctx)).Methods("GET")
	r.HandleFunc(Player, profileQueryController.GetPlayerProfile(ctx)).Methods("GET")

	// Matches
	r.Handle(Matches, middlewares.RequireAuthentication()(http.HandlerFunc(matchController.CreateMatch(ctx)))).Methods("POST")
	r.HandleFunc(MatchDetailRoute, historyQueryController.MatchDetail(ctx)).Methods("GET")
	r.Handle(MatchConfirm, middlewares.RequireAuthentication()(http.HandlerFunc(matchController.ConfirmMatch(ctx)))).Methods("POST")
	r.Handle(MatchDispute, middlewares.RequireAuthentication()(http.HandlerFunc(matchController.DisputeMatch(ctx)))).Methods("POST")

	// Rankings
	r.HandleFunc(Ranking, rankingQueryController.GetRanking(ctx)).Methods("GET")

	// History
	r.Handle(MyMatches, middlewares.RequireAuthentication()(http.HandlerFunc(historyQueryController.MyTimeline(ctx)))).Methods("GET")
	r.HandleFunc(PlayerMatches, historyQueryController.PlayerTimeline(ctx)).Methods("GET")

	// Billing
	r.HandleFunc(BillingWebhook, billingController.IngestWebhook(ctx)).Methods("POST")
	r.Handle(BillingReceipt, middlewares.RequireAuthentication()(http.HandlerFunc(billingController.ValidateReceipt(ctx)))).Methods("POST")
	r.Handle(MyEntitlement, middlewares.RequireAuthentication()(http.HandlerFunc(billingQueryController.GetMyEntitlement(ctx)))).Methods("GET")

	return r
}
