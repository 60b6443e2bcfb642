package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/auth/domain"
	"github.com/aussiebroadwan/adminhub/internal/auth/service"
	"github.com/aussiebroadwan/adminhub/internal/auth/store"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
	"github.com/aussiebroadwan/adminhub/pkg/jwtx"
	"github.com/aussiebroadwan/adminhub/pkg/metricsx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"

	_ "github.com/aussiebroadwan/adminhub/api/adminhub" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *metricsx.Metrics

	// ExposeErrors returns internal error text and email verification
	// tokens to clients. Set only for ENV=dev.
	ExposeErrors bool

	// CacheCheck is reported by /readyz when set.
	CacheCheck CacheCheck

	store            store.Store
	AuthService      *service.AuthService
	TokenService     *service.TokenService
	MFAService       *service.MFAService
	UserService      *service.UserService
	RolesService     *service.RolesService
	AuditService     *service.AuditService
	BootstrapService *service.BootstrapService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	metrics *metricsx.Metrics,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		metrics:      metrics,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.ClientIPMiddleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMFA()
	r.registerUsers()
	r.registerRoles()
	r.registerAudit()
	r.registerBootstrap()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			AdminHub Authentication API
//	@version		0.1.0
//	@description	Authentication and MFA token lifecycle for the AdminHub back end.
//	@description
//	@description				Access tokens are short-lived JWTs signed with EdDSA or ES256 and can be verified using the JWKS endpoint.
//	@description				Refresh tokens are opaque. Accounts with MFA enabled or enforced need validateOtp or finishMfaSetup before full access.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/adminhub
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern, wrapped in mws and request metrics
// labelled by the pattern.
func (r *Router) handle(pattern string, h http.Handler, mws ...httpx.Middleware) {
	r.Mux.Handle(pattern, r.metrics.Instrument(pattern, httpx.Chain(h, mws...)))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService:  r.AuthService,
		TokenService: r.TokenService,
		Expose:       r.ExposeErrors,
	}

	// POST /logIn - strict rate limit by IP + userName to slow credential stuffing
	r.handle("POST /v1/auth/logIn", http.HandlerFunc(h.HandleLogIn),
		httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "userName"),
	)

	r.handle("POST /v1/auth/signUp", http.HandlerFunc(h.HandleSignUp),
		httpx.RateLimitByIP(httpx.StrictLimit),
	)

	// Refresh tokens are 256-bit random values; a moderate limit is enough.
	r.handle("POST /v1/auth/createNewAccessToken", http.HandlerFunc(h.HandleCreateNewAccessToken),
		httpx.RateLimitByIP(httpx.ModerateLimit),
	)
	r.handle("POST /v1/auth/logout", http.HandlerFunc(h.HandleLogout),
		httpx.RateLimitByIP(httpx.ModerateLimit),
	)

	r.handle("POST /v1/auth/confirmEmail", http.HandlerFunc(h.HandleConfirmEmail),
		httpx.RateLimitByIP(httpx.StrictLimit),
	)
	r.handle("POST /v1/auth/resetPassword", http.HandlerFunc(h.HandleResetPassword),
		httpx.RateLimitByIP(httpx.StrictLimit),
	)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService, Expose: r.ExposeErrors}

	// No full access required: these endpoints are how a session gets it.
	r.handle("POST /v1/auth/startMfaSetup", http.HandlerFunc(h.HandleStartSetup),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	// Strict limits on top of the OTP attempt limiter.
	r.handle("POST /v1/auth/finishMfaSetup", http.HandlerFunc(h.HandleFinishSetup),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.StrictLimit),
	)
	r.handle("POST /v1/auth/validateOtp", http.HandlerFunc(h.HandleValidateOTP),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.StrictLimit),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService, Expose: r.ExposeErrors}

	r.handle("GET /v1/users/{id}", http.HandlerFunc(h.HandleGetUser),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireFullAccess(),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	// disableMfa is self-or-admin; the service checks the role from the store.
	r.handle("PATCH /v1/users/disableMfa", http.HandlerFunc(h.HandleDisableMFA),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireFullAccess(),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.handle("PATCH /v1/users/lockAccount", http.HandlerFunc(h.HandleLockAccount),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireFullAccess(),
		httpx.RequireAnyRole(domain.RoleAdmin),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	r.handle("PATCH /v1/users/requestPasswordReset", http.HandlerFunc(h.HandleRequestPasswordReset),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireFullAccess(),
		httpx.RequireAnyRole(domain.RoleAdmin),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
}

func (r *Router) registerRoles() {
	h := &RolesHandler{RolesService: r.RolesService}

	r.handle("GET /v1/roles", h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireFullAccess(),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
}

func (r *Router) registerAudit() {
	h := &AuditHandler{AuditService: r.AuditService, Expose: r.ExposeErrors}

	r.handle("GET /v1/auditLogs", h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireFullAccess(),
		httpx.RequireAnyRole(domain.RoleAdmin),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
}

func (r *Router) registerBootstrap() {
	// POST /bootstrap - very strict rate limit by IP (one-time setup endpoint)
	h := &BootstrapHandler{BootstrapService: r.BootstrapService, Expose: r.ExposeErrors}
	r.handle("POST /v1/bootstrap", h,
		httpx.RateLimitByIP(httpx.StrictLimit),
	)
}

func (r *Router) registerSystem() {
	// GET /jwks.json - public endpoint with high limit
	r.handle("GET /.well-known/jwks.json", JWKSHandler(r.keys),
		httpx.RateLimitByIP(httpx.PublicLimit),
	)

	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.handle("GET /livez", LivezHandler(r.startTime, r.buildVersion),
		httpx.RateLimitByIP(httpx.LenientLimit),
	)
	r.handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys, r.CacheCheck),
		httpx.RateLimitByIP(httpx.LenientLimit),
	)

	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
