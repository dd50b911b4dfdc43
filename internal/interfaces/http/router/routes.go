package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/auth"
	"github.com/vendorhub/backend/internal/infrastructure/config"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
	"github.com/vendorhub/backend/internal/infrastructure/telemetry"
	"github.com/vendorhub/backend/internal/interfaces/http/dto"
	"github.com/vendorhub/backend/internal/interfaces/http/handler"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers are the request handlers mounted by New
type Handlers struct {
	System        *handler.SystemHandler
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	AuditLog      *handler.AuditLogHandler
	Integration   *handler.IntegrationHandler
	Vendor        *handler.VendorHandler
	RFP           *handler.RFPHandler
	Contract      *handler.ContractHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	Risk          *handler.RiskHandler
	Penalty       *handler.PenaltyHandler
	Ticket        *handler.TicketHandler
	Survey        *handler.SurveyHandler
}

// Dependencies carries everything the HTTP surface is assembled from
type Dependencies struct {
	Env     string
	HTTP    config.HTTPConfig
	Tracing middleware.TracingConfig

	Logger       *zap.Logger
	Metrics      *telemetry.Metrics
	JWT          *auth.JWTService
	Blacklist    auth.TokenBlacklist
	Resolver     middleware.PrincipalResolver
	Policy       *identity.Policy
	Recorder     middleware.AuditRecorder
	LoginLimiter *middleware.RateLimiter

	Handlers Handlers
}

// New builds the engine. Every route under /api/v1 except the public auth
// endpoints passes, in order: credential check, tenant resolution, audit,
// authorization, handler.
func New(deps Dependencies) *gin.Engine {
	engine, _ := NewWithCatalog(deps)
	return engine
}

// NewWithCatalog is New that also returns the mounted API routes
func NewWithCatalog(deps Dependencies) (*gin.Engine, []RouteInfo) {
	middleware.SetupValidator()

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	if err := engine.SetTrustedProxies(deps.HTTP.TrustedProxies); err != nil {
		deps.Logger.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(deps.Tracing)...)
	engine.Use(
		middleware.HTTPMetrics(deps.Metrics),
		logger.AccessLog(deps.Logger),
		logger.Recovery(deps.Logger),
		middleware.SecureWithConfig(middleware.SecurityConfig{
			HSTSEnabled: deps.Env == "production",
			HSTSMaxAge:  31536000,
		}),
		middleware.CORS(corsConfig(deps.HTTP)),
		middleware.BodyLimit(deps.HTTP.MaxBodySize),
	)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(shared.CodeNotFound, "route not found", middleware.GetRequestID(c)))
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponse(shared.CodeNotFound, "method not allowed", middleware.GetRequestID(c)))
	})

	h := deps.Handlers
	engine.GET("/health", h.System.Health)
	engine.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	authn := []gin.HandlerFunc{
		middleware.JWTAuth(middleware.JWTConfig{
			Service:   deps.JWT,
			Blacklist: deps.Blacklist,
			Logger:    deps.Logger,
		}),
		middleware.TenantResolver(deps.Resolver, deps.Logger),
	}
	g := gate{
		auditor: middleware.NewAuditor(deps.Recorder),
		authz:   middleware.NewAuthorizer(deps.Policy, deps.Metrics, deps.Logger),
	}

	r := NewRouter(engine)
	r.Register(publicAuthRoutes(h.Auth, g.auditor, deps.LoginLimiter))
	r.Register(sessionRoutes(h.Auth, g).Use(authn...))
	r.Register(adminRoutes(h, g).Use(authn...))
	r.Register(vendorRoutes(h.Vendor, g).Use(authn...))
	r.Register(bidRoutes(h.RFP, g).Use(authn...))
	r.Register(contractRoutes(h.Contract, g).Use(authn...))
	r.Register(procurementRoutes(h.PurchaseOrder, g).Use(authn...))
	r.Register(riskRoutes(h.Risk, g).Use(authn...))
	r.Register(performanceRoutes(h.Penalty, g).Use(authn...))
	r.Register(helpdeskRoutes(h.Ticket, g).Use(authn...))
	r.Register(surveyRoutes(h.Survey, g).Use(authn...))
	catalog := r.Setup()

	deps.Logger.Debug("API routes mounted", zap.Int("count", len(catalog)))
	return engine, catalog
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(cfg.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = cfg.CORSAllowOrigins
	}
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	return cors
}

// gate composes the audit decorator around the authorization check so that
// denied attempts leave an entry too
type gate struct {
	auditor *middleware.Auditor
	authz   *middleware.Authorizer
}

func (g gate) chain(op identity.Operation, module, action, resourceType string, h gin.HandlerFunc) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		g.auditor.Audit(module, action, resourceType),
		g.authz.Require(op),
		h,
	}
}

func publicAuthRoutes(h *handler.AuthHandler, auditor *middleware.Auditor, limiter *middleware.RateLimiter) *DomainGroup {
	routes := NewDomainGroup("auth", "/auth")

	login := []gin.HandlerFunc{auditor.Audit("auth", "auth.login", "session"), h.Login}
	register := []gin.HandlerFunc{auditor.Audit("auth", "auth.register", "tenant"), h.Register}
	if limiter != nil {
		login = append([]gin.HandlerFunc{middleware.RateLimit(limiter)}, login...)
		register = append([]gin.HandlerFunc{middleware.RateLimit(limiter)}, register...)
	}

	routes.POST("/register", register...)
	routes.POST("/login", login...)
	routes.POST("/refresh", h.Refresh)
	return routes
}

func sessionRoutes(h *handler.AuthHandler, g gate) *DomainGroup {
	routes := NewDomainGroup("session", "/auth")
	routes.POST("/logout", g.chain(identity.OpSession, "auth", "auth.logout", "session", h.Logout)...)
	routes.GET("/me", g.chain(identity.OpSession, "auth", "auth.me", "user", h.Me)...)
	return routes
}

func adminRoutes(h Handlers, g gate) *DomainGroup {
	routes := NewDomainGroup("admin", "/admin")

	routes.GET("/users", g.chain(identity.OpUserList, "admin", "admin.user.list", "user", h.User.List)...)
	routes.POST("/users", g.chain(identity.OpUserCreate, "admin", "admin.user.create", "user", h.User.Create)...)
	routes.GET("/users/:id", g.chain(identity.OpUserList, "admin", "admin.user.read", "user", h.User.Get)...)
	routes.PATCH("/users/:id", g.chain(identity.OpUserUpdate, "admin", "admin.user.update", "user", h.User.Update)...)

	routes.GET("/audit-logs", g.chain(identity.OpAuditQuery, "admin", "admin.audit.query", "audit_log", h.AuditLog.List)...)

	routes.GET("/integrations", g.chain(identity.OpIntegrationList, "admin", "admin.integration.list", "integration", h.Integration.List)...)
	routes.POST("/integrations", g.chain(identity.OpIntegrationCreate, "admin", "admin.integration.create", "integration", h.Integration.Create)...)
	routes.PATCH("/integrations/:id", g.chain(identity.OpIntegrationUpdate, "admin", "admin.integration.update", "integration", h.Integration.Update)...)
	routes.GET("/integrations/:id/sync-logs", g.chain(identity.OpIntegrationSyncLogs, "admin", "admin.integration.sync_logs", "integration", h.Integration.SyncLogs)...)
	return routes
}

func vendorRoutes(h *handler.VendorHandler, g gate) *DomainGroup {
	routes := NewDomainGroup("vendor", "/vendors")
	routes.GET("", g.chain(identity.OpVendorRead, "vendor", "vendor.list", "vendor", h.List)...)
	routes.POST("", g.chain(identity.OpVendorWrite, "vendor", "vendor.create", "vendor", h.Create)...)
	routes.GET("/:id", g.chain(identity.OpVendorRead, "vendor", "vendor.read", "vendor", h.Get)...)
	routes.PATCH("/:id", g.chain(identity.OpVendorWrite, "vendor", "vendor.update", "vendor", h.Update)...)
	return routes
}

func bidRoutes(h *handler.RFPHandler, g gate) *DomainGroup {
	routes := NewDomainGroup("bids", "/bids/rfps")
	routes.GET("", g.chain(identity.OpRFPRead, "bids", "bids.rfp.list", "rfp", h.List)...)
	routes.POST("", g.chain(identity.OpRFPWrite, "bids", "bids.rfp.create", "rfp", h.Create)...)
	routes.GET("/:id", g.chain(identity.OpRFPRead, "bids", "bids.rfp.read", "rfp", h.Get)...)
	routes.POST("/:id/status", g.chain(identity.OpRFPWrite, "bids", "bids.rfp.status", "rfp", h.ChangeStatus)...)
	return routes
}

func contractRoutes(h *handler.ContractHandler, g gate) *DomainGroup {
	routes := NewDomainGroup("contracts", "/contracts")
	routes.GET("", g.chain(identity.OpContractRead, "contracts", "contracts.list", "contract", h.List)...)
	routes.POST("", g.chain(identity.OpContractWrite, "contracts", "contracts.create", "contract", h.Create)...)
	routes.GET("/:id", g.chain(identity.OpContractRead, "contracts", "contracts.read", "contract", h.Get)...)
	routes.POST("/:id/status", g.chain(identity.OpContractWrite, "contracts", "contracts.status", "contract", h.ChangeStatus)...)
	return routes
}

func procurementRoutes(h *handler.PurchaseOrderHandler, g gate) *DomainGroup {
	routes := NewDomainGroup("procurement", "/procurement/purchase-orders")
	routes.GET("", g.chain(identity.OpPurchaseOrderRead, "procurement", "procurement.purchase_order.list", "purchase_order", h.List)...)
	routes.POST("", g.chain(identity.OpPurchaseOrderCreate, "procurement", "procurement.purchase_order.create", "purchase_order", h.Create)...)
	routes.GET("/:id", g.chain(identity.OpPurchaseOrderRead, "procurement", "procurement.purchase_order.read", "purchase_order", h.Get)...)
	routes.POST("/:id/sync", g.chain(identity.OpPurchaseOrderSync, "procurement", "procurement.purchase_order.sync", "purchase_order", h.Sync)...)
	routes.POST("/:id/status", g.chain(identity.OpPurchaseOrderCreate, "procurement", "procurement.purchase_order.status", "purchase_order", h.UpdateStatus)...)
	return routes
}

func riskRoutes(h *handler.RiskHandler, g gate) *DomainGroup {
	routes := NewDomainGroup("risk", "/risk")
	routes.GET("/assessments", g.chain(identity.OpRiskRead, "risk", "risk.assessment.list", "risk_assessment", h.List)...)
	routes.POST("/assessments", g.chain(identity.OpRiskAssess, "risk", "risk.assessment.create", "risk_assessment", h.Create)...)
	routes.GET("/assessments/:id", g.chain(identity.OpRiskRead, "risk", "risk.assessment.read", "risk_assessment", h.Get)...)
	routes.POST("/vendors/:id/assessments", g.chain(identity.OpRiskAssess, "risk", "risk.assessment.pull", "risk_assessment", h.Pull)...)
	return routes
}

func performanceRoutes(h *handler.PenaltyHandler, g gate) *DomainGroup {
	routes := NewDomainGroup("performance", "/performance/penalties")
	routes.GET("", g.chain(identity.OpPenaltyRead, "performance", "performance.penalty.list", "penalty", h.List)...)
	routes.POST("", g.chain(identity.OpPenaltyCreate, "performance", "performance.penalty.create", "penalty", h.Create)...)
	routes.GET("/:id", g.chain(identity.OpPenaltyRead, "performance", "performance.penalty.read", "penalty", h.Get)...)
	routes.POST("/:id/approve", g.chain(identity.OpPenaltyDecide, "performance", "performance.penalty.approve", "penalty", h.Approve)...)
	routes.POST("/:id/reject", g.chain(identity.OpPenaltyDecide, "performance", "performance.penalty.reject", "penalty", h.Reject)...)
	return routes
}

func helpdeskRoutes(h *handler.TicketHandler, g gate) *DomainGroup {
	routes := NewDomainGroup("helpdesk", "/helpdesk/tickets")
	routes.GET("", g.chain(identity.OpTicketRead, "helpdesk", "helpdesk.ticket.list", "ticket", h.List)...)
	routes.POST("", g.chain(identity.OpTicketWrite, "helpdesk", "helpdesk.ticket.create", "ticket", h.Create)...)
	routes.GET("/:id", g.chain(identity.OpTicketRead, "helpdesk", "helpdesk.ticket.read", "ticket", h.Get)...)
	routes.POST("/:id/status", g.chain(identity.OpTicketWrite, "helpdesk", "helpdesk.ticket.status", "ticket", h.ChangeStatus)...)
	return routes
}

func surveyRoutes(h *handler.SurveyHandler, g gate) *DomainGroup {
	routes := NewDomainGroup("surveys", "/surveys")
	routes.GET("", g.chain(identity.OpSurveyRead, "surveys", "surveys.list", "survey", h.List)...)
	routes.POST("", g.chain(identity.OpSurveyCreate, "surveys", "surveys.create", "survey", h.Create)...)
	routes.GET("/:id", g.chain(identity.OpSurveyRead, "surveys", "surveys.read", "survey", h.Get)...)
	routes.POST("/:id/close", g.chain(identity.OpSurveyCreate, "surveys", "surveys.close", "survey", h.Close)...)
	routes.POST("/:id/responses", g.chain(identity.OpSurveyRespond, "surveys", "surveys.respond", "survey", h.Respond)...)
	routes.GET("/:id/responses", g.chain(identity.OpSurveyCreate, "surveys", "surveys.responses", "survey", h.Responses)...)
	return routes
}
