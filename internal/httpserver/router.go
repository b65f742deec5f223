package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"food-delivery/internal/addresslookup"
	"food-delivery/internal/cart"
	"food-delivery/internal/domain"
	authsvc "food-delivery/internal/service/auth"
	cartsvc "food-delivery/internal/service/cart"
	delivsvc "food-delivery/internal/service/deliverer"
	menusvc "food-delivery/internal/service/menu"
	ordersvc "food-delivery/internal/service/order"
	sessionsvc "food-delivery/internal/service/session"
)

type companyRepo interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Company, error)
}

type authService interface {
	Signup(ctx context.Context, companyID string, in authsvc.SignupInput) (*domain.User, error)
	SignupAdmin(ctx context.Context, in authsvc.AdminSignupInput) (*domain.Company, *domain.User, error)
	CreateUser(ctx context.Context, companyID string, u domain.User, password string) (*domain.User, error)
	Login(ctx context.Context, companyID, email, password string) (*authsvc.Session, error)
	Refresh(ctx context.Context, companyID, refreshToken string) (*authsvc.Session, error)
	Logout(ctx context.Context, token string) error
	LookupByToken(ctx context.Context, companyID, token string) (*domain.User, error)
	RequestPasswordReset(ctx context.Context, companyID, email string) (string, error)
	ResetPassword(ctx context.Context, companyID, token, newPassword string) error
}

type sessionService interface {
	Issue(ctx context.Context, companyID string) (*sessionsvc.Session, error)
	Lookup(ctx context.Context, companyID, token string) (string, error)
}

type cartService interface {
	Quote(companyID, sessionID string) cartsvc.Quote
	Add(ctx context.Context, companyID, sessionID string, in cartsvc.AddInput) (cartsvc.Quote, error)
	ChangeQuantity(companyID, sessionID, key string, quantity int) cartsvc.Quote
	Increase(companyID, sessionID, key string) cartsvc.Quote
	Decrease(companyID, sessionID, key string) cartsvc.Quote
	Remove(companyID, sessionID, key string) cartsvc.Quote
	Clear(companyID, sessionID string) cartsvc.Quote
	ApplyCoupon(ctx context.Context, companyID, sessionID, code string, now time.Time) (cartsvc.Quote, error)
	RemoveCoupon(companyID, sessionID string) cartsvc.Quote
	Take(companyID, sessionID string) cart.State
	Restore(companyID, sessionID string, st cart.State)
}

type orderService interface {
	Checkout(ctx context.Context, companyID string, st cart.State, in ordersvc.CheckoutInput) (*domain.Order, error)
	CreatePDV(ctx context.Context, companyID string, st cart.State, in ordersvc.PDVInput) (*domain.Order, error)
	Get(ctx context.Context, companyID, id string) (*domain.Order, error)
	List(ctx context.Context, companyID string, in ordersvc.ListInput) ([]domain.Order, error)
	Options(ctx context.Context, companyID, id string) ([]domain.OrderStatus, error)
	UpdateStatus(ctx context.Context, companyID, id string, in ordersvc.StatusInput) (*domain.Order, error)
	Correct(ctx context.Context, companyID, id string, in ordersvc.StatusInput) (*domain.Order, error)
	Finalize(ctx context.Context, companyID, id, userID string) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, companyID, id string, status domain.PaymentStatus, userID string) (*domain.Order, error)
	CourierQueue(ctx context.Context, companyID string, user *domain.User, day time.Time) ([]domain.Order, error)
	ConfirmDelivery(ctx context.Context, companyID, id string, user *domain.User) (*domain.Order, error)
}

type menuService interface {
	Menu(ctx context.Context, companyID string) (*menusvc.Menu, error)
	List(ctx context.Context, companyID string) ([]domain.MenuItem, error)
	Get(ctx context.Context, companyID, id string) (*domain.MenuItem, error)
	Create(ctx context.Context, companyID string, m domain.MenuItem) (*domain.MenuItem, error)
	Update(ctx context.Context, companyID, id string, m domain.MenuItem) (*domain.MenuItem, error)
	Delete(ctx context.Context, companyID, id string) error
	SetAvailable(ctx context.Context, companyID, id string, available bool) (*domain.MenuItem, error)
}

type categoryService interface {
	List(ctx context.Context, companyID string) ([]domain.Category, error)
	Upsert(ctx context.Context, companyID string, c domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, companyID, id string) error
}

type variationService interface {
	List(ctx context.Context, companyID string) ([]domain.Variation, error)
	Create(ctx context.Context, companyID string, v domain.Variation) (*domain.Variation, error)
	Update(ctx context.Context, companyID, id string, v domain.Variation) (*domain.Variation, error)
	Delete(ctx context.Context, companyID, id string) error
	SetAvailable(ctx context.Context, companyID, id string, available bool) (*domain.Variation, error)
}

type couponService interface {
	List(ctx context.Context, companyID string) ([]domain.Coupon, error)
	Create(ctx context.Context, companyID string, c domain.Coupon) (*domain.Coupon, error)
	Update(ctx context.Context, companyID, id string, c domain.Coupon) (*domain.Coupon, error)
	Delete(ctx context.Context, companyID, id string) error
	SetActive(ctx context.Context, companyID, id string, active bool) (*domain.Coupon, error)
}

type delivererService interface {
	List(ctx context.Context, companyID string) ([]domain.User, error)
	ListActive(ctx context.Context, companyID string) ([]domain.User, error)
	Create(ctx context.Context, companyID string, in delivsvc.Input) (*domain.User, error)
	Update(ctx context.Context, companyID, id string, in delivsvc.Input) (*domain.User, error)
	Toggle(ctx context.Context, companyID, id string) (*domain.User, error)
}

type addressLookup interface {
	Lookup(ctx context.Context, postalCode string) (*addresslookup.Address, error)
}

type auditReader interface {
	ListByOrder(ctx context.Context, companyID, orderID string, limit int) ([]domain.OrderStatusAudit, error)
}

type eventHub interface {
	Subscribe(companyID string) (<-chan domain.OrderStatusEvent, func())
}

// Deps are the services behind the routes. Address, Audits and Events are
// optional; their routes are only mounted when set.
type Deps struct {
	CompanyRepo  companyRepo
	AuthSvc      authService
	SessionSvc   sessionService
	CartSvc      cartService
	OrderSvc     orderService
	MenuSvc      menuService
	CategorySvc  categoryService
	VariationSvc variationService
	CouponSvc    couponService
	DelivererSvc delivererService

	Address addressLookup
	Audits  auditReader
	Events  eventHub

	CORSAllowedOrigins []string
	// ExposeResetTokens returns password reset tokens in the response body
	// instead of expecting out-of-band delivery. Development only.
	ExposeResetTokens bool
	Now               func() time.Time
}

func (d Deps) validate() error {
	switch {
	case d.CompanyRepo == nil:
		return errors.New("httpserver: company repository required")
	case d.AuthSvc == nil:
		return errors.New("httpserver: auth service required")
	case d.SessionSvc == nil || d.CartSvc == nil:
		return errors.New("httpserver: cart services required")
	case d.OrderSvc == nil:
		return errors.New("httpserver: order service required")
	case d.MenuSvc == nil || d.CategorySvc == nil || d.VariationSvc == nil:
		return errors.New("httpserver: catalog services required")
	case d.CouponSvc == nil || d.DelivererSvc == nil:
		return errors.New("httpserver: coupon and deliverer services required")
	}
	return nil
}

type handlers struct {
	Deps
	logger *zap.SugaredLogger
}

func (h *handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.SugaredLogger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	h := &handlers{Deps: deps, logger: logger}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(zap.NewStdLog(logger.Desugar()).Writer()), gin.Recovery())
	if len(deps.CORSAllowedOrigins) > 0 {
		router.Use(corsMiddleware(deps.CORSAllowedOrigins))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.POST("/companies", h.signupAdmin)
	if deps.Address != nil {
		router.GET("/address/:postalCode", h.lookupAddress)
	}

	company := router.Group("/:companySlug", companyMiddleware(deps.CompanyRepo, logger))
	company.GET("/menu", h.publicMenu)

	company.POST("/auth/signup", h.signup)
	company.POST("/auth/login", h.login)
	company.POST("/auth/refresh", h.refresh)
	company.POST("/auth/logout", h.logout)
	company.POST("/auth/password-reset", h.requestPasswordReset)
	company.POST("/auth/password-reset/confirm", h.resetPassword)

	company.POST("/cart/session", h.issueCartSession)
	cartRoutes := company.Group("/cart", cartSessionMiddleware(deps.SessionSvc, logger))
	cartRoutes.GET("", h.getCart)
	cartRoutes.DELETE("", h.clearCart)
	cartRoutes.POST("/items", h.addCartItem)
	cartRoutes.PATCH("/items/:key", h.changeCartItem)
	cartRoutes.POST("/items/:key/increase", h.increaseCartItem)
	cartRoutes.POST("/items/:key/decrease", h.decreaseCartItem)
	cartRoutes.DELETE("/items/:key", h.removeCartItem)
	cartRoutes.POST("/coupon", h.applyCoupon)
	cartRoutes.DELETE("/coupon", h.removeCoupon)
	cartRoutes.POST("/checkout", h.checkout)

	authed := company.Group("", authMiddleware(deps.AuthSvc, logger))
	authed.GET("/me", h.me)

	admin := authed.Group("/admin", requireRole(domain.RoleAdmin))
	admin.GET("/categories", h.listCategories)
	admin.POST("/categories", h.upsertCategory)
	admin.PUT("/categories/:id", h.upsertCategory)
	admin.DELETE("/categories/:id", h.deleteCategory)

	admin.GET("/variations", h.listVariations)
	admin.POST("/variations", h.createVariation)
	admin.PUT("/variations/:id", h.updateVariation)
	admin.DELETE("/variations/:id", h.deleteVariation)
	admin.PATCH("/variations/:id/availability", h.setVariationAvailability)

	admin.GET("/menu-items", h.listMenuItems)
	admin.GET("/menu-items/:id", h.getMenuItem)
	admin.POST("/menu-items", h.createMenuItem)
	admin.PUT("/menu-items/:id", h.updateMenuItem)
	admin.DELETE("/menu-items/:id", h.deleteMenuItem)
	admin.PATCH("/menu-items/:id/availability", h.setMenuItemAvailability)

	admin.GET("/coupons", h.listCoupons)
	admin.POST("/coupons", h.createCoupon)
	admin.PUT("/coupons/:id", h.updateCoupon)
	admin.DELETE("/coupons/:id", h.deleteCoupon)
	admin.PATCH("/coupons/:id/active", h.setCouponActive)

	admin.GET("/deliverers", h.listDeliverers)
	admin.GET("/deliverers/active", h.listActiveDeliverers)
	admin.POST("/deliverers", h.createDeliverer)
	admin.PUT("/deliverers/:id", h.updateDeliverer)
	admin.POST("/deliverers/:id/toggle", h.toggleDeliverer)

	admin.POST("/users", h.createStaff)

	admin.GET("/orders", h.listOrders)
	if deps.Events != nil {
		admin.GET("/orders/stream", h.streamOrders)
	}
	admin.GET("/orders/:id", h.getOrder)
	admin.GET("/orders/:id/options", h.orderOptions)
	admin.PATCH("/orders/:id/status", h.updateOrderStatus)
	admin.PATCH("/orders/:id/payment-status", h.updatePaymentStatus)
	admin.POST("/orders/:id/finalize", h.finalizeOrder)
	admin.POST("/orders/:id/correct", h.correctOrder)
	if deps.Audits != nil {
		admin.GET("/orders/:id/history", h.orderHistory)
	}

	pdv := authed.Group("/pdv", requireRole(domain.RolePDV), cartSessionMiddleware(deps.SessionSvc, logger))
	pdv.POST("/orders", h.createPDVOrder)

	courier := authed.Group("/courier", requireRole(domain.RoleDeliverer))
	courier.GET("/orders", h.courierQueue)
	courier.POST("/orders/:id/confirm", h.confirmDelivery)

	return router, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", cartSessionHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = origins
	return cors.New(cfg)
}
