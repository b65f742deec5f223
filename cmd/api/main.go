package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"food-delivery/internal/addresslookup"
	"food-delivery/internal/config"
	"food-delivery/internal/db"
	"food-delivery/internal/httpserver"
	"food-delivery/internal/notify"
	"food-delivery/internal/queue"
	categoryrepo "food-delivery/internal/repository/category"
	companyrepo "food-delivery/internal/repository/company"
	couponrepo "food-delivery/internal/repository/coupon"
	menuitemrepo "food-delivery/internal/repository/menuitem"
	orderrepo "food-delivery/internal/repository/order"
	tokenrepo "food-delivery/internal/repository/token"
	userrepo "food-delivery/internal/repository/user"
	variationrepo "food-delivery/internal/repository/variation"
	authsvc "food-delivery/internal/service/auth"
	cartsvc "food-delivery/internal/service/cart"
	categorysvc "food-delivery/internal/service/category"
	couponsvc "food-delivery/internal/service/coupon"
	delivsvc "food-delivery/internal/service/deliverer"
	menusvc "food-delivery/internal/service/menu"
	ordersvc "food-delivery/internal/service/order"
	sessionsvc "food-delivery/internal/service/session"
	variationsvc "food-delivery/internal/service/variation"
	mongostore "food-delivery/internal/store/mongo"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := newLogger(cfg)
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbpool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatalw("connect to db", "error", err)
	}
	defer dbpool.Close()

	companyRepo := companyrepo.NewPostgres(dbpool)
	userRepo := userrepo.NewPostgres(dbpool, logger)
	menuItemRepo := menuitemrepo.NewPostgres(dbpool, logger)

	authService := authsvc.New(userRepo, companyRepo, tokenrepo.NewPostgres(dbpool), logger)
	sessionService := sessionsvc.New(cfg.CartSessionTTL, logger)
	categoryService := categorysvc.New(categoryrepo.NewPostgres(dbpool))
	variationService := variationsvc.New(variationrepo.NewPostgres(dbpool, logger), logger)
	couponService := couponsvc.New(couponrepo.NewPostgres(dbpool))
	menuService := menusvc.New(menuItemRepo, categoryService, variationService)
	cartService := cartsvc.New(menuItemRepo, variationService, couponService)
	delivererService := delivsvc.New(userRepo, authService)

	hub := notify.NewHub(16)
	dispatcher := notify.NewDispatcher(cfg.WebhookTimeout, logger)
	dispatcher.Register("live", hub)

	// With a broker the worker owns the webhook and the audit trail.
	var broker queue.Broker
	if cfg.RabbitMQURL != "" {
		rmq, err := queue.NewRabbitMQBroker(queue.Config{URL: cfg.RabbitMQURL, PrefetchCount: cfg.RabbitMQPrefetchCount}, logger)
		if err != nil {
			logger.Fatalw("connect to rabbitmq", "error", err)
		}
		broker = rmq
		defer broker.Close()
		dispatcher.Register("queue", notify.NewPublisher(broker))
	} else if cfg.StatusWebhookURL != "" {
		dispatcher.Register("webhook", notify.NewWebhook(cfg.StatusWebhookURL, &http.Client{Timeout: cfg.WebhookTimeout}))
	}

	orderService := ordersvc.New(orderrepo.NewPostgres(dbpool, logger), ordersvc.Options{
		Coupons:    couponService,
		Deliverers: userRepo,
		Hook:       dispatcher,
		Logger:     logger,
	})

	deps := httpserver.Deps{
		CompanyRepo:        companyRepo,
		AuthSvc:            authService,
		SessionSvc:         sessionService,
		CartSvc:            cartService,
		OrderSvc:           orderService,
		MenuSvc:            menuService,
		CategorySvc:        categoryService,
		VariationSvc:       variationService,
		CouponSvc:          couponService,
		DelivererSvc:       delivererService,
		Events:             hub,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		ExposeResetTokens:  cfg.Development(),
	}
	if cfg.AddressLookupURL != "" {
		deps.Address = addresslookup.New(cfg.AddressLookupURL, &http.Client{Timeout: 5 * time.Second})
	}
	if cfg.MongoURI != "" {
		storage, err := mongostore.New(ctx, mongostore.Config{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
		if err != nil {
			logger.Fatalw("connect to mongo", "error", err)
		}
		defer storage.Close(context.Background()) //nolint:errcheck
		deps.Audits = mongostore.NewOrderStatusAuditRepository(storage.Database())
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, deps)
	if err != nil {
		logger.Fatalw("init server", "error", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return sessionService.Run(gctx, time.Minute, func(ids []string) {
			cartService.Drop(ids...)
		})
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Infow("api: shutting down")
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Errorw("api: stopped with error", "error", err)
	}
	dispatcher.Wait()
	logger.Infow("api: stopped")
}

func newLogger(cfg config.Config) *zap.SugaredLogger {
	build := zap.NewProduction
	if cfg.Development() {
		build = zap.NewDevelopment
	}
	l, err := build()
	if err != nil {
		panic(err)
	}
	return l.Sugar()
}
