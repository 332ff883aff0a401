package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"money-tracker-go/internal/config"
	"money-tracker-go/internal/db"
	"money-tracker-go/internal/domain/ledger"
	"money-tracker-go/internal/domain/prices"
	profiledomain "money-tracker-go/internal/domain/profile"
	syncdomain "money-tracker-go/internal/domain/sync"
	trackerdomain "money-tracker-go/internal/domain/tracker"
	"money-tracker-go/internal/integrations/mail"
	"money-tracker-go/internal/integrations/pricefeed"
	"money-tracker-go/internal/repository/inmemory"
	profilerepo "money-tracker-go/internal/repository/postgres/profile"
	syncrepo "money-tracker-go/internal/repository/postgres/sync"
	"money-tracker-go/internal/repository/snapshot"
	"money-tracker-go/internal/scheduler"
	"money-tracker-go/internal/transport/httpserver"
	"money-tracker-go/internal/transport/httpserver/handler"
	"money-tracker-go/pkg/logger"
)

const profileCacheTTL = 5 * time.Minute

type App struct {
	cfg        config.Config
	log        logger.Logger
	httpServer *http.Server
	db         *gorm.DB
	prices     *prices.Service
	refresh    *scheduler.PriceRefresh
}

func New(log logger.Logger) (*App, error) {
	decimal.MarshalJSONWithoutQuotes = true

	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	application := &App{cfg: cfg, log: log}

	var (
		profileRepo profiledomain.Repository
		recordsRepo syncdomain.Repository
	)
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn("app: using in-memory store, remote data is lost on restart")
		profileRepo = inmemory.NewProfileRepository()
		recordsRepo = inmemory.NewRecordsRepository()
	default:
		log.Info("app: initializing database")
		dbConn, err := db.NewPostgres(cfg.DB, log)
		if err != nil {
			return nil, err
		}
		application.db = dbConn
		if err := db.Migrate(dbConn, log); err != nil {
			_ = application.closeDB()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		profileRepo = profilerepo.NewPostgres(dbConn)
		recordsRepo = syncrepo.NewPostgres(dbConn)
	}

	verifier := pinVerifier(cfg.Auth.PinHashMode)
	log.Info("app: pin verifier selected", "mode", cfg.Auth.PinHashMode)

	snapshots, err := snapshot.NewFileStore(cfg.Snapshot.Dir)
	if err != nil {
		_ = application.closeDB()
		return nil, fmt.Errorf("snapshot store: %w", err)
	}

	profiles := profiledomain.NewServiceWithCache(profileRepo, verifier, inmemory.NewInMemoryProfileCache(), profileCacheTTL)
	tokens := profiledomain.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	tracker := trackerdomain.NewService(
		ledger.NewReducer(),
		snapshots,
		syncdomain.NewService(recordsRepo),
		verifier,
		trackerdomain.Preferences{Language: "en", Currency: cfg.Prices.Currency, Theme: "light"},
		log,
	)

	application.prices = prices.NewService(
		pricefeed.NewBitcoinClient(cfg.Prices.BTCURL, cfg.Prices.Currency, cfg.Prices.Timeout),
		pricefeed.NewGoldClient(cfg.Prices.GoldURL, cfg.Prices.Timeout),
		pricefeed.NewFXClient(cfg.Prices.FXURL, cfg.Prices.Currency, cfg.Prices.Timeout),
		cfg.Prices.Currency,
		log,
	)
	application.refresh, err = scheduler.NewPriceRefresh(cfg.Prices.RefreshSchedule, application.prices, cfg.Prices.Timeout, log)
	if err != nil {
		_ = application.closeDB()
		return nil, err
	}

	mailer := mail.NewSender(cfg.Mail, log)
	if !mailer.Enabled() {
		log.Info("app: mail export disabled, SMTP_HOST or SENDER_EMAIL not set")
	}

	log.Info("app: initializing router")
	handlers := handler.New(profiles, tokens, tracker, application.prices, mailer, log)
	router := httpserver.NewRouter(cfg, handlers, log)

	log.Info("app: initializing http server")
	application.httpServer = httpserver.New(cfg, router)

	return application, nil
}

func pinVerifier(mode string) profiledomain.PinVerifier {
	if mode == config.PinHashModeBcrypt {
		return profiledomain.BcryptVerifier{}
	}
	return profiledomain.PlainVerifier{}
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

// Start runs the background jobs and warms the price quote.
func (a *App) Start(ctx context.Context) {
	a.refresh.Start()
	go func() {
		ctx, cancel := context.WithTimeout(ctx, a.cfg.Prices.Timeout+time.Second)
		defer cancel()
		if _, err := a.prices.Refresh(ctx); err != nil {
			a.log.Warn("app: initial price refresh incomplete", "error", err)
		}
	}()
}

func (a *App) Close(ctx context.Context) error {
	a.refresh.Stop(ctx)
	return a.closeDB()
}

func (a *App) closeDB() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
