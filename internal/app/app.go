package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/OriKozok/movie-town-server/internal/booking"
	"github.com/OriKozok/movie-town-server/internal/domain"
	"github.com/OriKozok/movie-town-server/internal/inventory"
	"github.com/OriKozok/movie-town-server/internal/janitor"
	"github.com/OriKozok/movie-town-server/internal/repository"
	"github.com/OriKozok/movie-town-server/internal/schedule"
	"github.com/OriKozok/movie-town-server/internal/session"
	appvalidator "github.com/OriKozok/movie-town-server/internal/validator"
	"github.com/OriKozok/movie-town-server/internal/vcs"
)

var (
	version = vcs.Version()
)

type application struct {
	config    config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     *redis.Client
	validator *validator.Validate

	sessions  *session.Store
	inventory *inventory.Inventory
	scheduler *schedule.Scheduler
	orders    *booking.Manager

	movieRepo     domain.MovieRepository
	cinemaRepo    domain.CinemaRepository
	screeningRepo domain.ScreeningRepository
	seatRepo      domain.SeatRepository
	orderRepo     domain.OrderRepository
	userRepo      domain.UserRepository
}

type config struct {
	port int
	env  string
	db   struct {
		dsn          string
		maxOpenConns int
		maxIdleTime  time.Duration
		migrations   string
	}
	redis struct {
		url string
	}
	limiter struct {
		requestsPerMinute int
	}
	admin struct {
		email    string
		password string
	}
	seatPrice decimal.Decimal
	sessions  struct {
		idleTimeout   time.Duration
		sweepInterval time.Duration
	}
	retirementInterval time.Duration
}

func Run() error {
	var cfg config
	var seatPrice int

	flag.IntVar(&cfg.port, "port", 3000, "server port")
	flag.StringVar(&cfg.env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.db.dsn, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.db.maxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.db.maxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")
	flag.StringVar(&cfg.db.migrations, "db-migrations", "migrations", "Path to SQL migrations")

	flag.StringVar(&cfg.redis.url, "redis-url", "", "Redis URL (enables the rate limiter when set)")
	flag.IntVar(&cfg.limiter.requestsPerMinute, "limiter-rpm", 120, "Rate limit per client IP per minute")

	flag.StringVar(&cfg.admin.email, "admin-email", "admin@admin.com", "Administrator email")
	flag.StringVar(&cfg.admin.password, "admin-password", "admin", "Administrator password")

	flag.IntVar(&seatPrice, "seat-price", 15, "Price of a single seat")

	flag.DurationVar(&cfg.sessions.idleTimeout, "session-idle-timeout", 30*time.Minute, "Idle time after which a session is evicted")
	flag.DurationVar(&cfg.sessions.sweepInterval, "session-sweep-interval", 2*time.Minute, "How often idle sessions are swept")
	flag.DurationVar(&cfg.retirementInterval, "retirement-interval", time.Hour, "How often past screenings are retired")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	cfg.seatPrice = decimal.NewFromInt(int64(seatPrice))

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	validator := appvalidator.NewValidator()

	db, err := newDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	err = repository.Migrate(cfg.db.migrations, cfg.db.dsn)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	var redisClient *redis.Client
	if cfg.redis.url != "" {
		redisClient, err = newRedisClient(cfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	movieRepo := repository.NewPostgresMovieRepository(db)
	cinemaRepo := repository.NewPostgresCinemaRepository(db)
	screeningRepo := repository.NewPostgresScreeningRepository(db)
	seatRepo := repository.NewPostgresSeatRepository(db)
	orderRepo := repository.NewPostgresOrderRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)

	inv := inventory.New()
	orders := booking.NewManager(inv, orderRepo, seatRepo, cfg.seatPrice)
	scheduler := schedule.NewScheduler(
		schedule.NewIndex(), inv, orders, movieRepo, cinemaRepo, screeningRepo, seatRepo, logger)

	err = scheduler.Rehydrate(context.Background())
	if err != nil {
		return err
	}

	app := &application{
		config:        cfg,
		logger:        logger,
		db:            db,
		redis:         redisClient,
		validator:     validator,
		sessions:      session.NewStore(),
		inventory:     inv,
		scheduler:     scheduler,
		orders:        orders,
		movieRepo:     movieRepo,
		cinemaRepo:    cinemaRepo,
		screeningRepo: screeningRepo,
		seatRepo:      seatRepo,
		orderRepo:     orderRepo,
		userRepo:      userRepo,
	}

	return app.run()
}

func newRedisClient(cfg config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.redis.url)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func newDatabasePool(cfg config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.db.maxIdleTime
	config.MaxConns = int32(cfg.db.maxOpenConns)

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	// The janitors run for the lifetime of the server and are stopped, and
	// waited for, after the listener has drained.
	janitorCtx, stopJanitors := context.WithCancel(context.Background())
	defer stopJanitors()

	retirement := janitor.New("screening-retirement", app.config.retirementInterval,
		app.scheduler.RetirementSweep, app.logger)

	sessionSweep := janitor.New("session-eviction", app.config.sessions.sweepInterval,
		func(ctx context.Context, now time.Time) {
			evicted := app.sessions.EvictIdle(now, app.config.sessions.idleTimeout)
			if evicted > 0 {
				app.logger.Info("evicted idle sessions", "count", evicted)
			}
		}, app.logger)

	retirement.Start(janitorCtx)
	sessionSweep.Start(janitorCtx)

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	stopJanitors()
	<-retirement.Done()
	<-sessionSweep.Done()

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
