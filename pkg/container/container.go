package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	adminHandler "library-backend/internal/domains/admin/handler"
	adminService "library-backend/internal/domains/admin/service"
	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"
	loanHandler "library-backend/internal/domains/loan/handler"
	loanRepo "library-backend/internal/domains/loan/repository"
	loanService "library-backend/internal/domains/loan/service"
	userRepo "library-backend/internal/domains/user/repository"
	"library-backend/internal/infrastructure/database"
	pkgdb "library-backend/pkg/database"
	"library-backend/pkg/jwt"
	"library-backend/pkg/metrics"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every long-lived dependency of the API process.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB
	TxManager  pkgdb.TxManager
	JWTManager *jwt.Manager
	Metrics    *metrics.Metrics

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	BookRepo bookRepo.RepositoryInterface
	LoanRepo loanRepo.RepositoryInterface
	UserRepo userRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================
	BookService  bookService.ServiceInterface
	LoanService  loanService.ServiceInterface
	AdminService adminService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	BookHandler  *bookHandler.BookHandler
	LoanHandler  *loanHandler.LoanHandler
	AdminHandler *adminHandler.AdminHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer loads config, connects to Postgres and builds the graph.
//
// Order matters: config, infrastructure, repositories, services, handlers.
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Info().Msg("Initializing DI container")

	db := database.NewPostgresDB(cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Pool.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	log.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.DBName).Msg("Database connected")

	c := New(cfg, db.Pool, db.TxManager())
	c.DB = db

	log.Info().Msg("DI container initialized")
	return c, nil
}

// New wires repositories, services and handlers over an open pool.
func New(cfg *config.Config, pool *pgxpool.Pool, txm pkgdb.TxManager) *Container {
	c := &Container{
		Config:     cfg,
		TxManager:  txm,
		JWTManager: jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL),
		Metrics:    metrics.NewMetrics(),
	}

	c.initRepositories(pool)
	c.initServices()
	c.initHandlers()

	return c
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories(pool *pgxpool.Pool) {
	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.LoanRepo = loanRepo.NewPostgresRepository(pool)
	c.UserRepo = userRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.BookService = bookService.NewBookService(c.BookRepo)

	// Loan service reads books inside its own transactions
	c.LoanService = loanService.NewLoanService(c.TxManager, c.BookRepo, c.LoanRepo)

	c.AdminService = adminService.NewAdminService(c.UserRepo, c.LoanRepo)
}

func (c *Container) initHandlers() {
	pageSize := c.Config.Library.DefaultPageSize

	c.BookHandler = bookHandler.NewBookHandler(c.BookService, c.LoanService, c.Metrics, pageSize)
	c.LoanHandler = loanHandler.NewLoanHandler(c.LoanService, c.Metrics, pageSize)
	c.AdminHandler = adminHandler.NewAdminHandler(c.AdminService)
}

// Cleanup releases resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB == nil {
		return
	}
	if err := c.DB.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close database")
		return
	}
	log.Info().Msg("Database connections closed")
}
