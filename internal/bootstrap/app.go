package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-generator/internal/accounts"
	"resume-generator/internal/resumes"
	"resume-generator/internal/shared/config"
	"resume-generator/internal/shared/server"
	"resume-generator/internal/shared/storage/artifact"
	"resume-generator/internal/shared/storage/db"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	Layout    *artifact.Layout
	Templates *artifact.TemplateStore

	AccountsRepo accounts.Repo
	ResumesRepo  resumes.Repo
	Graph        *accounts.Graph

	AccountService *accounts.Service
	ResumeService  *resumes.Service

	AccountHandler *accounts.Handler
	ResumeHandler  *resumes.Handler
}

// Build prepares shared dependencies and wires the router. Without a
// database URL in dev-like environments it falls back to in-memory
// repositories.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		if !isDevLike(cfg.Env) {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
		log.Printf("bootstrap: JWT_SECRET empty; using insecure dev secret")
		cfg.JWTSecret = "dev-secret"
	}

	sqlDB, err := buildDB(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}

	app.Layout = artifact.NewLayout(cfg.ArtifactRoot)
	app.Templates = artifact.NewTemplateStore(app.Layout.TemplateDir())

	if sqlDB != nil {
		app.AccountsRepo = &accounts.PGRepo{DB: sqlDB}
		app.ResumesRepo = &resumes.PGRepo{DB: sqlDB}
	} else {
		app.AccountsRepo = accounts.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
	}

	app.Graph = &accounts.Graph{Repo: app.AccountsRepo}
	app.AccountService = accounts.NewService(app.AccountsRepo, cfg.JWTSecret)
	app.ResumeService = resumes.NewService(app.ResumesRepo, app.Graph, app.Layout, app.Templates)

	app.AccountHandler = accounts.NewHandler(app.AccountService)
	app.ResumeHandler = resumes.NewHandler(app.ResumeService, cfg.DefaultPageSize)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		AccountHandler: app.AccountHandler,
		ResumeHandler:  app.ResumeHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
