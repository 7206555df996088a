package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/gnwofoke/portfolio-api/config"
	redisadapter "github.com/gnwofoke/portfolio-api/internal/adapters/redis"
	"github.com/gnwofoke/portfolio-api/internal/core"
	"github.com/gnwofoke/portfolio-api/internal/data"
	"github.com/gnwofoke/portfolio-api/internal/service"
	"github.com/gnwofoke/portfolio-api/internal/storage"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth     *service.AuthService
	Projects *service.ProjectService
	Blog     *service.BlogService
	Messages *service.MessageService
	Skills   *service.SkillService
	Stats    *service.StatsService
	Images   core.ImageStore
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Projects *data.ProjectRepo
	Posts    *data.PostRepo
	Messages *data.MessageRepo
	Skills   *data.SkillRepo
	Admins   *data.AdminRepo
	Sessions *redisadapter.SessionStore
}

func buildRepositories(db *sql.DB, redisClient redis.UniversalClient) *serviceRepositories {
	return &serviceRepositories{
		Projects: data.NewProjectRepo(db),
		Posts:    data.NewPostRepo(db),
		Messages: data.NewMessageRepo(db),
		Skills:   data.NewSkillRepo(db),
		Admins:   data.NewAdminRepo(db),
		Sessions: redisadapter.NewSessionStore(redisClient),
	}
}

// NewServices builds the service layer from its data adapters.
func NewServices(ctx context.Context, deps *ServiceDeps) (ServiceContainer, error) {
	cfg := deps.Config
	repos := buildRepositories(deps.DB, deps.RedisClient)

	images, err := buildImageStore(ctx, cfg, deps.Logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	return ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Admins:      repos.Admins,
			Sessions:    repos.Sessions,
			TokenSecret: []byte(cfg.Auth.TokenSecret),
			SessionTTL:  cfg.Auth.SessionTTL,
		}),
		Projects: service.NewProjectService(service.ProjectServiceOptions{Projects: repos.Projects}),
		Blog:     service.NewBlogService(service.BlogServiceOptions{Posts: repos.Posts}),
		Messages: service.NewMessageService(service.MessageServiceOptions{Messages: repos.Messages}),
		Skills:   service.NewSkillService(service.SkillServiceOptions{Skills: repos.Skills}),
		Stats: service.NewStatsService(service.StatsServiceOptions{
			Projects: repos.Projects,
			Posts:    repos.Posts,
			Messages: repos.Messages,
			Skills:   repos.Skills,
		}),
		Images: images,
	}, nil
}

//nolint:ireturn // the backend is picked at runtime from configuration.
func buildImageStore(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (core.ImageStore, error) {
	switch cfg.Storage.Mode {
	case config.StorageModeS3:
		store, err := storage.NewS3Store(ctx, cfg.Storage.S3)
		if err != nil {
			return nil, fmt.Errorf("build s3 image store: %w", err)
		}
		if logger != nil {
			logger.InfoContext(ctx, "image storage configured", "mode", "s3", "bucket", cfg.Storage.S3.Bucket)
		}
		return store, nil
	case config.StorageModeLocal:
		store, err := storage.NewLocalStore(cfg.Storage.LocalDir, cfg.HTTP.BaseURL+"/uploads")
		if err != nil {
			return nil, fmt.Errorf("build local image store: %w", err)
		}
		if logger != nil {
			logger.InfoContext(ctx, "image storage configured", "mode", "local", "dir", cfg.Storage.LocalDir)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage mode %q", cfg.Storage.Mode)
	}
}

// SeedAdmin creates the configured bootstrap admin account if it does not
// exist yet. A no-op when seeding is unconfigured.
func SeedAdmin(ctx context.Context, cfg *config.AppConfig, services ServiceContainer, logger *slog.Logger) error {
	if cfg.Auth.SeedAdminEmail == "" || cfg.Auth.SeedAdminPassword == "" {
		return nil
	}
	if err := services.Auth.SeedAdmin(ctx, "Admin", cfg.Auth.SeedAdminEmail, cfg.Auth.SeedAdminPassword); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if logger != nil {
		logger.InfoContext(ctx, "seed admin ensured", "email", cfg.Auth.SeedAdminEmail)
	}
	return nil
}
