package di

import (
	"context"
	"time"

	"gorm.io/gorm"

	"taskchat/application/agent"
	"taskchat/application/serviceimpl"
	"taskchat/domain/ports"
	"taskchat/domain/repositories"
	"taskchat/domain/services"
	natspkg "taskchat/infrastructure/nats"
	openaipkg "taskchat/infrastructure/openai"
	"taskchat/infrastructure/postgres"
	redispkg "taskchat/infrastructure/redis"
	"taskchat/infrastructure/storage"
	"taskchat/interfaces/api/handlers"
	"taskchat/pkg/config"
	"taskchat/pkg/logger"
	"taskchat/pkg/scheduler"
)

const auditPruneJobID = "audit-prune"

type Container struct {
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redispkg.Client // optional, token denylist
	NATSClient     *natspkg.Client  // optional, audit event fan-out
	Storage        ports.StoragePort
	Classifier     ports.IntentClassifier // optional, keyword-only resolution without it
	EventScheduler scheduler.EventScheduler

	// Repositories
	UserRepository         repositories.UserRepository
	TaskRepository         repositories.TaskRepository
	StudentRepository      repositories.StudentRepository
	ConversationRepository repositories.ConversationRepository
	AuditRepository        repositories.AuditRepository

	// Agent core
	ToolRegistry   *agent.Registry
	IntentResolver *agent.Resolver

	// Services
	AuditService   services.AuditService
	UserService    services.UserService
	TaskService    services.TaskService
	StudentService services.StudentService
	ChatService    services.ChatService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}
	if err := c.initLogger(); err != nil {
		return err
	}
	if err := c.initInfrastructure(); err != nil {
		return err
	}
	c.initRepositories()
	c.initServices()
	if err := c.initScheduler(); err != nil {
		return err
	}
	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

func (c *Container) initLogger() error {
	if err := logger.Init(logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}); err != nil {
		return err
	}

	logger.Info("Logger initialized", "level", c.Config.Log.Level, "format", c.Config.Log.Format)
	return nil
}

func (c *Container) initInfrastructure() error {
	db, err := postgres.NewDatabase(c.Config.Database)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated")

	// Redis is optional; without it logged-out tokens stay valid until expiry.
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis initialization failed, token revocation disabled", "error", err)
		} else {
			c.RedisClient = redisClient
		}
	}

	// NATS is optional; audit rows are written either way.
	if c.Config.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(c.Config.NATS.URL)
		if err != nil {
			logger.Warn("NATS initialization failed, audit events stay local", "error", err)
		} else {
			c.NATSClient = natsClient
		}
	}

	if err := c.initStorage(); err != nil {
		return err
	}

	if c.Config.Chat.APIKey != "" {
		c.Classifier = openaipkg.NewClassifier(openaipkg.Config{
			APIKey:  c.Config.Chat.APIKey,
			BaseURL: c.Config.Chat.BaseURL,
			Model:   c.Config.Chat.Model,
		})
		logger.Info("Intent classifier initialized", "model", c.Config.Chat.Model)
	} else {
		logger.Warn("No chat API key configured, resolver runs keyword-only")
	}

	return nil
}

func (c *Container) initStorage() error {
	switch c.Config.Storage.Type {
	case "s3":
		s3, err := storage.NewS3Storage(storage.S3StorageConfig{
			Endpoint:  c.Config.Storage.S3.Endpoint,
			AccessKey: c.Config.Storage.S3.AccessKey,
			SecretKey: c.Config.Storage.S3.SecretKey,
			Bucket:    c.Config.Storage.S3.Bucket,
			UseSSL:    c.Config.Storage.S3.UseSSL,
			Region:    c.Config.Storage.S3.Region,
			PublicURL: c.Config.Storage.S3.PublicURL,
		})
		if err != nil {
			return err
		}
		c.Storage = s3
	default:
		local, err := storage.NewLocalStorage(storage.LocalStorageConfig{
			BasePath: c.Config.Storage.BasePath,
			BaseURL:  c.Config.Storage.BaseURL,
		})
		if err != nil {
			return err
		}
		c.Storage = local
	}

	logger.Info("Storage initialized", "provider", c.Storage.GetProviderName())
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.TaskRepository = postgres.NewTaskRepository(c.DB)
	c.StudentRepository = postgres.NewStudentRepository(c.DB)
	c.ConversationRepository = postgres.NewConversationRepository(c.DB)
	c.AuditRepository = postgres.NewAuditRepository(c.DB)
}

func (c *Container) initServices() {
	var publisher ports.EventPublisher
	if c.NATSClient != nil {
		publisher = c.NATSClient
	}
	c.AuditService = serviceimpl.NewAuditService(c.AuditRepository, publisher, c.Config.Audit.Subject, c.Config.Audit.RetentionDays)

	var revoker ports.TokenRevoker
	if c.RedisClient != nil {
		revoker = c.RedisClient
	}
	c.UserService = serviceimpl.NewUserService(c.UserRepository, revoker, c.AuditService, c.Config.JWT.Secret, c.Config.JWT.TTL)

	c.TaskService = serviceimpl.NewTaskService(c.TaskRepository, c.Storage, c.AuditService)
	c.StudentService = serviceimpl.NewStudentService(c.StudentRepository, c.AuditService)

	c.ToolRegistry = agent.NewRegistry(c.TaskService)
	c.IntentResolver = agent.NewResolver(c.ToolRegistry, c.TaskService, c.Classifier, c.Config.Chat.ClassifyTimeout)
	c.ChatService = serviceimpl.NewChatService(c.ConversationRepository, c.ToolRegistry, c.IntentResolver, c.Config.Chat.HistoryLimit, c.Config.Chat.ToolTimeout)
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()

	err := c.EventScheduler.AddJob(auditPruneJobID, c.Config.Audit.PruneCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := c.AuditService.Prune(ctx); err != nil {
			logger.Error("Audit prune job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	c.EventScheduler.Start()
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetHandlerServices packages the container for the HTTP layer.
func (c *Container) GetHandlerServices() *handlers.Services {
	var revoker ports.TokenRevoker
	if c.RedisClient != nil {
		revoker = c.RedisClient
	}

	var checks []handlers.ReadyCheck
	if c.RedisClient != nil {
		checks = append(checks, handlers.ReadyCheck{Name: "redis", Check: c.RedisClient.Ping})
	}
	if c.NATSClient != nil {
		checks = append(checks, handlers.ReadyCheck{Name: "nats", Check: c.NATSClient.Ping})
	}

	return &handlers.Services{
		UserService:    c.UserService,
		TaskService:    c.TaskService,
		StudentService: c.StudentService,
		ChatService:    c.ChatService,
		AuditService:   c.AuditService,
		StoragePort:    c.Storage,
		TokenRevoker:   revoker,
		DB:             c.DB,
		ReadyChecks:    checks,
		JWTSecret:      c.Config.JWT.Secret,
	}
}

func (c *Container) Cleanup() error {
	if c.EventScheduler != nil {
		c.EventScheduler.Stop()
	}

	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			logger.Warn("NATS close failed", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Redis close failed", "error", err)
		}
	}

	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Database close failed", "error", err)
			}
		}
	}

	return nil
}
