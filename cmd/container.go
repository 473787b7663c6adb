package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/talentwire/scout/internal/ai/embeddings"
	"github.com/talentwire/scout/internal/ai/profileparser"
	"github.com/talentwire/scout/internal/ai/queryparser"
	"github.com/talentwire/scout/pkg/fsx"
	"github.com/talentwire/scout/pkg/fsx/fsxs3"
	"github.com/talentwire/scout/pkg/iam/auth"
	"github.com/talentwire/scout/pkg/iam/auth/authinfra"
	"github.com/talentwire/scout/pkg/logx"
	"github.com/talentwire/scout/talent/candidate"
	"github.com/talentwire/scout/talent/candidate/candidateapi"
	"github.com/talentwire/scout/talent/candidate/candidateinfra"
	"github.com/talentwire/scout/talent/candidate/candidatesrv"
	"github.com/talentwire/scout/talent/candidate/worker"
	"github.com/talentwire/scout/talent/fit"
	"github.com/talentwire/scout/talent/search"
	"github.com/talentwire/scout/talent/search/searchapi"
	"github.com/talentwire/scout/talent/search/searchsrv"
)

const indexQueueName = "profile_index"

// Container holds all application dependencies
type Container struct {
	// Config
	AuthConfig auth.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Services
	TokenService     auth.TokenService
	AuthHandlers     *auth.AuthHandlers
	CandidateService *candidatesrv.Service
	SearchService    *searchsrv.Service
	IndexWorker      *worker.IndexWorker

	// API Handlers
	CandidateHandlers *candidateapi.Handlers
	SearchHandlers    *searchapi.Handlers

	// Middleware
	AuthMiddleware *auth.TokenMiddleware
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	if err := c.Redis.Ping(context.Background()).Err(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AWS S3 Configuration
	awsBucket := os.Getenv("AWS_BUCKET")
	if awsBucket != "" {
		cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.S3Client = s3.NewFromConfig(cfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, awsBucket, "uploads")
	} else {
		logx.Warn("AWS_BUCKET is not set; resume and snapshot imports are disabled")
	}

	// 4. Auth Config
	c.AuthConfig = auth.DefaultConfig()
	c.AuthConfig.JWT.SecretKey = os.Getenv("JWT_SECRET")
	if c.AuthConfig.JWT.SecretKey == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		c.AuthConfig.JWT.SecretKey = "super-secret-key-please-change-me-in-production"
	}
}

func (c *Container) initServices() {
	// --- Repositories ---
	candidateRepo := candidateinfra.NewPostgresCandidateRepository(c.DB)
	recruiterRepo := authinfra.NewPostgresRecruiterRepository(c.DB)

	// --- OpenAI-backed adapters, all optional ---
	var (
		profileParser *profileparser.ProfileParser
		embedder      *embeddings.EmbeddingsGenerator
		queryParser   *queryparser.QueryParser
	)
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		profileParser = profileparser.NewProfileParser(apiKey)
		embedder = embeddings.NewEmbeddingsGenerator(apiKey)
		queryParser = queryparser.NewQueryParser(apiKey)
	} else {
		logx.Warn("OPENAI_API_KEY is not set; resume parsing is disabled and search runs on deterministic fallbacks")
	}

	// Profile indexing needs the embedder behind it; without one the
	// queue stays unwired and writes skip enqueueing.
	var (
		indexQueue candidate.IndexQueue
		embedGen   candidate.EmbeddingGenerator
	)
	if embedder != nil {
		indexQueue = candidateinfra.NewRedisIndexQueue(c.Redis, indexQueueName)
		embedGen = embedder
	}

	// Token Service
	c.TokenService = auth.NewJWTService(
		c.AuthConfig.JWT.SecretKey,
		c.AuthConfig.JWT.AccessTokenTTL,
		c.AuthConfig.JWT.Issuer,
	)

	// --- Domain Services ---
	passwordSvc := authinfra.NewBcryptPasswordService()
	c.AuthHandlers = auth.NewAuthHandlers(c.TokenService, recruiterRepo, passwordSvc)

	c.CandidateService = candidatesrv.NewService(
		candidateRepo,
		profileParser,
		embedGen,
		c.FileSystem,
		indexQueue,
	)

	var requirementParser search.ModelRequirementParser
	if queryParser != nil {
		requirementParser = queryParser
	}
	extractor := search.NewExtractor(requirementParser, 0)

	var fitProvider fit.EmbeddingProvider
	if embedder != nil {
		fitProvider = embedder
	}
	engine := fit.NewEngine(fitProvider, 0)

	c.SearchService = searchsrv.NewService(candidateRepo, extractor, engine)

	if indexQueue != nil {
		c.IndexWorker = worker.NewIndexWorker(c.CandidateService, indexQueue, workerCount())
	}

	// --- Handlers ---
	c.CandidateHandlers = candidateapi.NewHandlers(c.CandidateService)
	c.SearchHandlers = searchapi.NewHandlers(c.SearchService)

	// --- Middleware ---
	c.AuthMiddleware = auth.NewAuthMiddleware(c.TokenService)
}

// workerCount reads WORKER_COUNT with a small default
func workerCount() int {
	raw := os.Getenv("WORKER_COUNT")
	if raw == "" {
		return 2
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		logx.Warnf("Invalid WORKER_COUNT %q, using 2", raw)
		return 2
	}
	return n
}
