package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Abraxas-365/careerlens/careers/career"
	"github.com/Abraxas-365/careerlens/careers/career/careerapi"
	"github.com/Abraxas-365/careerlens/careers/career/careerinfra"
	"github.com/Abraxas-365/careerlens/careers/career/careersrv"
	"github.com/Abraxas-365/careerlens/careers/career/worker"
	"github.com/Abraxas-365/careerlens/careers/course/courseapi"
	"github.com/Abraxas-365/careerlens/careers/course/courseinfra"
	"github.com/Abraxas-365/careerlens/careers/course/coursesrv"
	"github.com/Abraxas-365/careerlens/careers/interview/interviewapi"
	"github.com/Abraxas-365/careerlens/careers/interview/interviewinfra"
	"github.com/Abraxas-365/careerlens/careers/interview/interviewsrv"
	"github.com/Abraxas-365/careerlens/careers/job/jobapi"
	"github.com/Abraxas-365/careerlens/careers/job/jobinfra"
	"github.com/Abraxas-365/careerlens/careers/job/jobsrv"
	"github.com/Abraxas-365/careerlens/careers/profile/profileapi"
	"github.com/Abraxas-365/careerlens/careers/profile/profileinfra"
	"github.com/Abraxas-365/careerlens/careers/profile/profilesrv"
	"github.com/Abraxas-365/careerlens/careers/resume"
	"github.com/Abraxas-365/careerlens/careers/resume/resumeinfra"
	"github.com/Abraxas-365/careerlens/careers/review"
	"github.com/Abraxas-365/careerlens/careers/review/reviewapi"
	"github.com/Abraxas-365/careerlens/careers/review/reviewinfra"
	"github.com/Abraxas-365/careerlens/careers/review/reviewsrv"
	"github.com/Abraxas-365/careerlens/internal/ai/completion"
	"github.com/Abraxas-365/careerlens/internal/ai/embeddings"
	"github.com/Abraxas-365/careerlens/internal/ai/resumeparser"
	"github.com/Abraxas-365/careerlens/internal/apify"
	"github.com/Abraxas-365/careerlens/migrations"
	"github.com/Abraxas-365/careerlens/pkg/config"
	"github.com/Abraxas-365/careerlens/pkg/dbx"
	"github.com/Abraxas-365/careerlens/pkg/fsx"
	"github.com/Abraxas-365/careerlens/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/careerlens/pkg/iam/auth"
	"github.com/Abraxas-365/careerlens/pkg/logx"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Container holds all application dependencies
type Container struct {
	Config config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	Mongo      *mongo.Client
	FileSystem fsx.FileSystem

	// Services
	ProfileService   *profilesrv.Service
	CourseService    *coursesrv.Service
	CareerService    *careersrv.Service
	IngestService    *careersrv.IngestService
	InterviewService *interviewsrv.Service
	ReviewService    *reviewsrv.Service
	JobService       *jobsrv.Service

	// Workers
	IngestWorker *worker.IngestWorker

	// API Handlers
	ProfileHandlers   *profileapi.Handlers
	CourseHandlers    *courseapi.Handlers
	CareerHandlers    *careerapi.Handlers
	InterviewHandlers *interviewapi.Handlers
	ReviewHandlers    *reviewapi.Handlers
	JobHandlers       *jobapi.Handlers

	// Middleware
	AuthMiddleware *auth.TokenMiddleware
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg config.Config) *Container {
	c := &Container{Config: cfg}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// 1. Database Connection
	db, err := dbx.Connect(ctx, c.Config.DB.DSN(), dbx.DefaultPool)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	c.DB = db
	if c.Config.DB.Migrate {
		if err := dbx.Migrate(ctx, db, migrations.FS); err != nil {
			logx.Fatalf("Failed to migrate database: %v", err)
		}
	}

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Pass,
		DB:       c.Config.Redis.DB,
	})
	if _, err := c.Redis.Ping(ctx).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. MongoDB, only for the Atlas vector backend
	if c.Config.Vector.Backend == "atlas" {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.Config.Vector.MongoURI))
		if err != nil {
			logx.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		c.Mongo = client
	}

	// 4. AWS S3 résumé archive
	if bucket := c.Config.Storage.ArchiveBucket; bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.Config.Storage.AWSRegion))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), bucket, "resumes")
	} else {
		logx.Warn("RESUME_ARCHIVE_BUCKET is not set, uploaded résumés will not be archived")
	}
}

func (c *Container) initServices() {
	cfg := c.Config

	// --- Repositories ---
	userRepo := profileinfra.NewPostgresUserRepository(c.DB)
	resultRepo := careerinfra.NewPostgresResultRepository(c.DB)
	sessionRepo := interviewinfra.NewPostgresSessionRepository(c.DB)
	courseRepo := courseinfra.NewPostgresCacheRepository(c.DB)

	// --- Model providers ---
	generator := embeddings.NewEmbeddingsGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.EmbeddingModel)
	embedder := embeddings.NewCachedEmbedder(generator, c.Redis, cfg.OpenAI.EmbeddingModel, cfg.OpenAI.EmbedCacheTTL)
	completer := completion.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.CompletionModel)

	// --- External providers ---
	if cfg.Courses.ApifyToken == "" {
		logx.Warn("APIFY_TOKEN is not set, course lookups will come back empty")
	}
	apifyClient := apify.NewClient(cfg.Courses.ApifyToken, cfg.Courses.ApifyURL)
	if cfg.JobBoard.RapidAPIKey == "" {
		logx.Warn("RAPIDAPI_KEY is not set, job search will fail")
	}

	verifier := c.newVerifier()
	parser := c.newResumeParser()
	index := c.newVectorIndex()
	queue := careerinfra.NewRedisQueue(c.Redis, cfg.Ingest.QueueName)

	// --- Domain Services ---
	c.ProfileService = profilesrv.NewService(userRepo, verifier, parser, c.FileSystem)
	c.CourseService = coursesrv.NewService(courseRepo, courseinfra.NewUdemyScraper(apifyClient, cfg.Courses.ApifyActor))
	c.CareerService = careersrv.NewService(
		userRepo,
		embedder,
		index,
		completer,
		c.CourseService,
		resultRepo,
		careersrv.Config{
			CandidateLimit: cfg.Career.CandidateLimit,
			Temperature:    cfg.Career.Temperature,
			MaxTokens:      cfg.Career.MaxCompletionToken,
		},
	)
	c.IngestService = careersrv.NewIngestService(generator, index, queue, cfg.Ingest.ChunkSize)
	c.InterviewService = interviewsrv.NewService(completer, sessionRepo, cfg.Career.InterviewTemp)
	c.ReviewService = reviewsrv.NewService(
		parser,
		completer,
		c.newJobDescriptionFetcher(apifyClient),
		cfg.Career.ReviewTemperature,
		cfg.Career.MaxCompletionToken,
	)
	c.JobService = jobsrv.NewService(jobinfra.NewJSearchClient(
		cfg.JobBoard.RapidAPIKey,
		cfg.JobBoard.RapidAPIHost,
		cfg.JobBoard.BaseURL,
	))

	// --- Workers ---
	c.IngestWorker = worker.NewIngestWorker(c.IngestService, queue, cfg.Ingest.Workers)

	// --- Handlers ---
	c.ProfileHandlers = profileapi.NewHandlers(c.ProfileService)
	c.CourseHandlers = courseapi.NewHandlers(c.CourseService)
	c.CareerHandlers = careerapi.NewHandlers(c.CareerService, c.IngestService)
	c.InterviewHandlers = interviewapi.NewHandlers(c.InterviewService)
	c.ReviewHandlers = reviewapi.NewHandlers(c.ReviewService)
	c.JobHandlers = jobapi.NewHandlers(c.JobService)

	// --- Middleware ---
	c.AuthMiddleware = auth.NewTokenMiddleware(verifier)
}

func (c *Container) newVerifier() auth.Verifier {
	if c.Config.Auth.Mode == "hmac" {
		logx.Warn("AUTH_MODE=hmac, accepting locally signed tokens (development only)")
		return auth.NewHMACVerifier(c.Config.Auth.HMACSecret, "")
	}
	return auth.NewFirebaseVerifier(c.Config.Auth.FirebaseProjectID)
}

func (c *Container) newResumeParser() resume.Parser {
	if c.Config.Parser.Provider == "vision" {
		model := resumeparser.NewResumeParser(c.Config.OpenAI.APIKey, c.Config.OpenAI.VisionModel)
		return resumeinfra.NewVisionParser(model, 0)
	}
	return resumeinfra.NewAffindaParser(
		c.Config.Parser.AffindaAPIKey,
		c.Config.Parser.AffindaURL,
		&http.Client{Timeout: 60 * time.Second},
	)
}

func (c *Container) newVectorIndex() career.VectorIndex {
	if c.Config.Vector.Backend == "atlas" {
		coll := c.Mongo.Database(c.Config.Vector.MongoDatabase).Collection(c.Config.Vector.MongoCollection)
		return careerinfra.NewAtlasVectorIndex(coll, c.Config.Vector.MongoIndex, c.Config.Vector.NumCandidates)
	}
	return careerinfra.NewPgVectorIndex(c.DB, embeddings.Dimension)
}

func (c *Container) newJobDescriptionFetcher(client *apify.Client) review.JobDescriptionFetcher {
	page := reviewinfra.NewPageFetcher(20 * time.Second)
	if c.Config.Courses.ApifyToken == "" {
		return page
	}
	return reviewinfra.NewRouter(reviewinfra.NewIndeedFetcher(client, c.Config.Courses.JobActor), page)
}

// Close releases connections in reverse order of creation
func (c *Container) Close(ctx context.Context) {
	if c.Mongo != nil {
		if err := c.Mongo.Disconnect(ctx); err != nil {
			logx.Warnf("MongoDB disconnect: %v", err)
		}
	}
	if err := c.Redis.Close(); err != nil {
		logx.Warnf("Redis close: %v", err)
	}
	if err := c.DB.Close(); err != nil {
		logx.Warnf("Database close: %v", err)
	}
}
