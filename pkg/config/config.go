package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Abraxas-365/careerlens/pkg/errx"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	LogLevel     string
	AllowOrigins string

	DB       DBConfig
	Redis    RedisConfig
	Storage  StorageConfig
	OpenAI   OpenAIConfig
	Vector   VectorConfig
	Auth     AuthConfig
	Parser   ParserConfig
	Courses  CoursesConfig
	JobBoard JobBoardConfig
	Career   CareerConfig
	Ingest   IngestConfig
}

type DBConfig struct {
	Host    string
	Port    string
	User    string
	Pass    string
	Name    string
	SSLMode string
	// Migrate applies the embedded schema at startup
	Migrate bool
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Pass, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr string
	Pass string
	DB   int
}

type StorageConfig struct {
	AWSRegion     string
	ArchiveBucket string // empty disables résumé archiving
}

type OpenAIConfig struct {
	APIKey          string
	EmbeddingModel  string
	CompletionModel string
	VisionModel     string
	EmbedCacheTTL   time.Duration
}

type VectorConfig struct {
	Backend         string // pgvector | atlas
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	MongoIndex      string
	NumCandidates   int
}

type AuthConfig struct {
	Mode              string // firebase | hmac
	FirebaseProjectID string
	HMACSecret        string
}

type ParserConfig struct {
	Provider      string // affinda | vision
	AffindaAPIKey string
	AffindaURL    string
}

type CoursesConfig struct {
	ApifyToken string
	ApifyActor string
	ApifyURL   string
	// JobActor scrapes job descriptions from Indeed links for résumé review
	JobActor string
}

type JobBoardConfig struct {
	RapidAPIKey  string
	RapidAPIHost string
	BaseURL      string
}

type CareerConfig struct {
	CandidateLimit     int
	Temperature        float64
	InterviewTemp      float64
	ReviewTemperature  float64
	MaxCompletionToken int
}

type IngestConfig struct {
	Workers   int
	QueueName string
	ChunkSize int
}

// Load reads the environment, loading a .env file first when one exists
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		AllowOrigins: getEnv("ALLOW_ORIGINS", "*"),
		DB: DBConfig{
			Host:    getEnv("DB_HOST", "localhost"),
			Port:    getEnv("DB_PORT", "5432"),
			User:    getEnv("DB_USER", "postgres"),
			Pass:    os.Getenv("DB_PASS"),
			Name:    getEnv("DB_NAME", "careerlens"),
			SSLMode: getEnv("DB_SSLMODE", "disable"),
			Migrate: getEnv("DB_MIGRATE", "true") == "true",
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
			Pass: os.Getenv("REDIS_PASS"),
			DB:   getEnvInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
			ArchiveBucket: os.Getenv("RESUME_ARCHIVE_BUCKET"),
		},
		OpenAI: OpenAIConfig{
			APIKey:          os.Getenv("OPENAI_API_KEY"),
			EmbeddingModel:  getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			CompletionModel: getEnv("COMPLETION_MODEL", "gpt-4o"),
			VisionModel:     getEnv("VISION_MODEL", "gpt-4o"),
			EmbedCacheTTL:   getEnvDuration("EMBEDDING_CACHE_TTL", 24*time.Hour),
		},
		Vector: VectorConfig{
			Backend:         strings.ToLower(getEnv("VECTOR_BACKEND", "pgvector")),
			MongoURI:        os.Getenv("MONGODB_URI"),
			MongoDatabase:   getEnv("MONGODB_DATABASE", "careerlens"),
			MongoCollection: getEnv("MONGODB_COLLECTION", "career_records"),
			MongoIndex:      getEnv("MONGODB_VECTOR_INDEX", "vector_index_1"),
			NumCandidates:   getEnvInt("VECTOR_NUM_CANDIDATES", 100),
		},
		Auth: AuthConfig{
			Mode:              strings.ToLower(getEnv("AUTH_MODE", "firebase")),
			FirebaseProjectID: os.Getenv("FIREBASE_PROJECT_ID"),
			HMACSecret:        os.Getenv("AUTH_HMAC_SECRET"),
		},
		Parser: ParserConfig{
			Provider:      strings.ToLower(getEnv("RESUME_PARSER", "affinda")),
			AffindaAPIKey: os.Getenv("AFFINDA_API_KEY"),
			AffindaURL:    getEnv("AFFINDA_URL", "https://api.affinda.com/v2/resumes"),
		},
		Courses: CoursesConfig{
			ApifyToken: os.Getenv("APIFY_TOKEN"),
			ApifyActor: getEnv("APIFY_COURSE_ACTOR", "natanielsantos~udemy-courses-scraper"),
			ApifyURL:   getEnv("APIFY_URL", "https://api.apify.com/v2"),
			JobActor:   getEnv("APIFY_JOB_ACTOR", "misceres~indeed-scraper"),
		},
		JobBoard: JobBoardConfig{
			RapidAPIKey:  os.Getenv("RAPIDAPI_KEY"),
			RapidAPIHost: getEnv("RAPIDAPI_HOST", "jsearch.p.rapidapi.com"),
			BaseURL:      getEnv("JSEARCH_URL", "https://jsearch.p.rapidapi.com"),
		},
		Career: CareerConfig{
			CandidateLimit:     getEnvInt("CAREER_CANDIDATE_LIMIT", 3),
			Temperature:        getEnvFloat("CAREER_TEMPERATURE", 0.7),
			InterviewTemp:      getEnvFloat("INTERVIEW_TEMPERATURE", 0.7),
			ReviewTemperature:  getEnvFloat("REVIEW_TEMPERATURE", 0.4),
			MaxCompletionToken: getEnvInt("MAX_COMPLETION_TOKENS", 4000),
		},
		Ingest: IngestConfig{
			Workers:   getEnvInt("INGEST_WORKERS", 2),
			QueueName: getEnv("INGEST_QUEUE", "career_ingest"),
			ChunkSize: getEnvInt("INGEST_CHUNK_SIZE", 50),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail on first use
func (c Config) Validate() error {
	var problems []string

	if c.Career.CandidateLimit < 1 || c.Career.CandidateLimit > 10 {
		problems = append(problems, "CAREER_CANDIDATE_LIMIT must be between 1 and 10")
	}
	switch c.Vector.Backend {
	case "pgvector":
	case "atlas":
		if c.Vector.MongoURI == "" {
			problems = append(problems, "MONGODB_URI is required when VECTOR_BACKEND=atlas")
		}
	default:
		problems = append(problems, "VECTOR_BACKEND must be pgvector or atlas")
	}
	switch c.Auth.Mode {
	case "firebase":
		if c.Auth.FirebaseProjectID == "" {
			problems = append(problems, "FIREBASE_PROJECT_ID is required when AUTH_MODE=firebase")
		}
	case "hmac":
		if c.Auth.HMACSecret == "" {
			problems = append(problems, "AUTH_HMAC_SECRET is required when AUTH_MODE=hmac")
		}
	default:
		problems = append(problems, "AUTH_MODE must be firebase or hmac")
	}
	switch c.Parser.Provider {
	case "affinda", "vision":
	default:
		problems = append(problems, "RESUME_PARSER must be affinda or vision")
	}
	if c.Ingest.Workers < 0 {
		problems = append(problems, "INGEST_WORKERS must not be negative")
	}
	if c.Ingest.ChunkSize < 1 {
		problems = append(problems, "INGEST_CHUNK_SIZE must be positive")
	}

	if len(problems) > 0 {
		return errx.New("invalid configuration", errx.TypeValidation).
			WithDetail("problems", problems)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
