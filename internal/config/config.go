// Package config provides configuration structures and validation for the application.
// It handles environment-based configuration for all major components including
// server settings, the remote collection store, messaging, blob storage and the password gate.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Store backends
const (
	StoreBackendMongo    = "mongo"
	StoreBackendPostgres = "postgres"
)

// Config holds the complete application configuration with settings for all components.
// Each field represents a major subsystem's configuration and is validated during application startup.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Store       StoreConfig
	Kafka       KafkaConfig
	Postgres    PostgresConfig
	MongoDB     MongoDBConfig
	Blob        BlobConfig
	Auth        AuthConfig
	WorkerPool  WorkerPoolConfig
	Breaker     BreakerConfig
	Dashboard   DashboardConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
	MaxUploadBytes  int64         // Largest accepted list image
}

// StoreConfig selects and tunes the remote collection store
type StoreConfig struct {
	Backend     string        // mongo or postgres
	Collection  string        // Mongo collection holding one document per named collection
	SaveTimeout time.Duration // Deadline for a single remote save
	LoadTimeout time.Duration // Deadline for loading all collections at startup
}

// KafkaConfig contains Kafka configuration
type KafkaConfig struct {
	Enabled           bool
	Brokers           string
	ActivityTopic     string
	NumPartitions     int // Number of partitions for topics
	ReplicationFactor int // Replication factor for topics
	ConsumerGroup     string
	MinBytes          int
	MaxBytes          int
	MaxWait           time.Duration
	StartOffset       int64
	DLQTopic          string // Topic for Dead Letter Queue
}

// BrokerList splits the comma separated broker addresses
func (k KafkaConfig) BrokerList() []string {
	var out []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// PostgresConfig contains PostgreSQL configuration
type PostgresConfig struct {
	URL             string        // Database connection string
	MaxConns        int32         // Maximum number of open connections
	MinConns        int32         // Maximum number of idle connections
	ConnMaxLifetime time.Duration // Maximum lifetime of a connection
	ConnMaxIdleTime time.Duration // Maximum idle time of a connection
	MigrationsPath  string        // Path to migration files
}

// MongoDBConfig contains MongoDB configuration
type MongoDBConfig struct {
	URI               string
	Database          string
	Timeout           time.Duration
	MaxPoolSize       uint64
	MinPoolSize       uint64
	MaxConnIdleTime   time.Duration
	ArchiveCollection string
}

// BlobConfig contains the S3 compatible image store configuration
type BlobConfig struct {
	Enabled       bool
	Endpoint      string // Empty means AWS; set for MinIO
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	UsePathStyle  bool
	PublicBaseURL string        // When set, uploads are addressed under it instead of presigned
	PresignExpiry time.Duration // Lifetime of presigned GET urls
}

// AuthConfig contains the password gate configuration
type AuthConfig struct {
	Enabled      bool
	Password     string // Plain password, hashed at startup when PasswordHash is empty
	PasswordHash string // bcrypt hash
	JWTSecret    string
	TokenTTL     time.Duration
	CookieName   string
}

// WorkerPoolConfig contains worker pool configuration
type WorkerPoolConfig struct {
	Size int // Maximum number of workers in the pool
}

// BreakerConfig tunes the circuit breaker in front of the remote store
type BreakerConfig struct {
	MaxRequests      uint32        // Requests allowed through while half-open
	Interval         time.Duration // Closed-state counter reset period
	Timeout          time.Duration // Time spent open before probing again
	FailureThreshold uint32        // Consecutive failures that trip the breaker
}

// DashboardConfig contains dashboard aggregation options
type DashboardConfig struct {
	FoldIQDSupplierPayments bool
}

// validate performs comprehensive validation of all configuration values,
// ensuring they meet minimum requirements and logical constraints
func (c *Config) validate() error {
	var validationErrors []string

	// Validate Server config
	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}
	if c.Server.MaxUploadBytes <= 0 {
		validationErrors = append(validationErrors, "SERVER_MAX_UPLOAD_BYTES must be greater than 0")
	}

	// Validate Store config
	switch c.Store.Backend {
	case StoreBackendMongo:
		if c.Store.Collection == "" {
			validationErrors = append(validationErrors, "STORE_COLLECTION is required")
		}
	case StoreBackendPostgres:
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("STORE_BACKEND must be %q or %q", StoreBackendMongo, StoreBackendPostgres))
	}
	if c.Store.SaveTimeout <= 0 {
		validationErrors = append(validationErrors, "STORE_SAVE_TIMEOUT must be greater than 0")
	}
	if c.Store.LoadTimeout <= 0 {
		validationErrors = append(validationErrors, "STORE_LOAD_TIMEOUT must be greater than 0")
	}

	// Validate Kafka config
	if c.Kafka.Enabled {
		if len(c.Kafka.BrokerList()) == 0 {
			validationErrors = append(validationErrors, "KAFKA_BROKERS is required")
		}
		if c.Kafka.ActivityTopic == "" {
			validationErrors = append(validationErrors, "KAFKA_ACTIVITY_TOPIC is required")
		}
		if c.Kafka.ConsumerGroup == "" {
			validationErrors = append(validationErrors, "KAFKA_CONSUMER_GROUP is required")
		}
		if c.Kafka.MinBytes <= 0 {
			validationErrors = append(validationErrors, "KAFKA_CONSUMER_MIN_BYTES must be greater than 0")
		}
		if c.Kafka.MaxBytes <= 0 {
			validationErrors = append(validationErrors, "KAFKA_CONSUMER_MAX_BYTES must be greater than 0")
		}
		if c.Kafka.MaxWait <= 0 {
			validationErrors = append(validationErrors, "KAFKA_CONSUMER_MAX_WAIT must be greater than 0")
		}
		if c.Kafka.DLQTopic == "" {
			validationErrors = append(validationErrors, "KAFKA_DLQ_TOPIC is required")
		}
	}

	// Validate PostgreSQL config, only needed when it backs the store
	if c.Store.Backend == StoreBackendPostgres {
		if c.Postgres.URL == "" {
			validationErrors = append(validationErrors, "POSTGRES_URL is required")
		}
		if c.Postgres.MaxConns <= 0 {
			validationErrors = append(validationErrors, "POSTGRES_MAX_CONNS must be greater than 0")
		}
		if c.Postgres.MinConns <= 0 {
			validationErrors = append(validationErrors, "POSTGRES_MIN_CONNS must be greater than 0")
		}
		if c.Postgres.ConnMaxLifetime <= 0 {
			validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_LIFETIME must be greater than 0")
		}
		if c.Postgres.ConnMaxIdleTime <= 0 {
			validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_IDLE_TIME must be greater than 0")
		}
	}

	// Validate MongoDB config
	if c.MongoDB.URI == "" {
		validationErrors = append(validationErrors, "MONGO_URI is required")
	}
	if c.MongoDB.Database == "" {
		validationErrors = append(validationErrors, "MONGO_DATABASE is required")
	}
	if c.MongoDB.Timeout <= 0 {
		validationErrors = append(validationErrors, "MONGO_TIMEOUT must be greater than 0")
	}
	if c.MongoDB.MaxPoolSize <= 0 {
		validationErrors = append(validationErrors, "MONGO_MAX_POOL_SIZE must be greater than 0")
	}
	if c.MongoDB.MinPoolSize <= 0 {
		validationErrors = append(validationErrors, "MONGO_MIN_POOL_SIZE must be greater than 0")
	}
	if c.MongoDB.MaxConnIdleTime <= 0 {
		validationErrors = append(validationErrors, "MONGO_MAX_CONN_IDLE_TIME must be greater than 0")
	}
	if c.MongoDB.ArchiveCollection == "" {
		validationErrors = append(validationErrors, "MONGO_ARCHIVE_COLLECTION is required")
	}

	// Validate Blob config
	if c.Blob.Enabled {
		if c.Blob.Bucket == "" {
			validationErrors = append(validationErrors, "BLOB_BUCKET is required")
		}
		if c.Blob.Region == "" {
			validationErrors = append(validationErrors, "BLOB_REGION is required")
		}
		if c.Blob.PublicBaseURL == "" && c.Blob.PresignExpiry <= 0 {
			validationErrors = append(validationErrors, "BLOB_PRESIGN_EXPIRY must be greater than 0 without BLOB_PUBLIC_BASE_URL")
		}
	}

	// Validate Auth config
	if c.Auth.Enabled {
		if c.Auth.Password == "" && c.Auth.PasswordHash == "" {
			validationErrors = append(validationErrors, "AUTH_PASSWORD or AUTH_PASSWORD_HASH is required")
		}
		if c.Auth.JWTSecret == "" {
			validationErrors = append(validationErrors, "AUTH_JWT_SECRET is required")
		}
		if c.Auth.TokenTTL <= 0 {
			validationErrors = append(validationErrors, "AUTH_TOKEN_TTL must be greater than 0")
		}
		if c.Auth.CookieName == "" {
			validationErrors = append(validationErrors, "AUTH_COOKIE_NAME is required")
		}
	}

	// Validate WorkerPool config
	if c.WorkerPool.Size <= 0 {
		validationErrors = append(validationErrors, "WORKER_POOL_SIZE must be greater than 0")
	}

	// Validate Breaker config
	if c.Breaker.MaxRequests == 0 {
		validationErrors = append(validationErrors, "BREAKER_MAX_REQUESTS must be greater than 0")
	}
	if c.Breaker.Timeout <= 0 {
		validationErrors = append(validationErrors, "BREAKER_TIMEOUT must be greater than 0")
	}
	if c.Breaker.FailureThreshold == 0 {
		validationErrors = append(validationErrors, "BREAKER_FAILURE_THRESHOLD must be greater than 0")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}
