package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the service configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	ServiceBus ServiceBusConfig
	NewRelic   NewRelicConfig
	Auth       AuthConfig
	Storage    StorageConfig
	Vision     VisionConfig
	Search     SearchConfig
	Worker     WorkerConfig
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Port int
	Mode string // debug, release, test
}

// DatabaseConfig holds the database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds the Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ServiceBusConfig holds the Azure Service Bus configuration
type ServiceBusConfig struct {
	ConnectionString string
	QueueName        string
}

// NewRelicConfig holds the New Relic configuration
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// AuthConfig holds the bearer-token configuration
type AuthConfig struct {
	JWTSecret string
	Issuer    string
}

// StorageConfig holds the photo object-store configuration
type StorageConfig struct {
	Bucket string
	Region string
}

// VisionConfig holds the image label-detection configuration
type VisionConfig struct {
	Enabled       bool
	Region        string
	MinConfidence float32
	MaxLabels     int32
}

// SearchConfig holds the Elasticsearch configuration
type SearchConfig struct {
	Enabled  bool
	URLs     []string
	Username string
	Password string
	Index    string
}

// WorkerConfig holds background worker configuration
type WorkerConfig struct {
	AnalysisRetryMinutes int
}

// InitConfig initializes the configuration using Viper
func InitConfig(cfgFile string) error {
	// Set defaults for configuration
	setDefaults()

	// Use config file from the flag if provided
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in common directories with name "config"
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/fleet-service")
		viper.SetConfigName("config")
	}

	// Set environment variable prefix for config overrides
	viper.SetEnvPrefix("FLEET")

	// Enable automatic environment variable binding
	// For example, FLEET_SERVER_PORT will override server.port
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, using defaults and environment variables
			fmt.Println("No config file found, using defaults and environment variables")
		} else {
			// Config file was found but another error occurred
			return fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	return nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8093)
	viper.SetDefault("server.mode", "debug")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "fleet")
	viper.SetDefault("database.password", "fleet")
	viper.SetDefault("database.dbname", "fleet_service_db")
	viper.SetDefault("database.sslmode", "disable")

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Service Bus defaults - no default connection string for security
	viper.SetDefault("servicebus.queuename", "fleet-events")

	// New Relic defaults
	viper.SetDefault("newrelic.appname", "Fleet Service Local")
	viper.SetDefault("newrelic.enabled", false)

	// Auth defaults - no default secret for security
	viper.SetDefault("auth.issuer", "fleet-service")

	// Storage defaults
	viper.SetDefault("storage.bucket", "")
	viper.SetDefault("storage.region", "us-east-1")

	// Vision defaults follow the label-detector contract: labels below 80
	// confidence are never returned, and at most 20 labels per image.
	viper.SetDefault("vision.enabled", false)
	viper.SetDefault("vision.region", "us-east-1")
	viper.SetDefault("vision.minconfidence", 80)
	viper.SetDefault("vision.maxlabels", 20)

	// Search defaults
	viper.SetDefault("search.enabled", false)
	viper.SetDefault("search.urls", []string{"http://localhost:9200"})
	viper.SetDefault("search.index", "fleet-inspections")

	// Worker defaults
	viper.SetDefault("worker.analysisretryminutes", 10)
}

// Load loads the configuration
func Load() (*Config, error) {
	// Server
	serverConfig := ServerConfig{
		Port: viper.GetInt("server.port"),
		Mode: viper.GetString("server.mode"),
	}

	// Database
	dbConfig := DatabaseConfig{
		Host:     viper.GetString("database.host"),
		Port:     viper.GetInt("database.port"),
		User:     viper.GetString("database.user"),
		Password: viper.GetString("database.password"),
		DBName:   viper.GetString("database.dbname"),
		SSLMode:  viper.GetString("database.sslmode"),
	}

	// Redis
	redisConfig := RedisConfig{
		Host:     viper.GetString("redis.host"),
		Port:     viper.GetInt("redis.port"),
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	}

	// Service Bus
	serviceBusConfig := ServiceBusConfig{
		ConnectionString: viper.GetString("servicebus.connectionstring"),
		QueueName:        viper.GetString("servicebus.queuename"),
	}

	// New Relic
	newRelicConfig := NewRelicConfig{
		AppName:    viper.GetString("newrelic.appname"),
		LicenseKey: viper.GetString("newrelic.licensekey"),
		Enabled:    viper.GetBool("newrelic.enabled"),
	}

	// Auth
	authConfig := AuthConfig{
		JWTSecret: viper.GetString("auth.jwtsecret"),
		Issuer:    viper.GetString("auth.issuer"),
	}

	// Storage
	storageConfig := StorageConfig{
		Bucket: viper.GetString("storage.bucket"),
		Region: viper.GetString("storage.region"),
	}

	// Vision
	visionConfig := VisionConfig{
		Enabled:       viper.GetBool("vision.enabled"),
		Region:        viper.GetString("vision.region"),
		MinConfidence: float32(viper.GetFloat64("vision.minconfidence")),
		MaxLabels:     viper.GetInt32("vision.maxlabels"),
	}

	// Search
	searchConfig := SearchConfig{
		Enabled:  viper.GetBool("search.enabled"),
		URLs:     viper.GetStringSlice("search.urls"),
		Username: viper.GetString("search.username"),
		Password: viper.GetString("search.password"),
		Index:    viper.GetString("search.index"),
	}

	// Worker
	workerConfig := WorkerConfig{
		AnalysisRetryMinutes: viper.GetInt("worker.analysisretryminutes"),
	}

	return &Config{
		Server:     serverConfig,
		Database:   dbConfig,
		Redis:      redisConfig,
		ServiceBus: serviceBusConfig,
		NewRelic:   newRelicConfig,
		Auth:       authConfig,
		Storage:    storageConfig,
		Vision:     visionConfig,
		Search:     searchConfig,
		Worker:     workerConfig,
	}, nil
}
