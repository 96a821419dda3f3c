package config

import (
	"time"

	"main/utils"
)

type DatabaseConfig struct {
	URI                   string
	MaxPoolSize           uint64
	MinPoolSize           uint64
	MaxConnIdleTime       time.Duration
	DatabaseName          string
	UsersCollection       string
	NotesCollection       string
	CredentialsCollection string
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:                   utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MaxPoolSize:           utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:           utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime:       time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
		DatabaseName:          utils.GetEnvAsString("MONGO_DB", "smartlist"),
		UsersCollection:       utils.GetEnvAsString("USERS_COLLECTION", "users"),
		NotesCollection:       utils.GetEnvAsString("NOTES_COLLECTION", "notes"),
		CredentialsCollection: utils.GetEnvAsString("CREDENTIALS_COLLECTION", "credentials"),
	}
}

type AuthConfig struct {
	SecretKey       string
	Issuer          string
	BaseURL         string
	TokenExpiration time.Duration
	ResetExpiration time.Duration
}

func LoadAuthConfig() AuthConfig {
	return AuthConfig{
		SecretKey:       utils.GetEnvAsString("JWT_SECRET_KEY", ""),
		Issuer:          utils.GetEnvAsString("JWT_ISSUER", "smartlist"),
		BaseURL:         utils.GetEnvAsString("BASE_URL", "http://localhost:8080"),
		TokenExpiration: utils.GetEnvAsDuration("JWT_EXPIRATION_TIME", time.Hour),
		ResetExpiration: utils.GetEnvAsDuration("PASSWORD_RESET_EXPIRATION_TIME", 30*time.Minute),
	}
}

type RedisConfig struct {
	URL        string
	SessionTTL time.Duration
}

func LoadRedisConfig() RedisConfig {
	return RedisConfig{
		URL:        utils.GetEnvAsString("REDIS_URL", "redis://localhost:6379"),
		SessionTTL: utils.GetEnvAsDuration("SESSION_DURATION", 7*24*time.Hour),
	}
}

type ServerConfig struct {
	Port      string
	AudioRoot string
}

func LoadServerConfig() ServerConfig {
	return ServerConfig{
		Port:      utils.GetEnvAsString("PORT", "8080"),
		AudioRoot: utils.GetEnvAsString("AUDIO_ROOT", "wwwroot/audio"),
	}
}
