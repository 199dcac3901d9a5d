package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Fabric    FabricConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FabricConfig describes how to reach the ledger network. The
// connection profile and wallet are read once at startup and are
// read-only afterwards.
type FabricConfig struct {
	CCPPath          string // connection profile (network topology)
	WalletPath       string // filesystem wallet with enrolled identities
	Channel          string
	Chaincode        string
	Identity         string // default identity for unauthenticated reads
	MSPID            string // used by the enroll utility
	DiscoveryTimeout time.Duration
}

type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("FABRIC_WALLET_PATH", "wallet")
	viper.SetDefault("FABRIC_CHANNEL", "mychannel")
	viper.SetDefault("FABRIC_CHAINCODE", "farm")
	viper.SetDefault("FABRIC_IDENTITY", "appUser")
	viper.SetDefault("FABRIC_MSP_ID", "Org1MSP")
	viper.SetDefault("FABRIC_DISCOVERY_TIMEOUT", 10)
	viper.SetDefault("JWT_ACCESS_TOKEN_TTL", 60)
	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("RATE_LIMIT_BURST", 40)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Fabric: FabricConfig{
			CCPPath:          getEnvOrPanic("FABRIC_CCP_PATH"),
			WalletPath:       viper.GetString("FABRIC_WALLET_PATH"),
			Channel:          viper.GetString("FABRIC_CHANNEL"),
			Chaincode:        viper.GetString("FABRIC_CHAINCODE"),
			Identity:         viper.GetString("FABRIC_IDENTITY"),
			MSPID:            viper.GetString("FABRIC_MSP_ID"),
			DiscoveryTimeout: time.Duration(viper.GetInt("FABRIC_DISCOVERY_TIMEOUT")) * time.Second,
		},
		JWT: JWTConfig{
			Secret:         os.Getenv("JWT_SECRET"),
			AccessTokenTTL: time.Duration(viper.GetInt("JWT_ACCESS_TOKEN_TTL")) * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Enabled: viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:     viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:   viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	// Basic validation
	if cfg.JWT.Secret == "" {
		log.Println("WARNING: JWT_SECRET is not set; set a secure value in production")
	}

	return cfg, nil
}

func getEnvOrPanic(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("environment variable %s is required", key)
	}
	return v
}
