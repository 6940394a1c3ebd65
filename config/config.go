package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration holds the static settings required to run the application.
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`                // Server listen address
	JwtSecret             string `env:"JWT_SECRET,required"`                       // JWT signing secret
	JwtExpiryHours        int    `env:"JWT_EXPIRY_HOURS" envDefault:"720"`         // Token lifetime in hours (30 days)
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // Database connection URI
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`                   // Database name
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Allowed origins, comma separated (* = all)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Allow credentials on CORS requests
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Max requests per window (0 = disabled)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Window length in seconds
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Toggle rate limiting
	// Frontend URL, used by the websocket origin check and email links
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	// SMTP settings for verification mail. Empty host falls back to logging the OTP.
	MailHost     string `env:"MAIL_HOST"`
	MailPort     int    `env:"MAIL_PORT" envDefault:"587"`
	MailUser     string `env:"MAIL_USER"`
	MailPassword string `env:"MAIL_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"no-reply@novacrm.local"`
	// Default admin bootstrap. Only applied when both values are set and the user is missing.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	// TLS settings
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"`
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`
}

// getEnvPath resolves the env file path for the current GO_ENV by walking up
// from the working directory until a config/env directory is found.
func getEnvPath() string {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// fmt here because the logger is not initialized yet
		fmt.Printf("cannot resolve working directory: %v\n", err)
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig loads the env file for the current environment and parses it into
// a Configuration. Returns nil when the file is missing or invalid.
func NewConfig() *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		fmt.Printf("config/env directory not found\n")
		return nil
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Printf("cannot load env file %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("cannot parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
