package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// Active is the process-wide configuration, set once at startup.
var Active = Default()

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	// ExclusiveDefaultCategory keeps at most one default category: marking a
	// category as default unsets every other one.
	ExclusiveDefaultCategory bool

	AvatarDir        string
	AvatarMaxBytes   int64
	ResetTokenMinute int

	SMTPHost string
	SMTPPort string
	SMTPFrom string
	SMTPUser string
	SMTPPass string

	AppURL string
}

func Default() Config {
	return Config{
		Port:                     "3000",
		AvatarDir:                "storage/avatars",
		AvatarMaxBytes:           5 << 20,
		ResetTokenMinute:         60,
		ExclusiveDefaultCategory: true,
		AppURL:                   "http://localhost:5173",
	}
}

// FromEnv builds a Config from the environment on top of the defaults.
func FromEnv() Config {
	cfg := Default()
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.SMTPPort = os.Getenv("SMTP_PORT")
	cfg.SMTPFrom = os.Getenv("SMTP_FROM")
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPass = os.Getenv("SMTP_PASS")

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if dir := os.Getenv("AVATAR_DIR"); dir != "" {
		cfg.AvatarDir = dir
	}
	if url := os.Getenv("APP_URL"); url != "" {
		cfg.AppURL = url
	}
	if v := os.Getenv("EXCLUSIVE_DEFAULT_CATEGORY"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.ExclusiveDefaultCategory = parsed
		}
	}
	if v := os.Getenv("RESET_TOKEN_MINUTES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cfg.ResetTokenMinute = parsed
		}
	}
	return cfg
}
