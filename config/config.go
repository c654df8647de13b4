package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is everything the shell needs from the environment.
type Config struct {
	Addr        string
	UploadDir   string
	ExportDir   string
	LogLevel    string
	LogFormat   string
	MaxUploadMB int
}

// Load reads .env when present, then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:        GetString("CDR_ADDR", ":8080"),
		UploadDir:   GetString("CDR_UPLOAD_DIR", "uploads"),
		ExportDir:   GetString("CDR_EXPORT_DIR", "filtered"),
		LogLevel:    GetString("LOG_LEVEL", "info"),
		LogFormat:   GetString("LOG_FORMAT", "json"),
		MaxUploadMB: GetInt("CDR_MAX_UPLOAD_MB", 32),
	}
}

// MaxUploadBytes is the multipart body limit for uploads.
func (c Config) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 32 << 20
	}
	return int64(c.MaxUploadMB) << 20
}

func GetString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func GetInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
