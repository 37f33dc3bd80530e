package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// dotenvFiles are loaded into the process environment when present.
// godotenv never overrides variables that are already set.
var dotenvFiles = []string{".env"}

// parseEnv overlays values from environment variables.
//
//	HTTP_ADDR / PORT          listen address (PORT=4000 means ":4000")
//	DATABASE_DSN              PostgreSQL DSN
//	JWT_SECRET                token signing secret
//	ACCESS_TOKEN_TTL          token lifetime, Go duration ("24h")
//	GOOGLE_CLIENT_ID          Google OAuth client id
//	ADMIN_EMAIL, ADMIN_PASSWORD_HASH
//	RESUME_STORAGE            s3 | local
//	UPLOADS_DIR, PUBLIC_BASE_URL
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT, S3_PUBLIC_URL
//	LOG_FORMAT                json | text | console
//	CORS_ALLOWED_ORIGINS      comma separated
//
// A malformed .env file or ACCESS_TOKEN_TTL panics, like a malformed config file.
func parseEnv(config *Config) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		config.EndpointAddrHTTP = ":" + v
	}
	envString(&config.EndpointAddrHTTP, "HTTP_ADDR")
	envString(&config.DatabaseDSN, "DATABASE_DSN")
	envString(&config.SecretKey, "JWT_SECRET")
	if v, ok := os.LookupEnv("ACCESS_TOKEN_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.AccessTokenValidityDuration = d
	}
	envString(&config.GoogleClientID, "GOOGLE_CLIENT_ID")
	envString(&config.AdminEmail, "ADMIN_EMAIL")
	envString(&config.AdminPasswordHash, "ADMIN_PASSWORD_HASH")
	envString(&config.ResumeStorage, "RESUME_STORAGE")
	envString(&config.UploadsDir, "UPLOADS_DIR")
	envString(&config.PublicBaseURL, "PUBLIC_BASE_URL")
	envString(&config.S3RootUser, "S3_ROOT_USER")
	envString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	envString(&config.S3Bucket, "S3_BUCKET")
	envString(&config.S3Region, "S3_REGION")
	envString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	envString(&config.S3PublicURL, "S3_PUBLIC_URL")
	envString(&config.LogFormat, "LOG_FORMAT")
	if v, ok := os.LookupEnv("CORS_ALLOWED_ORIGINS"); ok && v != "" {
		config.AllowedOrigins = splitList(v)
	}
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
