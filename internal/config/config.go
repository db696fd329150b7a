package config

import (
	"os"
)

type Config struct {
	AppPort string
	Env     string // "production" or "development"

	// Host dispatch: requests for AdminHostname get the exec console,
	// every other hostname gets the public app.
	AdminHostname string

	// Built SPA asset trees (production mode).
	PublicAssetsDir string
	AdminAssetsDir  string

	// Dev bundler ports (development mode). Each app gets its own
	// bundler instance so the two never share module graphs.
	PublicDevPort string
	AdminDevPort  string

	// Identity provider.
	ProviderIssuerURL string
	ProviderClientID  string
	ProviderAdminURL  string
	AdminClientID     string
	AdminClientSecret string

	RedisAddr     string
	RedisPassword string

	DatabaseDSN string
}

func Load() Config {

	cfg := Config{

		AppPort: getenv("APP_PORT", "3000"),
		Env:     getenv("APP_ENV", "development"),

		AdminHostname: getenv("ADMIN_HOSTNAME", "admin.localhost"),

		PublicAssetsDir: getenv("PUBLIC_ASSETS_DIR", "build/public"),
		AdminAssetsDir:  getenv("ADMIN_ASSETS_DIR", "build/admin"),

		PublicDevPort: getenv("PUBLIC_DEV_PORT", "3001"),
		AdminDevPort:  getenv("ADMIN_DEV_PORT", "3002"),

		ProviderIssuerURL: os.Getenv("PROVIDER_ISSUER_URL"),
		ProviderClientID:  os.Getenv("PROVIDER_CLIENT_ID"),
		ProviderAdminURL:  os.Getenv("PROVIDER_ADMIN_URL"),
		AdminClientID:     os.Getenv("PROVIDER_ADMIN_CLIENT_ID"),
		AdminClientSecret: os.Getenv("PROVIDER_ADMIN_CLIENT_SECRET"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),
	}

	return cfg

}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
