// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/stratadesk/internal/app/system/callbackurl"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "STRATADESK"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, canonical_url, etc.
//   - Environment variables: STRATADESK_MONGO_URI, STRATADESK_CANONICAL_URL, etc.
//   - Command-line flags: --mongo_uri, --canonical_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "stratadesk", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// OAuth callback resolution
	{Name: "canonical_url", Default: "", Desc: "Public base URL used for OAuth callbacks in production"},
	{Name: "callback_path", Default: callbackurl.DefaultCallbackPath, Desc: "OAuth callback path"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "stratadesk-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie max age (e.g., 24h, 720h, 30m)"},

	// API access
	{Name: "api_key", Default: "", Desc: "API key for /api access (leave empty to disable API key auth)"},
	{Name: "api_allowed_origins", Default: "", Desc: "Comma-separated CORS origins for /api (blank allows any)"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges, in order of precedence,
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		CanonicalURL: strings.TrimRight(appValues.String("canonical_url"), "/"),
		CallbackPath: appValues.String("callback_path"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		APIKey:            appValues.String("api_key"),
		APIAllowedOrigins: splitList(appValues.String("api_allowed_origins")),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return errors.New("mongo_database must not be empty")
	}
	if err := validateAppConfig(appCfg, coreCfg.Env == "prod"); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return err
	}
	if coreCfg.Env == "prod" && appCfg.CanonicalURL == "" && appCfg.GoogleEnabled() {
		logger.Warn("canonical_url is empty; OAuth callbacks will use https://<request host>")
	}
	return nil
}

// validateAppConfig holds the checks that need no WAFFLE types.
func validateAppConfig(appCfg AppConfig, production bool) error {
	if appCfg.CanonicalURL != "" {
		u, err := url.Parse(appCfg.CanonicalURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("canonical_url %q must be an absolute URL", appCfg.CanonicalURL)
		}
		if production && u.Scheme != "https" {
			return fmt.Errorf("canonical_url %q must use https in production", appCfg.CanonicalURL)
		}
	}
	if appCfg.CallbackPath != "" && !strings.HasPrefix(appCfg.CallbackPath, "/") {
		return fmt.Errorf("callback_path %q must start with /", appCfg.CallbackPath)
	}
	if (appCfg.GoogleClientID == "") != (appCfg.GoogleClientSecret == "") {
		return errors.New("google_client_id and google_client_secret must be set together")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
