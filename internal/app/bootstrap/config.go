// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for CoursePulse.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, base_url, etc.
//   - Environment variables: COURSEPULSE_MONGO_URI, COURSEPULSE_BASE_URL, etc.
//   - Command-line flags: --mongo_uri, --base_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "coursepulse", Desc: "MongoDB database name"},

	// Bearer token auth
	{Name: "jwt_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Bearer token signing secret (must be strong in production)"},
	{Name: "token_ttl", Default: "24h", Desc: "Bearer token lifetime"},

	// Base URL for email links
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for links in notification emails"},

	// File storage configuration
	{Name: "storage_local_path", Default: "./uploads/documents", Desc: "Local storage path for uploaded course documents"},

	// Digest schedule
	{Name: "digest_daily_hour", Default: 8, Desc: "Hour of day (0-23) for the daily digest run"},
	{Name: "digest_weekly_day", Default: "Monday", Desc: "Day of week for the weekly digest run"},
	{Name: "digest_weekly_hour", Default: 8, Desc: "Hour of day (0-23) for the weekly digest run"},

	// Question generator
	{Name: "generator_provider", Default: "static", Desc: "Question generator: 'gemini' or 'static'"},
	{Name: "gemini_api_key", Default: "", Desc: "Gemini API key (required when generator_provider is 'gemini')"},
	{Name: "gemini_model", Default: "gemini-2.0-flash", Desc: "Gemini model name"},
	{Name: "generator_timeout", Default: "2m", Desc: "Timeout for one question generation call"},

	// Mailer
	{Name: "mailer_provider", Default: "console", Desc: "Mailer: 'sendgrid' or 'console'"},
	{Name: "sendgrid_api_key", Default: "", Desc: "SendGrid API key (required when mailer_provider is 'sendgrid')"},
	{Name: "mail_from", Default: "noreply@coursepulse.app", Desc: "From email address"},
	{Name: "mail_from_name", Default: "CoursePulse", Desc: "From display name"},
	{Name: "mail_timeout", Default: "30s", Desc: "Timeout for one mail delivery attempt"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, COURSEPULSE_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "COURSEPULSE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		JWTSecret: appValues.String("jwt_secret"),
		TokenTTL:  appValues.Duration("token_ttl", 24*time.Hour),

		BaseURL: appValues.String("base_url"),

		StorageLocalPath: appValues.String("storage_local_path"),

		DigestDailyHour:  appValues.Int("digest_daily_hour"),
		DigestWeeklyDay:  appValues.String("digest_weekly_day"),
		DigestWeeklyHour: appValues.Int("digest_weekly_hour"),

		GeneratorProvider: appValues.String("generator_provider"),
		GeminiAPIKey:      appValues.String("gemini_api_key"),
		GeminiModel:       appValues.String("gemini_model"),
		GeneratorTimeout:  appValues.Duration("generator_timeout", 2*time.Minute),

		MailerProvider: appValues.String("mailer_provider"),
		SendgridAPIKey: appValues.String("sendgrid_api_key"),
		MailFrom:       appValues.String("mail_from"),
		MailFromName:   appValues.String("mail_from_name"),
		MailTimeout:    appValues.Duration("mail_timeout", 30*time.Second),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// CoursePulse validates the MongoDB URI, the digest schedule, and that the
// selected generator and mailer providers have the credentials they need,
// so misconfiguration fails fast instead of at the first digest run.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.DigestDailyHour < 0 || appCfg.DigestDailyHour > 23 {
		return fmt.Errorf("digest_daily_hour must be 0-23, got %d", appCfg.DigestDailyHour)
	}
	if appCfg.DigestWeeklyHour < 0 || appCfg.DigestWeeklyHour > 23 {
		return fmt.Errorf("digest_weekly_hour must be 0-23, got %d", appCfg.DigestWeeklyHour)
	}
	if _, err := ParseWeekday(appCfg.DigestWeeklyDay); err != nil {
		return err
	}

	switch appCfg.GeneratorProvider {
	case "static":
	case "gemini":
		if appCfg.GeminiAPIKey == "" {
			return fmt.Errorf("generator_provider 'gemini' requires gemini_api_key")
		}
	default:
		return fmt.Errorf("generator_provider must be 'gemini' or 'static', got %q", appCfg.GeneratorProvider)
	}

	switch appCfg.MailerProvider {
	case "console":
	case "sendgrid":
		if appCfg.SendgridAPIKey == "" {
			return fmt.Errorf("mailer_provider 'sendgrid' requires sendgrid_api_key")
		}
	default:
		return fmt.Errorf("mailer_provider must be 'sendgrid' or 'console', got %q", appCfg.MailerProvider)
	}

	return nil
}

// ParseWeekday converts a day name (e.g., "Monday", "monday") to
// time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("digest_weekly_day must be a day name (e.g., 'Monday'), got %q", name)
}
