// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//
// AppConfig is where everything specific to CoursePulse lives: database
// connection strings, auth secrets, the digest schedule, and the question
// generator and mailer providers.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Bearer token configuration
	JWTSecret string        // Secret for signing bearer tokens (must be strong in production)
	TokenTTL  time.Duration // How long an issued token stays valid

	// Base URL for links embedded in notification emails
	BaseURL string // e.g., "https://coursepulse.app" or "http://localhost:3000"

	// File storage configuration
	StorageLocalPath string // Local storage path for uploaded course documents

	// Digest schedule
	DigestDailyHour  int    // Hour of day for the daily run (0-23)
	DigestWeeklyDay  string // Day of week for the weekly run (e.g., "Monday")
	DigestWeeklyHour int    // Hour of day for the weekly run (0-23)

	// Question generator configuration
	GeneratorProvider string        // "gemini" or "static"
	GeminiAPIKey      string        // API key for the Gemini provider
	GeminiModel       string        // Model name (e.g., gemini-2.0-flash)
	GeneratorTimeout  time.Duration // Bound on one generation call

	// Mailer configuration
	MailerProvider string        // "sendgrid" or "console"
	SendgridAPIKey string        // API key for the SendGrid provider
	MailFrom       string        // From email address (e.g., noreply@coursepulse.app)
	MailFromName   string        // From display name (e.g., CoursePulse)
	MailTimeout    time.Duration // Bound on one delivery attempt
}
