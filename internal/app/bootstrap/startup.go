// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	coursestore "github.com/dalemusser/coursepulse/internal/app/store/courses"
	questionstore "github.com/dalemusser/coursepulse/internal/app/store/questions"
	userstore "github.com/dalemusser/coursepulse/internal/app/store/users"
	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"github.com/dalemusser/coursepulse/internal/app/system/digest"
	"github.com/dalemusser/coursepulse/internal/app/system/generator"
	"github.com/dalemusser/coursepulse/internal/app/system/mailer"
	"github.com/dalemusser/coursepulse/internal/app/system/storage"
	"github.com/dalemusser/coursepulse/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Long-lived pieces built once in Startup and shared with BuildHandler and
// Shutdown.
var (
	documents       *storage.Local
	tokenService    *auth.TokenService
	digestProcessor *digest.Processor
	digestScheduler *workers.DigestScheduler
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It wires
// the question-lifecycle pipeline (stores, generator, mailer, processor)
// and starts the digest scheduler.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	var err error

	documents, err = storage.NewLocal(appCfg.StorageLocalPath)
	if err != nil {
		return err
	}

	tokenService, err = auth.NewTokenService(appCfg.JWTSecret, appCfg.TokenTTL)
	if err != nil {
		return err
	}

	var gen digest.Generator
	switch appCfg.GeneratorProvider {
	case "gemini":
		gen = generator.NewGemini(appCfg.GeminiAPIKey, appCfg.GeminiModel, logger)
	default:
		gen = generator.NewStatic()
	}

	var sender digest.Sender
	switch appCfg.MailerProvider {
	case "sendgrid":
		sender = mailer.NewSendgridSender(appCfg.SendgridAPIKey, appCfg.MailFromName, appCfg.MailFrom, logger)
	default:
		sender = mailer.NewConsoleSender(logger)
	}

	digestProcessor = digest.NewProcessor(
		coursestore.New(deps.MongoDatabase),
		questionstore.New(deps.MongoDatabase),
		userstore.New(deps.MongoDatabase),
		documents,
		gen,
		sender,
		digest.Config{
			BaseURL:         appCfg.BaseURL,
			GenerateTimeout: appCfg.GeneratorTimeout,
			SendTimeout:     appCfg.MailTimeout,
		},
		logger,
	)

	// Validated in ValidateConfig; cannot fail here.
	weeklyDay, _ := ParseWeekday(appCfg.DigestWeeklyDay)

	digestScheduler = workers.NewDigestScheduler(digestProcessor, workers.Schedule{
		DailyHour:  appCfg.DigestDailyHour,
		WeeklyDay:  weeklyDay,
		WeeklyHour: appCfg.DigestWeeklyHour,
	}, logger)
	digestScheduler.Start()

	logger.Info("coursepulse startup complete",
		zap.String("generator", appCfg.GeneratorProvider),
		zap.String("mailer", appCfg.MailerProvider))
	return nil
}
