// internal/app/features/authapi/handler.go
package authapi

import (
	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for registration and login.
type Handler struct {
	DB     *mongo.Database
	Tokens *auth.TokenService
	Log    *zap.Logger
}

// NewHandler constructs an authapi Handler. It is typically called from the
// bootstrap BuildHandler function, where the application's DB, token
// service, and logger are already initialized.
func NewHandler(db *mongo.Database, tokens *auth.TokenService, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Tokens: tokens,
		Log:    logger,
	}
}
