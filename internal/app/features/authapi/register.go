// internal/app/features/authapi/register.go
package authapi

import (
	"errors"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/coursepulse/internal/app/store/users"
	"github.com/dalemusser/coursepulse/internal/app/system/httpjson"
	"github.com/dalemusser/coursepulse/internal/app/system/timeouts"
	"github.com/dalemusser/coursepulse/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string     `json:"token"`
	User  userOutput `json:"user"`
}

type userOutput struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// HandleRegister creates an account and returns a bearer token so new users
// are signed in immediately.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	switch {
	case req.FullName == "":
		httpjson.Error(w, http.StatusBadRequest, "full_name is required")
		return
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		httpjson.Error(w, http.StatusBadRequest, "a valid email is required")
		return
	case len(req.Password) < minPasswordLen:
		httpjson.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create account")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "register user")
	defer cancel()

	user, err := userstore.New(h.DB).Create(ctx, models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.Error(w, http.StatusConflict, "a user with this email already exists")
			return
		}
		h.Log.Error("create user failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create account")
		return
	}

	token, err := h.Tokens.Issue(&user)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create account")
		return
	}

	httpjson.Write(w, http.StatusCreated, authResponse{
		Token: token,
		User: userOutput{
			ID:       user.ID.Hex(),
			FullName: user.FullName,
			Email:    user.Email,
		},
	})
}
