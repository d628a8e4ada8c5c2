// internal/app/features/admin/routes.go
package admin

import (
	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Post("/digest/{frequency}", h.HandleRunDigest)
	})

	return r
}
