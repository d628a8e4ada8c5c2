// internal/app/features/studygroups/routes.go
package studygroups

import (
	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Everything under /study-groups requires authentication
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.ServeGroupList)
		pr.Post("/", h.HandleCreateGroup)

		pr.Get("/{id}", h.ServeGroupView)
		pr.Patch("/{id}", h.HandleUpdateGroup)
		pr.Delete("/{id}", h.HandleDeleteGroup)

		pr.Post("/{id}/members", h.HandleAddMember)
	})

	return r
}
