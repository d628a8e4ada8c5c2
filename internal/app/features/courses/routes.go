// internal/app/features/courses/routes.go
package courses

import (
	"github.com/dalemusser/coursepulse/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Everything under /courses requires authentication
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		// LIST + CREATE
		pr.Get("/", h.ServeCourseList)
		pr.Post("/", h.HandleCreateCourse)

		// MEMBER PICKER (static segment, must not shadow /{id})
		pr.Get("/users/search", h.ServeSearchUsers)

		// VIEW / SETTINGS / DELETE
		pr.Get("/{id}", h.ServeCourseView)
		pr.Patch("/{id}/config", h.HandleUpdateConfig)
		pr.Delete("/{id}", h.HandleDeleteCourse)

		// MEMBERSHIP
		pr.Post("/{id}/members", h.HandleAddMember)
		pr.Post("/{id}/study-groups", h.HandleMergeStudyGroup)

		// DOCUMENT UPLOAD
		pr.Post("/{id}/document", h.HandleUploadDocument)

		// QUESTIONS
		pr.Get("/{id}/questions", h.ServeCurrentQuestions)
		pr.Get("/{id}/questions/{userID}", h.ServeQuestionsForUser)
		pr.Get("/{id}/previous-questions", h.ServePreviousQuestions)

		// SCORES
		pr.Post("/{id}/submit", h.HandleSubmitScore)
	})

	return r
}
