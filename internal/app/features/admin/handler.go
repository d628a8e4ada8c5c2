// internal/app/features/admin/handler.go
package admin

import (
	"net/http"

	"github.com/dalemusser/coursepulse/internal/app/system/digest"
	"github.com/dalemusser/coursepulse/internal/app/system/httpjson"
	"github.com/dalemusser/coursepulse/internal/app/system/timeouts"
	"github.com/dalemusser/coursepulse/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes operational endpoints. Digest runs normally fire on the
// schedule; the trigger here exists for testing and for catching a course
// up after downtime.
type Handler struct {
	Processor *digest.Processor
	Log       *zap.Logger
}

// NewHandler constructs an admin Handler.
func NewHandler(p *digest.Processor, logger *zap.Logger) *Handler {
	return &Handler{
		Processor: p,
		Log:       logger,
	}
}

// HandleRunDigest runs one cadence synchronously and returns its summary.
// Racing the schedule is safe: the processor serializes work per course.
func (h *Handler) HandleRunDigest(w http.ResponseWriter, r *http.Request) {
	frequency := chi.URLParam(r, "frequency")
	if frequency != models.FrequencyDaily && frequency != models.FrequencyWeekly {
		httpjson.Error(w, http.StatusBadRequest, `frequency must be "daily" or "weekly"`)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "manual digest run")
	defer cancel()

	summary := h.Processor.RunCadence(ctx, frequency)
	httpjson.Write(w, http.StatusOK, map[string]any{
		"frequency": summary.Frequency,
		"processed": summary.Processed,
		"archived":  summary.Archived,
		"generated": summary.Generated,
		"skipped":   summary.Skipped,
		"failed":    summary.Failed,
		"sent":      summary.Sent,
	})
}
