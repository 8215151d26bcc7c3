package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/skylineestates/leaddesk/internal/entity"
	"github.com/skylineestates/leaddesk/internal/usecase"
)

type ExportHandler struct {
	repo entity.LeadRepositoryInterface
}

func NewExportHandler(repo entity.LeadRepositoryInterface) *ExportHandler {
	return &ExportHandler{repo: repo}
}

// Handle streams the lead book as a CSV in the re-import template order.
func (h *ExportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	leads, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load leads")
		return
	}

	data, err := usecase.BuildLeadsCSV(leads)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build CSV")
		return
	}

	filename := fmt.Sprintf("leads-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
