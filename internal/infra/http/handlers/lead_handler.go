package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/skylineestates/leaddesk/internal/entity"
	"github.com/skylineestates/leaddesk/internal/infra/http/middleware"
	"github.com/skylineestates/leaddesk/internal/usecase"
)

type LeadHandler struct {
	repo        entity.LeadRepositoryInterface
	capture     *usecase.CaptureLeadUseCase
	rateLimiter *RateLimiter
}

func NewLeadHandler(repo entity.LeadRepositoryInterface, capture *usecase.CaptureLeadUseCase) *LeadHandler {
	return &LeadHandler{
		repo:        repo,
		capture:     capture,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

// HandleCapture is the public enquiry endpoint behind the website form.
func (h *LeadHandler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	var input usecase.CaptureLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if errs := usecase.ValidateCaptureLeadInput(input); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Details: errs})
		return
	}

	lead, err := h.capture.Execute(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to capture lead")
		return
	}

	middleware.RecordLeadCaptured(lead.Source)
	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	leads, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leads")
		return
	}
	if leads == nil {
		leads = []entity.Lead{}
	}
	writeJSON(w, http.StatusOK, leads)
}

// HandleCreate is the admin-side manual create; unlike capture it trusts the
// back-office operator with source/status/priority but still normalizes them.
func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var lead entity.Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if lead.Name == "" || lead.Phone == "" {
		writeError(w, http.StatusBadRequest, "name and phone are required")
		return
	}

	lead.ID = ""
	lead.Source = entity.NormalizeSource(lead.Source)
	lead.LeadType = entity.NormalizeLeadType(lead.LeadType)
	lead.Status = entity.NormalizeStatus(lead.Status)
	lead.Priority = entity.NormalizePriority(lead.Priority)

	if err := h.repo.Create(r.Context(), &lead); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create lead")
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, "Lead not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load lead")
		return
	}

	var patch entity.Lead
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	applyLeadPatch(existing, &patch)

	if err := h.repo.Update(r.Context(), existing); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update lead")
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

func (h *LeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, "Lead not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete lead")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeadHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// applyLeadPatch overwrites only the fields the request actually sent.
// Enum fields are re-normalized so the store never holds an unknown value.
func applyLeadPatch(dst, patch *entity.Lead) {
	if patch.Name != "" {
		dst.Name = patch.Name
	}
	if patch.Phone != "" {
		dst.Phone = patch.Phone
	}
	if patch.Email != "" {
		dst.Email = patch.Email
	}
	if patch.Location != "" {
		dst.Location = patch.Location
	}
	if patch.PropertyType != "" {
		dst.PropertyType = patch.PropertyType
	}
	if patch.Budget != "" {
		dst.Budget = patch.Budget
	}
	if patch.Source != "" {
		dst.Source = entity.NormalizeSource(patch.Source)
	}
	if patch.LeadType != "" {
		dst.LeadType = entity.NormalizeLeadType(patch.LeadType)
	}
	if patch.Status != "" {
		dst.Status = entity.NormalizeStatus(patch.Status)
	}
	if patch.Priority != "" {
		dst.Priority = entity.NormalizePriority(patch.Priority)
	}
	if patch.AssignedTo != "" {
		dst.AssignedTo = patch.AssignedTo
	}
	if patch.Message != "" {
		dst.Message = patch.Message
	}
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
