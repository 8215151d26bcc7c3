package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skylineestates/leaddesk/internal/entity"
)

type PropertyHandler struct {
	repo entity.PropertyRepositoryInterface
}

func NewPropertyHandler(repo entity.PropertyRepositoryInterface) *PropertyHandler {
	return &PropertyHandler{repo: repo}
}

func (h *PropertyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list properties")
		return
	}
	if list == nil {
		list = []entity.Property{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *PropertyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrPropertyNotFound) {
			writeError(w, http.StatusNotFound, "Property not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load property")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PropertyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var p entity.Property
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if p.Title == "" || p.Location == "" {
		writeError(w, http.StatusBadRequest, "title and location are required")
		return
	}

	p.ID = ""
	if err := h.repo.Create(r.Context(), &p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create property")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PropertyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrPropertyNotFound) {
			writeError(w, http.StatusNotFound, "Property not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load property")
		return
	}

	var patch entity.Property
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if patch.Title != "" {
		existing.Title = patch.Title
	}
	if patch.Location != "" {
		existing.Location = patch.Location
	}
	if patch.PropertyType != "" {
		existing.PropertyType = patch.PropertyType
	}
	if patch.Price != "" {
		existing.Price = patch.Price
	}
	if patch.Size != "" {
		existing.Size = patch.Size
	}
	if patch.Bedrooms != 0 {
		existing.Bedrooms = patch.Bedrooms
	}
	if patch.Bathrooms != 0 {
		existing.Bathrooms = patch.Bathrooms
	}
	if patch.Description != "" {
		existing.Description = patch.Description
	}
	if patch.Status != "" {
		existing.Status = patch.Status
	}
	existing.Featured = patch.Featured

	if err := h.repo.Update(r.Context(), existing); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update property")
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

func (h *PropertyHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, entity.ErrPropertyNotFound) {
			writeError(w, http.StatusNotFound, "Property not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete property")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
