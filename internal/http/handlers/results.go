package handlers

import (
	"errors"
	"net/http"

	"praxis-server/internal/domain"
)

// ProcessingStatus returns the lifecycle status for a processing id, with
// the analysis attached once it exists. Reads have no side effects.
func (a *App) ProcessingStatus(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "id is required")
		return
	}

	record, err := a.Store.GetProcessing(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "Processing ID not found")
		return
	}
	if err != nil {
		a.error(w, http.StatusInternalServerError, err.Error())
		return
	}

	analysis, err := a.Store.GetAnalysis(r.Context(), id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"status":   record.Status,
		"analysis": analysis,
	})
}

// Skills returns the extracted skill list for a processing id.
func (a *App) Skills(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "id is required")
		return
	}

	skills, err := a.Store.GetSkills(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "Skills not found for this ID")
		return
	}
	if err != nil {
		a.error(w, http.StatusInternalServerError, err.Error())
		return
	}

	analysis, err := a.Store.GetAnalysis(r.Context(), id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusInternalServerError, err.Error())
		return
	}

	// No user registry exists; the owner id is opaque, so the display name
	// is a constant.
	a.json(w, http.StatusOK, map[string]any{
		"user":     "Guest User",
		"skills":   skills,
		"analysis": analysis,
	})
}

// Jobs returns the suggested job matches for a processing id.
func (a *App) Jobs(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "id is required")
		return
	}

	jobs, err := a.Store.GetJobs(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "Jobs not found for this ID")
		return
	}
	if err != nil {
		a.error(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.json(w, http.StatusOK, map[string]any{"jobs": jobs})
}
