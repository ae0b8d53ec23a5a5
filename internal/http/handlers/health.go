package handlers

import "net/http"

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"status":            "ok",
		"message":           "Praxis API is running",
		"gemini_configured": a.geminiAvailable(),
		"gemini_model":      a.Config.GeminiModel,
	})
}
