package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"praxis-server/internal/domain"
	"praxis-server/internal/infra"
	"praxis-server/internal/providers/gemini"
)

// App bundles the dependencies shared by all handlers. Gemini is nil when no
// credential is configured; handlers treat that as fallback mode, never as
// an error.
type App struct {
	Store  domain.ResultStore
	Gemini *gemini.Client
	Config *infra.Config
	Logger zerolog.Logger
}

// NewApp builds the handler container.
func NewApp(store domain.ResultStore, client *gemini.Client, cfg *infra.Config, logger zerolog.Logger) *App {
	return &App{Store: store, Gemini: client, Config: cfg, Logger: logger}
}

func (a *App) geminiAvailable() bool {
	return a.Gemini != nil
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, detail string) {
	a.json(w, code, map[string]string{"detail": detail})
}
