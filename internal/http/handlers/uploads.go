package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"praxis-server/internal/domain"
	"praxis-server/internal/middleware"
)

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

type uploadResponse struct {
	ProcessingID    string                  `json:"processing_id"`
	GeminiAvailable bool                    `json:"gemini_available"`
	Status          domain.ProcessingStatus `json:"status"`
	Analysis        *domain.Analysis        `json:"analysis"`
	Skills          []domain.Skill          `json:"skills"`
	Jobs            []domain.Job            `json:"jobs"`
}

// UploadVideo accepts a multipart video upload and runs the full
// analyze-store pipeline synchronously.
func (a *App) UploadVideo(w http.ResponseWriter, r *http.Request) {
	a.handleUpload(w, r, domain.MediaKindVideo)
}

// UploadImage accepts a multipart image upload. Unlike video, the declared
// MIME type is checked against a fixed allow-list.
func (a *App) UploadImage(w http.ResponseWriter, r *http.Request) {
	a.handleUpload(w, r, domain.MediaKindImage)
}

func (a *App) handleUpload(w http.ResponseWriter, r *http.Request, kind domain.MediaKind) {
	r.Body = http.MaxBytesReader(w, r.Body, a.Config.MaxUploadBytes)

	field := "video"
	defaultMime := "video/mp4"
	if kind == domain.MediaKindImage {
		field = "image"
		defaultMime = "image/jpeg"
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			a.error(w, http.StatusBadRequest, "Upload too large")
			return
		}
		if kind == domain.MediaKindVideo {
			a.error(w, http.StatusBadRequest, "Video file required")
		} else {
			a.error(w, http.StatusBadRequest, "Image file required")
		}
		return
	}
	defer file.Close()

	userID := r.FormValue("user_id")
	if userID == "" {
		a.error(w, http.StatusBadRequest, "User ID required")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = defaultMime
	}
	if kind == domain.MediaKindImage {
		if _, ok := allowedImageTypes[mimeType]; !ok {
			a.error(w, http.StatusUnsupportedMediaType, fmt.Sprintf("Unsupported image type: %s", mimeType))
			return
		}
	}

	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx := r.Context()
	processingID := uuid.NewString()
	record := domain.ProcessingRecord{
		UserID:    userID,
		Status:    domain.StatusProcessing,
		MediaType: kind,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.Store.CreateProcessing(ctx, processingID, record); err != nil {
		a.error(w, http.StatusInternalServerError, err.Error())
		return
	}

	locale := middleware.LocaleFromContext(ctx)
	analysis, skills, jobs := a.analyze(ctx, data, mimeType, kind, locale)

	if err := a.storeResults(ctx, processingID, analysis, skills, jobs); err != nil {
		a.error(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.json(w, http.StatusOK, uploadResponse{
		ProcessingID:    processingID,
		GeminiAvailable: a.geminiAvailable(),
		Status:          domain.StatusDone,
		Analysis:        &analysis,
		Skills:          skills,
		Jobs:            jobs,
	})
}

// analyze runs skill extraction and job matching through Gemini, masking any
// provider failure with the deterministic fallback set. A done record always
// carries non-empty results.
func (a *App) analyze(ctx context.Context, data []byte, mimeType string, kind domain.MediaKind, locale string) (domain.Analysis, []domain.Skill, []domain.Job) {
	if !a.geminiAvailable() {
		return domain.MockAnalysis(kind), domain.MockSkills(), domain.MockJobs()
	}

	analysis, details, err := a.Gemini.AnalyzeMedia(ctx, data, mimeType, kind)
	if err != nil {
		a.Logger.Warn().Err(err).Str("media_type", string(kind)).Msg("gemini analysis failed; serving fallback results")
		return domain.MockAnalysis(kind), domain.MockSkills(), domain.MockJobs()
	}

	skills := domain.BuildSkills(details, analysis.DetectedSkills)
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}

	jobs, err := a.Gemini.MatchJobs(ctx, names, analysis.Summary, locale)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("gemini job matching failed; serving fallback results")
		return domain.MockAnalysis(kind), domain.MockSkills(), domain.MockJobs()
	}

	return *analysis, skills, jobs
}

func (a *App) storeResults(ctx context.Context, id string, analysis domain.Analysis, skills []domain.Skill, jobs []domain.Job) error {
	if err := a.Store.SetAnalysis(ctx, id, analysis); err != nil {
		return err
	}
	if err := a.Store.SetSkills(ctx, id, skills); err != nil {
		return err
	}
	if err := a.Store.SetJobs(ctx, id, jobs); err != nil {
		return err
	}
	return a.Store.SetStatus(ctx, id, domain.StatusDone)
}
