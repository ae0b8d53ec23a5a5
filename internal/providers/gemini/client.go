package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"praxis-server/internal/domain"
)

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client is the analysis adapter over the Gemini generateContent API. It is
// capability-checked: New refuses to build a client without a credential, so
// a non-nil Client is always able to attempt a call. The client never
// substitutes fallback data; provider and parse failures surface as errors
// and the caller decides policy.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

const defaultTimeout = 60 * time.Second

// New constructs a Gemini client with sane defaults.
func New(opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, domain.ErrMissingCredential
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gemini-2.0-flash"
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     opts.Logger,
	}, nil
}

// Model returns the configured Gemini model identifier.
func (c *Client) Model() string {
	return c.model
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	CandidateCount   int     `json:"candidateCount,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

type analysisPayload struct {
	Summary          string               `json:"summary"`
	DetectedSkills   []string             `json:"detected_skills"`
	SkillDetails     []skillDetailPayload `json:"skill_details"`
	ConfidenceScore  *float64             `json:"confidence_score"`
	LanguageDetected string               `json:"language_detected"`
	RawTranscript    string               `json:"raw_transcript"`
}

type skillDetailPayload struct {
	Name       string  `json:"name"`
	Level      float64 `json:"level"`
	Confidence float64 `json:"confidence"`
}

type jobsPayload struct {
	Jobs []jobPayload `json:"jobs"`
}

type jobPayload struct {
	Title       string   `json:"title"`
	MatchScore  *float64 `json:"match_score"`
	SalaryRange string   `json:"salary_range"`
	Reason      string   `json:"reason"`
}

const defaultConfidenceScore = 0.7

// AnalyzeMedia sends the raw media bytes inline with the skill-extraction
// prompt and normalizes the constrained JSON reply. The raw skill details are
// returned alongside the analysis because they carry per-skill level and
// confidence, while the flat detected_skills list is the fallback source for
// skill records.
func (c *Client) AnalyzeMedia(ctx context.Context, data []byte, mimeType string, kind domain.MediaKind) (*domain.Analysis, []domain.SkillDetail, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{
			Role: "user",
			Parts: []geminiPart{
				{InlineData: &geminiInlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(data),
				}},
				{Text: skillExtractionPrompt},
			},
		}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:      0.2,
			CandidateCount:   1,
			ResponseMimeType: "application/json",
		},
	}

	text, err := c.generate(ctx, payload)
	if err != nil {
		return nil, nil, err
	}
	parsed, err := parsePayload[analysisPayload](text)
	if err != nil {
		return nil, nil, fmt.Errorf("parse analysis response: %w", err)
	}

	confidence := defaultConfidenceScore
	if parsed.ConfidenceScore != nil {
		confidence = domain.ClampUnit(*parsed.ConfidenceScore)
	}
	analysis := &domain.Analysis{
		Summary:          parsed.Summary,
		DetectedSkills:   parsed.DetectedSkills,
		ConfidenceScore:  confidence,
		LanguageDetected: parsed.LanguageDetected,
		MediaType:        kind,
	}
	if kind == domain.MediaKindVideo {
		analysis.RawTranscript = parsed.RawTranscript
	}

	details := make([]domain.SkillDetail, 0, len(parsed.SkillDetails))
	for _, d := range parsed.SkillDetails {
		details = append(details, domain.SkillDetail{
			Name:       d.Name,
			Level:      int(d.Level),
			Confidence: d.Confidence,
		})
	}

	c.logger.Debug().
		Str("model", c.model).
		Int("detected_skills", len(analysis.DetectedSkills)).
		Int("skill_details", len(details)).
		Msg("gemini: media analysis complete")

	return analysis, details, nil
}

// MatchJobs asks the provider for exactly three job suggestions for the
// given verified skills and summary. Locale is a language hint for the
// reply; it does not change the job market being matched against.
func (c *Client) MatchJobs(ctx context.Context, skillNames []string, summary, locale string) ([]domain.Job, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{
			Role: "user",
			Parts: []geminiPart{{
				Text: buildJobMatchingPrompt(skillNames, summary, locale),
			}},
		}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:      0.4,
			CandidateCount:   1,
			ResponseMimeType: "application/json",
		},
	}

	text, err := c.generate(ctx, payload)
	if err != nil {
		return nil, err
	}
	parsed, err := parsePayload[jobsPayload](text)
	if err != nil {
		return nil, fmt.Errorf("parse jobs response: %w", err)
	}

	jobs := make([]domain.Job, 0, len(parsed.Jobs))
	for _, j := range parsed.Jobs {
		match := 70
		if j.MatchScore != nil {
			match = domain.ClampMatch(int(*j.MatchScore))
		}
		jobs = append(jobs, domain.Job{
			Title:  j.Title,
			Match:  match,
			Salary: j.SalaryRange,
			Reason: j.Reason,
		})
	}

	c.logger.Debug().
		Str("model", c.model).
		Int("jobs", len(jobs)).
		Msg("gemini: job matching complete")

	return jobs, nil
}

// Ping issues a minimal generateContent call to verify the credential.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.generate(ctx, geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: "Reply with the single word: ok"}},
		}},
		GenerationConfig: &geminiGenerationConfig{CandidateCount: 1},
	})
	return err
}

func (c *Client) generate(ctx context.Context, payload geminiRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("invoke gemini: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr geminiErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		data, _ := io.ReadAll(resp.Body)
		if len(data) > 0 {
			return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
		}
		return "", fmt.Errorf("gemini status %d", resp.StatusCode)
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}

	for _, cand := range out.Candidates {
		for _, part := range cand.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text, nil
			}
		}
	}
	return "", errors.New("gemini returned no text content")
}

func parsePayload[T any](raw string) (T, error) {
	var zero T
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return zero, errors.New("empty payload")
	}
	var decoded T
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return zero, err
	}
	return decoded, nil
}

// extractJSONFragment strips markdown fencing and any leading/trailing prose
// the model may wrap around the JSON object.
func extractJSONFragment(raw string) string {
	text := trimCodeFence(strings.TrimSpace(raw))
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```JSON")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
