package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lineup/internal/roster"
	"lineup/internal/services"
)

const defaultHTTPTimeout = 30 * time.Second

// Config captures the runtime settings required to talk to the model.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
}

// Client issues JSON-only chat completion requests against an
// OpenAI-compatible endpoint. Each call is a single attempt; retry policy
// belongs to the enrichment scheduler.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a client from configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimSpace(cfg.BaseURL),
			Model:          strings.TrimSpace(cfg.Model),
			Referer:        strings.TrimSpace(cfg.Referer),
			Title:          strings.TrimSpace(cfg.Title),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = "https://openrouter.ai/api/v1/chat/completions"
	}
	return client
}

// EnrichRequest describes one artist to enrich.
type EnrichRequest struct {
	Name string
	// ExistingBio, when present, is passed to the model as the source of
	// truth and must come back unchanged.
	ExistingBio string
	// RatingBoost shifts the returned AI rating for discovery-focused
	// festivals; the result is clamped to 1-10.
	RatingBoost float64
}

// EnrichArtist asks the model for the full enrichment field set. A response
// with no usable content maps to services.ErrNoData; rate limits, timeouts,
// and 5xx responses map to services.ErrTransient; credential problems map to
// services.ErrFatal.
func (c *Client) EnrichArtist(ctx context.Context, req EnrichRequest) (map[roster.Field]string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, services.Wrap(services.ErrConfiguration, "llm", "enrich", "artist name required", nil)
	}
	if c.cfg.APIKey == "" {
		return nil, services.Wrap(services.ErrFatal, "llm", "enrich", "api key required", nil)
	}

	content, err := c.complete(ctx, systemPrompt, enrichmentPrompt(name, strings.TrimSpace(req.ExistingBio)), "enrich")
	if err != nil {
		return nil, err
	}

	raw := map[string]any{}
	if err := decodeJSONPayload(content, &raw); err != nil {
		return nil, services.Wrap(services.ErrNoData, "llm", "enrich", fmt.Sprintf("unparseable payload for %q", name), err)
	}

	fields := mapFields(raw)
	fields[roster.FieldAIRating] = adjustRating(fields[roster.FieldAIRating], req.RatingBoost)
	if allEmpty(fields) {
		return nil, services.Wrap(services.ErrNoData, "llm", "enrich", fmt.Sprintf("no public data for %q", name), nil)
	}
	return fields, nil
}

// ExtractBioFacts conservatively mines a festival-supplied bio for explicit
// facts. It is used after the bio fallback kicks in, so empty results are
// normal and come back as an empty map rather than an error.
func (c *Client) ExtractBioFacts(ctx context.Context, artistName, festivalBio string) (map[roster.Field]string, error) {
	festivalBio = strings.TrimSpace(festivalBio)
	if festivalBio == "" {
		return map[roster.Field]string{}, nil
	}
	if c.cfg.APIKey == "" {
		return nil, services.Wrap(services.ErrFatal, "llm", "extract", "api key required", nil)
	}

	content, err := c.complete(ctx, extractionSystemPrompt, extractionPrompt(artistName, festivalBio), "extract")
	if err != nil {
		return nil, err
	}

	raw := map[string]any{}
	if err := decodeJSONPayload(content, &raw); err != nil {
		return map[roster.Field]string{}, nil
	}
	return mapFields(raw), nil
}

// HealthCheck verifies the API key and model with a minimal request.
func (c *Client) HealthCheck(ctx context.Context) error {
	if c.cfg.APIKey == "" {
		return services.Wrap(services.ErrFatal, "llm", "health", "api key required", nil)
	}
	content, err := c.complete(ctx, "You must respond with JSON only.", `Respond with {"ok":true}`, "health")
	if err != nil {
		return err
	}
	var parsed struct {
		OK bool `json:"ok"`
	}
	if err := decodeJSONPayload(content, &parsed); err != nil {
		return services.Wrap(services.ErrTransient, "llm", "health", "unparseable response", err)
	}
	if !parsed.OK {
		return services.Wrap(services.ErrTransient, "llm", "health", "unexpected response", nil)
	}
	return nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Refusal string `json:"refusal"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) complete(ctx context.Context, system, user, op string) (string, error) {
	payload := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    0,
		ResponseFormat: map[string]string{"type": "json_object"},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", services.Wrap(services.ErrFatal, "llm", op, "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(encoded))
	if err != nil {
		return "", services.Wrap(services.ErrFatal, "llm", op, "build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Referer != "" {
		req.Header.Set("HTTP-Referer", c.cfg.Referer)
		req.Header.Set("Referer", c.cfg.Referer)
	}
	if c.cfg.Title != "" {
		req.Header.Set("X-Title", c.cfg.Title)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network errors and timeouts are all worth one retry upstream.
		return "", services.Wrap(services.ErrTransient, "llm", op, "http request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "llm", op, "read response", err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		marker := services.ErrTransient
		switch {
		case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
			marker = services.ErrFatal
		case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusBadRequest:
			marker = services.ErrFatal
		}
		return "", services.Wrap(marker, "llm", op, fmt.Sprintf("http %d: %s", resp.StatusCode, snippet(string(body))), nil)
	}

	var completion chatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", services.Wrap(services.ErrTransient, "llm", op, "decode response", err)
	}
	if completion.Error != nil {
		return "", services.Wrap(services.ErrTransient, "llm", op, "api error: "+strings.TrimSpace(completion.Error.Message), nil)
	}
	for _, choice := range completion.Choices {
		if content := strings.TrimSpace(choice.Message.Content); content != "" {
			return content, nil
		}
		if refusal := strings.TrimSpace(choice.Message.Refusal); refusal != "" {
			return "", services.Wrap(services.ErrNoData, "llm", op, "model refused: "+snippet(refusal), nil)
		}
	}
	return "", services.Wrap(services.ErrNoData, "llm", op, "empty completion", nil)
}

// mapFields converts a decoded JSON object into roster fields, dropping keys
// the table does not declare and stringifying numeric values.
func mapFields(raw map[string]any) map[roster.Field]string {
	fields := make(map[roster.Field]string, len(raw))
	for key, value := range raw {
		if !roster.KnownField(key) {
			continue
		}
		fields[roster.Field(key)] = stringify(value)
	}
	return fields
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case nil:
		return ""
	default:
		return ""
	}
}

// adjustRating clears placeholder zero ratings and applies the festival's
// discovery boost, clamping to the 1-10 scale.
func adjustRating(rating string, boost float64) string {
	rating = strings.TrimSpace(rating)
	if rating == "" || rating == "0" {
		return ""
	}
	value, err := strconv.ParseFloat(rating, 64)
	if err != nil {
		return rating
	}
	if boost != 0 {
		value += boost
	}
	value = math.Round(value)
	if value < 1 {
		value = 1
	}
	if value > 10 {
		value = 10
	}
	return strconv.FormatInt(int64(value), 10)
}

func allEmpty(fields map[roster.Field]string) bool {
	for _, v := range fields {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// decodeJSONPayload decodes model output, stripping code fences and
// surrounding prose when the payload is not bare JSON.
func decodeJSONPayload(content string, target any) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return fmt.Errorf("empty payload")
	}
	if err := json.Unmarshal([]byte(trimmed), target); err == nil {
		return nil
	}
	sanitized := sanitizeJSONPayload(trimmed)
	if err := json.Unmarshal([]byte(sanitized), target); err != nil {
		return fmt.Errorf("decode payload (snippet: %s): %w", snippet(trimmed), err)
	}
	return nil
}

func sanitizeJSONPayload(content string) string {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		body := strings.TrimPrefix(trimmed, "```")
		body = strings.TrimLeft(body, " \t\r\n")
		if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
			body = strings.TrimLeft(body[4:], " \t\r\n")
		}
		if idx := strings.LastIndex(body, "```"); idx >= 0 {
			body = body[:idx]
		}
		trimmed = strings.TrimSpace(body)
	}
	if start := strings.Index(trimmed, "{"); start >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			return strings.TrimSpace(trimmed[start : end+1])
		}
	}
	return trimmed
}

func snippet(content string) string {
	clean := strings.Join(strings.Fields(content), " ")
	const limit = 160
	runes := []rune(clean)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	if clean == "" {
		return "<empty>"
	}
	return clean
}
