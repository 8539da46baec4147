package genai

// Package genai wraps the Gemini generateContent REST endpoint. Callers
// render whatever string comes back, so every failure mode resolves to a
// message beginning with "Error:" instead of a Go error.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultModel is the generation model used unless configured otherwise.
const DefaultModel = "gemini-1.5-flash-latest"

// CredentialSource supplies the API key, empty when the user has not
// configured one.
type CredentialSource interface {
	Credential() string
}

// Client calls the generative language API. It implements
// ports.TextGenerator.
type Client struct {
	baseURL     string
	model       string
	http        *http.Client
	credentials CredentialSource
	log         *slog.Logger
}

// NewClient creates a text-generation client. baseURL is the API root,
// e.g. "https://generativelanguage.googleapis.com/v1beta"; an empty model
// selects DefaultModel.
func NewClient(baseURL, model string, timeout time.Duration, credentials CredentialSource, log *slog.Logger) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		http:        &http.Client{Timeout: timeout},
		credentials: credentials,
		log:         log,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate returns model text for the prompt. On any failure the result is
// a renderable string beginning with "Error:"; it never panics and never
// returns an error value.
func (c *Client) Generate(ctx context.Context, prompt string) string {
	key := c.credentials.Credential()
	if key == "" {
		return "Error: No API key configured. Add your Gemini API key in settings."
	}

	reqBody := generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}
	raw, err := json.Marshal(reqBody)
	if err != nil {
		return "Error: could not encode the request."
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "Error: could not build the request."
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("text generation request failed", "error", err)
		return "Error: the AI service could not be reached. Check your connection and try again."
	}
	defer resp.Body.Close()

	var out generateResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(&out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("text generation rejected", "status", resp.StatusCode, "message", out.Error.Message)
		if out.Error.Message != "" {
			return "Error: " + out.Error.Message
		}
		return fmt.Sprintf("Error: the AI service returned status %d.", resp.StatusCode)
	}
	if decodeErr != nil {
		return "Error: could not read the AI service response."
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "Error: the AI service returned no content. Try rephrasing your request."
	}

	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "Error: the AI service returned no content. Try rephrasing your request."
	}
	return text
}
