package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/i474232898/crop-dashboard/internal/common"
	"github.com/i474232898/crop-dashboard/internal/fetch"
	"github.com/i474232898/crop-dashboard/internal/soil"
)

// DefaultGeminiEndpoint is the generateContent URL used when none is configured.
const DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

var (
	// ErrMissingAPIKey is returned before any request is made when no key is set.
	ErrMissingAPIKey = errors.New("gemini api key not set")

	errEmptyReply = errors.New("reply has no candidates")
)

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Gemini asks the Gemini generateContent API for recommendations.
type Gemini struct {
	client *fetch.Client
	apiKey string
}

// NewGemini uses client, whose base URL must be the full generateContent
// endpoint.
func NewGemini(client *fetch.Client, apiKey string) *Gemini {
	return &Gemini{client: client, apiKey: apiKey}
}

// Recommend sends the prompt for snap and decodes the JSON object embedded in
// the reply. Errors carry fetch kinds: config for a missing key, http for a
// non-2xx status, parse for an empty or unparseable reply.
func (g *Gemini) Recommend(ctx context.Context, snap soil.Snapshot) (Advice, error) {
	if g.apiKey == "" {
		return Advice{}, fetch.ConfigError(ErrMissingAPIKey)
	}

	req := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: BuildPrompt(snap)}}}},
	}
	headers := map[string]string{"x-goog-api-key": g.apiKey}

	var resp geminiResponse
	if err := g.client.PostJSON(ctx, "", headers, req, &resp); err != nil {
		log.Printf("advisor: gemini request failed: %v", err)
		return Advice{}, err
	}

	text, err := replyText(resp)
	if err != nil {
		return Advice{}, fetch.ParseError(err)
	}

	obj, err := ExtractJSONObject(text)
	if err != nil {
		log.Printf("DEBUG: advisor: no JSON in reply %q", common.Truncate(text, 120))
		return Advice{}, fetch.ParseError(err)
	}

	var advice Advice
	if err := json.Unmarshal([]byte(obj), &advice); err != nil {
		return Advice{}, fetch.ParseError(err)
	}
	return advice, nil
}

func replyText(resp geminiResponse) (string, error) {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errEmptyReply
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// Mode selects the advisor implementation.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeStatic Mode = "static"
	ModeGemini Mode = "gemini"
)

// Select returns the advisor for mode. Auto picks Gemini when a key is
// configured and the static placeholder otherwise.
func Select(mode Mode, g *Gemini) Advisor {
	switch mode {
	case ModeStatic:
		return Static{}
	case ModeGemini:
		return g
	default:
		if g != nil && g.apiKey != "" {
			return g
		}
		return Static{}
	}
}
