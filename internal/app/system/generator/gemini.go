// internal/app/system/generator/gemini.go
package generator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dalemusser/coursepulse/internal/app/system/digest"
	"go.uber.org/zap"
)

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

const geminiPrompt = `Generate exactly %d multiple-choice questions from the attached document.
Respond with a JSON array only, no prose and no code fences. Each element
must have this shape:
{"text": "the question", "choices": ["a", "b", "c", "d"], "answer": "the correct choice"}
The answer must be one of the choices verbatim.`

// Gemini generates questions by sending the course document inline to
// Google's generateContent endpoint and parsing the JSON array it returns.
type Gemini struct {
	apiKey string
	model  string
	client *http.Client
	log    *zap.Logger
}

// NewGemini constructs a Gemini generator. The http.Client carries no
// timeout of its own; callers bound each Generate with a context deadline.
func NewGemini(apiKey, model string, logger *zap.Logger) *Gemini {
	return &Gemini{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{},
		log:    logger,
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *geminiFilePart `json:"inline_data,omitempty"`
}

type geminiFilePart struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate uploads the document inline and asks the model for count
// questions. The model may return fewer; whatever parses is returned.
func (g *Gemini) Generate(ctx context.Context, documentPath string, count int) ([]digest.Candidate, error) {
	raw, err := os.ReadFile(documentPath)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &geminiFilePart{
					MimeType: documentMimeType(documentPath),
					Data:     base64.StdEncoding.EncodeToString(raw),
				}},
				{Text: fmt.Sprintf(geminiPrompt, count)},
			},
		}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf(geminiEndpoint, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	res, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("gemini error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini status %d", res.StatusCode)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no content")
	}

	text := parsed.Candidates[0].Content.Parts[0].Text
	candidates, err := parseCandidates(text)
	if err != nil {
		g.log.Warn("gemini output did not parse as question JSON",
			zap.String("model", g.model),
			zap.Error(err))
		return nil, err
	}
	return candidates, nil
}

// parseCandidates tolerates code fences and leading prose around the JSON
// array, which models emit despite instructions.
func parseCandidates(text string) ([]digest.Candidate, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON array in model output")
	}
	var out []digest.Candidate
	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}
	return out, nil
}

func documentMimeType(path string) string {
	if mt := mime.TypeByExtension(filepath.Ext(path)); mt != "" {
		return mt
	}
	return "application/octet-stream"
}
