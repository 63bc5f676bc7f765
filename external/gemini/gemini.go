package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jurandifr/AcheiPet/schema"
)

const (
	defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel    = "gemini-2.0-flash"
	requestTimeout  = 30 * time.Second
)

var (
	errEmptyKey        = fmt.Errorf("empty gemini api key")
	errResponseStatus  = fmt.Errorf("gemini response status not ok")
	errEmptyCandidates = fmt.Errorf("gemini returned no candidates")
)

// Fixed instruction. The model is asked for structured output; the schema in
// generationConfig pins the {tipo, raca} shape.
const promptText = `Verifique a imagem e responda caso consiga identificar,
o tipo de animal e a raça, caso não tenha certeza informe
'não identificado' no campo equivalente.
Dica: O animal é um pet.
Responda em JSON: {"tipo": <animal>, "raca": <raça>}`

// Classifier identifies the animal in a JPEG photo. Implementations wrap a
// non-deterministic external capability; callers may only rely on the result
// being a valid species and a non-empty breed.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (schema.AnimalAnalysis, error)
}

type classifier struct {
	apiKey     string
	endpoint   string
	model      string
	httpClient *http.Client
}

// New returns a Gemini-backed Classifier. Empty endpoint and model select the
// public API and the default vision model.
func New(apiKey, endpoint, model string, httpClient *http.Client) Classifier {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if model == "" {
		model = defaultModel
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	return &classifier{
		apiKey:     apiKey,
		endpoint:   endpoint,
		model:      model,
		httpClient: httpClient,
	}
}

type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"response_mime_type,omitempty"`
	ResponseSchema   json.RawMessage `json:"response_schema,omitempty"`
}

var analysisSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"tipo": {"type": "STRING"},
		"raca": {"type": "STRING"}
	},
	"required": ["tipo", "raca"]
}`)

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Classify sends the photo to the vision model and normalizes the answer.
// Transport and API failures return the safe default alongside the error;
// unparseable model output is the classifier's own problem and silently
// becomes the default.
func (c *classifier) Classify(ctx context.Context, image []byte) (schema.AnimalAnalysis, error) {
	if c.apiKey == "" {
		return DefaultAnalysis(), errEmptyKey
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	reqBody := generateContentRequest{
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{
					MimeType: "image/jpeg",
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
				{Text: promptText},
			},
		}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   analysisSchema,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return DefaultAnalysis(), err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return DefaultAnalysis(), err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return DefaultAnalysis(), err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return DefaultAnalysis(), err
	}

	if resp.StatusCode != http.StatusOK {
		return DefaultAnalysis(), fmt.Errorf("%w: %d", errResponseStatus, resp.StatusCode)
	}

	var r generateContentResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return DefaultAnalysis(), err
	}

	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return DefaultAnalysis(), errEmptyCandidates
	}

	return parseAnalysis(r.Candidates[0].Content.Parts[0].Text), nil
}

// parseAnalysis decodes the model's answer. The structured-output request
// makes plain JSON the expected shape; a fenced block or a single-element
// array is tolerated. Anything else ends at the default.
func parseAnalysis(text string) schema.AnimalAnalysis {
	text = stripCodeFence(text)

	var raw struct {
		Tipo string `json:"tipo"`
		Raca string `json:"raca"`
	}

	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		var list []struct {
			Tipo string `json:"tipo"`
			Raca string `json:"raca"`
		}
		if err := json.Unmarshal([]byte(text), &list); err != nil || len(list) == 0 {
			return DefaultAnalysis()
		}
		raw.Tipo = list[0].Tipo
		raw.Raca = list[0].Raca
	}

	if raw.Tipo == "" {
		return DefaultAnalysis()
	}

	return schema.AnimalAnalysis{
		Tipo: NormalizeSpecies(raw.Tipo),
		Raca: NormalizeBreed(raw.Raca),
	}
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
