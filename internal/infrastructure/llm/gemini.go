package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"SurveyMonitor/internal/config"
	"SurveyMonitor/internal/ports"
)

const defaultGeminiModel = "gemini-2.5-flash"

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClient implements ports.Analyst with the Google GenAI SDK.
type GeminiClient struct {
	models       contentGenerator
	model        string
	systemPrompt string
}

var _ ports.Analyst = (*GeminiClient)(nil)

// NewGeminiClient creates a Gemini API client. An empty key yields a client
// whose Ask reports ports.ErrMissingAPIKey, so the dashboard stays usable.
func NewGeminiClient(ctx context.Context, cfg config.AnalysisConfig) (*GeminiClient, error) {
	c := &GeminiClient{
		model:        cfg.Model,
		systemPrompt: cfg.SystemPrompt,
	}
	if c.model == "" {
		c.model = defaultGeminiModel
	}
	if cfg.APIKey == "" {
		return c, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	c.models = client.Models

	return c, nil
}

// Ask sends the prompt as a single user turn and returns the text of the first candidate.
func (c *GeminiClient) Ask(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.models == nil {
		return "", ports.ErrMissingAPIKey
	}

	var genCfg *genai.GenerateContentConfig
	if sp := strings.TrimSpace(c.systemPrompt); sp != "" {
		genCfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(sp, genai.RoleUser),
		}
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty answer")
	}
	return text, nil
}
