package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/hunterlab/monster-advisor/internal/models"
	"github.com/hunterlab/monster-advisor/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiAdvisor implements Advisor against the Gemini API.
type GeminiAdvisor struct {
	client *genai.Client
	model  string
}

var weaponSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"weaponId":  {Type: genai.TypeInteger},
		"reasoning": {Type: genai.TypeString},
	},
}

var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"strengths":           {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"weaknesses":          {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"recommendedElements": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"huntingStrategy":     {Type: genai.TypeString},
		"difficulty":          {Type: genai.TypeString},
	},
}

func NewGeminiAdvisor(ctx context.Context, apiKey, model string) (*GeminiAdvisor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiAdvisor{
		client: client,
		model:  model,
	}, nil
}

func (a *GeminiAdvisor) WeaponRecommendation(ctx context.Context, prefs map[string]any, monsters []models.Monster, weapons []models.Weapon) (*WeaponSuggestion, error) {
	prompt := buildWeaponPrompt(prefs, monsters, weapons)

	text, err := a.generate(ctx, prompt, weaponSchema)
	if err != nil {
		return nil, err
	}

	suggestion := ParseWeaponSuggestion(text)
	if suggestion.WeaponID == nil {
		logger.Log.Warn("Weapon suggestion did not parse, fallback will apply",
			zap.Int("response_len", len(text)),
		)
	}
	return suggestion, nil
}

func (a *GeminiAdvisor) AnalyzeMonster(ctx context.Context, monster models.Monster) (*MonsterAnalysis, error) {
	prompt := buildAnalysisPrompt(monster)

	text, err := a.generate(ctx, prompt, analysisSchema)
	if err != nil {
		return nil, err
	}

	return ParseMonsterAnalysis(text, monster), nil
}

// generate performs one model call requesting a JSON response constrained
// by schema. Transport and API errors propagate; they are never folded into
// the parse fallback.
func (a *GeminiAdvisor) generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	start := time.Now()

	resp, err := a.client.Models.GenerateContent(ctx, a.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	)
	if err != nil {
		logger.Log.Error("Gemini generation failed",
			zap.String("model", a.model),
			zap.Error(err),
		)
		return "", fmt.Errorf("generation failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("generation failed: empty response")
	}

	logger.Log.Debug("Gemini generation completed",
		zap.String("model", a.model),
		zap.Int("prompt_len", len(prompt)),
		zap.Int("response_len", len(text)),
		zap.Duration("duration", time.Since(start)),
	)

	return text, nil
}
