package alerts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/models"
)

// NarrationInput - структурированная сводка условия, по которому строится оповещение
type NarrationInput struct {
	EventType   models.EventType
	AreaName    string
	Probability float64
	Severity    float64
	Timeframe   string
}

// Narration - текст оповещения, полученный от генеративного бэкенда
type Narration struct {
	Title           string   `json:"title"`
	Message         string   `json:"message"`
	Recommendations []string `json:"recommendations"`
}

// Narrator - контракт генеративного текстового бэкенда. Недоступность,
// не-2xx ответ и некорректный JSON равнозначны: вызывающий переходит на
// детерминированные шаблоны.
type Narrator interface {
	Narrate(ctx context.Context, input NarrationInput) (*Narration, error)
}

// openAINarrator - реализация Narrator поверх OpenAI chat completions
type openAINarrator struct {
	client *openai.Client
	model  string
}

// NewOpenAINarrator создаёт Narrator на OpenAI. При пустом ключе возвращает nil:
// вызывающий обязан уметь жить без генеративного бэкенда.
func NewOpenAINarrator(apiKey, model string) Narrator {
	if apiKey == "" {
		return nil
	}
	return &openAINarrator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

const narratorSystemPrompt = `You are a civic safety assistant for the city of Vadodara. ` +
	`Turn a structured hazard summary into a short citizen-facing alert. ` +
	`Return valid JSON with exactly these fields: ` +
	`"title" (under 60 chars), "message" (1-2 sentences, no jargon), ` +
	`"recommendations" (array of 1-3 short actionable strings).`

func (n *openAINarrator) Narrate(ctx context.Context, input NarrationInput) (*Narration, error) {
	userPrompt := fmt.Sprintf(
		"Hazard: %s\nArea: %s\nProbability: %.0f%%\nSeverity: %.2f\nExpected within: %s",
		input.EventType, input.AreaName, input.Probability*100, input.Severity, input.Timeframe,
	)

	resp, err := n.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: n.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: narratorSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.3,
		MaxTokens:   300,
	})
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai returned no choices")
	}

	narration := &Narration{}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), narration); err != nil {
		return nil, fmt.Errorf("failed to parse openai response: %w", err)
	}
	if narration.Title == "" || narration.Message == "" || len(narration.Recommendations) == 0 {
		return nil, errors.New("openai response is missing required fields")
	}
	return narration, nil
}
