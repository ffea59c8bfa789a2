// Package llm generates customer-service replies in the account's
// preferred language.
package llm

import (
	"context"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"

	"github.com/odiabiz/odiabiz-api/internal/models"
)

// Responder generates a reply for one customer message.
type Responder interface {
	Reply(ctx context.Context, account *models.Account, message string) (string, error)
}

type OpenAIResponder struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

func NewOpenAIResponder(apiKey string) *OpenAIResponder {
	if apiKey == "" {
		log.Println("⚠️ OPENAI_API_KEY is empty, AI replies will not work")
	}
	return &OpenAIResponder{
		client:      openai.NewClient(apiKey),
		model:       "gpt-4o-mini",
		temperature: 0.6,
		maxTokens:   300,
	}
}

func (r *OpenAIResponder) Reply(ctx context.Context, account *models.Account, message string) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildSystemPrompt(account)},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		Temperature: r.temperature,
		MaxTokens:   r.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

func buildSystemPrompt(account *models.Account) string {
	return fmt.Sprintf(
		"You are the customer service assistant for %s, a Nigerian %s business. "+
			"Reply in %s. Be warm, concise and helpful. "+
			"If asked something you cannot answer, say the business owner will follow up.",
		account.BusinessName, account.BusinessType, account.LanguagePref.DisplayName(),
	)
}
