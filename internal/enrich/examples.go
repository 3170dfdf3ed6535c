package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Fetcher generates example sentences for words whose dictionary dump
// carried none
type Fetcher struct {
	apiKey string
	client *openai.Client
}

// NewFetcher creates a new example sentence fetcher
func NewFetcher(apiKey string) *Fetcher {
	return &Fetcher{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// Enabled reports whether the fetcher has an API key to work with
func (f *Fetcher) Enabled() bool {
	return f.apiKey != ""
}

// ExampleSentences asks the model for up to count short example sentences
// using the given word
func (f *Fetcher) ExampleSentences(ctx context.Context, word string, count int) ([]string, error) {
	if f.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You write short, natural example sentences for English vocabulary flashcards. Respond with one sentence per line, no numbering and no commentary.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Write %d example sentences using the word '%s'.", count, word),
			},
		},
		MaxTokens:   200,
		Temperature: 0.7,
	}

	resp, err := f.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no sentences returned")
	}

	sentences := SplitSentences(resp.Choices[0].Message.Content)
	if len(sentences) > count {
		sentences = sentences[:count]
	}
	return sentences, nil
}

// SplitSentences turns a model response into clean sentence lines,
// stripping list markers the model tends to add anyway
func SplitSentences(content string) []string {
	var sentences []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "• ")
		if line != "" {
			sentences = append(sentences, line)
		}
	}
	return sentences
}
