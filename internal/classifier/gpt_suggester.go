package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type gptResponse struct {
	Tags []string `json:"tags"`
}

// GPTSuggester asks a chat model for tags describing note or bookmark
// content.
type GPTSuggester struct {
	client  *openai.Client
	model   string
	maxTags int
	logger  *zap.Logger
}

func NewGPTSuggester(apiKey, model string, maxTags int, logger *zap.Logger) *GPTSuggester {
	return &GPTSuggester{
		client:  openai.NewClient(apiKey),
		model:   model,
		maxTags: maxTags,
		logger:  logger,
	}
}

func (s *GPTSuggester) SuggestTags(ctx context.Context, content string) ([]string, error) {
	prompt := fmt.Sprintf(`Suggest up to %d short lowercase tags for the following content.
Return a JSON object with this structure:
{"tags": ["tag1", "tag2", ...]}

Content: %s`, s.maxTags, content)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)
	if err != nil {
		s.logger.Error("failed to get tag suggestions", zap.Error(err))
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion: empty response")
	}

	var parsed gptResponse
	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		s.logger.Error("failed to parse tag suggestions", zap.Error(err), zap.String("response", raw))
		return nil, fmt.Errorf("parse suggestions: %w", err)
	}

	tags := []string{}
	for _, tag := range parsed.Tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == s.maxTags {
			break
		}
	}
	return tags, nil
}
