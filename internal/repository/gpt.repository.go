package repository

import (
	"context"
	"fmt"
	"strings"

	"assetgraph/internal/domain"

	"github.com/ayush6624/go-chatgpt"
)

type GptRepository interface {
	DescribeValuation(ctx context.Context, nodeID string, value string, holdings []domain.Holding) (string, error)
}

type gptRepositoryHandler struct {
	GptClient *chatgpt.Client
}

func NewGptRepository(apiKey string) (GptRepository, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct gpt client: %w", err)
	}

	return gptRepositoryHandler{
		GptClient: client,
	}, nil
}

const describePrompt = `
You are helping a user understand a portfolio valuation. The portfolio is a node in a holdings graph: it holds a weighted amount of each of its children, and its value is the weighted sum of the children's values. Children may themselves be portfolios or directly priced instruments.

Given the portfolio name, its current value, and its direct holdings (child name and number of units held), write a short plain-English summary of what the portfolio is composed of and what drives its value. Negative units mean a short position. Do not invent holdings that are not listed, and do not speculate about future prices. Keep it to one paragraph.
`

func (h gptRepositoryHandler) DescribeValuation(ctx context.Context, nodeID string, value string, holdings []domain.Holding) (string, error) {
	sb := strings.Builder{}
	sb.WriteString(describePrompt)
	sb.WriteString(fmt.Sprintf("\nportfolio: %s\nvalue: %s\nholdings:\n", nodeID, value))
	for _, holding := range holdings {
		sb.WriteString(fmt.Sprintf("- %s units of %s\n", holding.Weight.String(), holding.ChildID))
	}

	resp, err := h.GptClient.Send(ctx, &chatgpt.ChatCompletionRequest{
		Model: chatgpt.GPT35Turbo,
		Messages: []chatgpt.ChatMessage{
			{
				Role:    chatgpt.ChatGPTModelRoleUser,
				Content: sb.String(),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate description for %s: %w", nodeID, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("failed to generate description for %s: no choices returned", nodeID)
	}

	return resp.Choices[0].Message.Content, nil
}
