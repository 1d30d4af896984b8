package output

import (
	"context"

	"task-launcher/internal/domain/entity"
)

type LLMPort interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type ChatRequest struct {
	Messages    []entity.Message
	Temperature float32
	JSONMode    bool
}

type ChatResponse struct {
	Message entity.Message
}
