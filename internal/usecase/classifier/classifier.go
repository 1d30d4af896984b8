package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"task-launcher/internal/application/port/input"
	"task-launcher/internal/application/port/output"
	"task-launcher/internal/domain/entity"
)

var _ input.IntentClassifier = (*UseCase)(nil)

type UseCase struct {
	llm          output.LLMPort
	logger       output.LoggerPort
	systemPrompt string
}

func New(llm output.LLMPort, logger output.LoggerPort, systemPrompt string) *UseCase {
	return &UseCase{
		llm:          llm,
		logger:       logger,
		systemPrompt: systemPrompt,
	}
}

// Classify asks the model for the intent behind text. Only transport
// failures are returned as errors; a reply that cannot be understood
// becomes the unknown intent.
func (uc *UseCase) Classify(ctx context.Context, text string) (entity.Intent, error) {
	resp, err := uc.llm.Chat(ctx, output.ChatRequest{
		Messages: []entity.Message{
			{Role: entity.RoleSystem, Content: uc.systemPrompt},
			{Role: entity.RoleUser, Content: "Interpret this command: " + text},
		},
		Temperature: 0.0,
		JSONMode:    true,
	})
	if err != nil {
		return entity.Intent{}, fmt.Errorf("llm request failed: %w", err)
	}

	intent, err := ParseIntent(resp.Message.Content)
	if err != nil {
		uc.log(ctx).Warn("Unparseable classifier reply", "error", err, "reply", resp.Message.Content)
		return entity.UnknownIntent(), nil
	}

	uc.log(ctx).Debug("Intent classified", "action", intent.Action, "target", intent.Target)
	return intent, nil
}

func (uc *UseCase) log(ctx context.Context) output.LoggerPort {
	return output.LoggerFrom(ctx, uc.logger)
}

type intentReply struct {
	Action      string         `json:"action"`
	Application string         `json:"application"`
	Query       string         `json:"query"`
	Target      string         `json:"target"`
	Parameters  map[string]any `json:"parameters"`
}

// ParseIntent reads the outermost JSON object in reply.
func ParseIntent(reply string) (entity.Intent, error) {
	reply = strings.TrimSpace(reply)

	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end < start {
		return entity.Intent{}, fmt.Errorf("no JSON found in response")
	}

	var r intentReply
	if err := json.Unmarshal([]byte(reply[start:end+1]), &r); err != nil {
		return entity.Intent{}, fmt.Errorf("failed to parse JSON: %w", err)
	}

	action := entity.ParseAction(r.Action)

	var target string
	switch action {
	case entity.ActionOpen, entity.ActionClose:
		target = firstNonEmpty(r.Application, r.Target, r.Query)
	case entity.ActionSearch:
		target = firstNonEmpty(r.Query, r.Target, r.Application)
	}

	return entity.Intent{
		Action:     action,
		Target:     target,
		Parameters: r.Parameters,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
