package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"task-launcher/internal/application/port/output"
	"task-launcher/internal/domain/entity"
	"task-launcher/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	reply string
	err   error
	req   output.ChatRequest
}

func (f *fakeLLM) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &output.ChatResponse{
		Message: entity.Message{Role: entity.RoleAssistant, Content: f.reply},
	}, nil
}

func TestClassify_Open(t *testing.T) {
	llm := &fakeLLM{reply: `{"action": "open", "application": "Notepad", "parameters": {}}`}
	uc := New(llm, logger.NewNop(), "system prompt")

	intent, err := uc.Classify(context.Background(), "please open notepad")
	require.NoError(t, err)

	assert.Equal(t, entity.ActionOpen, intent.Action)
	assert.Equal(t, "Notepad", intent.Target)

	require.Len(t, llm.req.Messages, 2)
	assert.Equal(t, entity.RoleSystem, llm.req.Messages[0].Role)
	assert.Equal(t, "system prompt", llm.req.Messages[0].Content)
	assert.Equal(t, "Interpret this command: please open notepad", llm.req.Messages[1].Content)
	assert.True(t, llm.req.JSONMode)
	assert.Zero(t, llm.req.Temperature)
}

func TestClassify_MalformedReplyIsUnknown(t *testing.T) {
	for _, reply := range []string{"", "sure thing!", `{"action": `, `{"action": "dance", "application": "x"}`} {
		uc := New(&fakeLLM{reply: reply}, logger.NewNop(), "")

		intent, err := uc.Classify(context.Background(), "do something")
		require.NoError(t, err, "reply %q", reply)
		assert.Equal(t, entity.ActionUnknown, intent.Action, "reply %q", reply)
		assert.Empty(t, intent.Target)
	}
}

func TestClassify_TransportError(t *testing.T) {
	uc := New(&fakeLLM{err: errors.New("connection refused")}, logger.NewNop(), "")

	_, err := uc.Classify(context.Background(), "open chrome")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestParseIntent(t *testing.T) {
	tests := []struct {
		name   string
		reply  string
		action entity.Action
		target string
	}{
		{"search query", `{"action":"search","query":"weather in Oslo"}`, entity.ActionSearch, "weather in Oslo"},
		{"close", `{"action":"CLOSE","application":" spotify "}`, entity.ActionClose, "spotify"},
		{"target alias", `{"action":"open","target":"excel"}`, entity.ActionOpen, "excel"},
		{"search via target", `{"action":"search","target":"go generics"}`, entity.ActionSearch, "go generics"},
		{"text around", "Here you go:\n{\"action\":\"open\",\"application\":\"word\"}\nDone.", entity.ActionOpen, "word"},
		{"unknown drops target", `{"action":"unknown","application":"x"}`, entity.ActionUnknown, ""},
		{"missing target", `{"action":"open"}`, entity.ActionOpen, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, err := ParseIntent(tt.reply)
			require.NoError(t, err)
			assert.Equal(t, tt.action, intent.Action)
			assert.Equal(t, tt.target, intent.Target)
		})
	}
}

func TestParseIntent_Parameters(t *testing.T) {
	intent, err := ParseIntent(`{"action":"search","query":"news","parameters":{"limit":3}}`)
	require.NoError(t, err)
	assert.Equal(t, float64(3), intent.Parameters["limit"])
}

func TestParseIntent_NoJSON(t *testing.T) {
	_, err := ParseIntent("} nothing {")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "no JSON"))
}
