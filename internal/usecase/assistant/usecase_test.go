package assistant

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"task-launcher/internal/application/port/output"
	"task-launcher/internal/domain/entity"
	"task-launcher/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

type fakeClassifier struct {
	intent entity.Intent
	err    error
	texts  []string
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (entity.Intent, error) {
	f.texts = append(f.texts, text)
	return f.intent, f.err
}

type fakeExecutor struct {
	response string
	intents  []entity.Intent
}

func (f *fakeExecutor) Execute(ctx context.Context, intent entity.Intent) string {
	f.intents = append(f.intents, intent)
	return f.response
}

func TestProcess(t *testing.T) {
	classifier := &fakeClassifier{intent: entity.Intent{Action: entity.ActionOpen, Target: "notepad"}}
	executor := &fakeExecutor{response: "Opening notepad for you."}
	uc := New(classifier, executor, logger.NewNop())

	result, err := uc.Process(context.Background(), "  open notepad ")
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "open notepad", result.Input)
	assert.Equal(t, entity.ActionOpen, result.Intent.Action)
	assert.Equal(t, "Opening notepad for you.", result.Response)
	assert.Equal(t, []string{"open notepad"}, classifier.texts)
	require.Len(t, executor.intents, 1)
}

type loggingClassifier struct{}

func (loggingClassifier) Classify(ctx context.Context, text string) (entity.Intent, error) {
	output.LoggerFrom(ctx, logger.NewNop()).Debug("classifying")
	return entity.Intent{Action: entity.ActionClose, Target: "notepad"}, nil
}

type loggingExecutor struct{}

func (loggingExecutor) Execute(ctx context.Context, intent entity.Intent) string {
	output.LoggerFrom(ctx, logger.NewNop()).Info("executing")
	return "Closed notepad for you."
}

func TestProcess_LogsCarryCommandID(t *testing.T) {
	var buf bytes.Buffer
	uc := New(loggingClassifier{}, loggingExecutor{}, logger.NewWithWriter(&buf, zapcore.DebugLevel))

	result, err := uc.Process(context.Background(), "close notepad")
	require.NoError(t, err)

	var messages []string
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		assert.Equal(t, result.ID, entry["command_id"], entry["message"])
		messages = append(messages, entry["message"].(string))
	}
	assert.Equal(t, []string{"Command received", "classifying", "executing", "Command completed"}, messages)
}

func TestProcess_UniqueIDs(t *testing.T) {
	uc := New(&fakeClassifier{intent: entity.UnknownIntent()}, &fakeExecutor{}, logger.NewNop())

	first, err := uc.Process(context.Background(), "hello")
	require.NoError(t, err)
	second, err := uc.Process(context.Background(), "hello")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestProcess_ClassifierError(t *testing.T) {
	executor := &fakeExecutor{}
	uc := New(&fakeClassifier{err: errors.New("401 unauthorized")}, executor, logger.NewNop())

	result, err := uc.Process(context.Background(), "open chrome")
	require.NoError(t, err)

	assert.Equal(t, entity.ActionUnknown, result.Intent.Action)
	assert.Equal(t, "I couldn't reach the language model: 401 unauthorized", result.Response)
	assert.Empty(t, executor.intents)
}

func TestProcess_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := New(&fakeClassifier{err: context.Canceled}, &fakeExecutor{}, logger.NewNop())

	_, err := uc.Process(ctx, "open chrome")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcess_Empty(t *testing.T) {
	classifier := &fakeClassifier{}
	uc := New(classifier, &fakeExecutor{}, logger.NewNop())

	_, err := uc.Process(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyCommand)
	assert.Empty(t, classifier.texts)
}
