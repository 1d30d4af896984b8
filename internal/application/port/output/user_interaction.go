package output

import "context"

type UserInteractionPort interface {
	AskQuestion(ctx context.Context, question string) (string, error)
	ReadCommand(ctx context.Context) (string, error)

	ShowBanner(ctx context.Context)
	ShowResponse(ctx context.Context, response string)
	ShowError(ctx context.Context, err error)
	ShowGoodbye(ctx context.Context)
}
