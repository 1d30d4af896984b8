package output

import (
	"context"

	"task-launcher/internal/domain/entity"
)

type SearchPort interface {
	Search(ctx context.Context, query string) ([]entity.SearchResult, error)
}

type SummarizerPort interface {
	Summarize(ctx context.Context, query string, results []entity.SearchResult) (string, error)
}
