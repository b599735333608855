package ai

import (
	"context"

	"github.com/bryanwahyu/didim-interview/internal/domain/evaluation"
)

// Coach writes a short free-text coaching note for a finished evaluation.
type Coach interface {
	Narrate(ctx context.Context, res *evaluation.Result) (string, error)
}
