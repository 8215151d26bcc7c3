package usecase

import (
	"context"

	"github.com/skylineestates/leaddesk/internal/infra/queue"
)

// FileParser turns an uploaded spreadsheet into raw rows of cell strings.
// The extension decides the decoder; implementations live in infra.
type FileParser interface {
	Rows(filename string, data []byte) ([][]string, error)
}

type QueueProducerInterface interface {
	PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error
}
