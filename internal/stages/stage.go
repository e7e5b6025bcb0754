package stages

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spacesedan/reviewflow/internal/models"
	"github.com/spacesedan/reviewflow/internal/stores"
)

// Response is what every stage hands back to the invocation mechanism: a
// status code plus a short human-readable message.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

func okResponse(body string) Response {
	return Response{StatusCode: 200, Body: body}
}

// ProcessedTracker marks record keys a stage has finished, for tracing a
// record's journey through the chain. Marking is best effort and never gates
// or fails an invocation.
type ProcessedTracker interface {
	MarkProcessed(ctx context.Context, stage, key string) error
}

func fetchRecord(ctx context.Context, objects stores.ObjectStore, bucket, key string) (models.ReviewRecord, error) {
	var rec models.ReviewRecord

	body, err := objects.Get(ctx, bucket, key)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(body, &rec); err != nil {
		return rec, fmt.Errorf("[Stage] malformed record %s/%s: %w", bucket, key, err)
	}
	return rec, nil
}

func storeRecord(ctx context.Context, objects stores.ObjectStore, bucket, key string, rec models.ReviewRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("[Stage] failed to encode record %s: %w", key, err)
	}
	return objects.Put(ctx, bucket, key, body)
}

func markProcessed(ctx context.Context, tracker ProcessedTracker, stage, key string) {
	if tracker == nil {
		return
	}
	if err := tracker.MarkProcessed(ctx, stage, key); err != nil {
		slog.Warn("[Stage] failed to mark record processed",
			slog.String("stage", stage),
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}
