package stages

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/spacesedan/reviewflow/internal/normalize"
	"github.com/spacesedan/reviewflow/internal/stores"
)

const StageNormalizer = "normalizer"

// Normalizer is the first stage: it reads a raw review, derives the clean
// token sequences for both text fields, and writes the augmented record to
// the preprocessed bucket under the same key.
type Normalizer struct {
	tokenizer *normalize.Tokenizer
	resolver  stores.ConfigResolver
	objects   stores.ObjectStore
	tracker   ProcessedTracker
	route     Route
}

func NewNormalizer(tokenizer *normalize.Tokenizer, resolver stores.ConfigResolver, objects stores.ObjectStore, tracker ProcessedTracker) *Normalizer {
	return &Normalizer{
		tokenizer: tokenizer,
		resolver:  resolver,
		objects:   objects,
		tracker:   tracker,
		route:     Routes.Normalizer,
	}
}

func (n *Normalizer) Handle(ctx context.Context, event events.S3Event) (Response, error) {
	if len(event.Records) == 0 {
		return Response{}, fmt.Errorf("[Normalizer] event carries no records")
	}

	var body string
	for _, record := range event.Records {
		bucket := record.S3.Bucket.Name
		key := record.S3.Object.Key

		rec, err := fetchRecord(ctx, n.objects, bucket, key)
		if err != nil {
			return Response{}, err
		}

		target, err := n.resolver.Resolve(ctx, n.route.Output)
		if err != nil {
			return Response{}, err
		}

		rec.SetCleanTokens(n.tokenizer.Clean(rec.Summary), n.tokenizer.Clean(rec.ReviewText))

		if err := storeRecord(ctx, n.objects, target, key, rec); err != nil {
			return Response{}, err
		}
		markProcessed(ctx, n.tracker, StageNormalizer, key)

		slog.Info("[Normalizer] Stored preprocessed review",
			slog.String("bucket", target),
			slog.String("key", key),
			slog.Int("summary_tokens", len(rec.CleanSummary)),
			slog.Int("review_tokens", len(rec.CleanReviewText)))

		body = fmt.Sprintf("Preprocessed review stored in %s/%s", target, key)
	}

	return okResponse(body), nil
}
