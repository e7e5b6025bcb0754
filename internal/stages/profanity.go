package stages

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/spacesedan/reviewflow/internal/models"
	"github.com/spacesedan/reviewflow/internal/profanity"
	"github.com/spacesedan/reviewflow/internal/stores"
)

const StageProfanityCheck = "profanity-check"

// ProfanityCheck is the second stage: it flags profane reviews and tallies a
// per-reviewer counter in the aggregate store.
//
// The counter is a relative ADD, so a redelivered notification increments it
// again. bad_review_count is an at-least-once tally, not an exact count.
type ProfanityCheck struct {
	detector   *profanity.Detector
	resolver   stores.ConfigResolver
	objects    stores.ObjectStore
	aggregates stores.AggregateStore
	tracker    ProcessedTracker
	route      Route
}

func NewProfanityCheck(detector *profanity.Detector, resolver stores.ConfigResolver, objects stores.ObjectStore, aggregates stores.AggregateStore, tracker ProcessedTracker) *ProfanityCheck {
	return &ProfanityCheck{
		detector:   detector,
		resolver:   resolver,
		objects:    objects,
		aggregates: aggregates,
		tracker:    tracker,
		route:      Routes.Profanity,
	}
}

func (p *ProfanityCheck) Handle(ctx context.Context, event events.S3Event) (Response, error) {
	if len(event.Records) == 0 {
		return Response{}, fmt.Errorf("[ProfanityCheck] event carries no records")
	}

	var body string
	for _, record := range event.Records {
		bucket := record.S3.Bucket.Name
		key := record.S3.Object.Key

		rec, err := fetchRecord(ctx, p.objects, bucket, key)
		if err != nil {
			return Response{}, err
		}

		hasProfanity := p.detector.IsProfane(rec.CleanText())
		rec.SetHasProfanity(hasProfanity)

		target, err := p.resolver.Resolve(ctx, p.route.Output)
		if err != nil {
			return Response{}, err
		}
		if err := storeRecord(ctx, p.objects, target, key, rec); err != nil {
			return Response{}, err
		}

		if hasProfanity {
			table, err := p.resolver.Resolve(ctx, p.route.Table)
			if err != nil {
				return Response{}, err
			}
			if err := p.aggregates.IncrementCounter(ctx, table, rec.ReviewerKey(), models.BadReviewCountField, 1); err != nil {
				return Response{}, err
			}
			slog.Info("[ProfanityCheck] Incremented bad review count",
				slog.String("reviewer", rec.ReviewerKey()),
				slog.String("table", table))
		}
		markProcessed(ctx, p.tracker, StageProfanityCheck, key)

		slog.Info("[ProfanityCheck] Stored checked review",
			slog.String("bucket", target),
			slog.String("key", key),
			slog.Bool("has_profanity", hasProfanity))

		body = fmt.Sprintf("Profanity check complete. Stored in %s/%s.", target, key)
	}

	return okResponse(body), nil
}
