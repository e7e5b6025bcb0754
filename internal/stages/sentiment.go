package stages

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/spacesedan/reviewflow/internal/sentiment"
	"github.com/spacesedan/reviewflow/internal/stores"
)

const StageSentiment = "sentiment"

// SentimentAnalysis is the terminal stage: it labels the review's sentiment,
// writes the fully annotated record, and upserts a denormalized summary row
// for reporting. The upsert replaces the whole row by reviewer key, so
// redelivery leaves the table unchanged.
type SentimentAnalysis struct {
	analyzer   *sentiment.Analyzer
	resolver   stores.ConfigResolver
	objects    stores.ObjectStore
	aggregates stores.AggregateStore
	tracker    ProcessedTracker
	route      Route
}

func NewSentimentAnalysis(analyzer *sentiment.Analyzer, resolver stores.ConfigResolver, objects stores.ObjectStore, aggregates stores.AggregateStore, tracker ProcessedTracker) *SentimentAnalysis {
	return &SentimentAnalysis{
		analyzer:   analyzer,
		resolver:   resolver,
		objects:    objects,
		aggregates: aggregates,
		tracker:    tracker,
		route:      Routes.Sentiment,
	}
}

func (s *SentimentAnalysis) Handle(ctx context.Context, event events.S3Event) (Response, error) {
	if len(event.Records) == 0 {
		return Response{}, fmt.Errorf("[SentimentAnalysis] event carries no records")
	}

	var body string
	for _, record := range event.Records {
		bucket := record.S3.Bucket.Name
		key := record.S3.Object.Key

		rec, err := fetchRecord(ctx, s.objects, bucket, key)
		if err != nil {
			return Response{}, err
		}

		score, label := s.analyzer.Score(rec.CleanText())
		rec.SetSentiment(label)

		target, err := s.resolver.Resolve(ctx, s.route.Output)
		if err != nil {
			return Response{}, err
		}
		if err := storeRecord(ctx, s.objects, target, key, rec); err != nil {
			return Response{}, err
		}

		table, err := s.resolver.Resolve(ctx, s.route.Table)
		if err != nil {
			return Response{}, err
		}
		if err := s.aggregates.UpsertRow(ctx, table, rec.SummaryFields()); err != nil {
			return Response{}, err
		}
		markProcessed(ctx, s.tracker, StageSentiment, key)

		slog.Info("[SentimentAnalysis] Stored analyzed review",
			slog.String("bucket", target),
			slog.String("key", key),
			slog.String("sentiment", label),
			slog.Float64("compound", score))

		body = fmt.Sprintf("Sentiment '%s' stored in %s/%s", label, target, key)
	}

	return okResponse(body), nil
}
