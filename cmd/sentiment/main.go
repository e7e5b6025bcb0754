package main

import (
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/spacesedan/reviewflow/config"
	"github.com/spacesedan/reviewflow/internal/clients"
	"github.com/spacesedan/reviewflow/internal/logging"
	"github.com/spacesedan/reviewflow/internal/sentiment"
	"github.com/spacesedan/reviewflow/internal/stages"
	"github.com/spacesedan/reviewflow/internal/stores"
)

var handler *stages.SentimentAnalysis

// init runs once per Lambda cold start; loading the VADER lexicon here keeps
// it off the per-invocation path.
func init() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	var tracker stages.ProcessedTracker
	if vc := clients.InitValkey(); vc != nil {
		tracker = vc
	}

	handler = stages.NewSentimentAnalysis(
		sentiment.NewAnalyzer(),
		stores.NewSSMResolver(clients.GetSSMClient()),
		stores.NewS3ObjectStore(clients.GetS3Client()),
		stores.NewDynamoDBAggregateStore(clients.GetDynamoDBClient()),
		tracker,
	)
	slog.Info("[SentimentAnalysis] Initialization complete", slog.String("environment", env))
}

func main() {
	lambda.Start(handler.Handle)
}
