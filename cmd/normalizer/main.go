package main

import (
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/spacesedan/reviewflow/config"
	"github.com/spacesedan/reviewflow/internal/clients"
	"github.com/spacesedan/reviewflow/internal/logging"
	"github.com/spacesedan/reviewflow/internal/normalize"
	"github.com/spacesedan/reviewflow/internal/stages"
	"github.com/spacesedan/reviewflow/internal/stores"
)

var handler *stages.Normalizer

// init runs once per Lambda cold start.
func init() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	stopwordsFile := os.Getenv("STOPWORDS_FILE")
	if stopwordsFile == "" {
		stopwordsFile = "stopwords.txt"
	}
	tokenizer, err := normalize.NewTokenizerFromFile(stopwordsFile)
	if err != nil {
		slog.Error("[Normalizer] Failed to load stopwords", slog.String("error", err.Error()))
		panic(err)
	}

	var tracker stages.ProcessedTracker
	if vc := clients.InitValkey(); vc != nil {
		tracker = vc
	}

	handler = stages.NewNormalizer(
		tokenizer,
		stores.NewSSMResolver(clients.GetSSMClient()),
		stores.NewS3ObjectStore(clients.GetS3Client()),
		tracker,
	)
	slog.Info("[Normalizer] Initialization complete", slog.String("environment", env))
}

func main() {
	lambda.Start(handler.Handle)
}
