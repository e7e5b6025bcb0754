package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spacesedan/reviewflow/config"
	"github.com/spacesedan/reviewflow/internal/clients"
	"github.com/spacesedan/reviewflow/internal/logging"
	"github.com/spacesedan/reviewflow/internal/models"
	"github.com/spacesedan/reviewflow/internal/stores"
)

// review-uploader drops a raw review JSON file into the intake bucket, which
// kicks off the normalizer via the bucket's object-created notification.
func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	bucket := flag.String("bucket", "", "intake bucket the normalizer listens on")
	key := flag.String("key", "", "object key for the review (defaults to the file name)")
	flag.Parse()

	if *bucket == "" || flag.NArg() != 1 {
		slog.Error("[ReviewUploader] usage: review-uploader -bucket <intake-bucket> [-key <key>] <review.json>")
		os.Exit(1)
	}

	path := flag.Arg(0)
	body, err := os.ReadFile(path)
	if err != nil {
		slog.Error("[ReviewUploader] Failed to read review file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reject files the normalizer would fail on before they enter the chain.
	var rec models.ReviewRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		slog.Error("[ReviewUploader] Review file is not a valid record", slog.String("error", err.Error()))
		os.Exit(1)
	}

	objectKey := *key
	if objectKey == "" {
		objectKey = filepath.Base(path)
	}

	objects := stores.NewS3ObjectStore(clients.GetS3Client())
	if err := objects.Put(context.Background(), *bucket, objectKey, body); err != nil {
		slog.Error("[ReviewUploader] Upload failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("[ReviewUploader] Review uploaded",
		slog.String("bucket", *bucket),
		slog.String("key", objectKey),
		slog.String("reviewer", rec.ReviewerKey()))
}
