package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacesedan/reviewflow/internal/models"
)

func TestUnmarshalKnownFields(t *testing.T) {
	raw := `{"reviewerID":"U1","asin":"A1","summary":"Great!!","reviewText":"works fine","overall":5,"unixReviewTime":1609459200}`

	var rec models.ReviewRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	require.Equal(t, "U1", rec.ReviewerID)
	require.Equal(t, "A1", rec.Asin)
	require.Equal(t, "Great!!", rec.Summary)
	require.Equal(t, "works fine", rec.ReviewText)
	require.Equal(t, 5.0, rec.Overall)
	require.Equal(t, int64(1609459200), rec.UnixReviewTime)
	require.Nil(t, rec.CleanSummary)
	require.Nil(t, rec.HasProfanity)
	require.Empty(t, rec.Sentiment)
}

func TestRoundTripPreservesUnknownFields(t *testing.T) {
	raw := `{"reviewerID":"U1","summary":"ok","helpful":[3,4],"reviewerName":"Pat"}`

	var rec models.ReviewRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	rec.SetCleanTokens([]string{"ok"}, nil)

	out, err := json.Marshal(rec)
	require.NoError(t, err)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &got))
	require.JSONEq(t, `[3,4]`, string(got["helpful"]))
	require.JSONEq(t, `"Pat"`, string(got["reviewerName"]))
	require.JSONEq(t, `["ok"]`, string(got["clean_summary"]))
	require.JSONEq(t, `[]`, string(got["clean_reviewText"]))
}

func TestFieldsAppearOnlyOnceSet(t *testing.T) {
	var rec models.ReviewRecord
	require.NoError(t, json.Unmarshal([]byte(`{"reviewerID":"U1"}`), &rec))

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &got))
	require.NotContains(t, got, "has_profanity")
	require.NotContains(t, got, "sentiment")

	rec.SetHasProfanity(false)
	rec.SetSentiment(models.SentimentNeutral)

	out, err = json.Marshal(rec)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(out, &got))
	require.JSONEq(t, `false`, string(got["has_profanity"]))
	require.JSONEq(t, `"neutral"`, string(got["sentiment"]))
}

func TestDerivedFieldsByteIdenticalOnRerun(t *testing.T) {
	raw := `{"reviewerID":"U1","summary":"Great!!","reviewText":""}`

	var rec models.ReviewRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	rec.SetCleanTokens([]string{"great"}, []string{})
	first, err := json.Marshal(rec)
	require.NoError(t, err)

	// Rerunning the stage over its own output rewrites the same bytes.
	var again models.ReviewRecord
	require.NoError(t, json.Unmarshal(first, &again))
	again.SetCleanTokens([]string{"great"}, []string{})
	second, err := json.Marshal(again)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestMalformedRecord(t *testing.T) {
	var rec models.ReviewRecord
	require.Error(t, json.Unmarshal([]byte(`"just a string"`), &rec))
	require.Error(t, json.Unmarshal([]byte(`{"overall":"five"}`), &rec))
}

func TestCleanText(t *testing.T) {
	var rec models.ReviewRecord
	require.NoError(t, json.Unmarshal([]byte(`{}`), &rec))
	require.Equal(t, "", rec.CleanText())

	rec.SetCleanTokens([]string{"great", "product"}, []string{"works", "well"})
	require.Equal(t, "great product works well", rec.CleanText())
}

func TestSummaryFieldsDefaults(t *testing.T) {
	var rec models.ReviewRecord
	require.NoError(t, json.Unmarshal([]byte(`{"asin":"A1"}`), &rec))
	rec.SetSentiment(models.SentimentNeutral)

	require.Equal(t, map[string]any{
		"reviewerID":    "unknown",
		"asin":          "A1",
		"sentiment":     "neutral",
		"has_profanity": false,
		"timestamp":     int64(0),
		"overall":       0.0,
	}, rec.SummaryFields())
}
