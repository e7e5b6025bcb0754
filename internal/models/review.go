package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// UnknownReviewer is the sentinel identity used when a record carries no
	// reviewerID (or no asin) of its own.
	UnknownReviewer = "unknown"

	// BadReviewCountField is the counter attribute incremented per reviewer
	// whenever one of their reviews is flagged as profane.
	BadReviewCountField = "bad_review_count"
)

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// ReviewRecord is the single unit flowing through the pipeline. Records enter
// as JSON written by the review source; fields this pipeline does not
// interpret are carried through every stage untouched, and each stage only
// ever adds fields, it never removes or rewrites one.
type ReviewRecord struct {
	ReviewerID     string
	Asin           string
	Summary        string
	ReviewText     string
	Overall        float64
	UnixReviewTime int64

	CleanSummary    []string // set by the normalizer; nil until then
	CleanReviewText []string
	HasProfanity    *bool  // set by the profanity check; nil until then
	Sentiment       string // set by sentiment analysis; empty until then

	// fields is the authoritative record mapping, including origin fields the
	// typed accessors above do not cover.
	fields map[string]json.RawMessage
}

func (r *ReviewRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("review record is not a JSON object: %w", err)
	}

	rec := ReviewRecord{fields: raw}
	for key, dst := range map[string]any{
		"reviewerID":       &rec.ReviewerID,
		"asin":             &rec.Asin,
		"summary":          &rec.Summary,
		"reviewText":       &rec.ReviewText,
		"overall":          &rec.Overall,
		"unixReviewTime":   &rec.UnixReviewTime,
		"clean_summary":    &rec.CleanSummary,
		"clean_reviewText": &rec.CleanReviewText,
		"has_profanity":    &rec.HasProfanity,
		"sentiment":        &rec.Sentiment,
	} {
		v, ok := raw[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("review record field %q: %w", key, err)
		}
	}

	*r = rec
	return nil
}

func (r ReviewRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.fields)+4)
	if r.fields != nil {
		for k, v := range r.fields {
			out[k] = v
		}
	} else {
		// Record was built in code rather than decoded from the wire.
		for key, val := range map[string]any{
			"reviewerID":     r.ReviewerID,
			"asin":           r.Asin,
			"summary":        r.Summary,
			"reviewText":     r.ReviewText,
			"overall":        r.Overall,
			"unixReviewTime": r.UnixReviewTime,
		} {
			raw, err := json.Marshal(val)
			if err != nil {
				return nil, err
			}
			out[key] = raw
		}
		for key, val := range map[string]any{
			"clean_summary":    r.CleanSummary,
			"clean_reviewText": r.CleanReviewText,
		} {
			if val.([]string) == nil {
				continue
			}
			raw, err := json.Marshal(val)
			if err != nil {
				return nil, err
			}
			out[key] = raw
		}
		if r.HasProfanity != nil {
			out["has_profanity"], _ = json.Marshal(*r.HasProfanity)
		}
		if r.Sentiment != "" {
			out["sentiment"], _ = json.Marshal(r.Sentiment)
		}
	}
	return json.Marshal(out)
}

func (r *ReviewRecord) setField(key string, val any) {
	raw, err := json.Marshal(val)
	if err != nil {
		// only called with strings, bools and string slices
		panic(fmt.Errorf("marshal record field %q: %w", key, err))
	}
	if r.fields == nil {
		r.fields = make(map[string]json.RawMessage)
	}
	r.fields[key] = raw
}

// SetCleanTokens records the normalizer's output. Non-nil empty slices keep
// the fields present on the wire even when all tokens were filtered out.
func (r *ReviewRecord) SetCleanTokens(summary, reviewText []string) {
	if summary == nil {
		summary = []string{}
	}
	if reviewText == nil {
		reviewText = []string{}
	}
	r.CleanSummary = summary
	r.CleanReviewText = reviewText
	r.setField("clean_summary", summary)
	r.setField("clean_reviewText", reviewText)
}

func (r *ReviewRecord) SetHasProfanity(v bool) {
	r.HasProfanity = &v
	r.setField("has_profanity", v)
}

func (r *ReviewRecord) SetSentiment(label string) {
	r.Sentiment = label
	r.setField("sentiment", label)
}

// CleanText joins both clean token sequences with single spaces, the exact
// input handed to the profanity and sentiment classifiers. Absent sequences
// act as empty.
func (r *ReviewRecord) CleanText() string {
	tokens := make([]string, 0, len(r.CleanSummary)+len(r.CleanReviewText))
	tokens = append(tokens, r.CleanSummary...)
	tokens = append(tokens, r.CleanReviewText...)
	return strings.Join(tokens, " ")
}

func (r *ReviewRecord) ReviewerKey() string {
	if r.ReviewerID == "" {
		return UnknownReviewer
	}
	return r.ReviewerID
}

func (r *ReviewRecord) ItemKey() string {
	if r.Asin == "" {
		return UnknownReviewer
	}
	return r.Asin
}

// SummaryFields is the denormalized row the terminal stage upserts into the
// aggregate table, keyed by reviewer.
func (r *ReviewRecord) SummaryFields() map[string]any {
	return map[string]any{
		"reviewerID":    r.ReviewerKey(),
		"asin":          r.ItemKey(),
		"sentiment":     r.Sentiment,
		"has_profanity": r.HasProfanity != nil && *r.HasProfanity,
		"timestamp":     r.UnixReviewTime,
		"overall":       r.Overall,
	}
}
