package profanity

import (
	goaway "github.com/TwiN/go-away"
)

// Detector answers whether a piece of cleaned review text contains profanity.
// Built once at cold start with the library's default wordlist and injected
// into the stage, so tests can run it against fixed inputs.
type Detector struct {
	detector *goaway.ProfanityDetector
}

func NewDetector() *Detector {
	return &Detector{detector: goaway.NewProfanityDetector()}
}

func (d *Detector) IsProfane(text string) bool {
	return d.detector.IsProfane(text)
}
