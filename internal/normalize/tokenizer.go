package normalize

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[a-z]+`)

// Tokenizer turns raw review text into clean token sequences: lowercased,
// alphabetic runs only, stopwords and single-letter tokens dropped, source
// order preserved. It is built once at cold start and safe for concurrent use.
type Tokenizer struct {
	stopwords map[string]struct{}
}

func NewTokenizer(stopwords []string) *Tokenizer {
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return &Tokenizer{stopwords: set}
}

// NewTokenizerFromFile loads a stopword list with one word per line, the
// format the stopword file ships in alongside the normalizer binary.
func NewTokenizerFromFile(path string) (*Tokenizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("[Tokenizer] failed to open stopword file: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("[Tokenizer] failed to read stopword file: %w", err)
	}
	return NewTokenizer(words), nil
}

// Clean extracts the surviving tokens from text. Digits and punctuation act
// as separators, so "fox2" yields the token "fox".
func (t *Tokenizer) Clean(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) <= 1 {
			continue
		}
		if _, stop := t.stopwords[w]; stop {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}
