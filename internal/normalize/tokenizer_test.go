package normalize_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacesedan/reviewflow/internal/normalize"
)

func TestClean(t *testing.T) {
	tokenizer := normalize.NewTokenizer([]string{"the", "a"})

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: []string{}},
		{name: "stopwords and digits", input: "The Quick fox2 a", want: []string{"quick", "fox"}},
		{name: "punctuation separates", input: "Great!! Really-good.", want: []string{"great", "really", "good"}},
		{name: "single letters dropped", input: "I b c okay", want: []string{"okay"}},
		{name: "order preserved", input: "bad then good then bad", want: []string{"bad", "then", "good", "then", "bad"}},
		{name: "stopword case insensitive", input: "THE THEATER", want: []string{"theater"}},
		{name: "digits only", input: "12345 67", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tokenizer.Clean(tt.input))
		})
	}
}

func TestCleanDeterministic(t *testing.T) {
	tokenizer := normalize.NewTokenizer([]string{"the"})
	input := "The product broke after two days, 0/10 would NOT buy again!"

	first := tokenizer.Clean(input)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, tokenizer.Clean(input))
	}
}

func TestNewTokenizerFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stopwords.txt")
	require.NoError(t, os.WriteFile(path, []byte("the\nA\n\nand\n"), 0o644))

	tokenizer, err := normalize.NewTokenizerFromFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"quick", "fox"}, tokenizer.Clean("The Quick fox2 a"))
}

func TestNewTokenizerFromFileMissing(t *testing.T) {
	_, err := normalize.NewTokenizerFromFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}
