package stages

// Configuration names the stages resolve at invocation time.
const (
	ParamPreprocessed      = "preprocessed"
	ParamProfanityChecked  = "profanity_checked"
	ParamProfanityTable    = "profanity_table"
	ParamSentimentAnalyzed = "sentiment_analyzed"
	ParamSentimentTable    = "sentiment_table"
)

// Route declares where a stage writes: the configuration name of its output
// bucket and, for stages with a side effect, of its aggregate table.
type Route struct {
	Output string
	Table  string
}

// Routes is the whole pipeline topology in one place. Object notifications on
// a stage's resolved Output bucket are what trigger the next stage, so the
// chain is exactly this table read top to bottom.
var Routes = struct {
	Normalizer Route
	Profanity  Route
	Sentiment  Route
}{
	Normalizer: Route{Output: ParamPreprocessed},
	Profanity:  Route{Output: ParamProfanityChecked, Table: ParamProfanityTable},
	Sentiment:  Route{Output: ParamSentimentAnalyzed, Table: ParamSentimentTable},
}
