// Package gemini implements the analysis.Analyzer interface using Google's
// Gemini API.
package gemini

// promptData represents the data passed to the prompt template
type promptData struct {
	EntryText string
}

// ResponseSchema represents the expected structure of an analysis result
// returned by the Gemini API.
type ResponseSchema struct {
	// Sentiment is the overall sentiment label: positive, negative, neutral or mixed
	Sentiment string `json:"sentiment"`

	// Score is the sentiment intensity in [-1, 1]
	Score float64 `json:"score"`

	// Keywords are notable emotional themes found in the entry
	Keywords []string `json:"keywords,omitempty"`

	// Suggestions are short wellbeing suggestions derived from the entry
	Suggestions []string `json:"suggestions,omitempty"`
}
