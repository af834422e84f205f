package gemini

import (
	"testing"

	"github.com/MaharajTanim/apricity/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	t.Parallel()

	t.Run("plain_json", func(t *testing.T) {
		t.Parallel()

		schema, err := parseResponse(`{"sentiment":"positive","score":0.7,"keywords":["gratitude"],"suggestions":["keep journaling"]}`)
		require.NoError(t, err)
		assert.Equal(t, "positive", schema.Sentiment)
		assert.InDelta(t, 0.7, schema.Score, 0.0001)
		assert.Equal(t, []string{"gratitude"}, schema.Keywords)
		assert.Equal(t, []string{"keep journaling"}, schema.Suggestions)
	})

	t.Run("fenced_json", func(t *testing.T) {
		t.Parallel()

		schema, err := parseResponse("```json\n{\"sentiment\":\"negative\",\"score\":-0.4}\n```")
		require.NoError(t, err)
		assert.Equal(t, "negative", schema.Sentiment)
		assert.InDelta(t, -0.4, schema.Score, 0.0001)
	})

	t.Run("empty_text", func(t *testing.T) {
		t.Parallel()

		_, err := parseResponse("   ")
		assert.ErrorIs(t, err, analysis.ErrInvalidResponse)
	})

	t.Run("malformed_json", func(t *testing.T) {
		t.Parallel()

		_, err := parseResponse("the user seems happy today")
		assert.ErrorIs(t, err, analysis.ErrInvalidResponse)
	})

	t.Run("missing_sentiment", func(t *testing.T) {
		t.Parallel()

		_, err := parseResponse(`{"score":0.2}`)
		assert.ErrorIs(t, err, analysis.ErrInvalidResponse)
	})
}
