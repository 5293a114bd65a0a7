package predictor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want prediction
	}{
		{"bare", `{"predicted_date":"2025-03-06T14:00:00Z","reasoning":"holds"}`,
			prediction{PredictedDate: "2025-03-06T14:00:00Z", Reasoning: "holds"}},
		{"fenced", "```json\n{\"predicted_date\":\"2025-03-06T14:00:00Z\",\"reasoning\":\"x\"}\n```",
			prediction{PredictedDate: "2025-03-06T14:00:00Z", Reasoning: "x"}},
		{"prose around", "Sure! Here it is: {\"predicted_date\":\"2025-03-06T14:00:00Z\",\"reasoning\":\"brace } in text\"} hope that helps",
			prediction{PredictedDate: "2025-03-06T14:00:00Z", Reasoning: "brace } in text"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON[prediction](tt.raw, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSON_Errors(t *testing.T) {
	_, err := ExtractJSON[prediction]("no json here", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)

	_, err = ExtractJSON[prediction](`{"predicted_date": 12`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)

	_, err = ExtractJSON[prediction](`{"predicted_date": 12}`, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput, "type mismatch")

	_, err = ExtractJSON(`{"predicted_date":"soon"}`, func(prediction) error { return errors.New("nope") })
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestValidPrediction(t *testing.T) {
	assert.NoError(t, validPrediction(prediction{PredictedDate: "2025-03-06T14:00:00+03:00"}))
	assert.Error(t, validPrediction(prediction{}))
	assert.Error(t, validPrediction(prediction{PredictedDate: "March 6th"}))
}
