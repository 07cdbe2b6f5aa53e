package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBestMatch_PicksMaxScore(t *testing.T) {
	res, err := BestMatch([]float32{0.1, 0.8743, 0.02}, []string{"cat", "dog", "car"})
	require.NoError(t, err)
	require.Equal(t, "dog", res.Label)
	require.InDelta(t, 87.43, res.Probability, 0.001)
	require.Equal(t, "87.43", res.ProbabilityString())
}

func TestBestMatch_TieGoesToFirstIndex(t *testing.T) {
	res, err := BestMatch([]float32{0.2, 0.4, 0.4}, []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Equal(t, "b", res.Label)
}

func TestBestMatch_NoRenormalization(t *testing.T) {
	res, err := BestMatch([]float32{3, 1}, []string{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, float32(300), res.Probability)
}

func TestBestMatch_Errors(t *testing.T) {
	_, err := BestMatch([]float32{1}, nil)
	require.ErrorIs(t, err, ErrEmptyVocabulary)

	_, err = BestMatch(nil, []string{"a"})
	require.ErrorIs(t, err, ErrLabelOutOfRange)

	res, err := BestMatch([]float32{0.1, 0.9}, []string{"a"})
	require.ErrorIs(t, err, ErrLabelOutOfRange)
	require.True(t, res.IsFallback())
}

func TestClassificationResult_Summary(t *testing.T) {
	require.Equal(t, "BEST MATCH: NA (0.00% likely)", FallbackResult().Summary())

	res := ClassificationResult{Label: "tabby", Probability: 87.4321}
	require.Equal(t, "BEST MATCH: tabby (87.43% likely)", res.Summary())
}

func TestClassificationResult_ProbabilityString(t *testing.T) {
	tests := []struct {
		probability float32
		want        string
	}{
		{87.43, "87.43"},
		{87.0, "87.0"},
		{100.0, "100.0"},
		{0, "0.0"},
		{0.5, "0.5"},
		{0.001, "0.001"},
		{5e-5, "5.0E-5"},
		{1.5e-4, "1.5E-4"},
		{1e7, "1.0E7"},
		{12345678, "1.2345678E7"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			res := ClassificationResult{Label: "tabby", Probability: tt.probability}
			require.Equal(t, tt.want, res.ProbabilityString())
		})
	}
}

func TestBestMatch_WholeNumberProbability(t *testing.T) {
	res, err := BestMatch([]float32{1.0, 0}, []string{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, "100.0", res.ProbabilityString())

	res, err = BestMatch([]float32{0.87, 0.1}, []string{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, "87.0", res.ProbabilityString())
}
