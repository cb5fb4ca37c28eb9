package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentiment_IsValid(t *testing.T) {
	for _, s := range Sentiments() {
		assert.True(t, s.IsValid(), "%s should be valid", s)
	}
	assert.False(t, Sentiment("Ecstatic").IsValid())
	assert.False(t, Sentiment("").IsValid())
}

func TestParseSentiment(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Sentiment
		wantOK  bool
	}{
		{"canonical casing", "Happy", SentimentHappy, true},
		{"lowercase", "happy", SentimentHappy, true},
		{"uppercase", "VERY SAD", SentimentVerySad, true},
		{"surrounding space", "  Neutral ", SentimentNeutral, true},
		{"two word label", "very happy", SentimentVeryHappy, true},
		{"unknown label", "angry", SentimentNeutral, false},
		{"empty", "", SentimentNeutral, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSentiment(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
