package domain

import "strings"

// Sentiment is the mood classification attached to a generated document.
type Sentiment string

// Canonical sentiment labels. The AI provider emits one of these on a
// trailing "SENTIMENT: <label>" line.
const (
	SentimentVeryHappy Sentiment = "Very Happy"
	SentimentHappy     Sentiment = "Happy"
	SentimentNeutral   Sentiment = "Neutral"
	SentimentSad       Sentiment = "Sad"
	SentimentVerySad   Sentiment = "Very Sad"
)

// Sentiments lists all canonical labels in positive-to-negative order.
func Sentiments() []Sentiment {
	return []Sentiment{
		SentimentVeryHappy,
		SentimentHappy,
		SentimentNeutral,
		SentimentSad,
		SentimentVerySad,
	}
}

// IsValid returns true if the sentiment is one of the canonical labels.
func (s Sentiment) IsValid() bool {
	switch s {
	case SentimentVeryHappy, SentimentHappy, SentimentNeutral, SentimentSad, SentimentVerySad:
		return true
	default:
		return false
	}
}

// String returns the canonical label.
func (s Sentiment) String() string {
	return string(s)
}

// ParseSentiment matches a raw label against the canonical set,
// case-insensitively. Returns the canonical casing and true on a match,
// SentimentNeutral and false otherwise.
func ParseSentiment(raw string) (Sentiment, bool) {
	normalised := strings.ToLower(strings.TrimSpace(raw))
	for _, s := range Sentiments() {
		if strings.ToLower(string(s)) == normalised {
			return s, true
		}
	}
	return SentimentNeutral, false
}
