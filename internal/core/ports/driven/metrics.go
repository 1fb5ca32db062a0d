package driven

import "time"

// MetricsRecorder receives counters and timings from the tagging workflow.
// Implementations must be safe for concurrent use.
type MetricsRecorder interface {
	// KeywordMerged counts one keyword merge attempt by outcome ("added" or "duplicate").
	KeywordMerged(outcome string)

	// KeywordRemoved counts one keyword removal.
	KeywordRemoved()

	// PersistObserved records a keyword persistence round trip.
	PersistObserved(ok bool, elapsed time.Duration)

	// TaggingSubmitted records a tagging submission and its HTTP status (0 on transport failure).
	TaggingSubmitted(method string, status int)

	// RefreshObserved records a document refresh and the number of rows received.
	RefreshObserved(ok bool, rows int)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) KeywordMerged(string)                {}
func (NopMetrics) KeywordRemoved()                     {}
func (NopMetrics) PersistObserved(bool, time.Duration) {}
func (NopMetrics) TaggingSubmitted(string, int)        {}
func (NopMetrics) RefreshObserved(bool, int)           {}
