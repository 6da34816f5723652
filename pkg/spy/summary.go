package spy

import "math"

// Summary aggregates a set of captured entries for reporting.
type Summary struct {
	// TotalRequests is the number of entries.
	TotalRequests int `json:"totalRequests"`

	// SuccessfulRequests is TotalRequests minus FailedRequests.
	SuccessfulRequests int `json:"successfulRequests"`

	// FailedRequests counts entries that errored or completed with a
	// status of 400 or above.
	FailedRequests int `json:"failedRequests"`

	// AvgDuration is the arithmetic mean of all present response durations
	// in milliseconds, rounded to the nearest integer. 0 when no entry has
	// a response.
	AvgDuration int64 `json:"avgDuration"`

	// MinDuration and MaxDuration are taken over the same duration set,
	// 0 when it is empty.
	MinDuration int64 `json:"minDuration"`
	MaxDuration int64 `json:"maxDuration"`
}

// Summarize computes the report summary over entries.
func Summarize(entries []*CapturedEntry) Summary {
	s := Summary{TotalRequests: len(entries)}

	var durations []int64
	for _, e := range entries {
		if e.Failed() {
			s.FailedRequests++
		}
		if d, ok := e.Duration(); ok {
			durations = append(durations, d)
		}
	}
	s.SuccessfulRequests = s.TotalRequests - s.FailedRequests

	if len(durations) == 0 {
		return s
	}

	var sum int64
	s.MinDuration = durations[0]
	s.MaxDuration = durations[0]
	for _, d := range durations {
		sum += d
		if d < s.MinDuration {
			s.MinDuration = d
		}
		if d > s.MaxDuration {
			s.MaxDuration = d
		}
	}
	s.AvgDuration = int64(math.Round(float64(sum) / float64(len(durations))))

	return s
}
