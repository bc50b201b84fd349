// Package forecast reduces the raw 3-hour forecast series into one
// representative sample per calendar day.
package forecast

import (
	"time"

	"github.com/firmanfarelrichardo/weather-dashboard/internal/weather"
)

// MaxDays bounds the daily forecast length.
const MaxDays = 5

// Calendar days are computed in local time of the given zone; the noon
// window is hours 11..15 inclusive.
const (
	noonWindowStart = 11
	noonWindowEnd   = 15
)

// Bucketize picks at most MaxDays representative samples from a
// chronological 3-hour series, one per calendar day in loc's local time.
//
// Two passes per day: prefer the first sample whose hour falls in the noon
// window; when a day has none, fall back to that day's earliest sample.
// Days keep their chronological order and are never padded.
func Bucketize(samples []weather.ForecastSample, loc *time.Location) []weather.ForecastSample {
	if len(samples) == 0 {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}

	type bucket struct {
		noon     *weather.ForecastSample
		earliest *weather.ForecastSample
	}

	var order []string
	buckets := make(map[string]*bucket)

	for i := range samples {
		s := &samples[i]
		ts := time.Unix(s.EpochSeconds, 0).In(loc)
		day := ts.Format("2006-01-02")

		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
			order = append(order, day)
		}

		if b.earliest == nil {
			b.earliest = s
		}
		hour := ts.Hour()
		if b.noon == nil && hour >= noonWindowStart && hour <= noonWindowEnd {
			b.noon = s
		}
	}

	daily := make([]weather.ForecastSample, 0, MaxDays)
	for _, day := range order {
		if len(daily) == MaxDays {
			break
		}
		b := buckets[day]
		if b.noon != nil {
			daily = append(daily, *b.noon)
		} else {
			daily = append(daily, *b.earliest)
		}
	}
	return daily
}
