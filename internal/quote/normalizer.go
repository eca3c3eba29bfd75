package quote

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"stocksim/internal/client/yahoo"
)

// ErrNoValidData is returned when every fetched bar fails validation.
var ErrNoValidData = errors.New("no valid chart data after filtering")

// Bar is one validated daily OHLCV bar. Date is the UTC trading day in
// YYYY-MM-DD form.
type Bar struct {
	Date      string  `json:"date"`
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
}

const (
	minBarYear = 2000

	// A single bar moving more than 90% open-to-close, or more than 50%
	// against the previous valid close, is treated as feed corruption.
	maxIntradayChange = 0.9
	maxDayOverDayMove = 0.5
)

// Normalize filters the raw parallel arrays of a chart result down to valid
// bars, in chronological order with one bar per trading day (the last entry
// for a duplicated day wins). It returns ErrNoValidData when nothing
// survives.
func Normalize(result *yahoo.ChartResult, now time.Time) ([]Bar, error) {
	if result == nil || len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, ErrNoValidData
	}
	q := result.Indicators.Quote[0]

	// Collapse duplicate UTC days before validating, so a superseded entry
	// never feeds the day-over-day chain.
	lastIdx := make(map[string]int, len(result.Timestamp))
	days := make([]string, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		day := time.Unix(ts, 0).UTC().Format("2006-01-02")
		if _, seen := lastIdx[day]; !seen {
			days = append(days, day)
		}
		lastIdx[day] = i
	}
	sort.Strings(days)

	maxYear := now.Year() + 5
	var prevValidClose *float64
	bars := make([]Bar, 0, len(days))

	for _, day := range days {
		i := lastIdx[day]
		ts := result.Timestamp[i]
		if year := time.Unix(ts, 0).UTC().Year(); year < minBarYear || year > maxYear {
			continue
		}

		open := deref(q.Open, i)
		high := deref(q.High, i)
		low := deref(q.Low, i)
		closeP := deref(q.Close, i)
		if !positive(open) || !positive(high) || !positive(low) || !positive(closeP) {
			continue
		}

		if high < math.Max(open, closeP) || low > math.Min(open, closeP) {
			continue
		}

		if math.Abs(closeP-open)/open > maxIntradayChange {
			continue
		}

		if prevValidClose != nil {
			if math.Abs(closeP-*prevValidClose) / *prevValidClose > maxDayOverDayMove {
				continue
			}
		}

		volume := int64(0)
		if i < len(q.Volume) && q.Volume[i] != nil {
			volume = *q.Volume[i]
		}

		bars = append(bars, Bar{
			Date:      day,
			Timestamp: ts,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     closeP,
			Volume:    volume,
		})
		c := closeP
		prevValidClose = &c
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoValidData, result.Meta.Symbol)
	}
	return bars, nil
}

func deref(arr []*float64, i int) float64 {
	if i >= len(arr) || arr[i] == nil {
		return math.NaN()
	}
	return *arr[i]
}

func positive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
