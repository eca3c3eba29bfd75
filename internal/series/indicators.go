package series

import "math"

// GapFill controls how missing closes inside a moving-average window are
// handled.
type GapFill int

const (
	// GapZeroFill counts a missing close as zero, dragging the average down.
	GapZeroFill GapFill = iota
	// GapSkip averages only the closes actually present in the window.
	GapSkip
)

// ParseGapFill maps the config value onto a mode, defaulting to zero-fill.
func ParseGapFill(v string) GapFill {
	if v == "skip" {
		return GapSkip
	}
	return GapZeroFill
}

// MovingAveragePeriods are the windows computed for every chart response.
var MovingAveragePeriods = []int{5, 10, 20, 30}

// SMA computes a simple moving average over closes. Entries are nil until the
// window has period values behind it (inclusive of the current day). A nil
// close is a gap, resolved per fill. Results are rounded to 3 decimals.
func SMA(closes []*float64, period int, fill GapFill) []*float64 {
	out := make([]*float64, len(closes))
	if period <= 0 {
		return out
	}
	for i := period - 1; i < len(closes); i++ {
		sum := 0.0
		present := 0
		for j := i - period + 1; j <= i; j++ {
			if closes[j] == nil {
				continue
			}
			sum += *closes[j]
			present++
		}
		var avg float64
		switch {
		case fill == GapZeroFill:
			avg = sum / float64(period)
		case present == 0:
			continue
		default:
			avg = sum / float64(present)
		}
		v := math.Round(avg*1000) / 1000
		out[i] = &v
	}
	return out
}
