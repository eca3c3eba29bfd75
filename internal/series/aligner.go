package series

import (
	"sort"

	"stocksim/internal/models"
	"stocksim/internal/quote"
)

// Point is one charted day: a validated bar, its moving averages, and the
// checkpoint landing on that day, if any.
type Point struct {
	quote.Bar
	MA5        *float64           `json:"ma5"`
	MA10       *float64           `json:"ma10"`
	MA20       *float64           `json:"ma20"`
	MA30       *float64           `json:"ma30"`
	Checkpoint *models.Checkpoint `json:"checkpoint,omitempty"`
}

// Align sorts bars chronologically and attaches checkpoints by date. When
// several checkpoints share a date the last one wins. The result always has
// exactly one point per input bar.
func Align(bars []quote.Bar, checkpoints []models.Checkpoint) []Point {
	byDate := make(map[string]*models.Checkpoint, len(checkpoints))
	for i := range checkpoints {
		byDate[checkpoints[i].CheckpointDate] = &checkpoints[i]
	}

	points := make([]Point, len(bars))
	for i, b := range bars {
		points[i] = Point{Bar: b, Checkpoint: byDate[b.Date]}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// AttachMovingAverages computes the standard windows over the aligned closes
// and writes them onto the points in place.
func AttachMovingAverages(points []Point, fill GapFill) {
	closes := make([]*float64, len(points))
	for i := range points {
		c := points[i].Close
		closes[i] = &c
	}
	for _, period := range MovingAveragePeriods {
		ma := SMA(closes, period, fill)
		for i := range points {
			switch period {
			case 5:
				points[i].MA5 = ma[i]
			case 10:
				points[i].MA10 = ma[i]
			case 20:
				points[i].MA20 = ma[i]
			case 30:
				points[i].MA30 = ma[i]
			}
		}
	}
}
