package series

import (
	"fmt"

	"github.com/shopspring/decimal"

	"stocksim/internal/models"
)

// Overlay is a horizontal line drawn across the whole chart for one sell
// condition.
type Overlay struct {
	Label  string    `json:"label"`
	Value  float64   `json:"value"`
	Points []float64 `json:"points"`
}

// SellOverlays turns active sell price conditions into constant series
// spanning n points. Buy conditions, non-price metrics, and conditions whose
// value does not parse as a decimal are skipped.
func SellOverlays(conditions []models.Condition, n int) []Overlay {
	overlays := make([]Overlay, 0)
	idx := 0
	for _, cond := range conditions {
		if cond.Type != models.ConditionTypeSell || cond.Metric != models.ConditionMetricPrice || !cond.IsActive {
			continue
		}
		value, err := decimal.NewFromString(cond.Value)
		if err != nil {
			continue
		}
		idx++
		v, _ := value.Float64()
		points := make([]float64, n)
		for i := range points {
			points[i] = v
		}
		overlays = append(overlays, Overlay{
			Label:  fmt.Sprintf("sell %d: %s", idx, cond.Value),
			Value:  v,
			Points: points,
		})
	}
	return overlays
}
