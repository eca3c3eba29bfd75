package series

import (
	"testing"

	"stocksim/internal/models"
	"stocksim/internal/quote"
)

func fp(v float64) *float64 { return &v }

func TestSMA(t *testing.T) {
	closes := []*float64{fp(10), fp(20), fp(30), fp(40), fp(50), fp(60)}

	got := SMA(closes, 5, GapZeroFill)
	for i := 0; i < 4; i++ {
		if got[i] != nil {
			t.Fatalf("expected nil before window fills, got %v at %d", *got[i], i)
		}
	}
	if got[4] == nil || *got[4] != 30 {
		t.Fatalf("expected MA5=30 at index 4, got %v", got[4])
	}
	if got[5] == nil || *got[5] != 40 {
		t.Fatalf("expected MA5=40 at index 5, got %v", got[5])
	}
}

func TestSMARounding(t *testing.T) {
	closes := []*float64{fp(1), fp(2), fp(2)}
	got := SMA(closes, 3, GapZeroFill)
	if got[2] == nil || *got[2] != 1.667 {
		t.Fatalf("expected 1.667, got %v", got[2])
	}
}

func TestSMAGapHandling(t *testing.T) {
	closes := []*float64{fp(10), nil, fp(20)}

	zero := SMA(closes, 3, GapZeroFill)
	if zero[2] == nil || *zero[2] != 10 {
		t.Fatalf("zero-fill: expected 10, got %v", zero[2])
	}

	skip := SMA(closes, 3, GapSkip)
	if skip[2] == nil || *skip[2] != 15 {
		t.Fatalf("skip: expected 15, got %v", skip[2])
	}

	allGaps := SMA([]*float64{nil, nil, nil}, 3, GapSkip)
	if allGaps[2] != nil {
		t.Fatalf("skip over all-gap window: expected nil, got %v", *allGaps[2])
	}
}

func TestAlignAttachesCheckpoints(t *testing.T) {
	bars := []quote.Bar{
		{Date: "2025-03-05", Close: 103},
		{Date: "2025-03-03", Close: 101},
		{Date: "2025-03-04", Close: 102},
	}
	checkpoints := []models.Checkpoint{
		{ID: 1, CheckpointDate: "2025-03-04", CheckpointType: models.CheckpointTypeInitial},
		{ID: 2, CheckpointDate: "2025-03-04", CheckpointType: models.CheckpointTypeManual},
		{ID: 3, CheckpointDate: "2025-03-09", CheckpointType: models.CheckpointTypeManual},
	}

	points := Align(bars, checkpoints)
	if len(points) != len(bars) {
		t.Fatalf("expected %d points, got %d", len(bars), len(points))
	}
	if points[0].Date != "2025-03-03" || points[2].Date != "2025-03-05" {
		t.Fatalf("points not sorted: %s .. %s", points[0].Date, points[2].Date)
	}
	if points[0].Checkpoint != nil || points[2].Checkpoint != nil {
		t.Fatal("unexpected checkpoint on unmarked day")
	}
	if points[1].Checkpoint == nil || points[1].Checkpoint.ID != 2 {
		t.Fatalf("expected last checkpoint for 2025-03-04 to win, got %+v", points[1].Checkpoint)
	}
}

func TestAttachMovingAverages(t *testing.T) {
	bars := make([]quote.Bar, 6)
	for i := range bars {
		bars[i] = quote.Bar{
			Date:  "2025-03-0" + string(rune('1'+i)),
			Close: float64((i + 1) * 10),
		}
	}
	points := Align(bars, nil)
	AttachMovingAverages(points, GapZeroFill)

	if points[3].MA5 != nil {
		t.Fatalf("expected nil MA5 before window fills, got %v", *points[3].MA5)
	}
	if points[4].MA5 == nil || *points[4].MA5 != 30 {
		t.Fatalf("expected MA5=30, got %v", points[4].MA5)
	}
	if points[5].MA5 == nil || *points[5].MA5 != 40 {
		t.Fatalf("expected MA5=40, got %v", points[5].MA5)
	}
	if points[5].MA10 != nil || points[5].MA20 != nil || points[5].MA30 != nil {
		t.Fatal("expected longer windows to stay nil on short series")
	}
}

func TestSellOverlays(t *testing.T) {
	conditions := []models.Condition{
		{Type: models.ConditionTypeBuy, Metric: models.ConditionMetricPrice, Value: "90.00", IsActive: true},
		{Type: models.ConditionTypeSell, Metric: models.ConditionMetricPrice, Value: "150.00", IsActive: true},
		{Type: models.ConditionTypeSell, Metric: "volume", Value: "1000000", IsActive: true},
		{Type: models.ConditionTypeSell, Metric: models.ConditionMetricPrice, Value: "not-a-number", IsActive: true},
		{Type: models.ConditionTypeSell, Metric: models.ConditionMetricPrice, Value: "180.00", IsActive: false},
	}

	overlays := SellOverlays(conditions, 10)
	if len(overlays) != 1 {
		t.Fatalf("expected 1 overlay, got %d", len(overlays))
	}
	ov := overlays[0]
	if ov.Label != "sell 1: 150.00" {
		t.Fatalf("unexpected label: %s", ov.Label)
	}
	if len(ov.Points) != 10 {
		t.Fatalf("expected 10 points, got %d", len(ov.Points))
	}
	for _, p := range ov.Points {
		if p != 150 {
			t.Fatalf("expected constant 150, got %v", p)
		}
	}
}
