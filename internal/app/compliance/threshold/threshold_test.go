// internal/app/compliance/threshold/threshold_test.go
package threshold

import (
	"errors"
	"testing"
	"time"

	"github.com/gourmetta/haccphub/internal/domain/models"
)

var fridge = models.Checkpoint{Name: "Core", MinTemp: -25, MaxTemp: -18}

func TestEvaluateInclusiveBoundaries(t *testing.T) {
	cases := []struct {
		value float64
		want  bool
	}{
		{-25, true}, // min boundary
		{-18, true}, // max boundary
		{-20, true},
		{-25.1, false},
		{-17.9, false},
		{4, false},
	}
	for _, tc := range cases {
		ev := Evaluate(fridge, tc.value)
		if ev.InRange != tc.want {
			t.Errorf("Evaluate(%v): got %v, want %v", tc.value, ev.InRange, tc.want)
		}
	}
}

func TestValidateReason(t *testing.T) {
	inRange := Evaluate(fridge, -20)
	outOfRange := Evaluate(fridge, -10)

	if err := ValidateReason(inRange, ""); err != nil {
		t.Errorf("in-range without reason: got %v, want nil", err)
	}
	if err := ValidateReason(outOfRange, "door left open"); err != nil {
		t.Errorf("out-of-range with reason: got %v, want nil", err)
	}
	if err := ValidateReason(outOfRange, ""); !errors.Is(err, ErrReasonRequired) {
		t.Errorf("out-of-range without reason: got %v, want ErrReasonRequired", err)
	}
	if err := ValidateReason(outOfRange, "   "); !errors.Is(err, ErrReasonRequired) {
		t.Errorf("blank reason should not pass, got %v", err)
	}
}

func TestDraft(t *testing.T) {
	ev := Evaluate(fridge, -10)
	at := time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC)
	alert := Draft(ev, AlertContext{
		FacilityID:   "fac-1",
		FacilityName: "Central Kitchen",
		TargetName:   "Walk-in",
		UserID:       "user-1",
		UserName:     "Anna",
	}, at)

	if alert.Resolved {
		t.Error("new alert must be unresolved")
	}
	if alert.Value != -10 || alert.Min != -25 || alert.Max != -18 {
		t.Errorf("alert snapshot wrong: value=%v min=%v max=%v", alert.Value, alert.Min, alert.Max)
	}
	if alert.CheckpointName != "Core" || alert.FacilityName != "Central Kitchen" {
		t.Errorf("alert names wrong: %+v", alert)
	}
	if !alert.Timestamp.Equal(at) {
		t.Errorf("timestamp: got %v, want %v", alert.Timestamp, at)
	}
}
