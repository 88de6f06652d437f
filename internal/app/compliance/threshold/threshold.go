// internal/app/compliance/threshold/threshold.go
//
// Package threshold evaluates measurements against checkpoint ranges
// and derives alert drafts from violations.
package threshold

import (
	"errors"
	"strings"
	"time"

	"github.com/gourmetta/haccphub/internal/domain/models"
)

// ErrReasonRequired is returned when an out-of-range value arrives
// without an explanation. The reason is mandatory here, not in the
// client, so no submission path can bypass it.
var ErrReasonRequired = errors.New("out-of-range value requires a reason")

// Evaluation is the outcome of checking one value.
type Evaluation struct {
	Checkpoint models.Checkpoint
	Value      float64
	InRange    bool
}

// Evaluate checks the value against the checkpoint's inclusive range.
func Evaluate(cp models.Checkpoint, value float64) Evaluation {
	return Evaluation{Checkpoint: cp, Value: value, InRange: cp.InRange(value)}
}

// ValidateReason enforces the reason rule for an evaluation. In-range
// values need none; out-of-range values need a non-blank one.
func ValidateReason(ev Evaluation, reason string) error {
	if ev.InRange {
		return nil
	}
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	return nil
}

// AlertContext carries the display names an alert snapshot needs.
type AlertContext struct {
	FacilityID   string
	FacilityName string
	TargetName   string
	UserID       string
	UserName     string
}

// Draft builds the unresolved alert for a violating evaluation. The
// caller must only invoke it when ev.InRange is false.
func Draft(ev Evaluation, ctx AlertContext, at time.Time) models.Alert {
	return models.Alert{
		FacilityID:     ctx.FacilityID,
		FacilityName:   ctx.FacilityName,
		TargetName:     ctx.TargetName,
		CheckpointName: ev.Checkpoint.Name,
		Value:          ev.Value,
		Min:            ev.Checkpoint.MinTemp,
		Max:            ev.Checkpoint.MaxTemp,
		Timestamp:      at,
		UserID:         ctx.UserID,
		UserName:       ctx.UserName,
		Resolved:       false,
	}
}
