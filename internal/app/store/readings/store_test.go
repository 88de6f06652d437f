package readings_test

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gourmetta/haccphub/internal/app/store/readings"
	"github.com/gourmetta/haccphub/internal/domain/models"
	"github.com/gourmetta/haccphub/internal/testutil"
)

func seed(t *testing.T, s *readings.Store, ts time.Time, key string) models.Reading {
	t.Helper()

	ctx, cancel := testutil.TestContext()
	defer cancel()

	r, err := s.Create(ctx, models.Reading{
		TargetID:       "fridge-1",
		TargetType:     models.ReadingTargetRefrigerator,
		CheckpointName: "Core",
		Value:          4.5,
		Timestamp:      ts,
		UserID:         "user-1",
		FacilityID:     "fac-1",
		IdempotencyKey: key,
	})
	if err != nil {
		t.Fatalf("create reading: %v", err)
	}
	return r
}

func TestGetByIdempotencyKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := readings.New(db)

	want := seed(t, s, time.Time{}, "key-1")

	ctx, cancel := testutil.TestContext()
	defer cancel()

	got, err := s.GetByIdempotencyKey(ctx, "key-1")
	if err != nil {
		t.Fatalf("GetByIdempotencyKey: %v", err)
	}
	if got.ID != want.ID {
		t.Errorf("got reading %s, want %s", got.ID.Hex(), want.ID.Hex())
	}

	_, err = s.GetByIdempotencyKey(ctx, "missing")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("unknown key: got %v, want ErrNoDocuments", err)
	}
}

func TestListBetween_HalfOpenRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := readings.New(db)

	dayStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	seed(t, s, dayStart.Add(-time.Second), "")         // previous day
	inDay := seed(t, s, dayStart.Add(8*time.Hour), "") // within
	seed(t, s, dayStart, "")                           // lower bound inclusive
	seed(t, s, dayEnd, "")                             // upper bound exclusive

	ctx, cancel := testutil.TestContext()
	defer cancel()

	got, err := s.ListBetween(ctx, dayStart, dayEnd)
	if err != nil {
		t.Fatalf("ListBetween: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d readings, want 2", len(got))
	}
	// Newest first.
	if got[0].ID != inDay.ID {
		t.Errorf("expected the 08:00 reading first, got %s", got[0].Timestamp)
	}
}

func TestListByTarget_Limit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := readings.New(db)

	base := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	for i := range 5 {
		seed(t, s, base.Add(time.Duration(i)*time.Hour), "")
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()

	got, err := s.ListByTarget(ctx, models.ReadingTargetRefrigerator, "fridge-1", 3)
	if err != nil {
		t.Fatalf("ListByTarget: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d readings, want 3", len(got))
	}
	if !got[0].Timestamp.After(got[2].Timestamp) {
		t.Error("readings should be sorted newest first")
	}
}
