package assignments_test

import (
	"testing"

	"github.com/gourmetta/haccphub/internal/app/store/assignments"
	"github.com/gourmetta/haccphub/internal/domain/models"
	"github.com/gourmetta/haccphub/internal/testutil"
)

func seed(t *testing.T, s *assignments.Store, startDate, endDate string) models.Assignment {
	t.Helper()

	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, err := s.Create(ctx, models.Assignment{
		TargetType:   models.TargetFacility,
		TargetID:     "fac-1",
		ResourceType: models.ResourceForm,
		ResourceID:   "form-1",
		Frequency:    models.FrequencyDaily,
		StartDate:    startDate,
		EndDate:      endDate,
	})
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}
	return a
}

func TestCreate_SetsCreatedAt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := assignments.New(db)

	a := seed(t, s, "2026-03-01", "2026-03-31")

	if a.ID.IsZero() {
		t.Error("create should assign an id")
	}
	if a.CreatedAt.IsZero() {
		t.Error("create should set created_at")
	}
}

func TestListActiveOn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := assignments.New(db)

	seed(t, s, "2026-03-01", "2026-03-31")
	seed(t, s, "2026-04-01", "2026-04-30")

	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		date string
		want int
	}{
		{"2026-02-28", 0},
		{"2026-03-01", 1}, // first day inclusive
		{"2026-03-31", 1}, // last day inclusive
		{"2026-04-15", 1},
		{"2026-05-01", 0},
	}
	for _, tc := range tests {
		got, err := s.ListActiveOn(ctx, tc.date)
		if err != nil {
			t.Fatalf("ListActiveOn(%s): %v", tc.date, err)
		}
		if len(got) != tc.want {
			t.Errorf("ListActiveOn(%s): got %d assignments, want %d", tc.date, len(got), tc.want)
		}
	}
}

func TestDeleteByResource(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := assignments.New(db)

	seed(t, s, "2026-03-01", "2026-03-31")
	seed(t, s, "2026-04-01", "2026-04-30")

	ctx, cancel := testutil.TestContext()
	defer cancel()

	n, err := s.DeleteByResource(ctx, models.ResourceForm, "form-1")
	if err != nil {
		t.Fatalf("DeleteByResource: %v", err)
	}
	if n != 2 {
		t.Errorf("got %d deleted, want 2", n)
	}

	left, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("got %d assignments left, want 0", len(left))
	}
}

func TestUpdate_RequiresID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := assignments.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := s.Update(ctx, models.Assignment{}); err == nil {
		t.Error("update without id should fail")
	}
}
