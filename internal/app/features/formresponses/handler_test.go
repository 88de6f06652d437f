package formresponses_test

import (
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/gourmetta/haccphub/internal/app/features/formresponses"
	"github.com/gourmetta/haccphub/internal/domain/models"
	"github.com/gourmetta/haccphub/internal/testutil"
)

type submitBody struct {
	FormID         string            `json:"form_id"`
	FacilityID     string            `json:"facility_id"`
	UserID         string            `json:"user_id"`
	Answers        map[string]string `json:"answers"`
	Signature      string            `json:"signature,omitempty"`
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
}

func setup(t *testing.T) (*formresponses.Handler, submitBody) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ft := fixtures.CreateFacilityType(ctx, "Kitchen")
	fac := fixtures.CreateFacility(ctx, "Central Kitchen", ft.ID.Hex())
	user := fixtures.CreateUser(ctx, "Anna", "anna@example.com", fac.ID.Hex())
	form := fixtures.CreateFormTemplate(ctx, "Daily cleaning")

	body := submitBody{
		FormID:     form.ID.Hex(),
		FacilityID: fac.ID.Hex(),
		UserID:     user.ID.Hex(),
		Answers:    map[string]string{"q1": "yes"},
	}
	return formresponses.NewHandler(db, zap.NewNop()), body
}

func TestSubmit(t *testing.T) {
	h, body := setup(t)

	req := testutil.NewJSONRequest(t, "POST", "/api/form-responses", body)
	rec := testutil.NewRecorder()

	h.Submit(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var got models.FormResponse
	rec.DecodeJSON(t, &got)
	if got.ID.IsZero() {
		t.Error("response should be assigned an id")
	}
	if got.Answers["q1"] != "yes" {
		t.Errorf("answers not stored: %+v", got.Answers)
	}
	if got.IdempotencyKey == "" {
		t.Error("a key should be generated when the client omits one")
	}
}

func TestSubmit_IdempotentReplay(t *testing.T) {
	h, body := setup(t)
	body.IdempotencyKey = "retry-42"

	req := testutil.NewJSONRequest(t, "POST", "/api/form-responses", body)
	rec := testutil.NewRecorder()
	h.Submit(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var first models.FormResponse
	rec.DecodeJSON(t, &first)

	req = testutil.NewJSONRequest(t, "POST", "/api/form-responses", body)
	rec = testutil.NewRecorder()
	h.Submit(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var second models.FormResponse
	rec.DecodeJSON(t, &second)

	if first.ID != second.ID {
		t.Errorf("replay should return the original response: %s vs %s",
			first.ID.Hex(), second.ID.Hex())
	}
}

func TestSubmit_SignatureRequired(t *testing.T) {
	h, body := setup(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	formOID, err := primitive.ObjectIDFromHex(body.FormID)
	if err != nil {
		t.Fatalf("parse form id: %v", err)
	}

	form, err := h.Forms.GetByID(ctx, formOID)
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	form.RequiresSignature = true
	if _, err := h.Forms.Update(ctx, form); err != nil {
		t.Fatalf("update form: %v", err)
	}

	req := testutil.NewJSONRequest(t, "POST", "/api/form-responses", body)
	rec := testutil.NewRecorder()
	h.Submit(rec, req)
	rec.AssertStatus(t, http.StatusUnprocessableEntity)

	body.Signature = "data:image/png;base64,AAAA"
	req = testutil.NewJSONRequest(t, "POST", "/api/form-responses", body)
	rec = testutil.NewRecorder()
	h.Submit(rec, req)
	rec.AssertStatus(t, http.StatusCreated)
}

func TestSubmit_AllQuestionsRequired(t *testing.T) {
	h, body := setup(t)

	cases := []struct {
		name    string
		answers map[string]string
	}{
		{"no answers at all", nil},
		{"blank answer", map[string]string{"q1": "   "}},
		{"answer for the wrong question", map[string]string{"q2": "yes"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := body
			body.Answers = tc.answers

			req := testutil.NewJSONRequest(t, "POST", "/api/form-responses", body)
			rec := testutil.NewRecorder()
			h.Submit(rec, req)
			rec.AssertStatus(t, http.StatusUnprocessableEntity)
		})
	}

	req := testutil.NewJSONRequest(t, "POST", "/api/form-responses", body)
	rec := testutil.NewRecorder()
	h.Submit(rec, req)
	rec.AssertStatus(t, http.StatusCreated)
}

func TestSubmit_UnknownForm(t *testing.T) {
	h, body := setup(t)
	body.FormID = "ffffffffffffffffffffffff"

	req := testutil.NewJSONRequest(t, "POST", "/api/form-responses", body)
	rec := testutil.NewRecorder()

	h.Submit(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)
}
