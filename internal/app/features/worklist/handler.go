// internal/app/features/worklist/handler.go
package worklist

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/gourmetta/haccphub/internal/app/compliance/calendar"
	"github.com/gourmetta/haccphub/internal/app/compliance/schedule"
	assignstore "github.com/gourmetta/haccphub/internal/app/store/assignments"
	facilitystore "github.com/gourmetta/haccphub/internal/app/store/facilities"
	formstore "github.com/gourmetta/haccphub/internal/app/store/forms"
	responsestore "github.com/gourmetta/haccphub/internal/app/store/formresponses"
	menustore "github.com/gourmetta/haccphub/internal/app/store/menus"
	readingstore "github.com/gourmetta/haccphub/internal/app/store/readings"
	"github.com/gourmetta/haccphub/internal/app/store/refdata"
	fridgestore "github.com/gourmetta/haccphub/internal/app/store/refrigerators"
	"github.com/gourmetta/haccphub/internal/app/system/httpjson"
	"github.com/gourmetta/haccphub/internal/app/system/timeouts"
	"github.com/gourmetta/haccphub/internal/domain/models"
)

// Handler resolves the daily worklist for a user at a facility.
type Handler struct {
	Assignments   *assignstore.Store
	Facilities    *facilitystore.Store
	Refrigerators *fridgestore.Store
	Menus         *menustore.Store
	Forms         *formstore.Store
	RefData       *refdata.Store
	Readings      *readingstore.Store
	Responses     *responsestore.Store
	Location      *time.Location
	Log           *zap.Logger
}

// NewHandler constructs a worklist Handler over the given database.
func NewHandler(db *mongo.Database, loc *time.Location, logger *zap.Logger) *Handler {
	return &Handler{
		Assignments:   assignstore.New(db),
		Facilities:    facilitystore.New(db),
		Refrigerators: fridgestore.New(db),
		Menus:         menustore.New(db),
		Forms:         formstore.New(db),
		RefData:       refdata.New(db),
		Readings:      readingstore.New(db),
		Responses:     responsestore.New(db),
		Location:      loc,
		Log:           logger,
	}
}

// Serve handles GET /api/worklist?user_id=…&facility_id=…&date=YYYY-MM-DD.
// The date defaults to today in the deployment time zone.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "resolve worklist")
	defer cancel()

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		httpjson.Error(w, http.StatusBadRequest, "user_id is required")
		return
	}

	facilityID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("facility_id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid facility_id")
		return
	}

	date := calendar.Today(h.Location)
	if q := r.URL.Query().Get("date"); q != "" {
		date, err = calendar.Parse(q)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
			return
		}
	}

	facility, err := h.Facilities.GetByID(ctx, facilityID)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "facility not found")
		return
	}
	if err != nil {
		h.Log.Error("worklist: load facility failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	in := schedule.Input{
		Date:     date,
		Location: h.Location,
		UserID:   userID,
		Facility: &facility,
	}

	if in.Assignments, err = h.Assignments.ListActiveOn(ctx, string(date)); err != nil {
		h.Log.Error("worklist: load assignments failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	holidays, err := h.RefData.ListHolidays(ctx)
	if err != nil {
		h.Log.Error("worklist: load holidays failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	spans := make([][2]string, 0, len(holidays))
	for _, hd := range holidays {
		spans = append(spans, [2]string{hd.StartDate, hd.EndDate})
	}
	in.Holidays = calendar.NewHolidaySet(spans)

	if in.Exceptions, err = h.RefData.ListExceptions(ctx); err != nil {
		h.Log.Error("worklist: load exceptions failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	if in.Refrigerators, err = h.Refrigerators.ListByFacility(ctx, facilityID.Hex()); err != nil {
		h.Log.Error("worklist: load refrigerators failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.loadCatalogs(ctx, &in); err != nil {
		h.Log.Error("worklist: load catalogs failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	dayStart := date.Time(h.Location)
	dayEnd := dayStart.Add(24 * time.Hour)
	if in.Readings, err = h.Readings.ListBetween(ctx, dayStart, dayEnd); err != nil {
		h.Log.Error("worklist: load readings failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	if in.Responses, err = h.Responses.ListBetween(ctx, dayStart, dayEnd); err != nil {
		h.Log.Error("worklist: load responses failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpjson.Write(w, http.StatusOK, schedule.Build(in))
}

// loadCatalogs fills the lookup maps the builder needs.
func (h *Handler) loadCatalogs(ctx context.Context, in *schedule.Input) error {
	fridgeTypes, err := h.RefData.ListRefrigeratorTypes(ctx)
	if err != nil {
		return err
	}
	in.RefrigeratorTypes = make(map[string]models.RefrigeratorType, len(fridgeTypes))
	for _, t := range fridgeTypes {
		in.RefrigeratorTypes[t.ID.Hex()] = t
	}

	menus, err := h.Menus.ListAll(ctx)
	if err != nil {
		return err
	}
	in.Menus = make(map[string]models.Menu, len(menus))
	for _, m := range menus {
		in.Menus[m.ID.Hex()] = m
	}

	methods, err := h.RefData.ListCookingMethods(ctx)
	if err != nil {
		return err
	}
	in.CookingMethods = make(map[string]models.CookingMethod, len(methods))
	for _, m := range methods {
		in.CookingMethods[m.ID.Hex()] = m
	}

	forms, err := h.Forms.ListAll(ctx)
	if err != nil {
		return err
	}
	in.Forms = make(map[string]models.FormTemplate, len(forms))
	for _, f := range forms {
		in.Forms[f.ID.Hex()] = f
	}

	return nil
}
