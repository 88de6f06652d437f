// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gourmetta/haccphub/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateFacilityType creates a test facility type with the given name.
func (f *Fixtures) CreateFacilityType(ctx context.Context, name string) models.FacilityType {
	f.t.Helper()

	ft := models.FacilityType{
		ID:   primitive.NewObjectID(),
		Name: name,
	}

	_, err := f.db.Collection("facility_types").InsertOne(ctx, ft)
	if err != nil {
		f.t.Fatalf("failed to create test facility type: %v", err)
	}

	return ft
}

// CreateFacility creates a test facility of the given type.
func (f *Fixtures) CreateFacility(ctx context.Context, name, typeID string) models.Facility {
	f.t.Helper()

	fac := models.Facility{
		ID:        primitive.NewObjectID(),
		Name:      name,
		TypeID:    typeID,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("facilities").InsertOne(ctx, fac)
	if err != nil {
		f.t.Fatalf("failed to create test facility: %v", err)
	}

	return fac
}

// CreateUser creates a test staff user at the given home facility.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, facilityID string) models.User {
	f.t.Helper()

	u := models.User{
		ID:             primitive.NewObjectID(),
		Name:           name,
		Email:          email,
		Role:           models.RoleStaff,
		HomeFacilityID: facilityID,
		CreatedAt:      time.Now().UTC(),
	}

	_, err := f.db.Collection("users").InsertOne(ctx, u)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return u
}

// CreateRefrigeratorType creates a test refrigerator type with one
// checkpoint covering the given range.
func (f *Fixtures) CreateRefrigeratorType(ctx context.Context, name string, min, max float64) models.RefrigeratorType {
	f.t.Helper()

	rt := models.RefrigeratorType{
		ID:   primitive.NewObjectID(),
		Name: name,
		Checkpoints: []models.Checkpoint{
			{Name: "Core", MinTemp: min, MaxTemp: max},
		},
	}

	_, err := f.db.Collection("refrigerator_types").InsertOne(ctx, rt)
	if err != nil {
		f.t.Fatalf("failed to create test refrigerator type: %v", err)
	}

	return rt
}

// CreateRefrigerator creates a test refrigerator at the facility.
func (f *Fixtures) CreateRefrigerator(ctx context.Context, name, facilityID, typeID string) models.Refrigerator {
	f.t.Helper()

	r := models.Refrigerator{
		ID:         primitive.NewObjectID(),
		Name:       name,
		FacilityID: facilityID,
		TypeID:     typeID,
	}

	_, err := f.db.Collection("refrigerators").InsertOne(ctx, r)
	if err != nil {
		f.t.Fatalf("failed to create test refrigerator: %v", err)
	}

	return r
}

// CreateCookingMethod creates a test cooking method with one checkpoint.
func (f *Fixtures) CreateCookingMethod(ctx context.Context, name string, min, max float64) models.CookingMethod {
	f.t.Helper()

	cm := models.CookingMethod{
		ID:   primitive.NewObjectID(),
		Name: name,
		Checkpoints: []models.Checkpoint{
			{Name: "Serving", MinTemp: min, MaxTemp: max},
		},
	}

	_, err := f.db.Collection("cooking_methods").InsertOne(ctx, cm)
	if err != nil {
		f.t.Fatalf("failed to create test cooking method: %v", err)
	}

	return cm
}

// CreateMenu creates a test menu using the given cooking method.
func (f *Fixtures) CreateMenu(ctx context.Context, name, cookingMethodID string) models.Menu {
	f.t.Helper()

	m := models.Menu{
		ID:              primitive.NewObjectID(),
		Name:            name,
		CookingMethodID: cookingMethodID,
		CreatedAt:       time.Now().UTC(),
	}

	_, err := f.db.Collection("menus").InsertOne(ctx, m)
	if err != nil {
		f.t.Fatalf("failed to create test menu: %v", err)
	}

	return m
}

// CreateFormTemplate creates a test form with a single yes/no question.
func (f *Fixtures) CreateFormTemplate(ctx context.Context, title string) models.FormTemplate {
	f.t.Helper()

	ft := models.FormTemplate{
		ID:    primitive.NewObjectID(),
		Title: title,
		Questions: []models.FormQuestion{
			{ID: "q1", Text: "Surfaces cleaned?", Type: models.QuestionYesNo},
		},
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("form_templates").InsertOne(ctx, ft)
	if err != nil {
		f.t.Fatalf("failed to create test form template: %v", err)
	}

	return ft
}
