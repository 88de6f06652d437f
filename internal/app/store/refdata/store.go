// internal/app/store/refdata/store.go
//
// Package refdata holds the small administrator-maintained reference
// collections: facility types, refrigerator types, cooking methods,
// holidays, and facility exceptions. They share one store because each
// is a plain list with identical access patterns.
package refdata

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gourmetta/haccphub/internal/domain/models"
)

type Store struct {
	facilityTypes *mongo.Collection
	fridgeTypes   *mongo.Collection
	methods       *mongo.Collection
	holidays      *mongo.Collection
	exceptions    *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		facilityTypes: db.Collection("facility_types"),
		fridgeTypes:   db.Collection("refrigerator_types"),
		methods:       db.Collection("cooking_methods"),
		holidays:      db.Collection("holidays"),
		exceptions:    db.Collection("facility_exceptions"),
	}
}

// --- Facility types ---

func (s *Store) CreateFacilityType(ctx context.Context, t models.FacilityType) (models.FacilityType, error) {
	res, err := s.facilityTypes.InsertOne(ctx, t)
	if err != nil {
		return t, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid
	}
	return t, nil
}

func (s *Store) ListFacilityTypes(ctx context.Context) ([]models.FacilityType, error) {
	cur, err := s.facilityTypes.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.FacilityType
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteFacilityType(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.facilityTypes.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// --- Refrigerator types ---

func (s *Store) CreateRefrigeratorType(ctx context.Context, t models.RefrigeratorType) (models.RefrigeratorType, error) {
	res, err := s.fridgeTypes.InsertOne(ctx, t)
	if err != nil {
		return t, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid
	}
	return t, nil
}

func (s *Store) GetRefrigeratorType(ctx context.Context, id primitive.ObjectID) (models.RefrigeratorType, error) {
	var t models.RefrigeratorType
	err := s.fridgeTypes.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	return t, err
}

// UpdateRefrigeratorType replaces the type document. Checkpoint range
// edits apply to future readings only; existing alerts keep the range
// they were evaluated against.
func (s *Store) UpdateRefrigeratorType(ctx context.Context, t models.RefrigeratorType) (models.RefrigeratorType, error) {
	if t.ID.IsZero() {
		return t, mongo.ErrNilDocument
	}
	_, err := s.fridgeTypes.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	return t, err
}

func (s *Store) ListRefrigeratorTypes(ctx context.Context) ([]models.RefrigeratorType, error) {
	cur, err := s.fridgeTypes.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.RefrigeratorType
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteRefrigeratorType(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.fridgeTypes.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// --- Cooking methods ---

func (s *Store) CreateCookingMethod(ctx context.Context, m models.CookingMethod) (models.CookingMethod, error) {
	res, err := s.methods.InsertOne(ctx, m)
	if err != nil {
		return m, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return m, nil
}

func (s *Store) GetCookingMethod(ctx context.Context, id primitive.ObjectID) (models.CookingMethod, error) {
	var m models.CookingMethod
	err := s.methods.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	return m, err
}

func (s *Store) UpdateCookingMethod(ctx context.Context, m models.CookingMethod) (models.CookingMethod, error) {
	if m.ID.IsZero() {
		return m, mongo.ErrNilDocument
	}
	_, err := s.methods.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	return m, err
}

func (s *Store) ListCookingMethods(ctx context.Context) ([]models.CookingMethod, error) {
	cur, err := s.methods.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.CookingMethod
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteCookingMethod(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.methods.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// --- Holidays ---

func (s *Store) CreateHoliday(ctx context.Context, h models.Holiday) (models.Holiday, error) {
	res, err := s.holidays.InsertOne(ctx, h)
	if err != nil {
		return h, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		h.ID = oid
	}
	return h, nil
}

func (s *Store) ListHolidays(ctx context.Context) ([]models.Holiday, error) {
	cur, err := s.holidays.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Holiday
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteHoliday(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.holidays.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// --- Facility exceptions ---

func (s *Store) CreateException(ctx context.Context, e models.FacilityException) (models.FacilityException, error) {
	res, err := s.exceptions.InsertOne(ctx, e)
	if err != nil {
		return e, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		e.ID = oid
	}
	return e, nil
}

func (s *Store) ListExceptions(ctx context.Context) ([]models.FacilityException, error) {
	cur, err := s.exceptions.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.FacilityException
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteException(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.exceptions.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
