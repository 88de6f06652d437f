// internal/domain/models/checkpoint.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Checkpoint is a named measurement with an inclusive acceptable
// range. A value v is in range when min <= v <= max; both boundary
// values are compliant.
type Checkpoint struct {
	Name    string  `bson:"name" json:"name"`
	MinTemp float64 `bson:"min_temp" json:"min_temp"`
	MaxTemp float64 `bson:"max_temp" json:"max_temp"`
}

// InRange reports whether the value is acceptable for the checkpoint.
func (c Checkpoint) InRange(v float64) bool {
	return v >= c.MinTemp && v <= c.MaxTemp
}

// Fallback checkpoints used when a refrigerator type or cooking method
// is missing or carries no checkpoints of its own. A refrigerator or
// menu always has at least one measurable checkpoint.
var (
	DefaultRefrigeratorCheckpoints = []Checkpoint{{Name: "Temperatur", MinTemp: 2, MaxTemp: 7}}
	DefaultMenuCheckpoints         = []Checkpoint{{Name: "Kern-Temperatur", MinTemp: 72, MaxTemp: 95}}
)

// RefrigeratorType groups refrigerators that share a set of
// checkpoints (normal fridge, freezer, blast chiller).
type RefrigeratorType struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Checkpoints []Checkpoint       `bson:"checkpoints" json:"checkpoints"`
}

// CookingMethod carries the checkpoints for a way of preparing food
// (cook and serve, cook and chill). Menus reference a cooking method
// to obtain their checkpoints.
type CookingMethod struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Checkpoints []Checkpoint       `bson:"checkpoints" json:"checkpoints"`
}
