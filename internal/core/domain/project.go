package domain

import (
	"errors"
	"time"
)

// ProjectStatus represents the lifecycle stage of a renewal project.
type ProjectStatus string

const (
	ProjectPlanning     ProjectStatus = "planning"
	ProjectVoting       ProjectStatus = "voting"
	ProjectApproved     ProjectStatus = "approved"
	ProjectConstruction ProjectStatus = "construction"
	ProjectCompleted    ProjectStatus = "completed"
)

// ProjectTrack is the statutory track the project runs under.
type ProjectTrack string

const (
	TrackPinuiBinui ProjectTrack = "pinui_binui"
	TrackTama38     ProjectTrack = "tama_38"
)

var ErrProjectNotFound = errors.New("project not found")

// Project is a single urban-renewal project: a building or compound slated
// for demolition-and-rebuild or reinforcement.
type Project struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	Name        string        `json:"name" bson:"name"`
	City        string        `json:"city" bson:"city"`
	Address     string        `json:"address" bson:"address"`
	Track       ProjectTrack  `json:"track" bson:"track"`
	Status      ProjectStatus `json:"status" bson:"status"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
	UnitsBefore int           `json:"units_before" bson:"units_before"`
	UnitsAfter  int           `json:"units_after" bson:"units_after"`
	DeveloperID string        `json:"developer_id,omitempty" bson:"developer_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}
