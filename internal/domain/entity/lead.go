package entity

import (
	"time"
)

// LeadStage is the sales pipeline stage of a lead.
type LeadStage string

const (
	LeadStageNew       LeadStage = "New"
	LeadStageContacted LeadStage = "Contacted"
	LeadStageDeal      LeadStage = "Deal"
	LeadStageWon       LeadStage = "Won"
	LeadStageLost      LeadStage = "Lost"
)

// IsValid reports whether the stage is one of the known pipeline stages.
func (s LeadStage) IsValid() bool {
	switch s {
	case LeadStageNew, LeadStageContacted, LeadStageDeal, LeadStageWon, LeadStageLost:
		return true
	}
	return false
}

// Lead is a sales pipeline record. AssignedTo holds the assignee's user id;
// the assignee's display name is resolved at read time.
type Lead struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	ContactName string    `bson:"contact_name" json:"contact_name"`
	Email       string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone       string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Source      string    `bson:"source,omitempty" json:"source,omitempty"`
	Value       float64   `bson:"value" json:"value"`
	Stage       LeadStage `bson:"stage" json:"stage"`
	AssignedTo  string    `bson:"assigned_to" json:"assigned_to"`
	CreatedBy   string    `bson:"created_by" json:"created_by"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
