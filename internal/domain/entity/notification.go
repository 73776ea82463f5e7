package entity

import (
	"time"
)

// NotificationType is the closed set of notification kinds.
type NotificationType string

const (
	NotificationLeadAssigned     NotificationType = "LeadAssigned"
	NotificationTaskAssigned     NotificationType = "TaskAssigned"
	NotificationClientAssigned   NotificationType = "ClientAssigned"
	NotificationLeadStageChanged NotificationType = "LeadStageChanged"
	NotificationTaskCompleted    NotificationType = "TaskCompleted"
	NotificationNoteShared       NotificationType = "NoteShared"
	NotificationActivityPosted   NotificationType = "ActivityPosted"
)

// IsValid reports whether the type is one of the known notification kinds.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationLeadAssigned, NotificationTaskAssigned, NotificationClientAssigned,
		NotificationLeadStageChanged, NotificationTaskCompleted, NotificationNoteShared,
		NotificationActivityPosted:
		return true
	}
	return false
}

// RelatedModel names the collection a notification's RelatedID points into.
type RelatedModel string

const (
	RelatedModelLead     RelatedModel = "Lead"
	RelatedModelTask     RelatedModel = "Task"
	RelatedModelClient   RelatedModel = "Client"
	RelatedModelNote     RelatedModel = "Note"
	RelatedModelActivity RelatedModel = "Activity"
)

// Notification is a single fan-out record. Fan-out to N receivers produces
// N documents, each with exactly one receiver.
type Notification struct {
	ID        string           `bson:"_id,omitempty" json:"id"`
	Sender    string           `bson:"sender" json:"sender"`
	Receiver  string           `bson:"receiver" json:"receiver"`
	Type      NotificationType `bson:"type" json:"type"`
	Message   string           `bson:"message" json:"message"`
	RelatedID string           `bson:"related_id,omitempty" json:"related_id,omitempty"`
	OnModel   RelatedModel     `bson:"on_model,omitempty" json:"on_model,omitempty"`
	IsRead    bool             `bson:"is_read" json:"is_read"`
	CreatedAt time.Time        `bson:"created_at" json:"created_at"`
}
