package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CaseUpdate holds the structure for the caseUpdates collection in mongo, one
// row per edit made to a case through the update endpoint
type CaseUpdate struct {
	ID        string             `json:"_id" bson:"_id"`
	CaseID    string             `json:"caseId" bson:"caseId"` // internal case UUID, not the display ID
	UpdatedBy string             `json:"updatedBy" bson:"updatedBy"`
	Field     UpdatableField     `json:"field" bson:"field"`
	OldValue  string             `json:"oldValue" bson:"oldValue"`
	NewValue  string             `json:"newValue" bson:"newValue"`
	Reason    string             `json:"reason,omitempty" bson:"reason,omitempty"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
