package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MassAction holds the structure for the massActions collection in mongo.
// Each bulk moderation run gets one record; the individual case rows it
// produced point back through Case.MassActionID.
type MassAction struct {
	ID          string   `json:"_id" bson:"_id"`
	GuildID     string   `json:"guildId" bson:"guildId"`
	Type        CaseType `json:"type" bson:"type"`
	ModeratorID string   `json:"moderatorId" bson:"moderatorId"`
	Reason      string   `json:"reason,omitempty" bson:"reason,omitempty"`

	TargetCount  int    `json:"targetCount" bson:"targetCount"`
	SuccessCount int    `json:"successCount" bson:"successCount"`
	FailureCount int    `json:"failureCount" bson:"failureCount"`
	Status       string `json:"status" bson:"status"` // "pending", "in_progress", "completed", "failed"

	Duration int64 `json:"duration,omitempty" bson:"duration,omitempty"` // milliseconds, for mass mutes

	CreatedAt   primitive.DateTime  `json:"createdAt" bson:"createdAt"`
	CompletedAt *primitive.DateTime `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}
