package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CaseType enumerates the moderation actions that produce a case record
type CaseType string

// The fixed set of case types. Mass variants reference a MassAction record
// through Case.MassActionID.
const (
	CaseTypeBan       CaseType = "ban"
	CaseTypeKick      CaseType = "kick"
	CaseTypeTimeout   CaseType = "timeout"
	CaseTypeWarn      CaseType = "warn"
	CaseTypeNote      CaseType = "note"
	CaseTypeUnban     CaseType = "unban"
	CaseTypeUntimeout CaseType = "untimeout"
	CaseTypeMassban   CaseType = "massban"
	CaseTypeMasskick  CaseType = "masskick"
	CaseTypeMasswarn  CaseType = "masswarn"
	CaseTypeMassmute  CaseType = "massmute"
)

// AllCaseTypes lists every case type in display order. Stats responses report
// a count for each of these even when no such cases exist.
var AllCaseTypes = []CaseType{
	CaseTypeBan,
	CaseTypeKick,
	CaseTypeTimeout,
	CaseTypeWarn,
	CaseTypeNote,
	CaseTypeUnban,
	CaseTypeUntimeout,
	CaseTypeMassban,
	CaseTypeMasskick,
	CaseTypeMasswarn,
	CaseTypeMassmute,
}

// Valid reports whether t is one of the known case types
func (t CaseType) Valid() bool {
	for _, known := range AllCaseTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Case holds the structure for the cases collection in mongo. The mongo _id is
// the internal UUID assigned at creation; CaseID is the short phone-friendly
// code users type into lookup commands, unique across all guilds.
type Case struct {
	ID          string   `json:"_id" bson:"_id"`
	CaseID      string   `json:"caseId" bson:"caseId"`
	GuildID     string   `json:"guildId" bson:"guildId"`
	Type        CaseType `json:"type" bson:"type"`
	UserID      string   `json:"userId" bson:"userId"`
	ModeratorID string   `json:"moderatorId" bson:"moderatorId"`
	Reason      string   `json:"reason,omitempty" bson:"reason,omitempty"`

	// Evidence & moderator-only notes
	Evidence    []string `json:"evidence" bson:"evidence"`
	Attachments []string `json:"attachments" bson:"attachments"`
	Notes       string   `json:"notes,omitempty" bson:"notes,omitempty"`

	// Time-bounded actions (timeouts, temp bans)
	Duration  int64               `json:"duration,omitempty" bson:"duration,omitempty"` // milliseconds
	ExpiresAt *primitive.DateTime `json:"expiresAt,omitempty" bson:"expiresAt,omitempty"`

	// Lifecycle
	Active      bool                `json:"active" bson:"active"`
	Closed      bool                `json:"closed" bson:"closed"`
	ClosedAt    *primitive.DateTime `json:"closedAt,omitempty" bson:"closedAt,omitempty"`
	ClosedBy    string              `json:"closedBy,omitempty" bson:"closedBy,omitempty"`
	CloseReason string              `json:"closeReason,omitempty" bson:"closeReason,omitempty"`

	// Appeal sub-record
	Appealed       bool                `json:"appealed" bson:"appealed"`
	AppealReason   string              `json:"appealReason,omitempty" bson:"appealReason,omitempty"`
	AppealedAt     *primitive.DateTime `json:"appealedAt,omitempty" bson:"appealedAt,omitempty"`
	AppealDecision string              `json:"appealDecision,omitempty" bson:"appealDecision,omitempty"`

	// Mass action reference
	MassActionID string `json:"massActionId,omitempty" bson:"massActionId,omitempty"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// CaseStatus filters a case listing by lifecycle state
type CaseStatus string

// Status filter values accepted by the list endpoint
const (
	CaseStatusActive   CaseStatus = "active"
	CaseStatusClosed   CaseStatus = "closed"
	CaseStatusAppealed CaseStatus = "appealed"
)

// Valid reports whether s is a known status filter
func (s CaseStatus) Valid() bool {
	switch s {
	case CaseStatusActive, CaseStatusClosed, CaseStatusAppealed:
		return true
	}
	return false
}

// UpdatableField enumerates the case fields that may be edited after creation
type UpdatableField string

// The closed set of editable fields
const (
	FieldReason UpdatableField = "reason"
	FieldNotes  UpdatableField = "notes"
)

// Valid reports whether f may be targeted by an update
func (f UpdatableField) Valid() bool {
	return f == FieldReason || f == FieldNotes
}
