package models

import (
	"encoding/json"
	"time"
)

// Notification target kinds. The (TargetType, TargetID) pair replaces a
// polymorphic reference: readers resolve it explicitly.
const (
	TargetPost    = "post"
	TargetComment = "comment"
)

// Notification is an append-only record of an action relevant to a
// recipient. Only IsRead changes after creation.
type Notification struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	RecipientID uint            `json:"recipient_id" gorm:"index"`
	ActorID     uint            `json:"actor_id" gorm:"index"`
	Verb        string          `json:"verb" gorm:"size:255"`
	TargetType  string          `json:"target_type,omitempty" gorm:"size:20"`
	TargetID    uint            `json:"target_id,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	IsRead      bool            `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time       `json:"created_at" gorm:"index"`
}
