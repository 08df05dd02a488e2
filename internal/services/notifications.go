package services

import (
	"encoding/json"

	"github.com/flocknet/backend/internal/models"
	"github.com/flocknet/backend/internal/repositories"
	"gorm.io/gorm"
)

// Notification verbs produced by the services in this package.
const (
	VerbStartedFollowing = "started following you"
	VerbLikedPost        = "liked your post"
	VerbCommentedOnPost  = "commented on your post"
)

// notificationInput describes a notification to append. TargetType and
// TargetID are zero when the action has no target object.
type notificationInput struct {
	RecipientID uint
	ActorID     uint
	Verb        string
	TargetType  string
	TargetID    uint
	Metadata    map[string]any
}

// createNotification appends a notification on the given transaction so
// it commits or rolls back together with the mutation that caused it.
// Self-notifications (recipient == actor) are silently skipped.
func createNotification(tx *gorm.DB, in notificationInput) (*models.Notification, error) {
	if in.RecipientID == in.ActorID {
		return nil, nil
	}

	var metadata json.RawMessage
	if in.Metadata != nil {
		raw, err := json.Marshal(in.Metadata)
		if err != nil {
			return nil, err
		}
		metadata = raw
	}

	notification := &models.Notification{
		RecipientID: in.RecipientID,
		ActorID:     in.ActorID,
		Verb:        in.Verb,
		TargetType:  in.TargetType,
		TargetID:    in.TargetID,
		Metadata:    metadata,
	}
	if err := repositories.NewNotificationRepository(tx).CreateNotification(notification); err != nil {
		return nil, err
	}
	return notification, nil
}
