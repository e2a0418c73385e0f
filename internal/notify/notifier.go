// Package notify persists in-app notifications. Delivery beyond the
// database record (email, push) is a separate concern and not wired here.
package notify

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"healthcare-booking-server/internal/models"
)

// DBNotifier stores notifications and logs each emission.
type DBNotifier struct {
	db  *gorm.DB
	log zerolog.Logger
}

// New creates a DBNotifier.
func New(db *gorm.DB, log zerolog.Logger) *DBNotifier {
	return &DBNotifier{db: db, log: log}
}

// Notify writes the notification record. Callers treat failures as
// best-effort; this method only reports them.
func (n *DBNotifier) Notify(ctx context.Context, notification *models.Notification) error {
	if err := n.db.WithContext(ctx).Create(notification).Error; err != nil {
		return err
	}
	n.log.Debug().Str("user_id", notification.UserID).Str("type", string(notification.Type)).
		Str("related_id", notification.RelatedID).Msg("notification emitted")
	return nil
}
