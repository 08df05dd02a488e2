package repositories

import (
	"time"

	"github.com/flocknet/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenRepository records revoked JWT IDs so logout invalidates tokens
// before their natural expiry.
type TokenRepository interface {
	RevokeToken(jti string, userID uint, expiresAt time.Time) error
	IsTokenRevoked(jti string) (bool, error)
	PurgeExpired() (int64, error)
}

type gormTokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &gormTokenRepository{db: db}
}

// RevokeToken is idempotent: revoking the same jti twice keeps one row.
func (r *gormTokenRepository) RevokeToken(jti string, userID uint, expiresAt time.Time) error {
	token := &models.RevokedToken{JTI: jti, UserID: userID, ExpiresAt: expiresAt}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "jti"}},
		DoNothing: true,
	}).Create(token).Error
}

func (r *gormTokenRepository) IsTokenRevoked(jti string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.RevokedToken{}).Where("jti = ?", jti).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// PurgeExpired drops revocation rows whose tokens have expired anyway.
func (r *gormTokenRepository) PurgeExpired() (int64, error) {
	res := r.db.Where("expires_at < ?", time.Now()).Delete(&models.RevokedToken{})
	return res.RowsAffected, res.Error
}
