package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Find a promoter account by login email
func (queries *Queries) GetPromoterByEmail(email string) (*PromoterAccount, error) {
	var promoter PromoterAccount
	if err := queries.DB.Where("email = ?", email).First(&promoter).Error; err != nil {
		return nil, err
	}
	return &promoter, nil
}

// Find a promoter account by id
func (queries *Queries) GetPromoter(id uuid.UUID) (*PromoterAccount, error) {
	var promoter PromoterAccount
	if err := queries.DB.First(&promoter, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &promoter, nil
}

// Bump the refresh token version, invalidating every refresh token issued before
func (queries *Queries) BumpTokenVersion(id uuid.UUID) error {
	return queries.DB.Model(&PromoterAccount{}).
		Where("id = ?", id).
		Update("token_version", gorm.Expr("token_version + 1")).Error
}

// Persist a notification feed entry
func (queries *Queries) CreateNotification(notification *Notification) error {
	return queries.DB.Create(notification).Error
}

// List a promoter's notifications, newest first
func (queries *Queries) ListNotifications(promoterID uuid.UUID, limit int) ([]Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	var notifications []Notification
	err := queries.DB.
		Where("promoter_id = ?", promoterID).
		Order("date_created DESC").
		Limit(limit).
		Find(&notifications).Error

	return notifications, err
}

// Mark one notification as read
func (queries *Queries) MarkNotificationRead(id, promoterID uuid.UUID) error {
	now := time.Now()
	return queries.DB.Model(&Notification{}).
		Where("id = ? AND promoter_id = ?", id, promoterID).
		Updates(map[string]any{
			"status":  NotificationRead,
			"read_at": &now,
		}).Error
}

// Persist an invitation issuance record
func (queries *Queries) CreateInvitation(invitation *Invitation) error {
	return queries.DB.Create(invitation).Error
}

// List invitations a promoter has issued for an event
func (queries *Queries) ListInvitations(promoterID uuid.UUID, eventID string) ([]Invitation, error) {
	var invitations []Invitation
	err := queries.DB.
		Where("promoter_id = ? AND event_id = ?", promoterID, eventID).
		Order("date_created DESC").
		Find(&invitations).Error

	return invitations, err
}
