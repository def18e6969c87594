package db

import (
	"time"

	"github.com/google/uuid"
)

// Share fields of all models: ID, create at and updated at timestamp
type Model struct {
	ID          uuid.UUID `gorm:"type:uuid;not null;default:gen_random_uuid();primaryKey" json:"id"`
	DateCreated time.Time `gorm:"not null;default:now()" json:"created_at"`
	DateUpdated time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func NewModel() Model {
	return Model{
		ID:          uuid.New(),
		DateCreated: time.Now(),
		DateUpdated: time.Now(),
	}
}

// Enum defined
type Role string

type PromoterStatus string

type NotificationStatus string

type InvitationStatus string

// Constant defined
const (
	// Constant role defined
	Promoter Role = "promoter"
	Admin    Role = "admin"

	// Promoter account status
	Inactive PromoterStatus = "inactive"
	Active   PromoterStatus = "active"
	Banned   PromoterStatus = "banned"

	// Notification status
	NotificationQueued NotificationStatus = "queued"
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
	NotificationRead   NotificationStatus = "read"

	// Invitation status
	InvitationIssued  InvitationStatus = "issued"
	InvitationSent    InvitationStatus = "sent"
	InvitationRevoked InvitationStatus = "revoked"
)

// PromoterAccount: a console user. Events, orders and sales live in the core API,
// the console only owns who may log in and what they may see
type PromoterAccount struct {
	Model
	Name         string         `gorm:"type:varchar(50);not null" json:"name"`
	LastName     string         `gorm:"type:varchar(50);not null" json:"last_name"`
	Email        string         `gorm:"type:varchar(100);not null;uniqueIndex" json:"email"`
	Password     string         `gorm:"type:varchar(60);not null" json:"-"`
	Role         Role           `gorm:"type:varchar(20);not null;default:promoter" json:"role"`
	Status       PromoterStatus `gorm:"type:varchar(20);not null;default:active" json:"status"`
	TokenVersion int            `gorm:"not null;default:0" json:"token_version"` // JWT refresh token version

	// Relationships
	Notifications []Notification `gorm:"foreignKey:PromoterID" json:"notifications,omitempty"`
	Invitations   []Invitation   `gorm:"foreignKey:PromoterID" json:"invitations,omitempty"`
}

// Notification feed entry shown in the console header. Written by the background
// worker when a push event or an invitation issuance lands
type Notification struct {
	Model
	PromoterID uuid.UUID          `gorm:"type:uuid;not null;index" json:"promoter_id"`
	EventID    string             `gorm:"type:varchar(24);index" json:"event_id"` // core event _id, optional
	Title      string             `gorm:"type:varchar(100);not null" json:"title"`
	Body       string             `gorm:"type:varchar(500);not null" json:"body"`
	Status     NotificationStatus `gorm:"type:varchar(20);not null;default:queued" json:"status"`
	ReadAt     *time.Time         `gorm:"type:timestamp" json:"read_at,omitempty"`

	// Relationships
	Promoter PromoterAccount `gorm:"foreignKey:PromoterID" json:"promoter"`
}

// Invitation issuance log. The invitation sale itself is created in the core API;
// this row tracks who issued it and holds the QR handed to the recipient
type Invitation struct {
	Model
	PromoterID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"promoter_id"`
	EventID        string           `gorm:"type:varchar(24);not null;index" json:"event_id"`
	RecipientName  string           `gorm:"type:varchar(100);not null" json:"recipient_name"`
	RecipientEmail string           `gorm:"type:varchar(100);not null" json:"recipient_email"`
	TicketType     string           `gorm:"type:varchar(50);not null" json:"ticket_type"`
	QR             string           `gorm:"type:varchar;not null" json:"qr"` // base64 PNG
	Status         InvitationStatus `gorm:"type:varchar(20);not null;default:issued" json:"status"`

	// Relationships
	Promoter PromoterAccount `gorm:"foreignKey:PromoterID" json:"promoter"`
}
