package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusRejected = "rejected"
)

// Group pools transactions shared between its members. It has exactly
// one owner at all times; ownership can be transferred but never left
// empty. The owner always has an admin membership row.
type Group struct {
	ID          string  `gorm:"primaryKey;size:36"`
	Name        string  `gorm:"size:255;not null"`
	Description string  `gorm:"type:text;not null"`
	PhotoID     *string `gorm:"size:36"`
	OwnerID     string  `gorm:"size:36;index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Members      []GroupMember   `gorm:"foreignKey:GroupID"`
	Categories   []GroupCategory `gorm:"foreignKey:GroupID"`
	Transactions []Transaction   `gorm:"foreignKey:GroupID"`
	Invites      []GroupInvite   `gorm:"foreignKey:GroupID"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// GroupMember joins a user to a group. The unique index on
// (group_id, user_id) guarantees a user can never hold two membership
// rows in the same group, even under concurrent invite accepts.
type GroupMember struct {
	ID       string    `gorm:"primaryKey;size:36"`
	GroupID  string    `gorm:"size:36;not null;uniqueIndex:idx_group_members_group_user"`
	UserID   string    `gorm:"size:36;not null;uniqueIndex:idx_group_members_group_user"`
	IsAdmin  bool      `gorm:"not null;default:false"`
	JoinedAt time.Time `gorm:"autoCreateTime"`

	User User `gorm:"foreignKey:UserID"`
}

func (m *GroupMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// GroupCategory is a per-group income/expense category.
type GroupCategory struct {
	ID        string `gorm:"primaryKey;size:36"`
	GroupID   string `gorm:"size:36;index;not null"`
	Name      string `gorm:"size:255;not null"`
	Emoji     string `gorm:"size:10;not null"`
	Type      string `gorm:"size:16;not null"` // income / expense
	CreatedAt time.Time
}

func (c *GroupCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// GroupInvite invites an email (not necessarily a registered user yet)
// into a group. Status is terminal once accepted or rejected.
type GroupInvite struct {
	ID           string `gorm:"primaryKey;size:36"`
	GroupID      string `gorm:"size:36;index;not null"`
	InvitedBy    string `gorm:"size:36;not null"`
	InvitedEmail string `gorm:"size:255;index;not null"`
	Status       string `gorm:"size:16;index;not null;default:pending"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Group   Group `gorm:"foreignKey:GroupID"`
	Inviter User  `gorm:"foreignKey:InvitedBy"`
}

func (i *GroupInvite) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
