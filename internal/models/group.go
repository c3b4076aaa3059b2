package models

import (
	"time"
)

// Group is a training group owned by a coach.
type Group struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CoachID     uint64    `gorm:"not null;index" json:"coachId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GroupPatch is a partial update for Group. Nil fields are retained.
type GroupPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	CoachID     *uint64 `json:"coachId,omitempty"`
}

// Apply merges the patch into g, field by field.
func (p GroupPatch) Apply(g *Group) {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.CoachID != nil {
		g.CoachID = *p.CoachID
	}
}

// GroupMember links a user to a group. The (GroupID, UserID) pair is
// unique; the store enforces it by returning the existing row on a
// duplicate add.
type GroupMember struct {
	ID       uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID  uint64    `gorm:"not null;index:idx_group_member,unique" json:"groupId"`
	UserID   uint64    `gorm:"not null;index:idx_group_member,unique" json:"userId"`
	JoinedAt time.Time `json:"joinedAt"`
}
