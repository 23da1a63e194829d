package models

import (
	"strings"
	"time"
)

type Feedback struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID     string    `gorm:"type:varchar(128);index" json:"userId"`
	UserName   string    `gorm:"type:varchar(200)" json:"userName"`
	UserEmail  string    `gorm:"type:varchar(200)" json:"userEmail"`
	Rating     int       `gorm:"not null" json:"rating"`
	Suggestion string    `gorm:"type:text" json:"suggestion"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}

func (Feedback) TableName() string {
	return "feedback"
}

func (f *Feedback) Validate() error {
	if f.Rating < 1 || f.Rating > 5 {
		return invalid("rating", "rating must be between 1 and 5")
	}
	f.Suggestion = strings.TrimSpace(f.Suggestion)
	return nil
}

type ContactMessage struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"type:varchar(200)" json:"name"`
	Email     string    `gorm:"type:varchar(200)" json:"email"`
	Subject   string    `gorm:"type:varchar(300)" json:"subject"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

func (m *ContactMessage) Validate() error {
	m.Message = strings.TrimSpace(m.Message)
	if m.Message == "" {
		return invalid("message", "message is required")
	}
	return nil
}
