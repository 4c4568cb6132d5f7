package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserProfile is the row-based profile store. Everything interview-scoped
// lives in the key-value store; only durable account data lands here.
type UserProfile struct {
	ID          string `json:"id" gorm:"primaryKey;size:255"`
	DisplayName string `json:"display_name" gorm:"size:100"`
	Email       *string `json:"email" gorm:"uniqueIndex;size:255"`

	// Default interview setup, reused to prefill the next session
	PreferredJobTitle *string        `json:"preferred_job_title" gorm:"size:200"`
	ResumeText        *string        `json:"resume_text" gorm:"type:text"`
	Preferences       datatypes.JSON `json:"preferences" gorm:"type:jsonb"`

	// Paywall bookkeeping
	IsSubscribed     bool       `json:"is_subscribed" gorm:"default:false"`
	SubscriptionDate *time.Time `json:"subscription_date"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// ContactSubmission is a free-form message from the contact page.
type ContactSubmission struct {
	ID      uint           `json:"id" gorm:"primaryKey"`
	Name    string         `json:"name" gorm:"size:100"`
	Email   string         `json:"email" gorm:"not null;size:255"`
	Message string         `json:"message" gorm:"type:text;not null"`
	Payload datatypes.JSON `json:"payload" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
}

func (ContactSubmission) TableName() string {
	return "contact_submissions"
}
