package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Experience levels accepted on a user profile.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// User represents a platform user. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"size:64;not null" json:"username"`
	Email        string         `gorm:"size:255" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Provider     string         `gorm:"size:32" json:"provider"`
	ProviderID   string         `gorm:"size:255" json:"provider_id"`
	RegisterIP   string         `gorm:"size:45" json:"register_ip"`
	AvatarURL    string         `gorm:"size:512" json:"avatar_url"`
	Bio          string         `gorm:"size:255" json:"bio"`
	// Interview preparation profile. Companies and topics are JSON string arrays.
	TargetCompanies string         `gorm:"type:text" json:"target_companies"`
	PracticeTopics  string         `gorm:"type:text" json:"practice_topics"`
	ExperienceLevel string         `gorm:"size:16;default:'Beginner'" json:"experience_level"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Submissions     []Submission   `json:"-"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// TargetCompanyList decodes the stored JSON array, tolerating empty values.
func (u *User) TargetCompanyList() []string {
	return decodeStringList(u.TargetCompanies)
}

// PracticeTopicList decodes the stored JSON array, tolerating empty values.
func (u *User) PracticeTopicList() []string {
	return decodeStringList(u.PracticeTopics)
}

// ValidExperienceLevel reports whether level is one of the accepted values.
func ValidExperienceLevel(level string) bool {
	switch level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

func decodeStringList(raw string) []string {
	if raw == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil
	}
	return list
}

// EncodeStringList marshals a string slice for storage in a text column.
func EncodeStringList(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}
