package models

import "time"

// TopicProficiency keeps per (user, topic) solved/attempted counters. The
// derived score and review flag are computed on read, never stored, so the
// counters stay the single source of truth.
type TopicProficiency struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_proficiency_user_topic,unique;not null" json:"user_id"`
	Topic     string    `gorm:"index:idx_proficiency_user_topic,unique;size:64;not null" json:"topic"`
	Solved    int       `gorm:"not null;default:0" json:"solved"`
	Total     int       `gorm:"not null;default:0" json:"total"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
