package models

import "time"

// Problem difficulties.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Problem is one catalog entry. Topics and Companies are JSON string arrays;
// Frequency is a popularity weight used to order recommendations.
type Problem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Slug        string    `gorm:"size:255;uniqueIndex" json:"slug"`
	Statement   string    `gorm:"type:text;not null" json:"statement"`
	Difficulty  string    `gorm:"size:16;index;not null" json:"difficulty"`
	Topics      string    `gorm:"type:text" json:"topics"`
	Companies   string    `gorm:"type:text" json:"companies"`
	Frequency   int       `gorm:"index;default:0" json:"frequency"`
	Acceptance  float64   `gorm:"default:0" json:"acceptance"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TopicList decodes the stored topics array.
func (p *Problem) TopicList() []string {
	return decodeStringList(p.Topics)
}

// CompanyList decodes the stored companies array.
func (p *Problem) CompanyList() []string {
	return decodeStringList(p.Companies)
}

// ValidDifficulty reports whether d is one of the accepted values.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
