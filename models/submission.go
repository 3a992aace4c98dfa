package models

import "time"

// Submission verdicts.
const (
	VerdictPassed = "passed"
	VerdictFailed = "failed"
)

// Submission records one judged attempt at a problem. The verdict comes from
// the simulated judge; Reference is an opaque token handed back to the client.
type Submission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Reference string    `gorm:"size:36;uniqueIndex" json:"reference"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	ProblemID uint      `gorm:"index;not null" json:"problem_id"`
	Language  string    `gorm:"size:32" json:"language"`
	Code      string    `gorm:"type:text" json:"-"`
	Verdict   string    `gorm:"size:16;index;not null" json:"verdict"`
	CreatedAt time.Time `json:"created_at"`
	Problem   Problem   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"problem"`
}

// Passed reports whether the submission was accepted.
func (s *Submission) Passed() bool {
	return s.Verdict == VerdictPassed
}
