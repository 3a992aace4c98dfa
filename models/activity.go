package models

import "time"

// DayLayout is the canonical calendar-day key format for activity records.
// A plain date key avoids the timezone drift a timestamp column would invite.
const DayLayout = "2006-01-02"

// ActivityRecord stores the number of problems a user solved on one calendar day.
// At most one row exists per (user, day); repeat solves increment Count in place.
type ActivityRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_activity_user_day,unique;not null" json:"user_id"`
	Day       string    `gorm:"index:idx_activity_user_day,unique;size:10;not null" json:"day"`
	Count     int       `gorm:"not null;default:0" json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DayTime parses the day key. The zero time signals a corrupt key.
func (a *ActivityRecord) DayTime() time.Time {
	t, err := time.ParseInLocation(DayLayout, a.Day, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
