package models

import (
	"gorm.io/gorm"
)

// MentorAvailability is one weekday's working window. The full set for a
// mentor is replaced wholesale on update, inside a single transaction.
type MentorAvailability struct {
	gorm.Model
	MentorID  uint   `gorm:"column:mentor_id;not null;index" json:"mentor_id"`
	DayOfWeek int    `gorm:"column:day_of_week;not null;index" json:"day_of_week"`
	StartTime string `gorm:"column:start_time;size:5;not null" json:"start_time"`
	EndTime   string `gorm:"column:end_time;size:5;not null" json:"end_time"`
	Duration  int    `gorm:"column:duration;not null" json:"duration"`
	TimeBreak int    `gorm:"column:time_break;not null;default:5" json:"time_break"`
	IsActive  bool   `gorm:"column:is_active;default:true" json:"is_active"`

	Mentor *MentorProfile `gorm:"foreignKey:MentorID" json:"-"`
}

func (MentorAvailability) TableName() string {
	return "mentor_availabilities"
}
