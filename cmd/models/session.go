package models

import (
	"gorm.io/gorm"
)

// BookingSession is a mentor-owned bookable offering. Token and Price are
// empty when Type is FREE and both set (price > 0) otherwise.
type BookingSession struct {
	gorm.Model
	MentorID    uint   `gorm:"column:mentor_id;not null;index" json:"mentor_id"`
	Title       string `gorm:"column:title;size:100;not null" json:"title"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Type        string `gorm:"column:type;size:20;not null;index" json:"type"`
	Token       string `gorm:"column:token;size:20" json:"token,omitempty"`
	Price       string `gorm:"column:price;size:50" json:"price,omitempty"`
	Duration    int    `gorm:"column:duration;not null" json:"duration"`
	TimeBreak   int    `gorm:"column:time_break;not null;default:5" json:"time_break"`
	IsActive    bool   `gorm:"column:is_active;default:true" json:"is_active"`

	Mentor *MentorProfile `gorm:"foreignKey:MentorID" json:"-"`
}

func (BookingSession) TableName() string {
	return "booking_sessions"
}
