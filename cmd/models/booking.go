package models

import (
	"time"

	"gorm.io/gorm"
)

type Booking struct {
	gorm.Model
	BookingSessionID uint      `gorm:"column:booking_session_id;not null;index" json:"booking_session_id"`
	MenteeID         uint      `gorm:"column:mentee_id;not null;index" json:"mentee_id"`
	MentorID         uint      `gorm:"column:mentor_id;not null;index" json:"mentor_id"`
	ScheduledAt      time.Time `gorm:"column:scheduled_at;not null" json:"scheduled_at"`
	Status           string    `gorm:"column:status;size:20;not null;default:pending;index" json:"status"`
	PaymentTxHash    string    `gorm:"column:payment_tx_hash;size:100" json:"payment_tx_hash,omitempty"`
	PaymentAmount    string    `gorm:"column:payment_amount;size:50" json:"payment_amount,omitempty"`
	Token            string    `gorm:"column:token;size:20" json:"token,omitempty"`

	Session *BookingSession `gorm:"foreignKey:BookingSessionID" json:"session,omitempty"`
	Mentee  *User           `gorm:"foreignKey:MenteeID" json:"mentee,omitempty"`
	Mentor  *MentorProfile  `gorm:"foreignKey:MentorID" json:"mentor,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}
