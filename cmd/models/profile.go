package models

import (
	"gorm.io/gorm"
)

type MentorProfile struct {
	gorm.Model
	UserID            uint   `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	Username          string `gorm:"column:username;size:20;uniqueIndex;not null" json:"username"`
	Name              string `gorm:"column:name;size:255;not null" json:"name"`
	Bio               string `gorm:"column:bio;type:text" json:"bio"`
	ProfessionalField string `gorm:"column:professional_field;size:100;not null" json:"professional_field"`
	Timezone          string `gorm:"column:timezone;size:64;not null;default:UTC" json:"timezone"`

	User         *User                `gorm:"foreignKey:UserID" json:"-"`
	Sessions     []BookingSession     `gorm:"foreignKey:MentorID;constraint:OnDelete:CASCADE" json:"sessions,omitempty"`
	Availability []MentorAvailability `gorm:"foreignKey:MentorID;constraint:OnDelete:CASCADE" json:"availability,omitempty"`
}

func (MentorProfile) TableName() string {
	return "mentor_profiles"
}
