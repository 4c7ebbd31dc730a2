package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name                  string    `gorm:"column:name;size:255;not null" json:"name"`
	Email                 string    `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	EmailVerified         bool      `gorm:"column:email_verified;default:false" json:"email_verified"`
	Image                 string    `gorm:"column:image;size:500" json:"image,omitempty"`
	RefreshTokenHash      string    `gorm:"column:refresh_token_hash;size:255" json:"-"`
	RefreshTokenExpiredAt time.Time `gorm:"column:refresh_token_expired_at" json:"-"`

	Wallets       []WalletAddress `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"wallets,omitempty"`
	MentorProfile *MentorProfile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"mentor_profile,omitempty"`
}

type WalletAddress struct {
	gorm.Model
	UserID    uint   `gorm:"column:user_id;not null;index" json:"user_id"`
	Address   string `gorm:"column:address;size:64;uniqueIndex;not null" json:"address"`
	ChainID   int    `gorm:"column:chain_id;not null" json:"chain_id"`
	IsPrimary bool   `gorm:"column:is_primary;default:false" json:"is_primary"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (WalletAddress) TableName() string {
	return "wallet_addresses"
}

// LoginNonce is a single-use challenge issued before a wallet signature login.
type LoginNonce struct {
	gorm.Model
	Address   string    `gorm:"column:address;size:64;not null;index" json:"address"`
	Value     string    `gorm:"column:value;size:64;uniqueIndex;not null" json:"value"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
}

func (LoginNonce) TableName() string {
	return "login_nonces"
}
