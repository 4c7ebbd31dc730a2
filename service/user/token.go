package user

import (
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nocall/nocall-server/cmd/models"
)

const (
	accessTokenMinutes = 7500
	refreshTokenDays   = 30
)

func generateJWT(userID uint, minutes int) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(minutes) * time.Minute)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("SECRET_KEY")))
}

func generateRefreshToken() string {
	return uuid.New().String()
}

// saveRefreshToken stores only a bcrypt hash of the refresh token so a leaked
// database dump cannot be replayed against the refresh endpoint.
func saveRefreshToken(db *gorm.DB, userID uint, refreshToken string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(refreshToken), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"refresh_token_hash":       string(hash),
		"refresh_token_expired_at": time.Now().Add(refreshTokenDays * 24 * time.Hour),
	}).Error
}

func refreshTokenMatches(user *models.User, refreshToken string) bool {
	if user.RefreshTokenHash == "" || time.Now().After(user.RefreshTokenExpiredAt) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.RefreshTokenHash), []byte(refreshToken)) == nil
}
