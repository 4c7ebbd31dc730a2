package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/nocall/nocall-server/cmd/models"
	"github.com/nocall/nocall-server/cmd/utils"
)

const nonceTTL = 10 * time.Minute

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

type Handler struct {
	db       *gorm.DB
	verifier SignatureVerifier
}

func NewHandler(db *gorm.DB, verifier SignatureVerifier) *Handler {
	return &Handler{db: db, verifier: verifier}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/nonce", h.handleNonce).Methods("POST")
	router.HandleFunc("/auth/verify", h.handleVerify).Methods("POST")
	router.HandleFunc("/auth/refresh", h.handleRefreshToken).Methods("POST")
	router.HandleFunc("/account", utils.AuthMiddleware(h.GetAccount)).Methods("GET")
	router.HandleFunc("/account", utils.AuthMiddleware(h.DeleteAccount)).Methods("DELETE")
}

func (h *Handler) handleNonce(w http.ResponseWriter, r *http.Request) {
	var nonceRequest struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&nonceRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	address := strings.ToLower(nonceRequest.Address)
	if !addressPattern.MatchString(address) {
		http.Error(w, "Invalid wallet address", http.StatusBadRequest)
		return
	}

	// A fresh nonce invalidates any outstanding one for the same address.
	if err := h.db.Where("address = ?", address).Delete(&models.LoginNonce{}).Error; err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	nonce := models.LoginNonce{
		Address:   address,
		Value:     uuid.New().String(),
		ExpiresAt: time.Now().Add(nonceTTL),
	}
	if err := h.db.Create(&nonce).Error; err != nil {
		http.Error(w, "Error creating nonce", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"nonce": nonce.Value})
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	var verifyRequest struct {
		Address   string `json:"address"`
		ChainID   int    `json:"chain_id"`
		Message   string `json:"message"`
		Signature string `json:"signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&verifyRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	address := strings.ToLower(verifyRequest.Address)
	if !addressPattern.MatchString(address) || verifyRequest.Message == "" || verifyRequest.Signature == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	var nonce models.LoginNonce
	if err := h.db.Where("address = ? AND expires_at > ?", address, time.Now()).
		Order("created_at DESC").First(&nonce).Error; err != nil {
		http.Error(w, "Nonce expired or not issued", http.StatusUnauthorized)
		return
	}
	if !strings.Contains(verifyRequest.Message, nonce.Value) {
		http.Error(w, "Message does not contain the issued nonce", http.StatusUnauthorized)
		return
	}

	valid, err := h.verifier.Verify(r.Context(), address, verifyRequest.Message, verifyRequest.Signature)
	if err != nil {
		log.Printf("Signature verification error for %s: %v", address, err)
		http.Error(w, "Error verifying signature", http.StatusInternalServerError)
		return
	}
	if !valid {
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	// Nonces are single-use.
	h.db.Delete(&nonce)

	user, err := h.findOrCreateUser(address, verifyRequest.ChainID)
	if err != nil {
		http.Error(w, "Error resolving user", http.StatusInternalServerError)
		return
	}

	accessToken, err := generateJWT(user.ID, accessTokenMinutes)
	if err != nil {
		http.Error(w, "Error generating access token", http.StatusInternalServerError)
		return
	}

	refreshToken := generateRefreshToken()
	if err := saveRefreshToken(h.db, user.ID, refreshToken); err != nil {
		http.Error(w, "Error saving refresh token", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"message":       "Login successful",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user_id":       user.ID,
	}

	var profile models.MentorProfile
	result := h.db.Where("user_id = ?", user.ID).First(&profile)
	if result.Error == nil {
		response["mentor_profile_id"] = profile.ID
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		http.Error(w, "Error fetching mentor profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// findOrCreateUser resolves a verified wallet to its user, registering a new
// anonymous account on first login.
func (h *Handler) findOrCreateUser(address string, chainID int) (*models.User, error) {
	var wallet models.WalletAddress
	result := h.db.Where("address = ?", address).First(&wallet)
	if result.Error == nil {
		var user models.User
		if err := h.db.First(&user, wallet.UserID).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	user := models.User{
		Name:  address,
		Email: fmt.Sprintf("%s@nocal.com", address),
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		wallet = models.WalletAddress{
			UserID:    user.ID,
			Address:   address,
			ChainID:   chainID,
			IsPrimary: true,
		}
		return tx.Create(&wallet).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Registered new wallet user %d for address %s", user.ID, address)
	return &user, nil
}

func (h *Handler) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	var refreshRequest struct {
		UserID       uint   `json:"user_id"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&refreshRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := h.db.First(&user, refreshRequest.UserID).Error; err != nil {
		http.Error(w, "Invalid refresh token", http.StatusUnauthorized)
		return
	}

	if !refreshTokenMatches(&user, refreshRequest.RefreshToken) {
		http.Error(w, "Invalid refresh token", http.StatusUnauthorized)
		return
	}

	accessToken, err := generateJWT(user.ID, accessTokenMinutes)
	if err != nil {
		http.Error(w, "Error generating access token", http.StatusInternalServerError)
		return
	}

	// Rotate the refresh token on every use.
	refreshToken := generateRefreshToken()
	if err := saveRefreshToken(h.db, user.ID, refreshToken); err != nil {
		http.Error(w, "Error saving refresh token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user models.User
	if err := h.db.Preload("Wallets").First(&user, userID).Error; err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var profile models.MentorProfile
		result := tx.Where("user_id = ?", userID).First(&profile)
		if result.Error == nil {
			if err := tx.Where("mentor_id = ?", profile.ID).Delete(&models.Booking{}).Error; err != nil {
				return err
			}
			if err := tx.Where("mentor_id = ?", profile.ID).Delete(&models.MentorAvailability{}).Error; err != nil {
				return err
			}
			if err := tx.Where("mentor_id = ?", profile.ID).Delete(&models.BookingSession{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&profile).Error; err != nil {
				return err
			}
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		if err := tx.Where("mentee_id = ?", userID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.WalletAddress{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		http.Error(w, "Error deleting account", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Account deleted successfully",
	})
}
