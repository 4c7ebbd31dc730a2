package profile

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/nocall/nocall-server/cmd/models"
	"github.com/nocall/nocall-server/cmd/utils"
	"github.com/nocall/nocall-server/service/scheduling"
)

// ProfessionalFields mirrors the selectable mentor specialisations.
var ProfessionalFields = []string{
	"Software Engineering",
	"Product Management",
	"Design (UI/UX)",
	"Data Science",
	"DevOps & Infrastructure",
	"Cybersecurity",
	"AI/ML Engineering",
	"Mobile Development",
	"Web Development",
	"Cloud Architecture",
	"Blockchain Development",
	"Game Development",
	"Technical Writing",
	"Digital Marketing",
	"Business Strategy",
	"Project Management",
	"Entrepreneurship",
	"Finance & Investment",
	"Sales & Business Development",
	"Customer Success",
	"Content Creation",
	"Social Media Marketing",
	"SEO/SEM",
	"E-commerce",
	"Video Production",
	"Photography",
	"Music Production",
	"3D Animation",
	"VFX & Motion Graphics",
	"NFTs & Crypto",
	"Web3 Development",
	"Smart Contract Development",
}

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/profile", utils.AuthMiddleware(h.GetProfile)).Methods("GET")
	router.HandleFunc("/profile", utils.AuthMiddleware(h.UpsertProfile)).Methods("PUT")
}

type profileRequest struct {
	Username          string `json:"username"`
	Name              string `json:"name"`
	Bio               string `json:"bio"`
	ProfessionalField string `json:"professional_field"`
	Timezone          string `json:"timezone"`
}

func validateProfile(req profileRequest) []scheduling.FieldError {
	var errs []scheduling.FieldError

	if len(req.Username) < 3 {
		errs = append(errs, scheduling.FieldError{Field: "username", Message: "Username must be at least 3 characters"})
	} else if len(req.Username) > 20 {
		errs = append(errs, scheduling.FieldError{Field: "username", Message: "Username must be at most 20 characters"})
	} else if !usernamePattern.MatchString(req.Username) {
		errs = append(errs, scheduling.FieldError{Field: "username", Message: "Username can only contain letters, numbers, and underscores"})
	}

	if len(req.Name) < 2 {
		errs = append(errs, scheduling.FieldError{Field: "name", Message: "Full name must be at least 2 characters"})
	} else if len(req.Name) > 50 {
		errs = append(errs, scheduling.FieldError{Field: "name", Message: "Full name must be at most 50 characters"})
	}

	if len(req.Bio) > 500 {
		errs = append(errs, scheduling.FieldError{Field: "bio", Message: "Bio must be at most 500 characters"})
	}

	if !validProfessionalField(req.ProfessionalField) {
		errs = append(errs, scheduling.FieldError{Field: "professional_field", Message: "Please select a professional field"})
	}

	if req.Timezone == "" {
		errs = append(errs, scheduling.FieldError{Field: "timezone", Message: "Timezone is required"})
	} else if _, err := time.LoadLocation(req.Timezone); err != nil {
		errs = append(errs, scheduling.FieldError{Field: "timezone", Message: "Invalid timezone"})
	}

	return errs
}

func validProfessionalField(field string) bool {
	for _, f := range ProfessionalFields {
		if f == field {
			return true
		}
	}
	return false
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var profile models.MentorProfile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

func (h *Handler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// A blank username falls back to one derived from the display name. An
	// explicitly supplied username is never rewritten.
	if req.Username == "" {
		req.Username = NormalizeUsername(req.Name)
	}

	if errs := validateProfile(req); len(errs) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"errors": errs})
		return
	}

	var taken models.MentorProfile
	result := h.db.Where("username = ? AND user_id != ?", req.Username, userID).First(&taken)
	if result.Error == nil {
		http.Error(w, "Username is already taken", http.StatusConflict)
		return
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	var profile models.MentorProfile
	result = h.db.Where("user_id = ?", userID).First(&profile)
	switch {
	case result.Error == nil:
		profile.Username = req.Username
		profile.Name = req.Name
		profile.Bio = req.Bio
		profile.ProfessionalField = req.ProfessionalField
		profile.Timezone = req.Timezone
		if err := h.db.Save(&profile).Error; err != nil {
			http.Error(w, "Error updating profile", http.StatusInternalServerError)
			return
		}
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		profile = models.MentorProfile{
			UserID:            userID,
			Username:          req.Username,
			Name:              req.Name,
			Bio:               req.Bio,
			ProfessionalField: req.ProfessionalField,
			Timezone:          req.Timezone,
		}
		if err := h.db.Create(&profile).Error; err != nil {
			http.Error(w, "Error creating profile", http.StatusInternalServerError)
			return
		}
	default:
		http.Error(w, "Error retrieving profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}
