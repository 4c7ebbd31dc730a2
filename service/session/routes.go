package session

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/nocall/nocall-server/cmd/models"
	"github.com/nocall/nocall-server/cmd/utils"
	"github.com/nocall/nocall-server/service/booking"
	"github.com/nocall/nocall-server/service/scheduling"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/sessions", utils.AuthMiddleware(h.CreateSession)).Methods("POST")
	router.HandleFunc("/sessions", utils.AuthMiddleware(h.GetSessions)).Methods("GET")
	router.HandleFunc("/sessions/{id:[0-9]+}", utils.AuthMiddleware(h.GetSession)).Methods("GET")
	router.HandleFunc("/sessions/{id:[0-9]+}", utils.AuthMiddleware(h.UpdateSession)).Methods("PUT")
	router.HandleFunc("/sessions/{id:[0-9]+}", utils.AuthMiddleware(h.DeleteSession)).Methods("DELETE")
	router.HandleFunc("/sessions/{id:[0-9]+}/slots", utils.AuthMiddleware(h.GetSessionSlots)).Methods("GET")
}

type sessionPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Token       string `json:"token"`
	Price       string `json:"price"`
	Duration    int    `json:"duration"`
	TimeBreak   int    `json:"time_break"`
}

type createSessionRequest struct {
	Session      sessionPayload               `json:"session"`
	Availability []scheduling.DayAvailability `json:"availability"`
}

func toConfig(s sessionPayload, availability []scheduling.DayAvailability) scheduling.SessionConfig {
	return scheduling.SessionConfig{
		Title:        s.Title,
		Description:  s.Description,
		Type:         s.Type,
		Token:        s.Token,
		Price:        s.Price,
		Duration:     s.Duration,
		TimeBreak:    s.TimeBreak,
		Availability: availability,
	}
}

func writeValidationErrors(w http.ResponseWriter, errs []scheduling.FieldError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]interface{}{"errors": errs})
}

// mentorProfile resolves the authenticated user to their mentor profile.
func (h *Handler) mentorProfile(r *http.Request) (*models.MentorProfile, error) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		return nil, err
	}

	var profile models.MentorProfile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	mentor, err := h.mentorProfile(r)
	if err != nil {
		http.Error(w, "Mentor profile not found", http.StatusNotFound)
		return
	}

	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// The authoritative check: client-side validation is never trusted.
	if errs := scheduling.Validate(toConfig(req.Session, req.Availability)); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	session := models.BookingSession{
		MentorID:    mentor.ID,
		Title:       req.Session.Title,
		Description: req.Session.Description,
		Type:        req.Session.Type,
		Token:       req.Session.Token,
		Price:       req.Session.Price,
		Duration:    req.Session.Duration,
		TimeBreak:   req.Session.TimeBreak,
		IsActive:    true,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		return replaceAvailability(tx, mentor.ID, req.Availability)
	})
	if err != nil {
		http.Error(w, "Error creating session", http.StatusInternalServerError)
		return
	}

	availability, err := h.availabilityOf(mentor.ID)
	if err != nil {
		http.Error(w, "Error retrieving availability", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"session":      session,
		"availability": availability,
	})
}

// replaceAvailability swaps a mentor's whole weekly set in one statement
// sequence; callers wrap it in a transaction so concurrent readers never see
// an empty set.
func replaceAvailability(tx *gorm.DB, mentorID uint, days []scheduling.DayAvailability) error {
	if err := tx.Where("mentor_id = ?", mentorID).Delete(&models.MentorAvailability{}).Error; err != nil {
		return err
	}

	for _, day := range days {
		if !day.Enabled {
			continue
		}
		row := models.MentorAvailability{
			MentorID:  mentorID,
			DayOfWeek: day.DayOfWeek,
			StartTime: day.StartTime,
			EndTime:   day.EndTime,
			Duration:  day.Duration,
			TimeBreak: day.TimeBreak,
			IsActive:  true,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) availabilityOf(mentorID uint) ([]models.MentorAvailability, error) {
	var availability []models.MentorAvailability
	err := h.db.Where("mentor_id = ?", mentorID).Order("day_of_week").Find(&availability).Error
	return availability, err
}

func (h *Handler) GetSessions(w http.ResponseWriter, r *http.Request) {
	mentor, err := h.mentorProfile(r)
	if err != nil {
		http.Error(w, "Mentor profile not found", http.StatusNotFound)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize := 10

	query := h.db.Model(&models.BookingSession{}).Where("mentor_id = ?", mentor.ID)
	if active := r.URL.Query().Get("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	var total int64
	query.Count(&total)

	var sessions []models.BookingSession
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).Find(&sessions).Error; err != nil {
		http.Error(w, "Error retrieving sessions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"sessions":    sessions,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	mentor, err := h.mentorProfile(r)
	if err != nil {
		http.Error(w, "Mentor profile not found", http.StatusNotFound)
		return
	}

	sessionID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	var session models.BookingSession
	if err := h.db.Where("id = ? AND mentor_id = ?", sessionID, mentor.ID).First(&session).Error; err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	availability, err := h.availabilityOf(mentor.ID)
	if err != nil {
		http.Error(w, "Error retrieving availability", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"session":      session,
		"availability": availability,
	})
}

type updateSessionFields struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	Token       *string `json:"token"`
	Price       *string `json:"price"`
	Duration    *int    `json:"duration"`
	TimeBreak   *int    `json:"time_break"`
	IsActive    *bool   `json:"is_active"`
}

type updateSessionRequest struct {
	Session      updateSessionFields           `json:"session"`
	Availability *[]scheduling.DayAvailability `json:"availability"`
}

func (h *Handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	mentor, err := h.mentorProfile(r)
	if err != nil {
		http.Error(w, "Mentor profile not found", http.StatusNotFound)
		return
	}

	sessionID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	var session models.BookingSession
	if err := h.db.Where("id = ? AND mentor_id = ?", sessionID, mentor.ID).First(&session).Error; err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	var req updateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	applyUpdate(&session, req.Session)

	// Validate the effective configuration: the merged session fields plus
	// either the replacement availability set or the one already stored.
	days := req.Availability
	if days == nil {
		stored, err := h.availabilityOf(mentor.ID)
		if err != nil {
			http.Error(w, "Error retrieving availability", http.StatusInternalServerError)
			return
		}
		converted := storedToDays(stored)
		days = &converted
	}

	cfg := toConfig(sessionPayload{
		Title:       session.Title,
		Description: session.Description,
		Type:        session.Type,
		Token:       session.Token,
		Price:       session.Price,
		Duration:    session.Duration,
		TimeBreak:   session.TimeBreak,
	}, *days)
	if errs := scheduling.Validate(cfg); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&session).Error; err != nil {
			return err
		}
		if req.Availability != nil {
			return replaceAvailability(tx, mentor.ID, *req.Availability)
		}
		return nil
	})
	if err != nil {
		http.Error(w, "Error updating session", http.StatusInternalServerError)
		return
	}

	availability, err := h.availabilityOf(mentor.ID)
	if err != nil {
		http.Error(w, "Error retrieving availability", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"session":      session,
		"availability": availability,
	})
}

func applyUpdate(session *models.BookingSession, fields updateSessionFields) {
	if fields.Title != nil {
		session.Title = *fields.Title
	}
	if fields.Description != nil {
		session.Description = *fields.Description
	}
	if fields.Type != nil {
		session.Type = *fields.Type
	}
	if fields.Token != nil {
		session.Token = *fields.Token
	}
	if fields.Price != nil {
		session.Price = *fields.Price
	}
	if fields.Duration != nil {
		session.Duration = *fields.Duration
	}
	if fields.TimeBreak != nil {
		session.TimeBreak = *fields.TimeBreak
	}
	if fields.IsActive != nil {
		session.IsActive = *fields.IsActive
	}
}

func storedToDays(rows []models.MentorAvailability) []scheduling.DayAvailability {
	days := make([]scheduling.DayAvailability, 0, len(rows))
	for _, row := range rows {
		days = append(days, scheduling.DayAvailability{
			DayOfWeek: row.DayOfWeek,
			Enabled:   row.IsActive,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
			Duration:  row.Duration,
			TimeBreak: row.TimeBreak,
		})
	}
	return days
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	mentor, err := h.mentorProfile(r)
	if err != nil {
		http.Error(w, "Mentor profile not found", http.StatusNotFound)
		return
	}

	sessionID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	var session models.BookingSession
	if err := h.db.Where("id = ? AND mentor_id = ?", sessionID, mentor.ID).First(&session).Error; err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_session_id = ?", session.ID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("mentor_id = ?", mentor.ID).Delete(&models.MentorAvailability{}).Error; err != nil {
			return err
		}
		return tx.Delete(&session).Error
	})
	if err != nil {
		http.Error(w, "Error deleting session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Session deleted successfully",
	})
}

func (h *Handler) GetSessionSlots(w http.ResponseWriter, r *http.Request) {
	mentor, err := h.mentorProfile(r)
	if err != nil {
		http.Error(w, "Mentor profile not found", http.StatusNotFound)
		return
	}

	sessionID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	var session models.BookingSession
	if err := h.db.Where("id = ? AND mentor_id = ?", sessionID, mentor.ID).First(&session).Error; err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	slots, err := booking.DeriveSlots(h.db, mentor, &session, date, time.Now())
	if err != nil {
		http.Error(w, "Error deriving slots", http.StatusInternalServerError)
		return
	}

	writeSlots(w, date, mentor.Timezone, slots)
}

func writeSlots(w http.ResponseWriter, date time.Time, timezone string, slots []time.Time) {
	formatted := make([]string, 0, len(slots))
	for _, s := range slots {
		formatted = append(formatted, s.Format(time.RFC3339))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"date":     date.Format("2006-01-02"),
		"timezone": timezone,
		"slots":    formatted,
	})
}
