package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/nocall/nocall-server/cmd/models"
	"github.com/nocall/nocall-server/cmd/utils"
	"github.com/nocall/nocall-server/service/scheduling"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/mentors/{username}", h.GetMentor).Methods("GET")
	router.HandleFunc("/mentors/{username}/sessions/{id:[0-9]+}/slots", h.GetMentorSlots).Methods("GET")
	router.HandleFunc("/bookings", utils.AuthMiddleware(h.CreateBooking)).Methods("POST")
	router.HandleFunc("/bookings", utils.AuthMiddleware(h.GetBookings)).Methods("GET")
	router.HandleFunc("/bookings/{id:[0-9]+}/cancel", utils.AuthMiddleware(h.CancelBooking)).Methods("POST")
}

func (h *Handler) GetMentor(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	var mentor models.MentorProfile
	if err := h.db.Where("username = ?", username).First(&mentor).Error; err != nil {
		http.Error(w, "Mentor not found", http.StatusNotFound)
		return
	}

	var sessions []models.BookingSession
	if err := h.db.Where("mentor_id = ? AND is_active = ?", mentor.ID, true).Find(&sessions).Error; err != nil {
		http.Error(w, "Error retrieving sessions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"username":           mentor.Username,
		"name":               mentor.Name,
		"bio":                mentor.Bio,
		"professional_field": mentor.ProfessionalField,
		"timezone":           mentor.Timezone,
		"sessions":           sessions,
	})
}

func (h *Handler) GetMentorSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var mentor models.MentorProfile
	if err := h.db.Where("username = ?", vars["username"]).First(&mentor).Error; err != nil {
		http.Error(w, "Mentor not found", http.StatusNotFound)
		return
	}

	sessionID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	var session models.BookingSession
	if err := h.db.Where("id = ? AND mentor_id = ? AND is_active = ?", sessionID, mentor.ID, true).
		First(&session).Error; err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	slots, err := DeriveSlots(h.db, &mentor, &session, date, time.Now())
	if err != nil {
		http.Error(w, "Error deriving slots", http.StatusInternalServerError)
		return
	}

	formatted := make([]string, 0, len(slots))
	for _, s := range slots {
		formatted = append(formatted, s.Format(time.RFC3339))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"date":     date.Format("2006-01-02"),
		"timezone": mentor.Timezone,
		"slots":    formatted,
	})
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	menteeID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var bookingRequest struct {
		SessionID   uint   `json:"session_id"`
		ScheduledAt string `json:"scheduled_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&bookingRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, bookingRequest.ScheduledAt)
	if err != nil {
		http.Error(w, "Invalid scheduled_at. Use RFC3339", http.StatusBadRequest)
		return
	}

	var session models.BookingSession
	if err := h.db.Where("id = ? AND is_active = ?", bookingRequest.SessionID, true).First(&session).Error; err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	var mentor models.MentorProfile
	if err := h.db.First(&mentor, session.MentorID).Error; err != nil {
		http.Error(w, "Mentor not found", http.StatusNotFound)
		return
	}

	// The requested start must be one of the currently derivable free slots
	// on its calendar day in the mentor's timezone.
	slots, err := DeriveSlots(h.db, &mentor, &session, scheduledAt.In(MentorLocation(&mentor)), time.Now())
	if err != nil {
		http.Error(w, "Error deriving slots", http.StatusInternalServerError)
		return
	}
	if !containsSlot(slots, scheduledAt) {
		http.Error(w, "Requested slot is not available", http.StatusConflict)
		return
	}

	status := scheduling.StatusPending
	if session.Type == scheduling.TypeFree {
		status = scheduling.StatusConfirmed
	}

	booking := models.Booking{
		BookingSessionID: session.ID,
		MenteeID:         menteeID,
		MentorID:         mentor.ID,
		ScheduledAt:      scheduledAt.UTC(),
		Status:           status,
		PaymentAmount:    session.Price,
		Token:            session.Token,
	}
	if err := h.db.Create(&booking).Error; err != nil {
		http.Error(w, "Error creating booking", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(booking)
}

func containsSlot(slots []time.Time, want time.Time) bool {
	for _, s := range slots {
		if s.Equal(want) {
			return true
		}
	}
	return false
}

func (h *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	menteeID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := h.db.Preload("Session").Preload("Mentor").Where("mentee_id = ?", menteeID)
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Order("scheduled_at").Find(&bookings).Error; err != nil {
		http.Error(w, "Error retrieving bookings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"bookings": bookings,
		"total":    len(bookings),
	})
}

func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	menteeID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	bookingID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid booking ID", http.StatusBadRequest)
		return
	}

	var booking models.Booking
	if err := h.db.Where("id = ? AND mentee_id = ?", bookingID, menteeID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Booking not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error retrieving booking", http.StatusInternalServerError)
		return
	}

	if booking.Status != scheduling.StatusPending && booking.Status != scheduling.StatusConfirmed {
		http.Error(w, "Booking cannot be cancelled", http.StatusConflict)
		return
	}

	booking.Status = scheduling.StatusCancelled
	if err := h.db.Save(&booking).Error; err != nil {
		http.Error(w, "Error cancelling booking", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(booking)
}
