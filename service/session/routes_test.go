package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nocall/nocall-server/cmd/models"
	"github.com/nocall/nocall-server/service/scheduling"
)

func TestApplyUpdate_PartialFields(t *testing.T) {
	session := models.BookingSession{
		Title:       "Original title",
		Description: "Original description text",
		Type:        scheduling.TypeFree,
		Duration:    30,
		TimeBreak:   5,
		IsActive:    true,
	}

	newTitle := "Updated title"
	newType := scheduling.TypePaid
	newToken := "USDC"
	newPrice := "25"
	inactive := false

	applyUpdate(&session, updateSessionFields{
		Title:    &newTitle,
		Type:     &newType,
		Token:    &newToken,
		Price:    &newPrice,
		IsActive: &inactive,
	})

	assert.Equal(t, "Updated title", session.Title)
	assert.Equal(t, "Original description text", session.Description)
	assert.Equal(t, scheduling.TypePaid, session.Type)
	assert.Equal(t, "USDC", session.Token)
	assert.Equal(t, "25", session.Price)
	assert.Equal(t, 30, session.Duration)
	assert.False(t, session.IsActive)
}

func TestApplyUpdate_NoFields(t *testing.T) {
	session := models.BookingSession{Title: "Keep", Duration: 45, TimeBreak: 10}
	applyUpdate(&session, updateSessionFields{})
	assert.Equal(t, models.BookingSession{Title: "Keep", Duration: 45, TimeBreak: 10}, session)
}

func TestStoredToDays(t *testing.T) {
	rows := []models.MentorAvailability{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", Duration: 30, TimeBreak: 5, IsActive: true},
		{DayOfWeek: 3, StartTime: "10:00", EndTime: "12:00", Duration: 15, TimeBreak: 5, IsActive: false},
	}

	days := storedToDays(rows)
	require.Len(t, days, 2)
	assert.Equal(t, scheduling.DayAvailability{
		DayOfWeek: 1, Enabled: true, StartTime: "09:00", EndTime: "17:00", Duration: 30, TimeBreak: 5,
	}, days[0])
	assert.False(t, days[1].Enabled)
}

func TestToConfig_RoundTrip(t *testing.T) {
	payload := sessionPayload{
		Title:       "Pairing session",
		Description: "Pair on a real problem for an hour.",
		Type:        scheduling.TypePaid,
		Token:       "USDT",
		Price:       "40",
		Duration:    45,
		TimeBreak:   15,
	}
	days := []scheduling.DayAvailability{
		{DayOfWeek: 5, Enabled: true, StartTime: "08:00", EndTime: "12:00", Duration: 45, TimeBreak: 15},
	}

	cfg := toConfig(payload, days)
	assert.Empty(t, scheduling.Validate(cfg))
	assert.Equal(t, payload.Title, cfg.Title)
	assert.Equal(t, days, cfg.Availability)
}
