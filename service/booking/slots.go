package booking

import (
	"time"

	"gorm.io/gorm"

	"github.com/nocall/nocall-server/cmd/models"
	"github.com/nocall/nocall-server/service/scheduling"
)

// MentorLocation resolves a mentor's stored timezone, falling back to UTC on
// rows written before timezone validation existed.
func MentorLocation(mentor *models.MentorProfile) *time.Location {
	loc, err := time.LoadLocation(mentor.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DeriveSlots lists the bookable start times for one of a mentor's sessions
// on a calendar date. The date's year, month and day are taken as given, so
// callers resolving a concrete instant must convert it to the mentor's
// timezone first. Slots taken by pending or confirmed bookings are excluded.
func DeriveSlots(db *gorm.DB, mentor *models.MentorProfile, session *models.BookingSession, date time.Time, now time.Time) ([]time.Time, error) {
	loc := MentorLocation(mentor)

	year, month, day := date.Date()
	dayStart := time.Date(year, month, day, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekday := int(dayStart.Weekday())

	var windows []models.MentorAvailability
	if err := db.Where("mentor_id = ? AND day_of_week = ? AND is_active = ?", mentor.ID, weekday, true).
		Find(&windows).Error; err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, nil
	}

	busy, err := busyIntervals(db, mentor.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	var slots []time.Time
	for _, row := range windows {
		w, ok := scheduling.WindowOf(row.StartTime, row.EndTime, session.Duration, session.TimeBreak)
		if !ok {
			continue
		}
		slots = append(slots, scheduling.SlotTimes(w, dayStart, loc, busy, now)...)
	}
	return slots, nil
}

func busyIntervals(db *gorm.DB, mentorID uint, from, to time.Time) ([]scheduling.Interval, error) {
	var bookings []models.Booking
	err := db.Preload("Session").
		Where("mentor_id = ? AND scheduled_at >= ? AND scheduled_at < ? AND status IN ?",
			mentorID, from, to, []string{scheduling.StatusPending, scheduling.StatusConfirmed}).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	var busy []scheduling.Interval
	for _, b := range bookings {
		duration := 30
		if b.Session != nil {
			duration = b.Session.Duration
		}
		busy = append(busy, scheduling.Interval{
			Start: b.ScheduledAt,
			End:   b.ScheduledAt.Add(time.Duration(duration) * time.Minute),
		})
	}
	return busy, nil
}
