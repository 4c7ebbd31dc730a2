package scheduling

import (
	"fmt"
	"strconv"
)

// DayAvailability is one weekday entry of a submitted availability set.
type DayAvailability struct {
	DayOfWeek int    `json:"day_of_week"`
	Enabled   bool   `json:"enabled"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Duration  int    `json:"duration"`
	TimeBreak int    `json:"time_break"`
}

// SessionConfig is a candidate booking session plus its availability set,
// as submitted by a mentor.
type SessionConfig struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Type         string            `json:"type"`
	Token        string            `json:"token"`
	Price        string            `json:"price"`
	Duration     int               `json:"duration"`
	TimeBreak    int               `json:"time_break"`
	Availability []DayAvailability `json:"availability"`
}

// FieldError ties a validation message to the form field that caused it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks a session configuration against every rule and returns the
// full list of violations. It never stops at the first error and has no side
// effects; an empty result means the configuration is acceptable.
func Validate(cfg SessionConfig) []FieldError {
	var errs []FieldError

	errs = append(errs, validateSessionFields(cfg)...)
	errs = append(errs, validatePricing(cfg)...)

	enabled := 0
	for i, day := range cfg.Availability {
		if !day.Enabled {
			continue
		}
		enabled++
		errs = append(errs, validateDay(i, day)...)
	}
	if enabled == 0 {
		errs = append(errs, FieldError{
			Field:   "availability",
			Message: "At least one day must be enabled",
		})
	}

	return errs
}

func validateSessionFields(cfg SessionConfig) []FieldError {
	var errs []FieldError

	if len(cfg.Title) < 5 {
		errs = append(errs, FieldError{"title", "Title must be at least 5 characters"})
	} else if len(cfg.Title) > 100 {
		errs = append(errs, FieldError{"title", "Title must be at most 100 characters"})
	}

	if len(cfg.Description) < 10 {
		errs = append(errs, FieldError{"description", "Description must be at least 10 characters"})
	} else if len(cfg.Description) > 500 {
		errs = append(errs, FieldError{"description", "Description must be at most 500 characters"})
	}

	if !ValidType(cfg.Type) {
		errs = append(errs, FieldError{"type", "Invalid booking type"})
	}
	if !ValidDuration(cfg.Duration) {
		errs = append(errs, FieldError{"duration", "Invalid duration. Must be 15, 30, or 45 minutes"})
	}
	if !ValidTimeBreak(cfg.TimeBreak) {
		errs = append(errs, FieldError{"time_break", "Invalid time break"})
	}

	return errs
}

func validatePricing(cfg SessionConfig) []FieldError {
	var errs []FieldError

	switch cfg.Type {
	case TypePaid, TypeCommitment:
		if cfg.Token == "" {
			errs = append(errs, FieldError{"token", "Token is required for paid sessions"})
		} else if !ValidToken(cfg.Token) {
			errs = append(errs, FieldError{"token", "Invalid payment token"})
		}
		if cfg.Price == "" {
			errs = append(errs, FieldError{"price", "Price is required for paid sessions"})
		} else if price, err := strconv.ParseFloat(cfg.Price, 64); err != nil || price <= 0 {
			errs = append(errs, FieldError{"price", "Price must be a positive number"})
		}
	case TypeFree:
		if cfg.Token != "" {
			errs = append(errs, FieldError{"token", "Token should not be specified for free sessions"})
		}
		if cfg.Price != "" {
			errs = append(errs, FieldError{"price", "Price should not be specified for free sessions"})
		}
	}

	return errs
}

func validateDay(index int, day DayAvailability) []FieldError {
	var errs []FieldError
	path := func(field string) string {
		return fmt.Sprintf("availability[%d].%s", index, field)
	}

	if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
		errs = append(errs, FieldError{path("day_of_week"), "Day of week must be between 0 and 6"})
	}

	start, startErr := ParseClock(day.StartTime)
	if startErr != nil {
		errs = append(errs, FieldError{path("start_time"), "Time must be in HH:MM format (24-hour)"})
	}
	end, endErr := ParseClock(day.EndTime)
	if endErr != nil {
		errs = append(errs, FieldError{path("end_time"), "Time must be in HH:MM format (24-hour)"})
	}
	if startErr == nil && endErr == nil && end <= start {
		errs = append(errs, FieldError{path("end_time"), "End time must be after start time"})
	}

	label := DayName(day.DayOfWeek)
	if !ValidDuration(day.Duration) {
		errs = append(errs, FieldError{path("duration"), fmt.Sprintf("Invalid duration for %s", label)})
	}
	if !ValidTimeBreak(day.TimeBreak) {
		errs = append(errs, FieldError{path("time_break"), fmt.Sprintf("Invalid time break for %s", label)})
	}
	if day.TimeBreak >= day.Duration {
		errs = append(errs, FieldError{path("time_break"), fmt.Sprintf("Time break must be less than duration for %s", label)})
	}

	return errs
}
