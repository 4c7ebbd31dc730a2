package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() SessionConfig {
	return SessionConfig{
		Title:       "Intro mentoring call",
		Description: "A short introductory session to talk goals.",
		Type:        TypeFree,
		Duration:    30,
		TimeBreak:   5,
		Availability: []DayAvailability{
			{DayOfWeek: 1, Enabled: true, StartTime: "09:00", EndTime: "17:00", Duration: 30, TimeBreak: 5},
			{DayOfWeek: 2, Enabled: false},
		},
	}
}

func fieldErrors(errs []FieldError, field string) []FieldError {
	var out []FieldError
	for _, e := range errs {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

func TestValidate_AcceptsValidConfig(t *testing.T) {
	errs := Validate(validConfig())
	assert.Empty(t, errs)
}

func TestValidate_Idempotent(t *testing.T) {
	cfg := validConfig()
	require.Empty(t, Validate(cfg))
	assert.Empty(t, Validate(cfg), "second run must accept the same config")
}

func TestValidate_NoDaysEnabled(t *testing.T) {
	cfg := validConfig()
	for i := range cfg.Availability {
		cfg.Availability[i].Enabled = false
	}

	errs := Validate(cfg)
	require.Len(t, fieldErrors(errs, "availability"), 1)
	assert.Equal(t, "At least one day must be enabled", fieldErrors(errs, "availability")[0].Message)
}

func TestValidate_BreakNotShorterThanDuration(t *testing.T) {
	cfg := validConfig()
	cfg.Availability[0].Duration = 15
	cfg.Availability[0].TimeBreak = 15

	errs := Validate(cfg)
	breaks := fieldErrors(errs, "availability[0].time_break")
	require.NotEmpty(t, breaks)
	assert.Contains(t, breaks[0].Message, "Time break must be less than duration")
	assert.Contains(t, breaks[0].Message, "Monday")
}

func TestValidate_MalformedTimes(t *testing.T) {
	cfg := validConfig()
	cfg.Availability[0].StartTime = "9:5"
	cfg.Availability[0].EndTime = "25:00"

	errs := Validate(cfg)
	assert.NotEmpty(t, fieldErrors(errs, "availability[0].start_time"))
	assert.NotEmpty(t, fieldErrors(errs, "availability[0].end_time"))
}

func TestValidate_EndNotAfterStart(t *testing.T) {
	cfg := validConfig()
	cfg.Availability[0].StartTime = "17:00"
	cfg.Availability[0].EndTime = "09:00"

	errs := Validate(cfg)
	ends := fieldErrors(errs, "availability[0].end_time")
	require.Len(t, ends, 1)
	assert.Equal(t, "End time must be after start time", ends[0].Message)
}

func TestValidate_DisabledDaysAreSkipped(t *testing.T) {
	cfg := validConfig()
	// Garbage on a disabled day must not be reported.
	cfg.Availability[1] = DayAvailability{DayOfWeek: 2, Enabled: false, StartTime: "nope", Duration: 7}

	errs := Validate(cfg)
	assert.Empty(t, errs)
}

func TestValidate_InvalidEnumerations(t *testing.T) {
	cfg := validConfig()
	cfg.Availability[0].Duration = 25
	cfg.Availability[0].TimeBreak = 7

	errs := Validate(cfg)
	durations := fieldErrors(errs, "availability[0].duration")
	require.NotEmpty(t, durations)
	assert.Contains(t, durations[0].Message, "Monday")
	assert.NotEmpty(t, fieldErrors(errs, "availability[0].time_break"))
}

func TestValidate_FreeSessionRejectsPricing(t *testing.T) {
	cfg := validConfig()
	cfg.Token = "USDC"
	cfg.Price = "10"

	errs := Validate(cfg)
	require.Len(t, fieldErrors(errs, "token"), 1)
	require.Len(t, fieldErrors(errs, "price"), 1)
	assert.Equal(t, "Token should not be specified for free sessions", fieldErrors(errs, "token")[0].Message)
}

func TestValidate_PaidSessionMissingToken(t *testing.T) {
	cfg := validConfig()
	cfg.Type = TypePaid
	cfg.Token = ""
	cfg.Price = "10"

	errs := Validate(cfg)
	tokens := fieldErrors(errs, "token")
	require.Len(t, tokens, 1)
	assert.Equal(t, "Token is required for paid sessions", tokens[0].Message)
	assert.Empty(t, fieldErrors(errs, "price"))
	assert.Len(t, errs, 1)
}

func TestValidate_PaidSessionPriceRules(t *testing.T) {
	cfg := validConfig()
	cfg.Type = TypeCommitment
	cfg.Token = "USDT"

	cfg.Price = ""
	errs := Validate(cfg)
	require.Len(t, fieldErrors(errs, "price"), 1)
	assert.Equal(t, "Price is required for paid sessions", fieldErrors(errs, "price")[0].Message)

	cfg.Price = "-3"
	errs = Validate(cfg)
	require.Len(t, fieldErrors(errs, "price"), 1)
	assert.Equal(t, "Price must be a positive number", fieldErrors(errs, "price")[0].Message)

	cfg.Price = "abc"
	errs = Validate(cfg)
	require.Len(t, fieldErrors(errs, "price"), 1)
	assert.Equal(t, "Price must be a positive number", fieldErrors(errs, "price")[0].Message)

	cfg.Price = "12.50"
	assert.Empty(t, Validate(cfg))
}

func TestValidate_CollectsAllErrorsInOnePass(t *testing.T) {
	cfg := SessionConfig{
		Title:       "abc",
		Description: "short",
		Type:        "SOMETHING",
		Duration:    20,
		TimeBreak:   3,
		Availability: []DayAvailability{
			{DayOfWeek: 3, Enabled: true, StartTime: "10:00", EndTime: "09:00", Duration: 30, TimeBreak: 45},
		},
	}

	errs := Validate(cfg)
	assert.NotEmpty(t, fieldErrors(errs, "title"))
	assert.NotEmpty(t, fieldErrors(errs, "description"))
	assert.NotEmpty(t, fieldErrors(errs, "type"))
	assert.NotEmpty(t, fieldErrors(errs, "duration"))
	assert.NotEmpty(t, fieldErrors(errs, "time_break"))
	assert.NotEmpty(t, fieldErrors(errs, "availability[0].end_time"))
	assert.NotEmpty(t, fieldErrors(errs, "availability[0].time_break"))
}
