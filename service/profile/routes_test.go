package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() profileRequest {
	return profileRequest{
		Username:          "ada_lovelace",
		Name:              "Ada Lovelace",
		Bio:               "First programmer.",
		ProfessionalField: "Software Engineering",
		Timezone:          "Europe/London",
	}
}

func TestValidateProfile_Accepts(t *testing.T) {
	assert.Empty(t, validateProfile(validRequest()))
}

func TestValidateProfile_UsernameRules(t *testing.T) {
	req := validRequest()

	req.Username = "ab"
	errs := validateProfile(req)
	require.Len(t, errs, 1)
	assert.Equal(t, "username", errs[0].Field)

	req.Username = "this_username_is_way_too_long"
	errs = validateProfile(req)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "at most 20")

	req.Username = "bad name!"
	errs = validateProfile(req)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "letters, numbers, and underscores")
}

func TestValidateProfile_TimezoneRules(t *testing.T) {
	req := validRequest()

	req.Timezone = ""
	errs := validateProfile(req)
	require.Len(t, errs, 1)
	assert.Equal(t, "Timezone is required", errs[0].Message)

	req.Timezone = "Mars/Olympus_Mons"
	errs = validateProfile(req)
	require.Len(t, errs, 1)
	assert.Equal(t, "Invalid timezone", errs[0].Message)
}

func TestValidateProfile_CollectsAllErrors(t *testing.T) {
	req := profileRequest{
		Username:          "x",
		Name:              "a",
		ProfessionalField: "Underwater Basket Weaving",
		Timezone:          "",
	}

	errs := validateProfile(req)
	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	assert.True(t, fields["username"])
	assert.True(t, fields["name"])
	assert.True(t, fields["professional_field"])
	assert.True(t, fields["timezone"])
}
