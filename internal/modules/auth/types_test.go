package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupDTO_Validate(t *testing.T) {
	tests := []struct {
		name string
		dto  SignupDTO
		want string
	}{
		{"valid", SignupDTO{FullName: "A", Email: "a@x.com", Password: "secret1"}, ""},
		{"missing name", SignupDTO{Email: "a@x.com", Password: "secret1"}, "all fields are required"},
		{"missing email", SignupDTO{FullName: "A", Password: "secret1"}, "all fields are required"},
		{"missing password", SignupDTO{FullName: "A", Email: "a@x.com"}, "all fields are required"},
		{"short password", SignupDTO{FullName: "A", Email: "a@x.com", Password: "12345"}, "password must have at least 6 characters"},
		{"no at sign", SignupDTO{FullName: "A", Email: "ax.com", Password: "secret1"}, "invalid email format"},
		{"no tld", SignupDTO{FullName: "A", Email: "a@xcom", Password: "secret1"}, "invalid email format"},
		{"spaces in email", SignupDTO{FullName: "A", Email: "a b@x.com", Password: "secret1"}, "invalid email format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dto.Validate())
		})
	}
}

func TestLoginDTO_Validate(t *testing.T) {
	assert.Equal(t, "", (&LoginDTO{Email: "a@x.com", Password: "p"}).Validate())
	assert.NotEqual(t, "", (&LoginDTO{Email: "a@x.com"}).Validate())
	assert.NotEqual(t, "", (&LoginDTO{Password: "p"}).Validate())
}

func completeOnboard() OnboardDTO {
	return OnboardDTO{
		FullName:        "A",
		Bio:             "hi",
		Gender:          "woman",
		Sexuality:       "straight",
		Age:             30,
		DOB:             "1996-01-02",
		Hobbies:         []string{"chess"},
		NativeLanguages: []string{"en"},
		Location:        "Berlin",
	}
}

func TestOnboardDTO_MissingFields(t *testing.T) {
	dto := completeOnboard()
	assert.Empty(t, dto.MissingFields())

	dto = completeOnboard()
	dto.Bio = "   "
	dto.Age = 0
	dto.Hobbies = nil
	assert.Equal(t, []string{"bio", "age", "hobbies"}, dto.MissingFields())

	empty := OnboardDTO{}
	assert.Equal(t, []string{
		"fullName", "bio", "gender", "sexuality", "age",
		"dob", "hobbies", "nativeLanguages", "location",
	}, empty.MissingFields())
}

func TestUpdateProfileDTO_TouchesImmutable(t *testing.T) {
	bio := "new bio"
	assert.False(t, (&UpdateProfileDTO{Bio: &bio}).TouchesImmutable())

	name := "New Name"
	assert.True(t, (&UpdateProfileDTO{FullName: &name}).TouchesImmutable())

	email := "b@x.com"
	assert.True(t, (&UpdateProfileDTO{Email: &email}).TouchesImmutable())

	dob := "2000-01-01"
	assert.True(t, (&UpdateProfileDTO{DOB: &dob}).TouchesImmutable())
}

func TestParseDOB(t *testing.T) {
	got, err := parseDOB("1996-01-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1996, 1, 2, 0, 0, 0, 0, time.UTC), *got)

	got, err = parseDOB(" 1996-01-02T15:04:05Z ")
	require.NoError(t, err)
	assert.Equal(t, 15, got.Hour())

	_, err = parseDOB("02/01/1996")
	assert.Error(t, err)

	_, err = parseDOB("")
	assert.Error(t, err)
}
