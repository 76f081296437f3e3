package auth

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	errEmailTaken         = errors.New("email already exists")
	errInvalidCredentials = errors.New("invalid email or password")
	errUserNotFound       = errors.New("user not found")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SignupDTO is the signup request body.
type SignupDTO struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate returns a user-correctable message, or "" when the DTO is valid.
func (d *SignupDTO) Validate() string {
	if strings.TrimSpace(d.FullName) == "" || strings.TrimSpace(d.Email) == "" || d.Password == "" {
		return "all fields are required"
	}
	if len(d.Password) < 6 {
		return "password must have at least 6 characters"
	}
	if !emailPattern.MatchString(d.Email) {
		return "invalid email format"
	}
	return ""
}

// LoginDTO is the login request body.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d *LoginDTO) Validate() string {
	if strings.TrimSpace(d.Email) == "" || d.Password == "" {
		return "all fields are required"
	}
	return ""
}

// OnboardDTO completes a profile after signup.
type OnboardDTO struct {
	FullName        string   `json:"fullName"`
	Bio             string   `json:"bio"`
	Gender          string   `json:"gender"`
	Sexuality       string   `json:"sexuality"`
	Age             int      `json:"age"`
	DOB             string   `json:"dob"`
	Hobbies         []string `json:"hobbies"`
	NativeLanguages []string `json:"nativeLanguages"`
	Location        string   `json:"location"`
	ProfilePic      string   `json:"profilePic"`
}

// MissingFields lists every required field absent from the request.
func (d *OnboardDTO) MissingFields() []string {
	missing := []string{}
	if strings.TrimSpace(d.FullName) == "" {
		missing = append(missing, "fullName")
	}
	if strings.TrimSpace(d.Bio) == "" {
		missing = append(missing, "bio")
	}
	if strings.TrimSpace(d.Gender) == "" {
		missing = append(missing, "gender")
	}
	if strings.TrimSpace(d.Sexuality) == "" {
		missing = append(missing, "sexuality")
	}
	if d.Age <= 0 {
		missing = append(missing, "age")
	}
	if strings.TrimSpace(d.DOB) == "" {
		missing = append(missing, "dob")
	}
	if len(d.Hobbies) == 0 {
		missing = append(missing, "hobbies")
	}
	if len(d.NativeLanguages) == 0 {
		missing = append(missing, "nativeLanguages")
	}
	if strings.TrimSpace(d.Location) == "" {
		missing = append(missing, "location")
	}
	return missing
}

// UpdateProfileDTO carries a partial profile update. Name, email, and date of
// birth are immutable through this route.
type UpdateProfileDTO struct {
	Bio             *string  `json:"bio"`
	Gender          *string  `json:"gender"`
	Sexuality       *string  `json:"sexuality"`
	Hobbies         []string `json:"hobbies"`
	NativeLanguages []string `json:"nativeLanguages"`
	Location        *string  `json:"location"`
	ProfilePic      *string  `json:"profilePic"`

	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	DOB      *string `json:"dob"`
}

// TouchesImmutable reports whether the request tries to change a locked field.
func (d *UpdateProfileDTO) TouchesImmutable() bool {
	return d.FullName != nil || d.Email != nil || d.DOB != nil
}

func parseDOB(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
