package models

import "time"

// UserModel represents a registered member.
type UserModel struct {
	Base
	Email           string      `json:"email"           gorm:"uniqueIndex;not null"`
	Password        string      `json:"-"               gorm:"not null"`
	FullName        string      `json:"fullName"        gorm:"not null"`
	Bio             string      `json:"bio"             gorm:"type:text"`
	Gender          string      `json:"gender"`
	Sexuality       string      `json:"sexuality"`
	Age             int         `json:"age"`
	DateOfBirth     *time.Time  `json:"dob"`
	NativeLanguages StringArray `json:"nativeLanguages" gorm:"type:longtext"`
	Hobbies         StringArray `json:"hobbies"         gorm:"type:longtext"`
	Location        string      `json:"location"`
	ProfilePic      string      `json:"profilePic"`
	IsOnboarded     bool        `json:"isOnboarded"     gorm:"default:false"`

	Friends []UserModel `json:"-" gorm:"many2many:user_friends"`
}

func (UserModel) TableName() string { return "users" }
