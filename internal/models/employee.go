package models

import "time"

type Employee struct {
	Base
	Username string `gorm:"uniqueIndex;not null" json:"username" validate:"required,min=2"`
	Email    string `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string `gorm:"not null" json:"-"`
	Active   bool   `gorm:"not null;default:false" json:"active"`
	Role     Role   `gorm:"not null" json:"role" validate:"required,employee_role"`

	AccessToken           string    `json:"-"`
	AccessTokenExpiresAt  time.Time `json:"-"`
	RefreshToken          string    `json:"-"`
	RefreshTokenExpiresAt time.Time `json:"-"`
}
