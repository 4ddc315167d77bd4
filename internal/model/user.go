package model

import "time"

// User represents an account holder. VerificationCode and CodeExpiry are either
// both set (a code is outstanding) or both nil; they are cleared the moment the
// account becomes verified.
type User struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	Name             string     `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Email            string     `json:"email" gorm:"uniqueIndex;size:120;not null"`
	DOB              *time.Time `json:"dob,omitempty" gorm:"type:date"`
	PasswordHash     string     `json:"-" gorm:"size:256;not null"` // Never expose in JSON
	IsVerified       bool       `json:"is_verified" gorm:"default:false"`
	VerificationCode *string    `json:"-" gorm:"size:6"`
	CodeExpiry       *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
}
