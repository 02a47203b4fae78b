package model

import "time"

// Author is the registered identity that owns posts and comments.
type Author struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name"`
	Email        string    `json:"email" gorm:"uniqueIndex:ux_author_email;not null"`
	Image        string    `json:"image,omitempty"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

func (Author) TableName() string { return "authors" }
