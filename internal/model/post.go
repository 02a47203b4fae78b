package model

import "time"

// Post is the content unit. Published defaults to false (a draft) and is
// flipped true only by an explicit publish. IDs are never reused.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text"`
	Published bool      `json:"published" gorm:"not null;default:false;index:idx_post_published"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index:idx_post_author"`
	Author    *Author   `json:"author,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (Post) TableName() string { return "posts" }
