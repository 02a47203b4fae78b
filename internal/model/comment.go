package model

import "time"

// Comment always references one existing Post and one existing Author;
// the store's foreign keys reject anything else at insert time.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index:idx_comment_author"`
	Author    *Author   `json:"author,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	PostID    uint      `json:"post_id" gorm:"not null;index:idx_comment_post"`
	Post      *Post     `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

func (Comment) TableName() string { return "comments" }
