package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/blogr/internal/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	// GetByID loads a post with its full author. Returns
	// gorm.ErrRecordNotFound when the id does not exist.
	GetByID(ctx context.Context, id uint) (*model.Post, error)
	// ListPublished is the public feed, newest first.
	ListPublished(ctx context.Context) ([]*model.Post, error)
	// ListDraftsByAuthorEmail returns unpublished posts scoped strictly
	// to the given author.
	ListDraftsByAuthorEmail(ctx context.Context, email string) ([]*model.Post, error)
	// Publish flips published to true and returns the updated post.
	Publish(ctx context.Context, id uint) (*model.Post, error)
	// Delete removes the post and returns its prior state.
	Delete(ctx context.Context, id uint) (*model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*model.Post, error) {
	var p model.Post
	err := r.db.WithContext(ctx).Preload("Author").First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) ListPublished(ctx context.Context) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("published = ?", true).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListDraftsByAuthorEmail(ctx context.Context, email string) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Joins("JOIN authors ON authors.id = posts.author_id").
		Where("posts.published = ? AND authors.email = ?", false, email).
		Order("posts.created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Publish(ctx context.Context, id uint) (*model.Post, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Post{}).Where("id = ?", id).Update("published", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *postRepository) Delete(ctx context.Context, id uint) (*model.Post, error) {
	var prior model.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Author").First(&prior, id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &prior, nil
}
