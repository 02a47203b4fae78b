package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/blogr/internal/model"
)

type AuthorRepository interface {
	Create(ctx context.Context, author *model.Author) error
	GetByEmail(ctx context.Context, email string) (*model.Author, error)
	GetByID(ctx context.Context, id uint) (*model.Author, error)
}

type authorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) AuthorRepository { return &authorRepository{db: db} }

func (r *authorRepository) Create(ctx context.Context, author *model.Author) error {
	return r.db.WithContext(ctx).Create(author).Error
}

func (r *authorRepository) GetByEmail(ctx context.Context, email string) (*model.Author, error) {
	var a model.Author
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *authorRepository) GetByID(ctx context.Context, id uint) (*model.Author, error) {
	var a model.Author
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}
