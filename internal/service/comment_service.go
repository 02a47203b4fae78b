package service

import (
	"context"

	"github.com/d60-Lab/blogr/internal/model"
	"github.com/d60-Lab/blogr/internal/repository"
)

type CommentService interface {
	// Create connects the comment to the author by email and to the post
	// by id. The post is not checked up front; a bad id is rejected by
	// the store's referential integrity.
	Create(ctx context.Context, authorEmail string, postID uint, content string) (*model.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]*model.Comment, error)
}

type commentService struct {
	comments repository.CommentRepository
	authors  repository.AuthorRepository
}

func NewCommentService(comments repository.CommentRepository, authors repository.AuthorRepository) CommentService {
	return &commentService{comments: comments, authors: authors}
}

func (s *commentService) Create(ctx context.Context, authorEmail string, postID uint, content string) (*model.Comment, error) {
	author, err := s.authors.GetByEmail(ctx, authorEmail)
	if err != nil {
		return nil, err
	}
	comment := &model.Comment{
		Content:  content,
		AuthorID: author.ID,
		PostID:   postID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author = author
	return comment, nil
}

func (s *commentService) ListByPost(ctx context.Context, postID uint) ([]*model.Comment, error) {
	return s.comments.ListByPost(ctx, postID)
}
