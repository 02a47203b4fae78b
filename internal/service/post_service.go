package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/blogr/internal/model"
	"github.com/d60-Lab/blogr/internal/repository"
)

// PostService owns the post lifecycle: create -> draft -> publish ->
// delete, plus the two read shapes (public feed, author-scoped drafts).
type PostService interface {
	Create(ctx context.Context, authorEmail, title, content string) (*model.Post, error)
	Feed(ctx context.Context) ([]*model.Post, error)
	Drafts(ctx context.Context, authorEmail string) ([]*model.Post, error)
	// Get returns (nil, nil) when the id does not exist; a missing post
	// is an empty result, not an error.
	Get(ctx context.Context, id uint) (*model.Post, error)
	Publish(ctx context.Context, id uint, requesterEmail string) (*model.Post, error)
	Delete(ctx context.Context, id uint, requesterEmail string) (*model.Post, error)
}

type postService struct {
	posts   repository.PostRepository
	authors repository.AuthorRepository
}

func NewPostService(posts repository.PostRepository, authors repository.AuthorRepository) PostService {
	return &postService{posts: posts, authors: authors}
}

func (s *postService) Create(ctx context.Context, authorEmail, title, content string) (*model.Post, error) {
	author, err := s.authors.GetByEmail(ctx, authorEmail)
	if err != nil {
		// No author with that email: the connect target is invalid and
		// the request fails, same as a store-level rejection.
		return nil, err
	}
	post := &model.Post{
		Title:    title,
		Content:  content,
		AuthorID: author.ID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	post.Author = author
	return post, nil
}

func (s *postService) Feed(ctx context.Context) ([]*model.Post, error) {
	return s.posts.ListPublished(ctx)
}

func (s *postService) Drafts(ctx context.Context, authorEmail string) ([]*model.Post, error) {
	return s.posts.ListDraftsByAuthorEmail(ctx, authorEmail)
}

func (s *postService) Get(ctx context.Context, id uint) (*model.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return post, err
}

func (s *postService) Publish(ctx context.Context, id uint, requesterEmail string) (*model.Post, error) {
	if err := s.requireOwner(ctx, id, requesterEmail); err != nil {
		return nil, err
	}
	return s.posts.Publish(ctx, id)
}

func (s *postService) Delete(ctx context.Context, id uint, requesterEmail string) (*model.Post, error) {
	if err := s.requireOwner(ctx, id, requesterEmail); err != nil {
		return nil, err
	}
	return s.posts.Delete(ctx, id)
}

func (s *postService) requireOwner(ctx context.Context, id uint, requesterEmail string) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.Author == nil || post.Author.Email != requesterEmail {
		return ErrForbidden
	}
	return nil
}
