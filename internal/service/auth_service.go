package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/blogr/internal/model"
	"github.com/d60-Lab/blogr/internal/repository"
	"github.com/d60-Lab/blogr/internal/session"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password, image string) (*model.Author, error)
	// Login returns a signed bearer token for a live session.
	Login(ctx context.Context, email, password string) (string, *session.Identity, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	authors  repository.AuthorRepository
	sessions *session.Manager
}

func NewAuthService(authors repository.AuthorRepository, sessions *session.Manager) AuthService {
	return &authService{authors: authors, sessions: sessions}
}

func (s *authService) Register(ctx context.Context, name, email, password, image string) (*model.Author, error) {
	if _, err := s.authors.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	author := &model.Author{
		Name:         name,
		Email:        email,
		Image:        image,
		PasswordHash: string(hash),
	}
	if err := s.authors.Create(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *session.Identity, error) {
	author, err := s.authors.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(author.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	id := session.Identity{Email: author.Email, Name: author.Name, Image: author.Image}
	token, err := s.sessions.Issue(ctx, id)
	if err != nil {
		return "", nil, err
	}
	return token, &id, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}
