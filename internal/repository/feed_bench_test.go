package repository

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/blogr/internal/model"
)

func setupFeedBenchDB(b *testing.B) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{})
	if err != nil {
		b.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		b.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.Author{}, &model.Post{}, &model.Comment{}); err != nil {
		b.Fatalf("migrate: %v", err)
	}
	return db
}

func BenchmarkListPublished(b *testing.B) {
	db := setupFeedBenchDB(b)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := &model.Author{Name: "bench", Email: "bench@example.com", PasswordHash: "p"}
	if err := db.Create(author).Error; err != nil {
		b.Fatalf("seed author: %v", err)
	}
	const posts = 2000
	for i := 0; i < posts; i++ {
		p := &model.Post{
			Title:     fmt.Sprintf("post %d", i),
			Content:   "content",
			Published: i%2 == 0,
			AuthorID:  author.ID,
		}
		if err := db.Create(p).Error; err != nil {
			b.Fatalf("seed post: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := repo.ListPublished(ctx); err != nil {
			b.Fatalf("list: %v", err)
		}
	}
}

func BenchmarkListDraftsByAuthorEmail(b *testing.B) {
	db := setupFeedBenchDB(b)
	repo := NewPostRepository(db)
	ctx := context.Background()

	const authors = 50
	for i := 0; i < authors; i++ {
		a := &model.Author{Name: fmt.Sprintf("a%d", i), Email: fmt.Sprintf("a%d@example.com", i), PasswordHash: "p"}
		if err := db.Create(a).Error; err != nil {
			b.Fatalf("seed author: %v", err)
		}
		for j := 0; j < 20; j++ {
			p := &model.Post{Title: fmt.Sprintf("draft %d/%d", i, j), Content: "c", AuthorID: a.ID}
			if err := db.Create(p).Error; err != nil {
				b.Fatalf("seed post: %v", err)
			}
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := repo.ListDraftsByAuthorEmail(ctx, "a25@example.com"); err != nil {
			b.Fatalf("drafts: %v", err)
		}
	}
}
