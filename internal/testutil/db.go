// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sealjuli/Library/pkg/database"
	"github.com/sealjuli/Library/pkg/models"
)

// NewSQLite returns a migrated in-memory database closed at test cleanup.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"), zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.RunMigrations(db, zap.NewNop()); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return db
}

// SeedBook inserts a book with the given title and author.
func SeedBook(t testing.TB, db *gorm.DB, title, author string) *models.Book {
	t.Helper()

	book := &models.Book{Title: title, Author: author, PublicationYear: 1900, PagesNumber: 100}
	if err := db.Create(book).Error; err != nil {
		t.Fatalf("failed to seed book: %v", err)
	}
	return book
}

// SeedUser inserts a user with the given name and email.
func SeedUser(t testing.TB, db *gorm.DB, name, email string) *models.User {
	t.Helper()

	user := &models.User{Name: name, Email: email}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}
