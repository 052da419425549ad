package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book represents a book in the library.
type Book struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36" example:"0b6d3f0e-55d1-4d0c-9a65-1f1b0e0a8c11"`
	Title           string    `json:"title" gorm:"size:255;not null;index" example:"War and Peace"`
	Author          string    `json:"author" gorm:"size:255;not null;index" example:"Leo Tolstoy"`
	PublicationYear int       `json:"publicationYear" gorm:"not null" example:"1869"`
	PagesNumber     int       `json:"pagesNumber" gorm:"not null" example:"1225"`
	CreatedAt       time.Time `json:"createdAt" gorm:"precision:6"`
	UpdatedAt       time.Time `json:"updatedAt" gorm:"precision:6"`
}

// BeforeCreate assigns a fresh id to books that do not carry one and stamps
// the creation time.
func (b *Book) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = creationTime()
	}
	return nil
}

// CreateBookRequest is the request body for adding a book.
type CreateBookRequest struct {
	Title           string `json:"title" example:"War and Peace"`
	Author          string `json:"author" example:"Leo Tolstoy"`
	PublicationYear int    `json:"publicationYear" example:"1869"`
	PagesNumber     int    `json:"pagesNumber" example:"1225"`
}

// UpdateBookTitleRequest is the request body for renaming a book.
type UpdateBookTitleRequest struct {
	Title string `json:"title" example:"War and Peace"`
}
