package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sealjuli/Library/pkg/models"
)

// BookRepository reads and writes books.
type BookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a BookRepository over db.
func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// Create inserts book and returns it with its generated id.
func (r *BookRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return book, nil
}

// FindByID returns ErrNotFound when no book has the id.
func (r *BookRepository) FindByID(ctx context.Context, id string) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error; err != nil {
		return nil, notFound(err)
	}
	return &book, nil
}

func (r *BookRepository) FindByTitle(ctx context.Context, title string, page int) (Page[models.Book], error) {
	return r.findPage(ctx, map[string]any{"title": title}, page)
}

func (r *BookRepository) FindByAuthor(ctx context.Context, author string, page int) (Page[models.Book], error) {
	return r.findPage(ctx, map[string]any{"author": author}, page)
}

func (r *BookRepository) FindByTitleAndAuthor(ctx context.Context, title, author string, page int) (Page[models.Book], error) {
	return r.findPage(ctx, map[string]any{"title": title, "author": author}, page)
}

// Count returns the number of books.
func (r *BookRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}

// List returns every book, or one window of them when page is set.
func (r *BookRepository) List(ctx context.Context, page int) ([]models.Book, error) {
	var books []models.Book
	err := r.db.WithContext(ctx).
		Scopes(creationOrder, Paginate(page)).
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	if books == nil {
		books = []models.Book{}
	}
	return books, nil
}

// UpdateTitle sets the title of the book with id.
func (r *BookRepository) UpdateTitle(ctx context.Context, id, title string) error {
	err := r.db.WithContext(ctx).Model(&models.Book{}).
		Where("id = ?", id).
		Update("title", title).Error
	if err != nil {
		return fmt.Errorf("update book title: %w", err)
	}
	return nil
}

// Delete removes the book with id.
func (r *BookRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Book{}).Error; err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

// findPage returns the window of matching rows plus the total number of
// matches.
func (r *BookRepository) findPage(ctx context.Context, where map[string]any, page int) (Page[models.Book], error) {
	result := Page[models.Book]{Rows: []models.Book{}}

	err := r.db.WithContext(ctx).Model(&models.Book{}).
		Where(where).
		Count(&result.Count).Error
	if err != nil {
		return result, fmt.Errorf("count books: %w", err)
	}

	err = r.db.WithContext(ctx).
		Where(where).
		Scopes(creationOrder, Paginate(page)).
		Find(&result.Rows).Error
	if err != nil {
		return result, fmt.Errorf("find books: %w", err)
	}
	return result, nil
}
