package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sealjuli/Library/internal/testutil"
	"github.com/sealjuli/Library/pkg/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.NewSQLite(t)
}

func TestBookCreateThenFind(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository(newTestDB(t))

	created, err := repo.Create(ctx, &models.Book{
		Title:           "War and Peace",
		Author:          "Tolstoy",
		PublicationYear: 1869,
		PagesNumber:     1225,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "War and Peace", found.Title)
	assert.Equal(t, "Tolstoy", found.Author)
	assert.Equal(t, 1869, found.PublicationYear)
	assert.Equal(t, 1225, found.PagesNumber)
}

func TestBookFindByIDMissing(t *testing.T) {
	repo := NewBookRepository(newTestDB(t))

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookListPagination(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewBookRepository(db)
	for i := 0; i < 23; i++ {
		testutil.SeedBook(t, db, fmt.Sprintf("Title %02d", i), "Author")
	}

	all, err := repo.List(ctx, AllPages)
	require.NoError(t, err)
	require.Len(t, all, 23)

	for page := 1; page <= 4; page++ {
		got, err := repo.List(ctx, page)
		require.NoError(t, err)

		lo := min((page-1)*PageSize, len(all))
		hi := min(page*PageSize, len(all))
		assert.Equal(t, ids(all[lo:hi]), ids(got), "page %d", page)
		assert.LessOrEqual(t, len(got), PageSize)
	}
}

func TestBookFiltersIntersect(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewBookRepository(db)

	both := testutil.SeedBook(t, db, "Resurrection", "Tolstoy")
	testutil.SeedBook(t, db, "Resurrection", "Someone Else")
	testutil.SeedBook(t, db, "Anna Karenina", "Tolstoy")

	byTitle, err := repo.FindByTitle(ctx, "Resurrection", AllPages)
	require.NoError(t, err)
	assert.EqualValues(t, 2, byTitle.Count)

	byAuthor, err := repo.FindByAuthor(ctx, "Tolstoy", AllPages)
	require.NoError(t, err)
	assert.EqualValues(t, 2, byAuthor.Count)

	combined, err := repo.FindByTitleAndAuthor(ctx, "Resurrection", "Tolstoy", AllPages)
	require.NoError(t, err)
	assert.EqualValues(t, 1, combined.Count)
	require.Len(t, combined.Rows, 1)
	assert.Equal(t, both.ID, combined.Rows[0].ID)

	var intersection []string
	for _, id := range ids(byTitle.Rows) {
		if contains(ids(byAuthor.Rows), id) {
			intersection = append(intersection, id)
		}
	}
	assert.Equal(t, intersection, ids(combined.Rows))
}

func TestBookFilterCountIgnoresWindow(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewBookRepository(db)
	for i := 0; i < 12; i++ {
		testutil.SeedBook(t, db, "Same Title", fmt.Sprintf("Author %d", i))
	}

	page2, err := repo.FindByTitle(ctx, "Same Title", 2)
	require.NoError(t, err)
	assert.EqualValues(t, 12, page2.Count)
	assert.Len(t, page2.Rows, 2)

	none, err := repo.FindByTitle(ctx, "Unknown", AllPages)
	require.NoError(t, err)
	assert.EqualValues(t, 0, none.Count)
	assert.NotNil(t, none.Rows)
}

func TestBookCount(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewBookRepository(db)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	testutil.SeedBook(t, db, "One", "Author")
	testutil.SeedBook(t, db, "Two", "Author")

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestBookUpdateTitleIdempotent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewBookRepository(db)
	book := testutil.SeedBook(t, db, "Old Title", "Author")

	require.NoError(t, repo.UpdateTitle(ctx, book.ID, "New Title"))
	once, err := repo.FindByID(ctx, book.ID)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateTitle(ctx, book.ID, "New Title"))
	twice, err := repo.FindByID(ctx, book.ID)
	require.NoError(t, err)

	assert.Equal(t, "New Title", once.Title)
	assert.Equal(t, once.Title, twice.Title)
	assert.Equal(t, once.Author, twice.Author)
}

func TestBookDeleteThenFind(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewBookRepository(db)
	book := testutil.SeedBook(t, db, "Doomed", "Author")

	require.NoError(t, repo.Delete(ctx, book.ID))

	_, err := repo.FindByID(ctx, book.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func ids[T models.Book | models.User](rows []T) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		switch v := any(r).(type) {
		case models.Book:
			out = append(out, v.ID)
		case models.User:
			out = append(out, v.ID)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestBookListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewBookRepository(db)

	var inserted []string
	for i := 0; i < 50; i++ {
		inserted = append(inserted, testutil.SeedBook(t, db, fmt.Sprintf("Title %02d", i), "Author").ID)
	}

	all, err := repo.List(ctx, AllPages)
	require.NoError(t, err)
	assert.Equal(t, inserted, ids(all))

	second, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, inserted[10:20], ids(second))
}
