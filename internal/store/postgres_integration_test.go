//go:build integration

package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sealjuli/Library/pkg/config"
	"github.com/sealjuli/Library/pkg/database"
	"github.com/sealjuli/Library/pkg/models"
)

// newPostgres starts a throwaway PostgreSQL container and returns a
// migrated connection to it.
func newPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "library",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithDeadline(time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := &config.Config{
		Dialect:  config.DialectPostgres,
		Database: "library",
		DBUser:   "test",
		Password: "test",
		Host:     host,
		DBPort:   port.Port(),
	}
	dialector, err := database.Dialector(cfg)
	require.NoError(t, err)
	db, err := database.Open(dialector, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.RunMigrations(db, zap.NewNop()))
	return db
}

func TestPostgresUserEmailUniqueUnderConcurrency(t *testing.T) {
	db := newPostgres(t)
	repo := NewUserRepository(db)

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(context.Background(), &models.User{Name: "Julia", Email: "julia@example.com"})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	}
	assert.Equal(t, 1, created)
}

func TestPostgresCheckoutForeignKeys(t *testing.T) {
	ctx := context.Background()
	db := newPostgres(t)
	users := NewUserRepository(db)
	books := NewBookRepository(db)

	user, err := users.Create(ctx, &models.User{Name: "Julia", Email: "julia@example.com"})
	require.NoError(t, err)
	book, err := books.Create(ctx, &models.Book{Title: "War and Peace", Author: "Tolstoy", PublicationYear: 1869, PagesNumber: 1225})
	require.NoError(t, err)

	_, err = users.CreateCheckout(ctx, user.ID, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrUnknownReference)

	_, err = users.CreateCheckout(ctx, user.ID, book.ID)
	require.NoError(t, err)
	require.NoError(t, books.Delete(ctx, book.ID))

	var n int64
	require.NoError(t, db.Model(&models.UserBook{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestPostgresFilteredPage(t *testing.T) {
	ctx := context.Background()
	db := newPostgres(t)
	books := NewBookRepository(db)

	for i := 0; i < 12; i++ {
		_, err := books.Create(ctx, &models.Book{Title: "War and Peace", Author: "Tolstoy"})
		require.NoError(t, err)
	}

	page, err := books.FindByTitle(ctx, "War and Peace", 2)
	require.NoError(t, err)
	assert.Len(t, page.Rows, 2)
	assert.EqualValues(t, 12, page.Count)
}
