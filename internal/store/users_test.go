package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealjuli/Library/internal/testutil"
	"github.com/sealjuli/Library/pkg/models"
)

func TestUserCreateThenFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	created, err := repo.Create(ctx, &models.User{Name: "Julia", Email: "julia@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.RegisterDate.IsZero())

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Julia", byID.Name)

	byEmail, err := repo.FindByEmail(ctx, "julia@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.Create(ctx, &models.User{Name: "Julia", Email: "julia@example.com"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Name: "Other Julia", Email: "julia@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUserCreateConcurrentSameEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, &models.User{Name: fmt.Sprintf("User %d", i), Email: "race@example.com"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, ErrDuplicateEmail):
				rejected++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, rejected)
}

func TestUserListSecondPage(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepository(db)
	for i := 1; i <= 15; i++ {
		testutil.SeedUser(t, db, fmt.Sprintf("User %02d", i), fmt.Sprintf("user%02d@example.com", i))
	}

	all, err := repo.List(ctx, AllPages)
	require.NoError(t, err)
	require.Len(t, all, 15)

	page2, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, page2, 5)
	assert.Equal(t, ids(all[10:]), ids(page2))

	page3, err := repo.List(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, page3)
}

func TestUserUpdateNameIdempotent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepository(db)
	user := testutil.SeedUser(t, db, "Julia", "julia@example.com")

	require.NoError(t, repo.UpdateName(ctx, user.ID, "Yulia"))
	require.NoError(t, repo.UpdateName(ctx, user.ID, "Yulia"))

	got, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Yulia", got.Name)
	assert.Equal(t, "julia@example.com", got.Email)
}

func TestUserDeleteThenFind(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepository(db)
	user := testutil.SeedUser(t, db, "Julia", "julia@example.com")

	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateCheckoutAllowsRepeats(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepository(db)
	user := testutil.SeedUser(t, db, "Julia", "julia@example.com")
	book := testutil.SeedBook(t, db, "War and Peace", "Tolstoy")

	first, err := repo.CreateCheckout(ctx, user.ID, book.ID)
	require.NoError(t, err)
	second, err := repo.CreateCheckout(ctx, user.ID, book.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	var n int64
	require.NoError(t, db.Model(&models.UserBook{}).
		Where("user_id = ? AND book_id = ?", user.ID, book.ID).
		Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestCreateCheckoutUnknownReference(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepository(db)
	user := testutil.SeedUser(t, db, "Julia", "julia@example.com")

	_, err := repo.CreateCheckout(ctx, user.ID, "no-such-book")
	assert.ErrorIs(t, err, ErrUnknownReference)
}

func TestDeleteUserCascadesCheckouts(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepository(db)
	user := testutil.SeedUser(t, db, "Julia", "julia@example.com")
	book := testutil.SeedBook(t, db, "War and Peace", "Tolstoy")

	_, err := repo.CreateCheckout(ctx, user.ID, book.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, user.ID))

	var n int64
	require.NoError(t, db.Model(&models.UserBook{}).Where("user_id = ?", user.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUserListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepository(db)

	var inserted []string
	for i := 0; i < 30; i++ {
		inserted = append(inserted, testutil.SeedUser(t, db, "Julia", fmt.Sprintf("julia%02d@example.com", i)).ID)
	}

	all, err := repo.List(ctx, AllPages)
	require.NoError(t, err)
	assert.Equal(t, inserted, ids(all))
}
