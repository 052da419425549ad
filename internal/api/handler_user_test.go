package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealjuli/Library/internal/testutil"
	"github.com/sealjuli/Library/pkg/models"
)

func TestCreateUser_Success(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/users", `{"name":"Julia","email":"julia@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, msgUserCreated, w.Body.String())

	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/users/"), location)

	w = s.do(http.MethodGet, location, "")
	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "Julia", user.Name)
	assert.Equal(t, "julia@example.com", user.Email)
	assert.False(t, user.RegisterDate.IsZero())

	// Verify event was published
	require.Len(t, s.pub.published, 1)
	assert.Equal(t, "user.created", s.pub.published[0].RoutingKey)

	var event models.Event
	require.NoError(t, json.Unmarshal(s.pub.published[0].Body, &event))
	assert.Equal(t, models.EventUserCreated, event.EventType)
	assert.Equal(t, s.pub.published[0].CorrelationID, event.CorrelationID)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	testutil.SeedUser(t, s.db, "Julia", "julia@example.com")

	w := s.do(http.MethodPost, "/users", `{"name":"Another Julia","email":"julia@example.com"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, msgUserDuplicate, w.Body.String())
	assert.Empty(t, s.pub.published)

	var n int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestCreateUser_ConcurrentSameEmail(t *testing.T) {
	s := newTestServer(t)

	var wg sync.WaitGroup
	codes := make([]int, 5)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := s.do(http.MethodPost, "/users", fmt.Sprintf(`{"name":"Julia %d","email":"julia@example.com"}`, i))
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	created := 0
	for _, code := range codes {
		if code == http.StatusCreated {
			created++
		}
	}
	assert.Equal(t, 1, created)

	var n int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestCreateUser_Validation(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{
		`{"name":"Ju","email":"julia@example.com"}`,
		`{"name":"Julia","email":"not-an-email"}`,
		`{"name":"Julia"}`,
		`{"name":"Julia","email":"julia@example.com"`,
	} {
		w := s.do(http.MethodPost, "/users", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), `"errors"`)
	}
	assert.Empty(t, s.pub.published)
}

func TestCountUsers(t *testing.T) {
	s := newTestServer(t)
	testutil.SeedUser(t, s.db, "Julia", "julia@example.com")

	w := s.do(http.MethodGet, "/users/count", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Number of library users: 1", w.Body.String())
}

func TestListUsers_SecondPage(t *testing.T) {
	s := newTestServer(t)
	for i := 1; i <= 15; i++ {
		testutil.SeedUser(t, s.db, fmt.Sprintf("User %02d", i), fmt.Sprintf("user%02d@example.com", i))
	}

	var all, second []models.User
	w := s.do(http.MethodGet, "/users", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 15)

	w = s.do(http.MethodGet, "/users?page=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	require.Len(t, second, 5)
	for i, u := range second {
		assert.Equal(t, all[10+i].ID, u.ID)
	}

	w = s.do(http.MethodGet, "/users?page=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUser_NotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/users/missing", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, msgUserNotFound, w.Body.String())
}

func TestUpdateUserName(t *testing.T) {
	s := newTestServer(t)
	user := testutil.SeedUser(t, s.db, "Julia", "julia@example.com")

	w := s.do(http.MethodPatch, "/users/"+user.ID, `{"name":"Yulia"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, msgUserUpdated, w.Body.String())

	var got models.User
	require.NoError(t, s.db.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, "Yulia", got.Name)
	assert.Equal(t, "julia@example.com", got.Email)

	w = s.do(http.MethodPatch, "/users/missing", `{"name":"Yulia"}`)
	assert.Equal(t, msgUserNotFound, w.Body.String())

	w = s.do(http.MethodPatch, "/users/"+user.ID, `{"name":"Yu"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	require.Len(t, s.pub.published, 1)
	assert.Equal(t, "user.updated", s.pub.published[0].RoutingKey)
}

func TestDeleteUser(t *testing.T) {
	s := newTestServer(t)
	user := testutil.SeedUser(t, s.db, "Julia", "julia@example.com")

	w := s.do(http.MethodDelete, "/users/"+user.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, msgUserDeleted, w.Body.String())

	w = s.do(http.MethodGet, "/users/"+user.ID, "")
	assert.Equal(t, msgUserNotFound, w.Body.String())

	w = s.do(http.MethodDelete, "/users/"+user.ID, "")
	assert.Equal(t, msgUserNotFound, w.Body.String())
}

func TestCheckoutBook(t *testing.T) {
	s := newTestServer(t)
	user := testutil.SeedUser(t, s.db, "Julia", "julia@example.com")
	book := testutil.SeedBook(t, s.db, "War and Peace", "Tolstoy")
	body := fmt.Sprintf(`{"userId":%q,"bookId":%q}`, user.ID, book.ID)

	for i := 0; i < 2; i++ {
		w := s.do(http.MethodPost, "/users/getBook", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, msgCheckout(user.ID, book.ID), w.Body.String())
	}

	var n int64
	require.NoError(t, s.db.Model(&models.UserBook{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)

	require.Len(t, s.pub.published, 2)
	assert.Equal(t, "checkout.created", s.pub.published[0].RoutingKey)
}

func TestCheckoutBook_UnknownReference(t *testing.T) {
	s := newTestServer(t)
	user := testutil.SeedUser(t, s.db, "Julia", "julia@example.com")

	w := s.do(http.MethodPost, "/users/getBook", fmt.Sprintf(`{"userId":%q,"bookId":"missing"}`, user.ID))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, msgCheckoutReference, w.Body.String())
	assert.Empty(t, s.rep.errs)
}

func TestCheckoutBook_Validation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/users/getBook", `{"userId":""}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"userId"`)
	assert.Contains(t, w.Body.String(), `"field":"bookId"`)
}
