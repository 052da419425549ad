package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sealjuli/Library/internal/store"
	"github.com/sealjuli/Library/pkg/models"
)

// CountUsers godoc
// @Summary      Count users
// @Description  Returns the number of library users as text
// @Tags         users
// @Produce      plain
// @Success      200  {string}  string
// @Failure      500  {object}  map[string]string
// @Router       /users/count [get]
func (h *Handler) CountUsers(c *gin.Context) {
	n, err := h.Users.Count(c.Request.Context())
	if err != nil {
		h.fail(c, "count users", err)
		return
	}
	respond(c, http.StatusOK, msgUserCount(n))
}

// ListUsers godoc
// @Summary      List users
// @Description  Returns all users, or a window of 10 when page is set
// @Tags         users
// @Produce      json
// @Param        page  query     string  false  "1-based page"
// @Success      200   {array}   models.User
// @Failure      400   {object}  map[string]any
// @Failure      500   {object}  map[string]string
// @Router       /users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context(), store.ParsePage(input(c).Query["page"]))
	if err != nil {
		h.fail(c, "list users", err)
		return
	}
	respond(c, http.StatusOK, users)
}

// GetUser godoc
// @Summary      Get a user by ID
// @Description  Returns the user, or a not-found message as text
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  models.User
// @Failure      500  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.Users.FindByID(c.Request.Context(), input(c).Params["id"])
	if errors.Is(err, store.ErrNotFound) {
		respond(c, http.StatusOK, msgUserNotFound)
		return
	}
	if err != nil {
		h.fail(c, "get user", err)
		return
	}
	respond(c, http.StatusOK, user)
}

// CreateUser godoc
// @Summary      Register a user
// @Description  Registers a user unless the email is taken, and publishes a user.created event
// @Tags         users
// @Accept       json
// @Produce      plain
// @Param        request  body      models.CreateUserRequest  true  "User"
// @Success      201      {string}  string
// @Success      200      {string}  string  "email already registered"
// @Failure      400      {object}  map[string]any
// @Failure      500      {object}  map[string]string
// @Router       /users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	ctx := c.Request.Context()
	body := input(c).Body
	email := body["email"]

	_, err := h.Users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		respond(c, http.StatusOK, msgUserDuplicate)
		return
	case !errors.Is(err, store.ErrNotFound):
		h.fail(c, "find user by email", err)
		return
	}

	user, err := h.Users.Create(ctx, &models.User{
		Name:         body["name"],
		Email:        email,
		RegisterDate: time.Now(),
	})
	if errors.Is(err, store.ErrDuplicateEmail) {
		respond(c, http.StatusOK, msgUserDuplicate)
		return
	}
	if err != nil {
		h.fail(c, "create user", err)
		return
	}

	h.publish(c, models.EventUserCreated, user)
	c.Header("Location", "/users/"+user.ID)
	respond(c, http.StatusCreated, msgUserCreated)
}

// UpdateUserName godoc
// @Summary      Rename a user
// @Description  Updates the name of a user and publishes a user.updated event
// @Tags         users
// @Accept       json
// @Produce      plain
// @Param        id       path      string                        true  "User ID"
// @Param        request  body      models.UpdateUserNameRequest  true  "New name"
// @Success      200      {string}  string
// @Failure      400      {object}  map[string]any
// @Failure      500      {object}  map[string]string
// @Router       /users/{id} [patch]
func (h *Handler) UpdateUserName(c *gin.Context) {
	ctx := c.Request.Context()
	in := input(c)
	id, name := in.Params["id"], in.Body["name"]

	user, err := h.Users.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		respond(c, http.StatusOK, msgUserNotFound)
		return
	}
	if err != nil {
		h.fail(c, "find user", err)
		return
	}

	if err := h.Users.UpdateName(ctx, id, name); err != nil {
		h.fail(c, "update user name", err)
		return
	}

	user.Name = name
	h.publish(c, models.EventUserUpdated, user)
	respond(c, http.StatusOK, msgUserUpdated)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Deletes a user with their checkouts and publishes a user.deleted event
// @Tags         users
// @Produce      plain
// @Param        id   path      string  true  "User ID"
// @Success      200  {string}  string
// @Failure      500  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	ctx := c.Request.Context()
	id := input(c).Params["id"]

	if _, err := h.Users.FindByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respond(c, http.StatusOK, msgUserNotFound)
			return
		}
		h.fail(c, "find user", err)
		return
	}

	if err := h.Users.Delete(ctx, id); err != nil {
		h.fail(c, "delete user", err)
		return
	}

	h.publish(c, models.EventUserDeleted, models.DeletedRef{ID: id})
	respond(c, http.StatusOK, msgUserDeleted)
}

// CheckoutBook godoc
// @Summary      Check out a book
// @Description  Records that a user took a book and publishes a checkout.created event. Repeated checkouts are allowed.
// @Tags         users
// @Accept       json
// @Produce      plain
// @Param        request  body      models.CheckoutRequest  true  "Checkout"
// @Success      201      {string}  string
// @Success      200      {string}  string  "unknown user or book"
// @Failure      400      {object}  map[string]any
// @Failure      500      {object}  map[string]string
// @Router       /users/getBook [post]
func (h *Handler) CheckoutBook(c *gin.Context) {
	body := input(c).Body
	userID, bookID := body["userId"], body["bookId"]

	checkout, err := h.Users.CreateCheckout(c.Request.Context(), userID, bookID)
	if errors.Is(err, store.ErrUnknownReference) {
		respond(c, http.StatusOK, msgCheckoutReference)
		return
	}
	if err != nil {
		h.fail(c, "create checkout", err)
		return
	}

	h.publish(c, models.EventCheckoutCreated, checkout)
	respond(c, http.StatusCreated, msgCheckout(userID, bookID))
}
