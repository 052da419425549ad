package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sealjuli/Library/internal/store"
	"github.com/sealjuli/Library/pkg/models"
)

// CountBooks godoc
// @Summary      Count books
// @Description  Returns the number of books in the library as text
// @Tags         books
// @Produce      plain
// @Success      200  {string}  string
// @Failure      500  {object}  map[string]string
// @Router       /books/count [get]
func (h *Handler) CountBooks(c *gin.Context) {
	n, err := h.Books.Count(c.Request.Context())
	if err != nil {
		h.fail(c, "count books", err)
		return
	}
	respond(c, http.StatusOK, msgBookCount(n))
}

// ListBooks godoc
// @Summary      List books
// @Description  Without filters returns an array of books; with title and/or author returns {rows, count}. page selects a window of 10.
// @Tags         books
// @Produce      json
// @Param        title   query     string  false  "Exact title"
// @Param        author  query     string  false  "Exact author"
// @Param        page    query     string  false  "1-based page"
// @Success      200     {array}   models.Book
// @Failure      400     {object}  map[string]any
// @Failure      500     {object}  map[string]string
// @Router       /books [get]
func (h *Handler) ListBooks(c *gin.Context) {
	ctx := c.Request.Context()
	in := input(c)
	title, author := in.Query["title"], in.Query["author"]
	page := store.ParsePage(in.Query["page"])

	var (
		result any
		err    error
	)
	switch {
	case title == "" && author == "":
		result, err = h.Books.List(ctx, page)
	case title != "" && author != "":
		result, err = h.Books.FindByTitleAndAuthor(ctx, title, author, page)
	case title != "":
		result, err = h.Books.FindByTitle(ctx, title, page)
	default:
		result, err = h.Books.FindByAuthor(ctx, author, page)
	}
	if err != nil {
		h.fail(c, "list books", err)
		return
	}
	respond(c, http.StatusOK, result)
}

// GetBook godoc
// @Summary      Get a book by ID
// @Description  Returns the book, or a not-found message as text
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "Book ID"
// @Success      200  {object}  models.Book
// @Failure      500  {object}  map[string]string
// @Router       /books/{id} [get]
func (h *Handler) GetBook(c *gin.Context) {
	book, err := h.Books.FindByID(c.Request.Context(), input(c).Params["id"])
	if errors.Is(err, store.ErrNotFound) {
		respond(c, http.StatusOK, msgBookNotFound)
		return
	}
	if err != nil {
		h.fail(c, "get book", err)
		return
	}
	respond(c, http.StatusOK, book)
}

// CreateBook godoc
// @Summary      Add a book
// @Description  Adds a book and publishes a book.created event. The Location header carries the new book's path.
// @Tags         books
// @Accept       json
// @Produce      plain
// @Param        request  body      models.CreateBookRequest  true  "Book"
// @Success      201      {string}  string
// @Failure      400      {object}  map[string]any
// @Failure      500      {object}  map[string]string
// @Router       /books [post]
func (h *Handler) CreateBook(c *gin.Context) {
	body := input(c).Body
	book := &models.Book{
		Title:           body["title"],
		Author:          body["author"],
		PublicationYear: toInt(body["publicationYear"]),
		PagesNumber:     toInt(body["pagesNumber"]),
	}

	book, err := h.Books.Create(c.Request.Context(), book)
	if err != nil {
		h.fail(c, "create book", err)
		return
	}

	h.publish(c, models.EventBookCreated, book)
	c.Header("Location", "/books/"+book.ID)
	respond(c, http.StatusCreated, msgBookCreated)
}

// UpdateBookTitle godoc
// @Summary      Rename a book
// @Description  Updates the title of a book and publishes a book.updated event
// @Tags         books
// @Accept       json
// @Produce      plain
// @Param        id       path      string                         true  "Book ID"
// @Param        request  body      models.UpdateBookTitleRequest  true  "New title"
// @Success      200      {string}  string
// @Failure      400      {object}  map[string]any
// @Failure      500      {object}  map[string]string
// @Router       /books/{id} [patch]
func (h *Handler) UpdateBookTitle(c *gin.Context) {
	ctx := c.Request.Context()
	in := input(c)
	id, title := in.Params["id"], in.Body["title"]

	book, err := h.Books.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		respond(c, http.StatusOK, msgBookNotFound)
		return
	}
	if err != nil {
		h.fail(c, "find book", err)
		return
	}

	if err := h.Books.UpdateTitle(ctx, id, title); err != nil {
		h.fail(c, "update book title", err)
		return
	}

	book.Title = title
	h.publish(c, models.EventBookUpdated, book)
	respond(c, http.StatusOK, msgBookUpdated)
}

// DeleteBook godoc
// @Summary      Delete a book
// @Description  Deletes a book and publishes a book.deleted event
// @Tags         books
// @Produce      plain
// @Param        id   path      string  true  "Book ID"
// @Success      200  {string}  string
// @Failure      500  {object}  map[string]string
// @Router       /books/{id} [delete]
func (h *Handler) DeleteBook(c *gin.Context) {
	ctx := c.Request.Context()
	id := input(c).Params["id"]

	if _, err := h.Books.FindByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respond(c, http.StatusOK, msgBookNotFound)
			return
		}
		h.fail(c, "find book", err)
		return
	}

	if err := h.Books.Delete(ctx, id); err != nil {
		h.fail(c, "delete book", err)
		return
	}

	h.publish(c, models.EventBookDeleted, models.DeletedRef{ID: id})
	respond(c, http.StatusOK, msgBookDeleted)
}
