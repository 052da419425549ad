package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sealjuli/Library/internal/store"
	"github.com/sealjuli/Library/pkg/middleware"
	"github.com/sealjuli/Library/pkg/models"
	"github.com/sealjuli/Library/pkg/reporting"
)

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	Publish(routingKey string, body []byte, correlationID string) error
}

// BookStore is the book data-access the handlers need.
type BookStore interface {
	Create(ctx context.Context, book *models.Book) (*models.Book, error)
	FindByID(ctx context.Context, id string) (*models.Book, error)
	FindByTitle(ctx context.Context, title string, page int) (store.Page[models.Book], error)
	FindByAuthor(ctx context.Context, author string, page int) (store.Page[models.Book], error)
	FindByTitleAndAuthor(ctx context.Context, title, author string, page int) (store.Page[models.Book], error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, page int) ([]models.Book, error)
	UpdateTitle(ctx context.Context, id, title string) error
	Delete(ctx context.Context, id string) error
}

// UserStore is the user data-access the handlers need.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, page int) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
	UpdateName(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
	CreateCheckout(ctx context.Context, userID, bookID string) (*models.UserBook, error)
}

// Handler serves the book and user routes.
type Handler struct {
	Books     BookStore
	Users     UserStore
	Publisher EventPublisher
	Reporter  reporting.Reporter
	Logger    *zap.Logger
}

// NewHandler creates a new Handler. A nil publisher disables events, a nil
// reporter discards captured errors.
func NewHandler(books BookStore, users UserStore, pub EventPublisher, reporter reporting.Reporter, logger *zap.Logger) *Handler {
	if pub == nil {
		pub = nopPublisher{}
	}
	if reporter == nil {
		reporter = reporting.Nop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Books:     books,
		Users:     users,
		Publisher: pub,
		Reporter:  reporter,
		Logger:    logger.Named("API"),
	}
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, []byte, string) error { return nil }

// respond is the only place response bodies are written. Strings go out as
// plain text and everything else as JSON; lookups that miss answer with a
// text message and status 200, and that choice is made by the callers here.
func respond(c *gin.Context, status int, body any) {
	if text, ok := body.(string); ok {
		c.String(status, text)
		return
	}
	c.JSON(status, body)
}

// fail reports an unexpected error and answers 500.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	h.Reporter.Capture(c.Request.Context(), err, map[string]string{
		"op":     op,
		"route":  c.FullPath(),
		"method": c.Request.Method,
	})
	respond(c, http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// publish emits a domain event. Failures are reported but never fail the
// request: the write has already happened.
func (h *Handler) publish(c *gin.Context, eventType models.EventType, data any) {
	correlationID := middleware.GetCorrelationID(c)

	body, err := models.NewEvent(eventType, correlationID, data).Encode()
	if err == nil {
		err = h.Publisher.Publish(string(eventType), body, correlationID)
	}
	if err != nil {
		h.Reporter.Capture(c.Request.Context(), err, map[string]string{
			"op":         "publish",
			"event_type": string(eventType),
		})
	}
}

// toInt converts a string accepted by validation.Integer, truncating the
// fraction.
func toInt(raw string) int {
	whole, _, _ := strings.Cut(raw, ".")
	n, _ := strconv.ParseInt(whole, 10, 32)
	return int(n)
}
