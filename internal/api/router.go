package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sealjuli/Library/pkg/middleware"
	"github.com/sealjuli/Library/pkg/validation"
)

// Route binds a method and path to the rules checked before its handler.
type Route struct {
	Method  string
	Path    string
	Rules   validation.Rules
	Handler gin.HandlerFunc
}

// Routes returns the book and user routes.
func (h *Handler) Routes() []Route {
	return []Route{
		{http.MethodGet, "/books/count", nil, h.CountBooks},
		{http.MethodGet, "/books", validation.BookQuery, h.ListBooks},
		{http.MethodGet, "/books/:id", validation.BookID, h.GetBook},
		{http.MethodPost, "/books", validation.BookBody, h.CreateBook},
		{http.MethodPatch, "/books/:id", validation.Join(validation.BookTitle, validation.BookID), h.UpdateBookTitle},
		{http.MethodDelete, "/books/:id", validation.BookID, h.DeleteBook},

		{http.MethodGet, "/users/count", nil, h.CountUsers},
		{http.MethodGet, "/users", validation.UserQuery, h.ListUsers},
		{http.MethodGet, "/users/:id", validation.UserID, h.GetUser},
		{http.MethodPost, "/users", validation.UserBody, h.CreateUser},
		{http.MethodPatch, "/users/:id", validation.Join(validation.UserName, validation.UserID), h.UpdateUserName},
		{http.MethodDelete, "/users/:id", validation.UserID, h.DeleteUser},
		{http.MethodPost, "/users/getBook", validation.CheckoutBody, h.CheckoutBook},
	}
}

// NewRouter creates and configures the Gin router.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(
		middleware.CorrelationID(),
		middleware.RequestLogger(h.Logger),
		middleware.Recovery(h.Reporter),
	)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	for _, route := range h.Routes() {
		handlers := []gin.HandlerFunc{route.Handler}
		if len(route.Rules) > 0 {
			handlers = []gin.HandlerFunc{h.validated(route.Rules), route.Handler}
		}
		r.Handle(route.Method, route.Path, handlers...)
	}

	return r
}
