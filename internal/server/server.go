// Package server exposes the matching engine over HTTP.
package server

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/ferrovax/ridgeline/internal/blobstore"
	"github.com/ferrovax/ridgeline/internal/common"
	"github.com/ferrovax/ridgeline/internal/engine"
	"github.com/ferrovax/ridgeline/internal/service"
)

// Server wires the identification and enrollment flows to HTTP handlers.
type Server struct {
	app        *fiber.App
	identifier *engine.Identifier
	enroller   *engine.Enroller
	storage    service.Storage
	blobs      blobstore.Store
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// New creates a configured server.
func New(storage service.Storage, blobs blobstore.Store) *Server {
	s := &Server{
		identifier: engine.NewIdentifier(storage),
		enroller:   engine.NewEnroller(storage, blobs),
		storage:    storage,
		blobs:      blobs,
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    16 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now(),
		})
	})

	api := app.Group("/api/v1")
	api.Post("/match", s.handleMatch)
	api.Post("/records", s.handleEnroll)
	api.Get("/records", s.handleListRecords)
	api.Get("/records/:id", s.handleGetRecord)
	api.Delete("/records/:id", s.handleDeleteRecord)
	api.Get("/records/:id/image", s.handleRecordImage)

	s.app = app
	return s
}

// App returns the underlying fiber application, used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts serving on the given address and blocks.
func (s *Server) Listen(addr string) error {
	slog.Info("server starting", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Something went wrong. Please try again."

	var fe *fiber.Error
	var ue *common.UserError
	switch {
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	case errors.As(err, &ue):
		message = ue.UserMessage
	case errors.Is(err, common.ErrNotFound), errors.Is(err, blobstore.ErrNotFound):
		code = fiber.StatusNotFound
		message = "not found"
	}

	if code == fiber.StatusInternalServerError {
		slog.Error("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(ErrorResponse{Error: message})
}
