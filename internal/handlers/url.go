package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rapid-url/rapid-url/internal/middleware"
	"github.com/rapid-url/rapid-url/internal/shortener"
	"go.uber.org/zap"
)

// URLHandler handles URL shortening operations.
type URLHandler struct {
	service *shortener.Service
	logger  *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(service *shortener.Service, logger *zap.Logger) *URLHandler {
	return &URLHandler{
		service: service,
		logger:  logger,
	}
}

func (h *URLHandler) CreateShortURL(ctx context.Context, req *CreateShortURLRequest) (*CreateShortURLResponse, error) {
	owner, ok := middleware.SubjectFromContext(ctx)
	if !ok {
		// The auth middleware gates this operation; reaching here without a
		// subject means the route was wired without it.
		return nil, huma.Error400BadRequest("user identity not found")
	}

	shortURL, err := h.service.Shorten(ctx, owner, req.Body.OriginalURL)
	if err != nil {
		h.logger.Error("failed to create short url",
			zap.String("owner", owner.String()),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to create short url")
	}

	resp := &CreateShortURLResponse{}
	resp.Body.Status = true
	resp.Body.CustomerMessage = "Successfully created short url"
	resp.Body.Code = "200"
	resp.Body.Data = &ShortURLData{ShortURL: shortURL}

	return resp, nil
}

func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	originalURL, err := h.service.Resolve(ctx, shortener.Code(req.Code))
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short url not found")
		}

		h.logger.Error("failed to resolve short url",
			zap.String("code", req.Code),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to resolve short url")
	}

	resp := &RedirectResponse{
		Status: http.StatusFound,
	}
	resp.Location = originalURL

	return resp, nil
}
