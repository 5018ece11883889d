package handlers

import (
	"github.com/uptrace/bun"

	"github.com/kk0055/keiba-app/config"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db  *bun.DB
	cfg *config.Config
}

// New creates a Handler with the given database connection and config.
func New(db *bun.DB, cfg *config.Config) *Handler {
	return &Handler{db: db, cfg: cfg}
}
