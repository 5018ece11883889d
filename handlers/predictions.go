package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kk0055/keiba-app/models"
)

type predictionRequest struct {
	Race                string `json:"race"`
	PredictionModelName string `json:"prediction_model_name"`
	Notes               string `json:"notes"`
}

// ListPredictions returns predictions, optionally filtered by race id.
func (h *Handler) ListPredictions(c echo.Context) error {
	var predictions []models.AIPrediction
	q := h.db.NewSelect().Model(&predictions).OrderExpr("p.id DESC")

	if race := c.QueryParam("race"); race != "" {
		q = q.Where("p.race_id = ?", race)
	}

	if err := q.Scan(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, predictions)
}

// CreatePrediction stores a new prediction for a race.
func (h *Handler) CreatePrediction(c echo.Context) error {
	var req predictionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.Race = strings.TrimSpace(req.Race)
	req.PredictionModelName = strings.TrimSpace(req.PredictionModelName)
	if req.Race == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "race is required")
	}
	if req.PredictionModelName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "prediction_model_name is required")
	}

	prediction := &models.AIPrediction{
		RaceID:              req.Race,
		PredictionModelName: req.PredictionModelName,
		Notes:               req.Notes,
	}

	if _, err := h.db.NewInsert().Model(prediction).Exec(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, prediction)
}

// UpdatePrediction replaces an existing prediction's model name and notes.
func (h *Handler) UpdatePrediction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid prediction id")
	}

	var req predictionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	prediction := &models.AIPrediction{}
	err = h.db.NewSelect().Model(prediction).Where("p.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "prediction not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Race != "" {
		prediction.RaceID = strings.TrimSpace(req.Race)
	}
	if req.PredictionModelName != "" {
		prediction.PredictionModelName = strings.TrimSpace(req.PredictionModelName)
	}
	prediction.Notes = req.Notes

	if _, err := h.db.NewUpdate().Model(prediction).WherePK().Exec(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, prediction)
}

// DeletePrediction removes a prediction.
func (h *Handler) DeletePrediction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid prediction id")
	}

	res, err := h.db.NewDelete().Model((*models.AIPrediction)(nil)).
		Where("id = ?", id).
		Exec(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "prediction not found")
	}

	return c.NoContent(http.StatusNoContent)
}
