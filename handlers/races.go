package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kk0055/keiba-app/models"
	"github.com/kk0055/keiba-app/raceview"
	"github.com/kk0055/keiba-app/scrape"
)

// RaceDetail returns race metadata plus ranked entries. A race that is not
// in storage yet is scraped synchronously first; a scrape failure surfaces
// as a server error carrying the underlying cause.
//
// Concurrent requests for the same absent race are not serialized here and
// may both trigger a scrape; the natural-key upserts keep that harmless.
func (h *Handler) RaceDetail(c echo.Context) error {
	raceID := c.Param("race_id")
	if raceID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing race_id")
	}
	ctx := c.Request().Context()

	exists, err := h.db.NewSelect().Model((*models.Race)(nil)).
		Where("race_id = ?", raceID).
		Exists(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !exists {
		if err := h.scrapeRace(ctx, raceID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError,
				fmt.Sprintf("failed to fetch race data: %v", err))
		}
	}

	view, err := raceview.Get(ctx, h.db, raceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "race not found after scrape")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, view)
}

// scrapeRace runs the full scrape pipeline with a browser session scoped
// to this one invocation.
func (h *Handler) scrapeRace(ctx context.Context, raceID string) error {
	browser, err := scrape.NewBrowser(ctx, scrape.BrowserOptions{
		Headless:      h.cfg.Headless,
		WaitSec:       h.cfg.WaitSec,
		ScreenshotDir: h.cfg.ScreenshotDir,
	})
	if err != nil {
		return err
	}
	defer browser.Close()

	return scrape.New(h.db, browser, h.cfg).ScrapeRace(ctx, raceID, false)
}
