// Package scrape fetches netkeiba race pages with a headless browser,
// extracts typed records from their HTML and upserts them into storage.
package scrape

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/kk0055/keiba-app/config"
)

// Scraper sequences fetch → extract → upsert for one race and its horses.
// The fetcher is an injected capability so the pipeline can run against
// canned HTML in tests. One Scraper serves one logical scrape at a time;
// callers wanting concurrency use separate Scraper/Browser pairs.
type Scraper struct {
	db      *bun.DB
	fetcher Fetcher
	cfg     *config.Config
}

func New(db *bun.DB, fetcher Fetcher, cfg *config.Config) *Scraper {
	return &Scraper{db: db, fetcher: fetcher, cfg: cfg}
}

// ScrapeRace scrapes the race card for raceID and, unless entriesOnly is
// set, each entered horse's result history. All storage writes happen in
// one transaction: a failure anywhere leaves no partial race behind.
// Fetch failures are terminal; retries are the caller's business.
func (s *Scraper) ScrapeRace(ctx context.Context, raceID string, entriesOnly bool) error {
	start := time.Now()
	zap.L().Info("scraping race", zap.String("race_id", raceID), zap.Bool("entries_only", entriesOnly))

	html, err := s.fetcher.Fetch(ctx, s.cfg.ShutubaURL(raceID), raceMarkerSel)
	if err != nil {
		return fmt.Errorf("fetch race %s: %w", raceID, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("parse race page %s: %w", raceID, err)
	}

	info, err := ExtractRaceInfo(doc, raceID)
	if err != nil {
		return err
	}
	entries := ExtractEntries(doc)
	if len(entries) == 0 {
		return &MetadataError{Field: "entries", Reason: "no entry rows on race page"}
	}

	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := upsertRace(ctx, tx, info); err != nil {
			return err
		}
		for _, row := range entries {
			if err := s.saveEntry(ctx, tx, raceID, row, entriesOnly); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	zap.L().Info("race scraped",
		zap.String("race_id", raceID),
		zap.Int("entries", len(entries)),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

func (s *Scraper) saveEntry(ctx context.Context, tx bun.Tx, raceID string, row EntryRow, entriesOnly bool) error {
	if row.HorseID == "" {
		zap.L().Warn("entry row without horse id, skipping", zap.String("horse_name", row.HorseName))
		return nil
	}

	var trainerID *string
	if row.TrainerID != "" {
		if err := upsertTrainer(ctx, tx, row.TrainerID, row.TrainerName); err != nil {
			return err
		}
		trainerID = &row.TrainerID
	}
	if err := upsertHorse(ctx, tx, row, trainerID); err != nil {
		return err
	}

	var jockeyID *string
	if row.JockeyID != "" {
		if err := upsertJockey(ctx, tx, row.JockeyID, row.JockeyName); err != nil {
			return err
		}
		jockeyID = &row.JockeyID
	}
	if err := upsertEntry(ctx, tx, raceID, row, jockeyID); err != nil {
		return err
	}

	if entriesOnly {
		return nil
	}
	return s.saveHistory(ctx, tx, row.HorseID)
}

// saveHistory fetches one horse's profile page and upserts its recent
// results. Horses are fetched one at a time with a fixed pause between
// them to stay under the source site's anti-automation thresholds.
func (s *Scraper) saveHistory(ctx context.Context, tx bun.Tx, horseID string) error {
	if s.cfg.FetchDelay > 0 {
		select {
		case <-time.After(s.cfg.FetchDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	html, err := s.fetcher.Fetch(ctx, s.cfg.HorseURL(horseID), horseTableSel)
	if err != nil {
		return fmt.Errorf("fetch horse history %s: %w", horseID, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("parse horse page %s: %w", horseID, err)
	}

	for _, row := range ExtractPastRaces(doc, s.cfg.HistoryLimit) {
		if row.JockeyID == "" {
			// Past-race upsert needs a jockey id; linkless rows are
			// skipped rather than failing the whole import.
			zap.L().Info("past race without jockey id, skipping",
				zap.String("horse_id", horseID),
				zap.String("race_name", row.RaceName),
			)
			continue
		}
		if row.PastRaceID == "" {
			zap.L().Info("past race without race id, skipping",
				zap.String("horse_id", horseID),
				zap.String("race_name", row.RaceName),
			)
			continue
		}
		if err := upsertPastRace(ctx, tx, horseID, row); err != nil {
			return err
		}
	}
	return nil
}
