// Command scraperace scrapes one netkeiba race card into the database.
//
//	scraperace -race 202306050811             # card + each horse's history
//	scraperace -race 202306050811 -entries-only
package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/kk0055/keiba-app/config"
	"github.com/kk0055/keiba-app/db"
	applog "github.com/kk0055/keiba-app/logger"
	"github.com/kk0055/keiba-app/scrape"
)

func main() {
	raceID := flag.String("race", "", "netkeiba race id, e.g. 202306050811")
	entriesOnly := flag.Bool("entries-only", false, "skip each horse's result history")
	flag.Parse()

	if *raceID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	ctx := context.Background()
	if err := db.CreateTables(ctx, bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	browser, err := scrape.NewBrowser(ctx, scrape.BrowserOptions{
		Headless:      cfg.Headless,
		WaitSec:       cfg.WaitSec,
		ScreenshotDir: cfg.ScreenshotDir,
	})
	if err != nil {
		logger.Fatal("browser start failed", zap.Error(err))
	}
	defer browser.Close()

	s := scrape.New(bdb, browser, cfg)
	if err := s.ScrapeRace(ctx, *raceID, *entriesOnly); err != nil {
		logger.Fatal("scrape failed", zap.String("race_id", *raceID), zap.Error(err))
	}
}
