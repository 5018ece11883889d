// Package export renders a ranked race view to CSV or JSON files.
// Its failures are I/O failures, kept distinct from scrape errors so
// callers can tell "no data" from "data exists but could not be written".
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kk0055/keiba-app/raceview"
)

// ErrWrite marks an export file-write failure.
var ErrWrite = errors.New("export write failed")

// csvHeader is the fixed long-format layout: current-entry columns first,
// past-result columns after. One 出走情報 row per entry, one 過去成績 row
// per past race, then a separator row.
var csvHeader = []string{
	"レコード種別",
	"馬番",
	"枠番",
	"馬名",
	"今回の斤量",
	"今回の騎手",
	"オッズ",
	"日付",
	"開催",
	"天気",
	"レース名",
	"頭数",
	"過去の馬番",
	"過去の枠番",
	"過去のオッズ",
	"着順",
	"過去の騎手",
	"過去の斤量",
	"コース",
	"馬場状態",
	"タイム",
	"着差",
	"通過",
	"ペース",
	"last_3f",
	"body_weight",
}

const (
	recordTypeEntry     = "出走情報"
	recordTypePast      = "過去成績"
	recordTypeSeparator = "---"
)

// WriteCSV writes the long-format CSV for a race to dir/<race_id>.csv and
// returns the written path.
func WriteCSV(race *raceview.Race, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	path := filepath.Join(dir, race.RaceID+".csv")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer f.Close()

	if err := writeCSVTo(f, race); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return path, nil
}

func writeCSVTo(w io.Writer, race *raceview.Race) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	for _, entry := range race.Entries {
		if err := cw.Write(entryRow(entry)); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
		if entry.Horse != nil {
			for _, past := range entry.Horse.PastRaces {
				if err := cw.Write(pastRow(entry, past)); err != nil {
					return fmt.Errorf("%w: %v", ErrWrite, err)
				}
			}
		}
		if err := cw.Write(separatorRow()); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func entryRow(entry *raceview.Entry) []string {
	row := make([]string, len(csvHeader))
	row[0] = recordTypeEntry
	row[1] = intStr(entry.Umaban)
	row[2] = intStr(entry.Waku)
	if entry.Horse != nil {
		row[3] = entry.Horse.HorseName
	}
	row[4] = floatStr(entry.WeightCarried)
	if entry.Jockey != nil {
		row[5] = entry.Jockey.JockeyName
	}
	row[6] = floatStr(entry.Odds)
	return row
}

func pastRow(entry *raceview.Entry, past *raceview.PastRace) []string {
	row := make([]string, len(csvHeader))
	row[0] = recordTypePast
	row[1] = intStr(entry.Umaban)
	if entry.Horse != nil {
		row[3] = entry.Horse.HorseName
	}
	row[7] = past.RaceDate
	row[8] = past.VenueName
	row[9] = past.Weather
	row[10] = past.RaceName
	row[11] = intStr(past.HeadCount)
	row[12] = intStr(past.Umaban)
	row[13] = intStr(past.Waku)
	row[14] = floatStr(past.Odds)
	row[15] = intStr(past.Rank)
	row[16] = past.JockeyName
	row[17] = floatStr(past.WeightCarried)
	row[18] = past.Distance
	row[19] = past.GroundCondition
	row[20] = past.Time
	row[21] = past.Margin
	row[22] = past.Passing
	row[23] = past.Pace
	row[24] = past.Last3F
	row[25] = past.BodyWeight
	return row
}

func separatorRow() []string {
	row := make([]string, len(csvHeader))
	row[0] = recordTypeSeparator
	return row
}

// WriteJSON writes the ranked race view to dir/<race_id>.json, pretty
// printed without escaping non-ASCII text, and returns the written path.
func WriteJSON(race *raceview.Race, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	path := filepath.Join(dir, race.RaceID+".json")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(race); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return path, nil
}

func intStr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatStr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
