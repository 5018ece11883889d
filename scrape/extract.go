package scrape

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Selectors and cell offsets for the two netkeiba page layouts we read.
// The card (shutuba) table and the horse-profile history table are both
// positional; rows shorter than the minimum are placeholders and skipped.
const (
	raceTableSel  = "table.Shutuba_Table, table.RegHorse_Table"
	raceMarkerSel = "table[class*='RaceTable']"
	horseTableSel = "table.db_h_race_results"
	minEntryCells = 10
	minPastCells  = 24
)

var (
	horseIDRe    = regexp.MustCompile(`/horse/(\d+)`)
	jockeyIDRe   = regexp.MustCompile(`/jockey/(?:result/recent/)?([0-9a-zA-Z]+)`)
	trainerIDRe  = regexp.MustCompile(`/trainer/(?:result/recent/)?([0-9a-zA-Z]+)`)
	pastRaceIDRe = regexp.MustCompile(`/race/(\d+)`)
	raceDateRe   = regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日`)
	venueRe      = regexp.MustCompile(`^(\d+)(\D+?)(\d+)$`)
	last3fRankRe = regexp.MustCompile(`rank_(\d+)`)
)

// RaceInfo is the typed result of race-page metadata extraction.
type RaceInfo struct {
	RaceID          string
	RaceName        string
	RaceDate        time.Time
	Venue           string
	CourseDetails   string
	GroundCondition string
	RaceNumber      *int
}

// EntryRow is one row of the current race card, extracted best-effort:
// a missing cell leaves its field empty rather than failing the row.
type EntryRow struct {
	Waku          string
	Umaban        string
	HorseID       string
	HorseName     string
	SexAge        string
	WeightCarried string
	JockeyID      string
	JockeyName    string
	TrainerID     string
	TrainerName   string
	HorseWeight   string
	Odds          string
	Popularity    string
}

// PastRaceRow is one row of a horse's result history.
type PastRaceRow struct {
	PastRaceID      string
	Date            string
	VenueRound      string
	VenueName       string
	VenueDay        string
	Weather         string
	RaceName        string
	HeadCount       string
	Umaban          string
	Waku            string
	Odds            string
	Popularity      string
	Rank            string
	JockeyID        string
	JockeyName      string
	WeightCarried   string
	Distance        string
	GroundCondition string
	Time            string
	Margin          string
	Passing         string
	Pace            string
	Last3F          string
	Last3FRank      string
	BodyWeight      string
}

// ExtractRaceInfo reads race metadata from a race card document. Any
// required node or pattern that cannot be read yields a *MetadataError;
// metadata is never partially reported.
func ExtractRaceInfo(doc *goquery.Document, raceID string) (*RaceInfo, error) {
	heading := doc.Find("h1.RaceName").First()
	data01 := doc.Find("div.RaceData01").First()
	if heading.Length() == 0 {
		return nil, &MetadataError{Field: "race_name", Reason: "h1.RaceName not found"}
	}
	if data01.Length() == 0 {
		return nil, &MetadataError{Field: "race_data", Reason: "div.RaceData01 not found"}
	}

	info := &RaceInfo{
		RaceID:   raceID,
		RaceName: strings.TrimSpace(heading.Text()),
	}

	data01Text := strings.TrimSpace(data01.Text())
	m := raceDateRe.FindStringSubmatch(data01Text)
	if m == nil {
		return nil, &MetadataError{Field: "race_date", Reason: "no date pattern in " + strconv.Quote(data01Text)}
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	info.RaceDate = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	if parts := strings.Fields(data01Text); len(parts) > 1 {
		info.Venue = parts[1]
	}

	if span := doc.Find("div.RaceData02 span").First(); span.Length() > 0 {
		segs := strings.Split(strings.TrimSpace(span.Text()), "/")
		if len(segs) > 0 {
			info.CourseDetails = strings.TrimSpace(segs[0])
		}
		if last := segs[len(segs)-1]; len(segs) > 1 && strings.Contains(last, ":") {
			after := last[strings.LastIndex(last, ":")+1:]
			info.GroundCondition = strings.TrimSpace(after)
		}
	}

	if num := doc.Find("span.RaceNum").First(); num.Length() > 0 {
		if digits := digitsRe.FindString(num.Text()); digits != "" {
			info.RaceNumber = atoiPtr(digits)
		}
	}

	return info, nil
}

// ExtractEntries reads the current entry table. Rows with fewer than the
// minimum cell count are skipped; within a retained row every field is
// optional.
func ExtractEntries(doc *goquery.Document) []EntryRow {
	table := doc.Find(raceTableSel).First()
	if table.Length() == 0 {
		return nil
	}

	var entries []EntryRow
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < minEntryCells {
			zap.L().Debug("skipping short entry row", zap.Int("cells", cells.Length()))
			return
		}
		cell := func(i int) string {
			return strings.TrimSpace(cells.Eq(i).Text())
		}

		row := EntryRow{
			Waku:          cell(0),
			Umaban:        cell(1),
			HorseName:     cell(3),
			SexAge:        cell(4),
			WeightCarried: cell(5),
			JockeyName:    cell(6),
			TrainerName:   cell(7),
			HorseWeight:   cell(8),
			Odds:          cell(9),
		}
		if cells.Length() > 10 {
			row.Popularity = cell(10)
		}

		if a := cells.Eq(3).Find("a[href*='/horse/']").First(); a.Length() > 0 {
			href, _ := a.Attr("href")
			if m := horseIDRe.FindStringSubmatch(href); m != nil {
				row.HorseID = m[1]
			}
			row.HorseName = strings.TrimSpace(a.Text())
		}
		if a := cells.Eq(6).Find("a[href*='/jockey/']").First(); a.Length() > 0 {
			href, _ := a.Attr("href")
			if m := jockeyIDRe.FindStringSubmatch(href); m != nil {
				row.JockeyID = m[1]
			}
			row.JockeyName = strings.TrimSpace(a.Text())
		}
		if a := cells.Eq(7).Find("a[href*='/trainer/']").First(); a.Length() > 0 {
			href, _ := a.Attr("href")
			if m := trainerIDRe.FindStringSubmatch(href); m != nil {
				row.TrainerID = m[1]
			}
			row.TrainerName = strings.TrimSpace(a.Text())
		}

		entries = append(entries, row)
	})

	return entries
}

// ExtractPastRaces reads up to limit most-recent rows from a horse's
// result-history table.
func ExtractPastRaces(doc *goquery.Document, limit int) []PastRaceRow {
	var rows []PastRaceRow
	doc.Find(horseTableSel + " tbody tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		if limit > 0 && len(rows) >= limit {
			return false
		}
		cells := tr.Find("td")
		if cells.Length() < minPastCells {
			zap.L().Debug("skipping short history row", zap.Int("cells", cells.Length()))
			return true
		}
		cell := func(i int) string {
			return strings.TrimSpace(cells.Eq(i).Text())
		}

		row := PastRaceRow{
			Date:            cell(0),
			Weather:         cell(2),
			HeadCount:       cell(6),
			Umaban:          cell(7),
			Waku:            cell(8),
			Odds:            cell(9),
			Popularity:      cell(10),
			Rank:            cell(11),
			WeightCarried:   cell(13),
			Distance:        cell(14),
			GroundCondition: cell(15),
			Time:            cell(17),
			Margin:          cell(18),
			Passing:         cell(20),
			Pace:            cell(21),
			Last3F:          cell(22),
			BodyWeight:      cell(23),
		}

		row.VenueRound, row.VenueName, row.VenueDay = splitVenue(cell(1))

		if a := cells.Eq(4).Find("a").First(); a.Length() > 0 {
			row.RaceName = strings.TrimSpace(a.Text())
			href, _ := a.Attr("href")
			if m := pastRaceIDRe.FindStringSubmatch(href); m != nil {
				row.PastRaceID = m[1]
			}
		} else {
			row.RaceName = cell(4)
		}

		// Minor jockeys have no profile link; keep the display name but
		// leave the id empty so the orchestrator can skip the row.
		if a := cells.Eq(12).Find("a").First(); a.Length() > 0 {
			row.JockeyName = strings.TrimSpace(a.Text())
			href, _ := a.Attr("href")
			if m := jockeyIDRe.FindStringSubmatch(href); m != nil {
				row.JockeyID = m[1]
			}
		} else {
			row.JockeyName = cell(12)
		}

		if class, ok := cells.Eq(22).Find("span").First().Attr("class"); ok {
			if m := last3fRankRe.FindStringSubmatch(class); m != nil {
				row.Last3FRank = m[1]
			}
		}

		rows = append(rows, row)
		return true
	})

	return rows
}

// splitVenue decomposes a compound venue string like "5中山8" into
// (round, name, day). A string without both digit runs is all name.
func splitVenue(s string) (round, name, day string) {
	s = strings.TrimSpace(s)
	if m := venueRe.FindStringSubmatch(s); m != nil {
		return m[1], m[2], m[3]
	}
	return "", s, ""
}
