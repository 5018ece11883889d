// Package raceview assembles the ranked race detail served by the API and
// the export commands. It is read-only: nothing here mutates storage.
package raceview

import (
	"context"
	"sort"

	"github.com/uptrace/bun"

	"github.com/kk0055/keiba-app/models"
)

// Race is the serialized race detail: metadata plus entries ordered by
// historical strong-finish count, then cumulative grade score.
type Race struct {
	RaceID          string   `json:"race_id"`
	RaceName        string   `json:"race_name"`
	RaceNumber      *int     `json:"race_number"`
	RaceDate        string   `json:"race_date,omitempty"`
	Venue           string   `json:"venue"`
	CourseDetails   string   `json:"course_details"`
	GroundCondition string   `json:"ground_condition"`
	HeadCount       int      `json:"head_count"`
	Entries         []*Entry `json:"entries"`
}

type Entry struct {
	Waku          *int     `json:"waku"`
	Umaban        *int     `json:"umaban"`
	WeightCarried *float64 `json:"weight_carried"`
	Odds          *float64 `json:"odds"`
	Popularity    *int     `json:"popularity"`
	Horse         *Horse   `json:"horse"`
	Jockey        *Jockey  `json:"jockey"`

	// Aggregates over the horse's stored history. Always present:
	// a horse with no history reports zero, never null.
	WinPlaceCount   int `json:"win_place_count"`
	GradeScoreTotal int `json:"grade_score_total"`
}

type Horse struct {
	HorseID   string      `json:"horse_id"`
	HorseName string      `json:"horse_name"`
	PastRaces []*PastRace `json:"past_races"`
}

type Jockey struct {
	JockeyID   string `json:"jockey_id"`
	JockeyName string `json:"jockey_name"`
}

type PastRace struct {
	PastRaceID      string   `json:"past_race_id"`
	RaceDate        string   `json:"race_date,omitempty"`
	VenueRound      *int     `json:"venue_round,omitempty"`
	VenueName       string   `json:"venue_name"`
	VenueDay        *int     `json:"venue_day,omitempty"`
	RaceName        string   `json:"race_name"`
	RaceGradeScore  int      `json:"race_grade_score"`
	Weather         string   `json:"weather"`
	HeadCount       *int     `json:"head_count"`
	Waku            *int     `json:"waku"`
	Umaban          *int     `json:"umaban"`
	Odds            *float64 `json:"odds"`
	Popularity      *int     `json:"popularity"`
	Rank            *int     `json:"rank"`
	JockeyID        string   `json:"jockey_id"`
	JockeyName      string   `json:"jockey_name"`
	WeightCarried   *float64 `json:"weight_carried"`
	Distance        string   `json:"distance"`
	GroundCondition string   `json:"ground_condition"`
	Time            string   `json:"time"`
	Margin          string   `json:"margin"`
	Passing         string   `json:"passing"`
	Pace            string   `json:"pace"`
	Last3F          string   `json:"last_3f"`
	Last3FRank      *int     `json:"last_3f_rank,omitempty"`
	BodyWeight      string   `json:"body_weight"`
}

const dateLayout = "2006-01-02"

// Get loads a race with its entries, nested horse history and jockey
// detail, and ranks the entries. Returns sql.ErrNoRows (wrapped by bun)
// when the race does not exist.
func Get(ctx context.Context, db bun.IDB, raceID string) (*Race, error) {
	race := new(models.Race)
	err := db.NewSelect().Model(race).
		Where("rc.race_id = ?", raceID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	var entries []*models.Entry
	err = db.NewSelect().Model(&entries).
		Relation("Horse").
		Relation("Horse.PastRaces", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("race_date DESC")
		}).
		Relation("Jockey").
		Where("e.race_id = ?", raceID).
		Order("e.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	view := &Race{
		RaceID:          race.RaceID,
		RaceName:        race.RaceName,
		RaceNumber:      race.RaceNumber,
		Venue:           race.Venue,
		CourseDetails:   race.CourseDetails,
		GroundCondition: race.GroundCondition,
		HeadCount:       len(entries),
		Entries:         make([]*Entry, 0, len(entries)),
	}
	if race.RaceDate != nil {
		view.RaceDate = race.RaceDate.Format(dateLayout)
	}

	for _, e := range entries {
		view.Entries = append(view.Entries, newEntry(e))
	}
	Rank(view.Entries)

	return view, nil
}

// Rank orders entries by descending win/place count, breaking ties by
// descending grade-score total. The sort is stable: remaining ties keep
// their storage order.
func Rank(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].WinPlaceCount != entries[j].WinPlaceCount {
			return entries[i].WinPlaceCount > entries[j].WinPlaceCount
		}
		return entries[i].GradeScoreTotal > entries[j].GradeScoreTotal
	})
}

func newEntry(e *models.Entry) *Entry {
	out := &Entry{
		Waku:          e.Waku,
		Umaban:        e.Umaban,
		WeightCarried: e.WeightCarried,
		Odds:          e.Odds,
		Popularity:    e.Popularity,
	}
	if e.Jockey != nil {
		out.Jockey = &Jockey{JockeyID: e.Jockey.JockeyID, JockeyName: e.Jockey.JockeyName}
	}
	if e.Horse == nil {
		return out
	}

	horse := &Horse{
		HorseID:   e.Horse.HorseID,
		HorseName: e.Horse.HorseName,
		PastRaces: make([]*PastRace, 0, len(e.Horse.PastRaces)),
	}
	for _, pr := range e.Horse.PastRaces {
		horse.PastRaces = append(horse.PastRaces, newPastRace(pr))
		if pr.Rank != nil && *pr.Rank >= 1 && *pr.Rank <= 3 {
			out.WinPlaceCount++
		}
		out.GradeScoreTotal += pr.RaceGradeScore
	}
	out.Horse = horse

	return out
}

func newPastRace(pr *models.HorsePastRace) *PastRace {
	out := &PastRace{
		PastRaceID:      pr.PastRaceID,
		VenueRound:      pr.VenueRound,
		VenueName:       pr.VenueName,
		VenueDay:        pr.VenueDay,
		RaceName:        pr.RaceName,
		RaceGradeScore:  pr.RaceGradeScore,
		Weather:         pr.Weather,
		HeadCount:       pr.HeadCount,
		Waku:            pr.Waku,
		Umaban:          pr.Umaban,
		Odds:            pr.Odds,
		Popularity:      pr.Popularity,
		Rank:            pr.Rank,
		JockeyID:        pr.JockeyID,
		JockeyName:      pr.JockeyName,
		WeightCarried:   pr.WeightCarried,
		Distance:        pr.Distance,
		GroundCondition: pr.GroundCondition,
		Time:            pr.Time,
		Margin:          pr.Margin,
		Passing:         pr.Passing,
		Pace:            pr.Pace,
		Last3F:          pr.Last3F,
		Last3FRank:      pr.Last3FRank,
		BodyWeight:      pr.BodyWeight,
	}
	if pr.RaceDate != nil {
		out.RaceDate = pr.RaceDate.Format(dateLayout)
	}
	return out
}
