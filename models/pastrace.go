package models

import (
	"time"

	"github.com/uptrace/bun"
)

// HorsePastRace is one historical result row from a horse's profile page.
// Uniqueness is (horse_id, past_race_id): the race id printed on the row is
// the only key that stays stable across re-scrapes of the same horse.
type HorsePastRace struct {
	bun.BaseModel `bun:"table:horse_past_races,alias:pr"`

	ID         int64  `bun:"id,pk,autoincrement" json:"-"`
	HorseID    string `bun:"horse_id,notnull" json:"-"`
	PastRaceID string `bun:"past_race_id,notnull" json:"past_race_id"`

	RaceDate       *time.Time `bun:"race_date,type:date" json:"race_date,omitempty"`
	VenueRound     *int       `bun:"venue_round" json:"venue_round,omitempty"`
	VenueName      string     `bun:"venue_name" json:"venue_name"`
	VenueDay       *int       `bun:"venue_day" json:"venue_day,omitempty"`
	RaceName       string     `bun:"race_name" json:"race_name"`
	RaceGradeScore int        `bun:"race_grade_score,notnull,default:0" json:"race_grade_score"`

	Weather         string   `bun:"weather" json:"weather"`
	HeadCount       *int     `bun:"head_count" json:"head_count"`
	Waku            *int     `bun:"waku" json:"waku"`
	Umaban          *int     `bun:"umaban" json:"umaban"`
	Odds            *float64 `bun:"odds" json:"odds"`
	Popularity      *int     `bun:"popularity" json:"popularity"`
	Rank            *int     `bun:"rank" json:"rank"`
	JockeyID        string   `bun:"jockey_id" json:"jockey_id"`
	JockeyName      string   `bun:"jockey_name" json:"jockey_name"`
	WeightCarried   *float64 `bun:"weight_carried" json:"weight_carried"`
	Distance        string   `bun:"distance" json:"distance"`
	GroundCondition string   `bun:"ground_condition" json:"ground_condition"`
	Time            string   `bun:"time" json:"time"`
	Margin          string   `bun:"margin" json:"margin"`
	Passing         string   `bun:"passing" json:"passing"`
	Pace            string   `bun:"pace" json:"pace"`
	Last3F          string   `bun:"last_3f" json:"last_3f"`
	Last3FRank      *int     `bun:"last_3f_rank" json:"last_3f_rank,omitempty"`
	BodyWeight      string   `bun:"body_weight" json:"body_weight"`

	Horse *Horse `bun:"rel:belongs-to,join:horse_id=horse_id" json:"-"`
}
