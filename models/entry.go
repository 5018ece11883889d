package models

import "github.com/uptrace/bun"

// Entry is one horse's participation in one race's current card.
// At most one entry exists per (race, horse); re-scrapes update in place.
type Entry struct {
	bun.BaseModel `bun:"table:entries,alias:e"`

	ID       int64   `bun:"id,pk,autoincrement" json:"-"`
	RaceID   string  `bun:"race_id,notnull" json:"-"`
	HorseID  string  `bun:"horse_id,notnull" json:"-"`
	JockeyID *string `bun:"jockey_id" json:"-"`

	Waku            *int     `bun:"waku" json:"waku"`
	Umaban          *int     `bun:"umaban" json:"umaban"`
	WeightCarried   *float64 `bun:"weight_carried" json:"weight_carried"`
	Odds            *float64 `bun:"odds" json:"odds"`
	Popularity      *int     `bun:"popularity" json:"popularity"`
	HorseWeight     *int     `bun:"horse_weight" json:"horse_weight,omitempty"`
	HorseWeightDiff *int     `bun:"horse_weight_diff" json:"horse_weight_diff,omitempty"`

	Race   *Race   `bun:"rel:belongs-to,join:race_id=race_id" json:"-"`
	Horse  *Horse  `bun:"rel:belongs-to,join:horse_id=horse_id" json:"horse"`
	Jockey *Jockey `bun:"rel:belongs-to,join:jockey_id=jockey_id" json:"jockey"`
}
