package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Horse is a racehorse keyed by the site's horse_id. The trainer link is
// non-owning: deleting a trainer leaves the horse with a null trainer_id.
type Horse struct {
	bun.BaseModel `bun:"table:horses,alias:h"`

	HorseID   string     `bun:"horse_id,pk" json:"horse_id"`
	HorseName string     `bun:"horse_name,notnull" json:"horse_name"`
	BirthDate *time.Time `bun:"birth_date,type:date" json:"birth_date,omitempty"`
	Sex       *string    `bun:"sex" json:"sex,omitempty"`
	TrainerID *string    `bun:"trainer_id" json:"-"`

	Trainer   *Trainer         `bun:"rel:belongs-to,join:trainer_id=trainer_id" json:"-"`
	PastRaces []*HorsePastRace `bun:"rel:has-many,join:horse_id=horse_id" json:"past_races"`
}
