package models

import (
	"time"

	"github.com/uptrace/bun"
)

// AIPrediction holds free-text prediction notes for a race, tagged with the
// model name that produced them. Plain CRUD, no scraping involvement.
type AIPrediction struct {
	bun.BaseModel `bun:"table:ai_predictions,alias:p"`

	ID                  int64     `bun:"id,pk,autoincrement" json:"id"`
	RaceID              string    `bun:"race_id,notnull" json:"race"`
	PredictionModelName string    `bun:"prediction_model_name,notnull" json:"prediction_model_name"`
	Notes               string    `bun:"notes" json:"notes"`
	CreatedAt           time.Time `bun:"created_at,notnull,default:current_timestamp" json:"-"`

	Race *Race `bun:"rel:belongs-to,join:race_id=race_id" json:"-"`
}
