package models

import "github.com/uptrace/bun"

// Trainer is keyed by the site's trainer_id.
type Trainer struct {
	bun.BaseModel `bun:"table:trainers,alias:t"`

	TrainerID   string `bun:"trainer_id,pk" json:"trainer_id"`
	TrainerName string `bun:"trainer_name,notnull" json:"trainer_name"`
}
