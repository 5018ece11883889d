package models

import "github.com/uptrace/bun"

// Jockey is keyed by the site's jockey_id.
type Jockey struct {
	bun.BaseModel `bun:"table:jockeys,alias:j"`

	JockeyID   string `bun:"jockey_id,pk" json:"jockey_id"`
	JockeyName string `bun:"jockey_name,notnull" json:"jockey_name"`
}
