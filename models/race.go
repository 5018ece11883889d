package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Race is one race card scraped from netkeiba, keyed by the site's race_id.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:rc"`

	RaceID          string     `bun:"race_id,pk" json:"race_id"`
	RaceName        string     `bun:"race_name,notnull" json:"race_name"`
	RaceDate        *time.Time `bun:"race_date,type:date" json:"race_date,omitempty"`
	Venue           string     `bun:"venue" json:"venue"`
	CourseDetails   string     `bun:"course_details" json:"course_details"`
	GroundCondition string     `bun:"ground_condition" json:"ground_condition"`
	RaceNumber      *int       `bun:"race_number" json:"race_number,omitempty"`
	CreatedAt       time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"-"`

	Entries []*Entry `bun:"rel:has-many,join:race_id=race_id" json:"-"`
}
