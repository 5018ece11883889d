package scrape

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/kk0055/keiba-app/models"
)

// All writes go through insert-or-update on the entity's natural key, so a
// re-scrape refreshes display fields without ever duplicating identity rows.

func upsertRace(ctx context.Context, db bun.IDB, info *RaceInfo) error {
	race := &models.Race{
		RaceID:          info.RaceID,
		RaceName:        info.RaceName,
		RaceDate:        &info.RaceDate,
		Venue:           info.Venue,
		CourseDetails:   info.CourseDetails,
		GroundCondition: info.GroundCondition,
		RaceNumber:      info.RaceNumber,
	}
	_, err := db.NewInsert().Model(race).
		On("CONFLICT (race_id) DO UPDATE SET race_name = EXCLUDED.race_name, race_date = EXCLUDED.race_date, venue = EXCLUDED.venue, course_details = EXCLUDED.course_details, ground_condition = EXCLUDED.ground_condition, race_number = EXCLUDED.race_number").
		Exec(ctx)
	if err != nil {
		return &UpsertError{Entity: "race", Key: info.RaceID, Err: err}
	}
	return nil
}

// upsertHorse keeps an existing trainer link: the card page's trainer is
// only attached when the horse has none yet.
func upsertHorse(ctx context.Context, db bun.IDB, row EntryRow, trainerID *string) error {
	sex, _ := parseSexAge(row.SexAge)
	horse := &models.Horse{
		HorseID:   row.HorseID,
		HorseName: row.HorseName,
		Sex:       sex,
		TrainerID: trainerID,
	}
	_, err := db.NewInsert().Model(horse).
		On("CONFLICT (horse_id) DO UPDATE SET horse_name = EXCLUDED.horse_name, sex = EXCLUDED.sex, trainer_id = COALESCE(h.trainer_id, EXCLUDED.trainer_id)").
		Exec(ctx)
	if err != nil {
		return &UpsertError{Entity: "horse", Key: row.HorseID, Err: err}
	}
	return nil
}

func upsertJockey(ctx context.Context, db bun.IDB, id, name string) error {
	jockey := &models.Jockey{JockeyID: id, JockeyName: name}
	_, err := db.NewInsert().Model(jockey).
		On("CONFLICT (jockey_id) DO UPDATE SET jockey_name = EXCLUDED.jockey_name").
		Exec(ctx)
	if err != nil {
		return &UpsertError{Entity: "jockey", Key: id, Err: err}
	}
	return nil
}

func upsertTrainer(ctx context.Context, db bun.IDB, id, name string) error {
	trainer := &models.Trainer{TrainerID: id, TrainerName: name}
	_, err := db.NewInsert().Model(trainer).
		On("CONFLICT (trainer_id) DO UPDATE SET trainer_name = EXCLUDED.trainer_name").
		Exec(ctx)
	if err != nil {
		return &UpsertError{Entity: "trainer", Key: id, Err: err}
	}
	return nil
}

func upsertEntry(ctx context.Context, db bun.IDB, raceID string, row EntryRow, jockeyID *string) error {
	weight, diff := parseHorseWeight(row.HorseWeight)
	entry := &models.Entry{
		RaceID:          raceID,
		HorseID:         row.HorseID,
		JockeyID:        jockeyID,
		Waku:            atoiPtr(row.Waku),
		Umaban:          atoiPtr(row.Umaban),
		WeightCarried:   atofPtr(row.WeightCarried),
		Odds:            atofPtr(row.Odds),
		Popularity:      atoiPtr(row.Popularity),
		HorseWeight:     weight,
		HorseWeightDiff: diff,
	}
	_, err := db.NewInsert().Model(entry).
		On("CONFLICT (race_id, horse_id) DO UPDATE SET jockey_id = EXCLUDED.jockey_id, waku = EXCLUDED.waku, umaban = EXCLUDED.umaban, weight_carried = EXCLUDED.weight_carried, odds = EXCLUDED.odds, popularity = EXCLUDED.popularity, horse_weight = EXCLUDED.horse_weight, horse_weight_diff = EXCLUDED.horse_weight_diff").
		Exec(ctx)
	if err != nil {
		return &UpsertError{Entity: "entry", Key: raceID + "/" + row.HorseID, Err: err}
	}
	return nil
}

func upsertPastRace(ctx context.Context, db bun.IDB, horseID string, row PastRaceRow) error {
	past := &models.HorsePastRace{
		HorseID:         horseID,
		PastRaceID:      row.PastRaceID,
		RaceDate:        datePtr(row.Date),
		VenueRound:      atoiPtr(row.VenueRound),
		VenueName:       row.VenueName,
		VenueDay:        atoiPtr(row.VenueDay),
		RaceName:        row.RaceName,
		RaceGradeScore:  GradeScore(row.RaceName),
		Weather:         row.Weather,
		HeadCount:       atoiPtr(row.HeadCount),
		Waku:            atoiPtr(row.Waku),
		Umaban:          atoiPtr(row.Umaban),
		Odds:            atofPtr(row.Odds),
		Popularity:      atoiPtr(row.Popularity),
		Rank:            atoiPtr(row.Rank),
		JockeyID:        row.JockeyID,
		JockeyName:      row.JockeyName,
		WeightCarried:   atofPtr(row.WeightCarried),
		Distance:        row.Distance,
		GroundCondition: row.GroundCondition,
		Time:            row.Time,
		Margin:          row.Margin,
		Passing:         row.Passing,
		Pace:            row.Pace,
		Last3F:          row.Last3F,
		Last3FRank:      atoiPtr(row.Last3FRank),
		BodyWeight:      row.BodyWeight,
	}
	_, err := db.NewInsert().Model(past).
		On("CONFLICT (horse_id, past_race_id) DO UPDATE SET race_date = EXCLUDED.race_date, venue_round = EXCLUDED.venue_round, venue_name = EXCLUDED.venue_name, venue_day = EXCLUDED.venue_day, race_name = EXCLUDED.race_name, race_grade_score = EXCLUDED.race_grade_score, weather = EXCLUDED.weather, head_count = EXCLUDED.head_count, waku = EXCLUDED.waku, umaban = EXCLUDED.umaban, odds = EXCLUDED.odds, popularity = EXCLUDED.popularity, rank = EXCLUDED.rank, jockey_id = EXCLUDED.jockey_id, jockey_name = EXCLUDED.jockey_name, weight_carried = EXCLUDED.weight_carried, distance = EXCLUDED.distance, ground_condition = EXCLUDED.ground_condition, time = EXCLUDED.time, margin = EXCLUDED.margin, passing = EXCLUDED.passing, pace = EXCLUDED.pace, last_3f = EXCLUDED.last_3f, last_3f_rank = EXCLUDED.last_3f_rank, body_weight = EXCLUDED.body_weight").
		Exec(ctx)
	if err != nil {
		return &UpsertError{Entity: "past race", Key: horseID + "/" + row.PastRaceID, Err: err}
	}
	return nil
}
