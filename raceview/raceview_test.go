package raceview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kk0055/keiba-app/models"
)

func intp(n int) *int { return &n }

func entryWithAggregates(name string, winPlace, gradeTotal int) *Entry {
	return &Entry{
		Horse:           &Horse{HorseName: name},
		WinPlaceCount:   winPlace,
		GradeScoreTotal: gradeTotal,
	}
}

func names(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Horse.HorseName
	}
	return out
}

func TestRankByWinPlaceCount(t *testing.T) {
	entries := []*Entry{
		entryWithAggregates("B", 1, 200),
		entryWithAggregates("A", 3, 50),
		entryWithAggregates("C", 2, 100),
	}

	Rank(entries)

	assert.Equal(t, []string{"A", "C", "B"}, names(entries))
}

func TestRankTieBreakByGradeScore(t *testing.T) {
	entries := []*Entry{
		entryWithAggregates("low", 2, 40),
		entryWithAggregates("high", 2, 180),
	}

	Rank(entries)

	assert.Equal(t, []string{"high", "low"}, names(entries))
}

func TestRankStableOnFullTie(t *testing.T) {
	entries := []*Entry{
		entryWithAggregates("first", 1, 60),
		entryWithAggregates("second", 1, 60),
		entryWithAggregates("third", 1, 60),
	}

	Rank(entries)

	assert.Equal(t, []string{"first", "second", "third"}, names(entries))
}

func TestNewEntryAggregates(t *testing.T) {
	date := time.Date(2023, 5, 28, 0, 0, 0, 0, time.UTC)
	e := &models.Entry{
		Umaban: intp(7),
		Horse: &models.Horse{
			HorseID:   "2019104567",
			HorseName: "イクイノックス",
			PastRaces: []*models.HorsePastRace{
				{PastRaceID: "202305021211", RaceDate: &date, Rank: intp(1), RaceGradeScore: 100},
				{PastRaceID: "202306050811", Rank: intp(3), RaceGradeScore: 80},
				{PastRaceID: "202301010101", Rank: intp(8), RaceGradeScore: 60},
				{PastRaceID: "202302020202", Rank: nil, RaceGradeScore: 40},
			},
		},
	}

	view := newEntry(e)

	// Ranks 1 and 3 count; 8th place and a missing rank do not. The grade
	// total sums every stored run regardless of finish.
	assert.Equal(t, 2, view.WinPlaceCount)
	assert.Equal(t, 280, view.GradeScoreTotal)

	require.NotNil(t, view.Horse)
	require.Len(t, view.Horse.PastRaces, 4)
	assert.Equal(t, "2023-05-28", view.Horse.PastRaces[0].RaceDate)
	assert.Empty(t, view.Horse.PastRaces[1].RaceDate)
}

func TestNewEntryNoHistory(t *testing.T) {
	e := &models.Entry{
		Horse: &models.Horse{HorseID: "2020100001", HorseName: "新馬"},
	}

	view := newEntry(e)

	assert.Zero(t, view.WinPlaceCount)
	assert.Zero(t, view.GradeScoreTotal)
	require.NotNil(t, view.Horse)
	assert.NotNil(t, view.Horse.PastRaces)
	assert.Empty(t, view.Horse.PastRaces)
}

func TestNewEntryNoHorse(t *testing.T) {
	view := newEntry(&models.Entry{Umaban: intp(4)})

	assert.Nil(t, view.Horse)
	assert.Zero(t, view.WinPlaceCount)
}
