package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kk0055/keiba-app/raceview"
)

func intp(n int) *int { return &n }

func floatp(f float64) *float64 { return &f }

func sampleRace() *raceview.Race {
	return &raceview.Race{
		RaceID:   "202309020811",
		RaceName: "宝塚記念(G1)",
		Entries: []*raceview.Entry{
			{
				Umaban:        intp(5),
				Waku:          intp(3),
				WeightCarried: floatp(58),
				Odds:          floatp(2.9),
				Horse: &raceview.Horse{
					HorseID:   "2019104567",
					HorseName: "イクイノックス",
					PastRaces: []*raceview.PastRace{
						{
							PastRaceID: "202305021211",
							RaceDate:   "2023-05-28",
							VenueName:  "東京",
							Weather:    "晴",
							RaceName:   "日本ダービー(G1)",
							HeadCount:  intp(16),
							Umaban:     intp(7),
							Waku:       intp(4),
							Odds:       floatp(2.3),
							Rank:       intp(1),
							JockeyName: "ルメール",
							Distance:   "芝2400",
							Time:       "2:21.9",
							BodyWeight: "494(+2)",
						},
					},
				},
				Jockey: &raceview.Jockey{JockeyID: "05339", JockeyName: "ルメール"},
			},
			{
				Umaban: intp(12),
				Waku:   intp(6),
				Horse:  &raceview.Horse{HorseID: "2018105074", HorseName: "カラテ"},
			},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteCSV(sampleRace(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "202309020811.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	// Header, entry, one past race, separator, entry, separator.
	require.Len(t, rows, 6)
	for i, row := range rows {
		assert.Len(t, row, 26, "row %d", i)
	}

	assert.Equal(t, "レコード種別", rows[0][0])

	entry := rows[1]
	assert.Equal(t, "出走情報", entry[0])
	assert.Equal(t, "5", entry[1])
	assert.Equal(t, "3", entry[2])
	assert.Equal(t, "イクイノックス", entry[3])
	assert.Equal(t, "58", entry[4])
	assert.Equal(t, "ルメール", entry[5])
	assert.Equal(t, "2.9", entry[6])
	for i := 7; i < 26; i++ {
		assert.Empty(t, entry[i], "entry col %d", i)
	}

	past := rows[2]
	assert.Equal(t, "過去成績", past[0])
	assert.Equal(t, "5", past[1])
	assert.Equal(t, "イクイノックス", past[3])
	assert.Equal(t, "2023-05-28", past[7])
	assert.Equal(t, "東京", past[8])
	assert.Equal(t, "晴", past[9])
	assert.Equal(t, "日本ダービー(G1)", past[10])
	assert.Equal(t, "16", past[11])
	assert.Equal(t, "7", past[12])
	assert.Equal(t, "4", past[13])
	assert.Equal(t, "2.3", past[14])
	assert.Equal(t, "1", past[15])
	assert.Equal(t, "ルメール", past[16])
	assert.Equal(t, "芝2400", past[18])
	assert.Equal(t, "2:21.9", past[20])
	assert.Equal(t, "494(+2)", past[25])

	sep := rows[3]
	assert.Equal(t, "---", sep[0])
	for i := 1; i < 26; i++ {
		assert.Empty(t, sep[i], "separator col %d", i)
	}

	// Entry with no history still gets its separator.
	assert.Equal(t, "出走情報", rows[4][0])
	assert.Equal(t, "カラテ", rows[4][3])
	assert.Equal(t, "---", rows[5][0])
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteJSON(sampleRace(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "202309020811.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Non-ASCII text is written as-is, not escaped.
	assert.Contains(t, string(data), "宝塚記念(G1)")

	var round raceview.Race
	require.NoError(t, json.Unmarshal(data, &round))
	assert.Equal(t, "202309020811", round.RaceID)
	require.Len(t, round.Entries, 2)
	require.NotNil(t, round.Entries[0].Horse)
	assert.Len(t, round.Entries[0].Horse.PastRaces, 1)
}

func TestWriteCSVBadDir(t *testing.T) {
	// A file where the directory should be makes MkdirAll fail.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "taken")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := WriteCSV(sampleRace(), blocker)
	assert.ErrorIs(t, err, ErrWrite)
}
