package scrape

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtoiPtr(t *testing.T) {
	n := atoiPtr(" 12 ")
	require.NotNil(t, n)
	assert.Equal(t, 12, *n)

	n = atoiPtr("1,234")
	require.NotNil(t, n)
	assert.Equal(t, 1234, *n)

	assert.Nil(t, atoiPtr(""))
	assert.Nil(t, atoiPtr("--"))
	assert.Nil(t, atoiPtr("除外"))
}

func TestAtofPtr(t *testing.T) {
	f := atofPtr("3.4")
	require.NotNil(t, f)
	assert.Equal(t, 3.4, *f)

	assert.Nil(t, atofPtr(""))
	assert.Nil(t, atofPtr("**"))
}

func TestDatePtr(t *testing.T) {
	d := datePtr("2023/06/25")
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2023, 6, 25, 0, 0, 0, 0, time.UTC), *d)

	assert.Nil(t, datePtr(""))
	assert.Nil(t, datePtr("2023-06-25"))
}

func TestParseSexAge(t *testing.T) {
	sex, age := parseSexAge("牡3")
	require.NotNil(t, sex)
	require.NotNil(t, age)
	assert.Equal(t, "牡", *sex)
	assert.Equal(t, 3, *age)

	sex, age = parseSexAge("セ10")
	require.NotNil(t, age)
	assert.Equal(t, "セ", *sex)
	assert.Equal(t, 10, *age)

	sex, age = parseSexAge("牝")
	require.NotNil(t, sex)
	assert.Equal(t, "牝", *sex)
	assert.Nil(t, age)

	sex, age = parseSexAge("")
	assert.Nil(t, sex)
	assert.Nil(t, age)
}

func TestParseHorseWeight(t *testing.T) {
	w, d := parseHorseWeight("482(+4)")
	require.NotNil(t, w)
	require.NotNil(t, d)
	assert.Equal(t, 482, *w)
	assert.Equal(t, 4, *d)

	w, d = parseHorseWeight("500(-12)")
	require.NotNil(t, d)
	assert.Equal(t, 500, *w)
	assert.Equal(t, -12, *d)

	w, d = parseHorseWeight("466(0)")
	require.NotNil(t, d)
	assert.Equal(t, 466, *w)
	assert.Equal(t, 0, *d)

	// First start: no diff yet.
	w, d = parseHorseWeight("480")
	require.NotNil(t, w)
	assert.Equal(t, 480, *w)
	assert.Nil(t, d)

	for _, s := range []string{"", "--", "計不"} {
		w, d = parseHorseWeight(s)
		assert.Nil(t, w, "weight for %q", s)
		assert.Nil(t, d, "diff for %q", s)
	}
}

func TestSplitVenue(t *testing.T) {
	round, name, day := splitVenue("5中山8")
	assert.Equal(t, "5", round)
	assert.Equal(t, "中山", name)
	assert.Equal(t, "8", day)

	round, name, day = splitVenue("1東京12")
	assert.Equal(t, "1", round)
	assert.Equal(t, "東京", name)
	assert.Equal(t, "12", day)

	// Regional venues have no round/day digits.
	round, name, day = splitVenue("大井")
	assert.Empty(t, round)
	assert.Equal(t, "大井", name)
	assert.Empty(t, day)
}
