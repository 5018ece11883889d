package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeScore(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"有馬記念(G1)", 100},
		{"ジャパンカップ(GI)", 100},
		{"東京大賞典(Jpn1)", 100},
		{"帝王賞(JpnI)", 100},
		{"毎日王冠(G2)", 80},
		{"札幌記念(GII)", 80},
		{"セントライト記念(GIII)", 60},
		{"きさらぎ賞(g3)", 60},
		{"アンドロメダステークス(L)", 50},
		{"師走ステークス(OP)", 40},
		{"招福ステークス3勝クラス", 30},
		{"飛翼特別2勝クラス", 20},
		{"伏竜ステークス1勝クラス", 10},
		{"2歳新馬", 5},
		{"3歳未勝利", 5},
		{"名無しの平場戦", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GradeScore(tt.name), "race name %q", tt.name)
	}
}

func TestGradeScoreGradedBeatsClass(t *testing.T) {
	// A graded marker wins even when a class marker also appears.
	assert.Equal(t, 100, GradeScore("昇級初戦(G1)1勝クラス"))
}
