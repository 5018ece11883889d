package scrape

import "strings"

// gradeRule maps a race-name marker to its score. Bracketed grade markers
// are matched case-insensitively; the first matching rule wins.
type gradeRule struct {
	marker string
	score  int
}

var bracketGrades = []gradeRule{
	{"(g1)", 100}, {"(gi)", 100}, {"(jpn1)", 100}, {"(jpni)", 100},
	{"(g2)", 80}, {"(gii)", 80}, {"(jpn2)", 80}, {"(jpnii)", 80},
	{"(g3)", 60}, {"(giii)", 60}, {"(jpn3)", 60}, {"(jpniii)", 60},
	{"(l)", 50},
	{"(op)", 40},
}

var classGrades = []gradeRule{
	{"3勝クラス", 30},
	{"2勝クラス", 20},
	{"1勝クラス", 10},
	{"新馬", 5},
	{"未勝利", 5},
}

// GradeScore derives an integer performance weight from a race name.
// Graded-stakes markers outrank class markers; unmatched names score 0.
func GradeScore(raceName string) int {
	lower := strings.ToLower(raceName)
	for _, r := range bracketGrades {
		if strings.Contains(lower, r.marker) {
			return r.score
		}
	}
	for _, r := range classGrades {
		if strings.Contains(raceName, r.marker) {
			return r.score
		}
	}
	return 0
}
