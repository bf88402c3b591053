package team

import "strings"

// relocations maps historical franchise abbreviations to the current ones.
var relocations = map[string]string{
	"STL": "LA",
	"SD":  "LAC",
	"OAK": "LV",
	"PHO": "ARI",
}

var current = map[string]struct{}{
	"BUF": {}, "MIA": {}, "NE": {}, "NYJ": {},
	"BAL": {}, "CIN": {}, "CLE": {}, "PIT": {},
	"HOU": {}, "IND": {}, "JAX": {}, "TEN": {},
	"DEN": {}, "KC": {}, "LV": {}, "LAC": {},
	"DAL": {}, "NYG": {}, "PHI": {}, "WAS": {},
	"CHI": {}, "DET": {}, "GB": {}, "MIN": {},
	"ATL": {}, "CAR": {}, "NO": {}, "TB": {},
	"ARI": {}, "LA": {}, "SEA": {}, "SF": {},
}

// Normalize maps a team abbreviation to the franchise's current code. The
// second return value reports whether the result is one of the 32 current
// teams; unknown codes are returned trimmed and upper-cased.
func Normalize(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if mapped, ok := relocations[code]; ok {
		code = mapped
	}
	_, known := current[code]
	return code, known
}

func Count() int {
	return len(current)
}
