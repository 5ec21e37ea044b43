package team

import "strings"

// AllCodes lists the canonical abbreviation of every current NFL franchise.
// Every table in this package is keyed by these codes.
var AllCodes = []string{
	"ARI", "ATL", "BAL", "BUF", "CAR", "CHI", "CIN", "CLE",
	"DAL", "DEN", "DET", "GB", "HOU", "IND", "JAX", "KC",
	"LAC", "LAR", "LV", "MIA", "MIN", "NE", "NO", "NYG",
	"NYJ", "PHI", "PIT", "SEA", "SF", "TB", "TEN", "WAS",
}

// aliases maps every known provider spelling, legacy franchise code and
// relocation leftover onto its canonical code. Canonical codes map to
// themselves so Canonicalize is idempotent.
var aliases = map[string]string{
	// AFC East
	"BUF": "BUF",
	"MIA": "MIA",
	"NE":  "NE",
	"NEP": "NE",
	"NWE": "NE",
	"NYJ": "NYJ",

	// AFC North
	"BAL": "BAL",
	"CIN": "CIN",
	"CLE": "CLE",
	"PIT": "PIT",

	// AFC South
	"HOU": "HOU",
	"HTX": "HOU",
	"IND": "IND",
	"JAX": "JAX",
	"JAC": "JAX",
	"TEN": "TEN",

	// AFC West
	"DEN": "DEN",
	"KC":  "KC",
	"KAN": "KC",
	"LV":  "LV",
	"LVR": "LV",
	"LAS": "LV",
	"OAK": "LV",
	"LAC": "LAC",
	"SDG": "LAC",
	"SD":  "LAC",

	// NFC East
	"DAL": "DAL",
	"NYG": "NYG",
	"PHI": "PHI",
	"WAS": "WAS",
	"WSH": "WAS",

	// NFC North
	"CHI": "CHI",
	"DET": "DET",
	"GB":  "GB",
	"GNB": "GB",
	"MIN": "MIN",

	// NFC South
	"ATL": "ATL",
	"CAR": "CAR",
	"NO":  "NO",
	"NOR": "NO",
	"TB":  "TB",
	"TAM": "TB",
	"TBB": "TB",

	// NFC West
	"ARI": "ARI",
	"CRD": "ARI",
	"LA":  "LAR",
	"LAR": "LAR",
	"STL": "LAR",
	"SF":  "SF",
	"SFO": "SF",
	"SEA": "SEA",
}

// FullNames maps canonical codes to franchise display names.
var FullNames = map[string]string{
	"ARI": "Arizona Cardinals",
	"ATL": "Atlanta Falcons",
	"BAL": "Baltimore Ravens",
	"BUF": "Buffalo Bills",
	"CAR": "Carolina Panthers",
	"CHI": "Chicago Bears",
	"CIN": "Cincinnati Bengals",
	"CLE": "Cleveland Browns",
	"DAL": "Dallas Cowboys",
	"DEN": "Denver Broncos",
	"DET": "Detroit Lions",
	"GB":  "Green Bay Packers",
	"HOU": "Houston Texans",
	"IND": "Indianapolis Colts",
	"JAX": "Jacksonville Jaguars",
	"KC":  "Kansas City Chiefs",
	"LAC": "Los Angeles Chargers",
	"LAR": "Los Angeles Rams",
	"LV":  "Las Vegas Raiders",
	"MIA": "Miami Dolphins",
	"MIN": "Minnesota Vikings",
	"NE":  "New England Patriots",
	"NO":  "New Orleans Saints",
	"NYG": "New York Giants",
	"NYJ": "New York Jets",
	"PHI": "Philadelphia Eagles",
	"PIT": "Pittsburgh Steelers",
	"SEA": "Seattle Seahawks",
	"SF":  "San Francisco 49ers",
	"TB":  "Tampa Bay Buccaneers",
	"TEN": "Tennessee Titans",
	"WAS": "Washington Commanders",
}

// ByeWeeks maps canonical codes to the regular-season bye week.
var ByeWeeks = map[string]int{
	"CLE": 5, "LAC": 5, "DET": 5, "TB": 5,
	"GB": 6, "PIT": 6,
	"CAR": 7, "CIN": 7, "HOU": 7, "NYJ": 7,
	"KC": 8,
	"DEN": 9, "JAX": 9, "LAR": 9, "SF": 9,
	"MIA": 10, "PHI": 10,
	"NE": 11, "NO": 11,
	"BAL": 13, "BUF": 13, "CHI": 13, "LV": 13, "MIN": 13, "NYG": 13,
	"ARI": 14, "ATL": 14, "DAL": 14, "IND": 14, "SEA": 14, "TEN": 14, "WAS": 14,
}

// Canonicalize resolves any team abbreviation variant to its canonical code.
// Matching is case-insensitive. Codes outside the alias table pass through
// unchanged so records from unfamiliar providers still flow downstream; an
// empty or missing code resolves to "".
func Canonicalize(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}
	if canonical, ok := aliases[strings.ToUpper(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// FullName returns the franchise display name for any alias of its code.
// Unknown codes return "".
func FullName(code string) string {
	return FullNames[Canonicalize(code)]
}

// ByeWeek returns the bye week for any alias of a franchise code, or 0 when
// the code is unknown.
func ByeWeek(code string) int {
	return ByeWeeks[Canonicalize(code)]
}
