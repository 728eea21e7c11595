package ziv

import (
	"maps"
	"slices"
)

// Tables is the hand maintained data the scraper needs on top of the page itself.
type Tables struct {
	// release names in the order their headers appear on the page
	Folders []string
	// scraped title -> title we want, exact match
	TitleCorrections map[string]string
	// lock image label -> flag
	FlagIndex map[string]string
	// inline color of a level that is unlocked by an event
	HighlightColor string
	// suffix of the src of the image marking a locked song
	LockMarker string
}

func (t Tables) clone() Tables {
	return Tables{
		Folders:          slices.Clone(t.Folders),
		TitleCorrections: maps.Clone(t.TitleCorrections),
		FlagIndex:        maps.Clone(t.FlagIndex),
		HighlightColor:   t.HighlightColor,
		LockMarker:       t.LockMarker,
	}
}

var defaultTables = Tables{
	Folders: []string{
		"DanceDanceRevolution A3",
		"DanceDanceRevolution A20 PLUS",
		"DanceDanceRevolution A20",
		"DanceDanceRevolution A",
		"DanceDanceRevolution (2014)",
		"DanceDanceRevolution (2013)",
		"DanceDanceRevolution X3 vs 2nd MIX",
		"DanceDanceRevolution X2",
		"DanceDanceRevolution X",
		"DanceDanceRevolution SuperNOVA2",
		"DanceDanceRevolution SuperNOVA",
		"DanceDanceRevolution EXTREME",
		"DDRMAX2 -DanceDanceRevolution 7thMIX-",
		"DDRMAX -DanceDanceRevolution 6thMIX-",
		"DanceDanceRevolution 5th Mix",
		"DanceDanceRevolution 4th Mix",
		"DanceDanceRevolution 3rd Mix",
		"DanceDanceRevolution 2nd Mix",
		"DanceDanceRevolution 1st Mix",
	},
	TitleCorrections: map[string]string{
		"CAN'T STOP FALLIN'IN LOVE":      "CAN'T STOP FALLIN' IN LOVE",
		"MARIA (I believe... )":          "MARIA (I believe...)",
		"魔法のたまご～心菜 ELECTRO POP edition～": "魔法のたまご ～心菜 ELECTRO POP edition～",
		"Lachryma(Re:Queen'M)":           "Lachryma《Re:Queen’M》",
	},
	FlagIndex: map[string]string{
		"DDR GP Early Access":        "grandPrixPack",
		"EXTRA SAVIOR A3":            "unlock",
		"GOLDEN LEAGUER'S PRIVILEGE": "goldenLeague",
		"EXTRA EXCLUSIVE":            "extraExclusive",
		"COURSE TRIAL A3":            "unlock",
	},
	HighlightColor: "red",
	LockMarker:     "lock.png",
}

// DefaultTables returns a copy of the tables matching the current A3 game database.
func DefaultTables() Tables {
	return defaultTables.clone()
}
