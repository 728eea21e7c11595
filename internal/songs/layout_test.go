package songs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type fakeColumn struct {
	lvl   int
	ok    bool
	flags []string
}

func (c fakeColumn) Level() (int, bool) {
	return c.lvl, c.ok
}

func (c fakeColumn) Flags() []string {
	return c.flags
}

func TestLayoutPosition(t *testing.T) {
	cycle := []DiffClass{DIFF_BEGINNER, DIFF_BASIC, DIFF_DIFFICULT, DIFF_EXPERT, DIFF_CHALLENGE}

	for position := 1; position <= 20; position++ {
		style, diffClass := DefaultLayout.Position(position)

		expectedStyle := STYLE_DOUBLE
		if position <= 5 {
			expectedStyle = STYLE_SINGLE
		}
		require.Equal(t, expectedStyle, style, position)

		mod := position % 5
		if mod == 0 {
			mod = 5
		}
		require.Equal(t, cycle[mod-1], diffClass, position)
	}

	style, diffClass := DefaultLayout.Position(6)
	require.Equal(t, STYLE_DOUBLE, style)
	require.Equal(t, DIFF_BEGINNER, diffClass)
}

func TestExtractCharts(t *testing.T) {
	columns := []Column{
		fakeColumn{lvl: 3, ok: true},
		fakeColumn{ok: false},
		fakeColumn{lvl: 9, ok: true, flags: []string{FLAG_SHOCK}},
		fakeColumn{lvl: 12, ok: true, flags: []string{}},
		fakeColumn{ok: false},
		fakeColumn{lvl: 4, ok: true},
		fakeColumn{ok: false},
		fakeColumn{ok: false},
		fakeColumn{lvl: 15, ok: true},
		// past the chart columns
		fakeColumn{lvl: 18, ok: true},
	}

	expected := []Chart{
		{Lvl: 3, Style: STYLE_SINGLE, DiffClass: DIFF_BEGINNER},
		{Lvl: 9, Style: STYLE_SINGLE, DiffClass: DIFF_DIFFICULT, Flags: []string{FLAG_SHOCK}},
		{Lvl: 12, Style: STYLE_SINGLE, DiffClass: DIFF_EXPERT},
		{Lvl: 4, Style: STYLE_DOUBLE, DiffClass: DIFF_BEGINNER},
		{Lvl: 15, Style: STYLE_DOUBLE, DiffClass: DIFF_EXPERT},
	}

	diff := cmp.Diff(expected, DefaultLayout.ExtractCharts(columns))
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractChartsEmpty(t *testing.T) {
	charts := DefaultLayout.ExtractCharts(nil)
	require.NotNil(t, charts)
	require.Empty(t, charts)
}
