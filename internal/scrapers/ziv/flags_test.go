package ziv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslationText(t *testing.T) {
	doc := parseDoc(t, `<table><tr>
		<td id="self"><span onmouseover="return overlib('Translated Title')">原題</span></td>
		<td id="nested"><a href="songdb.php"><span onmouseover="return overlib('Nested')">x</span></a></td>
		<td id="none"><a href="songdb.php">plain</a></td>
		<td id="short"><span onmouseover="overlib('x')">x</span></td>
		<td id="text">just text</td>
	</tr></table>`)

	require.Equal(t, "Translated Title", TranslationText(doc.Find("#self span")))
	require.Equal(t, "Nested", TranslationText(doc.Find("#nested a")))
	require.Equal(t, "", TranslationText(doc.Find("#none a")))
	require.Equal(t, "", TranslationText(doc.Find("#short span")))
	require.Equal(t, "", TranslationText(doc.Find("#text").Contents().First()))
	require.Equal(t, "", TranslationText(doc.Find("#missing")))
}

func TestSliceTranslationCountsUtf16(t *testing.T) {
	require.Equal(t, "心菜", sliceTranslation("return overlib('心菜')"))
	require.Equal(t, "😀 smile", sliceTranslation("return overlib('😀 smile')"))
	require.Equal(t, "", sliceTranslation("return overlib('')"))
}

func TestChartCell(t *testing.T) {
	tables := DefaultTables()
	doc := parseDoc(t, `<table><tr>
		<td id="plain">8<br><span>100 / 2 / 0</span></td>
		<td id="highlighted"><span style="color: red">12</span><br><span>120 / 15 / 3</span></td>
		<td id="empty">-</td>
		<td id="shock">10<br><span>300 / 0 / 12</span></td>
		<td id="broken">11<br><span>unknown</span></td>
		<td id="blue"><span style="color: blue">4</span><br><span>10 / 0 / 0</span></td>
	</tr></table>`)
	cell := func(id string) chartCell {
		return chartCell{sel: doc.Find("#" + id), tables: &tables}
	}

	lvl, ok := cell("plain").Level()
	require.True(t, ok)
	require.Equal(t, 8, lvl)
	require.Nil(t, cell("plain").Flags())

	lvl, ok = cell("highlighted").Level()
	require.True(t, ok)
	require.Equal(t, 12, lvl)
	require.Equal(t, []string{"unlock", "shock"}, cell("highlighted").Flags())

	_, ok = cell("empty").Level()
	require.False(t, ok)

	require.Equal(t, []string{"shock"}, cell("shock").Flags())
	require.Nil(t, cell("broken").Flags())
	require.Nil(t, cell("blue").Flags())
}

func TestParseNoteCounts(t *testing.T) {
	counts := parseNoteCounts("120 / 15 / 3")
	require.Equal(t, [3]float64{120, 15, 3}, counts)

	counts = parseNoteCounts("120 / 15 /  ")
	require.Equal(t, float64(0), counts[2])

	counts = parseNoteCounts("120")
	require.True(t, math.IsNaN(counts[1]))
	require.True(t, math.IsNaN(counts[2]))

	counts = parseNoteCounts("1 / 2 / x")
	require.True(t, math.IsNaN(counts[2]))
}

func TestSongFlags(t *testing.T) {
	tables := DefaultTables()
	doc := parseDoc(t, `<div>
		<p id="known"><img src="/images/lock.png" title="A3 / GOLDEN LEAGUER'S PRIVILEGE"><a>x</a></p>
		<p id="unknown"><img src="/images/lock.png" title="A3 / Some New Event "><a>x</a></p>
		<p id="bare"><img src="/images/lock.png" title="Locked"><a>x</a></p>
		<p id="other"><img src="/images/new.png" title="A3 / EXTRA EXCLUSIVE"><a>x</a></p>
		<p id="none"><span>x</span><a>x</a></p>
		<p id="first"><a>x</a></p>
	</div>`)
	flags := func(id string) []string {
		return songFlags(doc.Find("#"+id+" a"), &tables)
	}

	require.Equal(t, []string{"goldenLeague"}, flags("known"))
	require.Equal(t, []string{"Some New Event"}, flags("unknown"))
	require.Equal(t, []string{"unlock"}, flags("bare"))
	require.Nil(t, flags("other"))
	require.Nil(t, flags("none"))
	require.Nil(t, flags("first"))
}
