package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeTitle(t *testing.T) {
	table := []struct {
		input    string
		expected string
	}{
		{input: "CAN'T STOP FALLIN' IN LOVE", expected: "cantstopfallininlove"},
		{input: "CAN'T STOP FALLIN'IN LOVE", expected: "cantstopfallininlove"},
		{input: "ＡＢＣ　ｄｅｆ", expected: "abcdef"},
		{input: "魔法のたまご ～心菜 ELECTRO POP edition～", expected: "魔法のたまご~心菜electropopedition~"},
		{input: "  MARIA (I believe...) ", expected: "mariaibelieve"},
	}

	for _, row := range table {
		require.Equal(t, row.expected, NormalizeTitle(row.input), row.input)
	}
}
