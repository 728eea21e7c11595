package songs

// Column is one positional chart column of a source row.
type Column interface {
	// Level returns the chart level, ok is false when the column holds no chart.
	Level() (lvl int, ok bool)
	// Flags returns the chart's flags, nil when there are none.
	Flags() []string
}

// Layout describes which chart a column holds purely from its position. Both
// sources lay their chart columns out singles first, then doubles.
type Layout struct {
	// the amount of chart columns, anything past it is never read as a chart
	ChartColumns int
	// the first SinglesColumns columns are single charts, the rest double
	SinglesColumns int
	// difficulties in column order, repeated every len(DiffCycle) columns
	DiffCycle []DiffClass
}

var DefaultLayout = Layout{
	ChartColumns:   9,
	SinglesColumns: 5,
	DiffCycle: []DiffClass{
		DIFF_BEGINNER,
		DIFF_BASIC,
		DIFF_DIFFICULT,
		DIFF_EXPERT,
		DIFF_CHALLENGE,
	},
}

// Position returns the style and difficulty of the chart column at the 1-indexed
// position.
func (l Layout) Position(position int) (Style, DiffClass) {
	style := STYLE_SINGLE
	if position > l.SinglesColumns {
		style = STYLE_DOUBLE
	}
	return style, l.DiffCycle[(position-1)%len(l.DiffCycle)]
}

// ExtractCharts turns the columns of a row into charts, skipping the columns with no
// chart. Columns past ChartColumns are ignored.
func (l Layout) ExtractCharts(columns []Column) []Chart {
	charts := []Chart{}
	for i, column := range columns {
		position := i + 1
		if position > l.ChartColumns {
			break
		}

		lvl, ok := column.Level()
		if !ok {
			continue
		}
		style, diffClass := l.Position(position)
		chart := Chart{
			Lvl:       lvl,
			Style:     style,
			DiffClass: diffClass,
		}
		if flags := column.Flags(); len(flags) > 0 {
			chart.Flags = flags
		}
		charts = append(charts, chart)
	}
	return charts
}
