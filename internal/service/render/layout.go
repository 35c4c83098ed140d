package render

// Layout is the geometry columns are laid out in
type Layout struct {
	ContentWidth float64 // available width in pixels
	ColumnGutter float64 // space between adjacent columns
}

// DefaultLayout matches the blog's article width
func DefaultLayout() Layout {
	return Layout{ContentWidth: 708, ColumnGutter: 32}
}

// ColumnWidth computes a column's width as ratio of the available width after gutters.
// A nil ratio means a full share; ratios outside [0,1] are clamped.
func ColumnWidth(ratio *float64, available, gutter float64, columns int) float64 {
	r := 1.0
	if ratio != nil {
		r = min(max(*ratio, 0), 1)
	}
	if columns < 1 {
		columns = 1
	}
	usable := available - gutter*float64(columns-1)
	if usable < 0 {
		usable = 0
	}
	return usable * r
}
