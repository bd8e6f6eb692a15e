package renderer

// DefaultBandHeight is the number of rows one worker task renders
const DefaultBandHeight = 8

// Band is a contiguous run of rows rendered as one task
type Band struct {
	ID   int
	Rows RowRange
}

// NewBandGrid splits rows into bands of at most bandHeight rows
func NewBandGrid(rows RowRange, bandHeight int) []Band {
	if bandHeight <= 0 {
		bandHeight = DefaultBandHeight
	}

	var bands []Band
	for from := rows.From; from < rows.To; from += bandHeight {
		bands = append(bands, Band{
			ID:   len(bands),
			Rows: RowRange{From: from, To: min(from+bandHeight, rows.To)},
		})
	}
	return bands
}

// rowSeed derives the random seed of one image row.
// A row's pixels depend only on (seed, row), never on banding or worker count.
func rowSeed(seed int64, row int) int64 {
	const mix = 0x5DEECE66D
	return seed*mix ^ int64(row+1)*0x27D4EB2F165667C5
}
