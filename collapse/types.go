package collapse

import "errors"

// Sentinel errors for generation.
var (
	// ErrNilCatalog is returned by NewEngine for a nil catalog.
	ErrNilCatalog = errors.New("collapse: catalog is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("collapse: invalid option supplied")

	// ErrContradiction marks an attempt in which some cell ran out of tiles.
	ErrContradiction = errors.New("collapse: contradiction")

	// ErrGenerationFailed is returned when every attempt contradicted.
	ErrGenerationFailed = errors.New("collapse: generation failed")

	// ErrNotDone is returned when a result is requested before the run reached Done.
	ErrNotDone = errors.New("collapse: run is not done")

	// ErrFinished is returned when a finished run is asked to pin another cell.
	ErrFinished = errors.New("collapse: run already finished")

	// ErrInconsistent is returned by Verify for a result breaking the adjacency table.
	ErrInconsistent = errors.New("collapse: inconsistent result")
)

// State is the lifecycle state of a Run.
type State int

const (
	// Running: cells remain to be collapsed.
	Running State = iota
	// Done: every cell is collapsed and consistent.
	Done
	// Contradiction: some cell has no tile left; the attempt is over.
	Contradiction
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Done:
		return "done"
	case Contradiction:
		return "contradiction"
	}
	return "invalid"
}

// TieBreak selects among cells sharing the minimum domain size.
type TieBreak int

const (
	// TieFirst takes the first tied cell in scan order. Deterministic
	// apart from the tile draw.
	TieFirst TieBreak = iota
	// TieRandom picks uniformly among tied cells.
	TieRandom
)

// String implements fmt.Stringer.
func (t TieBreak) String() string {
	switch t {
	case TieFirst:
		return "first"
	case TieRandom:
		return "random"
	}
	return "invalid"
}

// Event describes one collapse or one contradiction.
type Event struct {
	Grid    int // Index of the grid within GenerateMany; 0 for Generate
	Attempt int // 1-based attempt number
	Step    int // Number of collapses so far in this attempt, including this one
	Col     int // Column of the collapsed (or emptied) cell
	Row     int // Row of the collapsed (or emptied) cell
	Tile    int // Chosen tile; -1 for contradictions
}

// Pin forces a cell to a tile before the engine starts choosing.
type Pin struct {
	Col, Row int
	Tile     int
}

// Placement is one cell of a finished grid.
type Placement struct {
	Tile     int // Catalog index
	Source   int // Base tile the catalog entry derives from
	Rotation int // Clockwise quarter turns applied to the base tile
}

// Result is a fully collapsed, consistent grid.
type Result struct {
	Width, Height int
	// Seed replays the successful attempt with NewRun(WithSeed(Seed)).
	Seed int64
	// Attempts is the number of attempts used, the successful one included.
	Attempts int
	// Cells[row][col] holds the placement of each cell.
	Cells [][]Placement
}

// At returns the placement at (col,row). It panics when out of range.
func (r *Result) At(col, row int) Placement { return r.Cells[row][col] }

// Indices returns the catalog index of every cell as [row][col].
func (r *Result) Indices() [][]int {
	out := make([][]int, r.Height)
	for row := range out {
		out[row] = make([]int, r.Width)
		for col := range out[row] {
			out[row][col] = r.Cells[row][col].Tile
		}
	}
	return out
}
