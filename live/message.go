package live

import "github.com/katalvlaran/wfc/collapse"

// Message types.
const (
	TypeCollapse      = "collapse"
	TypeContradiction = "contradiction"
	TypeRestart       = "restart"
	TypeDone          = "done"
	TypeFailed        = "failed"
)

// Message is the JSON frame sent to subscribers. Position fields are set
// for collapse and contradiction, Cells for done and Error for failed.
type Message struct {
	Sequence uint64  `json:"sequence"`
	Type     string  `json:"type"`
	Grid     int     `json:"grid"`
	Attempt  int     `json:"attempt,omitempty"`
	Step     int     `json:"step,omitempty"`
	Col      int     `json:"col"`
	Row      int     `json:"row"`
	Tile     int     `json:"tile"`
	Width    int     `json:"width,omitempty"`
	Height   int     `json:"height,omitempty"`
	Seed     int64   `json:"seed,omitempty"`
	Cells    [][]int `json:"cells,omitempty"`
	Error    string  `json:"error,omitempty"`
}

func eventMessage(typ string, ev collapse.Event) Message {
	return Message{
		Type:    typ,
		Grid:    ev.Grid,
		Attempt: ev.Attempt,
		Step:    ev.Step,
		Col:     ev.Col,
		Row:     ev.Row,
		Tile:    ev.Tile,
	}
}

// Options returns collapse hooks broadcasting every event to the hub.
func (h *Hub) Options() []collapse.Option {
	return []collapse.Option{
		collapse.WithOnCollapse(h.OnCollapse),
		collapse.WithOnContradiction(h.OnContradiction),
		collapse.WithOnRestart(h.OnRestart),
	}
}

// OnCollapse broadcasts a collapse event. It never fails.
func (h *Hub) OnCollapse(ev collapse.Event) error {
	h.send(eventMessage(TypeCollapse, ev))
	return nil
}

func (h *Hub) OnContradiction(ev collapse.Event) {
	h.send(eventMessage(TypeContradiction, ev))
}

func (h *Hub) OnRestart(attempt int) {
	h.send(Message{Type: TypeRestart, Attempt: attempt, Tile: -1})
}

// Publish announces the outcome of a generation: the finished grid, or
// the error when err is non-nil.
func (h *Hub) Publish(grid int, res *collapse.Result, err error) {
	if err != nil {
		h.send(Message{Type: TypeFailed, Grid: grid, Tile: -1, Error: err.Error()})
		return
	}
	h.send(Message{
		Type:    TypeDone,
		Grid:    grid,
		Attempt: res.Attempts,
		Tile:    -1,
		Width:   res.Width,
		Height:  res.Height,
		Seed:    res.Seed,
		Cells:   res.Indices(),
	})
}
