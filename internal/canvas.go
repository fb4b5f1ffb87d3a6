package internal

type StrokeType string

const (
	StrokeStart StrokeType = "start"
	StrokeDraw  StrokeType = "draw"
	StrokeStop  StrokeType = "stop"
)

// StrokePoint is what the drawer sends for startDraw and drawing.
type StrokePoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color,omitempty"`
	Size  float64 `json:"size,omitempty"`
}

// DrawData is relayed to every other member of the room as EventDraw.
type DrawData struct {
	Type  StrokeType `json:"type"`
	X     *float64   `json:"x,omitempty"`
	Y     *float64   `json:"y,omitempty"`
	Color string     `json:"color,omitempty"`
	Size  float64    `json:"size,omitempty"`
}

func NewDrawData(t StrokeType, p *StrokePoint) DrawData {
	d := DrawData{Type: t}
	if p == nil || t == StrokeStop {
		return d
	}
	x, y := p.X, p.Y
	d.X, d.Y = &x, &y
	if t == StrokeDraw {
		d.Color = p.Color
		d.Size = p.Size
	}
	return d
}
