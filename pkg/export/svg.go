package export

import (
	"bytes"
	"fmt"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/aedificium/pkg/aedificium"
)

// SVGOptions configures SVG visualization export.
type SVGOptions struct {
	Width      int    // Canvas width in pixels
	Height     int    // Canvas height in pixels
	ShowLabels bool   // Show room index labels
	ShowLegend bool   // Show legend explaining label colors
	NodeRadius int    // Radius of room nodes (default: 20)
	EdgeWidth  int    // Width of connection lines (default: 2)
	Margin     int    // Canvas margin in pixels (default: 60)
	Title      string // Optional title for the visualization
	ShowStats  bool   // Show room/door/start statistics
}

// DefaultSVGOptions returns sensible default SVG export options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:      1200,
		Height:     900,
		ShowLabels: true,
		ShowLegend: true,
		NodeRadius: 20,
		EdgeWidth:  2,
		Margin:     60,
		Title:      "Ædificium",
		ShowStats:  true,
	}
}

// ExportSVG renders a ring layout of a's rooms: nodes colored by their
// 2-bit label, edges drawn one per Connection as straight lines (a
// self-loop as a small circle beside its room). Parallel connections
// between the same pair of rooms are drawn on top of each other.
func ExportSVG(a *aedificium.Aedificium, opts SVGOptions) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("export: aedificium cannot be nil")
	}
	if opts.Width <= 0 {
		opts.Width = 1200
	}
	if opts.Height <= 0 {
		opts.Height = 900
	}
	if opts.NodeRadius <= 0 {
		opts.NodeRadius = 20
	}
	if opts.EdgeWidth <= 0 {
		opts.EdgeWidth = 2
	}
	if opts.Margin <= 0 {
		opts.Margin = 60
	}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#1a1a2e")

	positions := calculateLayout(a.N(), opts)

	drawConnections(canvas, a, positions, opts)
	drawRooms(canvas, a, positions, opts)
	if opts.ShowLabels {
		drawRoomLabels(canvas, a, positions, opts)
	}
	if opts.ShowLegend {
		drawLegend(canvas, opts)
	}
	if opts.Title != "" || opts.ShowStats {
		drawHeader(canvas, a, opts)
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile renders a and writes it to filepath with 0644 permissions.
func SaveSVGToFile(a *aedificium.Aedificium, filepath string, opts SVGOptions) error {
	data, err := ExportSVG(a, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

type position struct {
	X, Y float64
}

// calculateLayout places n rooms evenly around a circle, following the
// teacher's calculateLayout formula (center point, radius from the
// drawable area, angleStep = 2π/n).
func calculateLayout(n int, opts SVGOptions) []position {
	positions := make([]position, n)
	if n == 0 {
		return positions
	}

	drawWidth := float64(opts.Width - 2*opts.Margin - 2*opts.NodeRadius)
	drawHeight := float64(opts.Height - 2*opts.Margin - 2*opts.NodeRadius - 100)

	centerX := float64(opts.Width) / 2
	centerY := float64(opts.Height-100) / 2
	radius := math.Min(drawWidth, drawHeight) / 2.5

	angleStep := 2 * math.Pi / float64(n)
	for r := 0; r < n; r++ {
		angle := float64(r) * angleStep
		positions[r] = position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}
	return positions
}

// labelColor returns a fixed color per 2-bit label, independent of room
// count so the same label always reads the same color across exports.
func labelColor(label int) string {
	colors := [aedificium.Labels]string{"#48bb78", "#4299e1", "#f56565", "#ecc94b"}
	if label < 0 || label >= len(colors) {
		return "#4a5568"
	}
	return colors[label]
}

// drawConnections renders every Connection as a line between its two
// rooms' positions; a self-loop (From.Room == To.Room) is drawn as a
// small arc beside the room instead of a degenerate zero-length line.
func drawConnections(canvas *svg.SVG, a *aedificium.Aedificium, positions []position, opts SVGOptions) {
	for _, c := range a.Connections {
		if c.From.Room == c.To.Room {
			drawSelfLoop(canvas, positions[c.From.Room], c.From.Port, opts)
			continue
		}
		from, to := positions[c.From.Room], positions[c.To.Room]
		canvas.Line(
			int(from.X), int(from.Y), int(to.X), int(to.Y),
			fmt.Sprintf("stroke:#718096;stroke-width:%d;opacity:0.7", opts.EdgeWidth),
		)
	}
}

// drawSelfLoop draws a small circle tangent to the room's node, offset by
// port so a room's several self-loops don't all overlap.
func drawSelfLoop(canvas *svg.SVG, p position, port int, opts SVGOptions) {
	angle := float64(port) * (2 * math.Pi / float64(aedificium.Doors))
	loopRadius := float64(opts.NodeRadius) * 0.6
	cx := p.X + float64(opts.NodeRadius+int(loopRadius))*math.Cos(angle)
	cy := p.Y + float64(opts.NodeRadius+int(loopRadius))*math.Sin(angle)
	canvas.Circle(int(cx), int(cy), int(loopRadius),
		"fill:none;stroke:#718096;stroke-width:1;opacity:0.6")
}

// drawRooms renders every room as a colored circle.
func drawRooms(canvas *svg.SVG, a *aedificium.Aedificium, positions []position, opts SVGOptions) {
	for r, pos := range positions {
		color := labelColor(a.Label(r))
		strokeWidth := 2
		stroke := "#fff"
		if r == a.Start {
			stroke = "#ffd700"
			strokeWidth = 4
		}
		canvas.Circle(
			int(pos.X), int(pos.Y), opts.NodeRadius,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%d;opacity:0.9", color, stroke, strokeWidth),
		)
	}
}

// drawRoomLabels renders each room's index below its node.
func drawRoomLabels(canvas *svg.SVG, a *aedificium.Aedificium, positions []position, opts SVGOptions) {
	for r, pos := range positions {
		labelY := int(pos.Y) + opts.NodeRadius + 15
		canvas.Text(
			int(pos.X), labelY, fmt.Sprintf("%d", r),
			"text-anchor:middle;font-size:11px;font-family:monospace;fill:#e2e8f0;font-weight:500",
		)
	}
}

// drawLegend renders a legend mapping each of the four labels to its
// color.
func drawLegend(canvas *svg.SVG, opts SVGOptions) {
	legendX := opts.Width - opts.Margin - 140
	legendY := opts.Margin + 20

	canvas.Rect(legendX-10, legendY-15, 150, 25+aedificium.Labels*22,
		"fill:#2d3748;stroke:#4a5568;stroke-width:1;opacity:0.95;rx:5")
	canvas.Text(legendX, legendY, "Labels", "font-size:14px;font-weight:bold;fill:#e2e8f0")
	legendY += 25

	for l := 0; l < aedificium.Labels; l++ {
		canvas.Circle(legendX+8, legendY, 8, fmt.Sprintf("fill:%s;stroke:#fff;stroke-width:1", labelColor(l)))
		canvas.Text(legendX+25, legendY+4, fmt.Sprintf("%d", l), "font-size:11px;fill:#cbd5e0")
		legendY += 22
	}
}

// drawHeader renders an optional title and summary statistics.
func drawHeader(canvas *svg.SVG, a *aedificium.Aedificium, opts SVGOptions) {
	headerY := 25
	if opts.Title != "" {
		canvas.Text(opts.Width/2, headerY, opts.Title,
			"text-anchor:middle;font-size:20px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
		headerY += 30
	}
	if opts.ShowStats {
		stats := fmt.Sprintf("Rooms: %d | Doors: %d | Start: %d", a.N(), a.N()*aedificium.Doors, a.Start)
		canvas.Text(opts.Width/2, headerY, stats,
			"text-anchor:middle;font-size:12px;fill:#a0aec0;font-family:monospace")
	}
}
