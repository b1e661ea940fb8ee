package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// sectionGap is the vertical space after each visible section.
const sectionGap = 4

// Renderer draws panel descriptors with a shared theme.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// rowHeight is the vertical space one field occupies.
func (t Theme) rowHeight(fd FieldDescriptor) int32 {
	switch fd.Widget {
	case WidgetBar, WidgetCenteredBar:
		return t.LineHeight + 2
	case WidgetSpacer:
		return 6
	}
	return t.LineHeight
}

// barSpan returns the filled part of a bar as fractions [lo, hi] of its width.
// Plain bars fill from the left; centered bars fill outward from the range midpoint.
func barSpan(fd FieldDescriptor, value float32) (lo, hi float32) {
	r := fd.Range
	if r.Max <= r.Min {
		return 0, 0
	}
	f := (value - r.Min) / (r.Max - r.Min)
	f = max(0, min(1, f))
	if fd.Widget != WidgetCenteredBar {
		return 0, f
	}
	if f < 0.5 {
		return f, 0.5
	}
	return 0.5, f
}

// DrawPanelDescriptor draws a complete panel at its anchor.
func (r *Renderer) DrawPanelDescriptor(p PanelDescriptor, data any, screenW, screenH int32) {
	t := r.Theme
	h := t.PanelHeight(p, data)
	x, y := t.PanelOrigin(p.Anchor, p.Width, h, screenW, screenH)
	rl.DrawRectangle(x, y, p.Width, h, t.PanelBg)
	rl.DrawRectangleLines(x, y, p.Width, h, t.PanelBorder)

	x += t.Padding
	y += t.Padding
	if p.Title != "" {
		y = r.drawHeader(x, y, p.Title)
	}
	inner := p.Width - 2*t.Padding
	for _, sd := range p.Sections {
		if sd.Visible != nil && !sd.Visible(data) {
			continue
		}
		if sd.Title != "" {
			y = r.drawHeader(x, y, sd.Title)
		}
		for _, fd := range sd.Fields {
			if fd.Visible != nil && !fd.Visible(data) {
				continue
			}
			r.drawField(x, y, fd, data, inner)
			y += t.rowHeight(fd)
		}
		y += sectionGap
	}
}

func (r *Renderer) drawHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

func (r *Renderer) drawField(x, y int32, fd FieldDescriptor, data any, width int32) {
	t := r.Theme
	var value float32
	if fd.Getter != nil {
		value = fd.Getter(data)
	}

	switch fd.Widget {
	case WidgetText:
		text := ""
		if fd.TextGetter != nil {
			text = fd.TextGetter(data)
		} else if fd.Getter != nil {
			text = fmt.Sprintf(fd.Format, value)
		}
		rl.DrawText(fd.Label+":", x, y, t.FontSize, t.LabelColor)
		rl.DrawText(text, x+t.LabelWidth, y, t.FontSize, t.ValueColor)

	case WidgetBar, WidgetCenteredBar:
		barX := x + t.LabelWidth
		barW := width - t.LabelWidth - 50
		rl.DrawText(fd.Label+":", x, y, t.FontSize, t.LabelColor)
		rl.DrawRectangle(barX, y+2, barW, t.BarHeight, t.BarBg)

		lo, hi := barSpan(fd, value)
		fill := t.BarFill
		if fd.Widget == WidgetCenteredBar {
			fill = t.BarFillPositive
			if lo < 0.5 {
				fill = t.BarFillNegative
			}
			mid := barX + barW/2
			rl.DrawLine(mid, y+2, mid, y+2+t.BarHeight, t.PanelBorder)
		}
		rl.DrawRectangle(barX+int32(float32(barW)*lo), y+2, int32(float32(barW)*(hi-lo)), t.BarHeight, fill)
		rl.DrawText(fmt.Sprintf(fd.Format, value), barX+barW+5, y, t.FontSize, t.ValueColor)
	}
}
