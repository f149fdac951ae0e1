package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanelBox draws a panel background with border.
func (r *Renderer) DrawPanelBox(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.FontSize+2, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a read-only progress bar for value within rng.
func (r *Renderer) DrawBar(x, y int32, label string, value float32, rng FieldRange, width int32) int32 {
	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	fill := normalize(value, rng)
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*fill), r.Theme.BarHeight, r.Theme.BarFill)
	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawSlider draws an editable slider and returns the new Y and the slider value.
func (r *Renderer) DrawSlider(x, y int32, label, format string, value float32, rng FieldRange, width int32) (int32, float32) {
	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	bounds := rl.Rectangle{
		X:      float32(barX),
		Y:      float32(y),
		Width:  float32(barWidth),
		Height: float32(r.Theme.SliderHeight),
	}
	value = gui.SliderBar(bounds, "", "", value, rng.Min, rng.Max)
	rl.DrawText(fmt.Sprintf(format, value), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2, value
}

// DrawToggle draws a check box and returns the new Y and the checked state.
func (r *Renderer) DrawToggle(x, y int32, label string, checked bool) (int32, bool) {
	size := float32(r.Theme.SliderHeight)
	bounds := rl.Rectangle{X: float32(x), Y: float32(y), Width: size, Height: size}
	checked = gui.CheckBox(bounds, label, checked)
	return y + r.Theme.LineHeight + 2, checked
}

// DrawField renders a field based on its descriptor, writing back edits through
// the descriptor's setters.
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, data any, width int32) int32 {
	switch fd.Widget {
	case WidgetText:
		var text string
		if fd.TextGetter != nil {
			text = fd.TextGetter(data)
		} else if fd.Getter != nil {
			text = fmt.Sprintf(fd.Format, fd.Getter(data))
		}
		return r.DrawLabelValue(x, y, fd.Label, text)

	case WidgetBar:
		var value float32
		if fd.Getter != nil {
			value = fd.Getter(data)
		}
		return r.DrawBar(x, y, fd.Label, value, fd.Range, width)

	case WidgetSlider:
		var value float32
		if fd.Getter != nil {
			value = fd.Getter(data)
		}
		if fd.Setter == nil {
			return r.DrawBar(x, y, fd.Label, value, fd.Range, width)
		}
		next, edited := r.DrawSlider(x, y, fd.Label, fd.Format, value, fd.Range, width)
		if edited != value {
			fd.Setter(data, edited)
		}
		return next

	case WidgetToggle:
		var checked bool
		if fd.BoolGetter != nil {
			checked = fd.BoolGetter(data)
		}
		next, edited := r.DrawToggle(x, y, fd.Label, checked)
		if edited != checked && fd.BoolSetter != nil {
			fd.BoolSetter(data, edited)
		}
		return next

	case WidgetSection:
		return r.DrawSectionHeader(x, y, fd.Label)

	case WidgetSpacer:
		return y + 6
	}

	return y
}

// DrawSection renders a section with header and fields.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	if sd.Visible != nil && !sd.Visible(data) {
		return y
	}
	if sd.Title != "" {
		y = r.DrawSectionHeader(x, y, sd.Title)
	}
	for _, fd := range sd.Fields {
		if fd.Visible != nil && !fd.Visible(data) {
			continue
		}
		y = r.DrawField(x, y, fd, data, width)
	}
	return y + 4
}

// DrawPanel lays out and renders a whole panel on a screen of the given size.
func (r *Renderer) DrawPanel(pd PanelDescriptor, data any, screenW, screenH int32) {
	height := r.PanelHeight(pd, data)
	x, y := r.PanelOrigin(pd, height, screenW, screenH)
	r.DrawPanelBox(x, y, pd.Width, height)

	pad := r.Theme.Padding
	cy := y + pad
	if pd.Title != "" {
		rl.DrawText(pd.Title, x+pad, cy, r.Theme.TitleFontSize, rl.White)
		cy += r.Theme.LineHeight + 4
	}
	for _, sd := range pd.Sections {
		cy = r.DrawSection(x+pad, cy, sd, data, pd.Width-2*pad)
	}
}

// PanelHeight returns the height DrawPanel needs for pd with the current data.
func (r *Renderer) PanelHeight(pd PanelDescriptor, data any) int32 {
	h := 2 * r.Theme.Padding
	if pd.Title != "" {
		h += r.Theme.LineHeight + 4
	}
	for _, sd := range pd.Sections {
		if sd.Visible != nil && !sd.Visible(data) {
			continue
		}
		if sd.Title != "" {
			h += r.Theme.LineHeight
		}
		for _, fd := range sd.Fields {
			if fd.Visible != nil && !fd.Visible(data) {
				continue
			}
			h += r.fieldHeight(fd)
		}
		h += 4
	}
	return h
}

// PanelOrigin returns the top-left corner of a panel of the given height.
func (r *Renderer) PanelOrigin(pd PanelDescriptor, height, screenW, screenH int32) (int32, int32) {
	const margin = 10
	switch pd.Anchor {
	case AnchorTopRight:
		return screenW - pd.Width - margin, margin
	case AnchorBottomLeft:
		return margin, screenH - height - margin
	case AnchorBottomRight:
		return screenW - pd.Width - margin, screenH - height - margin
	default:
		return margin, margin
	}
}

func (r *Renderer) fieldHeight(fd FieldDescriptor) int32 {
	switch fd.Widget {
	case WidgetBar, WidgetSlider, WidgetToggle:
		return r.Theme.LineHeight + 2
	case WidgetSpacer:
		return 6
	case WidgetText, WidgetSection:
		return r.Theme.LineHeight
	}
	return 0
}

// normalize maps value into [0, 1] over rng.
func normalize(value float32, rng FieldRange) float32 {
	span := rng.Max - rng.Min
	if span <= 0 {
		return 0
	}
	t := (value - rng.Min) / span
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
