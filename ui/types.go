// Package ui provides descriptor-driven debug panels drawn over the game.
// Panels are described as data, so the fields shown can follow the systems they
// read from without touching layout code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field is rendered.
type WidgetType int

const (
	WidgetText   WidgetType = iota // Label and formatted value
	WidgetBar                      // Progress bar over Range
	WidgetSlider                   // Editable raygui slider over Range
	WidgetToggle                   // Editable raygui check box
	WidgetSection                  // Section header
	WidgetSpacer                   // Vertical spacing
)

// FieldRange defines the value range for bars and sliders.
type FieldRange struct {
	Min float32
	Max float32
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// FieldDescriptor defines how to display a single piece of data.
//
// Sliders read through Getter and write through Setter; toggles use BoolGetter and
// BoolSetter. A nil setter draws the widget read-only.
type FieldDescriptor struct {
	ID         string
	Label      string
	Widget     WidgetType
	Format     string // Printf format for text and slider values
	Range      FieldRange
	Visible    func(any) bool // nil = always visible
	Getter     func(any) float32
	TextGetter func(any) string
	Setter     func(any, float32)
	BoolGetter func(any) bool
	BoolSetter func(any, bool)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string
	Title   string
	Fields  []FieldDescriptor
	Visible func(any) bool // nil = always visible
}

// PanelDescriptor defines a complete panel layout.
type PanelDescriptor struct {
	ID       string
	Title    string
	Sections []SectionDescriptor
	Width    int32
	Anchor   PanelAnchor
}

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	BarBg         rl.Color
	BarFill       rl.Color
	Padding       int32
	LineHeight    int32
	LabelWidth    int32
	BarHeight     int32
	SliderHeight  int32
	FontSize      int32
	TitleFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 230},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader: rl.Yellow,
		LabelColor:    rl.LightGray,
		ValueColor:    rl.RayWhite,
		BarBg:         rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:       rl.Color{R: 100, G: 150, B: 200, A: 255},
		Padding:       10,
		LineHeight:    18,
		LabelWidth:    110,
		BarHeight:     12,
		SliderHeight:  14,
		FontSize:      12,
		TitleFontSize: 16,
	}
}
