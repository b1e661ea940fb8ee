package ui

import (
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Tick         int32
	Petals       int
	Scale        int // Brightness scale 0-255
	Mode         string
	Layers       []int // Live petals per layer
	WindStrength int
	FPS          int32
	Message      string
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the descriptor-driven status panel over the LED grid.
type HUD struct {
	renderer *Renderer
	panel    PanelDescriptor
}

// NewHUD creates a new HUD renderer. The gust bar spans [-gustStrengthMax, gustStrengthMax].
func NewHUD(gustStrengthMax int) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		panel:    HUDPanel(gustStrengthMax),
	}
}

func hudData(data any) HUDData {
	d, _ := data.(HUDData)
	return d
}

// HUDPanel describes the HUD layout.
func HUDPanel(gustStrengthMax int) PanelDescriptor {
	gust := float32(gustStrengthMax)
	return PanelDescriptor{
		ID:     "hud",
		Title:  "Petals",
		Width:  220,
		Anchor: AnchorTopRight,
		Sections: []SectionDescriptor{
			{
				ID: "field",
				Fields: []FieldDescriptor{
					{ID: "mode", Label: "Mode", Widget: WidgetText,
						TextGetter: func(d any) string { return hudData(d).Mode }},
					{ID: "tick", Label: "Tick", Widget: WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(hudData(d).Tick) }},
					{ID: "fps", Label: "FPS", Widget: WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(hudData(d).FPS) }},
					{ID: "petals", Label: "Petals", Widget: WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(hudData(d).Petals) }},
					{ID: "layers", Label: "Layers", Widget: WidgetText,
						TextGetter: func(d any) string { return layerText(hudData(d).Layers) },
						Visible:    func(d any) bool { return len(hudData(d).Layers) > 1 }},
					{ID: "brightness", Label: "Bright", Widget: WidgetBar, Format: "%.0f", Range: FieldRange{Max: 255},
						Getter: func(d any) float32 { return float32(hudData(d).Scale) }},
				},
			},
			{
				ID:    "wind",
				Title: "Wind",
				Fields: []FieldDescriptor{
					{ID: "gust", Label: "Gust", Widget: WidgetCenteredBar, Format: "%+.0f", Range: FieldRange{Min: -gust, Max: gust},
						Getter: func(d any) float32 { return float32(hudData(d).WindStrength) }},
				},
				Visible: func(any) bool { return gust > 0 },
			},
			{
				ID: "message",
				Fields: []FieldDescriptor{
					{Widget: WidgetSpacer},
					{ID: "message", Label: "Shown", Widget: WidgetText,
						TextGetter: func(d any) string { return hudData(d).Message }},
				},
				Visible: func(d any) bool { return hudData(d).Message != "" },
			},
		},
	}
}

func layerText(layers []int) string {
	parts := make([]string, len(layers))
	for i, n := range layers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "/")
}

// Draw renders the HUD panel.
func (h *HUD) Draw(data HUDData) {
	h.renderer.DrawPanelDescriptor(h.panel, data, data.ScreenWidth, data.ScreenHeight)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// ControlsText is the keyboard legend for the window backend.
const ControlsText = "UP brighter | DOWN dimmer | A add | R remove | ESC quit"
