package display

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Window emulates the LED grid in a raylib window, one rounded cell per LED.
// It must be created and used from the main goroutine.
type Window struct {
	width, height int
	cellSize      int32
	pix           []uint8

	text           string
	textBrightness int

	// Overlay, when set, is drawn on top of the grid before the frame is shown.
	Overlay func()
}

// NewWindow opens a window sized for a width x height grid of cellSize pixel cells.
func NewWindow(width, height, cellSize int, title string) *Window {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(int32(width*cellSize), int32(height*cellSize), title)
	return &Window{
		width:    width,
		height:   height,
		cellSize: int32(cellSize),
		pix:      make([]uint8, width*height),
	}
}

func (w *Window) Size() (int, int) { return w.width, w.height }

// SetPixel writes one cell. Out-of-range writes are ignored.
func (w *Window) SetPixel(col, row, brightness int) {
	if col < 0 || col >= w.width || row < 0 || row >= w.height {
		return
	}
	w.pix[row*w.width+col] = uint8(clampLevel(brightness))
}

func (w *Window) BeginFrame() {
	w.text = ""
}

func (w *Window) Clear() {
	for i := range w.pix {
		w.pix[i] = 0
	}
}

// DrawText shows text centered over the grid for the current frame.
func (w *Window) DrawText(text string, brightness int) {
	w.text = text
	w.textBrightness = clampLevel(brightness)
}

// Present draws the grid and returns ErrClosed once the window was closed.
func (w *Window) Present() error {
	if rl.WindowShouldClose() {
		return ErrClosed
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 8, G: 8, B: 10, A: 255})

	gap := w.cellSize / 8
	size := float32(w.cellSize - 2*gap)
	for row := 0; row < w.height; row++ {
		for col := 0; col < w.width; col++ {
			rect := rl.Rectangle{
				X:      float32(int32(col)*w.cellSize + gap),
				Y:      float32(int32(row)*w.cellSize + gap),
				Width:  size,
				Height: size,
			}
			rl.DrawRectangleRounded(rect, 0.3, 4, petalColor(w.pix[row*w.width+col]))
		}
	}

	if w.text != "" {
		fontSize := w.cellSize * 3
		tw := rl.MeasureText(w.text, fontSize)
		x := (int32(w.width)*w.cellSize - tw) / 2
		y := (int32(w.height)*w.cellSize - fontSize) / 2
		rl.DrawText(w.text, x, y, fontSize, petalColor(uint8(w.textBrightness)))
	}

	if w.Overlay != nil {
		w.Overlay()
	}

	rl.EndDrawing()
	return nil
}

func (w *Window) Close() error {
	rl.CloseWindow()
	return nil
}

// petalColor tints a single-channel level pink; an unlit LED stays faintly visible.
func petalColor(level uint8) rl.Color {
	if level == 0 {
		return rl.Color{R: 24, G: 22, B: 26, A: 255}
	}
	l := uint16(level)
	return rl.Color{R: uint8(l), G: uint8(l * 182 / 255), B: uint8(l * 193 / 255), A: 255}
}
