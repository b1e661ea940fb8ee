package display

import "fmt"

// Memory is an in-process sink used by tests and headless runs.
// Writing outside the grid panics.
type Memory struct {
	width, height int
	pix           []int
	shown         []int

	// Text is the message drawn into the current frame, if any.
	Text string
	// Frames counts successful Present calls.
	Frames int
	// Fail, when set, is returned by Present instead of committing the frame.
	Fail error
}

// NewMemory creates a blank width x height sink.
func NewMemory(width, height int) *Memory {
	return &Memory{
		width:  width,
		height: height,
		pix:    make([]int, width*height),
		shown:  make([]int, width*height),
	}
}

func (m *Memory) Size() (int, int) { return m.width, m.height }

// SetPixel writes one pixel of the frame being drawn.
func (m *Memory) SetPixel(col, row, brightness int) {
	if col < 0 || col >= m.width || row < 0 || row >= m.height {
		panic(fmt.Sprintf("display: pixel (%d, %d) outside %dx%d grid", col, row, m.width, m.height))
	}
	m.pix[row*m.width+col] = clampLevel(brightness)
}

func (m *Memory) BeginFrame() { m.Text = "" }

func (m *Memory) Clear() {
	for i := range m.pix {
		m.pix[i] = 0
	}
}

// DrawText records the message for the current frame.
func (m *Memory) DrawText(text string, brightness int) { m.Text = text }

// Present copies the drawn frame to the visible buffer.
func (m *Memory) Present() error {
	if m.Fail != nil {
		return m.Fail
	}
	copy(m.shown, m.pix)
	m.Frames++
	return nil
}

func (m *Memory) Close() error { return nil }

// At returns the visible brightness of a pixel.
func (m *Memory) At(col, row int) int { return m.shown[row*m.width+col] }

// Lit returns the number of visible non-zero pixels.
func (m *Memory) Lit() int {
	n := 0
	for _, v := range m.shown {
		if v > 0 {
			n++
		}
	}
	return n
}
