package display

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/petals/input"
)

// Terminal draws the grid with grayscale block characters, two columns per LED.
// Key events are read on a separate goroutine and handed to the loop through
// an input.Latch.
type Terminal struct {
	screen        tcell.Screen
	width, height int
	pix           []uint8
	text          string
	textLevel     int

	done chan struct{}
}

// TerminalKeys maps runes to buttons.
var TerminalKeys = map[rune]input.Button{
	'k': input.Brighter,
	'j': input.Dimmer,
	'a': input.Add,
	'+': input.Add,
	'r': input.Remove,
	'-': input.Remove,
}

// NewTerminal takes over the terminal. Key presses are sent to latch; quit is
// called once when the user presses Escape, q or Ctrl-C.
func NewTerminal(width, height int, latch *input.Latch, quit func()) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	screen.HideCursor()

	t := &Terminal{
		screen: screen,
		width:  width,
		height: height,
		pix:    make([]uint8, width*height),
		done:   make(chan struct{}),
	}
	go t.pollEvents(latch, quit)
	return t, nil
}

func (t *Terminal) pollEvents(latch *input.Latch, quit func()) {
	defer close(t.done)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				quit()
			case tcell.KeyUp:
				latch.Press(input.Brighter)
			case tcell.KeyDown:
				latch.Press(input.Dimmer)
			case tcell.KeyRune:
				if ev.Rune() == 'q' {
					quit()
				} else if b, ok := TerminalKeys[ev.Rune()]; ok {
					latch.Press(b)
				}
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *Terminal) Size() (int, int) { return t.width, t.height }

// SetPixel writes one LED. Out-of-range writes are ignored.
func (t *Terminal) SetPixel(col, row, brightness int) {
	if col < 0 || col >= t.width || row < 0 || row >= t.height {
		return
	}
	t.pix[row*t.width+col] = uint8(clampLevel(brightness))
}

func (t *Terminal) BeginFrame() { t.text = "" }

func (t *Terminal) Clear() {
	for i := range t.pix {
		t.pix[i] = 0
	}
}

// DrawText shows text on the line below the grid.
func (t *Terminal) DrawText(text string, brightness int) {
	t.text = text
	t.textLevel = clampLevel(brightness)
}

func (t *Terminal) Present() error {
	t.screen.Clear()
	for row := 0; row < t.height; row++ {
		for col := 0; col < t.width; col++ {
			level := int32(t.pix[row*t.width+col])
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(level, level, level))
			t.screen.SetContent(col*2, row, '█', nil, style)
			t.screen.SetContent(col*2+1, row, '█', nil, style)
		}
	}
	if t.text != "" {
		level := int32(max(t.textLevel, 64))
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(level, level, level))
		for i, r := range t.text {
			t.screen.SetContent(i, t.height+1, r, nil, style)
		}
	}
	t.screen.Show()
	return nil
}

// Close restores the terminal and waits for the event goroutine to exit.
func (t *Terminal) Close() error {
	t.screen.Fini()
	<-t.done
	return nil
}
