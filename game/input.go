package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/petals/input"
)

// maxStep caps the held-button brightness acceleration.
const maxStep = 255

// buttonState tracks how long each button has been held.
type buttonState struct {
	brightStep int // Next brightness increment while Brighter is held
	dimStep    int
	addHeld    int // Consecutive ticks Add has been held
	removeHeld int

	message      string
	messageLevel int
	messageTicks int
}

func newButtonState() buttonState {
	return buttonState{brightStep: 1, dimStep: 1}
}

// handleInput applies one tick of button state.
func (g *Game) handleInput(state input.State) {
	b := &g.buttons
	maxLevel := g.cfg.Display.BrightnessMax

	// Brighter / dimmer accelerate while held: 1, 2, 3, ...
	if state.Held(input.Brighter) {
		next := min(g.sim.Scale()+b.brightStep, maxLevel)
		b.brightStep = min(b.brightStep+1, maxStep)
		g.setScale(next)
		if next >= maxLevel {
			g.showMessage("MAX", 255)
		}
	} else {
		b.brightStep = 1
	}

	if state.Held(input.Dimmer) {
		next := max(g.sim.Scale()-b.dimStep, 0)
		b.dimStep = min(b.dimStep+1, maxStep)
		g.setScale(next)
	} else {
		b.dimStep = 1
	}

	// Add / remove act on the first tick, then every repeat_ticks while held
	repeat := max(g.cfg.Input.RepeatTicks, 1)
	if state.Held(input.Add) {
		if b.addHeld%repeat == 0 {
			n := g.sim.AddPetal()
			g.collector.RecordAdjustment()
			g.showMessage(fmt.Sprintf("%dP", n), g.sim.Scale())
		}
		b.addHeld++
	} else {
		b.addHeld = 0
	}

	if state.Held(input.Remove) {
		if b.removeHeld%repeat == 0 {
			n := g.sim.RemovePetal()
			g.collector.RecordAdjustment()
			g.showMessage(fmt.Sprintf("%dP", n), g.sim.Scale())
		}
		b.removeHeld++
	} else {
		b.removeHeld = 0
	}
}

func (g *Game) setScale(scale int) {
	if scale == g.sim.Scale() {
		return
	}
	g.sim.SetScale(scale)
	g.collector.RecordAdjustment()
	slog.Debug("brightness changed", "tick", g.tick, "scale", scale)
}

// showMessage displays text for message_ticks ticks.
func (g *Game) showMessage(text string, level int) {
	g.buttons.message = text
	g.buttons.messageLevel = level
	g.buttons.messageTicks = g.cfg.Input.MessageTicks
}

// drawMessage draws the active message, if any, and ages it by one tick.
func (g *Game) drawMessage() {
	b := &g.buttons
	if b.messageTicks <= 0 {
		b.message = ""
		return
	}
	if g.texter != nil {
		g.texter.DrawText(b.message, b.messageLevel)
	}
	b.messageTicks--
}
