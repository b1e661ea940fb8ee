package input

import rl "github.com/gen2brain/raylib-go/raylib"

// Keyboard reads buttons from the raylib window.
//
//	Up / K      brighter
//	Down / J    dimmer
//	A / =       add petal
//	R / -       remove petal
type Keyboard struct{}

var keyBindings = map[Button][]int32{
	Brighter: {rl.KeyUp, rl.KeyK},
	Dimmer:   {rl.KeyDown, rl.KeyJ},
	Add:      {rl.KeyA, rl.KeyEqual, rl.KeyKpAdd},
	Remove:   {rl.KeyR, rl.KeyMinus, rl.KeyKpSubtract},
}

func (Keyboard) Poll() State {
	var s State
	for b, keys := range keyBindings {
		for _, k := range keys {
			if rl.IsKeyDown(k) {
				s = s.With(b)
				break
			}
		}
	}
	return s
}
