package input

import (
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestState(t *testing.T) {
	s := Of(Brighter, Remove)
	if !s.Held(Brighter) || !s.Held(Remove) {
		t.Errorf("state %v missing buttons", s)
	}
	if s.Held(Dimmer) || s.Held(Add) {
		t.Errorf("state %v has extra buttons", s)
	}
	if s.String() != "brighter+remove" {
		t.Errorf("String() = %q", s.String())
	}
}

func TestMulti(t *testing.T) {
	m := Multi{
		&Script{States: []State{Of(Add)}},
		&Script{States: []State{Of(Dimmer)}},
		None{},
	}
	if got := m.Poll(); got != Of(Add, Dimmer) {
		t.Errorf("Poll() = %v, want add+dimmer", got)
	}
}

func TestScript(t *testing.T) {
	s := &Script{States: append(Hold(2, Add), Of(Brighter))}
	want := []State{Of(Add), Of(Add), Of(Brighter), 0, 0}
	for i, w := range want {
		if got := s.Poll(); got != w {
			t.Errorf("poll %d = %v, want %v", i, got, w)
		}
	}
}

func TestLatch_HoldsRecentPress(t *testing.T) {
	l := NewLatch(8, 3)
	l.Press(Brighter)

	tests := []struct {
		name string
		want bool
	}{
		{"same poll", true},
		{"one later", true},
		{"two later", true},
		{"released", false},
	}
	for _, tt := range tests {
		if got := l.Poll().Held(Brighter); got != tt.want {
			t.Errorf("%s: held = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLatch_RepeatExtendsHold(t *testing.T) {
	l := NewLatch(8, 2)
	for i := 0; i < 5; i++ {
		l.Press(Add)
		if !l.Poll().Held(Add) {
			t.Fatalf("poll %d: auto-repeated key should stay held", i)
		}
	}
	l.Poll()
	if l.Poll().Held(Add) {
		t.Error("key should release after the hold window")
	}
}

func TestLatch_FullBufferDropsPress(t *testing.T) {
	l := NewLatch(1, 1)
	if !l.Press(Add) {
		t.Fatal("first press rejected")
	}
	if l.Press(Remove) {
		t.Error("press into full buffer should be rejected")
	}
	if got := l.Poll(); got != Of(Add) {
		t.Errorf("Poll() = %v, want add", got)
	}
}

func TestLatch_ConcurrentProducer(t *testing.T) {
	l := NewLatch(64, 1)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 32; i++ {
			l.Press(Dimmer)
		}
		close(done)
	}()
	<-done
	if !l.Poll().Held(Dimmer) {
		t.Error("presses from producer goroutine were lost")
	}
}

func TestGPIO_ActiveLow(t *testing.T) {
	add := &gpiotest.Pin{N: "PETALS_TEST_ADD", Num: 901, L: gpio.High}
	dim := &gpiotest.Pin{N: "PETALS_TEST_DIM", Num: 902, L: gpio.High}
	for _, p := range []*gpiotest.Pin{add, dim} {
		if err := gpioreg.Register(p); err != nil {
			t.Fatal(err)
		}
		defer gpioreg.Unregister(p.N)
	}

	g, err := NewGPIO(map[Button]string{
		Add:    "PETALS_TEST_ADD",
		Dimmer: "PETALS_TEST_DIM",
		Remove: "",
	})
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", g.Len())
	}

	add.Out(gpio.Low)
	dim.Out(gpio.High)
	if got := g.Poll(); got != Of(Add) {
		t.Errorf("Poll() = %v, want add", got)
	}
}

func TestGPIO_UnknownPin(t *testing.T) {
	if _, err := NewGPIO(map[Button]string{Add: "PETALS_NO_SUCH_PIN"}); err == nil {
		t.Error("expected error for unknown pin")
	}
}
