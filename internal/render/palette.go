package render

import (
	"math/rand"
	"sync"
	"time"
)

// Palette is the fixed set of card background colours.
var Palette = []string{
	"#FFCDD2", "#F8BBD0", "#E1BEE7", "#D1C4E9", "#C5CAE9",
	"#BBDEFB", "#B3E5FC", "#B2EBF2", "#B2DFDB", "#C8E6C9",
}

// ColorPicker chooses the palette colour for the card at a zero-based position.
type ColorPicker interface {
	Pick(index int) string
}

// CyclePicker walks the palette in order, wrapping around. It is deterministic.
type CyclePicker struct{}

// Pick implements ColorPicker.
func (CyclePicker) Pick(index int) string {
	if index < 0 {
		index = -index
	}
	return Palette[index%len(Palette)]
}

// RandomPicker draws colours uniformly at random.
type RandomPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPicker creates a RandomPicker. A nil source seeds from the clock.
func NewRandomPicker(src rand.Source) *RandomPicker {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &RandomPicker{rng: rand.New(src)}
}

// Pick implements ColorPicker. The index is ignored.
func (p *RandomPicker) Pick(int) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Palette[p.rng.Intn(len(Palette))]
}

// PickerFor returns a RandomPicker when random is set and a CyclePicker otherwise.
func PickerFor(random bool) ColorPicker {
	if random {
		return NewRandomPicker(nil)
	}
	return CyclePicker{}
}
