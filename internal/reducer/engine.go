package reducer

import (
	"github.com/mlarsden/PocketFarm_Go/internal/clock"
	"github.com/mlarsden/PocketFarm_Go/internal/domain"
	"github.com/mlarsden/PocketFarm_Go/internal/state"
)

// Engine holds the injected clock and exposes every game rule as a pure
// state transition: (state, args) -> (state, error). On any precondition
// failure the input snapshot is returned unchanged alongside a sentinel
// error; an action never partially applies an effect and never panics.
type Engine struct {
	clk clock.Clock
}

// New creates an Engine. A nil clock falls back to the system clock.
func New(clk clock.Clock) *Engine {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Engine{clk: clk}
}

func (e *Engine) nowMs() int64 {
	return e.clk.Now().UnixMilli()
}

// IsTimerReady reports whether a production timer has elapsed.
func (e *Engine) IsTimerReady(t *domain.Timer) bool {
	return t != nil && e.nowMs()-t.StartedAt >= t.DurationMs
}

// TimerProgress returns completion in [0,1], 0 when no timer is attached.
func (e *Engine) TimerProgress(t *domain.Timer) float64 {
	if t == nil || t.DurationMs <= 0 {
		return 0
	}
	p := float64(e.nowMs()-t.StartedAt) / float64(t.DurationMs)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// newTimer starts a timer for the type's base duration scaled by the slot's
// gem-upgrade level: each level halves the effective duration.
func (e *Engine) newTimer(durationMinutes, gemLevel int) *domain.Timer {
	return &domain.Timer{
		StartedAt:  e.nowMs(),
		DurationMs: int64(durationMinutes) * 60_000 / int64(1<<gemLevel),
	}
}

// effectiveYield doubles the base yield per gem-upgrade level.
func effectiveYield(spec state.SlotSpec, gemLevel int) int {
	return spec.BaseYield * (1 << gemLevel)
}

// slotRef locates a slot inside a snapshot without copying anything.
type slotRef struct {
	isCrop bool
	index  int
}

func findSlot(s domain.GameState, slotID string) (domain.Slot, slotRef, bool) {
	for i := range s.Crops {
		if s.Crops[i].ID == slotID {
			return s.Crops[i], slotRef{isCrop: true, index: i}, true
		}
	}
	for i := range s.Animals {
		if s.Animals[i].ID == slotID {
			return s.Animals[i], slotRef{index: i}, true
		}
	}
	return domain.Slot{}, slotRef{}, false
}

// replaceSlot returns a snapshot with one slot swapped out. Only the
// affected collection is copied; the other one is shared with the input.
func replaceSlot(s domain.GameState, ref slotRef, slot domain.Slot) domain.GameState {
	if ref.isCrop {
		crops := make([]domain.Slot, len(s.Crops))
		copy(crops, s.Crops)
		crops[ref.index] = slot
		s.Crops = crops
		return s
	}
	animals := make([]domain.Slot, len(s.Animals))
	copy(animals, s.Animals)
	animals[ref.index] = slot
	s.Animals = animals
	return s
}

// bump marks a successful local mutation.
func bump(s domain.GameState) domain.GameState {
	s.Revision++
	return s
}
