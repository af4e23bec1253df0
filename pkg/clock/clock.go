// Package clock implements Canadian byo-yomi time accounting, the time
// control the original engine tracks per player.
package clock

import (
	"fmt"
	"time"

	"github.com/nullbound/matilda/pkg/board"
)

// TimeControl holds the static parameters of a Canadian byo-yomi clock, the
// fields spec.md ties to `advance_clock`: a main time budget, then a fixed
// number of stones to play within each byo-yomi period.
type TimeControl struct {
	MainTime       time.Duration
	ByoYomiStones  int
	ByoYomiTime    time.Duration
	ByoYomiPeriods int
}

func (t TimeControl) String() string {
	return fmt.Sprintf("main=%v, byoyomi=%v/%d stones x%d periods", t.MainTime, t.ByoYomiTime, t.ByoYomiStones, t.ByoYomiPeriods)
}

// Clock is the mutable remaining-time state for one player, modeled on the
// teacher's TimeControl.Limits split (soft/hard budgets derived from a
// static allotment) but adapted to the Canadian stone-counting rule: once
// MainTime is exhausted, each byo-yomi period grants ByoYomiTime to play
// ByoYomiStones moves. The counter and the period's time reset when all of
// those stones are played before the period's time runs out; a move that
// overruns the period's time uses up that period and starts the next one.
type Clock struct {
	tc TimeControl

	mainRemaining     time.Duration
	inByoYomi         bool
	periodsRemaining  int
	byoYomiRemaining  time.Duration
	stonesPlayedInByo int
	TimedOut          bool
}

// NewClock starts a clock at its full main time allotment.
func NewClock(tc TimeControl) *Clock {
	return &Clock{
		tc:               tc,
		mainRemaining:    tc.MainTime,
		periodsRemaining: tc.ByoYomiPeriods,
		byoYomiRemaining: tc.ByoYomiTime,
	}
}

// AdvanceClock records that a move by one color took elapsed time, consuming
// main time first and byo-yomi time after it is exhausted, following
// spec.md's "consumes main time first then byo-yomi time resetting the
// stone counter at period boundaries, timing out when periods are
// exhausted."
func (c *Clock) AdvanceClock(elapsed time.Duration) {
	if c.TimedOut {
		return
	}

	if !c.inByoYomi {
		if elapsed <= c.mainRemaining {
			c.mainRemaining -= elapsed
			return
		}
		elapsed -= c.mainRemaining
		c.mainRemaining = 0
		c.inByoYomi = true
	}

	c.byoYomiRemaining -= elapsed
	c.stonesPlayedInByo++

	if c.byoYomiRemaining < 0 {
		c.periodsRemaining--
		if c.periodsRemaining <= 0 {
			c.TimedOut = true
			return
		}
		// Overran this period; start the next one fresh, the Canadian rule's
		// forgiveness for a single slow move that still used a whole period.
		c.byoYomiRemaining = c.tc.ByoYomiTime
		c.stonesPlayedInByo = 0
		return
	}

	if c.stonesPlayedInByo >= c.tc.ByoYomiStones {
		c.byoYomiRemaining = c.tc.ByoYomiTime
		c.stonesPlayedInByo = 0
	}
}

// Remaining reports the time left to spend before the next timeout check:
// main time if still in it, else the current byo-yomi period's time.
func (c *Clock) Remaining() time.Duration {
	if !c.inByoYomi {
		return c.mainRemaining
	}
	return c.byoYomiRemaining
}

// InByoYomi reports whether main time has been exhausted.
func (c *Clock) InByoYomi() bool {
	return c.inByoYomi
}

// PeriodsRemaining reports how many byo-yomi periods are left.
func (c *Clock) PeriodsRemaining() int {
	return c.periodsRemaining
}

// Clocks pairs a Clock per color, the per-game state the engine keeps,
// mirroring the teacher's TimeControl.White/Black split.
type Clocks struct {
	Black, White *Clock
}

// NewClocks starts both players' clocks from the same time control.
func NewClocks(tc TimeControl) Clocks {
	return Clocks{Black: NewClock(tc), White: NewClock(tc)}
}

// Of returns the clock for the given color.
func (c Clocks) Of(color board.Color) *Clock {
	if color == board.Black {
		return c.Black
	}
	return c.White
}
