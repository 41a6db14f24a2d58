// Package predictor implements the SP pipeline's single global 2-bit
// saturating branch counter.
//
// Unlike the teacher's BHT/BTB bimodal predictor (which indexes a
// table of counters by PC and also tracks target addresses), the SP
// has exactly one shared counter across every conditional branch —
// spec.md §3/§4.8 name no per-PC table, only "a 2-bit saturating
// predictor state in {0,1,2,3}".
package predictor

// Predictor holds the shared 2-bit saturating counter.
type Predictor struct {
	counter uint8
}

// New creates a predictor with its counter at 0, matching the
// reference model's reset state (sp_reset zeroes the whole register
// block, including branch_counter).
func New() *Predictor {
	return &Predictor{}
}

// Counter returns the current counter value, always in {0,1,2,3}.
func (p *Predictor) Counter() uint8 {
	return p.counter
}

// PredictTaken reports whether a conditional branch at Decode0 should
// be speculatively taken: true iff the counter is greater than 1.
func (p *Predictor) PredictTaken() bool {
	return p.counter > 1
}

// Update folds the actual outcome of a retired conditional branch into
// the counter: taken increments (clamped at 3), not-taken decrements
// (clamped at 0) — the ordinary 2-bit saturating counter spec.md §4.8
// specifies.
//
// sp.c computes this as
//
//	branch_counter = taken ? MAX(3, branch_counter+1) : MIN(0, branch_counter-1)
//
// which has its MAX/MIN arguments backwards for a clamp (clamping to
// an upper bound of 3 wants MIN(3, counter+1), not MAX(3,
// counter+1)). Read literally, this snaps the counter straight to 3
// on any taken update (MAX(3, counter+1) is 3 for every counter in
// {0,1,2}, since counter+1 <= 3 in all of those cases) and only
// overflows to 4 when the counter was already 3; the not-taken case
// is the mirror image, snapping to 0 and underflowing to -1 only from
// 0. Neither a one-shot snap nor an occasional out-of-range value is
// what spec.md §4.8 specifies (a plain saturating increment/
// decrement), and §9 records this as a noted anomaly in the reference
// source rather than a behavior to carry forward — this implements
// §4.8's clamp directly instead.
func (p *Predictor) Update(taken bool) {
	if taken {
		if p.counter < 3 {
			p.counter++
		}
	} else {
		if p.counter > 0 {
			p.counter--
		}
	}
}

// Reset zeros the counter.
func (p *Predictor) Reset() {
	p.counter = 0
}
