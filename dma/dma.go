// Package dma implements the SP's asynchronous block-copy DMA engine:
// a 4-state FSM (idle/fetch/wait/copy) that shares the data-memory
// port with the pipeline's loads and stores, yielding to them under
// contention.
//
// Grounded directly on sp.c's dma_ctl: there is no teacher analogue
// for a DMA engine, so this package's shape (an explicit State
// enumeration plus a single Tick method taking the port-contention
// signal) follows the same current/next snapshot discipline used
// throughout timing/pipeline, applied to this smaller state machine.
package dma

import "github.com/archlab/spsim/sram"

// State is one of the DMA FSM's four states.
type State uint8

const (
	Idle State = iota
	Fetch
	Wait
	Copy
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Fetch:
		return "fetch"
	case Wait:
		return "wait"
	case Copy:
		return "copy"
	default:
		return "unknown"
	}
}

// Engine holds the DMA FSM's state and its copy parameters.
type Engine struct {
	state State
	src   uint32
	dst   uint32
	len   uint32
	busy  bool

	// start is the "kick" signal: raised by a retiring CPY instruction,
	// cleared by the FSM once the copy it requested has begun its last
	// word. It persists across cycles independently of state so a CPY
	// issued while a previous copy is still draining is not lost.
	start bool
}

// New creates an idle DMA engine.
func New() *Engine {
	return &Engine{}
}

// State returns the current FSM state.
func (e *Engine) State() State {
	return e.state
}

// Busy reports whether the DMA engine is currently active. This is
// exactly what a POL instruction reads.
func (e *Engine) Busy() bool {
	return e.busy
}

// Start latches a new block-copy request: src/dst/len, and raises the
// start signal if one is not already pending. Called when a CPY
// instruction retires at Execute1.
func (e *Engine) Start(src, dst, len uint32) {
	if !e.start {
		e.start = true
	}
	e.src = src
	e.dst = dst
	e.len = len
}

// Tick advances the FSM by one cycle. memBusy reports whether the
// pipeline holds the data-memory port this cycle (per
// pipeline-port-contention in spec.md §4.9); the DMA has strictly
// lower priority and stalls in Wait whenever the port is contended.
// port is the shared data-memory port the DMA reads from and writes
// to during Copy.
func (e *Engine) Tick(memBusy bool, port *sram.Port) {
	switch e.state {
	case Idle:
		e.busy = false
		if e.start {
			e.state = Fetch
			e.busy = true
		}

	case Fetch:
		if !memBusy {
			port.Read(e.src)
			e.state = Copy
		} else {
			e.state = Wait
		}

	case Wait:
		if !memBusy {
			e.state = Fetch
		}
		// else: remain in Wait.

	case Copy:
		// The reference model re-extracts combinationally at the
		// source address rather than consuming the latch set up by
		// the Fetch state's read — sp.c's dma_ctl uses
		// llsim_mem_extract, not llsim_mem_extract_dataout, here.
		dataout := port.Extract(e.src)
		port.Write(e.dst, dataout)

		wasLen := e.len
		e.src++
		e.dst++
		e.len--

		if wasLen == 0 {
			e.start = false
		}

		// The transition to Idle is keyed on the pre-decrement length
		// (wasLen), not the post-decrement one: sp.c's dma_ctl checks
		// spro->dma_len (the current/old snapshot) after computing
		// sprn->dma_len, so a CPY issued with len=0 still performs
		// exactly one copy before halting the FSM (spec.md §7's
		// "misaligned DMA length underflow" note).
		if wasLen == 0 {
			e.state = Idle
			e.busy = false
		} else {
			e.state = Fetch
		}
	}
}

// Reset returns the engine to Idle with every parameter cleared.
func (e *Engine) Reset() {
	*e = Engine{}
}
