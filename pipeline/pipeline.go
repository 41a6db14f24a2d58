package pipeline

import (
	"github.com/archlab/spsim/dma"
	"github.com/archlab/spsim/predictor"
	"github.com/archlab/spsim/regfile"
	"github.com/archlab/spsim/sram"
)

// Stats accumulates simple run statistics alongside the architectural
// simulation — these are not part of the target ISA, only an
// observability convenience for callers (spec.md's ambient run
// statistics / CPI reporting).
type Stats struct {
	Cycles      uint32
	Retired     uint32
	Stalls      uint32
	Flushes     uint32
	Mispredicts uint32
}

// Pipeline ties together the register file, the two memory ports, the
// branch predictor, and the DMA engine into one ticking machine.
//
// Every tick reads exclusively from the current snapshot (cur) and
// writes exclusively into the next snapshot (next); next starts each
// tick as a full copy of cur (mirroring the reference model's
// old/new register-pair convention, where fields a stage does not
// touch simply carry forward) and is swapped into cur once all six
// stages and the DMA engine have run.
type Pipeline struct {
	Srami *sram.Port
	Sramd *sram.Port

	pred *predictor.Predictor
	dma  *dma.Engine

	regs     *regfile.File
	nextRegs *regfile.File

	cur  Snapshot
	next Snapshot

	halted bool

	Stats Stats
}

// New creates a pipeline around the given instruction and data memory
// ports. Both should already hold the loaded program image.
func New(srami, sramd *sram.Port) *Pipeline {
	return &Pipeline{
		Srami:    srami,
		Sramd:    sramd,
		pred:     predictor.New(),
		dma:      dma.New(),
		regs:     &regfile.File{},
		nextRegs: &regfile.File{},
	}
}

// Halted reports whether a HLT has retired.
func (p *Pipeline) Halted() bool { return p.halted }

// Registers returns a snapshot of the architectural register file.
func (p *Pipeline) Registers() [regfile.Count]int32 { return p.regs.Snapshot() }

// Current returns the pipeline's current (frozen) snapshot, for trace
// sinks and tests.
func (p *Pipeline) Current() Snapshot { return p.cur }

// PredictorCounter exposes the shared branch counter, read-only, for
// trace output.
func (p *Pipeline) PredictorCounter() uint8 { return p.pred.Counter() }

// DMA exposes the DMA engine's state, read-only, for trace output.
func (p *Pipeline) DMA() *dma.Engine { return p.dma }

// Tick advances the whole machine by one clock cycle: the six stages
// in order (Fetch0, Fetch1, Decode0, Decode1, Execute0, Execute1),
// then the DMA engine, observing whatever port contention the
// pipeline asserted this cycle. A no-op once Halted.
func (p *Pipeline) Tick() {
	if p.halted {
		return
	}

	p.next = p.cur
	p.nextRegs.CopyFrom(p.regs)

	p.doFetch0()
	p.doFetch1()
	p.doDecode0()
	p.doDecode1()
	p.doExecute0()
	p.doExecute1()

	// Port contention is keyed purely on opcode value, with no Active
	// gating — exactly as sp.c's dma_ctl caller checks sprn->dec1_opcode
	// et al. A stage's opcode field is "sticky": it only changes when a
	// new instruction (or an explicit NOP bubble) actually occupies
	// that stage, not when the stage merely goes inactive. So a LD/ST
	// that once passed through a stage can continue to assert
	// contention from that same field even after the stage has gone
	// idle, until something else occupies it.
	memBusy := isLoadStore(p.next.Decode1.Opcode) ||
		isLoadStore(p.next.Execute0.Opcode) ||
		isLoadStore(p.next.Execute1.Opcode)
	p.dma.Tick(memBusy, p.Sramd)

	p.cur = p.next
	p.regs.CopyFrom(p.nextRegs)
	p.Stats.Cycles++
}
