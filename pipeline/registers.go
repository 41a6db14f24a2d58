// Package pipeline implements the SP's six-stage in-order pipeline:
// Fetch0/Fetch1/Decode0/Decode1/Execute0/Execute1, their hazard
// analysis, the bypass network, and the misprediction flush.
//
// Every stage is double-buffered (current/next): reads inside a tick
// always observe the frozen current snapshot, writes always populate
// a distinct next snapshot, and the two are swapped once at the tick
// boundary. This mirrors the teacher's ifid/idex/exmem/memwb-plus-next
// pairing in timing/pipeline/pipeline.go and registers.go, generalised
// from four stages to six and from a single forwarding network to the
// three comparison sites this machine analyzes hazards at.
package pipeline

import "github.com/archlab/spsim/insts"

// Fetch0 holds the state of the pipeline's perpetual fetch head. It is
// active on every cycle after the first; only its PC is redirected by
// a flush.
type Fetch0 struct {
	Active bool
	PC     uint32 // 16-bit PC, masked to 0xffff
}

// Fetch1 holds a fetched PC in flight to Decode0.
type Fetch1 struct {
	Active bool
	PC     uint32
}

// Decode0 holds a raw instruction word awaiting field decode.
type Decode0 struct {
	Active bool
	PC     uint32
	Inst   uint32
}

// Decode1 holds a decoded instruction awaiting operand resolution.
type Decode1 struct {
	Active    bool
	PC        uint32
	Inst      uint32
	Opcode    insts.Op
	Dst       int
	Src0      int
	Src1      int
	Immediate int32
}

// Execute0 holds an instruction with both operands resolved (via
// bypass or plain register read), awaiting ALU computation.
type Execute0 struct {
	Active    bool
	PC        uint32
	Inst      uint32
	Opcode    insts.Op
	Dst       int
	Src0      int
	Src1      int
	Immediate int32
	ALU0      int32
	ALU1      int32
}

// Execute1 holds a computed instruction awaiting write-back.
type Execute1 struct {
	Active    bool
	PC        uint32
	Inst      uint32
	Opcode    insts.Op
	Dst       int
	Src0      int
	Src1      int
	Immediate int32
	ALU0      int32
	ALU1      int32
	ALUOut    int32
}

// Snapshot bundles every stage's latched fields at one clock edge. The
// pipeline holds two: current (read from during a tick) and next
// (written to during the same tick).
type Snapshot struct {
	Fetch0   Fetch0
	Fetch1   Fetch1
	Decode0  Decode0
	Decode1  Decode1
	Execute0 Execute0
	Execute1 Execute1
}
