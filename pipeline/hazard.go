package pipeline

import "github.com/archlab/spsim/insts"

// Hazard classifies what, if anything, a comparison site found. The
// ordering of the iota values doubles as the priority ordering used
// wherever more than one hazard condition could apply to the same
// operand: DataStall beats CtrlHazard beats DataHazard beats
// RegHazard, matching the if/else-if chain in the reference hazard
// checks (stall before ctrl before data before reg).
type Hazard uint8

const (
	NoHazard Hazard = iota
	DataStall
	CtrlHazard
	DataHazard
	RegHazard
)

// NeedsDecode0Freeze reports whether Decode0 must hold its current
// instruction for another cycle rather than handing it to Decode1:
// true exactly when Decode1 holds a ST and the word waiting in
// Decode0 decodes to a LD. A store followed immediately by a load
// cannot be allowed to race the store to the data-memory port, so the
// load is frozen in Decode0 for one cycle.
func NeedsDecode0Freeze(cur *Snapshot) bool {
	if !cur.Decode1.Active || cur.Decode1.Opcode != insts.ST {
		return false
	}
	return insts.RawOpcode(cur.Decode0.Inst) == insts.LD
}

// Decode1SrcHazard classifies the hazard affecting the Decode1 operand
// named by reg (the register index read from Decode1.Src0 or
// Decode1.Src1), checking in priority order against the instructions
// currently sitting in Execute0 and Execute1.
func Decode1SrcHazard(cur *Snapshot, reg int) Hazard {
	if cur.Execute0.Active && cur.Execute0.Opcode == insts.LD &&
		cur.Execute0.Dst == reg && reg > 1 {
		return DataStall
	}
	if cur.Execute1.Active && reg == 7 &&
		(cur.Execute1.Opcode == insts.JIN ||
			(cur.Execute1.Opcode.IsCondBranch() && cur.Execute1.ALUOut != 0)) {
		return CtrlHazard
	}
	if cur.Execute1.Active && cur.Execute1.Opcode == insts.LD &&
		cur.Execute1.Dst == reg {
		return DataHazard
	}
	if cur.Execute1.Active && cur.Execute1.Opcode.IsALU() &&
		cur.Execute1.Dst == reg {
		return RegHazard
	}
	return NoHazard
}

// Execute0SrcHazard classifies the late-bypass hazard affecting the
// Execute0 operand named by reg (Execute0.Src0 or Execute0.Src1),
// checked against the instruction now retiring in Execute1. Only
// CtrlHazard and RegHazard can occur at this site: any load that could
// have produced a DataStall or DataHazard for this operand was already
// resolved one cycle earlier, at Decode1.
func Execute0SrcHazard(cur *Snapshot, reg int) Hazard {
	if !cur.Execute1.Active || reg <= 1 {
		return NoHazard
	}
	if reg == 7 &&
		((cur.Execute1.Opcode.IsCondBranch() && cur.Execute1.ALUOut != 0) ||
			cur.Execute1.Opcode.IsUncondBranch()) {
		return CtrlHazard
	}
	if cur.Execute1.Opcode.IsALU() && cur.Execute1.Dst == reg {
		return RegHazard
	}
	return NoHazard
}

// Decode1Stall reports whether Decode1 must freeze this cycle: true
// when either operand's hazard classification is DataStall (an
// immediately-preceding LD in Execute0 targets a register this
// instruction reads).
func Decode1Stall(cur *Snapshot) bool {
	return Decode1SrcHazard(cur, cur.Decode1.Src0) == DataStall ||
		Decode1SrcHazard(cur, cur.Decode1.Src1) == DataStall
}
