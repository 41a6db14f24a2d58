package pipeline

import "github.com/archlab/spsim/insts"

func isLoadStore(op insts.Op) bool { return op == insts.LD || op == insts.ST }

// doFetch0 is the pipeline's perpetual fetch head: it is active every
// cycle (forced by the machine's permanent "start" condition) and
// only ever has its PC redirected, by a later stage's flush.
func (p *Pipeline) doFetch0() {
	p.next.Fetch0.Active = true
	p.next.Fetch1.Active = false

	if p.cur.Fetch0.Active {
		p.Srami.Read(p.cur.Fetch0.PC)
		p.next.Fetch0.PC = (p.cur.Fetch0.PC + 1) & 0xffff
		p.next.Fetch1.Active = true
		p.next.Fetch1.PC = p.cur.Fetch0.PC
	}
}

// doFetch1 retrieves the word Fetch0 fetched last cycle. The retrieval
// is a combinational re-read at the held PC (not the latched Dataout)
// — the reference model's fetch path never consults the read/latch
// discipline at all, only the data-memory loads do.
func (p *Pipeline) doFetch1() {
	if !p.cur.Fetch1.Active {
		p.next.Decode0.Active = false
		return
	}
	p.next.Decode0.Inst = p.Srami.Extract(p.cur.Fetch1.PC)
	p.next.Decode0.Active = true
	p.next.Decode0.PC = p.cur.Fetch1.PC
}

// doDecode0 runs the speculative branch check, then (independently)
// either freezes for the store-then-load hazard or decodes into
// Decode1.
func (p *Pipeline) doDecode0() {
	if !p.cur.Decode0.Active {
		p.next.Decode1.Active = false
		return
	}

	rawOp := insts.RawOpcode(p.cur.Decode0.Inst)
	if rawOp.IsCondBranch() && p.pred.PredictTaken() {
		p.flushDecode0(p.cur.Decode0.Inst & 0xffff)
	}

	if NeedsDecode0Freeze(&p.cur) {
		p.stallDecode0()
		return
	}

	d := insts.Decode(p.cur.Decode0.Inst)
	p.next.Decode1 = Decode1{
		Active:    true,
		PC:        p.cur.Decode0.PC,
		Inst:      p.cur.Decode0.Inst,
		Opcode:    d.Opcode,
		Dst:       d.Dst,
		Src0:      d.Src0,
		Src1:      d.Src1,
		Immediate: d.Immediate,
	}
}

// flushDecode0 redirects Fetch0 to target and discards whatever
// Fetch0/Fetch1 had already computed for next, on a speculatively
// predicted-taken conditional branch. It does not touch Decode1:
// Decode0's own hazard-check/decode proceeds independently afterward.
func (p *Pipeline) flushDecode0(target uint32) {
	p.next.Fetch0.Active = true
	p.next.Fetch0.PC = target
	p.next.Fetch1.Active = false
	p.next.Decode0.Active = false
	p.Stats.Flushes++
}

// stallDecode0 freezes the whole front end for one cycle: the
// just-fetched word sitting in Fetch1 is pushed back into Fetch0 (to
// be re-fetched once Decode0 is free), Decode0 holds its current
// instruction, and Decode1 goes inactive — all overriding whatever
// Fetch0/Fetch1 already wrote into next this cycle.
func (p *Pipeline) stallDecode0() {
	p.next.Fetch0.Active = p.cur.Fetch1.Active
	p.next.Fetch0.PC = p.cur.Fetch1.PC
	p.next.Fetch1.Active = false

	p.next.Decode0.Active = p.cur.Decode0.Active
	p.next.Decode0.PC = p.cur.Decode0.PC
	p.next.Decode0.Inst = p.cur.Decode0.Inst

	p.next.Decode1.Active = false
	p.Stats.Stalls++
}

// doDecode1 resolves operands (with bypass) and latches into
// Execute0, or freezes on a DataStall.
func (p *Pipeline) doDecode1() {
	if !p.cur.Decode1.Active {
		p.next.Execute0.Active = false
		return
	}

	if Decode1Stall(&p.cur) {
		p.stallDecode1()
		return
	}

	alu0 := p.resolveDecode1Operand(p.cur.Decode1.Src0, p.cur.Decode1.Immediate)
	alu1 := p.resolveDecode1Operand(p.cur.Decode1.Src1, p.cur.Decode1.Immediate)

	p.next.Execute0 = Execute0{
		Active:    true,
		PC:        p.cur.Decode1.PC,
		Inst:      p.cur.Decode1.Inst,
		Opcode:    p.cur.Decode1.Opcode,
		Dst:       p.cur.Decode1.Dst,
		Src0:      p.cur.Decode1.Src0,
		Src1:      p.cur.Decode1.Src1,
		Immediate: p.cur.Decode1.Immediate,
		ALU0:      alu0,
		ALU1:      alu1,
	}
}

// resolveDecode1Operand reads one Decode1 source operand: r0 reads as
// 0, r1 reads as this instruction's immediate (which also gets
// materialised into the register file, mirroring the reference
// model's "r1 doubles as the immediate carrier" convention), r2-r7
// resolve through the Decode1 bypass network.
func (p *Pipeline) resolveDecode1Operand(reg int, immediate int32) int32 {
	switch reg {
	case 0:
		return 0
	case 1:
		p.nextRegs.WriteImmediate(immediate)
		return immediate
	default:
		switch Decode1SrcHazard(&p.cur, reg) {
		case CtrlHazard:
			return int32(p.cur.Execute1.PC)
		case DataHazard:
			return int32(p.Sramd.Dataout())
		case RegHazard:
			return p.cur.Execute1.ALUOut
		default:
			return p.regs.Read(reg)
		}
	}
}

// stallDecode1 injects a one-cycle NOP bubble into Execute0 and holds
// the entire front end (Fetch0 through Decode1) at its current
// contents, discarding whatever those stages already computed for
// next this cycle.
func (p *Pipeline) stallDecode1() {
	p.next.Execute1.Active = false

	p.next.Execute0 = Execute0{Active: true, Opcode: insts.NOP}

	p.next.Fetch0 = p.cur.Fetch0
	p.next.Fetch1 = p.cur.Fetch1
	p.next.Decode0 = p.cur.Decode0
	p.next.Decode1 = p.cur.Decode1

	p.Stats.Stalls++
}

// doExecute0 computes the ALU result (with the late bypass for
// operands not already resolved at Decode1) and latches it into
// Execute1, or lets a NOP bubble pass through inactive.
func (p *Pipeline) doExecute0() {
	if !p.cur.Execute0.Active {
		p.next.Execute1.Active = false
		return
	}

	if p.cur.Execute0.Opcode == insts.NOP {
		p.next.Execute1 = p.cur.Execute1
		p.next.Execute1.Active = false
		return
	}

	alu0 := p.cur.Execute0.ALU0
	alu1 := p.cur.Execute0.ALU1

	switch Execute0SrcHazard(&p.cur, p.cur.Execute0.Src0) {
	case CtrlHazard:
		alu0 = int32(p.cur.Execute1.PC)
	case RegHazard:
		alu0 = p.cur.Execute1.ALUOut
	}
	switch Execute0SrcHazard(&p.cur, p.cur.Execute0.Src1) {
	case CtrlHazard:
		alu1 = int32(p.cur.Execute1.PC)
	case RegHazard:
		alu1 = p.cur.Execute1.ALUOut
	}

	if p.cur.Execute0.Opcode == insts.LD {
		p.Sramd.Read(uint32(alu1))
	}

	aluout := p.computeALU(p.cur.Execute0.Opcode, alu0, alu1)

	p.next.Execute1 = Execute1{
		Active:    true,
		PC:        p.cur.Execute0.PC,
		Inst:      p.cur.Execute0.Inst,
		Opcode:    p.cur.Execute0.Opcode,
		Dst:       p.cur.Execute0.Dst,
		Src0:      p.cur.Execute0.Src0,
		Src1:      p.cur.Execute0.Src1,
		Immediate: p.cur.Execute0.Immediate,
		ALU0:      alu0,
		ALU1:      alu1,
		ALUOut:    aluout,
	}
}

// computeALU executes opcode against the (already bypass-resolved)
// operands. LD/ST/CPY/HLT/NOP/undefined opcodes produce no ALU result
// of their own; the field is left zero.
//
// POL is deliberately given a clean, self-contained case: the
// reference source's POL case has no break and falls through into
// JLT's comparison, silently overwriting the busy flag it just
// computed. That is a defect in the reference, not a behavior worth
// reproducing, so POL here ends its own case normally.
func (p *Pipeline) computeALU(op insts.Op, alu0, alu1 int32) int32 {
	switch op {
	case insts.ADD:
		return alu0 + alu1
	case insts.SUB:
		return alu0 - alu1
	case insts.LSF:
		return alu0 << uint32(alu1)
	case insts.RSF:
		return alu0 >> uint32(alu1)
	case insts.AND:
		return alu0 & alu1
	case insts.OR:
		return alu0 | alu1
	case insts.XOR:
		return alu0 ^ alu1
	case insts.LHI:
		return (alu0 & 0xffff) | (alu1 << 16)
	case insts.POL:
		return boolToInt32((p.cur.Execute1.Active && p.cur.Execute1.Opcode == insts.CPY) || p.dma.Busy())
	case insts.JLT:
		return boolToInt32(alu0 < alu1)
	case insts.JLE:
		return boolToInt32(alu0 <= alu1)
	case insts.JEQ:
		return boolToInt32(alu0 == alu1)
	case insts.JNE:
		return boolToInt32(alu0 != alu1)
	case insts.JIN:
		return 1
	default:
		return 0
	}
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// doExecute1 retires the instruction that reached Execute1 last cycle:
// register write-back, the data-memory store, the DMA kickoff, or the
// branch outcome. HLT stops the machine outright.
func (p *Pipeline) doExecute1() {
	if !p.cur.Execute1.Active {
		return
	}

	e := p.cur.Execute1
	if e.Opcode == insts.HLT {
		p.halted = true
		return
	}

	switch e.Opcode {
	case insts.ADD, insts.SUB, insts.LSF, insts.RSF, insts.AND, insts.OR, insts.XOR, insts.LHI, insts.POL:
		if e.Dst > 1 {
			p.nextRegs.Write(e.Dst, e.ALUOut)
		}
		p.Stats.Retired++

	case insts.LD:
		if e.Dst > 1 {
			p.nextRegs.Write(e.Dst, int32(p.Sramd.Extract(uint32(e.ALU1))))
		}
		p.Stats.Retired++

	case insts.ST:
		p.Sramd.Write(uint32(e.ALU1), uint32(e.ALU0))
		p.Stats.Retired++

	case insts.CPY:
		p.dma.Start(uint32(e.ALU0), uint32(p.regs.Read(e.Dst)), uint32(e.ALU1))
		p.Stats.Retired++

	case insts.JLT, insts.JLE, insts.JEQ, insts.JNE, insts.JIN:
		p.predictBranch(e)
		p.Stats.Retired++
	}
}

// predictBranch resolves the branch retiring in e: it updates the
// global predictor counter (conditional branches only), writes the
// link register, computes the architecturally-correct next PC, and
// flushes the pipeline if any in-flight stage is already running down
// a different path.
func (p *Pipeline) predictBranch(e Execute1) {
	var pc uint32

	if e.Opcode.IsCondBranch() {
		taken := e.ALUOut != 0
		if taken {
			p.nextRegs.Write(7, int32(e.PC))
			pc = uint32(e.Immediate) & 0xffff
		} else {
			pc = (e.PC + 1) & 0xffff
		}
		p.pred.Update(taken)
	} else { // JIN
		p.nextRegs.Write(7, int32(e.PC))
		pc = uint32(e.ALU0) & 0xffff
	}

	if (p.cur.Fetch0.Active && p.cur.Fetch0.PC != pc) ||
		(p.cur.Fetch1.Active && p.cur.Fetch1.PC != pc) ||
		(p.cur.Decode0.Active && p.cur.Decode0.PC != pc) ||
		(p.cur.Decode1.Active && p.cur.Decode1.PC != pc) ||
		(p.cur.Execute0.Active && p.cur.Execute0.PC != pc) {
		p.flushExecute1(pc)
	}
}

// flushExecute1 is the full-pipeline misprediction recovery: every
// younger stage is killed and Fetch0 resumes at pc.
func (p *Pipeline) flushExecute1(pc uint32) {
	p.next.Execute1.Active = false
	p.next.Execute0.Active = false
	p.next.Decode1.Active = false
	p.next.Decode0.Active = false
	p.next.Fetch1.Active = false
	p.next.Fetch0.Active = true
	p.next.Fetch0.PC = pc
	p.Stats.Mispredicts++
}
