// Package trace writes the per-cycle architectural trace and the
// post-halt SRAM dumps a run of the pipeline produces, in the same
// line-oriented, one-field-per-line text format and field order the
// reference hardware model emits from its own cycle_trace_fp/dump_sram
// routines.
package trace

import (
	"bufio"
	"fmt"
	"io"

	"github.com/archlab/spsim/pipeline"
	"github.com/archlab/spsim/regfile"
	"github.com/archlab/spsim/sram"
)

// CycleWriter appends one cycle's worth of architectural state to an
// underlying writer, in %08x-per-field form. Callers create one per
// run and call Write once per tick, mirroring the reference model
// calling its dump routine from inside sp_ctl every cycle.
type CycleWriter struct {
	w   *bufio.Writer
	seq uint32
}

// NewCycleWriter wraps w for cycle-trace output.
func NewCycleWriter(w io.Writer) *CycleWriter {
	return &CycleWriter{w: bufio.NewWriter(w)}
}

// Write appends the trace block for one completed cycle: a decimal
// "cycle %d" header, then the cycle counter, architectural registers
// r2..r7, and every pipeline stage's latched fields, each printed as
// "name %08x" one per line, with a blank line terminating the block. r0 and r1 are omitted: they are
// hardwired (always zero, or the immediate carrier) rather than
// independent architectural state, and sp.c's own cycle-trace loop
// (`for (i = 2; i <= 7; i++)`) skips them too.
func (c *CycleWriter) Write(cur pipeline.Snapshot, regs [regfile.Count]int32) error {
	c.seq++
	fmt.Fprintf(c.w, "cycle %d\n", c.seq)
	fmt.Fprintf(c.w, "cycle_counter %08x\n", c.seq)

	for i := 2; i < len(regs); i++ {
		fmt.Fprintf(c.w, "r%d %08x\n", i, uint32(regs[i]))
	}

	fmt.Fprintf(c.w, "fetch0_active %08x\n", b2u(cur.Fetch0.Active))
	fmt.Fprintf(c.w, "fetch0_pc %08x\n", cur.Fetch0.PC)

	fmt.Fprintf(c.w, "fetch1_active %08x\n", b2u(cur.Fetch1.Active))
	fmt.Fprintf(c.w, "fetch1_pc %08x\n", cur.Fetch1.PC)

	fmt.Fprintf(c.w, "dec0_active %08x\n", b2u(cur.Decode0.Active))
	fmt.Fprintf(c.w, "dec0_pc %08x\n", cur.Decode0.PC)
	fmt.Fprintf(c.w, "dec0_inst %08x\n", cur.Decode0.Inst)

	fmt.Fprintf(c.w, "dec1_active %08x\n", b2u(cur.Decode1.Active))
	fmt.Fprintf(c.w, "dec1_pc %08x\n", cur.Decode1.PC)
	fmt.Fprintf(c.w, "dec1_inst %08x\n", cur.Decode1.Inst)
	fmt.Fprintf(c.w, "dec1_opcode %08x\n", uint32(cur.Decode1.Opcode))
	fmt.Fprintf(c.w, "dec1_src0 %08x\n", uint32(cur.Decode1.Src0))
	fmt.Fprintf(c.w, "dec1_src1 %08x\n", uint32(cur.Decode1.Src1))
	fmt.Fprintf(c.w, "dec1_dst %08x\n", uint32(cur.Decode1.Dst))
	fmt.Fprintf(c.w, "dec1_immediate %08x\n", uint32(cur.Decode1.Immediate))

	fmt.Fprintf(c.w, "exec0_active %08x\n", b2u(cur.Execute0.Active))
	fmt.Fprintf(c.w, "exec0_pc %08x\n", cur.Execute0.PC)
	fmt.Fprintf(c.w, "exec0_inst %08x\n", cur.Execute0.Inst)
	fmt.Fprintf(c.w, "exec0_opcode %08x\n", uint32(cur.Execute0.Opcode))
	fmt.Fprintf(c.w, "exec0_src0 %08x\n", uint32(cur.Execute0.Src0))
	fmt.Fprintf(c.w, "exec0_src1 %08x\n", uint32(cur.Execute0.Src1))
	fmt.Fprintf(c.w, "exec0_dst %08x\n", uint32(cur.Execute0.Dst))
	fmt.Fprintf(c.w, "exec0_immediate %08x\n", uint32(cur.Execute0.Immediate))
	fmt.Fprintf(c.w, "exec0_alu0 %08x\n", uint32(cur.Execute0.ALU0))
	fmt.Fprintf(c.w, "exec0_alu1 %08x\n", uint32(cur.Execute0.ALU1))

	fmt.Fprintf(c.w, "exec1_active %08x\n", b2u(cur.Execute1.Active))
	fmt.Fprintf(c.w, "exec1_pc %08x\n", cur.Execute1.PC)
	fmt.Fprintf(c.w, "exec1_inst %08x\n", cur.Execute1.Inst)
	fmt.Fprintf(c.w, "exec1_opcode %08x\n", uint32(cur.Execute1.Opcode))
	fmt.Fprintf(c.w, "exec1_src0 %08x\n", uint32(cur.Execute1.Src0))
	fmt.Fprintf(c.w, "exec1_src1 %08x\n", uint32(cur.Execute1.Src1))
	fmt.Fprintf(c.w, "exec1_dst %08x\n", uint32(cur.Execute1.Dst))
	fmt.Fprintf(c.w, "exec1_immediate %08x\n", uint32(cur.Execute1.Immediate))
	fmt.Fprintf(c.w, "exec1_alu0 %08x\n", uint32(cur.Execute1.ALU0))
	fmt.Fprintf(c.w, "exec1_alu1 %08x\n", uint32(cur.Execute1.ALU1))
	fmt.Fprintf(c.w, "exec1_aluout %08x\n", uint32(cur.Execute1.ALUOut))

	fmt.Fprintf(c.w, "\n")

	return c.w.Flush()
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// WriteVerboseEcho writes a condensed, human-readable summary of one
// cycle to w: the cycle count, r2..r7, and every stage's active flag
// and PC, each line prefixed "cycle %d: ". This mirrors sp.c's
// sp_printf console echo (the verbose counterpart to its
// cycle_trace_fp dump, printed from the same place in sp_ctl every
// cycle) rather than the full per-field trace block CycleWriter
// writes to file.
func WriteVerboseEcho(w io.Writer, cycle uint32, cur pipeline.Snapshot, regs [regfile.Count]int32) {
	fmt.Fprintf(w, "cycle %d: cycle_counter %08x\n", cycle, cycle)
	fmt.Fprintf(w, "cycle %d: r2 %08x, r3 %08x\n", cycle, uint32(regs[2]), uint32(regs[3]))
	fmt.Fprintf(w, "cycle %d: r4 %08x, r5 %08x, r6 %08x, r7 %08x\n", cycle,
		uint32(regs[4]), uint32(regs[5]), uint32(regs[6]), uint32(regs[7]))
	fmt.Fprintf(w, "cycle %d: fetch0_active %d, fetch1_active %d, dec0_active %d, dec1_active %d, exec0_active %d, exec1_active %d\n",
		cycle, b2u(cur.Fetch0.Active), b2u(cur.Fetch1.Active), b2u(cur.Decode0.Active),
		b2u(cur.Decode1.Active), b2u(cur.Execute0.Active), b2u(cur.Execute1.Active))
	fmt.Fprintf(w, "cycle %d: fetch0_pc %d, fetch1_pc %d, dec0_pc %d, dec1_pc %d, exec0_pc %d, exec1_pc %d\n",
		cycle, cur.Fetch0.PC, cur.Fetch1.PC, cur.Decode0.PC, cur.Decode1.PC, cur.Execute0.PC, cur.Execute1.PC)
}

// DumpSRAM writes every word of port, address 0 first, one "%08x" hex
// line per word, to w. Used for the post-halt srami_out.txt/sramd_out.txt
// images.
func DumpSRAM(w io.Writer, port *sram.Port) error {
	bw := bufio.NewWriter(w)
	words := port.Dump()
	for _, word := range words {
		if _, err := fmt.Fprintf(bw, "%08x\n", word); err != nil {
			return err
		}
	}
	return bw.Flush()
}
