// Package sram provides the single-ported synchronous SRAM abstraction
// shared by the instruction and data memories of the SP pipeline.
//
// A Port models one physical memory bank with exactly one outstanding
// access per cycle: Read and Write issue on the current cycle and the
// read result is consumed through Dataout on the following cycle,
// mirroring the llsim_mem_read/llsim_mem_extract_dataout
// discipline the reference hardware model uses.
package sram

// Height is the number of addressable 32-bit words (64K), per spec.
const Height = 64 * 1024

// Port is a single-ported 64K-word by 32-bit synchronous SRAM.
// Read latches its result into dataout as soon as it is called; the
// port has no clock of its own, so the one-cycle delay comes from
// callers reading Dataout on the cycle after the read. Writes take
// effect immediately against the backing array.
type Port struct {
	words [Height]uint32

	// dataout holds the word latched by the most recent Read.
	dataout uint32
}

// NewPort creates a zeroed memory port.
func NewPort() *Port {
	return &Port{}
}

// Read issues a synchronous read at addr, latching the word into
// Dataout at once; it stays there until the next Read.
func (p *Port) Read(addr uint32) {
	p.dataout = p.words[addr&(Height-1)]
}

// Write commits datain to addr immediately.
func (p *Port) Write(addr uint32, datain uint32) {
	p.words[addr&(Height-1)] = datain
}

// Dataout returns the word latched by the most recent Read.
func (p *Port) Dataout() uint32 {
	return p.dataout
}

// Extract reads the word at addr directly, bypassing the read/latch
// discipline. It mirrors llsim_mem_extract, used by the reference
// model for combinational peeks (e.g. instruction fetch-and-decode in
// the same cycle, or the final SRAM dump).
func (p *Port) Extract(addr uint32) uint32 {
	return p.words[addr&(Height-1)]
}

// Inject writes addr directly, bypassing the write/commit discipline.
// Used only at program-load time.
func (p *Port) Inject(addr uint32, value uint32) {
	p.words[addr&(Height-1)] = value
}

// Dump returns a copy of every word in the array, address 0 first,
// for the post-halt SRAM dump files.
func (p *Port) Dump() [Height]uint32 {
	return p.words
}
