// Package regfile provides the SP processor's architectural register
// file: eight 32-bit signed registers with hardwired roles for r0
// (zero), r1 (immediate carrier), and r7 (link/return).
package regfile

// Count is the number of architectural registers.
const Count = 8

// File holds the eight architectural registers r0..r7.
type File struct {
	r [Count]int32
}

// Read returns the value of register i. r0 always reads 0 regardless
// of any write ever issued to it.
func (f *File) Read(i int) int32 {
	if i == 0 {
		return 0
	}
	return f.r[i]
}

// Write commits value to register i. Writes to r0 and r1 are
// suppressed (dst>1 guard in the reference model); all other
// commits, including to r7, are ordinary writes from the caller's
// perspective — r7's "link register" role is a convention of what
// Execute1 writes to it, not a hardware restriction here.
func (f *File) Write(i int, value int32) {
	if i <= 1 {
		return
	}
	f.r[i] = value
}

// WriteImmediate materialises the currently-issued instruction's
// sign-extended immediate into r1, as the reference model does
// whenever either source operand selects register 1. This bypasses
// the dst>1 guard because it is not a register-file commit in the
// ISA sense — it is the microarchitecture exposing r1's carrier role.
func (f *File) WriteImmediate(value int32) {
	f.r[1] = value
}

// Snapshot returns a copy of all eight registers, r0 forced to 0.
func (f *File) Snapshot() [Count]int32 {
	s := f.r
	s[0] = 0
	return s
}

// Reset zeros every register.
func (f *File) Reset() {
	f.r = [Count]int32{}
}

// CopyFrom overwrites f's contents with src's. Used at the start of a
// pipeline tick to seed the next register snapshot from the current
// one, since only the registers a retiring instruction actually
// touches are rewritten during the tick — everything else must carry
// forward unchanged, mirroring the reference model's old/new register
// pair (new starts as a copy of old each cycle).
func (f *File) CopyFrom(src *File) {
	f.r = src.r
}
