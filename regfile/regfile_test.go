package regfile_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archlab/spsim/regfile"
)

var _ = Describe("File", func() {
	var f *regfile.File

	BeforeEach(func() {
		f = &regfile.File{}
	})

	It("reads r0 as 0 even after a write attempt", func() {
		f.Write(0, 123)
		Expect(f.Read(0)).To(Equal(int32(0)))
	})

	It("suppresses writes to r1 via Write", func() {
		f.Write(1, 999)
		Expect(f.Read(1)).To(Equal(int32(0)))
	})

	It("materialises immediates into r1 via WriteImmediate", func() {
		f.WriteImmediate(0x5678)
		Expect(f.Read(1)).To(Equal(int32(0x5678)))
	})

	It("writes and reads registers 2-7 normally", func() {
		f.Write(2, -5)
		f.Write(7, 42)
		Expect(f.Read(2)).To(Equal(int32(-5)))
		Expect(f.Read(7)).To(Equal(int32(42)))
	})

	It("resets every register to 0", func() {
		f.Write(3, 10)
		f.Reset()
		Expect(f.Read(3)).To(Equal(int32(0)))
	})

	It("snapshots with r0 forced to 0", func() {
		f.Write(4, 7)
		snap := f.Snapshot()
		Expect(snap[0]).To(Equal(int32(0)))
		Expect(snap[4]).To(Equal(int32(7)))
	})

	It("copies another file's contents via CopyFrom", func() {
		src := &regfile.File{}
		src.Write(5, 99)
		f.CopyFrom(src)
		Expect(f.Read(5)).To(Equal(int32(99)))
	})
})
