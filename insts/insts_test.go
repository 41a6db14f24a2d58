package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archlab/spsim/insts"
)

var _ = Describe("Decode", func() {
	It("splits opcode/dst/src0/src1/imm fields", func() {
		// ADD r2, r3, r4 -> opcode=0 dst=2 src0=3 src1=4 imm=0
		word := uint32(0)<<25 | uint32(2)<<22 | uint32(3)<<19 | uint32(4)<<16
		d := insts.Decode(word)
		Expect(d.Opcode).To(Equal(insts.ADD))
		Expect(d.Dst).To(Equal(2))
		Expect(d.Src0).To(Equal(3))
		Expect(d.Src1).To(Equal(4))
		Expect(d.Immediate).To(Equal(int32(0)))
	})

	It("sign-extends 0x8000 to 0xFFFF8000", func() {
		word := uint32(0x8000)
		d := insts.Decode(word)
		Expect(d.Immediate).To(Equal(int32(-32768)))
		Expect(uint32(d.Immediate)).To(Equal(uint32(0xFFFF8000)))
	})

	It("leaves 0x7FFF as 0x00007FFF", func() {
		d := insts.Decode(0x7FFF)
		Expect(d.Immediate).To(Equal(int32(0x7FFF)))
	})

	It("extracts just the opcode via RawOpcode", func() {
		word := uint32(insts.HLT) << 25
		Expect(insts.RawOpcode(word)).To(Equal(insts.HLT))
	})
})

var _ = Describe("Op", func() {
	It("names defined opcodes", func() {
		Expect(insts.ADD.String()).To(Equal("ADD"))
		Expect(insts.HLT.String()).To(Equal("HLT"))
	})

	It("reports UNDEF for reserved encodings", func() {
		undef := insts.Op(13)
		Expect(undef.Defined()).To(BeFalse())
		Expect(undef.String()).To(Equal("UNDEF"))
	})

	It("classifies ALU opcodes, including POL", func() {
		Expect(insts.ADD.IsALU()).To(BeTrue())
		Expect(insts.POL.IsALU()).To(BeTrue())
		Expect(insts.LD.IsALU()).To(BeFalse())
	})

	It("classifies conditional and unconditional branches", func() {
		Expect(insts.JEQ.IsCondBranch()).To(BeTrue())
		Expect(insts.JIN.IsUncondBranch()).To(BeTrue())
		Expect(insts.JIN.IsCondBranch()).To(BeFalse())
		Expect(insts.JEQ.IsBranch()).To(BeTrue())
	})

	It("classifies DMA-touching opcodes as CPY and POL together", func() {
		Expect(insts.CPY.IsDMA()).To(BeTrue())
		Expect(insts.POL.IsDMA()).To(BeTrue())
		Expect(insts.LD.IsDMA()).To(BeFalse())
	})
})
