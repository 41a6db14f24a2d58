package sram_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archlab/spsim/sram"
)

var _ = Describe("Port", func() {
	var p *sram.Port

	BeforeEach(func() {
		p = sram.NewPort()
	})

	It("starts zeroed", func() {
		Expect(p.Extract(0)).To(Equal(uint32(0)))
		Expect(p.Dataout()).To(Equal(uint32(0)))
	})

	It("commits writes immediately", func() {
		p.Write(0x100, 0xDEADBEEF)
		Expect(p.Extract(0x100)).To(Equal(uint32(0xDEADBEEF)))
	})

	It("latches a read into Dataout as soon as it is issued", func() {
		p.Inject(0x10, 0x12345678)
		p.Read(0x10)
		Expect(p.Dataout()).To(Equal(uint32(0x12345678)))
	})

	It("wraps addresses to the 64K word space", func() {
		p.Write(sram.Height, 7)
		Expect(p.Extract(0)).To(Equal(uint32(7)))
	})

	It("injects without going through the latch discipline", func() {
		p.Inject(5, 42)
		Expect(p.Extract(5)).To(Equal(uint32(42)))
	})

	It("dumps the full array in address order", func() {
		p.Inject(0, 1)
		p.Inject(1, 2)
		dump := p.Dump()
		Expect(dump[0]).To(Equal(uint32(1)))
		Expect(dump[1]).To(Equal(uint32(2)))
		Expect(len(dump)).To(Equal(sram.Height))
	})
})
