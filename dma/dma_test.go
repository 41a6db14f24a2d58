package dma_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archlab/spsim/dma"
	"github.com/archlab/spsim/sram"
)

var _ = Describe("Engine", func() {
	var (
		e    *dma.Engine
		port *sram.Port
	)

	BeforeEach(func() {
		e = dma.New()
		port = sram.NewPort()
	})

	It("starts idle and not busy", func() {
		Expect(e.State()).To(Equal(dma.Idle))
		Expect(e.Busy()).To(BeFalse())
	})

	It("moves to fetch and raises busy once Start is called", func() {
		e.Start(0x200, 0x210, 4)
		e.Tick(false, port)
		Expect(e.State()).To(Equal(dma.Fetch))
		Expect(e.Busy()).To(BeTrue())
	})

	It("stalls in wait when the memory port is contended", func() {
		e.Start(0x200, 0x210, 4)
		e.Tick(false, port) // idle -> fetch
		e.Tick(true, port)  // fetch -> wait (port busy)
		Expect(e.State()).To(Equal(dma.Wait))
		e.Tick(true, port) // still contended
		Expect(e.State()).To(Equal(dma.Wait))
		e.Tick(false, port) // port frees -> fetch
		Expect(e.State()).To(Equal(dma.Fetch))
	})

	// Each copied word costs two ticks: one for Fetch (issue the read,
	// move to Copy) and one for Copy (perform the write, advance the
	// pointers, decide the next state from the pre-decrement length).
	It("copies a block word by word, one word per (fetch,copy) tick pair", func() {
		for i := uint32(0); i < 4; i++ {
			port.Inject(0x200+i, 0xA0+i)
		}

		e.Start(0x200, 0x210, 4)
		e.Tick(false, port) // idle -> fetch

		e.Tick(false, port) // fetch -> copy (issues read of word 0)
		e.Tick(false, port) // copy executes word 0, -> fetch
		Expect(port.Extract(0x210)).To(Equal(uint32(0xA0)))

		e.Tick(false, port) // fetch -> copy (word 1)
		e.Tick(false, port) // copy executes word 1, -> fetch
		Expect(port.Extract(0x211)).To(Equal(uint32(0xA1)))

		e.Tick(false, port) // fetch -> copy (word 2)
		e.Tick(false, port) // copy executes word 2, -> fetch
		Expect(port.Extract(0x212)).To(Equal(uint32(0xA2)))

		e.Tick(false, port) // fetch -> copy (word 3)
		e.Tick(false, port) // copy executes word 3: len 1 -> 0, wasLen==1 so -> fetch, not idle
		Expect(port.Extract(0x213)).To(Equal(uint32(0xA3)))
		Expect(e.State()).To(Equal(dma.Fetch))
	})

	// spec.md §7: the FSM checks the pre-decrement length to decide
	// whether to stop, so it performs one copy beyond the requested
	// length before halting — the len=N request actually moves N+1
	// words. This off-by-one must be reproduced exactly.
	It("reproduces the off-by-one: a copy of length N moves N+1 words before halting", func() {
		for i := uint32(0); i < 5; i++ {
			port.Inject(0x200+i, 0xB0+i)
		}

		e.Start(0x200, 0x210, 4)
		e.Tick(false, port) // idle -> fetch

		for i := 0; i < 4; i++ {
			e.Tick(false, port) // fetch -> copy
			e.Tick(false, port) // copy -> fetch (word i copied)
		}
		Expect(e.State()).To(Equal(dma.Fetch))
		Expect(e.Busy()).To(BeTrue())

		// One more (fetch,copy) pair for the extra word triggered by
		// the pre-decrement check, which also retires the FSM to idle.
		e.Tick(false, port) // fetch -> copy (extra word, src=0x204)
		e.Tick(false, port) // copy executes extra word, wasLen==0 -> idle

		Expect(port.Extract(0x210)).To(Equal(uint32(0xB0)))
		Expect(port.Extract(0x211)).To(Equal(uint32(0xB1)))
		Expect(port.Extract(0x212)).To(Equal(uint32(0xB2)))
		Expect(port.Extract(0x213)).To(Equal(uint32(0xB3)))
		Expect(port.Extract(0x214)).To(Equal(uint32(0xB4)))
		Expect(e.State()).To(Equal(dma.Idle))
		Expect(e.Busy()).To(BeFalse())
	})

	It("a CPY with len=0 still performs exactly one copy", func() {
		port.Inject(0x300, 0x42)
		e.Start(0x300, 0x310, 0)
		e.Tick(false, port) // idle -> fetch
		e.Tick(false, port) // fetch -> copy
		e.Tick(false, port) // copy executes: wasLen==0, start clears, -> idle
		Expect(port.Extract(0x310)).To(Equal(uint32(0x42)))
		Expect(e.State()).To(Equal(dma.Idle))
		Expect(e.Busy()).To(BeFalse())
	})
})
