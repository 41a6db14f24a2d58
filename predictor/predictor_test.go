package predictor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/archlab/spsim/predictor"
)

var _ = Describe("Predictor", func() {
	var p *predictor.Predictor

	BeforeEach(func() {
		p = predictor.New()
	})

	It("starts at 0 and predicts not-taken", func() {
		Expect(p.Counter()).To(Equal(uint8(0)))
		Expect(p.PredictTaken()).To(BeFalse())
	})

	It("increments by one on a taken update", func() {
		p.Update(true)
		Expect(p.Counter()).To(Equal(uint8(1)))
		Expect(p.PredictTaken()).To(BeFalse()) // predict taken iff > 1
	})

	It("predicts taken once the counter exceeds 1", func() {
		p.Update(true)
		p.Update(true)
		Expect(p.Counter()).To(Equal(uint8(2)))
		Expect(p.PredictTaken()).To(BeTrue())
	})

	It("decrements by one on a not-taken update", func() {
		p.Update(true)
		p.Update(true)
		p.Update(false)
		Expect(p.Counter()).To(Equal(uint8(1)))
	})

	It("does not underflow below 0 on repeated not-taken updates", func() {
		p.Update(false)
		p.Update(false)
		p.Update(false)
		Expect(p.Counter()).To(Equal(uint8(0)))
	})

	It("saturates at 3 within three taken updates and stays there", func() {
		p.Update(true)
		p.Update(true)
		p.Update(true)
		Expect(p.Counter()).To(Equal(uint8(3)))
		p.Update(true)
		Expect(p.Counter()).To(Equal(uint8(3)))
	})

	It("stays bounded in {0,1,2,3} across any sequence of updates", func() {
		for i := 0; i < 10; i++ {
			p.Update(i%2 == 0)
			Expect(p.Counter()).To(BeNumerically(">=", 0))
			Expect(p.Counter()).To(BeNumerically("<=", 3))
		}
	})

	It("resets to 0", func() {
		p.Update(true)
		p.Update(true)
		p.Reset()
		Expect(p.Counter()).To(Equal(uint8(0)))
	})
})
