package physics_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/thermosim/internal/dynamo"
	"github.com/san-kum/thermosim/internal/physics"
)

func heatParams() physics.Params {
	return physics.Params{
		CoilTemp:      35,
		OutsideTemp:   15,
		WallCoeff:     0.03,
		CoilCoeff:     0.1,
		LowThreshold:  22,
		HighThreshold: 24,
		Mode:          physics.ModeHeat,
	}
}

func coolParams() physics.Params {
	return physics.Params{
		CoilTemp:      10,
		OutsideTemp:   30,
		WallCoeff:     0.05,
		CoilCoeff:     0.2,
		LowThreshold:  22,
		HighThreshold: 24,
		Mode:          physics.ModeCool,
	}
}

var _ = Describe("Room", func() {
	Describe("construction", func() {
		DescribeTable("rejects inconsistent parameters",
			func(mutate func(*physics.Params)) {
				p := heatParams()
				mutate(&p)
				room, err := physics.NewRoom(p, 18)
				Expect(err).To(MatchError(dynamo.ErrConfiguration))
				Expect(room).To(BeNil())
			},
			Entry("negative wall coefficient", func(p *physics.Params) { p.WallCoeff = -0.01 }),
			Entry("negative coil coefficient", func(p *physics.Params) { p.CoilCoeff = -0.5 }),
			Entry("inverted thresholds", func(p *physics.Params) { p.LowThreshold, p.HighThreshold = 25, 20 }),
			Entry("unknown mode", func(p *physics.Params) { p.Mode = 0 }),
		)

		It("accepts equal thresholds and zero coefficients", func() {
			p := heatParams()
			p.LowThreshold, p.HighThreshold = 23, 23
			p.WallCoeff, p.CoilCoeff = 0, 0
			_, err := physics.NewRoom(p, 18)
			Expect(err).NotTo(HaveOccurred())
		})

		DescribeTable("derives the initial relay state",
			func(p physics.Params, t0 float64, want physics.ActivationState) {
				room, err := physics.NewRoom(p, t0)
				Expect(err).NotTo(HaveOccurred())
				Expect(room.State()).To(Equal(want))
			},
			Entry("heat below high", heatParams(), 18.0, physics.StateActing),
			Entry("heat at high", heatParams(), 24.0, physics.StateIdle),
			Entry("cool above low", coolParams(), 25.0, physics.StateActing),
			Entry("cool at low", coolParams(), 22.0, physics.StateIdle),
		)
	})

	Describe("Rate in heat mode", func() {
		var room *physics.Room

		BeforeEach(func() {
			var err error
			room, err = physics.NewRoom(heatParams(), 18)
			Expect(err).NotTo(HaveOccurred())
		})

		It("adds coil drive while acting inside the band", func() {
			Expect(room.Rate(0.5, 20)).To(BeNumerically("~", 1.35, 1e-12))
			Expect(room.State()).To(Equal(physics.StateActing))
		})

		It("uses the post-switch regime when switching off", func() {
			Expect(room.Rate(5, 24.5)).To(BeNumerically("~", -0.285, 1e-12))
			Expect(room.State()).To(Equal(physics.StateIdle))
			Expect(room.ActionTime()).To(BeNumerically("~", 5, 1e-12))
			_, ok := room.Period()
			Expect(ok).To(BeFalse())
		})

		It("does not switch inside the hysteresis band", func() {
			room.Rate(1, 24.5)
			room.Rate(2, 22)
			Expect(room.State()).To(Equal(physics.StateIdle))
			room.Rate(3, 21.9)
			Expect(room.State()).To(Equal(physics.StateActing))
			room.Rate(4, 23.9)
			Expect(room.State()).To(Equal(physics.StateActing))
		})

		It("records the first full cycle and never overwrites it", func() {
			room.Rate(1, 24.5) // off, anchor
			room.Rate(2, 23)
			room.Rate(3, 21) // on
			room.Rate(6, 24) // off, period
			period, ok := room.Period()
			Expect(ok).To(BeTrue())
			Expect(period).To(BeNumerically("~", 5, 1e-12))
			Expect(room.ActionTime()).To(BeNumerically("~", 4, 1e-12))

			room.Rate(7, 21.5)
			room.Rate(9, 25)
			period, _ = room.Period()
			Expect(period).To(BeNumerically("~", 5, 1e-12))
			Expect(room.ActionTime()).To(BeNumerically("~", 6, 1e-12))
		})
	})

	Describe("Rate in cool mode", func() {
		It("mirrors the switching direction", func() {
			room, err := physics.NewRoom(coolParams(), 25)
			Expect(err).NotTo(HaveOccurred())

			Expect(room.Rate(2, 22)).To(BeNumerically("~", 0.4, 1e-12))
			Expect(room.State()).To(Equal(physics.StateIdle))
			Expect(room.ActionTime()).To(BeNumerically("~", 2, 1e-12))

			room.Rate(3, 24)
			Expect(room.State()).To(Equal(physics.StateIdle))

			Expect(room.Rate(4, 24.5)).To(BeNumerically("~", -2.625, 1e-12))
			Expect(room.State()).To(Equal(physics.StateActing))
		})
	})

	Describe("Peek", func() {
		It("reports the transition without committing it", func() {
			room, _ := physics.NewRoom(heatParams(), 18)
			next, tr := room.Peek(24.5)
			Expect(next).To(Equal(physics.StateIdle))
			Expect(tr).To(Equal(physics.TransitionOff))
			Expect(room.State()).To(Equal(physics.StateActing))
			Expect(room.ActionTime()).To(BeZero())
		})
	})

	Describe("partial derivatives", func() {
		var (
			room *physics.Room
			log  *physics.SwitchLog
		)

		BeforeEach(func() {
			room, _ = physics.NewRoom(heatParams(), 18)
			log = &physics.SwitchLog{}
			room.AddObserver(log)
		})

		It("has no explicit time dependence", func() {
			Expect(room.RateTimePartial(3, 20)).To(BeZero())
		})

		It("returns the slope of the active regime", func() {
			Expect(room.RateStatePartial(0, 20)).To(BeNumerically("~", -0.13, 1e-12))
		})

		It("switches the relay but keeps statistics untouched", func() {
			Expect(room.RateStatePartial(1, 24.5)).To(BeNumerically("~", -0.03, 1e-12))
			Expect(room.State()).To(Equal(physics.StateIdle))
			Expect(room.ActionTime()).To(BeZero())

			// Rate no longer sees a switch at the same point.
			room.Rate(1, 24.5)
			Expect(room.ActionTime()).To(BeZero())
			_, ok := room.Period()
			Expect(ok).To(BeFalse())

			Expect(log.Events).To(HaveLen(1))
			Expect(log.Events[0].StateOnly).To(BeTrue())
			Expect(log.Count(physics.TransitionOff)).To(BeZero())
		})
	})

	Describe("observers", func() {
		It("detaches observers of uncomparable types", func() {
			room, _ := physics.NewRoom(heatParams(), 18)
			var seen []physics.Event
			obs := taggedObserver{tags: []string{"bench"}, seen: &seen}

			detach := room.AddObserver(obs)
			room.Rate(1, 24.5)
			Expect(seen).To(HaveLen(1))

			Expect(detach).NotTo(Panic())
			Expect(detach).NotTo(Panic())
			room.Rate(2, 21)
			Expect(seen).To(HaveLen(1))
		})

		It("detaches only the registration it was returned for", func() {
			room, _ := physics.NewRoom(heatParams(), 18)
			first, second := &physics.SwitchLog{}, &physics.SwitchLog{}
			detachFirst := room.AddObserver(first)
			room.AddObserver(second)

			detachFirst()
			room.Rate(1, 24.5)
			Expect(first.Events).To(BeEmpty())
			Expect(second.Events).To(HaveLen(1))
		})
	})

	Describe("ResetTimers", func() {
		It("clears statistics and keeps the relay state", func() {
			room, _ := physics.NewRoom(heatParams(), 18)
			room.Rate(1, 24.5)
			room.Rate(3, 21)
			room.Rate(6, 24)
			Expect(room.State()).To(Equal(physics.StateIdle))

			room.ResetTimers()
			Expect(room.ActionTime()).To(BeZero())
			_, ok := room.Period()
			Expect(ok).To(BeFalse())
			Expect(room.State()).To(Equal(physics.StateIdle))
		})
	})

	Describe("random evaluation sequences", func() {
		It("alternates switches and accounts every acting interval", func() {
			room, _ := physics.NewRoom(heatParams(), 18)
			log := &physics.SwitchLog{}
			room.AddObserver(log)

			rng := rand.New(rand.NewSource(7))
			expected := 0.0
			lastOn := 0.0
			acting := true
			for i := 1; i <= 2000; i++ {
				before := len(log.Events)
				t := float64(i) * 0.1
				room.Rate(t, 18+rng.Float64()*10)
				Expect(len(log.Events) - before).To(BeNumerically("<=", 1))

				if len(log.Events) == before {
					continue
				}
				ev := log.Events[len(log.Events)-1]
				if acting {
					Expect(ev.Transition).To(Equal(physics.TransitionOff))
					expected += t - lastOn
				} else {
					Expect(ev.Transition).To(Equal(physics.TransitionOn))
					lastOn = t
				}
				acting = !acting
			}
			Expect(room.ActionTime()).To(BeNumerically("~", expected, 1e-9))
		})
	})

	Describe("SteadyState", func() {
		It("weights outside and coil temperatures while acting", func() {
			room, _ := physics.NewRoom(heatParams(), 18)
			Expect(room.SteadyState(physics.StateActing)).To(BeNumerically("~", 3.95/0.13, 1e-12))
			Expect(room.SteadyState(physics.StateIdle)).To(Equal(15.0))
		})
	})
})

var _ = Describe("Mode", func() {
	It("parses case-insensitively", func() {
		m, err := physics.ParseMode(" HEAT ")
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(Equal(physics.ModeHeat))

		_, err = physics.ParseMode("dry")
		Expect(err).To(HaveOccurred())
	})

	It("round-trips through text", func() {
		b, err := physics.ModeCool.MarshalText()
		Expect(err).NotTo(HaveOccurred())
		var m physics.Mode
		Expect(m.UnmarshalText(b)).To(Succeed())
		Expect(m).To(Equal(physics.ModeCool))
	})
})

// taggedObserver holds a slice, so values of it cannot be compared with ==.
type taggedObserver struct {
	tags []string
	seen *[]physics.Event
}

func (o taggedObserver) OnTransition(ev physics.Event) {
	*o.seen = append(*o.seen, ev)
}
