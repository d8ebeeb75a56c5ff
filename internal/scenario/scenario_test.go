package scenario_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/episim/internal/integrators"
	"github.com/san-kum/episim/internal/population"
	"github.com/san-kum/episim/internal/scenario"
	"github.com/san-kum/episim/internal/sim"
)

func smallOptions(size int) scenario.Options {
	opts := scenario.DefaultOptions()
	opts.Population.Size = size
	opts.Population.Temperature = 50
	opts.Dt = 0.001
	return opts
}

func build(name string, opts scenario.Options, seed int64) scenario.Scenario {
	s, err := scenario.Build(name, opts, rand.New(rand.NewSource(seed)))
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return s
}

func stepN(s sim.Stepper, n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}

var _ = Describe("Registry", func() {
	It("lists the built-in scenarios in order", func() {
		Expect(scenario.Names()).To(Equal([]string{
			"basic", "cities", "mask_vulnerable", "quarantine", "randomwalk",
		}))
		Expect(scenario.Describe("cities")).NotTo(BeEmpty())
	})

	It("rejects unknown names", func() {
		_, err := scenario.Build("lockdown", smallOptions(10), rand.New(rand.NewSource(1)))
		Expect(err).To(MatchError(scenario.ErrUnknown))
		Expect(scenario.Known("lockdown")).To(BeFalse())
	})

	It("accepts custom scenarios", func() {
		r := scenario.NewRegistry()
		r.Register("tiny", "basic with two agents", func(opts scenario.Options, rng *rand.Rand) (scenario.Scenario, error) {
			opts.Population.Size = 2
			return scenario.Build("basic", opts, rng)
		})
		s, err := r.Build("tiny", smallOptions(40), rand.New(rand.NewSource(1)))
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Agents()).To(HaveLen(2))
	})
})

var _ = Describe("Every scenario", func() {
	for _, name := range scenario.Names() {
		name := name
		It("keeps its head count while stepping: "+name, func() {
			opts := smallOptions(20)
			opts.Vulnerable = 4
			opts.Masked = 4
			s := build(name, opts, 3)
			Expect(s.Name()).To(Equal(name))

			before := s.Census().Total()
			stepN(s, 30)
			Expect(s.Census().Total()).To(Equal(before))

			grouped := 0
			for _, g := range s.Groups() {
				grouped += g.Counts.Total()
			}
			Expect(grouped).To(Equal(before))
			Expect(s.TargetEnergy()).To(BeNumerically(">", 0))
		})
	}
})

var _ = Describe("Cities", func() {
	var opts scenario.Options

	BeforeEach(func() {
		opts = smallOptions(12)
		opts.MigrationInterval = 5
	})

	It("seeds the first city only", func() {
		s := build("cities", opts, 7)
		groups := s.Groups()
		Expect(groups).To(HaveLen(3))
		Expect(groups[0].Counts.Infected).To(Equal(1))
		Expect(groups[1].Counts.Infected).To(BeZero())
		Expect(groups[2].Counts.Infected).To(BeZero())
		Expect(s.Agents()).To(HaveLen(36))
	})

	It("migrates on multiples of the interval", func() {
		c := build("cities", opts, 7).(*scenario.Cities)

		stepN(c, 4)
		Expect(c.Migrations()).To(BeZero())

		stepN(c, 1)
		Expect(c.Migrations()).To(Equal(6))
		for i := 0; i < 3; i++ {
			Expect(c.City(i).Len()).To(Equal(12))
		}

		stepN(c, 5)
		Expect(c.Migrations()).To(Equal(12))
	})

	It("skips cities too small to send two agents", func() {
		opts.Population.Size = 1
		c := build("cities", opts, 7).(*scenario.Cities)
		stepN(c, 10)
		Expect(c.Migrations()).To(BeZero())
	})

	It("never migrates with a zero interval", func() {
		opts.MigrationInterval = 0
		c := build("cities", opts, 7).(*scenario.Cities)
		stepN(c, 20)
		Expect(c.Migrations()).To(BeZero())
	})

	It("is reproducible from a seed", func() {
		a := build("cities", opts, 11)
		b := build("cities", opts, 11)
		for i := 0; i < 15; i++ {
			a.Step()
			b.Step()
			Expect(a.Census()).To(Equal(b.Census()))
		}
	})

	It("needs at least two cities", func() {
		opts.Cities = 1
		_, err := scenario.Build("cities", opts, rand.New(rand.NewSource(1)))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Quarantine", func() {
	It("holds the infected apart until they recover", func() {
		opts := smallOptions(10)
		opts.Population.InfectionProbability = 0
		opts.Population.RecoveryTicks = 6
		opts.Dt = 0.01
		opts.DetectionRate = 100

		q := build("quarantine", opts, 5).(*scenario.Quarantine)

		q.Step()
		Expect(q.Census().Quarantined).To(Equal(1))
		Expect(q.Census().Infected).To(BeZero())
		Expect(q.Agents()).To(HaveLen(9))
		Expect(q.Census().Total()).To(Equal(10))

		stepN(q, 10)
		Expect(q.Held()).To(BeEmpty())
		Expect(q.Census().Recovered).To(Equal(1))
		Expect(q.Agents()).To(HaveLen(10))
		Expect(q.Detected()).To(Equal(1))
		Expect(q.Released()).To(Equal(1))
	})

	It("detects nobody at a zero rate", func() {
		opts := smallOptions(10)
		opts.DetectionRate = 0
		q := build("quarantine", opts, 5).(*scenario.Quarantine)
		stepN(q, 20)
		Expect(q.Detected()).To(BeZero())
	})

	It("rejects a negative rate", func() {
		opts := smallOptions(10)
		opts.DetectionRate = -1
		_, err := scenario.Build("quarantine", opts, rand.New(rand.NewSource(1)))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Masked and vulnerable cohorts", func() {
	It("reports a census per cohort", func() {
		opts := smallOptions(30)
		opts.Vulnerable = 5
		opts.Masked = 10
		s := build("mask_vulnerable", opts, 9)

		groups := s.Groups()
		Expect(groups).To(HaveLen(3))
		Expect(groups[0].Name).To(Equal("standard"))
		Expect(groups[0].Counts.Total()).To(Equal(15))
		Expect(groups[1].Name).To(Equal("masked"))
		Expect(groups[1].Counts.Total()).To(Equal(10))
		Expect(groups[2].Name).To(Equal("vulnerable"))
		Expect(groups[2].Counts.Total()).To(Equal(5))
	})

	It("rejects cohorts larger than the population", func() {
		opts := smallOptions(10)
		opts.Vulnerable = 6
		opts.Masked = 6
		_, err := scenario.Build("mask_vulnerable", opts, rand.New(rand.NewSource(1)))
		Expect(err).To(HaveOccurred())
	})

	It("fails fast on a zero infection radius", func() {
		opts := smallOptions(10)
		opts.Population.InfectionRadius = 0
		opts.Vulnerable = 2
		_, err := scenario.Build("mask_vulnerable", opts, rand.New(rand.NewSource(1)))
		Expect(err).To(MatchError(population.ErrBaseRadius))
	})
})

var _ = Describe("Random walk", func() {
	It("runs diffusive regardless of the configured mode", func() {
		opts := smallOptions(15)
		opts.Mode = integrators.Potential
		s := build("randomwalk", opts, 2)
		stepN(s, 10)
		for _, a := range s.Agents() {
			Expect(a.Acceleration().X).To(BeZero())
			Expect(a.Acceleration().Y).To(BeZero())
		}
	})
})
