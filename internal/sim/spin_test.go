package sim_test

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbsim/internal/body"
	"github.com/san-kum/orbsim/internal/command"
	"github.com/san-kum/orbsim/internal/sim"
	"github.com/san-kum/orbsim/internal/watch"
	"github.com/san-kum/orbsim/internal/world"
)

func binaryWorld() *world.World {
	a, err := body.NewCelestial("A", 1e30, body.Vec3{X: -5e10}, body.Vec3{Y: -18268}, 1)
	Expect(err).NotTo(HaveOccurred())
	b, err := body.NewCelestial("B", 1e30, body.Vec3{X: 5e10}, body.Vec3{Y: 18268}, 1)
	Expect(err).NotTo(HaveOccurred())
	probe, err := body.NewSpacecraft("Probe", 1000, body.Vec3{Z: 1e11}, body.Vec3{})
	Expect(err).NotTo(HaveOccurred())

	w, err := world.New([]body.CelestialBody{a, b}, []body.Spacecraft{probe}, 3600)
	Expect(err).NotTo(HaveOccurred())
	return w
}

var _ = Describe("Driver.Spin", func() {
	var (
		queue  *command.Queue
		driver *sim.Driver
		ctx    context.Context
		cancel context.CancelFunc
		done   chan error
	)

	BeforeEach(func() {
		var err error
		queue = command.NewQueue(16)
		driver, err = sim.New(binaryWorld(), nil, queue, sim.Options{FPS: 200})
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel = context.WithCancel(context.Background())
		done = make(chan error, 1)
		go func() { done <- driver.Spin(ctx) }()
		Eventually(driver.State).Should(Equal(sim.Running))
	})

	AfterEach(func() {
		cancel()
		Eventually(done).Should(Receive())
	})

	It("publishes snapshots with increasing ticks", func() {
		rx := driver.Subscribe()
		Eventually(func() uint64 { return rx.Borrow().Tick() }).Should(BeNumerically(">=", 10))
	})

	It("stops promptly on Shutdown and publishes nothing afterwards", func() {
		rx := driver.Subscribe()
		Eventually(func() uint64 { return rx.Borrow().Tick() }).Should(BeNumerically(">", 0))

		sent := time.Now()
		Expect(queue.TrySend(command.Shutdown{})).To(Succeed())
		Eventually(done, time.Second, time.Millisecond).Should(Receive(BeNil()))
		Expect(time.Since(sent)).To(BeNumerically("<=", 5*driver.Period()))
		Expect(driver.State()).To(Equal(sim.Stopped))

		last := rx.Borrow().Tick()
		Consistently(func() uint64 { return rx.Borrow().Tick() }, 50*time.Millisecond).Should(Equal(last))

		_, err := rx.HasChanged()
		Expect(err).To(MatchError(watch.ErrClosed))
		done <- nil
	})

	It("freezes motion when the time scale is zero", func() {
		Expect(queue.TrySend(command.SetTimeScale{Factor: 0})).To(Succeed())
		rx := driver.Subscribe()
		Eventually(func() float64 { return rx.Borrow().TimeScale() }).Should(BeZero())

		frozen := rx.Borrow()
		Eventually(func() uint64 { return rx.Borrow().Tick() }).Should(BeNumerically(">", frozen.Tick()+5))

		now := rx.Borrow()
		Expect(now.SimTime()).To(Equal(frozen.SimTime()))
		for _, c := range frozen.Celestials() {
			got, ok := now.Celestial(c.Name())
			Expect(ok).To(BeTrue())
			Expect(got.Position()).To(Equal(c.Position()))
		}
	})

	It("keeps running after events aimed at missing bodies", func() {
		Expect(queue.TrySend(command.TriggerEvent{Target: "Nobody", Event: "speedup"})).To(Succeed())
		Expect(queue.TrySend(command.TriggerEvent{Target: "Probe", Event: "nope"})).To(Succeed())

		rx := driver.Subscribe()
		start := rx.Borrow().Tick()
		Eventually(func() uint64 { return rx.Borrow().Tick() }).Should(BeNumerically(">", start+10))
		Consistently(driver.State, 50*time.Millisecond).Should(Equal(sim.Running))
	})

	It("applies events to the named spacecraft", func() {
		rx := driver.Subscribe()
		Expect(queue.TrySend(command.SetTimeScale{Factor: 0})).To(Succeed())
		Eventually(func() float64 { return rx.Borrow().TimeScale() }).Should(BeZero())

		Expect(queue.TrySend(command.TriggerEvent{Target: "Probe", Event: "speedup"})).To(Succeed())
		Expect(queue.TrySend(command.TriggerEvent{Target: "Probe", Event: "halt"})).To(Succeed())
		Eventually(func() body.Vec3 {
			probe, _ := rx.Borrow().Craft("Probe")
			return probe.Velocity()
		}).Should(Equal(body.Vec3{}))
	})

	It("gives late subscribers a non-decreasing view of simulated time", func() {
		rx := driver.Subscribe()
		Eventually(func() uint64 { return rx.Borrow().Tick() }).Should(BeNumerically(">", 5))

		var wg sync.WaitGroup
		results := make([][]float64, 2)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer GinkgoRecover()
				defer wg.Done()
				late := driver.Subscribe()
				wait, stop := context.WithTimeout(ctx, 2*time.Second)
				defer stop()
				for len(results[i]) < 20 {
					if late.Changed(wait) != nil {
						return
					}
					results[i] = append(results[i], late.Borrow().SimTime())
				}
			}(i)
		}
		wg.Wait()

		for _, times := range results {
			Expect(times).To(HaveLen(20))
			for j := 1; j < len(times); j++ {
				Expect(times[j]).To(BeNumerically(">=", times[j-1]))
			}
		}
	})

	It("shuts down when the command queue closes", func() {
		queue.Close()
		Eventually(done).Should(Receive(BeNil()))
		Expect(driver.State()).To(Equal(sim.Stopped))
		done <- nil
	})

	It("rejects a second Spin while running", func() {
		Expect(driver.Spin(ctx)).To(MatchError(sim.ErrNotIdle))
	})
})
