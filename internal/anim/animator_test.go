package anim_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/quakeviz/quakeviz/internal/anim"
)

// recordingSink copies every frame it sees, since frames alias the
// animator's buffers and may not be retained as-is.
type recordingSink struct {
	frames []recordedFrame
	err    error
}

type recordedFrame struct {
	index  int
	time   float64
	valves []anim.Valve
	events []anim.Event
}

func (s *recordingSink) WriteFrame(f *anim.Frame) error {
	if s.err != nil {
		return s.err
	}
	rec := recordedFrame{index: f.Index, time: f.Time}
	rec.valves = append(rec.valves, f.Valves...)
	rec.events = append(rec.events, f.Events...)
	s.frames = append(s.frames, rec)
	return nil
}

var _ = Describe("Animator", func() {
	var (
		mass   [][]float64
		bitmap [][]bool
		fade   anim.FadeParams
	)

	BeforeEach(func() {
		mass = [][]float64{
			{1, 1, 1, 1},
			{1, 2, 2, 1},
			{1, 3, 3, 1},
		}
		bitmap = [][]bool{{false}, {true}, {true}}
		fade = anim.FadeParams{Duration: 0.001, MinSize: 1.5, MaxSize: 100}
	})

	newRun := func(events []anim.Event) (*anim.Animator, *recordingSink) {
		// Frame times land on 1.0 and 1.001: the fast phase takes one
		// 0.5s step, then the stepper re-anchors onto 0.001s steps.
		st, err := anim.NewStepper(0.5, 0.9, 0.902, 0.5, 0.001)
		Expect(err).NotTo(HaveOccurred())
		valves := []anim.Valve{anim.NewValve(1, 2)}
		a := anim.NewAnimator(st, valves, events, mass, bitmap, fade, 0.01)
		return a, &recordingSink{}
	}

	It("plays the rupture-and-decay scenario frame by frame", func() {
		events := []anim.Event{{T: 1.0005}}
		a, sink := newRun(events)

		Expect(a.Run(context.Background(), sink)).To(Succeed())
		Expect(sink.frames).To(HaveLen(2))

		first := sink.frames[0]
		Expect(first.index).To(Equal(1))
		Expect(first.time).To(BeNumerically("~", 1.0, 1e-9))
		Expect(first.valves[0].Breaking).To(BeTrue())
		Expect(first.valves[0].Intensity).To(Equal(anim.IntensityBreaking))
		Expect(first.events).To(BeEmpty(), "event detected after this frame's time")

		second := sink.frames[1]
		Expect(second.time).To(BeNumerically("~", 1.001, 1e-9))
		Expect(second.valves[0].Breaking).To(BeFalse())
		Expect(second.valves[0].Open).To(BeTrue())
		Expect(second.events).To(HaveLen(1))
		Expect(second.events[0].Fade).To(BeNumerically("~", 0.5, 1e-9))
		Expect(second.events[0].Size).To(BeNumerically("~", 13.8125, 1e-9))
		Expect(second.events[0].Intensity).To(BeNumerically("~", 0.75, 1e-9))
	})

	It("aborts before the loop when data rows are short", func() {
		a, sink := newRun(nil)
		mass2 := mass[:1]
		st, err := anim.NewStepper(0.5, 0.9, 0.902, 0.5, 0.001)
		Expect(err).NotTo(HaveOccurred())
		a = anim.NewAnimator(st, a.Valves(), nil, mass2, bitmap, fade, 0.01)

		err = a.Run(context.Background(), sink)
		Expect(errors.Is(err, anim.ErrShapeMismatch)).To(BeTrue())
		Expect(sink.frames).To(BeEmpty())
	})

	It("stops when the sink fails and reports the frame", func() {
		a, sink := newRun(nil)
		sink.err = errors.New("encoder gone")

		err := a.Run(context.Background(), sink)
		var fe *anim.FrameError
		Expect(errors.As(err, &fe)).To(BeTrue())
		Expect(fe.Frame).To(Equal(1))
	})

	It("honors context cancellation", func() {
		a, sink := newRun(nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Expect(a.Run(ctx, sink)).To(MatchError(context.Canceled))
	})
})
