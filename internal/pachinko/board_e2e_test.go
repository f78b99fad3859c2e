package pachinko_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vovakirdan/pegboard/internal/core"
	"github.com/vovakirdan/pegboard/internal/pachinko"
)

var _ = Describe("Board", func() {
	var (
		board *pachinko.Board
		now   time.Time
	)

	clock := func() time.Time { return now }

	// tickPast moves the fake clock beyond one animation and ticks.
	tickPast := func() pachinko.StepResult {
		now = now.Add(board.AnimationDuration() + time.Millisecond)
		return board.Tick()
	}

	newBoard := func(cfg pachinko.Configuration) {
		var err error
		board, err = pachinko.NewBoard(cfg, pachinko.WithClock(clock))
		Expect(err).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	})

	Context("a 3x3 board full of crosses", func() {
		BeforeEach(func() {
			newBoard(pachinko.Configuration{
				Size:          pachinko.Size{W: 3, H: 3},
				StartingColor: pachinko.Blue,
				NumBlueBalls:  1,
				NumRedBalls:   0,
				EntryPoint:    1,
			})
			for _, peg := range board.Pegs() {
				if peg.PieceSlot {
					Expect(board.PlacePiece(pachinko.NewPiece(pachinko.KindCross), peg.Position.Vec())).To(BeTrue())
				}
			}
		})

		It("has four piece slots", func() {
			Expect(board.PieceCount()).To(Equal(4))
		})

		It("collects exactly one ball and then halts", func() {
			board.Start()
			Expect(board.Running()).To(BeTrue())

			for i := 0; i < 20 && board.Running(); i++ {
				tickPast()
			}

			Expect(board.Running()).To(BeFalse())
			Expect(board.Collector().Len()).To(Equal(1))
			Expect(board.State()).To(Equal(pachinko.StateHalted))
			Expect(board.HaltReason()).To(Equal(pachinko.HaltExhausted))
			Expect(board.Hops()).To(Equal(3))
		})

		It("keeps halting once exhausted", func() {
			board.Start()
			for board.Running() {
				tickPast()
			}
			board.Start()
			Expect(board.Running()).To(BeFalse())
			Expect(board.Collector().Len()).To(Equal(1))
		})
	})

	Context("with a terminal on the entry peg", func() {
		BeforeEach(func() {
			newBoard(pachinko.DefaultConfiguration())
			Expect(board.PlacePiece(pachinko.NewPiece(pachinko.KindTerminal), core.V(-2, 0))).To(BeTrue())
			board.Start()
		})

		It("stops within one tick past the animation duration", func() {
			res := tickPast()
			Expect(res.Halted).To(Equal(pachinko.HaltTerminal))
			Expect(board.Running()).To(BeFalse())

			ball, ok := board.Ball()
			Expect(ok).To(BeTrue())
			Expect(ball.Position).To(Equal(core.P(-2, 0)))
		})

		It("does not move while ticking before the duration", func() {
			now = now.Add(board.AnimationDuration() / 2)
			Expect(board.Tick().Hopped).To(BeFalse())
			Expect(board.Running()).To(BeTrue())
		})
	})

	Context("with a bit under the blue entry", func() {
		var bit *pachinko.Piece

		BeforeEach(func() {
			cfg := pachinko.DefaultConfiguration()
			cfg.NumBlueBalls = 2
			cfg.NumRedBalls = 0
			newBoard(cfg)
			bit = pachinko.NewPiece(pachinko.KindBit)
			Expect(board.PlacePiece(bit, core.V(-2, 0))).To(BeTrue())
		})

		It("sends consecutive balls to alternate sides", func() {
			var exits []int
			board.Start()
			for i := 0; i < 100 && board.Running(); i++ {
				if res := tickPast(); res.Collected != nil {
					exits = append(exits, res.Collected.Position.X)
				}
			}
			Expect(exits).To(Equal([]int{-3, -1}))
			Expect(bit.Orientation()).To(Equal(pachinko.Right))
		})
	})

	Describe("Reset", func() {
		It("empties the collector and refills the dispenser", func() {
			newBoard(pachinko.DefaultConfiguration())
			board.Start()
			for i := 0; i < 35; i++ {
				tickPast()
			}
			Expect(board.Collector().IsEmpty()).To(BeFalse())

			board.Reset()
			Expect(board.Collector().IsEmpty()).To(BeTrue())
			Expect(board.Dispenser().Remaining(pachinko.Blue)).To(Equal(8))
			Expect(board.Dispenser().Remaining(pachinko.Red)).To(Equal(8))
			Expect(board.State()).To(Equal(pachinko.StateIdle))
		})
	})
})
