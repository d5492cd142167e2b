// The quartz-perft binary certifies the move generator: it runs the
// standard perft suite (or a single FEN) and compares node counts against
// the published values, one worker per position.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quartzchess/quartz/internal/board"
)

type suiteEntry struct {
	name   string
	fen    string
	counts []uint64 // counts[d-1] = perft(d)
}

// The six standard generator-certification positions.
var suite = []suiteEntry{
	{"startpos", board.StartFEN,
		[]uint64{20, 400, 8_902, 197_281, 4_865_609}},
	{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		[]uint64{48, 2_039, 97_862, 4_085_603}},
	{"position3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		[]uint64{14, 191, 2_812, 43_238, 674_624}},
	{"position4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		[]uint64{6, 264, 9_467, 422_333}},
	{"position5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		[]uint64{44, 1_486, 62_379, 2_103_487}},
	{"position6", "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/3P1N1P/PPP1NPP1/R2Q1RK1 w - - 0 10",
		[]uint64{42, 1_892, 76_031, 3_288_373}},
}

var (
	fen   = flag.String("fen", "", "run a single position instead of the suite")
	depth = flag.Int("depth", 0, "maximum depth (0 = all published depths, or 5 with -fen)")
)

func main() {
	flag.Parse()

	if *fen != "" {
		runSingle(*fen, *depth)
		return
	}

	start := time.Now()

	var g errgroup.Group
	for _, entry := range suite {
		entry := entry
		g.Go(func() error {
			pos, err := board.ParseFEN(entry.fen)
			if err != nil {
				return fmt.Errorf("%s: %w", entry.name, err)
			}
			for d := 1; d <= len(entry.counts); d++ {
				if *depth > 0 && d > *depth {
					break
				}
				want := entry.counts[d-1]
				got := board.Perft(pos, d)
				if got != want {
					return fmt.Errorf("%s perft(%d) = %d, want %d",
						entry.name, d, got, want)
				}
				fmt.Printf("%-10s perft(%d) = %d ok\n", entry.name, d, got)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("suite passed in %.2fs\n", time.Since(start).Seconds())
}

func runSingle(fen string, depth int) {
	if depth <= 0 {
		depth = 5
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for d := 1; d <= depth; d++ {
		start := time.Now()
		nodes := board.Perft(pos, d)
		fmt.Printf("perft(%d) = %-12d %.3fs\n", d, nodes, time.Since(start).Seconds())
	}
}
