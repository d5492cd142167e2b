// Package uci speaks the Universal Chess Interface on stdin/stdout. It is
// the boundary collaborator of the engine core: it builds positions from
// descriptors, hands them to the search with limits, and frames the
// best-move descriptor that comes back.
package uci

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/quartzchess/quartz/internal/board"
	"github.com/quartzchess/quartz/internal/engine"
	"github.com/quartzchess/quartz/internal/storage"
)

// UCI is the protocol handler.
type UCI struct {
	engine   *engine.Engine
	position *board.Position

	opts  *storage.Options
	store *storage.Store

	searchDone chan struct{}
}

// New creates a UCI handler around an engine. store may be nil; options
// then live only for the session.
func New(eng *engine.Engine, opts *storage.Options, store *storage.Store) *UCI {
	if opts == nil {
		opts = storage.DefaultOptions()
	}
	return &UCI{
		engine:   eng,
		position: board.StartingPosition(),
		opts:     opts,
		store:    store,
	}
}

// Run processes commands until EOF or "quit".
func (u *UCI) Run() {
	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.engine.Cancel()
			u.waitSearch()
		case "setoption":
			u.handleSetOption(args)
		case "quit":
			u.engine.Cancel()
			u.waitSearch()
			return
		// Debug commands.
		case "d":
			fmt.Println(u.position.String())
		case "perft":
			u.handlePerft(args)
		}
	}
}

func (u *UCI) handleUCI() {
	fmt.Println("id name Quartz")
	fmt.Println("id author the Quartz authors")
	fmt.Println()
	fmt.Printf("option name Hash type spin default %d min 1 max 4096\n", u.opts.HashMB)
	fmt.Printf("option name Move Overhead type spin default %d min 0 max 5000\n",
		int(u.opts.MoveOverhead/time.Millisecond))
	fmt.Println("uciok")
}

func (u *UCI) handleNewGame() {
	u.waitSearch()
	u.engine.ClearTT()
	u.position = board.StartingPosition()
}

// handlePosition accepts "position startpos [moves ...]" and
// "position fen <fen> [moves ...]".
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var pos *board.Position
	moveStart := len(args)

	switch args[0] {
	case "startpos":
		pos = board.StartingPosition()
		for i, a := range args {
			if a == "moves" {
				moveStart = i + 1
				break
			}
		}
	case "fen":
		fenEnd := len(args)
		for i, a := range args {
			if a == "moves" {
				fenEnd = i
				moveStart = i + 1
				break
			}
		}
		parsed, err := board.ParseFEN(strings.Join(args[1:fenEnd], " "))
		if err != nil {
			fmt.Printf("info string %v\n", err)
			return
		}
		pos = parsed
	default:
		return
	}

	for _, ms := range args[min(moveStart, len(args)):] {
		m, err := board.ParseMove(ms, pos)
		if err != nil {
			fmt.Printf("info string %v\n", err)
			return
		}
		pos.MakeMove(m)
	}

	u.position = pos
}

func (u *UCI) handleGo(args []string) {
	u.waitSearch()

	var clock engine.ClockState
	limits := engine.SearchLimits{MaxDepth: engine.MaxDepth}
	infinite := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				limits.MaxDepth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				limits.MoveTime = time.Duration(ms) * time.Millisecond
				i++
			}
		case "wtime":
			clock.Time[board.White] = parseMs(args, &i)
		case "btime":
			clock.Time[board.Black] = parseMs(args, &i)
		case "winc":
			clock.Inc[board.White] = parseMs(args, &i)
		case "binc":
			clock.Inc[board.Black] = parseMs(args, &i)
		case "movestogo":
			if i+1 < len(args) {
				clock.MovesToGo, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "infinite":
			infinite = true
		}
	}

	if limits.MoveTime == 0 && !infinite {
		limits.MoveTime = engine.AllocateTime(clock, u.position.SideToMove(), u.opts.MoveOverhead)
	}

	u.searchDone = make(chan struct{})
	pos := u.position
	go func() {
		defer close(u.searchDone)

		start := time.Now()
		result := u.engine.Search(pos, limits)
		elapsed := time.Since(start)

		fmt.Printf("info depth %d score %s nodes %d time %d hashfull %d\n",
			result.Depth, uciScore(result.Score), result.Nodes,
			elapsed.Milliseconds(), u.engine.Hashfull())

		best := result.BestMove.String()
		if best == "" {
			best = "0000"
		}
		fmt.Printf("bestmove %s\n", best)
	}()
}

func parseMs(args []string, i *int) time.Duration {
	if *i+1 >= len(args) {
		return 0
	}
	ms, _ := strconv.Atoi(args[*i+1])
	*i++
	return time.Duration(ms) * time.Millisecond
}

func uciScore(score int) string {
	if score > engine.MateScore-engine.MaxPly {
		return fmt.Sprintf("mate %d", (engine.MateScore-score+1)/2)
	}
	if score < -engine.MateScore+engine.MaxPly {
		return fmt.Sprintf("mate %d", -(engine.MateScore+score+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}

func (u *UCI) handleSetOption(args []string) {
	// setoption name <name...> value <value>
	name, value := "", ""
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "name":
			j := i + 1
			for ; j < len(args) && args[j] != "value"; j++ {
			}
			name = strings.Join(args[i+1:j], " ")
			i = j - 1
		case "value":
			if i+1 < len(args) {
				value = args[i+1]
			}
			i = len(args)
		}
	}

	switch strings.ToLower(name) {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err != nil || mb < 1 {
			return
		}
		u.opts.HashMB = mb
		u.engine.SetTTSize(mb)
		u.persistOptions()
	case "move overhead":
		ms, err := strconv.Atoi(value)
		if err != nil || ms < 0 {
			return
		}
		u.opts.MoveOverhead = time.Duration(ms) * time.Millisecond
		u.persistOptions()
	}
}

func (u *UCI) persistOptions() {
	if u.store == nil {
		return
	}
	if err := u.store.SaveOptions(u.opts); err != nil {
		fmt.Fprintf(os.Stderr, "warning: saving options: %v\n", err)
	}
}

func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil {
			depth = d
		}
	}
	start := time.Now()
	nodes := board.Perft(u.position, depth)
	fmt.Printf("perft(%d) = %d (%.2fs)\n", depth, nodes, time.Since(start).Seconds())
}

// waitSearch blocks until the current search goroutine, if any, finishes.
func (u *UCI) waitSearch() {
	if u.searchDone != nil {
		<-u.searchDone
		u.searchDone = nil
	}
}
