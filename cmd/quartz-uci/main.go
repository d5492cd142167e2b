// The quartz-uci binary runs the engine behind a UCI front end.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/quartzchess/quartz/internal/engine"
	"github.com/quartzchess/quartz/internal/storage"
	"github.com/quartzchess/quartz/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	noPersist  = flag.Bool("no-persist", false, "do not load or save engine options")
)

func main() {
	flag.Parse()

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	opts := storage.DefaultOptions()
	var store *storage.Store
	if !*noPersist {
		s, err := storage.Open()
		if err != nil {
			log.Printf("warning: options storage unavailable: %v", err)
		} else {
			store = s
			defer store.Close()
			if loaded, err := store.LoadOptions(); err == nil {
				opts = loaded
			} else {
				log.Printf("warning: loading options: %v", err)
			}
		}
	}

	eng := engine.New(opts.HashMB)

	protocol := uci.New(eng, opts, store)
	protocol.Run()
}
