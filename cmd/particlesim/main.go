package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/snwfog/sequence.go/pkg/sim"
)

func main() {
	// allow short (-h) help
	kingpin.CommandLine.HelpFlag.Short('h')
	kingpin.CommandLine.Help = "Runs independent particle worlds, each kept in a cursor sequence."

	def := sim.DefaultConfig()
	worlds := kingpin.Flag("worlds", "number of independent worlds").Default("4").Int()
	particles := kingpin.Flag("particles", "initial particles per world").Default(strconv.Itoa(def.Particles)).Int()
	steps := kingpin.Flag("steps", "steps per world").Default(strconv.Itoa(def.Steps)).Int()
	seed := kingpin.Flag("seed", "seed of the first world; world i uses seed+i").Default("1").Int64()
	dt := kingpin.Flag("dt", "time advanced per step").Default("0.1").Float64()
	width := kingpin.Flag("width", "width of the box").Default("100").Float64()
	height := kingpin.Flag("height", "height of the box").Default("100").Float64()
	spawn := kingpin.Flag("spawn", "probability of a new particle per step").Default("0.5").Float64()
	kingpin.Parse()

	log.SetFlags(0)
	log.SetPrefix("particlesim: ")

	cfgs, err := sim.Series(sim.Config{
		Seed:      *seed,
		Particles: *particles,
		Steps:     *steps,
		Width:     *width,
		Height:    *height,
		DT:        *dt,
		SpawnRate: *spawn,
	}, *worlds)
	if err != nil {
		kingpin.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := sim.NewRunner()
	start := time.Now()
	results, err := r.Run(ctx, cfgs)
	if err != nil {
		log.Fatalf("%v", err)
	}

	for _, res := range results {
		log.Printf("seed %d: %s particles, digest %016x", res.Seed, humanize.Comma(int64(res.Len)), res.Digest)
	}
	log.Printf("%s steps, %s removed, %s spawned in %s",
		humanize.Comma(r.Totals.Steps.Load()),
		humanize.Comma(r.Totals.Removed.Load()),
		humanize.Comma(r.Totals.Spawned.Load()),
		time.Since(start).Round(time.Millisecond))
}
