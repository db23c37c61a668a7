package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/Maze-Combat/internal/config"
	"github.com/Garsondee/Maze-Combat/internal/maze"
	"github.com/Garsondee/Maze-Combat/internal/sim"
)

type runStats struct {
	runIndex int
	seed     int64
	id       string

	ticks    int
	seconds  float64
	survived bool
	kills    int

	firstFireTick    int
	firstHitTick     int
	firstContactTick int
	firstKillTick    int
	escalateTick     int
	deathTick        int

	stats  sim.Stats
	faults int
}

type options struct {
	runs     int
	ticks    int
	seedBase int64
	seedStep int64
	rules    string
	mapPath  string
	generate bool
	report   bool
}

func main() {
	var o options
	flag.IntVar(&o.runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&o.ticks, "ticks", 3600, "max ticks per run")
	flag.Int64Var(&o.seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&o.seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&o.rules, "config", "", "rules file, .yaml or .toml (defaults when empty)")
	flag.StringVar(&o.mapPath, "map", "", "map file (.yaml document or .txt layout)")
	flag.BoolVar(&o.generate, "generate", false, "generate a maze per run instead of the built-in layout")
	flag.BoolVar(&o.report, "report", false, "print each session report")
	flag.Parse()

	if err := run(o, os.Stdout); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func run(o options, w io.Writer) error {
	if o.runs <= 0 {
		return fmt.Errorf("-runs must be > 0")
	}
	if o.ticks <= 0 {
		return fmt.Errorf("-ticks must be > 0")
	}
	rules, err := config.Load(o.rules)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "=== Headless Maze Combat Report ===\n")
	fmt.Fprintf(w, "runs=%d ticks=%d seed_base=%d seed_step=%d map=%s\n\n",
		o.runs, o.ticks, o.seedBase, o.seedStep, mapName(o))

	all := make([]runStats, 0, o.runs)
	for i := 0; i < o.runs; i++ {
		seed := o.seedBase + int64(i)*o.seedStep
		gen := maze.GenConfig{Cols: 31, Rows: 21, Braid: 0.3, Seed: seed}
		loader := maze.Loader(o.mapPath, o.generate, gen, rules.TileSize)
		rs, report, err := runAutopilot(i+1, seed, o.ticks, rules, loader)
		if err != nil {
			return fmt.Errorf("run %d: %w", i+1, err)
		}
		all = append(all, rs)
		printRun(w, rs)
		if o.report {
			fmt.Fprintln(w, report)
		}
	}
	printAggregate(w, all)
	return nil
}

func mapName(o options) string {
	switch {
	case o.mapPath != "":
		return o.mapPath
	case o.generate:
		return "generated"
	default:
		return "built-in"
	}
}

// runAutopilot plays one session with the scripted player until it dies or
// the tick budget runs out.
func runAutopilot(runIndex int, seed int64, ticks int, rules config.Rules, loader sim.MapLoader) (runStats, string, error) {
	grid, err := loader.LoadGrid()
	if err != nil {
		return runStats{}, "", err
	}
	rules.TileSize = grid.TileSize()
	s, err := sim.NewSession(rules, grid, sim.WithSeed(seed))
	if err != nil {
		return runStats{}, "", err
	}
	ap := sim.NewAutopilot(s)
	ts := sim.NewTestSim(s)
	ts.Script = func(int) sim.Intent { return ap.Poll() }
	ts.RunTicks(ticks)
	if err := ts.Err(); err != nil {
		return runStats{}, "", err
	}

	entries := ts.Log().Entries()
	res := ts.Result()
	return runStats{
		runIndex:         runIndex,
		seed:             seed,
		id:               res.SessionID,
		ticks:            res.Ticks,
		seconds:          res.Seconds,
		survived:         !ts.Over(),
		kills:            res.Kills,
		firstFireTick:    firstTick(entries, sim.CatWeapon, "fire", ""),
		firstHitTick:     firstTick(entries, sim.CatCombat, "hit", ""),
		firstContactTick: firstTick(entries, sim.CatCombat, "contact", ""),
		firstKillTick:    firstTick(entries, sim.CatCombat, "death", ""),
		escalateTick:     firstTick(entries, sim.CatWeapon, "escalate", ""),
		deathTick:        firstTick(entries, sim.CatSession, "player_death", ""),
		stats:            res.Stats,
		faults:           ts.Log().CountCategory(sim.CatFault, ""),
	}, ts.Report(), nil
}

func firstTick(entries []sim.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- Run %d (seed=%d id=%s) ---\n", rs.runIndex, rs.seed, rs.id)
	fmt.Fprintf(w, "outcome: survived=%t ticks=%d seconds=%.1f kills=%d\n",
		rs.survived, rs.ticks, rs.seconds, rs.kills)
	fmt.Fprintf(w, "phase_markers: first_fire=%d first_hit=%d first_contact=%d first_kill=%d escalate=%d death=%d\n",
		rs.firstFireTick, rs.firstHitTick, rs.firstContactTick, rs.firstKillTick, rs.escalateTick, rs.deathTick)
	fmt.Fprintf(w, "shots: player=%d enemy=%d accuracy=%s\n",
		rs.stats.PlayerShots, rs.stats.EnemyShots, percent(rs.stats.PlayerHits, rs.stats.PlayerShots))
	fmt.Fprintf(w, "hits: on_enemies=%d on_player=%d terrain=%d contact=%d replans=%d faults=%d\n",
		rs.stats.PlayerHits, rs.stats.EnemyHits, rs.stats.Impacts, rs.stats.ContactHits, rs.stats.Replans, rs.faults)
	fmt.Fprintln(w)
}

func printAggregate(w io.Writer, all []runStats) {
	var total sim.Stats
	totalKills, totalTicks, survivors := 0, 0, 0
	killTicks := make([]int, 0, len(all))
	deathTicks := make([]int, 0, len(all))
	for _, rs := range all {
		total.PlayerShots += rs.stats.PlayerShots
		total.EnemyShots += rs.stats.EnemyShots
		total.PlayerHits += rs.stats.PlayerHits
		total.EnemyHits += rs.stats.EnemyHits
		total.Impacts += rs.stats.Impacts
		total.ContactHits += rs.stats.ContactHits
		total.Replans += rs.stats.Replans
		totalKills += rs.kills
		totalTicks += rs.ticks
		if rs.survived {
			survivors++
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		if rs.deathTick >= 0 {
			deathTicks = append(deathTicks, rs.deathTick)
		}
	}

	n := len(all)
	fmt.Fprintln(w, "=== Aggregate ===")
	fmt.Fprintf(w, "runs=%d survived=%d (%s)\n", n, survivors, percent(survivors, n))
	fmt.Fprintf(w, "avg_per_run: ticks=%.1f kills=%.1f player_shots=%.1f enemy_shots=%.1f replans=%.1f\n",
		avg(totalTicks, n), avg(totalKills, n), avg(total.PlayerShots, n), avg(total.EnemyShots, n), avg(total.Replans, n))
	fmt.Fprintf(w, "avg_hits_per_run: on_enemies=%.1f on_player=%.1f terrain=%.1f contact=%.1f\n",
		avg(total.PlayerHits, n), avg(total.EnemyHits, n), avg(total.Impacts, n), avg(total.ContactHits, n))
	fmt.Fprintf(w, "player_accuracy=%s\n", percent(total.PlayerHits, total.PlayerShots))
	fmt.Fprintf(w, "phase_marker_ticks: first_kill avg=%s median=%s  death avg=%s median=%s\n",
		avgTickString(killTicks), medianTickString(killTicks), avgTickString(deathTicks), medianTickString(deathTicks))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func percent(part, whole int) string {
	if whole <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%%", float64(part)/float64(whole)*100)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func medianTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sorted := append([]int(nil), vals...)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return fmt.Sprintf("%d", sorted[mid])
	}
	return fmt.Sprintf("%.1f", float64(sorted[mid-1]+sorted[mid])/2)
}
