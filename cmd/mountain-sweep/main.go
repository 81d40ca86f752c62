package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"sled-mountain/internal/app"
	"sled-mountain/internal/mountain"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// layerSummary accumulates one layer's statistics over every swept seed.
type layerSummary struct {
	index         int
	circumference int
	counts        [mountain.TileTypeCount]int
	ramps         int
	seeds         int
}

func (s layerSummary) mean(v int) float64 {
	if s.seeds == 0 {
		return 0
	}
	return float64(v) / float64(s.seeds)
}

type seedResult struct {
	seed   string
	stats  []mountain.LayerStats
	ramps  []int
	err    error
	buildT time.Duration
}

func main() {
	flags := app.NewConfig()
	flags.Bind(flag.CommandLine)
	count := flag.Int("seeds", 64, "number of seeds to sweep")
	prefix := flag.String("prefix", "sweep-", "prefix of the generated seed names")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	cfg, err := flags.Resolve()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	seeds := make([]string, *count)
	for i := range seeds {
		seeds[i] = *prefix + strconv.Itoa(i)
	}
	fmt.Printf("Sweeping %d seeds (%d workers, preset %q)\n", len(seeds), *workers, cfg.Preset)

	start := time.Now()
	summaries, slowest, err := sweep(cfg.Mountain, seeds, *workers)
	if err != nil {
		log.Fatalf("sweep: %v", err)
	}
	fmt.Println(renderTable(summaries))
	fmt.Printf("\nelapsed %s, slowest build %s (%q)\n", time.Since(start).Round(time.Millisecond), slowest.buildT.Round(time.Microsecond), slowest.seed)
}

// sweep builds a mountain for every seed on a worker pool and folds the
// per-layer statistics together.
func sweep(cfg mountain.Config, seeds []string, workers int) ([]layerSummary, seedResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, seedResult{}, err
	}
	if workers <= 0 {
		workers = 1
	}
	jobs := make(chan string)
	results := make(chan seedResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				results <- buildOne(cfg, seed)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, seed := range seeds {
			jobs <- seed
		}
		close(jobs)
	}()

	summaries := make([]layerSummary, cfg.TotalLayers)
	var slowest seedResult
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("seed %q: %w", res.seed, res.err)
			}
			continue
		}
		if slowest.seed == "" || res.buildT > slowest.buildT {
			slowest = res
		}
		for i, st := range res.stats {
			s := &summaries[i]
			s.index = st.Index
			s.circumference = st.Circumference
			for t, n := range st.Counts {
				s.counts[t] += n
			}
			s.ramps += res.ramps[i]
			s.seeds++
		}
	}
	if firstErr != nil {
		return nil, seedResult{}, firstErr
	}
	return summaries, slowest, nil
}

func buildOne(cfg mountain.Config, seed string) seedResult {
	start := time.Now()
	m, err := mountain.New(seed, cfg)
	if err != nil {
		return seedResult{seed: seed, err: err}
	}
	ramps := make([]int, 0, len(m.Layers()))
	for _, l := range m.Layers() {
		ramps = append(ramps, l.RampPatches())
	}
	return seedResult{seed: seed, stats: m.Stats(), ramps: ramps, buildT: time.Since(start)}
}

func renderTable(summaries []layerSummary) string {
	headers := []string{"Layer", "Circ."}
	for t := 0; t < mountain.TileTypeCount; t++ {
		headers = append(headers, mountain.TileType(t).String())
	}
	headers = append(headers, "patches")

	rows := make([][]string, 0, len(summaries))
	for i := len(summaries) - 1; i >= 0; i-- {
		s := summaries[i]
		row := []string{strconv.Itoa(s.index), strconv.Itoa(s.circumference)}
		for _, n := range s.counts {
			row = append(row, fmt.Sprintf("%.1f", s.mean(n)))
		}
		row = append(row, fmt.Sprintf("%.1f", s.mean(s.ramps)))
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		BorderHeader(true).
		BorderRow(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == 0 {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}
