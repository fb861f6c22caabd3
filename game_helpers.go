package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/rules"
	"github.com/sheikhrachel/go-life/utils"
)

// Renderer draws one frame of the simulation
type Renderer interface {
	Clear()
	Restore()
	Display(g model.CellReader, status string) error
}

// buildEvaluator picks the declarative rule set when a rules directory is configured,
// otherwise the B/S rule or preset named by config.Ruleset
func buildEvaluator(config utils.Config) (rules.Evaluator, string, error) {
	if config.RulesDir != "" {
		loaded, err := utils.LoadRuleDir(config.RulesDir)
		if err != nil {
			return nil, "", err
		}
		defaultAction, err := rules.ParseAction(config.DefaultAction)
		if err != nil {
			return nil, "", errors.Wrap(err, "[buildEvaluator] default action")
		}
		name := fmt.Sprintf("%d rules from %s (default %s)", len(loaded), config.RulesDir, defaultAction)
		return rules.NewRuleSet(loaded, defaultAction), name, nil
	}

	rule, err := rules.Lookup(config.Ruleset)
	if err != nil {
		return nil, "", err
	}
	return rule, rule.String(), nil
}

// buildGrid seeds the grid from the configured pattern, a random fill, or the default glider
func buildGrid(config utils.Config) (*model.Grid, error) {
	size := config.Size

	switch {
	case len(config.Pattern) > 0:
		grid, err := model.NewGridWithCells(size, config.Wrap, make([]uint8, size*size))
		if err != nil {
			return nil, err
		}
		for _, p := range config.Pattern {
			if err = grid.SetCell(p[0], p[1], 1); err != nil {
				return nil, errors.Wrap(err, "[buildGrid] pattern")
			}
		}
		return grid, nil

	case config.RandomDensity > 0:
		seed := config.RandomSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewPCG(uint64(seed), 0))
		cells := make([]uint8, size*size)
		for i := range cells {
			if rng.Float64() < config.RandomDensity {
				cells[i] = 1
			}
		}
		return model.NewGridWithCells(size, config.Wrap, cells)

	default:
		return model.NewGrid(size, config.Wrap)
	}
}

// runSimulation draws and evolves the grid once per frame until ctx is done or a stop condition is met.
// It returns the reason the simulation ended.
func runSimulation(
	ctx context.Context,
	grid *model.Grid,
	evaluator rules.Evaluator,
	ruleName string,
	renderer Renderer,
	config utils.Config,
	stats *utils.Stats,
) (string, error) {
	renderer.Clear()
	defer renderer.Restore()

	ticker := time.NewTicker(max(config.FrameRate, time.Millisecond))
	defer ticker.Stop()

	var (
		history    model.History
		generation = 0
		lastFrame  = time.Now()
	)

	for {
		// compare against earlier states before recording the current one
		stagnant := history.Stagnant(grid)
		history.Record(grid)

		living := grid.CountLivingCells()
		stats.Update(generation, living, time.Since(lastFrame))
		lastFrame = time.Now()

		status := gameStatus(generation, living, grid.Size(), stagnant, ruleName, stats)
		if err := renderer.Display(grid, status); err != nil {
			return "", errors.Wrap(err, "[runSimulation] failed to draw frame")
		}

		if reason := checkStopConditions(generation, stagnant, config); reason != "" {
			return reason, nil
		}

		select {
		case <-ctx.Done():
			return "interrupted", nil
		case <-ticker.C:
		}

		grid.Evolve(evaluator)
		generation++
	}
}

// checkStopConditions determines if the simulation should end
func checkStopConditions(generation int, stagnant bool, config utils.Config) string {
	if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
		return fmt.Sprintf("reached maximum generations limit (%d)", config.MaxGenerations)
	}
	if config.StopOnStagnation && stagnant {
		return "stagnation detected"
	}
	return ""
}

// gameStatus renders the status lines shown above the grid
func gameStatus(generation, living, size int, stagnant bool, ruleName string, stats *utils.Stats) string {
	density := float64(living) / float64(size*size) * 100

	status := aurora.Colorize("Active", aurora.GreenFg).String()
	switch {
	case living == 0:
		status = aurora.Colorize("Extinct", aurora.RedFg).String()
	case stagnant:
		status = aurora.Colorize("Stagnant", aurora.MagentaFg).String()
	}

	return fmt.Sprintf("Rule: %s | Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n"+
		"Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs | Ctrl+C to exit",
		ruleName, generation, living, density, status,
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds())
}

// displayFinalStats prints the summary once the simulation has ended
func displayFinalStats(reason string, stats *utils.Stats) {
	fmt.Printf("Ended simulation: %s\n", reason)
	fmt.Printf("Final stats: %d generations in %.1f seconds\n",
		stats.TotalGenerations, stats.Runtime().Seconds())
	fmt.Printf("Average: %.1f avg population, %d peak population\n",
		stats.AveragePopulation, stats.PeakPopulation)
}
