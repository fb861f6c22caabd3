package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/integrii/flaggy"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/rules"
	"github.com/sheikhrachel/go-life/utils"
	"github.com/sheikhrachel/go-life/view"
)

const defaultConfigPath = "config.json"

// cliOptions override the config file; zero values (or -1 where zero is meaningful) mean unset
type cliOptions struct {
	configPath       string
	size             int
	bounded          bool
	ruleset          string
	rulesDir         string
	defaultAction    string
	interval         time.Duration
	generations      int
	density          float64
	seed             int64
	stopOnStagnation bool
	interactive      bool
}

func main() {
	config, err := initOptions()
	if err != nil {
		exitWithError(err)
	}

	evaluator, ruleName, err := buildEvaluator(config)
	if err != nil {
		exitWithError(err)
	}
	grid, err := buildGrid(config)
	if err != nil {
		exitWithError(err)
	}

	if config.Interactive {
		ui, err := view.NewConsoleUI(grid, evaluator, ruleName, config.FrameRate)
		if err != nil {
			exitWithError(err)
		}
		if err = ui.Start(); err != nil {
			exitWithError(err)
		}
		fmt.Printf("Ended simulation after %d generations.\n", ui.Generation())
		return
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats := utils.NewStats()
	reason, err := runSimulation(ctx, grid, evaluator, ruleName, model.NewTerminalRenderer(), config, stats)
	if err != nil {
		exitWithError(err)
	}
	displayFinalStats(reason, stats)
}

func initOptions() (utils.Config, error) {
	o := cliOptions{interval: -1, generations: -1, density: -1}

	flaggy.SetName("go-life")
	flaggy.SetDescription("Simulate Life-like cellular automata in the terminal")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&o.configPath, "c", "config", "JSON configuration file (default "+defaultConfigPath+" when present)")
	flaggy.Int(&o.size, "s", "size", "Width and height of the grid")
	flaggy.Bool(&o.bounded, "b", "bounded", "Treat cells beyond the edges as dead instead of wrapping")
	flaggy.String(&o.ruleset, "r", "ruleset", "B/S rule (e.g. B3/S23) or preset ["+strings.Join(rules.Presets(), "|")+"]")
	flaggy.String(&o.rulesDir, "d", "rules-dir", "Directory of declarative JSON rules, evaluated in file name order")
	flaggy.String(&o.defaultAction, "a", "default-action", "Action when no declarative rule matches [born|survive|die|unchanged]")
	flaggy.Duration(&o.interval, "i", "interval", "Interval between generations, for example 150ms")
	flaggy.Int(&o.generations, "g", "generations", "Stop after this many generations (0 runs forever)")
	flaggy.Float64(&o.density, "R", "random", "Seed the grid randomly with this live-cell density instead of a glider")
	flaggy.Int64(&o.seed, "", "seed", "Random seed for --random")
	flaggy.Bool(&o.stopOnStagnation, "", "stop-on-stagnation", "Stop once the grid is still or cycles with period 2 or 3")
	flaggy.Bool(&o.interactive, "n", "interactive", "Start the interactive terminal UI")
	flaggy.Parse()

	config, err := loadConfig(o.configPath)
	if err != nil {
		return config, err
	}
	o.apply(&config)

	if err = config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// loadConfig reads path, or the default config file when path is empty and the file exists
func loadConfig(path string) (utils.Config, error) {
	if path != "" {
		return utils.LoadConfig(path)
	}
	config, err := utils.LoadConfig(defaultConfigPath)
	if errors.Is(err, os.ErrNotExist) {
		return utils.DefaultConfig(), nil
	}
	return config, err
}

func (o cliOptions) apply(c *utils.Config) {
	if o.size > 0 {
		c.Size = o.size
	}
	if o.bounded {
		c.Wrap = false
	}
	if o.ruleset != "" {
		c.Ruleset = o.ruleset
	}
	if o.rulesDir != "" {
		c.RulesDir = o.rulesDir
	}
	if o.defaultAction != "" {
		c.DefaultAction = o.defaultAction
	}
	if o.interval >= 0 {
		c.FrameRate = o.interval
	}
	if o.generations >= 0 {
		c.MaxGenerations = o.generations
	}
	if o.density >= 0 {
		c.RandomDensity = o.density
	}
	if o.seed != 0 {
		c.RandomSeed = o.seed
	}
	if o.stopOnStagnation {
		c.StopOnStagnation = true
	}
	if o.interactive {
		c.Interactive = true
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, aurora.Red("error:").Bold().String(), err)
	os.Exit(1)
}
