package view

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/rules"
)

const (
	viewHeader        = "header"
	viewConfiguration = "configuration"
	viewStatus        = "status"
	viewField         = "field"
	viewHelp          = "help"

	leftColumnWidth = 28
	minWindowHeight = 20
)

type keyBinding struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

/*
ConsoleUI is the interactive terminal front end.

Every grid mutation happens on the gocui main loop: keybinding handlers run there,
and the run ticker hands each step over with Gui.Update.
*/
type ConsoleUI struct {
	g        *gocui.Gui
	k        []keyBinding
	grid     *model.Grid
	rule     rules.Evaluator
	ruleName string
	interval time.Duration

	generation int
	history    model.History
	lastStep   time.Duration
	stagnant   bool
	cancelRun  context.CancelFunc

	liveFiller string
	deadFiller string
}

// NewConsoleUI creates the terminal UI for grid driven by rule
func NewConsoleUI(grid *model.Grid, rule rules.Evaluator, ruleName string, interval time.Duration) (*ConsoleUI, error) {
	t := &ConsoleUI{
		grid:       grid,
		rule:       rule,
		ruleName:   ruleName,
		interval:   interval,
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	var err error
	if t.g, err = gocui.NewGui(gocui.OutputNormal); err != nil {
		return nil, errors.Wrap(err, "[NewConsoleUI] failed to open terminal")
	}
	t.g.Mouse = true

	t.k = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdStep, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle cell", t.cmdToggle, viewField},
	}
	t.g.SetManagerFunc(t.layout)

	for _, kb := range t.k {
		h := kb.handler
		if err = t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error { return h(v) }); err != nil {
			t.g.Close()
			return nil, errors.Wrapf(err, "[NewConsoleUI] failed to bind %s", kb.name)
		}
	}
	return t, nil
}

// Start runs the UI until the user quits
func (t *ConsoleUI) Start() error {
	defer t.g.Close()
	defer t.stopRun()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return errors.Wrap(err, "[Start] main loop failed")
	}
	return nil
}

// Generation returns the number of generations computed so far
func (t *ConsoleUI) Generation() int {
	return t.generation
}

// step advances one generation; call only on the gocui main loop
func (t *ConsoleUI) step() {
	start := time.Now()
	t.history.Record(t.grid)
	t.grid.Evolve(t.rule)
	t.generation++
	t.stagnant = t.history.Stagnant(t.grid)
	t.lastStep = time.Since(start)
}

func (t *ConsoleUI) stopRun() {
	if t.cancelRun != nil {
		t.cancelRun()
		t.cancelRun = nil
	}
}

func (t *ConsoleUI) tick(ctx context.Context) {
	ticker := time.NewTicker(max(t.interval, time.Millisecond))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.g.Update(func(*gocui.Gui) error {
				if ctx.Err() == nil {
					t.step()
				}
				return nil
			})
		}
	}
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if maxY < minWindowHeight {
		if err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			return err
		}
		_ = g.DeleteView(viewConfiguration)
		_ = g.DeleteView(viewStatus)
		_ = g.DeleteView(viewField)
		return nil
	}
	if err := t.headerLayout(g, 3, "Life-like cellular automaton"); err != nil {
		return err
	}

	split := 3 + (maxY-5-3)/2
	if v, err := g.SetView(viewConfiguration, 0, 3, leftColumnWidth, split); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Configuration"
	}
	if v, err := g.SetView(viewStatus, 0, split+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
	}
	if v, err := g.SetView(viewField, leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Field"
	}
	if v, err := g.SetView(viewHelp, -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		fmt.Fprintln(v, t.helpLine())
	}

	t.renderConfiguration(g)
	t.renderStatus(g)
	t.renderField(g)
	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) error {
	maxX, _ := g.Size()
	v, err := g.SetView(viewHeader, -1, -1, maxX+1, height)
	if err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorCyan
		v.FgColor = gocui.ColorBlack
	}
	v.Clear()
	pad := max((maxX-len(text))/2, 0)
	fmt.Fprintln(v, strings.Repeat("\n", height/2)+strings.Repeat(" ", pad)+text)
	return nil
}

func (t *ConsoleUI) renderField(g *gocui.Gui) {
	v, err := g.View(viewField)
	if err != nil {
		return
	}
	v.Clear()

	size := t.grid.Size()
	maxW, maxH := v.Size()
	crop := cropped(size, maxW, maxH)

	var b bytes.Buffer
	for y := range size {
		if y >= maxH {
			break
		}
		if y != 0 {
			b.WriteByte('\n')
		}
		if crop && y == maxH-1 {
			b.WriteString(aurora.Red("The field is larger than the viewing area").BgBlack().String())
			break
		}
		for x := range min(size, maxW) {
			if t.grid.GetCell(x, y) == 1 {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
	}
	fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus(g *gocui.Gui) {
	v, err := g.View(viewStatus)
	if err != nil {
		return
	}
	v.Clear()

	mode := aurora.Colorize("waiting", aurora.BlueFg).String()
	if t.cancelRun != nil {
		mode = aurora.Colorize("running", aurora.CyanFg).String()
	}
	if t.stagnant {
		mode += aurora.Colorize(" (stagnant)", aurora.RedFg).String()
	}
	fmt.Fprintln(v, renderProp("Generation", "%v", t.generation))
	fmt.Fprintln(v, renderProp("Live Cells", "%v", t.grid.CountLivingCells()))
	fmt.Fprintln(v, renderProp("Step time", "%v", t.lastStep.Round(time.Microsecond)))
	fmt.Fprintln(v, renderProp("Mode", "%v", mode))
}

func (t *ConsoleUI) renderConfiguration(g *gocui.Gui) {
	v, err := g.View(viewConfiguration)
	if err != nil {
		return
	}
	v.Clear()
	size := t.grid.Size()
	fmt.Fprintln(v, renderProp("Dimension", "%v x %v", size, size))
	fmt.Fprintln(v, renderProp("Wrap", "%v", t.grid.Wrap()))
	fmt.Fprintln(v, renderProp("Rule", "%v", t.ruleName))
	fmt.Fprintln(v, renderProp("Interval", "%v", t.interval))
}

func (t *ConsoleUI) helpLine() string {
	b := bytes.Buffer{}
	b.WriteString("KEYBINDINGS: ")
	for i, k := range t.k {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(aurora.Green(k.name).String())
		b.WriteString(": ")
		b.WriteString(k.descr)
	}
	return b.String()
}

func renderProp(name string, valueFormat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueFormat, values...)
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdStep(_ *gocui.View) error {
	if t.cancelRun == nil {
		t.step()
	}
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	if t.cancelRun != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancelRun = cancel
	go t.tick(ctx)
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.stopRun()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.stopRun()
	size := t.grid.Size()
	for y := range size {
		for x := range size {
			if err := t.grid.SetCell(x, y, 0); err != nil {
				return err
			}
		}
	}
	t.generation = 0
	t.stagnant = false
	t.history.Reset()
	return nil
}

func (t *ConsoleUI) cmdToggle(v *gocui.View) error {
	cx, cy := v.Cursor()
	maxW, maxH := v.Size()
	return t.toggle(cx, cy, maxW, maxH)
}

// toggle flips the cell under a click at cx, cy in a field view of maxW x maxH
func (t *ConsoleUI) toggle(cx, cy, maxW, maxH int) error {
	size := t.grid.Size()
	if cx < 0 || cy < 0 || cx >= min(size, maxW) || cy >= min(size, maxH) {
		return nil
	}
	// the last row of a cropped field holds the warning, not cells
	if cropped(size, maxW, maxH) && cy >= maxH-1 {
		return nil
	}
	return t.grid.SetCell(cx, cy, 1-t.grid.GetCell(cx, cy))
}

func cropped(size, maxW, maxH int) bool {
	return size > maxW || size > maxH
}
