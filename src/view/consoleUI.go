package view

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"gameoflife/src/universe"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal viewer
type ConsoleUI struct {
	u      universe.Universe
	g      *gocui.Gui
	k      []keyBindings
	logger *slog.Logger

	liveFiller string
	deadFiller string
	template   int //index of the next template to settle
}

var (
	runningStateDescr = map[universe.RunningState]string{
		universe.RunningStatePaused:  aurora.Colorize("paused", aurora.BlueFg).String(),
		universe.RunningStateRunning: aurora.Colorize("running", aurora.CyanFg).String(),
	}
)

//NewViewTerminal creates the terminal UI, the terminal is taken over until Start returns
func NewViewTerminal(logger *slog.Logger) (*ConsoleUI, error) {
	if logger == nil {
		logger = slog.Default()
	}
	t := ConsoleUI{
		logger:     logger,
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	var err error
	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{gocui.KeySpace, "SPACE", "Play/Pause", t.cmdTogglePlay, ""},
		{'n', "N", "Next step", t.cmdNextRound, ""},
		{'c', "C", "Kill all", t.cmdKillAll, ""},
		{'w', "W", "Randomize", t.cmdRandomize, ""},
		{'t', "T", "Next template", t.cmdNextTemplate, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, "battlefield"},
	}
	t.g.SetManagerFunc(t.layout)

	if err := t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}
	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			return fmt.Errorf("bind %s: %w", kb.name, err)
		}
	}
	return nil
}

func (t *ConsoleUI) Register(u universe.Universe) {
	t.u = u
}

//Start runs the UI main loop until the user quits
func (t *ConsoleUI) Start() error {
	defer t.g.Close()
	if err := t.g.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		return err
	}
	return nil
}

func (t *ConsoleUI) Refresh() {
	if t.u == nil {
		return
	}
	t.renderField(t.u.Area())
	t.renderStatus()
}

func (t *ConsoleUI) renderField(a universe.Area) {
	t.g.Update(func(g *gocui.Gui) error {
		v, err := g.View("battlefield")
		if err != nil {
			return nil
		}
		v.Clear()
		_, _ = fmt.Fprint(v, renderArea(a, v, t.liveFiller, t.deadFiller))
		return nil
	})
}

type sizer interface {
	Size() (x, y int)
}

//renderArea draws the area cropped to the view size
func renderArea(a universe.Area, v sizer, liveFiller string, deadFiller string) string {
	maxW, maxH := v.Size()
	crop := a.Width > maxW || a.Height > maxH

	var b bytes.Buffer
	for i, l := range a.Entities {
		//discard the data outside the view area
		if i >= maxH {
			break
		}
		if i != 0 {
			b.WriteByte('\n')
		}
		if crop && i == maxH-1 {
			b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
			break
		}
		for j, e := range l {
			if j >= maxW {
				break
			}
			if e == universe.Alive {
				b.WriteString(liveFiller)
			} else {
				b.WriteString(deadFiller)
			}
		}
	}
	return b.String()
}

func (t *ConsoleUI) renderStatus() {
	s := t.u.Status()
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := g.View("status"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, renderProp("Generation", "%v", s.Generation))
			_, _ = fmt.Fprintln(v, renderProp("Live Cells", "%v", s.LiveCells))
			_, _ = fmt.Fprintln(v, renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		c := t.u.Options()
		if v, e := g.View("configuration"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, renderProp("Dimension", "%v x %v", c.Height, c.Width))
			_, _ = fmt.Fprintln(v, renderProp("Interval", "%v", c.Interval))
			_, _ = fmt.Fprintln(v, renderProp("Engine", "%v", c.Engine))
			_, _ = fmt.Fprintln(v, renderProp("Fill", "%v", c.Fill))
		}
		return nil
	})
}

func renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil && !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("battlefield")
		return nil
	}
	if _, err := t.headerLayout(g, 3, "This is \"The Life\" game simulation"); err != nil && !errors.Is(err, gocui.ErrUnknownView) {
		return err
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration()
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus()
	}

	v, err := g.SetView("battlefield", leftColumnWidth+1, 3, maxX-1, maxY-5)
	if err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) || v == nil {
			return err
		}
		v.Title = "Battle Field"
		v.Frame = true
	}
	//layout runs inside the main loop, so the field is drawn directly instead of through Update
	v.Clear()
	_, _ = fmt.Fprint(v, renderArea(t.u.Area(), v, t.liveFiller, t.deadFiller))

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) || v == nil {
			return err
		}
		v.Frame = false
		_, _ = fmt.Fprintln(v, helpLine(t.k))
	}

	return nil
}

func helpLine(k []keyBindings) string {
	b := bytes.Buffer{}
	b.WriteString("KEYBINDINGS: ")
	for i, kb := range k {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(aurora.Green(kb.name).String())
		b.WriteString(": ")
		b.WriteString(kb.descr)
	}
	return b.String()
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if errors.Is(err, gocui.ErrUnknownView) && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		if maxX < len(text) {
			text = text[:max(maxX, 0)]
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", (maxX-len(text))/2)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdTogglePlay(_ *gocui.View) error {
	t.u.TogglePlay()
	return nil
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.u.Step()
	return nil
}

func (t *ConsoleUI) cmdKillAll(_ *gocui.View) error {
	t.u.KillAllCells()
	return nil
}

func (t *ConsoleUI) cmdRandomize(_ *gocui.View) error {
	t.u.RandomizeCells()
	return nil
}

//cmdNextTemplate settles the templates one after another on a cleared field
func (t *ConsoleUI) cmdNextTemplate(_ *gocui.View) error {
	tmpls := t.u.Templates()
	if len(tmpls) == 0 {
		return nil
	}
	tmpl := tmpls[t.template%len(tmpls)]
	t.template++
	t.u.KillAllCells()
	if err := t.u.SettleTemplate(tmpl.Name); err != nil {
		t.logger.Warn("settle template", slog.String("template", tmpl.Name), slog.Any("error", err))
	}
	return nil
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	column, row := v.Cursor()
	if err := t.u.ToggleCell(row, column); err != nil {
		t.logger.Debug("toggle cell", slog.Any("error", err))
	}
	return nil
}
