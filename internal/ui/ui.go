package ui

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/sworgkh/game-of-life-studio/internal/engine"
	"github.com/sworgkh/game-of-life-studio/internal/patterns"
	"github.com/sworgkh/game-of-life-studio/internal/store"
	"github.com/sworgkh/game-of-life-studio/internal/util"
)

const (
	viewBoard      = "board"
	viewPatterns   = "patterns"
	viewRecordings = "recordings"
	viewSettings   = "settings"
	viewHelp       = "help"
)

var seedEncoding = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// speedSteps are the available tick intervals, slowest first.
var speedSteps = []time.Duration{
	600 * time.Millisecond,
	300 * time.Millisecond,
	120 * time.Millisecond,
	60 * time.Millisecond,
	30 * time.Millisecond,
}

type tickMsg time.Time

type model struct {
	ctx     context.Context
	session *engine.Session
	lib     *patterns.Library
	db      *store.DB
	recRepo *store.RecordingRepo
	setRepo *store.SettingsRepo
	cfg     util.Config
	seed    engine.Seed
	version string

	view   string
	width  int
	height int
	status string
	styles boardStyles

	// board cursor and stamp selection
	curRow   int
	curCol   int
	stamp    string
	stampDeg int

	// pattern browser
	patternQuery string
	patternList  []engine.Pattern
	patternIdx   int

	// recordings browser
	recordings []engine.RecordingSummary
	recIdx     int
	naming     bool
	nameInput  string

	// scrub mode over the recorded buffer
	scrubbing bool
	scrubIdx  int
	playing   bool

	speedIdx int
}

func randomSeedText() string {
	buf := make([]byte, 15)
	if _, err := rand.Read(buf); err != nil {
		return "fallback-seed"
	}
	return strings.ToLower(seedEncoding.EncodeToString(buf))
}

// initialModel wires the session from config; persistence may be nil.
func initialModel(ctx context.Context, db *store.DB, cfg util.Config, version string) model {
	seed, err := engine.NewSeed(cfg.SeedText)
	if err != nil {
		seed, _ = engine.NewSeed(randomSeedText())
	}
	rule, err := engine.ParseRule(cfg.Rule)
	if err != nil {
		rule = engine.Conway()
	}
	lib := patterns.New()
	var recRepo *store.RecordingRepo
	var setRepo *store.SettingsRepo
	var recStore engine.RecordingStore
	if db != nil {
		recRepo = store.NewRecordingRepo(db)
		setRepo = store.NewSettingsRepo(db)
		recStore = recRepo
	}
	session := engine.NewSession(engine.SessionConfig{
		Rows:        cfg.Rows,
		Cols:        cfg.Cols,
		Rule:        rule,
		MaxHistory:  cfg.MaxHistory,
		MaxFrames:   cfg.MaxFrames,
		StableAfter: cfg.StableAfter,
	}, recStore, lib)
	m := model{
		ctx:         ctx,
		session:     session,
		lib:         lib,
		db:          db,
		recRepo:     recRepo,
		setRepo:     setRepo,
		cfg:         cfg,
		seed:        seed,
		version:     version,
		view:        viewBoard,
		styles:      stylesFor(cfg.Theme),
		stamp:       "glider",
		patternList: lib.Search(""),
		speedIdx:    nearestSpeed(cfg.TickMillis),
	}
	return m
}

func nearestSpeed(tickMillis int) int {
	want := time.Duration(tickMillis) * time.Millisecond
	best := 0
	for i, d := range speedSteps {
		if abs(d-want) < abs(speedSteps[best]-want) {
			best = i
		}
	}
	return best
}

func abs(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func (m *model) tickInterval() time.Duration { return speedSteps[m.speedIdx] }

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// persistSettings writes the current config through the settings repo.
// Storage errors surface in the status line; the session keeps going.
func (m *model) persistSettings() {
	if m.setRepo == nil {
		return
	}
	payload, err := util.EncodeSettings(m.cfg)
	if err != nil {
		m.status = "settings encode failed: " + err.Error()
		return
	}
	if err := m.setRepo.Save(m.ctx, payload); err != nil {
		m.status = "settings save failed: " + err.Error()
	}
}

func (m *model) refreshRecordings() {
	if m.recRepo == nil {
		m.recordings = nil
		return
	}
	recs, err := m.recRepo.ListRecordings(m.ctx)
	if err != nil {
		m.status = "list recordings failed: " + err.Error()
		return
	}
	m.recordings = recs
	if m.recIdx >= len(m.recordings) {
		m.recIdx = 0
	}
}

func (m *model) clampCursor() {
	rows, cols := m.session.Grid.Dimensions()
	if m.curRow < 0 {
		m.curRow = 0
	}
	if m.curRow >= rows {
		m.curRow = rows - 1
	}
	if m.curCol < 0 {
		m.curCol = 0
	}
	if m.curCol >= cols {
		m.curCol = cols - 1
	}
}

// enterScrub pauses the run and positions the scrub cursor on the latest
// recorded frame.
func (m *model) enterScrub() bool {
	if m.session.Recorder.Len() == 0 {
		m.status = "no recorded frames to scrub"
		return false
	}
	m.session.SetRunning(false)
	if !m.scrubbing {
		m.scrubbing = true
		m.scrubIdx = m.session.Recorder.Len() - 1
	}
	return true
}

func (m *model) scrubBy(delta int) {
	if !m.enterScrub() {
		return
	}
	m.scrubIdx += delta
	if m.scrubIdx < 0 {
		m.scrubIdx = 0
	}
	if last := m.session.Recorder.Len() - 1; m.scrubIdx > last {
		m.scrubIdx = last
	}
	if err := m.session.ScrubTo(m.scrubIdx); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("frame %d/%d", m.scrubIdx+1, m.session.Recorder.Len())
}

func (m *model) toggleRun() tea.Cmd {
	if m.scrubbing {
		m.scrubbing = false
		m.playing = false
	}
	if m.session.Running() {
		m.session.SetRunning(false)
		m.status = "paused"
		return nil
	}
	m.session.SetRunning(true)
	m.status = "running"
	return tickCmd(m.tickInterval())
}

func (m *model) stampAtCursor() {
	err := m.session.PlacePattern(m.stamp, m.curRow, m.curCol, m.stampDeg)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("stamped %s (%d°) at %d,%d", m.stamp, m.stampDeg, m.curRow, m.curCol)
}

func (m *model) saveRecording(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		m.status = "recording name must not be empty"
		return
	}
	if _, err := m.session.SaveRecording(m.ctx, name); err != nil {
		m.status = "save failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("saved recording %q (%d frames)", name, m.session.Recorder.Len())
	m.refreshRecordings()
}

func (m *model) loadRecording(name string) {
	if err := m.session.LoadRecording(m.ctx, name); err != nil {
		m.status = "load failed: " + err.Error()
		return
	}
	m.scrubbing = true
	m.scrubIdx = 0
	m.view = viewBoard
	m.status = fmt.Sprintf("loaded %q at frame 1/%d", name, m.session.Recorder.Len())
}

// tea.Model implementation ---------------------------------------------------

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.session.Running() {
			m.session.Tick()
			if !m.session.Running() {
				m.status = fmt.Sprintf("stable at generation %d — halted", m.session.Grid.Generation())
				return m, nil
			}
			return m, tickCmd(m.tickInterval())
		}
		if m.playing {
			last := m.session.Recorder.Len() - 1
			if m.scrubIdx >= last {
				m.playing = false
				m.status = "playback finished"
				return m, nil
			}
			m.scrubBy(1)
			return m, tickCmd(m.tickInterval())
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m model) handleKey(k string) (tea.Model, tea.Cmd) {
	if k == "ctrl+c" {
		return m, tea.Quit
	}
	if m.view == viewPatterns {
		return m.handlePatternsKey(k)
	}
	if m.view == viewRecordings {
		return m.handleRecordingsKey(k)
	}
	if m.view == viewSettings {
		return m.handleSettingsKey(k)
	}
	if m.view == viewHelp {
		switch k {
		case "esc", "q", "?":
			m.view = viewBoard
		}
		return m, nil
	}
	return m.handleBoardKey(k)
}

func (m model) handleBoardKey(k string) (tea.Model, tea.Cmd) {
	switch k {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.curRow--
	case "down", "j":
		m.curRow++
	case "left", "h":
		m.curCol--
	case "right", "l":
		m.curCol++
	case " ":
		cmd := m.toggleRun()
		return m, cmd
	case "enter", "x":
		if err := m.session.ToggleCell(m.curRow, m.curCol); err != nil {
			m.status = err.Error()
		} else {
			m.scrubbing = false
			m.status = ""
		}
	case "n":
		m.session.SetRunning(false)
		m.scrubbing = false
		m.session.Step()
		m.status = fmt.Sprintf("generation %d", m.session.Grid.Generation())
	case "u":
		if err := m.session.Undo(); err != nil {
			m.status = err.Error()
		} else {
			m.status = "undone"
		}
	case "ctrl+r":
		if err := m.session.Redo(); err != nil {
			m.status = err.Error()
		} else {
			m.status = "redone"
		}
	case "c":
		m.session.ClearGrid()
		m.status = "board cleared"
	case "z":
		m.session.RandomizeGrid(m.cfg.Density, m.seed.Stream(fmt.Sprintf("soup:%d", time.Now().UnixNano())))
		m.status = fmt.Sprintf("random soup at %d%%", m.cfg.Density)
	case "g":
		m.stampAtCursor()
	case "o":
		m.stampDeg = (m.stampDeg + 90) % 360
		m.status = fmt.Sprintf("stamp rotation %d°", m.stampDeg)
	case "[":
		m.scrubBy(-1)
	case "]":
		m.scrubBy(1)
	case "{":
		m.scrubBy(-10)
	case "}":
		m.scrubBy(10)
	case "p":
		if m.enterScrub() {
			m.playing = !m.playing
			if m.playing {
				return m, tickCmd(m.tickInterval())
			}
		}
	case "esc":
		m.scrubbing = false
		m.playing = false
		m.status = ""
	case "+", "=":
		if m.speedIdx < len(speedSteps)-1 {
			m.speedIdx++
		}
		m.cfg.TickMillis = int(m.tickInterval() / time.Millisecond)
		m.persistSettings()
		m.status = fmt.Sprintf("tick %v", m.tickInterval())
	case "-":
		if m.speedIdx > 0 {
			m.speedIdx--
		}
		m.cfg.TickMillis = int(m.tickInterval() / time.Millisecond)
		m.persistSettings()
		m.status = fmt.Sprintf("tick %v", m.tickInterval())
	case "b":
		m.view = viewPatterns
		m.patternQuery = ""
		m.patternList = m.lib.Search("")
	case "v":
		m.view = viewRecordings
		m.naming = false
		m.refreshRecordings()
	case "s":
		m.view = viewSettings
	case "?":
		m.view = viewHelp
	}
	m.clampCursor()
	return m, nil
}

func (m model) handlePatternsKey(k string) (tea.Model, tea.Cmd) {
	switch k {
	case "esc", "q":
		m.view = viewBoard
	case "up":
		if m.patternIdx > 0 {
			m.patternIdx--
		}
	case "down":
		if m.patternIdx < len(m.patternList)-1 {
			m.patternIdx++
		}
	case "enter":
		if m.patternIdx < len(m.patternList) {
			m.stamp = m.patternList[m.patternIdx].Name
			m.view = viewBoard
			m.status = fmt.Sprintf("selected %s — press g to stamp", m.stamp)
		}
	case "backspace":
		if len(m.patternQuery) > 0 {
			m.patternQuery = m.patternQuery[:len(m.patternQuery)-1]
			m.patternList = m.lib.Search(m.patternQuery)
			m.patternIdx = 0
		}
	default:
		if len(k) == 1 {
			m.patternQuery += k
			m.patternList = m.lib.Search(m.patternQuery)
			m.patternIdx = 0
		}
	}
	return m, nil
}

func (m model) handleRecordingsKey(k string) (tea.Model, tea.Cmd) {
	if m.naming {
		switch k {
		case "enter":
			m.naming = false
			m.saveRecording(m.nameInput)
		case "esc":
			m.naming = false
			m.nameInput = ""
		case "backspace":
			if len(m.nameInput) > 0 {
				m.nameInput = m.nameInput[:len(m.nameInput)-1]
			}
		default:
			if len(k) == 1 {
				m.nameInput += k
			}
		}
		return m, nil
	}
	switch k {
	case "esc", "q":
		m.view = viewBoard
	case "up", "k":
		if m.recIdx > 0 {
			m.recIdx--
		}
	case "down", "j":
		if m.recIdx < len(m.recordings)-1 {
			m.recIdx++
		}
	case "enter":
		if m.recIdx < len(m.recordings) {
			m.loadRecording(m.recordings[m.recIdx].Name)
		}
	case "s":
		if m.session.Recorder.Len() == 0 {
			m.status = "nothing recorded yet"
		} else {
			m.naming = true
			m.nameInput = ""
		}
	case "d":
		if m.recRepo != nil && m.recIdx < len(m.recordings) {
			name := m.recordings[m.recIdx].Name
			if err := m.recRepo.DeleteRecording(m.ctx, name); err != nil {
				m.status = "delete failed: " + err.Error()
			} else {
				m.status = fmt.Sprintf("deleted %q", name)
			}
			m.refreshRecordings()
		}
	case "x":
		m.session.Recorder.Clear()
		m.scrubbing = false
		m.status = "recording buffer cleared"
	case "r":
		m.refreshRecordings()
	}
	return m, nil
}

func (m model) handleSettingsKey(k string) (tea.Model, tea.Cmd) {
	switch k {
	case "esc", "q":
		m.view = viewBoard
	case "t":
		m.cfg.Theme = nextThemeName(m.cfg.Theme, 1)
		m.styles = stylesFor(m.cfg.Theme)
		m.persistSettings()
	case "d":
		m.cfg.Density = m.cfg.Density + 10
		if m.cfg.Density > 80 {
			m.cfg.Density = 10
		}
		m.persistSettings()
	case "a":
		// cycle the auto-stop threshold through common values
		switch m.cfg.StableAfter {
		case 1:
			m.cfg.StableAfter = 2
		case 2:
			m.cfg.StableAfter = 5
		default:
			m.cfg.StableAfter = 1
		}
		m.session.Stepper.StableAfter = m.cfg.StableAfter
		m.persistSettings()
	case "r":
		next := nextRule(m.cfg.Rule)
		rule, err := engine.ParseRule(next)
		if err != nil {
			m.status = "rule parse failed: " + err.Error()
			return m, nil
		}
		m.cfg.Rule = rule.String()
		m.session.Grid.SetRule(rule)
		m.persistSettings()
	case "+", "=":
		m.resizeBoard(m.session.Grid.Rows()+5, m.session.Grid.Cols()+10)
	case "-":
		m.resizeBoard(m.session.Grid.Rows()-5, m.session.Grid.Cols()-10)
	}
	return m, nil
}

// wellKnownRules cycles through a few named rulesets in settings.
var wellKnownRules = []string{"B3/S23", "B36/S23", "B3678/S34678", "B2/S", "B1357/S1357"}

func nextRule(current string) string {
	for i, r := range wellKnownRules {
		if r == current {
			return wellKnownRules[(i+1)%len(wellKnownRules)]
		}
	}
	return wellKnownRules[0]
}

func (m *model) resizeBoard(rows, cols int) {
	if err := m.session.Grid.Resize(rows, cols); err != nil {
		m.status = "resize failed: " + err.Error()
		return
	}
	m.cfg.Rows, m.cfg.Cols = m.session.Grid.Dimensions()
	m.clampCursor()
	m.persistSettings()
	m.status = fmt.Sprintf("board %dx%d", m.cfg.Rows, m.cfg.Cols)
}

// Rendering ------------------------------------------------------------------

func (m model) View() string {
	switch m.view {
	case viewPatterns:
		return m.renderPatterns()
	case viewRecordings:
		return m.renderRecordings()
	case viewSettings:
		return m.renderSettings()
	case viewHelp:
		return m.renderHelp()
	default:
		return m.renderBoard()
	}
}

// fadeWindow is how many generations a changed cell keeps its fade tint.
const fadeWindow = 2

func (m model) renderBoard() string {
	g := m.session.Grid
	rows, cols := g.Dimensions()
	gen := g.Generation()

	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell, err := g.Get(r, c)
			if err != nil {
				continue
			}
			ch := "· "
			style := m.styles.cellDead
			switch {
			case cell.Alive && cell.Age >= 5:
				ch, style = "██", m.styles.cellOld
			case cell.Alive:
				ch, style = "██", m.styles.cellYoung
			case gen-cell.LastChanged < fadeWindow && cell.LastChanged > 0:
				ch, style = "▒▒", m.styles.cellFade
			}
			if r == m.curRow && c == m.curCol && !m.session.Running() {
				style = m.styles.cursor
				if !cell.Alive {
					ch = "[]"
				}
			}
			b.WriteString(style.Render(ch))
		}
		b.WriteByte('\n')
	}

	header := m.styles.title.Render("Game of Life Studio") + m.styles.muted.Render("  "+m.version)
	state := "editing"
	if m.session.Running() {
		state = "running"
	}
	if m.scrubbing {
		state = fmt.Sprintf("scrub %d/%d", m.scrubIdx+1, m.session.Recorder.Len())
	}
	info := fmt.Sprintf("gen %d · pop %d · %s · %dx%d · tick %v · %s",
		gen, g.Population(), g.Rule(), rows, cols, m.tickInterval(), state)
	hints := "space run · x toggle · n step · g stamp · b patterns · v recordings · u undo · [ ] scrub · ? help · q quit"

	var out strings.Builder
	out.WriteString(header + "\n")
	out.WriteString(m.styles.status.Render(info) + "\n")
	out.WriteString(m.styles.border.Render(strings.TrimRight(b.String(), "\n")) + "\n")
	if m.status != "" {
		out.WriteString(m.styles.warn.Render(m.status) + "\n")
	}
	out.WriteString(m.styles.muted.Render(hints))
	return out.String()
}

func (m model) renderPatterns() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Pattern Library") + "\n")
	b.WriteString(m.styles.muted.Render("type to search · enter select · esc back") + "\n\n")
	if m.patternQuery != "" {
		b.WriteString(m.styles.status.Render("search: "+m.patternQuery) + "\n\n")
	}
	if len(m.patternList) == 0 {
		b.WriteString(m.styles.muted.Render("(no matches)") + "\n")
		return b.String()
	}
	for i, p := range m.patternList {
		line := fmt.Sprintf("%-20s %-12s %dx%d", p.Name, p.Category, p.Rows(), p.Cols())
		if i == m.patternIdx {
			b.WriteString(m.styles.title.Render("> "+line) + "\n")
		} else {
			b.WriteString(m.styles.status.Render("  "+line) + "\n")
		}
	}
	sel := m.patternList[m.patternIdx]
	b.WriteString("\n" + m.renderMarkdown(fmt.Sprintf("**%s** — %s\n\n%s", sel.Name, sel.Category, sel.Description)))
	b.WriteString(previewPattern(sel, m.styles))
	return b.String()
}

func previewPattern(p engine.Pattern, st boardStyles) string {
	var b strings.Builder
	for r := 0; r < p.Rows(); r++ {
		for c := 0; c < p.Cols(); c++ {
			if p.Alive(r, c) {
				b.WriteString(st.cellYoung.Render("██"))
			} else {
				b.WriteString(st.cellDead.Render("· "))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m model) renderRecordings() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Recordings") + "\n")
	b.WriteString(m.styles.muted.Render("enter load · s save buffer · d delete · x clear buffer · esc back") + "\n\n")
	b.WriteString(m.styles.status.Render(fmt.Sprintf("buffer: %d frames", m.session.Recorder.Len())) + "\n\n")
	if m.naming {
		b.WriteString(m.styles.warn.Render("save as: "+m.nameInput+"▌") + "\n")
		return b.String()
	}
	if len(m.recordings) == 0 {
		b.WriteString(m.styles.muted.Render("(no saved recordings)") + "\n")
	}
	for i, rec := range m.recordings {
		line := fmt.Sprintf("%-24s %s %dx%d %4d frames  %s",
			rec.Name, rec.Rule, rec.Rows, rec.Cols, rec.Frames, rec.CreatedAt.Format("2006-01-02 15:04"))
		if i == m.recIdx {
			b.WriteString(m.styles.title.Render("> "+line) + "\n")
		} else {
			b.WriteString(m.styles.status.Render("  "+line) + "\n")
		}
	}
	if m.status != "" {
		b.WriteString("\n" + m.styles.warn.Render(m.status))
	}
	return b.String()
}

func (m model) renderSettings() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Settings") + "\n\n")
	rows := []string{
		fmt.Sprintf("t  theme         %s", m.cfg.Theme),
		fmt.Sprintf("r  rule          %s", m.cfg.Rule),
		fmt.Sprintf("d  soup density  %d%%", m.cfg.Density),
		fmt.Sprintf("a  stop after    %d unchanged", m.cfg.StableAfter),
		fmt.Sprintf("+/- board size   %dx%d", m.session.Grid.Rows(), m.session.Grid.Cols()),
	}
	for _, r := range rows {
		b.WriteString(m.styles.status.Render(r) + "\n")
	}
	b.WriteString("\n" + m.styles.muted.Render("esc back"))
	if m.status != "" {
		b.WriteString("\n" + m.styles.warn.Render(m.status))
	}
	return b.String()
}

const helpMarkdown = `# Game of Life Studio

An interactive cellular-automaton sandbox. The board follows a
birth/survival rule (default **B3/S23**, classic Conway) with a
Moore neighborhood and dead edges.

## Board

| Key | Action |
|-----|--------|
| arrows / hjkl | move cursor |
| x / enter | toggle cell |
| space | run / pause |
| n | single step |
| g | stamp selected pattern |
| o | rotate stamp by 90° |
| u / ctrl+r | undo / redo |
| c | clear board |
| z | random soup |
| [ ] { } | scrub recorded frames |
| p | play back recording |
| + / - | faster / slower |

While running, every generation is captured into the recording
buffer; scrub with ` + "`[`/`]`" + ` once paused, and save the buffer
from the recordings view (**v**). The run halts by itself when the
board stops changing.
`

func (m model) renderHelp() string {
	return m.renderMarkdown(helpMarkdown) + m.styles.muted.Render("esc back")
}

func (m model) renderMarkdown(md string) string {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		return md + "\n"
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md + "\n"
	}
	return out
}
