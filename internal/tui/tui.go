// Package tui provides the mouse-driven Bubble Tea editor for deck timing.
// Slides sit on independent tracks scaled at a fixed zoom; the selected
// slide's fragments share one lane stretched to the window width. Dragging a
// bar's body moves it, dragging an edge resizes it.
package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cuedeck/internal/deck"
	"cuedeck/internal/timeline"
)

// ── Styles ────────────

var (
	// Title bar at the very top
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	// Pane headers
	paneHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	inactivePaneHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	rulerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// Gutter labels
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	selectedLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15"))

	// Interval bars
	slideBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	selectedSlideBarStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("45")).
				Bold(true)

	fragBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	selectedFragBarStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214")).
				Bold(true)

	draggingBarStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)
)

// ── Layout constants ──────────────────────────────────────────────────────────

const (
	gutterWidth = 20 // index + truncated title to the left of each track
	maxFragRows = 5
	minZoom     = 0.5
	maxZoom     = 40
)

// ── Panes ─────────────────────────────────────────────────────────────────────

type paneID int

const (
	paneSlides paneID = iota
	paneFragments
)

// ── Shared editing state ──────────────────────────────────────────────────────

// editState is the mutable state shared between the model and the gesture
// engines' interval sources and lane funcs. It lives behind a pointer so the
// closures keep seeing updates across Bubble Tea's model copies.
type editState struct {
	d         *deck.Deck
	selected  string // selected slide id, stable across reorder
	zoom      float64
	laneWidth float64 // fragment lane track width in cells
	dirty     bool
}

func (es *editState) selectedSlide() *deck.Slide {
	return es.d.Slide(es.selected)
}

// slideSource adapts the deck's slide list to the gesture engine.
type slideSource struct{ es *editState }

func (ss *slideSource) Interval(id string) (timeline.Interval, bool) {
	s := ss.es.d.Slide(id)
	if s == nil {
		return timeline.Interval{}, false
	}
	return timeline.Interval{ID: id, Start: s.StartTimeSec, Duration: s.DurationSec}, true
}

func (ss *slideSource) SetInterval(iv timeline.Interval) {
	s := ss.es.d.Slide(iv.ID)
	if s == nil {
		return
	}
	s.StartTimeSec = iv.Start
	s.DurationSec = iv.Duration
	ss.es.dirty = true
	ss.es.d.Touch()
}

// fragmentSource adapts the selected slide's fragments to the gesture
// engine. Fragment intervals are addressed by their index within the slide.
type fragmentSource struct{ es *editState }

func (fs *fragmentSource) Interval(id string) (timeline.Interval, bool) {
	s := fs.es.selectedSlide()
	i, err := strconv.Atoi(id)
	if s == nil || err != nil || i < 0 || i >= len(s.Fragments) {
		return timeline.Interval{}, false
	}
	f := s.Fragments[i]
	return timeline.Interval{ID: id, Start: f.DelaySec, Duration: f.DurationSec}, true
}

func (fs *fragmentSource) SetInterval(iv timeline.Interval) {
	s := fs.es.selectedSlide()
	i, err := strconv.Atoi(iv.ID)
	if s == nil || err != nil || i < 0 || i >= len(s.Fragments) {
		return
	}
	s.Fragments[i].DelaySec = iv.Start
	s.Fragments[i].DurationSec = iv.Duration
	fs.es.dirty = true
	fs.es.d.Touch()
}

// ── Model ────────────────────

// Model is the root Bubble Tea model for the editor.
type Model struct {
	es       *editState
	store    deck.DeckStore
	style    deck.StyleRef
	filename string

	pane       paneID
	fragCursor int
	scrollTop  int

	width  int
	height int
	ready  bool

	slideEngine *timeline.Engine
	fragEngine  *timeline.Engine

	renaming bool
	input    textinput.Model

	showHelp bool
	help     viewport.Model

	status      string
	confirmQuit bool
}

// New creates the editor model for a loaded deck. style is attached to
// slides added from inside the editor.
func New(d *deck.Deck, store deck.DeckStore, style deck.StyleRef, filename string, zoom float64) Model {
	if zoom <= 0 {
		zoom = timeline.DefaultPixelsPerSecond
	}
	es := &editState{d: d, zoom: zoom}
	if len(d.Slides) > 0 {
		es.selected = d.Slides[0].ID
	}

	input := textinput.New()
	input.Placeholder = "Title"
	input.CharLimit = 200

	m := Model{
		es:       es,
		store:    store,
		style:    style,
		filename: filepath.Base(filename),
		input:    input,
	}
	m.slideEngine = timeline.NewEngine(&slideSource{es: es}, func() timeline.Lane {
		return timeline.Lane{Scale: timeline.Fixed(es.zoom)}
	})
	m.fragEngine = timeline.NewEngine(&fragmentSource{es: es}, func() timeline.Lane {
		container := 0.0
		if s := es.selectedSlide(); s != nil {
			container = s.DurationSec
		}
		return timeline.Lane{Container: container, Scale: timeline.Fit(container, es.laneWidth)}
	})
	return m
}

// ── Bubble Tea interface ───────────────

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.es.laneWidth = float64(m.trackWidth())
		m.input.Width = m.width - 20
		m.help = viewport.New(m.width, m.contentHeight())
		m.help.SetContent(helpText())
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.renaming {
		switch msg.String() {
		case "esc":
			m.renaming = false
			m.input.Blur()
			return m, nil
		case "enter":
			m.commitRename(strings.TrimSpace(m.input.Value()))
			m.renaming = false
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.showHelp {
		switch msg.String() {
		case "q", "esc", "?":
			m.showHelp = false
			return m, nil
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}

	// A drag owns the input stream until release.
	if m.dragging() != nil {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	m.status = ""
	confirm := m.confirmQuit
	m.confirmQuit = false

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.es.dirty && !confirm {
			m.status = "unsaved changes — q again to discard, s to save"
			m.confirmQuit = true
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "tab":
		if m.pane == paneSlides {
			m.pane = paneFragments
		} else {
			m.pane = paneSlides
		}
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "a":
		s := m.es.d.AddSlide(m.style)
		s.SetContent("New slide", "")
		m.es.selected = s.ID
		m.fragCursor = 0
		m.es.dirty = true
		m.ensureVisible()
	case "d":
		m.deleteSelectedSlide()
	case "f":
		if s := m.es.selectedSlide(); s != nil {
			s.AddFragment()
			m.fragCursor = len(s.Fragments) - 1
			m.es.dirty = true
			m.es.d.Touch()
		}
	case "x":
		m.deleteSelectedFragment()
	case "J":
		m.reorderSelected(1)
	case "K":
		m.reorderSelected(-1)
	case "r":
		m.startRename()
		return m, textinput.Blink
	case "+", "=":
		m.es.zoom *= 1.25
		if m.es.zoom > maxZoom {
			m.es.zoom = maxZoom
		}
	case "-":
		m.es.zoom /= 1.25
		if m.es.zoom < minZoom {
			m.es.zoom = minZoom
		}
	case "s":
		if err := m.store.Save(m.es.d); err != nil {
			m.status = "save failed: " + err.Error()
		} else {
			m.es.dirty = false
			m.status = "saved " + m.filename
		}
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.renaming {
		return m, nil
	}
	if m.showHelp {
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.moveCursor(1)
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		// A press during an active gesture is ignored; release ends it first.
		if m.dragging() != nil {
			return m, nil
		}
		m.status = ""
		m.confirmQuit = false
		m.press(msg.X, msg.Y)

	case tea.MouseActionMotion:
		if e := m.dragging(); e != nil {
			e.MoveGesture(float64(msg.X))
		}

	case tea.MouseActionRelease:
		// Global capture: release anywhere commits the active gesture.
		if e := m.dragging(); e != nil {
			e.EndGesture()
		}
	}
	return m, nil
}

// press handles a left button press: it selects whatever row was hit and, if
// the press landed on a bar, opens a gesture with the op for that hit zone.
func (m *Model) press(x, y int) {
	slideTop, slideRows, _, fragTop, fragRows := m.layoutRows()

	if y >= slideTop && y < slideTop+slideRows {
		idx := m.scrollTop + (y - slideTop)
		if idx < 0 || idx >= len(m.es.d.Slides) {
			return
		}
		s := &m.es.d.Slides[idx]
		m.pane = paneSlides
		m.es.selected = s.ID
		m.fragCursor = 0
		if op, ok := m.slideHit(s, x); ok {
			m.slideEngine.StartGesture(s.ID, op, float64(x))
		}
		return
	}

	if y >= fragTop && y < fragTop+fragRows {
		s := m.es.selectedSlide()
		if s == nil {
			return
		}
		idx := y - fragTop
		if idx < 0 || idx >= len(s.Fragments) {
			return
		}
		m.pane = paneFragments
		m.fragCursor = idx
		if op, ok := m.fragHit(s, idx, x); ok {
			m.fragEngine.StartGesture(strconv.Itoa(idx), op, float64(x))
		}
	}
}

// slideHit maps a column to a hit zone on a slide bar. The slide track has
// no leading-edge resize, so the left edge counts as body.
func (m *Model) slideHit(s *deck.Slide, x int) (timeline.Op, bool) {
	lane := timeline.Lane{Scale: timeline.Fixed(m.es.zoom)}
	g := timeline.Layout(timeline.Interval{Start: s.StartTimeSec, Duration: s.DurationSec}, 0, lane, 1, 0)
	left, width := clipBar(int(g.Left), int(g.Width), m.trackWidth())
	tx := x - gutterWidth
	if tx < left || tx >= left+width {
		return 0, false
	}
	if width >= 2 && tx == left+width-1 {
		return timeline.OpResizeEnd, true
	}
	return timeline.OpMove, true
}

// fragHit maps a column to a hit zone on a fragment bar: left edge resizes
// the delay, right edge the duration, anything between moves it.
func (m *Model) fragHit(s *deck.Slide, idx, x int) (timeline.Op, bool) {
	f := s.Fragments[idx]
	lane := timeline.Lane{Container: s.DurationSec, Scale: timeline.Fit(s.DurationSec, m.es.laneWidth)}
	g := timeline.Layout(timeline.Interval{Start: f.DelaySec, Duration: f.DurationSec}, idx, lane, 1, 0)
	left, width := clipBar(int(g.Left), int(g.Width), m.trackWidth())
	tx := x - gutterWidth
	if tx < left || tx >= left+width {
		return 0, false
	}
	switch {
	case width >= 2 && tx == left:
		return timeline.OpResizeStart, true
	case width >= 2 && tx == left+width-1:
		return timeline.OpResizeEnd, true
	}
	return timeline.OpMove, true
}

// ── Editing helpers ───────────────────────────────────────────────────────────

// dragging returns the engine holding an active gesture, if any.
func (m *Model) dragging() *timeline.Engine {
	if m.slideEngine.Dragging() {
		return m.slideEngine
	}
	if m.fragEngine.Dragging() {
		return m.fragEngine
	}
	return nil
}

func (m *Model) selIndex() int {
	for i := range m.es.d.Slides {
		if m.es.d.Slides[i].ID == m.es.selected {
			return i
		}
	}
	return -1
}

func (m *Model) moveCursor(delta int) {
	if m.pane == paneFragments {
		s := m.es.selectedSlide()
		if s == nil || len(s.Fragments) == 0 {
			return
		}
		m.fragCursor += delta
		if m.fragCursor < 0 {
			m.fragCursor = 0
		}
		if m.fragCursor > len(s.Fragments)-1 {
			m.fragCursor = len(s.Fragments) - 1
		}
		return
	}
	idx := m.selIndex() + delta
	if idx < 0 || idx >= len(m.es.d.Slides) {
		return
	}
	m.es.selected = m.es.d.Slides[idx].ID
	m.fragCursor = 0
	m.ensureVisible()
}

func (m *Model) deleteSelectedSlide() {
	idx := m.selIndex()
	if idx == -1 {
		return
	}
	m.es.d.RemoveSlide(m.es.selected)
	m.es.dirty = true
	m.es.d.Touch()
	if idx > len(m.es.d.Slides)-1 {
		idx = len(m.es.d.Slides) - 1
	}
	if idx >= 0 {
		m.es.selected = m.es.d.Slides[idx].ID
	} else {
		m.es.selected = ""
		m.scrollTop = 0
	}
	m.fragCursor = 0
	m.ensureVisible()
}

func (m *Model) deleteSelectedFragment() {
	s := m.es.selectedSlide()
	if s == nil || len(s.Fragments) == 0 {
		return
	}
	if err := s.RemoveFragment(m.fragCursor); err != nil {
		m.status = err.Error()
		return
	}
	if m.fragCursor > len(s.Fragments)-1 {
		m.fragCursor = len(s.Fragments) - 1
	}
	m.es.dirty = true
	m.es.d.Touch()
}

func (m *Model) reorderSelected(delta int) {
	idx := m.selIndex()
	if idx == -1 {
		return
	}
	if m.es.d.MoveSlide(m.es.selected, idx+delta) {
		m.es.dirty = true
		m.es.d.Touch()
		m.ensureVisible()
	}
}

func (m *Model) startRename() {
	var current string
	if m.pane == paneFragments {
		s := m.es.selectedSlide()
		if s == nil || len(s.Fragments) == 0 {
			return
		}
		current = s.Fragments[m.fragCursor].Title
	} else {
		s := m.es.selectedSlide()
		if s == nil {
			return
		}
		current = s.Title
	}
	m.input.SetValue(current)
	m.input.CursorEnd()
	m.input.Focus()
	m.renaming = true
}

func (m *Model) commitRename(title string) {
	s := m.es.selectedSlide()
	if s == nil {
		return
	}
	if m.pane == paneFragments && len(s.Fragments) > 0 {
		if m.fragCursor == 0 {
			// Fragment 0 mirrors the slide title, keep them in step.
			s.SetContent(title, s.Body)
		} else {
			s.Fragments[m.fragCursor].Title = title
		}
	} else {
		s.SetContent(title, s.Body)
	}
	m.es.dirty = true
	m.es.d.Touch()
}

// ensureVisible scrolls the slide pane so the selection stays on screen.
func (m *Model) ensureVisible() {
	_, slideRows, _, _, _ := m.layoutRows()
	idx := m.selIndex()
	if idx == -1 {
		return
	}
	if idx < m.scrollTop {
		m.scrollTop = idx
	}
	if idx >= m.scrollTop+slideRows {
		m.scrollTop = idx - slideRows + 1
	}
	if m.scrollTop < 0 {
		m.scrollTop = 0
	}
}

// ── Geometry ──────────────────────────────────────────────────────────────────

func (m *Model) trackWidth() int {
	w := m.width - gutterWidth
	if w < 10 {
		w = 10
	}
	return w
}

func (m *Model) contentHeight() int {
	h := m.height - 2 // title + status
	if h < 1 {
		h = 1
	}
	return h
}

// layoutRows computes the vertical arrangement shared by View and the mouse
// hit test: title(0), ruler(1), slide rows, fragment header, fragment rows,
// status bar on the last line.
func (m *Model) layoutRows() (slideTop, slideRows, fragHeaderY, fragTop, fragRows int) {
	slideTop = 2
	fragRows = 1
	if s := m.es.selectedSlide(); s != nil && len(s.Fragments) > 0 {
		fragRows = len(s.Fragments)
		if fragRows > maxFragRows {
			fragRows = maxFragRows
		}
	}
	avail := m.height - 4 // title, ruler, fragment header, status
	slideRows = avail - fragRows
	if slideRows < 1 {
		slideRows = 1
	}
	fragHeaderY = slideTop + slideRows
	fragTop = fragHeaderY + 1
	return
}

// clipBar confines a bar to the visible track, keeping at least one cell so
// every interval stays clickable.
func clipBar(left, width, track int) (int, int) {
	if track <= 0 {
		return 0, 0
	}
	if left < 0 {
		left = 0
	}
	if left >= track {
		left = track - 1
	}
	if width < 1 {
		width = 1
	}
	if left+width > track {
		width = track - left
	}
	return left, width
}

// ── View ──────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	dirtyMark := ""
	if m.es.dirty {
		dirtyMark = " ●"
	}
	title := titleStyle.Width(m.width).Render("  cuedeck  " + m.filename + dirtyMark)

	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left, title, m.help.View(), m.statusBar())
	}

	_, slideRows, _, _, fragRows := m.layoutRows()
	var rows []string
	rows = append(rows, title, m.ruler())
	rows = append(rows, m.slideRows(slideRows)...)
	rows = append(rows, m.fragHeader())
	rows = append(rows, m.fragRows(fragRows)...)

	if m.renaming {
		rows = append(rows, promptStyle.Width(m.width).Render("rename: "+m.input.View()))
	} else {
		rows = append(rows, m.statusBar())
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// ruler renders the slide track's time axis with marks chosen to fit the
// current zoom.
func (m Model) ruler() string {
	track := m.trackWidth()
	cells := make([]byte, track)
	for i := range cells {
		cells[i] = ' '
	}
	sc := timeline.Fixed(m.es.zoom)
	step := rulerStep(m.es.zoom)
	for t := 0; ; t += step {
		px := int(sc.Pixels(float64(t)))
		if px >= track {
			break
		}
		label := strconv.Itoa(t) + "s"
		if px+len(label) > track {
			break
		}
		copy(cells[px:], label)
	}
	header := paneHeaderStyle
	if m.pane != paneSlides {
		header = inactivePaneHeaderStyle
	}
	return header.Render(pad("Slides", gutterWidth)) + rulerStyle.Render(string(cells))
}

// rulerStep picks the mark spacing so labels stay at least a few cells apart.
func rulerStep(zoom float64) int {
	for _, s := range []int{1, 2, 5, 10, 15, 30, 60} {
		if float64(s)*zoom >= 7 {
			return s
		}
	}
	return 120
}

func (m Model) slideRows(count int) []string {
	rows := make([]string, 0, count)
	lane := timeline.Lane{Scale: timeline.Fixed(m.es.zoom)}
	drag, hasDrag := m.slideEngine.Active()
	for i := 0; i < count; i++ {
		idx := m.scrollTop + i
		if idx >= len(m.es.d.Slides) {
			if idx == 0 {
				rows = append(rows, dimStyle.Render("  (empty deck — press a to add a slide)"))
				continue
			}
			rows = append(rows, "")
			continue
		}
		s := m.es.d.Slides[idx]
		selected := s.ID == m.es.selected

		label := fmt.Sprintf("%2d %s", idx+1, truncate(displayTitle(s.Title), gutterWidth-4))
		ls := labelStyle
		bs := slideBarStyle
		if selected {
			ls = selectedLabelStyle
			bs = selectedSlideBarStyle
		}
		if hasDrag && drag.ID == s.ID {
			bs = draggingBarStyle
		}

		g := timeline.Layout(timeline.Interval{Start: s.StartTimeSec, Duration: s.DurationSec}, idx, lane, 1, 0)
		left, width := clipBar(int(g.Left), int(g.Width), m.trackWidth())
		rows = append(rows, ls.Render(pad(label, gutterWidth))+
			strings.Repeat(" ", left)+bs.Render(strings.Repeat("█", width)))
	}
	return rows
}

func (m Model) fragHeader() string {
	header := paneHeaderStyle
	if m.pane != paneFragments {
		header = inactivePaneHeaderStyle
	}
	s := m.es.selectedSlide()
	if s == nil {
		return header.Render("Fragments")
	}
	return header.Render(fmt.Sprintf("Fragments · slide %d (%.1fs)", s.Index+1, s.DurationSec))
}

func (m Model) fragRows(count int) []string {
	rows := make([]string, 0, count)
	s := m.es.selectedSlide()
	if s == nil || len(s.Fragments) == 0 {
		rows = append(rows, dimStyle.Render("  (no fragments — press f to split this slide)"))
		for len(rows) < count {
			rows = append(rows, "")
		}
		return rows
	}

	lane := timeline.Lane{Container: s.DurationSec, Scale: timeline.Fit(s.DurationSec, m.es.laneWidth)}
	drag, hasDrag := m.fragEngine.Active()
	for i := 0; i < count && i < len(s.Fragments); i++ {
		f := s.Fragments[i]
		selected := m.pane == paneFragments && i == m.fragCursor

		label := fmt.Sprintf("%2d %s", i+1, truncate(displayTitle(f.Title), gutterWidth-4))
		ls := labelStyle
		bs := fragBarStyle
		if selected {
			ls = selectedLabelStyle
			bs = selectedFragBarStyle
		}
		if hasDrag && drag.ID == strconv.Itoa(i) {
			bs = draggingBarStyle
		}

		// A to-end fragment renders shaded up to the slide's end.
		fill := "█"
		if f.DurationSec == 0 {
			fill = "▒"
		}
		g := timeline.Layout(timeline.Interval{Start: f.DelaySec, Duration: f.DurationSec}, i, lane, 1, 0)
		left, width := clipBar(int(g.Left), int(g.Width), m.trackWidth())
		rows = append(rows, ls.Render(pad(label, gutterWidth))+
			strings.Repeat(" ", left)+bs.Render(strings.Repeat(fill, width)))
	}
	for len(rows) < count {
		rows = append(rows, "")
	}
	return rows
}

func (m Model) statusBar() string {
	var parts []string

	if s := m.es.selectedSlide(); s != nil {
		if m.pane == paneFragments && len(s.Fragments) > 0 {
			f := s.Fragments[m.fragCursor]
			iv := timeline.Interval{Start: f.DelaySec, Duration: f.DurationSec}
			eff := timeline.EffectiveDuration(iv, s.DurationSec)
			window := fmt.Sprintf("%.1fs – %.1fs (%.1fs)", f.DelaySec, f.DelaySec+eff, eff)
			if f.DurationSec == 0 {
				window += " to end"
			}
			parts = append(parts, fmt.Sprintf("fragment %d/%d", m.fragCursor+1, len(s.Fragments)), window)
		} else {
			parts = append(parts,
				fmt.Sprintf("slide %d/%d", s.Index+1, len(m.es.d.Slides)),
				fmt.Sprintf("%.1fs – %.1fs (%.1fs)", s.StartTimeSec, s.End(), s.DurationSec))
		}
	}
	if e := m.dragging(); e != nil {
		if ds, ok := e.Active(); ok {
			parts = append(parts, "dragging: "+ds.Op.String())
		}
	}
	parts = append(parts, fmt.Sprintf("zoom %.1f", m.es.zoom))
	if m.status != "" {
		parts = append(parts, m.status)
	}

	left := strings.Join(parts, "  ·  ")
	right := "? help  q quit"
	padding := m.width - lipgloss.Width(left) - len(right) - 2
	if padding < 1 {
		padding = 1
	}
	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", padding) + right)
}

func helpText() string {
	return `
  cuedeck editor

  Mouse
    drag a bar's body          move the slide start / fragment delay
    drag a bar's right edge    change its duration
    drag a fragment's left edge  trade delay against duration
    click a row                select it
    wheel                      move the selection

  Panes
    tab        switch between slide track and fragment lane
    ↑/↓, k/j   select slide or fragment

  Slides
    a          add a slide after the last one
    d          delete the selected slide
    J / K      move the selected slide down / up
    r          rename the selected slide or fragment

  Fragments
    f          add a fragment (the first press splits the slide text off)
    x          delete the selected fragment (the last one stays)
    shaded bars run to the end of their slide

  Timing
    + / -      zoom the slide track in / out

  Session
    s          save
    ?          toggle this help
    q          quit (asks once when unsaved)
`
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func displayTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func truncate(s string, max int) string {
	if max < 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// Run starts the editor for a loaded deck and blocks until the user quits.
func Run(d *deck.Deck, store deck.DeckStore, style deck.StyleRef, filename string, zoom float64) error {
	p := tea.NewProgram(New(d, store, style, filename, zoom),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
