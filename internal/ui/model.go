package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/olivier-w/swipe/internal/anim"
	"github.com/olivier-w/swipe/internal/carousel"
	"github.com/olivier-w/swipe/internal/config"
	"github.com/olivier-w/swipe/internal/deck"
	"github.com/olivier-w/swipe/internal/gesture"
	"github.com/olivier-w/swipe/internal/render"
	"github.com/olivier-w/swipe/internal/spring"
)

// Rows below the slide strip: blank, caption, pager, status. Help is
// measured separately because the full help spans several rows.
const chromeRows = 4

// Options configures the viewer.
type Options struct {
	Config  config.Config
	Logger  *log.Logger
	Color   render.ColorMode
	Shuffle bool
	Wrap    bool
	// Preset names the spring preset to start with; empty means "default".
	Preset string
	// Start is the 1-based slide to open on. Zero keeps the deck's choice.
	Start int
	// Now is the frame clock. Defaults to time.Now.
	Now func() time.Time
}

// stage is the mutable animation state shared by every copy of Model.
// Carousel callbacks write into it from inside Update.
type stage struct {
	now      func() time.Time
	queue    *anim.FrameQueue
	carousel *carousel.Carousel
	fade     *carousel.Fade
	tracker  *gesture.Tracker
	renderer *render.Renderer

	offset   float64
	ticking  bool
	settled  bool // index changed since the last Update returned
	presetAt int
}

func (s *stage) clock() float64 { return spring.Millis(s.now()) }

// Model is the Bubbletea model for the swipe viewer.
type Model struct {
	deck    *deck.Deck
	cfg     config.Config
	logger  *log.Logger
	st      *stage
	keys    keyMap
	help    help.Model
	pager   paginator.Model
	presets []string
	wrap    WrapMode
	dark    bool
	failed  int

	statusMsg     string
	statusMsgTime time.Time

	width    int
	height   int
	quitting bool
}

// New creates a viewer over d, resting on d's current slide.
func New(d *deck.Deck, opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	cfg := opts.Config

	st := &stage{
		now:      opts.Now,
		queue:    anim.NewFrameQueue(),
		fade:     carousel.NewFade(cfg.Display.FPS),
		renderer: render.NewRenderer(opts.Color),
		tracker: gesture.NewTracker(gesture.Options{
			Smoothing: cfg.Gesture.Smoothing,
			IdleReset: cfg.Gesture.IdleReset,
			MinDt:     gesture.DefaultOptions().MinDt,
			MaxDt:     gesture.DefaultOptions().MaxDt,
		}),
	}

	ccfg := carousel.Config{
		Count:         d.Len(),
		Width:         80,
		Stiffness:     cfg.Spring.Stiffness,
		Damping:       cfg.Spring.Damping,
		Mass:          cfg.Spring.Mass,
		FlickVelocity: cfg.Gesture.FlickVelocity,
		Overshoot:     cfg.Gesture.Overshoot,
		MinOpacity:    cfg.Display.MinOpacity,
	}
	c, err := carousel.New(ccfg, st.queue, st.clock,
		carousel.WithLogger(opts.Logger),
		carousel.WithFade(st.fade),
		carousel.OnOffset(func(off float64) { st.offset = off }),
		carousel.OnIndexChange(func(i int) {
			d.SetCurrentIndex(i)
			st.settled = true
		}),
	)
	if err != nil {
		return Model{}, err
	}
	st.carousel = c

	presets := cfg.PresetNames()
	if opts.Preset != "" && opts.Preset != presets[0] {
		p, ok := cfg.Preset(opts.Preset)
		if !ok {
			return Model{}, fmt.Errorf("%w: unknown preset %q", config.ErrInvalid, opts.Preset)
		}
		if err := c.Reconfigure(p.Stiffness, p.Damping, cfg.Spring.Mass, st.clock()); err != nil {
			return Model{}, err
		}
		for i, name := range presets {
			if name == opts.Preset {
				st.presetAt = i
			}
		}
	}

	if opts.Shuffle {
		d.EnableShuffle()
	}
	c.Jump(d.CurrentIndex(), st.clock())

	wrap := WrapOff
	if opts.Wrap {
		wrap = WrapAround
	}

	h := help.New()
	h.Styles.ShortKey = helpStyle
	h.Styles.ShortDesc = helpStyle
	h.Styles.FullKey = helpStyle
	h.Styles.FullDesc = helpStyle

	return Model{
		deck:    d,
		cfg:     cfg,
		logger:  opts.Logger,
		st:      st,
		keys:    defaultKeyMap(),
		help:    h,
		pager:   newPaginator(),
		presets: presets,
		wrap:    wrap,
		dark:    lipgloss.HasDarkBackground(),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.windowTitle())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.handleMsg(msg)
	return next, cmd
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if msg.Width > 0 {
			if err := m.st.carousel.Resize(float64(msg.Width), m.st.clock()); err != nil {
				m.logger.Warn("resize failed", "err", err)
			}
		}
		m.dropStrayDrag()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, m.after()

	case frameMsg:
		m.st.ticking = false
		m.st.queue.Flush(spring.Millis(time.Time(msg)))
		if m.statusMsg != "" && time.Time(msg).Sub(m.statusMsgTime) > 3*time.Second {
			m.statusMsg = ""
		}
		return m, m.after()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	c := m.st.carousel
	now := m.st.clock()
	n := c.Count()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		c.Close()
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	case key.Matches(msg, m.keys.Prev):
		c.GoTo(m.wrap.step(c.Index(), -1, n), now)
	case key.Matches(msg, m.keys.Next):
		c.GoTo(m.wrap.step(c.Index(), 1, n), now)
	case key.Matches(msg, m.keys.First):
		c.GoTo(0, now)
	case key.Matches(msg, m.keys.Last):
		c.GoTo(n-1, now)
	case key.Matches(msg, m.keys.Preset):
		m.cyclePreset(now)
	case key.Matches(msg, m.keys.Shuffle):
		m.toggleShuffle(now)
	case key.Matches(msg, m.keys.Wrap):
		m.wrap = m.wrap.Next()
		m.setStatus("wrap " + m.wrap.String())
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		return m, nil
	}
	return m, m.after()
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	c := m.st.carousel
	tr := m.st.tracker
	now := m.st.clock()
	pos := gesture.Vec{X: float64(msg.X), Y: float64(msg.Y)}

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		tr.Start(pos, now)
		c.PointerDown(now)
	case msg.Action == tea.MouseActionMotion && tr.Active():
		c.PointerMove(tr.Move(pos, now), now)
	case msg.Action == tea.MouseActionRelease && tr.Active():
		c.Release(tr.End(now), now)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		c.GoTo(m.wrap.step(c.Index(), -1, c.Count()), now)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		c.GoTo(m.wrap.step(c.Index(), 1, c.Count()), now)
	}
}

func (m *Model) cyclePreset(now float64) {
	m.st.presetAt = (m.st.presetAt + 1) % len(m.presets)
	name := m.presets[m.st.presetAt]
	p, _ := m.cfg.Preset(name)
	if err := m.st.carousel.Reconfigure(p.Stiffness, p.Damping, m.cfg.Spring.Mass, now); err != nil {
		m.logger.Warn("preset rejected", "preset", name, "err", err)
		m.setStatus(err.Error())
		return
	}
	m.logger.Info("spring preset", "name", name, "stiffness", p.Stiffness, "damping", p.Damping)
	m.setStatus("spring " + name)
}

func (m *Model) toggleShuffle(now float64) {
	// The deck only learns the index at rest; sync it to the target first.
	m.deck.SetCurrentIndex(m.st.carousel.Index())
	if m.deck.IsShuffled() {
		m.deck.DisableShuffle()
		m.setStatus("shuffle off")
	} else {
		m.deck.EnableShuffle()
		m.setStatus("shuffle on")
	}
	m.st.carousel.Jump(m.deck.CurrentIndex(), now)
	m.st.settled = true
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.statusMsgTime = m.st.now()
}

// dropStrayDrag forgets a pointer drag the carousel has already ended, so
// later motion and release events are ignored.
func (m Model) dropStrayDrag() {
	if m.st.tracker.Active() && !m.st.carousel.Dragging() {
		m.st.tracker.Cancel()
	}
}

// after collects the commands owed once the carousel has been poked: a
// window title when a slide settled and a frame tick while work is queued.
func (m Model) after() tea.Cmd {
	m.dropStrayDrag()
	var cmds []tea.Cmd
	if m.st.settled {
		m.st.settled = false
		if s := m.deck.Current(); s != nil {
			m.logger.Info("slide", "index", m.deck.CurrentIndex(), "title", s.Title)
		}
		cmds = append(cmds, tea.SetWindowTitle(m.windowTitle()))
	}
	if m.st.queue.Pending() && !m.st.ticking {
		m.st.ticking = true
		cmds = append(cmds, frameCmd(m.cfg.Display.FPS))
	}
	return tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.quitting || m.width <= 0 || m.height <= 0 {
		return ""
	}

	helpView := helpStyle.Render(m.help.View(m.keys))
	stripH := m.height - chromeRows - lipgloss.Height(helpView)
	if stripH < 1 {
		stripH = 1
	}

	c := m.st.carousel
	var layers []render.Layer
	for _, p := range c.Layout(m.st.offset) {
		s := m.deck.At(p.Index)
		if s == nil {
			continue
		}
		layers = append(layers, render.Layer{Frame: s.Frame, Left: p.Left, Opacity: p.Opacity})
	}

	title := ""
	if s := m.deck.At(c.Nearest(m.st.offset)); s != nil {
		title = s.Title
	}

	var b strings.Builder
	b.WriteString(m.st.renderer.Strip(layers, m.width, stripH))
	b.WriteString("\n\n")
	b.WriteString(renderCaption(title, m.st.fade.Opacity(), m.dark, m.width))
	b.WriteString("\n")
	b.WriteString(renderPager(m.pager, c.Nearest(m.st.offset), c.Count(), m.width))
	b.WriteString("\n")
	b.WriteString(renderStatus(statusInfo{
		preset: m.presets[m.st.presetAt],
		regime: c.Spring().Regime(),
		wrap:   m.wrap,
		shuf:   m.deck.IsShuffled(),
		failed: m.failed,
		msg:    m.statusMsg,
	}, m.width))
	b.WriteString("\n")
	b.WriteString(helpView)
	return b.String()
}

func (m Model) windowTitle() string {
	if s := m.deck.Current(); s != nil {
		return fmt.Sprintf("%s (%d/%d) — swipe", s.Title, m.deck.CurrentIndex()+1, m.deck.Len())
	}
	return "swipe"
}

// Index returns the slide the carousel rests on or is heading to.
func (m Model) Index() int { return m.st.carousel.Index() }

// Deck returns the slides being shown.
func (m Model) Deck() *deck.Deck { return m.deck }
