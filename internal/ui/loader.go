package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/olivier-w/swipe/internal/deck"
	"github.com/olivier-w/swipe/internal/media"
	"github.com/olivier-w/swipe/internal/render"
)

type loaderPhase uint8

const (
	phaseBrowse loaderPhase = iota
	phaseWaitSize
	phaseLoading
	phaseFailed
)

// Loader resolves the target, decodes every slide in the background and
// then hands the program over to the viewer Model. Without a target it
// starts in an embedded file browser.
type Loader struct {
	browser   BrowserModel
	canBrowse bool
	phase     loaderPhase
	target    string
	opts      Options
	errMsg    string
	err       error
	width     int
	height    int
	spinner   spinner.Model
	progress  progress.Model

	deck    *deck.Deck
	startID string
	done    int
	failed  int
	results chan media.Decoded
	cancel  context.CancelFunc
}

// NewLoader creates the startup model for target, or a browser when
// target is empty.
func NewLoader(target string, opts Options) Loader {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	p := progress.New(
		progress.WithScaledGradient("#FF8C00", "#FF5F1F"),
		progress.WithoutPercentage(),
	)

	m := Loader{
		phase:    phaseWaitSize,
		target:   target,
		opts:     opts,
		spinner:  s,
		progress: p,
	}
	if target == "" {
		m.browser = NewBrowser()
		m.canBrowse = true
		m.phase = phaseBrowse
	}
	return m
}

// Err returns the error that ended the program, if the viewer never
// started.
func (m Loader) Err() error {
	return m.err
}

func (m Loader) Init() tea.Cmd {
	if m.phase == phaseBrowse {
		return tea.Batch(m.browser.Init(), m.spinner.Tick)
	}
	return tea.Batch(m.spinner.Tick, tea.SetWindowTitle("swipe"))
}

func (m Loader) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := msg.Width - 8
		if barWidth < 20 {
			barWidth = 20
		}
		if barWidth > 60 {
			barWidth = 60
		}
		m.progress.Width = barWidth
		switch m.phase {
		case phaseBrowse:
			model, cmd := m.browser.Update(msg)
			if browser, ok := model.(BrowserModel); ok {
				m.browser = browser
			}
			return m, cmd
		case phaseWaitSize:
			return m.start()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.phase != phaseBrowse {
			return m, cmd
		}
		return m, nil

	case BrowserCancelledMsg:
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)

	case BrowserSelectedMsg:
		m.target = msg.Path
		m.errMsg = ""
		m.phase = phaseWaitSize
		if m.width > 0 && m.height > 0 {
			return m.start()
		}
		return m, nil

	case slideDecodedMsg:
		if m.deck == nil {
			return m, nil
		}
		if msg.Err != nil {
			m.deck.SetError(msg.Index, msg.Err)
			m.failed++
			m.opts.Logger.Warn("skipping slide", "path", msg.Path, "err", msg.Err)
		} else {
			m.deck.SetFrame(msg.Index, msg.Frame)
		}
		m.done++
		return m, m.waitForResult()

	case loadDoneMsg:
		return m.finish()

	case tea.KeyMsg:
		if m.phase != phaseBrowse && isQuit(msg) {
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
	}

	if m.phase == phaseBrowse {
		model, cmd := m.browser.Update(msg)
		if browser, ok := model.(BrowserModel); ok {
			m.browser = browser
		}
		return m, cmd
	}
	return m, nil
}

// start resolves the target and launches the decode workers.
func (m Loader) start() (tea.Model, tea.Cmd) {
	d, err := OpenDeck(m.target)
	if err != nil {
		return m.fail(err)
	}
	if m.opts.Start > 0 {
		d.SetCurrentIndex(min(m.opts.Start, d.Len()) - 1)
	}
	m.deck = d
	m.done, m.failed = 0, 0
	if s := d.Current(); s != nil {
		m.startID = s.ID
	}
	m.phase = phaseLoading

	paths := make([]string, d.Len())
	for i := range paths {
		paths[i] = d.Slide(i).Path
		d.SetState(i, deck.Loading)
	}
	stripH := m.height - chromeRows - 1
	maxW, maxH := render.PixelBudget(m.width, max(stripH, 1))

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.results = make(chan media.Decoded, len(paths))
	results := m.results
	logger := m.opts.Logger
	go func() {
		defer close(results)
		err := media.DecodeAll(ctx, paths, maxW, maxH, 0, func(r media.Decoded) {
			results <- r
		})
		if err != nil {
			logger.Debug("decode stopped", "err", err)
		}
	}()

	m.opts.Logger.Info("loading slides", "target", m.target, "count", len(paths), "budget", fmt.Sprintf("%dx%d", maxW, maxH))
	return m, tea.Batch(m.spinner.Tick, m.waitForResult())
}

func (m Loader) waitForResult() tea.Cmd {
	if m.results == nil {
		return nil
	}
	results := m.results
	return func() tea.Msg {
		r, ok := <-results
		if !ok {
			return loadDoneMsg{}
		}
		return slideDecodedMsg(r)
	}
}

// finish drops failed slides and hands over to the viewer.
func (m Loader) finish() (tea.Model, tea.Cmd) {
	d := m.deck
	if d == nil {
		return m, nil
	}
	if m.cancel != nil {
		m.cancel()
	}
	d.Prune()
	if d.Len() == 0 {
		return m.fail(fmt.Errorf("%w: all %d slides failed to decode", ErrNoSlides, m.failed))
	}
	if i := d.Find(m.startID); i >= 0 {
		d.SetCurrentIndex(i)
	}

	viewer, err := New(d, m.opts)
	if err != nil {
		return m.fail(err)
	}
	viewer.failed = m.failed

	cmds := []tea.Cmd{viewer.Init()}
	if m.width > 0 || m.height > 0 {
		w, h := m.width, m.height
		cmds = append(cmds, func() tea.Msg {
			return tea.WindowSizeMsg{Width: w, Height: h}
		})
	}
	return viewer, tea.Batch(cmds...)
}

// fail returns to the browser when there is one, and quits otherwise.
func (m Loader) fail(err error) (tea.Model, tea.Cmd) {
	m.opts.Logger.Error("cannot open", "target", m.target, "err", err)
	m.deck = nil
	m.results = nil
	if m.canBrowse {
		m.phase = phaseBrowse
		m.errMsg = err.Error()
		return m, nil
	}
	m.phase = phaseFailed
	m.err = err
	return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

func (m Loader) View() string {
	if m.phase == phaseBrowse {
		if m.browser.HasError() {
			return "\n  swipe\n\n  " + m.browser.Error().Error() + "\n"
		}
		if m.errMsg == "" {
			return m.browser.View()
		}
		return "\n  swipe\n\n  " + errorStyle.Render(m.errMsg) + "\n\n" + indentBlock(m.browser.View(), "  ")
	}
	if m.phase == phaseFailed {
		return "\n  swipe\n\n  " + errorStyle.Render(m.err.Error()) + "\n"
	}
	return m.renderLoadingView()
}

func (m Loader) renderLoadingView() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(headerStyle.Render("swipe"))
	b.WriteString("\n\n")

	total := 0
	if m.deck != nil {
		total = m.deck.Len()
	}
	if total > 0 {
		pct := float64(m.done) / float64(total)
		b.WriteString("  ")
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(statusStyle.Render("Decoding slides..."))
		b.WriteString("\n  ")
		b.WriteString(m.progress.ViewAs(pct))
		b.WriteString(fmt.Sprintf("  %d/%d\n", m.done, total))
		if m.failed > 0 {
			b.WriteString("  ")
			b.WriteString(helpStyle.Render(fmt.Sprintf("%d skipped", m.failed)))
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  ")
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(statusStyle.Render("Opening..."))
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(helpStyle.Render("q quit"))
	b.WriteString("\n")
	return b.String()
}

func indentBlock(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
