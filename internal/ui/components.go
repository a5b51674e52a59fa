package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivier-w/swipe/internal/spring"
)

// captionColor blends from the background to the caption colour as the
// caption fades in.
func captionColor(opacity float64, dark bool) lipgloss.Color {
	fgHex, bgHex := captionFg.Light, captionBg.Light
	if dark {
		fgHex, bgHex = captionFg.Dark, captionBg.Dark
	}
	fg, err := colorful.Hex(fgHex)
	if err != nil {
		return lipgloss.Color(fgHex)
	}
	bg, err := colorful.Hex(bgHex)
	if err != nil {
		return lipgloss.Color(fgHex)
	}
	t := math.Max(0, math.Min(1, opacity))
	return lipgloss.Color(bg.BlendLab(fg, t).Clamped().Hex())
}

func renderCaption(title string, opacity float64, dark bool, width int) string {
	if opacity <= 0.02 || title == "" {
		return ""
	}
	style := titleStyle.Foreground(captionColor(opacity, dark))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(truncate(title, width-4)))
}

func newPaginator() paginator.Model {
	p := paginator.New()
	p.Type = paginator.Dots
	p.ActiveDot = activeDotStyle.Render("•")
	p.InactiveDot = inactiveDotStyle.Render("•")
	return p
}

// renderPager shows one dot per slide, or "n/total" when the dots would
// not fit on one line.
func renderPager(p paginator.Model, index, total, width int) string {
	p.SetTotalPages(total)
	p.Page = index
	if total*2 > width {
		p.Type = paginator.Arabic
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, p.View())
}

type statusInfo struct {
	preset string
	regime spring.Regime
	wrap   WrapMode
	shuf   bool
	failed int
	msg    string
}

func renderStatus(s statusInfo, width int) string {
	left := fmt.Sprintf("spring %s (%s)", s.preset, s.regime)
	if icon := s.wrap.Icon(); icon != "" {
		left += "  " + icon
	}
	if s.shuf {
		left += "  [shuffle]"
	}
	right := ""
	switch {
	case s.msg != "":
		right = s.msg
	case s.failed > 0:
		right = fmt.Sprintf("%d skipped", s.failed)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 2 {
		gap = 2
	}
	return statusStyle.Render(left) + strings.Repeat(" ", gap) + statusStyle.Render(right)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
