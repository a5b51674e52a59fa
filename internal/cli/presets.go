package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/olivier-w/swipe/internal/config"
	"github.com/olivier-w/swipe/internal/spring"
)

// settleLimit caps the settle-time estimate for springs that barely damp.
const settleLimit = 10_000.0

func newPresetsCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List spring presets with their regime and settle time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*f)
			if err != nil {
				return err
			}
			return writePresets(cmd.OutOrStdout(), cfg)
		},
	}
}

func writePresets(w io.Writer, cfg config.Config) error {
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	headerStyle := cellStyle.Bold(true)

	var rows [][]string
	for _, name := range cfg.PresetNames() {
		p, _ := cfg.Preset(name)
		s, err := spring.New(p.Stiffness, p.Damping, spring.WithMass(cfg.Spring.Mass))
		if err != nil {
			return fmt.Errorf("preset %s: %w", name, err)
		}
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%g", p.Stiffness),
			fmt.Sprintf("%g", p.Damping),
			s.Regime().String(),
			formatSettle(settleTime(s)),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("PRESET", "STIFFNESS", "DAMPING", "REGIME", "SETTLE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// settleTime is how long, in ms, s takes to come to rest after a unit step
// from rest. It returns settleLimit if s is still moving by then.
func settleTime(s *spring.Spring) float64 {
	s.Snap(0, 0)
	s.SetEnd(1, 0, 0)
	for t := 0.0; t < settleLimit; t++ {
		if s.Done(t) {
			return t
		}
	}
	return settleLimit
}

func formatSettle(ms float64) string {
	if ms >= settleLimit {
		return fmt.Sprintf(">%.0fs", settleLimit/1000)
	}
	return fmt.Sprintf("%.0fms", ms)
}
