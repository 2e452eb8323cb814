package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/intelligrit/salesmap/internal/geometry"
	"github.com/intelligrit/salesmap/internal/model"
	"github.com/intelligrit/salesmap/internal/selection"
	"github.com/intelligrit/salesmap/internal/tui"
	"github.com/intelligrit/salesmap/internal/view"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Explore the map interactively in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := selection.ParseMode(cfg.Map.InitialMode)
		if err != nil {
			return err
		}
		m, err := geometry.Nigeria()
		if err != nil {
			return fmt.Errorf("loading map geometry: %w", err)
		}

		st := newStore()
		idx := cfg.Index()
		v := view.Mount(view.Options{
			Index:     idx,
			Map:       m,
			Dataset:   st.Dataset(),
			Dark:      cfg.Map.Dark,
			Mode:      mode,
			Selection: selection.Options{ClearOnModeSwitch: cfg.Map.ClearOnModeSwitch},
			Emphasis:  cfg.EmphasisFor,
			Logger:    logger,
		})
		defer v.Unmount()

		states := make([]model.State, 0, len(m.Shapes))
		for _, s := range m.Shapes {
			states = append(states, s.State)
		}

		_, err = tea.NewProgram(tui.New(v, states, st), tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}
