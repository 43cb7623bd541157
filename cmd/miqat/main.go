package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"miqat/internal/config"
	"miqat/internal/update"
	"miqat/internal/views"
)

func main() {
	configPath := flag.String("config", "miqat.yaml", "path to the config file (created on first run)")
	printOnce := flag.Bool("print", false, "render today and overdue once to stdout and exit")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if *debug {
		logger = logger.Level(zerolog.DebugLevel)
	}

	if err := run(*configPath, *printOnce, logger); err != nil {
		logger.Error().Err(err).Msg("miqat failed")
		os.Exit(1)
	}
}

func run(configPath string, printOnce bool, logger zerolog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	entities, warns := cfg.BuildEntities()
	for _, warn := range warns {
		logger.Warn().Err(warn).Msg("skipping entity")
	}
	logger.Debug().Int("entities", len(entities)).Str("timezone", cfg.Timezone).Msg("config loaded")

	params := update.Params{
		Entities:     entities,
		Completed:    cfg.CompletedSet(),
		Sunset:       cfg.Sunset,
		Location:     loc,
		LookbackDays: cfg.LookbackDays,
	}

	if printOnce {
		return printSnapshot(params, logger)
	}

	program := tea.NewProgram(update.NewModel(params))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

// printSnapshot is the scriptable surface: one snapshot, plain text, exit.
func printSnapshot(params update.Params, logger zerolog.Logger) error {
	snap := update.BuildSnapshot(time.Now(), params.Entities, params.Completed,
		params.Sunset, params.Location, params.LookbackDays)
	if snap.Warning != nil {
		logger.Warn().Err(snap.Warning).Msg("day boundary degraded to midnight")
	}

	today := views.TodayPanelData{
		CivilDate: snap.Now.Format("Monday, 2 January 2006"),
		LunarPre:  snap.Dual.Pre.String(),
		LunarPost: snap.Dual.Post.String(),
		Crossed:   snap.Dual.Crossed,
	}
	for _, st := range snap.Statuses {
		today.Items = append(today.Items, views.TodayItemData{
			Name:    st.Entity.Name,
			Kind:    string(st.Entity.Kind),
			Summary: st.Entity.Summary(),
			Due:     st.Due,
			Done:    st.Done,
		})
	}
	fmt.Println(views.RenderTodayPanel(today))

	overdue := views.OverduePanelData{LookbackDays: params.LookbackDays}
	names := make(map[string]string, len(params.Entities))
	for _, e := range params.Entities {
		names[e.ID] = e.Name
	}
	for _, occ := range snap.Overdue {
		name := names[occ.EntityID]
		if name == "" {
			name = occ.EntityID
		}
		overdue.Items = append(overdue.Items, views.OverdueItemData{
			Name:      name,
			CivilDate: occ.Civil.Format("2006-01-02"),
			LunarDate: occ.Lunar.String(),
		})
	}
	fmt.Println()
	fmt.Println(views.RenderOverduePanel(overdue))
	return nil
}
