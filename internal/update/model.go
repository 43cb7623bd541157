package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"

	"miqat/internal/model"
)

type View string

const (
	ViewToday    View = "Today"
	ViewOverdue  View = "Overdue"
	ViewSchedule View = "Schedule"
)

// refreshEvery is how often the dashboard recaptures "now" and rebuilds
// its snapshot.
const refreshEvery = 30 * time.Second

// scheduleHorizonDays bounds the forward walk for next-due columns; rules
// that cannot fire within it show as pending.
const scheduleHorizonDays = 400

type keyMap struct {
	Today    key.Binding
	Overdue  key.Binding
	Schedule key.Binding
	Up       key.Binding
	Down     key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Today, k.Overdue, k.Schedule, k.Refresh, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Today, k.Overdue, k.Schedule},
		{k.Up, k.Down, k.Refresh},
		{k.Help, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Today:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "today")),
		Overdue:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "overdue")),
		Schedule: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "schedule")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "down")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Params is the read-only input the dashboard evaluates against; all of it
// comes from the config collaborator.
type Params struct {
	Entities     []model.Entity
	Completed    map[string]bool
	Sunset       string
	Location     *time.Location
	LookbackDays int
}

// Model is the dashboard state. It never mutates entities or completions;
// every refresh recomputes a Snapshot from one captured instant.
type Model struct {
	CurrentView View
	Cursor      int
	HelpVisible bool
	Quitting    bool

	Params   Params
	Snapshot Snapshot

	scheduleTable table.Model
	helpModel     help.Model
	keys          keyMap

	// now is injectable so tests stay deterministic.
	now func() time.Time
}

func NewModel(params Params) Model {
	return NewModelAt(params, time.Now)
}

// NewModelAt fixes the clock; used by tests and the one-shot printer. The
// injected clock is the only one ever consulted.
func NewModelAt(params Params, now func() time.Time) Model {
	m := Model{
		CurrentView: ViewToday,
		Params:      params,
		keys:        defaultKeyMap(),
		helpModel:   help.New(),
		now:         now,
	}
	m.scheduleTable = table.New(
		table.WithColumns([]table.Column{
			{Title: "Practice", Width: 22},
			{Title: "Kind", Width: 10},
			{Title: "Schedule", Width: 26},
			{Title: "Next due", Width: 24},
		}),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	m.refresh()
	return m
}
