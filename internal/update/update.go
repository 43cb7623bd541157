package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"miqat/internal/schedule"
	"miqat/internal/views"
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tickMsg:
		m.refresh()
		return m, tickCmd()

	case tea.KeyMsg:
		switch typed.String() {
		case "q", "ctrl+c":
			m.Quitting = true
			return m, tea.Quit
		case "1":
			m.CurrentView = ViewToday
			m.Cursor = 0
			return m, nil
		case "2":
			m.CurrentView = ViewOverdue
			return m, nil
		case "3":
			m.CurrentView = ViewSchedule
			return m, nil
		case "?":
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "r":
			m.refresh()
			return m, nil
		case "up", "k":
			if m.CurrentView == ViewToday && m.Cursor > 0 {
				m.Cursor--
			}
			return m, nil
		case "down", "j":
			if m.CurrentView == ViewToday && m.Cursor < len(m.Snapshot.Statuses)-1 {
				m.Cursor++
			}
			return m, nil
		}

		if m.CurrentView == ViewSchedule {
			var cmd tea.Cmd
			m.scheduleTable, cmd = m.scheduleTable.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	return m, nil
}

// refresh recaptures "now" exactly once and rebuilds everything from it.
func (m *Model) refresh() {
	now := m.now()
	m.Snapshot = BuildSnapshot(now, m.Params.Entities, m.Params.Completed,
		m.Params.Sunset, m.Params.Location, m.Params.LookbackDays)
	m.scheduleTable.SetRows(m.scheduleRows())
	if m.Cursor >= len(m.Snapshot.Statuses) {
		m.Cursor = 0
	}
}

func (m Model) scheduleRows() []table.Row {
	rows := make([]table.Row, 0, len(m.Params.Entities))
	for _, e := range m.Params.Entities {
		next := "—"
		if occ := schedule.NextOccurrences(e, m.Snapshot.Now, scheduleHorizonDays, 1); len(occ) > 0 {
			next = fmt.Sprintf("%s (%s)", occ[0].Civil.Format("2006-01-02"), occ[0].Lunar.Key())
		}
		rows = append(rows, table.Row{e.Name, string(e.Kind), e.Summary(), next})
	}
	return rows
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	if m.HelpVisible {
		return views.RenderMarkdown(views.HelpMarkdown())
	}

	data := views.AppData{
		Header:     fmt.Sprintf("miqat — %s", m.CurrentView),
		Body:       m.bodyView(),
		StatusLine: m.statusLine(),
		Footer:     m.helpModel.ShortHelpView(m.keys.ShortHelp()),
	}
	return views.RenderApp(data)
}

func (m Model) bodyView() string {
	switch m.CurrentView {
	case ViewOverdue:
		return views.RenderOverduePanel(m.overduePanelData())
	case ViewSchedule:
		return views.RenderSchedulePanel(views.SchedulePanelData{TableView: m.scheduleTable.View()})
	default:
		return views.RenderTodayPanel(m.todayPanelData())
	}
}

func (m Model) todayPanelData() views.TodayPanelData {
	snap := m.Snapshot
	data := views.TodayPanelData{
		CivilDate: snap.Now.Format("Monday, 2 January 2006"),
		LunarPre:  snap.Dual.Pre.String(),
		LunarPost: snap.Dual.Post.String(),
		Crossed:   snap.Dual.Crossed,
	}
	for i, st := range snap.Statuses {
		data.Items = append(data.Items, views.TodayItemData{
			Name:     st.Entity.Name,
			Kind:     string(st.Entity.Kind),
			Summary:  st.Entity.Summary(),
			Due:      st.Due,
			Done:     st.Done,
			Selected: i == m.Cursor,
		})
	}
	return data
}

func (m Model) overduePanelData() views.OverduePanelData {
	data := views.OverduePanelData{LookbackDays: m.Params.LookbackDays}
	names := make(map[string]string, len(m.Params.Entities))
	for _, e := range m.Params.Entities {
		names[e.ID] = e.Name
	}
	for _, occ := range m.Snapshot.Overdue {
		name := names[occ.EntityID]
		if name == "" {
			name = occ.EntityID
		}
		data.Items = append(data.Items, views.OverdueItemData{
			Name:      name,
			CivilDate: occ.Civil.Format("2006-01-02"),
			LunarDate: occ.Lunar.String(),
		})
	}
	return data
}

func (m Model) statusLine() string {
	if m.Snapshot.Warning != nil {
		return fmt.Sprintf("warning: %v (day boundary degraded to midnight)", m.Snapshot.Warning)
	}
	due := 0
	for _, st := range m.Snapshot.Statuses {
		if st.Due && !st.Done {
			due++
		}
	}
	return fmt.Sprintf("%d due today, %d overdue", due, len(m.Snapshot.Overdue))
}
