package views

import (
	"fmt"
	"strings"
)

type TodayItemData struct {
	Name     string
	Kind     string
	Summary  string
	Due      bool
	Done     bool
	Selected bool
}

type TodayPanelData struct {
	CivilDate string
	LunarPre  string
	LunarPost string
	Crossed   bool
	Items     []TodayItemData
}

type OverdueItemData struct {
	Name      string
	CivilDate string
	LunarDate string
}

type OverduePanelData struct {
	LookbackDays int
	Items        []OverdueItemData
}

type SchedulePanelData struct {
	TableView string
}

func RenderTodayPanel(data TodayPanelData) string {
	var b strings.Builder
	b.WriteString(data.CivilDate + "\n")
	if data.Crossed {
		b.WriteString(lunarStyle.Render(fmt.Sprintf("%s — after Maghrib the day advances to %s", data.LunarPre, data.LunarPost)) + "\n")
	} else {
		b.WriteString(lunarStyle.Render(data.LunarPre) + "\n")
	}
	b.WriteString("\n")

	if len(data.Items) == 0 {
		b.WriteString(idleStyle.Render("no active practices configured"))
		return strings.TrimRight(b.String(), "\n")
	}
	for _, item := range data.Items {
		cursor := "  "
		if item.Selected {
			cursor = "> "
		}
		mark := idleStyle.Render("—")
		switch {
		case item.Due && item.Done:
			mark = statusStyle.Render("✓")
		case item.Due:
			mark = dueStyle.Render("due")
		}
		b.WriteString(fmt.Sprintf("%s%-24s %-10s %-28s %s\n", cursor, item.Name, item.Kind, item.Summary, mark))
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderOverduePanel(data OverduePanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("missed in the last %d days:\n\n", data.LookbackDays))
	if len(data.Items) == 0 {
		b.WriteString(statusStyle.Render("nothing outstanding"))
		return b.String()
	}
	for _, item := range data.Items {
		b.WriteString(fmt.Sprintf("  %-24s %s  (%s)\n", item.Name, item.CivilDate, item.LunarDate))
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderSchedulePanel(data SchedulePanelData) string {
	return data.TableView
}

// HelpMarkdown is the source for the glamour-rendered help overlay.
func HelpMarkdown() string {
	return strings.TrimSpace(`
# miqat

Read-only dashboard for the dual-calendar due engine.

| Key | Action |
| --- | ------ |
| 1 / 2 / 3 | Today, Overdue, Schedule views |
| j / k | move cursor |
| r | refresh now |
| ? | toggle this help |
| q | quit |

Dates are tabular Hijri; the lunar day advances at the configured
Maghrib time, not at midnight.
`)
}
