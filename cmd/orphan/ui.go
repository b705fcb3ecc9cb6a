// # cmd/orphan/ui.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"orphan/internal/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	orphanStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list       list.Model
	report     *report.Report
	lastUpdate time.Time
}

type updateMsg struct {
	report *report.Report
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.report = msg.report
		m.lastUpdate = time.Now()

		items := []list.Item{}
		for _, p := range msg.report.Orphans {
			items = append(items, item{title: "Orphan", desc: p})
		}
		for _, cluster := range msg.report.OrphanClusters {
			items = append(items, item{
				title: "Orphan Cluster",
				desc:  strings.Join(cluster, " <-> "),
			})
		}
		for _, p := range msg.report.EntryPoints {
			items = append(items, item{title: "Entry Point", desc: p})
		}
		for _, w := range msg.report.Warnings {
			items = append(items, item{title: "Skipped", desc: fmt.Sprintf("%s (%s)", w.Path, w.Reason)})
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var status, summary string
	if m.report == nil {
		status = statusStyle.Render("Waiting for first scan...")
		summary = ""
	} else {
		status = statusStyle.Render(fmt.Sprintf("Last update: %v | %d files | %d edges",
			m.lastUpdate.Format("15:04:05"), m.report.ScannedFileCount, m.report.EdgesTotal))
		switch {
		case m.report.NothingScanned():
			summary = statusStyle.Render("Nothing scanned")
		case len(m.report.Orphans) == 0 && len(m.report.OrphanClusters) == 0:
			summary = successStyle.Render("No orphans")
		default:
			summary = orphanStyle.Render(fmt.Sprintf("%d orphans | %d clusters",
				len(m.report.Orphans), len(m.report.OrphanClusters)))
		}
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Orphan File Monitor"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func initialModel() model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Scan Results"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return model{
		list:       l,
		lastUpdate: time.Now(),
	}
}
