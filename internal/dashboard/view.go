package dashboard

import (
	"fmt"
	"strings"

	"shortscope/internal/report"
	"shortscope/internal/stats"

	"github.com/charmbracelet/lipgloss"
)

const chartBarWidth = 20

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Short-Video Scout"))
	b.WriteString("  ")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.state == stateScanning {
		line := fmt.Sprintf("%s Scanning...", m.spinner.View())
		if m.status != "" {
			line += "  " + m.status
		}
		b.WriteString(loadingStyle.Render(line))
		b.WriteString("\n")
		return b.String()
	}

	switch m.activeTab {
	case tabResults:
		if len(m.videos) == 0 {
			b.WriteString(helpStyle.Render("  No videos matched. Press 'r' to rescan."))
		} else {
			b.WriteString(m.table.View())
		}
	case tabCharts:
		b.WriteString(m.renderCharts())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab charts/results  •  ↑↓ navigate  •  r rescan  •  e export CSV  •  q quit"))
	return b.String()
}

func (m *Model) renderTabs() string {
	results := tabStyle.Render("Results")
	charts := tabStyle.Render("Charts")
	if m.activeTab == tabResults {
		results = activeTabStyle.Render("Results")
	} else {
		charts = activeTabStyle.Render("Charts")
	}
	return results + charts
}

func (m *Model) renderStatusLine() string {
	if m.warning != "" {
		return warningStyle.Render(m.warning)
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}

// renderCharts shows the three fixed-bin distributions side by side:
// view counts, durations, and upload hour in the display zone.
func (m *Model) renderCharts() string {
	summary := stats.Summarize(m.videos)

	views := renderBuckets("Views", stats.ViewHistogram(m.videos))
	durations := renderBuckets("Duration", stats.DurationHistogram(m.videos))
	hours := m.renderHourChart()

	charts := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(views),
		panelStyle.Render(durations),
		panelStyle.Render(hours),
	)

	header := helpStyle.Render(fmt.Sprintf("  %d videos  •  avg views %s  •  avg likes %s  •  avg length %.1fs",
		summary.Count,
		report.FormatCount(int64(summary.AvgViews)),
		report.FormatCount(int64(summary.AvgLikes)),
		summary.AvgDuration))

	return header + "\n" + charts
}

func renderBuckets(title string, buckets []stats.Bucket) string {
	max := 0
	for _, b := range buckets {
		if b.Count > max {
			max = b.Count
		}
	}

	var out strings.Builder
	out.WriteString(chartTitleStyle.Render(title))
	out.WriteString("\n")
	for _, b := range buckets {
		out.WriteString(renderBar(b.Label, b.Count, max, 10))
	}
	return out.String()
}

func (m *Model) renderHourChart() string {
	hours := stats.HourHistogram(m.videos, m.loc)
	max := 0
	for _, count := range hours {
		if count > max {
			max = count
		}
	}

	var out strings.Builder
	out.WriteString(chartTitleStyle.Render(fmt.Sprintf("Upload hour (%s)", m.loc)))
	out.WriteString("\n")
	for hour, count := range hours {
		if count == 0 {
			continue
		}
		out.WriteString(renderBar(fmt.Sprintf("%02d:00", hour), count, max, 5))
	}
	if max == 0 {
		out.WriteString(helpStyle.Render("no data"))
	}
	return out.String()
}

func renderBar(label string, count, max, labelWidth int) string {
	width := 0
	if max > 0 {
		width = count * chartBarWidth / max
	}
	if count > 0 && width == 0 {
		width = 1
	}
	bar := barStyle.Render(strings.Repeat("█", width))
	return fmt.Sprintf("%s %s %d\n",
		barLabelStyle.Render(fmt.Sprintf("%*s", labelWidth, label)), bar, count)
}
