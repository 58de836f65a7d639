package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jselig/mentionet/pkg/mentiongraph"
	"github.com/jselig/mentionet/pkg/metrics"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// rankingModel is the bubbletea model for the interactive ranking browser.
// The graph is computed once; switching the degree measure only re-sorts.
type rankingModel struct {
	graph    *mentiongraph.Graph
	k        int
	kind     metrics.DegreeKind
	rankings []metrics.RankingEntry
	cursor   int
	offset   int
	height   int
}

func newRankingModel(g *mentiongraph.Graph, k int, kind metrics.DegreeKind) rankingModel {
	return rankingModel{
		graph:    g,
		k:        k,
		kind:     kind,
		rankings: metrics.TopK(g, k, kind),
		height:   15,
	}
}

func (m rankingModel) Init() tea.Cmd {
	return nil
}

func (m rankingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rankings)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "i":
			return m.withKind(metrics.DegreeIn), nil
		case "o":
			return m.withKind(metrics.DegreeOut), nil
		case "t":
			return m.withKind(metrics.DegreeTotal), nil
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m rankingModel) withKind(kind metrics.DegreeKind) rankingModel {
	m.kind = kind
	m.rankings = metrics.TopK(m.graph, m.k, kind)
	m.cursor = 0
	m.offset = 0
	return m
}

func (m rankingModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(rankingTitle(m.kind, len(m.rankings))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  i/o/t switch measure  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rankings) {
		end = len(m.rankings)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		entry := m.rankings[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		node, _ := m.graph.Node(entry.Handle)
		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", i+1),
			node.DisplayLabel(),
			fmt.Sprintf("%d", entry.Score),
			fmt.Sprintf("%d", m.graph.InDegree(entry.Handle)),
			fmt.Sprintf("%d", m.graph.OutDegree(entry.Handle)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Handle", "Score", "In", "Out").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.offset+row == m.cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if col >= 4 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rankings))))

	return b.String()
}
