package cli

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ukopendata/datagovuk/pkg/ckan"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
)

// orgsBrowseCommand creates the "orgs browse" subcommand: an interactive
// picker over the organization directory with live substring filtering.
func (c *CLI) orgsBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactively browse and pick an organization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := c.newClient()

			spinner := newSpinner(cmd.Context(), "Fetching organization directory")
			spinner.Start()
			orgs, err := client.Organizations(cmd.Context())
			spinner.Stop()
			if err != nil {
				return fmt.Errorf("fetch organizations: %w", err)
			}
			if len(orgs) == 0 {
				printInfo("The catalogue lists no organizations")
				return nil
			}

			model := newOrgListModel(orgs)
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("run browser: %w", err)
			}

			m, ok := final.(orgListModel)
			if !ok || m.selected == "" {
				return nil
			}

			info, err := client.OrganizationInfo(cmd.Context(), m.selected)
			if errors.Is(err, ckan.ErrNotFound) {
				return fmt.Errorf("no organization named %q", m.selected)
			}
			if err != nil {
				return fmt.Errorf("fetch organization: %w", err)
			}
			printOrganization(info)
			return nil
		},
	}
}

// orgListModel is the bubbletea model for interactive organization selection.
// Typing narrows the listing with the same substring policy as `orgs search`.
type orgListModel struct {
	orgs     []string
	filtered []string
	query    string
	cursor   int
	offset   int
	height   int
	selected string
}

func newOrgListModel(orgs []string) orgListModel {
	return orgListModel{
		orgs:     orgs,
		filtered: orgs,
		height:   15,
	}
}

func (m orgListModel) Init() tea.Cmd {
	return nil
}

func (m orgListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			if len(m.filtered) > 0 {
				m.selected = m.filtered[m.cursor]
			}
			return m, tea.Quit
		case "backspace":
			if len(m.query) > 0 {
				m.query = m.query[:len(m.query)-1]
				m.refilter()
			}
		default:
			if msg.Type == tea.KeyRunes {
				m.query += string(msg.Runes)
				m.refilter()
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

// refilter recomputes the visible listing and clamps the cursor.
func (m *orgListModel) refilter() {
	m.filtered = ckan.FilterNames(m.orgs, m.query)
	m.cursor = 0
	m.offset = 0
}

func (m orgListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse Organizations"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("type to filter  ↑/↓ navigate  ⏎ select  esc quit"))
	b.WriteString("\n\n")

	prompt := "filter: " + m.query
	if m.query == "" {
		prompt = "filter: " + StyleDim.Render("(all organizations)")
	}
	b.WriteString(prompt)
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := m.offset; i < end; i++ {
		line := "  " + m.filtered[i]
		if i == m.cursor {
			line = "▸ " + m.filtered[i]
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.filtered) == 0 {
		b.WriteString(StyleDim.Render("  no matches"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", min(m.cursor+1, len(m.filtered)), len(m.filtered))))

	return b.String()
}
