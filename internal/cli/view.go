package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/treekit/lineage/pkg/member"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand creates the view command, an interactive member browser.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [family.json]",
		Short: "Browse family members interactively",
		Long: `Browse family members interactively.

The view command opens a scrollable table of all members. Selecting a
member shows their full record, including resolved parent and spouse
references.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(args[0])
		},
	}
}

// runView loads the members and runs the interactive browser.
func runView(input string) error {
	members, err := member.ReadMembersFile(input)
	if err != nil {
		return fmt.Errorf("load members %s: %w", input, err)
	}
	if members.Len() == 0 {
		printInfo("No members in %s", input)
		return nil
	}

	model := NewMemberListModel(members)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("run browser: %w", err)
	}

	m, ok := final.(MemberListModel)
	if !ok || m.Selected == nil {
		return nil
	}

	printMember(members, m.Selected)
	return nil
}

// printMember prints the full record for one member.
func printMember(c *member.Collection, m *member.FamilyMember) {
	printNewline()
	fmt.Println(StyleTitle.Render(m.FullName()))
	printNewline()

	printKeyValue("ID", m.ID)
	if m.MaidenName != "" {
		printKeyValue("Maiden name", m.MaidenName)
	}
	if span := m.Lifespan(); span != "" {
		printKeyValue("Lifespan", span)
	}
	if m.BirthPlace != "" {
		printKeyValue("Birthplace", m.BirthPlace)
	}
	if m.Occupation != "" {
		printKeyValue("Occupation", m.Occupation)
	}
	printKeyValue("Father", resolveName(c, m.FatherID))
	printKeyValue("Mother", resolveName(c, m.MotherID))
	printKeyValue("Spouse", resolveName(c, m.SpouseID))
	if m.Biography != "" {
		printNewline()
		printDetail("%s", m.Biography)
	}
}

// resolveName resolves an ID reference to a display name.
// Dangling references are shown with the raw ID so bad data stays visible.
func resolveName(c *member.Collection, id string) string {
	if id == "" {
		return "—"
	}
	if m, ok := c.Member(id); ok {
		return m.FullName()
	}
	return id + " (missing)"
}

// =============================================================================
// MemberListModel - Interactive member browsing
// =============================================================================

// MemberListModel is the bubbletea model for the member browser.
type MemberListModel struct {
	Collection *member.Collection
	Members    []member.FamilyMember
	Cursor     int
	Selected   *member.FamilyMember
	Height     int
	Offset     int
}

// NewMemberListModel creates a member list model sorted by display name.
func NewMemberListModel(c *member.Collection) MemberListModel {
	members := append([]member.FamilyMember(nil), c.Members()...)
	sort.Slice(members, func(i, j int) bool {
		return members[i].FullName() < members[j].FullName()
	})
	return MemberListModel{
		Collection: c,
		Members:    members,
		Cursor:     0,
		Height:     15,
		Offset:     0,
	}
}

func (m MemberListModel) Init() tea.Cmd {
	return nil
}

func (m MemberListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Members)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			selected := m.Members[m.Cursor]
			m.Selected = &selected
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m MemberListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Family Members"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Members) {
		end = len(m.Members)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Members[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		born := "—"
		if r.BirthDate != nil {
			born = r.BirthDate.Format("2006")
		}

		place := r.BirthPlace
		if place == "" {
			place = "—"
		}

		spouse := "—"
		if r.HasSpouse() {
			spouse = resolveName(m.Collection, r.SpouseID)
		}

		rows = append(rows, []string{cursor, r.FullName(), born, place, spouse})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Born", "Birthplace", "Spouse").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Members) {
				return lipgloss.NewStyle()
			}
			r := m.Members[actualIdx]
			isCurrent := actualIdx == m.Cursor
			isRoot := r.IsRoot()

			base := lipgloss.NewStyle()
			if col >= 2 {
				base = base.Foreground(colorDim)
			}

			if isCurrent {
				if col < 2 {
					return listSelectedStyle
				}
				return base.Bold(true)
			}
			if isRoot && col == 1 {
				return base.Foreground(colorGreen)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Members))))

	return b.String()
}
