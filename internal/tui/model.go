package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gobill/billing"
)

// titleRow is the focus row of the project title input.
const titleRow = -1

var entryFields = []billing.Field{billing.FieldTitle, billing.FieldDuration, billing.FieldPrice}

// ExportFunc writes the sheet somewhere and returns a description of the
// produced artifact.
type ExportFunc func(sheet billing.Sheet) (string, error)

// exportDoneMsg is sent when an export finished
type exportDoneMsg struct {
	target string
	err    error
}

// Model is the billing form. The sheet is the source of truth; inputs are
// rebuilt from it whenever rows are added or removed.
type Model struct {
	sheet  billing.Sheet
	export ExportFunc
	keys   KeyMap
	styles Styles

	titleInput textinput.Model
	rows       [][]textinput.Model
	focusRow   int
	focusCol   int

	status    string
	statusErr bool
	quitting  bool
}

func New(sheet billing.Sheet, export ExportFunc) Model {
	title := textinput.New()
	title.Placeholder = "Enter project title"
	title.CharLimit = 200
	title.Width = 40
	title.SetValue(sheet.ProjectTitle())

	m := Model{
		sheet:      sheet,
		export:     export,
		keys:       DefaultKeyMap(),
		styles:     DefaultStyles(),
		titleInput: title,
		focusRow:   titleRow,
		status:     "Ready",
	}
	m.rebuildRows()
	m.applyFocus()
	return m
}

// Sheet returns the current snapshot.
func (m Model) Sheet() billing.Sheet {
	return m.sheet
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Export failed: %v", msg.err), true)
			return m, nil
		}
		m.setStatus("Exported "+msg.target, false)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Export):
		m.setStatus("Exporting...", false)
		return m, m.exportCmd()
	case key.Matches(msg, m.keys.Add):
		m.sheet = m.sheet.AddEntry()
		m.rebuildRows()
		m.focusRow = m.sheet.Len() - 1
		m.focusCol = 0
		m.applyFocus()
		m.setStatus(fmt.Sprintf("Added entry %d", m.sheet.Len()), false)
		return m, nil
	case key.Matches(msg, m.keys.Remove):
		if m.focusRow == titleRow {
			m.setStatus("Select an entry to remove", true)
			return m, nil
		}
		removed := m.focusRow + 1
		m.sheet = m.sheet.RemoveEntry(m.focusRow)
		m.rebuildRows()
		if m.focusRow >= m.sheet.Len() {
			m.focusRow = m.sheet.Len() - 1
		}
		m.applyFocus()
		m.setStatus(fmt.Sprintf("Removed entry %d", removed), false)
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.moveField(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.moveField(-1)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.moveRow(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveRow(1)
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m Model) updateFocusedInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focusRow == titleRow {
		m.titleInput, cmd = m.titleInput.Update(msg)
		m.sheet = m.sheet.SetProjectTitle(m.titleInput.Value())
		return m, cmd
	}

	input := m.rows[m.focusRow][m.focusCol]
	input, cmd = input.Update(msg)
	m.rows[m.focusRow][m.focusCol] = input
	m.sheet = m.sheet.UpdateField(m.focusRow, entryFields[m.focusCol], input.Value())
	return m, cmd
}

func (m Model) exportCmd() tea.Cmd {
	sheet := m.sheet
	export := m.export
	return func() tea.Msg {
		if export == nil {
			return exportDoneMsg{err: fmt.Errorf("export is not configured")}
		}
		target, err := export(sheet)
		return exportDoneMsg{target: target, err: err}
	}
}

// moveField walks title -> row0 title/duration/price -> row1 ... and wraps.
func (m *Model) moveField(delta int) {
	positions := 1 + m.sheet.Len()*len(entryFields)
	current := 0
	if m.focusRow != titleRow {
		current = 1 + m.focusRow*len(entryFields) + m.focusCol
	}
	next := ((current+delta)%positions + positions) % positions
	if next == 0 {
		m.focusRow = titleRow
		m.focusCol = 0
	} else {
		m.focusRow = (next - 1) / len(entryFields)
		m.focusCol = (next - 1) % len(entryFields)
	}
	m.applyFocus()
}

func (m *Model) moveRow(delta int) {
	next := m.focusRow + delta
	if next < titleRow || next >= m.sheet.Len() {
		return
	}
	m.focusRow = next
	if next == titleRow {
		m.focusCol = 0
	}
	m.applyFocus()
}

func (m *Model) rebuildRows() {
	entries := m.sheet.Entries()
	m.rows = make([][]textinput.Model, 0, len(entries))
	for _, entry := range entries {
		values := []string{entry.Title, entry.Duration, entry.Price}
		row := make([]textinput.Model, 0, len(entryFields))
		for col, field := range entryFields {
			row = append(row, newEntryInput(field, values[col]))
		}
		m.rows = append(m.rows, row)
	}
}

func (m *Model) applyFocus() {
	m.titleInput.Blur()
	for i := range m.rows {
		for j := range m.rows[i] {
			m.rows[i][j].Blur()
		}
	}
	if m.focusRow == titleRow || m.focusRow >= len(m.rows) {
		m.focusRow = titleRow
		m.focusCol = 0
		m.titleInput.Focus()
		return
	}
	m.rows[m.focusRow][m.focusCol].Focus()
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func newEntryInput(field billing.Field, value string) textinput.Model {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 120
	switch field {
	case billing.FieldTitle:
		input.Placeholder = "Title"
		input.Width = 28
	case billing.FieldDuration:
		input.Placeholder = "Duration (minutes)"
		input.Width = 18
	default:
		input.Placeholder = "Price"
		input.Width = 12
	}
	input.SetValue(value)
	return input
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Billing Entries"))
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("Project title: "))
	b.WriteString(m.titleInput.View())
	b.WriteString("\n\n")

	b.WriteString(m.styles.Header.Render(fmt.Sprintf("%-4s%-30s%-20s%-14s%12s", "#", "Title", "Duration", "Price", "Total Cost")))
	b.WriteString("\n")

	entries := m.sheet.Entries()
	for i, row := range m.rows {
		index := m.styles.Index.Render(fmt.Sprintf("%d", i+1))
		if i == m.focusRow {
			index = m.styles.RowFocused.Render(fmt.Sprintf("%-4s", fmt.Sprintf("%d>", i+1)))
		}
		cells := []string{
			index,
			lipgloss.NewStyle().Width(30).Render(row[0].View()),
			lipgloss.NewStyle().Width(20).Render(row[1].View()),
			lipgloss.NewStyle().Width(14).Render(row[2].View()),
			m.styles.Total.Render(billing.LineTotal(entries[i]).StringFixed(2)),
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}
	if len(m.rows) == 0 {
		b.WriteString(m.styles.Label.Render("No entries (ctrl+n to add one)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Header.Render(fmt.Sprintf("%68s", "TOTAL")))
	b.WriteString(m.styles.GrandTotal.Render(billing.GrandTotal(entries).StringFixed(2)))
	b.WriteString("\n\n")

	if m.statusErr {
		b.WriteString(m.styles.StatusError.Render(m.status))
	} else {
		b.WriteString(m.styles.Status.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) helpView() string {
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, binding := range m.keys.ShortHelp() {
		help := binding.Help()
		parts = append(parts, m.styles.HelpKey.Render(help.Key)+" "+m.styles.HelpDesc.Render(help.Desc))
	}
	return strings.Join(parts, "  ")
}

// Run starts the interactive form and returns the final sheet.
func Run(sheet billing.Sheet, export ExportFunc) (billing.Sheet, error) {
	program := tea.NewProgram(New(sheet, export), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return sheet, fmt.Errorf("run billing form: %w", err)
	}
	if model, ok := final.(Model); ok {
		return model.Sheet(), nil
	}
	return sheet, nil
}
