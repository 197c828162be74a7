package prompt

import (
	"fmt"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/lilydev/bg3mm/internal/instance"
	"github.com/lilydev/bg3mm/internal/ui/styles"
)

// shortID matches the id column of the instance table.
const shortID = 8

// SelectResult holds the instance picked in a selection prompt.
type SelectResult struct {
	ID        uuid.UUID
	Name      string
	Cancelled bool
}

// instanceItem is one row of the picker. Filtering matches the name and the id.
type instanceItem struct {
	info instance.Info
}

func (i instanceItem) Title() string {
	return fmt.Sprintf("%s  %s", i.info.Name, styles.MutedStyle.Render(i.info.ID.String()[:shortID]))
}
func (i instanceItem) Description() string { return "" }
func (i instanceItem) FilterValue() string { return i.info.Name + " " + i.info.ID.String() }

type selectModel struct {
	list      list.Model
	chosen    *instance.Info
	cancelled bool
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		// While the filter is being typed, keys belong to the filter input.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(instanceItem); ok {
				info := item.info
				m.chosen = &info
			} else {
				m.cancelled = true
			}
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) done() bool {
	return m.chosen != nil || m.cancelled
}

func (m selectModel) View() tea.View {
	if m.done() {
		return tea.NewView("")
	}
	return tea.NewView(m.list.View())
}

// result converts the final model into a SelectResult.
func (m selectModel) result() SelectResult {
	if m.cancelled || m.chosen == nil {
		return SelectResult{Cancelled: true}
	}
	return SelectResult{ID: m.chosen.ID, Name: m.chosen.Name}
}

func newSelectModel(title string, instances []instance.Info) selectModel {
	items := make([]list.Item, len(instances))
	for i, info := range instances {
		items[i] = instanceItem{info: info}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)

	l := list.New(items, delegate, 60, min(len(instances)+6, 20))
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	return selectModel{list: l}
}

// Select lets the user pick one of instances, in index order.
// An empty list is reported as cancelled without prompting.
func Select(title string, instances []instance.Info) (SelectResult, error) {
	if len(instances) == 0 {
		return SelectResult{Cancelled: true}, nil
	}

	finalModel, err := run(newSelectModel(title, instances))
	if err != nil {
		return SelectResult{}, err
	}
	return finalModel.(selectModel).result(), nil
}
