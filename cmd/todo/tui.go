package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/todo-app/client"
)

// inputMode says what keystrokes currently edit.
type inputMode int

const (
	modeList inputMode = iota
	modeAdd
	modeSearch
)

type refreshedMsg struct {
	err error
}

type mutatedMsg struct {
	err error
}

type tuiModel struct {
	ctx        context.Context
	controller *client.SyncController
	cursor     int
	mode       inputMode
	input      string
	showHelp   bool
	lastErr    error
}

// runTUI opens the interactive task list.
func runTUI(ctx context.Context, api *client.Client) error {
	model := &tuiModel{
		ctx:        ctx,
		controller: client.NewSyncController(api),
	}
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (m *tuiModel) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m *tuiModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: m.controller.Refresh(m.ctx)}
	}
}

func (m *tuiModel) toggleCmd(id uint) tea.Cmd {
	return func() tea.Msg {
		return mutatedMsg{err: m.controller.Toggle(m.ctx, id)}
	}
}

func (m *tuiModel) deleteCmd(id uint) tea.Cmd {
	return func() tea.Msg {
		return mutatedMsg{err: m.controller.Delete(m.ctx, id)}
	}
}

func (m *tuiModel) createCmd(title string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.controller.Create(m.ctx, title, "")
		return mutatedMsg{err: err}
	}
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != modeList {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	case refreshedMsg:
		m.lastErr = msg.err
		m.clampCursor()
		return m, nil
	case mutatedMsg:
		m.lastErr = msg.err
		m.clampCursor()
		return m, nil
	}
	return m, nil
}

func (m *tuiModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r", "f5":
		return m, m.refreshCmd()
	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "k", "up":
		m.cursor--
		m.clampCursor()
	case " ", "t", "enter":
		if task, ok := m.selected(); ok {
			return m, m.toggleCmd(task.ID)
		}
	case "d", "x":
		if task, ok := m.selected(); ok {
			return m, m.deleteCmd(task.ID)
		}
	case "a":
		m.mode = modeAdd
		m.input = ""
	case "/":
		m.mode = modeSearch
		m.input = m.controller.Search()
	case "f":
		m.controller.SetFilter(nextFilter(m.controller.Filter()))
		m.clampCursor()
	case "esc":
		m.controller.SetSearch("")
		m.clampCursor()
	case "h", "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *tuiModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.mode == modeSearch {
			m.controller.SetSearch("")
			m.clampCursor()
		}
		m.mode = modeList
		m.input = ""
	case tea.KeyEnter:
		mode := m.mode
		input := m.input
		m.mode = modeList
		m.input = ""
		if mode == modeAdd && strings.TrimSpace(input) != "" {
			return m, m.createCmd(input)
		}
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
		if m.mode == modeSearch {
			m.controller.SetSearch(m.input)
			m.clampCursor()
		}
	case tea.KeyRunes, tea.KeySpace:
		if msg.Type == tea.KeySpace {
			m.input += " "
		} else {
			m.input += string(msg.Runes)
		}
		// Search recomputes on every keystroke.
		if m.mode == modeSearch {
			m.controller.SetSearch(m.input)
			m.clampCursor()
		}
	}
	return m, nil
}

func (m *tuiModel) selected() (client.Task, bool) {
	visible := m.controller.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return client.Task{}, false
	}
	return visible[m.cursor], true
}

func (m *tuiModel) clampCursor() {
	visible := m.controller.Visible()
	if m.cursor >= len(visible) {
		m.cursor = len(visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func nextFilter(f client.Filter) client.Filter {
	switch f {
	case client.FilterAll:
		return client.FilterActive
	case client.FilterActive:
		return client.FilterCompleted
	default:
		return client.FilterAll
	}
}

func (m *tuiModel) View() string {
	var b strings.Builder
	title := "Todo"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")

	if m.showHelp {
		writeHelp(&b)
		return b.String()
	}

	if m.controller.State() == client.StateLoading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Filter: %s", m.controller.Filter()))
	if term := m.controller.Search(); term != "" {
		b.WriteString(fmt.Sprintf("  Search: %q", term))
	}
	b.WriteString("\n\n")

	visible := m.controller.Visible()
	if len(visible) == 0 {
		b.WriteString("  No tasks.\n")
	}
	for i, task := range visible {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}
		done := " "
		if task.Completed {
			done = "x"
		}
		b.WriteString(fmt.Sprintf("%s [%s] %s\n", cursor, done, task.Title))
		if i == m.cursor && task.Description != "" {
			b.WriteString("      " + task.Description + "\n")
		}
	}
	b.WriteString("\n")

	switch m.mode {
	case modeAdd:
		b.WriteString("New task: " + m.input + "_\n")
	case modeSearch:
		b.WriteString("Search: " + m.input + "_\n")
	}

	if m.lastErr != nil {
		b.WriteString("Error: " + m.lastErr.Error() + "\n")
	}

	b.WriteString("\nPress h for help | q to quit\n")
	return b.String()
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh from server\n")
	b.WriteString("  j/k, arrows  Move cursor\n")
	b.WriteString("  space, t     Toggle completion\n")
	b.WriteString("  d, x         Delete task\n")
	b.WriteString("  a            Add a task\n")
	b.WriteString("  /            Search title and description\n")
	b.WriteString("  f            Cycle filter (all/active/completed)\n")
	b.WriteString("  esc          Clear search\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
}
