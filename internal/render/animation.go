package render

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// animation shows one frame per tick until next reports the last one.
type animation struct {
	frame  string
	status string
	delay  time.Duration
	styles Styles
	next   func() (frame, status string, last bool)
	done   bool
}

func newAnimation(first, status string, delay time.Duration, styles Styles, next func() (string, string, bool)) animation {
	return animation{frame: first, status: status, delay: delay, styles: styles, next: next}
}

// Init implements tea.Model.
func (m animation) Init() tea.Cmd {
	return tick(m.delay)
}

// Update implements tea.Model.
func (m animation) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		if m.done {
			return m, tea.Quit
		}
		m.frame, m.status, m.done = m.next()
		if m.done {
			return m, tea.Quit
		}
		return m, tick(m.delay)
	}
	return m, nil
}

// View implements tea.Model.
func (m animation) View() string {
	help := "q to quit"
	if m.done {
		help = "done"
	}
	return m.frame + "\n" + m.styles.paint(m.styles.Status, m.status+"  "+help) + "\n"
}
