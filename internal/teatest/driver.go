// Package teatest drives bubbletea models synchronously in tests. Instead
// of starting a tea.Program, the Driver calls Update directly and drains
// every returned Cmd in the calling goroutine, which keeps model tests
// deterministic. Cmds that block (cursor blink timers and the like) are
// abandoned after a short timeout.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDrainDepth caps recursive Cmd draining so a model that keeps
// returning Cmds cannot hang a test.
const maxDrainDepth = 100

// cmdTimeout separates real Cmds (which return in microseconds) from
// blocking timer Cmds.
const cmdTimeout = 10 * time.Millisecond

// Driver is a synchronous test harness for a tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set when tea.QuitMsg is seen during draining. The
	// bubbletea runtime normally intercepts it, so the driver has to.
	Quitting bool
}

// New creates a Driver and processes the model's Init command.
func New(t *testing.T, model tea.Model) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	d.drain(model.Init(), 0)
	return d
}

// Send dispatches a message through Update and drains resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, 0)
}

// Press sends a single character key.
func (d *Driver) Press(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// PressUp and PressDown send arrow keys.
func (d *Driver) PressUp()   { d.Send(tea.KeyMsg{Type: tea.KeyUp}) }
func (d *Driver) PressDown() { d.Send(tea.KeyMsg{Type: tea.KeyDown}) }

// PressEsc and PressEnter send the corresponding control keys.
func (d *Driver) PressEsc() { d.Send(tea.KeyMsg{Type: tea.KeyEsc}) }

func (d *Driver) PressEnter() { d.Send(tea.KeyMsg{Type: tea.KeyEnter}) }

// Type sends each character of s as its own key press.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Press(r)
	}
}

// View returns the model's current rendering.
func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDrainDepth {
		d.T.Fatalf("teatest: drain depth limit (%d) reached", maxDrainDepth)
	}

	msg := runWithTimeout(cmd)
	if msg == nil {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
	}

	updated, next := d.Model.Update(msg)
	d.Model = updated
	d.drain(next, depth+1)
}

func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}
