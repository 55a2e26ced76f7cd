// Package board renders a live, read-only task board over the registry
// file. The board reloads whenever the registry changes on disk, so it
// can stay open while agents claim and submit tasks.
package board

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/gafferdev/gaffer/internal/registry"
	"github.com/gafferdev/gaffer/pkg/models"
)

// registryChangedMsg signals that the registry file was modified.
type registryChangedMsg struct{}

// watchErrMsg carries a watcher failure.
type watchErrMsg struct{ err error }

// Model is the bubbletea model for the task board.
type Model struct {
	repoRoot string
	reg      *registry.Registry
	loadErr  error

	filter    textinput.Model
	filtering bool

	watcher *fsnotify.Watcher
	width   int
	height  int
}

// New creates a board for the repository at repoRoot and starts watching
// the registry file for changes.
func New(repoRoot string) (*Model, error) {
	reg, err := registry.Load(repoRoot)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors and git replace the file on write,
	// which would drop a watch on the file itself.
	if err := watcher.Add(repoRoot); err != nil {
		watcher.Close()
		return nil, err
	}

	filter := textinput.New()
	filter.Placeholder = "filter tasks"
	filter.Prompt = "/"
	filter.CharLimit = 64

	return &Model{
		repoRoot: repoRoot,
		reg:      reg,
		filter:   filter,
		watcher:  watcher,
	}, nil
}

// Close releases the file watcher.
func (m *Model) Close() error {
	return m.watcher.Close()
}

// Init starts the registry watch loop.
func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange blocks until the registry file changes on disk.
func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-m.watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Base(ev.Name) != registry.FileName {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					return registryChangedMsg{}
				}
			case err, ok := <-m.watcher.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case registryChangedMsg:
		reg, err := registry.Load(m.repoRoot)
		if err != nil {
			// Keep the last good registry; a half-written file will
			// trigger another event when the write completes.
			m.loadErr = err
		} else {
			m.reg = reg
			m.loadErr = nil
		}
		return m, m.waitForChange()

	case watchErrMsg:
		m.loadErr = msg.err
		return m, m.waitForChange()

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "esc":
				m.filtering = false
				m.filter.SetValue("")
				m.filter.Blur()
				return m, nil
			case "enter":
				m.filtering = false
				m.filter.Blur()
				return m, nil
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "/":
			m.filtering = true
			m.filter.Focus()
			return m, textinput.Blink
		case "esc":
			m.filter.SetValue("")
			return m, nil
		}
	}
	return m, nil
}

// visibleTasks returns the tasks matching the current filter, in
// registry order.
func (m *Model) visibleTasks() []*models.Task {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		return m.reg.Tasks
	}
	var out []*models.Task
	for _, t := range m.reg.Tasks {
		if strings.Contains(strings.ToLower(t.ID), query) ||
			strings.Contains(strings.ToLower(t.Description), query) ||
			strings.Contains(strings.ToLower(t.ClaimedBy), query) {
			out = append(out, t)
		}
	}
	return out
}
