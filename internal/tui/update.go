package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"cardboard/internal/camera"
	"cardboard/internal/layers"
)

var arrowKeys = map[string]struct {
	key camera.Key
	mod camera.Modifier
}{
	"left":       {camera.KeyLeft, camera.ModNone},
	"right":      {camera.KeyRight, camera.ModNone},
	"up":         {camera.KeyUp, camera.ModNone},
	"down":       {camera.KeyDown, camera.ModNone},
	"ctrl+left":  {camera.KeyLeft, camera.ModCtrl},
	"ctrl+right": {camera.KeyRight, camera.ModCtrl},
	"ctrl+up":    {camera.KeyUp, camera.ModCtrl},
	"ctrl+down":  {camera.KeyDown, camera.ModCtrl},
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.handle(msg)
	m.ensureFrame()
	return m, cmd
}

func (m Model) handle(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		_, h, _, _ := m.layout()
		m.l.SetSize(sidebarWidth-2, h-2)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// the file list owns the keyboard while filtering
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.camEntry {
		return m.handleEntry(msg)
	}
	key := msg.String()
	// with the sidebar open plain up/down move the list selection
	listNav := m.showSidebar && (key == "up" || key == "down")
	if a, ok := arrowKeys[key]; ok && !listNav {
		if cmd, ok := camera.ForKey(a.key, a.mod); ok {
			m.moveTo(m.cam.Apply(cmd))
			m.status = cmd.Op.String()
		}
		return m, nil
	}
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.moveTo(m.initial)
		m.status = "camera reset"
	case "c":
		m.capture.Toggle()
		if m.capture.On() {
			m.capture.Map(m.timestamp(), m.cam)
			m.status = "capture on"
		} else {
			m.status = fmt.Sprintf("capture off: %d frames", len(m.capture.Frames()))
		}
	case "s":
		m.saveCapture()
	case "f":
		m.follow = !m.follow
		m.mouseOK = false
		m.status = fmt.Sprintf("follow mouse: %v", m.follow)
	case "P":
		m.status = m.cam.String()
	case "e":
		m.camEntry = true
		m.ta.SetValue(m.cam.String())
		m.ta.Focus()
		m.status = "camera entry"
	case "w":
		m.saveProject()
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
		}
		m.frame = nil
	case "h":
		m.helpVisible = !m.helpVisible
	case "a":
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrsFromCurrent()
		}
	case "i":
		if m.inspectPopup != "" {
			m.inspectPopup = ""
		} else {
			m.inspectPopup = m.inspectText()
			m.status = "inspect popup"
		}
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		}
	default:
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// handleEntry edits the camera entry box. Enter accepts either a camera as
// printed by P or a capture record.
func (m Model) handleEntry(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.camEntry = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		v := strings.TrimSpace(m.ta.Value())
		c, err := camera.ParseCamera(v)
		if err != nil {
			f, rerr := camera.ParseRecord(v)
			if rerr != nil {
				m.status = err.Error()
				return m, nil
			}
			c = f.Camera
		}
		m.moveTo(c)
		m.camEntry = false
		m.ta.Blur()
		m.status = "camera set"
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.moveTo(m.cam.Apply(camera.ForWheel(1)))
			return m
		case tea.MouseButtonWheelDown:
			m.moveTo(m.cam.Apply(camera.ForWheel(-1)))
			return m
		}
	}
	if !m.follow || msg.Action != tea.MouseActionMotion {
		return m
	}
	if m.mouseOK {
		dx, dy := msg.X-m.mouseX, msg.Y-m.mouseY
		if dx != 0 || dy != 0 {
			m.moveTo(m.cam.Apply(camera.ForMotion(dx, dy)))
		}
	}
	m.mouseX, m.mouseY, m.mouseOK = msg.X, msg.Y, true
	return m
}

func (m *Model) saveCapture() {
	path := filepath.Join(m.cwd, fmt.Sprintf("capture_%d.txt", time.Now().Unix()))
	if err := m.capture.Save(path); err != nil {
		m.status = "capture save error: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("saved %d frames to %s", len(m.capture.Frames()), filepath.Base(path))
}

// saveProject writes the loaded layers and the current camera as a project
// file beside the loaded path.
func (m *Model) saveProject() {
	if m.data == nil {
		m.status = "nothing to save"
		return
	}
	p := layers.Project{Layers: m.data.Sources}
	if m.project != nil {
		p = *m.project
	}
	p.Camera = &layers.CameraEntry{
		Eye:    []float64{m.cam.Eye[0], m.cam.Eye[1], m.cam.Eye[2]},
		Target: []float64{m.cam.Target[0], m.cam.Target[1], m.cam.Target[2]},
	}
	path := projectPath(m.cwd, m.selPath)
	if err := p.Save(path); err != nil {
		m.status = "project save error: " + err.Error()
		return
	}
	m.status = "saved project " + filepath.Base(path)
}

func projectPath(cwd, loaded string) string {
	if loaded == "" {
		return filepath.Join(cwd, "cardboard.yaml")
	}
	switch ext := strings.ToLower(filepath.Ext(loaded)); ext {
	case ".yaml", ".yml":
		return loaded
	default:
		return strings.TrimSuffix(loaded, filepath.Ext(loaded)) + ".yaml"
	}
}
