package tui

import (
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"cardboard/internal/camera"
	"cardboard/internal/draw"
	"cardboard/internal/layers"
)

const sidebarWidth = 28

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	project  *layers.Project
	data     *layers.Data
	pipeline *draw.Pipeline

	// Camera
	cam     camera.Camera
	initial camera.Camera
	capture *camera.Capture
	follow  bool
	mouseX  int
	mouseY  int
	mouseOK bool
	started time.Time

	// cached frame, rebuilt when the camera, data or viewport changes
	frame  []string
	frameW int
	frameH int
	ops    int

	// camera entry
	camEntry bool
	ta       textarea.Model

	// inspect popup
	inspectPopup string

	// layer table
	showAttrs bool
	tbl       table.Model
}

// New builds a model with no data; workers sizes the projection pool.
func New(workers int) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		status:      "cardboard ready",
		pipeline:    draw.New(workers),
		capture:     &camera.Capture{},
		started:     time.Now(),
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Layers & data"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "eye x y z  target x y z  (or paste a capture record). Enter to apply; Esc to cancel."
	m.ta.CharLimit = 256
	m.ta.SetWidth(50)
	m.ta.SetHeight(3)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a layer list, project or single data file.
func NewWithPath(path string, workers int) Model {
	m := New(workers)
	m.loadPath(path)
	return m
}

// NewWithData starts on already loaded data.
func NewWithData(p *layers.Project, d *layers.Data, workers int) Model {
	m := New(workers)
	m.setData(p, d, "")
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Close releases the projection workers.
func (m Model) Close() { m.pipeline.Close() }

// Camera returns the current camera.
func (m Model) Camera() camera.Camera { return m.cam }

func (m *Model) setData(p *layers.Project, d *layers.Data, path string) {
	m.project, m.data, m.selPath = p, d, path
	m.initial = d.InitialCamera()
	if c, ok := p.Cam(); ok {
		m.initial = c
	}
	m.cam = m.initial
	m.inspectPopup = ""
	m.frame = nil
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}

// timestamp is the capture clock: milliseconds since start.
func (m Model) timestamp() uint32 {
	return uint32(time.Since(m.started).Milliseconds())
}

// moveTo switches camera, records it when capturing and invalidates the frame.
func (m *Model) moveTo(c camera.Camera) {
	m.cam = c
	m.capture.Map(m.timestamp(), c)
	m.frame = nil
}
