package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"cardboard/internal/render"
)

// layout returns the map viewport size and its top-left cell on screen.
func (m Model) layout() (w, h, originX, originY int) {
	headerHeight := 1
	footerHeight := 2
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	w = contentWidth
	if m.showSidebar {
		w -= sidebarWidth + 1
		originX = sidebarWidth + 1
	}
	return max(8, w), contentHeight, originX, headerHeight
}

// ensureFrame rebuilds the cached frame when it was invalidated or the
// viewport changed size.
func (m *Model) ensureFrame() {
	if m.data == nil || m.width == 0 {
		return
	}
	w, h, _, _ := m.layout()
	if m.frame != nil && m.frameW == w && m.frameH == h {
		return
	}
	canvas := newBrailleCanvas(w, h)
	ops := m.pipeline.Draw(m.data.Planes, m.cam, canvas.drawWidth())
	render.Paint(ops, m.data.Styles, canvas)
	m.frame, m.frameW, m.frameH = canvas.lines(), w, h
	m.ops = len(ops)
}

func (m Model) renderMap(w, h int) string {
	if m.frame == nil {
		msg := "no data loaded: Tab opens the file browser"
		return dimStyle.Render(msg)
	}
	lines := m.frame
	if len(lines) > h {
		lines = lines[:h]
	}
	return strings.Join(lines, "\n")
}

// inspectText describes the loaded scene and camera for the inspect popup.
func (m Model) inspectText() string {
	if m.data == nil {
		return "nothing loaded"
	}
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<data>"
	}
	b := m.data.BBox
	meta := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("layers: %d  planes: %d  ops: %d", len(m.data.Layers), len(m.data.Planes), m.ops),
		fmt.Sprintf("bbox min: %s", fmtPoint([3]float64{b.MinX, b.MinY, b.MinZ})),
		fmt.Sprintf("bbox max: %s", fmtPoint([3]float64{b.MaxX, b.MaxY, b.MaxZ})),
		fmt.Sprintf("eye:    %s", fmtPoint(m.cam.Eye)),
		fmt.Sprintf("target: %s", fmtPoint(m.cam.Target)),
		fmt.Sprintf("distance: %.2f", m.cam.Eye.Sub(m.cam.Target).Len()),
		fmt.Sprintf("capture: %d frames", len(m.capture.Frames())),
	}
	return strings.Join(meta, "\n")
}
