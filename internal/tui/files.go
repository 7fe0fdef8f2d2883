package tui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"cardboard/internal/layers"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

var listExts = map[string]bool{".yaml": true, ".yml": true, ".txt": true, ".layers": true}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if layers.IsData(name) || listExts[ext] {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath loads a layer list, a project or a single data file with the
// default style. On error the previous data stays in place.
func (m *Model) loadPath(p string) {
	proj, data, err := layers.LoadFile(p)
	if err != nil {
		slog.Warn("tui: load", "path", p, "err", err)
		m.status = "load error: " + err.Error()
		return
	}
	m.setData(proj, data, p)
	m.status = fmt.Sprintf("loaded: %s  layers=%d planes=%d", filepath.Base(p), len(data.Layers), len(data.Planes))
	if !data.BBox.Finite() {
		m.status += "  (no polygons)"
	}
}
