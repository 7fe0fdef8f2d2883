// Package layers loads the data sources of a map together with their styles.
package layers

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cardboard/internal/camera"
	"cardboard/internal/geom"
	"cardboard/internal/style"
)

// Source names one layer: a data file and an optional style config.
type Source struct {
	Data  string `yaml:"data"`
	Style string `yaml:"style,omitempty"`
}

// Data is the loaded scene. Plane.Layer indexes Styles and Layers.
type Data struct {
	Sources []Source
	Layers  []geom.Layer
	Planes  geom.PlaneList
	Styles  style.Collection
	BBox    geom.BBox
}

// InitialCamera looks from the top-left-near corner of the scene at its center.
func (d *Data) InitialCamera() camera.Camera {
	return camera.New(d.BBox.TopLeftNear(), d.BBox.Center())
}

// ParseList reads a layer list: one "style:data" entry per line, style
// optional. Blank lines and lines starting with '#' are skipped. Relative
// paths are resolved against dir.
func ParseList(r io.Reader, dir string) ([]Source, error) {
	var out []Source
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var src Source
		if i := strings.LastIndex(line, ":"); i >= 0 {
			src.Style, src.Data = strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])
		} else {
			src.Data = line
		}
		if src.Data == "" {
			return nil, fmt.Errorf("layer list: entry %q has no data file", line)
		}
		out = append(out, src.resolve(dir))
	}
	return out, sc.Err()
}

func (s Source) resolve(dir string) Source {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) || dir == "" {
			return p
		}
		return filepath.Join(dir, p)
	}
	return Source{Data: abs(s.Data), Style: abs(s.Style)}
}

// IsData reports whether path names a supported data file.
func IsData(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json", ".wkt", ".kml", ".csv":
		return true
	}
	return false
}

// LoadData reads one data file, choosing the decoder from its extension.
func LoadData(path string, layer int) (geom.Layer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return geom.LoadGeo(path, layer)
	case ".wkt":
		return geom.LoadWKT(path, layer)
	case ".kml":
		return geom.LoadKML(path, layer)
	case ".csv":
		return geom.LoadCSV(path, layer)
	}
	return geom.Layer{}, fmt.Errorf("unsupported data file %q (want .geojson, .json, .wkt, .kml or .csv)", path)
}

// Load reads every source in order; source i becomes layer i. Sources without
// a style get the default style only. Any failure aborts the whole load.
func Load(sources []Source) (*Data, error) {
	d := &Data{Sources: sources}
	for i, src := range sources {
		l, err := LoadData(src.Data, i)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		list := style.NewList()
		if src.Style != "" {
			if list, err = style.LoadConfig(src.Style, i); err != nil {
				return nil, err
			}
		}
		list.Apply(l.Properties)
		slog.Info("layers: loaded", "layer", i, "data", src.Data, "style", src.Style,
			"features", len(l.Properties), "planes", len(l.Planes))
		d.Layers = append(d.Layers, l)
		d.Planes = append(d.Planes, l.Planes...)
		d.Styles = append(d.Styles, list)
	}
	d.BBox = geom.FromPlanes(d.Planes)
	return d, nil
}

// LoadFile loads a project (.yaml/.yml), a single data file with the default
// style, or otherwise a layer list. The project is returned in every case;
// lists and data files yield a project with only Layers set.
func LoadFile(path string) (*Project, *Data, error) {
	var (
		p   *Project
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case ext == ".yaml" || ext == ".yml":
		p, err = LoadProject(path)
	case IsData(path):
		p = &Project{Layers: []Source{{Data: path}}}
	default:
		p, err = loadList(path)
	}
	if err != nil {
		return nil, nil, err
	}
	d, err := Load(p.Layers)
	if err != nil {
		return nil, nil, err
	}
	return p, d, nil
}

func loadList(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, err := ParseList(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Project{Layers: src}, nil
}
