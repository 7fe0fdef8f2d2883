package layers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"cardboard/internal/camera"
	"cardboard/internal/geom"
)

// Project is the YAML form of a map: output size, worker count, an optional
// fixed camera and the layers.
//
//	width: 595
//	height: 841
//	workers: 4
//	camera:
//	  eye: [0, -100, 80]
//	  target: [0, 0, 0]
//	layers:
//	  - data: buildings.geojson
//	    style: buildings.json
type Project struct {
	Width   float64      `yaml:"width,omitempty"`
	Height  float64      `yaml:"height,omitempty"`
	Workers int          `yaml:"workers,omitempty"`
	Camera  *CameraEntry `yaml:"camera,omitempty"`
	Layers  []Source     `yaml:"layers"`
}

type CameraEntry struct {
	Eye    []float64 `yaml:"eye"`
	Target []float64 `yaml:"target"`
}

// Cam returns the configured camera, if any.
func (p *Project) Cam() (camera.Camera, bool) {
	if p == nil || p.Camera == nil {
		return camera.Camera{}, false
	}
	return camera.New(vec(p.Camera.Eye), vec(p.Camera.Target)), true
}

func vec(v []float64) geom.Point {
	var pt geom.Point
	copy(pt[:], v)
	return pt
}

// ParseProject decodes a project; relative layer paths resolve against dir.
func ParseProject(data []byte, dir string) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	if len(p.Layers) == 0 {
		return nil, errors.New("project: no layers")
	}
	if c := p.Camera; c != nil && (len(c.Eye) != 3 || len(c.Target) != 3) {
		return nil, errors.New("project: camera eye and target need 3 coordinates")
	}
	for i, src := range p.Layers {
		if src.Data == "" {
			return nil, fmt.Errorf("project: layer %d has no data file", i)
		}
		p.Layers[i] = src.resolve(dir)
	}
	return &p, nil
}

func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := ParseProject(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Save writes the project as YAML.
func (p *Project) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
