package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"

	"cardboard/internal/camera"
	"cardboard/internal/draw"
	"cardboard/internal/layers"
	"cardboard/internal/render"
	"cardboard/internal/tui"
)

const usage = `Usage:
  cardboard [view] [map]                          interactive terminal viewer
  cardboard print [options] <map>                 render one frame to PNG or PDF
  cardboard replay [options] <map> <capture.txt>  render a capture to PNG frames

A map is a layer list (style:data per line), a .yaml project or a single
.geojson, .json, .wkt, .kml or .csv data file.
`

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	args := os.Args[1:]
	cmd := "view"
	if len(args) > 0 {
		switch args[0] {
		case "view", "print", "replay":
			cmd, args = args[0], args[1:]
		case "-h", "-help", "--help", "help":
			fmt.Fprint(os.Stderr, usage)
			return
		}
	}

	var err error
	switch cmd {
	case "print":
		err = runPrint(args)
	case "replay":
		err = runReplay(args)
	default:
		err = runView(args)
	}
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runView(args []string) error {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	workers := fs.Int("workers", runtime.GOMAXPROCS(0), "projection workers")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := tea.LogToFile("cardboard.log", "cardboard")
	if err != nil {
		return err
	}
	defer f.Close()
	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))

	var m tui.Model
	if path := fs.Arg(0); path != "" {
		p, d, err := layers.LoadFile(path)
		if err != nil {
			return err
		}
		m = tui.NewWithData(p, d, *workers)
	} else {
		m = tui.New(*workers)
	}
	defer m.Close()
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}

type frameFlags struct {
	width, height float64
	workers       int
	eye, target   string
}

func (f *frameFlags) register(fs *flag.FlagSet, width, height float64) {
	fs.Float64Var(&f.width, "w", width, "output width in pixels (points for PDF)")
	fs.Float64Var(&f.height, "h", height, "output height")
	fs.IntVar(&f.workers, "workers", 0, "projection workers (default: project value or GOMAXPROCS)")
	fs.StringVar(&f.eye, "eye", "", "camera eye as x,y,z")
	fs.StringVar(&f.target, "target", "", "camera target as x,y,z")
}

// camera picks the flag camera, then the project camera, then the default view.
func (f *frameFlags) camera(p *layers.Project, d *layers.Data) (camera.Camera, error) {
	cam := d.InitialCamera()
	if c, ok := p.Cam(); ok {
		cam = c
	}
	if f.eye == "" && f.target == "" {
		return cam, nil
	}
	eye, target := f.eye, f.target
	if eye == "" {
		eye = fmt.Sprintf("%v,%v,%v", cam.Eye[0], cam.Eye[1], cam.Eye[2])
	}
	if target == "" {
		target = fmt.Sprintf("%v,%v,%v", cam.Target[0], cam.Target[1], cam.Target[2])
	}
	return camera.ParseCamera(eye + "," + target)
}

func (f *frameFlags) pipeline(p *layers.Project) *draw.Pipeline {
	n := f.workers
	if n <= 0 {
		n = p.Workers
	}
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return draw.New(n)
}

func runPrint(args []string) error {
	fs := flag.NewFlagSet("print", flag.ContinueOnError)
	var ff frameFlags
	ff.register(fs, 595, 841)
	out := fs.String("o", "out.png", "output file (.png or .pdf)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("print: want exactly one map file")
	}
	p, d, err := layers.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	if !isSet(fs, "w") && p.Width > 0 {
		ff.width = p.Width
	}
	if !isSet(fs, "h") && p.Height > 0 {
		ff.height = p.Height
	}
	cam, err := ff.camera(p, d)
	if err != nil {
		return err
	}
	pl := ff.pipeline(p)
	defer pl.Close()

	ops := pl.Draw(d.Planes, cam, ff.width)
	if err := render.File(*out, ff.width, ff.height, ops, d.Styles); err != nil {
		return err
	}
	slog.Info("print: done", "out", *out, "ops", len(ops), "camera", cam.String())
	return nil
}

func runReplay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	var ff frameFlags
	ff.register(fs, 600, 600)
	dir := fs.String("o", "frames", "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.New("replay: want a map file and a capture file")
	}
	p, d, err := layers.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	capture, err := camera.LoadCapture(fs.Arg(1))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*dir, 0o755); err != nil {
		return err
	}
	pl := ff.pipeline(p)
	defer pl.Close()

	for i, fr := range capture.Frames() {
		ops := pl.Draw(d.Planes, fr.Camera, ff.width)
		path := filepath.Join(*dir, fmt.Sprintf("frame_%06d.png", i))
		if err := render.File(path, ff.width, ff.height, ops, d.Styles); err != nil {
			return fmt.Errorf("frame %d (t=%d): %w", i, fr.Timestamp, err)
		}
		slog.Debug("replay: frame", "index", i, "timestamp", fr.Timestamp, "ops", len(ops))
	}
	slog.Info("replay: done", "frames", len(capture.Frames()), "dir", *dir)
	return nil
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
