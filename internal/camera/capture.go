package camera

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"cardboard/internal/geom"
)

// Frame is one captured camera position.
type Frame struct {
	Timestamp uint32
	Camera    Camera
}

// Record serializes the frame as "ts ex ey ez tx ty tz\n".
func (f Frame) Record() string {
	c := f.Camera
	return fmt.Sprintf("%d %v %v %v %v %v %v\n", f.Timestamp,
		c.Eye[0], c.Eye[1], c.Eye[2], c.Target[0], c.Target[1], c.Target[2])
}

// ParseRecord reads a record produced by Record. Fields are separated by a
// single space; the error names the first field that failed.
func ParseRecord(line string) (Frame, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), " ")
	if len(fields) < 7 {
		return Frame{}, fmt.Errorf("record: field %d missing", len(fields))
	}
	ts, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return Frame{}, fmt.Errorf("record: field 0: %w", err)
	}
	var v [6]float64
	for i := range v {
		v[i], err = strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return Frame{}, fmt.Errorf("record: field %d: %w", i+1, err)
		}
	}
	return Frame{
		Timestamp: uint32(ts),
		Camera:    New(geom.Point{v[0], v[1], v[2]}, geom.Point{v[3], v[4], v[5]}),
	}, nil
}

// ParseCamera reads "ex ey ez tx ty tz", optionally prefixed by "Camera" as
// printed by Camera.String. Commas are accepted as separators.
func ParseCamera(s string) (Camera, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) > 0 && strings.EqualFold(fields[0], "camera") {
		fields = fields[1:]
	}
	if len(fields) != 6 {
		return Camera{}, errors.New("camera: want 6 numbers (eye x y z, target x y z)")
	}
	var v [6]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Camera{}, fmt.Errorf("camera: %w", err)
		}
		v[i] = n
	}
	return New(geom.Point{v[0], v[1], v[2]}, geom.Point{v[3], v[4], v[5]}), nil
}

// Capture accumulates frames while switched on.
type Capture struct {
	on     bool
	frames []Frame
}

// Toggle switches recording; turning it on discards previous frames.
func (c *Capture) Toggle() {
	if c.on {
		c.on = false
		return
	}
	c.on = true
	c.frames = nil
}

func (c *Capture) On() bool { return c.on }

// Map records cam at ts when recording.
func (c *Capture) Map(ts uint32, cam Camera) {
	if c.on {
		c.frames = append(c.frames, Frame{Timestamp: ts, Camera: cam})
	}
}

func (c *Capture) Frames() []Frame { return c.frames }

func (c *Capture) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, f := range c.frames {
		k, err := bw.WriteString(f.Record())
		n += int64(k)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

func (c *Capture) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("save capture %s: %w", path, err)
	}
	return f.Close()
}

// ReadCapture parses one record per line; malformed records are dropped.
// The returned capture is not recording.
func ReadCapture(r io.Reader) (*Capture, error) {
	c := &Capture{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if f, err := ParseRecord(sc.Text()); err == nil {
			c.frames = append(c.frames, f)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func LoadCapture(path string) (*Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCapture(f)
}
