package geom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads a table whose geometry column (wkt|geometry|geom|the_geom,
// case-insensitive) holds WKT polygons. Each data row is one feature and the
// remaining columns become its properties; numeric cells are stored as float64.
func LoadCSV(path string, layer int) (Layer, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layer{}, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return Layer{}, err
	}
	if len(recs) == 0 {
		return Layer{}, errors.New("empty csv")
	}
	header := recs[0]
	idxGeom := -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "wkt", "geometry", "geom", "the_geom":
			if idxGeom == -1 {
				idxGeom = i
			}
		}
	}
	if idxGeom == -1 {
		return Layer{}, errors.New("csv: geometry column not found")
	}
	var l Layer
	for n, row := range recs[1:] {
		feature := len(l.Properties)
		props := Properties{}
		for i, cell := range row {
			if i == idxGeom || i >= len(header) {
				continue
			}
			cell = strings.TrimSpace(cell)
			if v, err := strconv.ParseFloat(cell, 64); err == nil {
				props[header[i]] = v
			} else {
				props[header[i]] = cell
			}
		}
		l.Properties = append(l.Properties, props)
		if idxGeom >= len(row) {
			continue
		}
		pl, err := ParseWKT(row[idxGeom], layer, feature)
		if err != nil {
			return Layer{}, fmt.Errorf("csv row %d: %w", n+2, err)
		}
		l.Planes = append(l.Planes, pl...)
	}
	return l, nil
}
