package geom

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"
)

type kmlRing struct {
	Coordinates string `xml:"LinearRing>coordinates"`
}

type kmlPolygon struct {
	Outer kmlRing `xml:"outerBoundaryIs"`
}

type kmlData struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
}

type kmlPlacemark struct {
	Name     string       `xml:"name"`
	Polygons []kmlPolygon `xml:"Polygon"`
	Multi    []kmlPolygon `xml:"MultiGeometry>Polygon"`
	Data     []kmlData    `xml:"ExtendedData>Data"`
}

// LoadKML reads Placemark polygons (plain or inside MultiGeometry) from a KML file.
func LoadKML(path string, layer int) (Layer, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layer{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return Layer{}, err
	}
	return ParseKML(data, layer)
}

// ParseKML extracts one feature per Placemark. Coordinates are "lon,lat[,alt]";
// altitude becomes z. ExtendedData values that parse as numbers are stored as
// float64 so interval rules can match them.
func ParseKML(data []byte, layer int) (Layer, error) {
	type kmlDoc struct {
		Placemarks []kmlPlacemark `xml:"Document>Placemark"`
		Folders    []kmlPlacemark `xml:"Document>Folder>Placemark"`
		Bare       []kmlPlacemark `xml:"Placemark"`
	}
	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Layer{}, err
	}
	var l Layer
	all := append(append(doc.Placemarks, doc.Folders...), doc.Bare...)
	for i, pm := range all {
		props := Properties{}
		if pm.Name != "" {
			props["name"] = pm.Name
		}
		for _, d := range pm.Data {
			v := strings.TrimSpace(d.Value)
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				props[d.Name] = n
			} else {
				props[d.Name] = v
			}
		}
		l.Properties = append(l.Properties, props)
		for _, poly := range append(pm.Polygons, pm.Multi...) {
			if p, ok := NewPlane(layer, i, parseKMLCoords(poly.Outer.Coordinates)); ok {
				l.Planes = append(l.Planes, p)
			}
		}
	}
	return l, nil
}

func parseKMLCoords(s string) []Point {
	var ring []Point
	// coordinates contain tuples separated by whitespace
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		coords := make([]float64, 0, 3)
		for _, v := range vals[:min(3, len(vals))] {
			n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				coords = nil
				break
			}
			coords = append(coords, n)
		}
		if pt, ok := pointFromCoords(coords); ok {
			ring = append(ring, pt)
		}
	}
	return ring
}
