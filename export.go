package main

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/paulmach/orb/geojson"
)

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// BuildSVG renders the graph edges, the explored nodes and the route as an
// SVG document in pixel coordinates
func BuildSVG(graph *MazeGraph, result *SearchResult, path Path, palette Palette) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("width", strconv.Itoa(graph.Width))
	svg.CreateAttr("height", strconv.Itoa(graph.Height))
	svg.CreateAttr("viewBox", fmt.Sprintf("0 0 %d %d", graph.Width, graph.Height))

	bg := svg.CreateElement("rect")
	bg.CreateAttr("width", "100%")
	bg.CreateAttr("height", "100%")
	bg.CreateAttr("fill", "black")

	edges := svg.CreateElement("g")
	edges.CreateAttr("id", "graph")
	edges.CreateAttr("stroke", "white")
	edges.CreateAttr("stroke-width", "1")
	for _, seg := range graph.EdgeSegments() {
		a, b := toOrbPoint(seg[0]), toOrbPoint(seg[1])
		line := edges.CreateElement("line")
		line.CreateAttr("x1", ftoa(a[0]))
		line.CreateAttr("y1", ftoa(a[1]))
		line.CreateAttr("x2", ftoa(b[0]))
		line.CreateAttr("y2", ftoa(b[1]))
	}

	if result != nil {
		explored := svg.CreateElement("g")
		explored.CreateAttr("id", "explored")
		explored.CreateAttr("fill", hexColor(palette.Explored))
		for _, pos := range SortedPositions(result.Closed) {
			cell := explored.CreateElement("rect")
			cell.CreateAttr("x", strconv.Itoa(pos.X))
			cell.CreateAttr("y", strconv.Itoa(pos.Y))
			cell.CreateAttr("width", "1")
			cell.CreateAttr("height", "1")
		}
	}

	if len(path) > 0 {
		points := make([]string, 0, len(path))
		for _, pt := range path.LineString() {
			points = append(points, ftoa(pt[0])+","+ftoa(pt[1]))
		}
		route := svg.CreateElement("polyline")
		route.CreateAttr("id", "route")
		route.CreateAttr("fill", "none")
		route.CreateAttr("stroke", hexColor(palette.Path))
		route.CreateAttr("stroke-width", "1")
		route.CreateAttr("points", strings.Join(points, " "))
	}

	doc.Indent(2)
	return doc
}

// WriteSVG writes the SVG rendering to w
func WriteSVG(w io.Writer, graph *MazeGraph, result *SearchResult, path Path, palette Palette) error {
	_, err := BuildSVG(graph, result, path, palette).WriteTo(w)
	return err
}

// BuildGeoJSON describes the search outcome as a feature collection in
// pixel space: the route, its waypoints and the explored bounding box
func BuildGeoJSON(result *SearchResult, route *Route) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	if route != nil && len(route.Path) > 0 {
		line := geojson.NewFeature(route.Path.LineString())
		line.Properties["kind"] = "route"
		line.Properties["steps"] = route.Steps
		line.Properties["nodes"] = len(route.Path)
		fc.Append(line)

		waypoints := geojson.NewFeature(multiPointOf(route.Waypoints))
		waypoints.Properties["kind"] = "waypoints"
		fc.Append(waypoints)
	}

	if bound, ok := ExploredBounds(result); ok {
		explored := geojson.NewFeature(bound.ToPolygon())
		explored.Properties["kind"] = "explored"
		explored.Properties["expanded"] = result.Stats.Expanded
		explored.Properties["found"] = result.Found
		fc.Append(explored)
	}

	return fc
}

// WriteGeoJSON writes the feature collection to path
func WriteGeoJSON(filename string, result *SearchResult, route *Route) error {
	data, err := BuildGeoJSON(result, route).MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal geojson: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
