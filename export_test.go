package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/paulmach/orb/geojson"
)

func solvedGapRoom(t *testing.T) (*MazeGraph, *SearchResult, Route) {
	t.Helper()
	graph := mustExtract(t, parseMaze(gapRoom...), StrategySparse)
	result, err := Search(graph, pos(0, 2), pos(4, 2))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	path, ok := result.Path()
	if !ok {
		t.Fatal("no path")
	}
	return graph, result, NewRoute(path)
}

func TestBuildSVG(t *testing.T) {
	graph, result, route := solvedGapRoom(t)

	var buf bytes.Buffer
	if err := WriteSVG(&buf, graph, result, route.Path, DefaultPalette()); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(buf.Bytes()); err != nil {
		t.Fatalf("output is not valid XML: %v", err)
	}
	svg := doc.SelectElement("svg")
	if svg == nil {
		t.Fatal("missing svg root")
	}
	if svg.SelectAttrValue("width", "") != "5" || svg.SelectAttrValue("height", "") != "5" {
		t.Errorf("size attributes wrong: %s", buf.String())
	}

	edges := svg.FindElement("g[@id='graph']")
	if edges == nil || len(edges.SelectElements("line")) != len(graph.EdgeSegments()) {
		t.Errorf("expected one line per edge segment")
	}
	explored := svg.FindElement("g[@id='explored']")
	if explored == nil || len(explored.SelectElements("rect")) != len(result.Closed) {
		t.Errorf("expected one rect per closed node")
	}
	if explored.SelectAttrValue("fill", "") != "#ff0000" {
		t.Errorf("explored fill = %q", explored.SelectAttrValue("fill", ""))
	}

	polyline := svg.FindElement("polyline[@id='route']")
	if polyline == nil {
		t.Fatal("missing route polyline")
	}
	points := strings.Fields(polyline.SelectAttrValue("points", ""))
	if len(points) != len(route.Path) {
		t.Errorf("polyline has %d points, path has %d", len(points), len(route.Path))
	}
	if points[0] != "0.5,2.5" {
		t.Errorf("first point = %q, want pixel centre of the start", points[0])
	}
}

func TestBuildSVGWithoutRoute(t *testing.T) {
	graph := mustExtract(t, parseMaze(splitRoom...), StrategySparse)
	doc := BuildSVG(graph, nil, nil, DefaultPalette())
	svg := doc.SelectElement("svg")
	if svg.FindElement("polyline") != nil || svg.FindElement("g[@id='explored']") != nil {
		t.Error("no route or explored layer expected")
	}
}

func TestBuildGeoJSON(t *testing.T) {
	_, result, route := solvedGapRoom(t)

	fc := BuildGeoJSON(result, &route)
	kinds := make(map[string]*geojson.Feature)
	for _, f := range fc.Features {
		kinds[f.Properties.MustString("kind")] = f
	}
	for _, kind := range []string{"route", "waypoints", "explored"} {
		if kinds[kind] == nil {
			t.Errorf("missing %s feature", kind)
		}
	}
	if kinds["route"].Geometry.GeoJSONType() != "LineString" {
		t.Errorf("route geometry = %s", kinds["route"].Geometry.GeoJSONType())
	}
	if kinds["explored"].Geometry.GeoJSONType() != "Polygon" {
		t.Errorf("explored geometry = %s", kinds["explored"].Geometry.GeoJSONType())
	}
}

func TestBuildGeoJSONNoRoute(t *testing.T) {
	graph := mustExtract(t, parseMaze(splitRoom...), StrategySparse)
	result, err := Search(graph, pos(0, 1), pos(4, 1))
	if err != nil {
		t.Fatal(err)
	}

	fc := BuildGeoJSON(result, nil)
	if len(fc.Features) != 1 {
		t.Fatalf("got %d features, want only the explored bound", len(fc.Features))
	}
	if found, _ := fc.Features[0].Properties["found"].(bool); found {
		t.Error("found should be false")
	}
}

func TestWriteGeoJSON(t *testing.T) {
	_, result, route := solvedGapRoom(t)
	filename := filepath.Join(t.TempDir(), "route.geojson")

	if err := WriteGeoJSON(filename, result, &route); err != nil {
		t.Fatalf("WriteGeoJSON: %v", err)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded["type"] != "FeatureCollection" {
		t.Errorf("type = %v", decoded["type"])
	}
}
