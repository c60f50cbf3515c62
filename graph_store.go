package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/tidwall/btree"
)

// mazeGraphFile is the on-disk form of a MazeGraph. Nodes are stored in
// row-major order so dumps of the same maze are byte-identical.
type mazeGraphFile struct {
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Strategy Strategy `json:"strategy"`
	Nodes    []Node   `json:"nodes"`
}

func rowMajorLess(a, b Position) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

// SortedNodes returns every node in row-major order
func (g *MazeGraph) SortedNodes() []Node {
	tree := btree.NewBTreeG[Node](func(a, b Node) bool {
		return rowMajorLess(a.Pos, b.Pos)
	})
	for _, node := range g.Nodes {
		tree.Set(node)
	}

	nodes := make([]Node, 0, len(g.Nodes))
	tree.Scan(func(node Node) bool {
		nodes = append(nodes, node)
		return true
	})
	return nodes
}

// SortedPositions returns the given set in row-major order
func SortedPositions(set map[Position]bool) []Position {
	tree := btree.NewBTreeG[Position](rowMajorLess)
	for pos, ok := range set {
		if ok {
			tree.Set(pos)
		}
	}

	positions := make([]Position, 0, tree.Len())
	tree.Scan(func(pos Position) bool {
		positions = append(positions, pos)
		return true
	})
	return positions
}

// EdgeSegments returns the graph edges as line segments for visualization.
// An edge stored in both directions is returned once.
func (g *MazeGraph) EdgeSegments() [][2]Position {
	segments := make([][2]Position, 0)
	seen := make(map[[2]Position]bool)

	for _, node := range g.SortedNodes() {
		for _, d := range Directions {
			run := node.Run(d)
			if run == 0 {
				continue
			}
			a, b := node.Pos, node.Pos.Add(d, run)
			if rowMajorLess(b, a) {
				a, b = b, a
			}
			key := [2]Position{a, b}
			if !seen[key] {
				seen[key] = true
				segments = append(segments, key)
			}
		}
	}

	return segments
}

// SaveMazeGraph serializes and saves the graph to a JSON file
func SaveMazeGraph(graph *MazeGraph, filename string) error {
	log.Printf("💾 Saving maze graph to %s...\n", filename)

	data, err := json.MarshalIndent(mazeGraphFile{
		Width:    graph.Width,
		Height:   graph.Height,
		Strategy: graph.Strategy,
		Nodes:    graph.SortedNodes(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal graph: %w", err)
	}

	err = os.WriteFile(filename, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	log.Printf("   ✅ Graph saved (%d bytes)\n", len(data))
	return nil
}

// LoadMazeGraph deserializes and loads the graph from a JSON file
func LoadMazeGraph(filename string) (*MazeGraph, error) {
	log.Printf("📂 Loading maze graph from %s...\n", filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var file mazeGraphFile
	err = json.Unmarshal(data, &file)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal graph: %w", err)
	}

	graph := newMazeGraph(file.Width, file.Height, file.Strategy)
	for _, node := range file.Nodes {
		graph.Nodes[node.Pos] = node
	}

	log.Printf("   ✅ Graph loaded: %d nodes\n", len(graph.Nodes))
	return graph, nil
}
