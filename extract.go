package main

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Strategy selects how the maze bitmap is turned into a graph
type Strategy int

const (
	// StrategySparse only materialises junctions, turns and dead-ends
	StrategySparse Strategy = iota
	// StrategyDense creates one node per open pixel
	StrategyDense
)

func (s Strategy) String() string {
	if s == StrategyDense {
		return "dense"
	}
	return "sparse"
}

// ParseStrategy maps "sparse" / "dense" to a Strategy
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sparse", "corridor":
		return StrategySparse, nil
	case "dense", "pixel":
		return StrategyDense, nil
	}
	return StrategySparse, fmt.Errorf("unknown extraction strategy %q", name)
}

func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Extract builds the maze graph for bm using the given strategy
func Extract(bm Bitmap, sampler Sampler, strategy Strategy) (*MazeGraph, error) {
	startTime := time.Now()
	log.Printf("🧱 Extracting %s graph from %dx%d bitmap...\n", strategy, bm.Width(), bm.Height())

	var (
		graph *MazeGraph
		err   error
	)
	switch strategy {
	case StrategyDense:
		graph, err = extractDense(bm, sampler)
	default:
		graph, err = extractSparse(bm, sampler)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("   ✅ Graph extracted: %d nodes, %d edges\n", len(graph.Nodes), graph.EdgeCount())
	log.Printf("   ⏱️  Extraction time: %.3f seconds\n", time.Since(startTime).Seconds())
	return graph, nil
}

func extractDense(bm Bitmap, sampler Sampler) (*MazeGraph, error) {
	graph := newMazeGraph(bm.Width(), bm.Height(), StrategyDense)

	for y := 0; y < bm.Height(); y++ {
		for x := 0; x < bm.Width(); x++ {
			pos := Position{X: x, Y: y}
			if !sampler.IsOpen(bm, pos) {
				continue
			}
			node := Node{Pos: pos}
			for _, d := range Directions {
				if sampler.IsOpen(bm, pos.Add(d, 1)) {
					node.setRun(d, 1)
				}
			}
			graph.Nodes[pos] = node
		}
	}

	if len(graph.Nodes) == 0 {
		return nil, ErrEmptyMaze
	}
	return graph, nil
}

// findSeed returns the first open pixel in row-major order
func findSeed(bm Bitmap, sampler Sampler) (Position, bool) {
	for y := 0; y < bm.Height(); y++ {
		for x := 0; x < bm.Width(); x++ {
			if sampler.Classify(bm, x, y) == Open {
				return Position{X: x, Y: y}, true
			}
		}
	}
	return Position{}, false
}

func extractSparse(bm Bitmap, sampler Sampler) (*MazeGraph, error) {
	seed, ok := findSeed(bm, sampler)
	if !ok {
		return nil, ErrEmptyMaze
	}

	w, h := bm.Width(), bm.Height()
	graph := newMazeGraph(w, h, StrategySparse)
	visited := make(map[Position]bool)
	// covered marks every pixel that is a node or lies on an edge, so that
	// regions not connected to the first seed get seeded too
	covered := make([]bool, w*h)
	regions := 0

	for {
		regions++
		walkRegion(bm, sampler, graph, seed, visited, covered)

		next, ok := nextUncovered(bm, sampler, covered, seed)
		if !ok {
			break
		}
		seed = next
	}

	if regions > 1 {
		log.Printf("   ℹ️  %d disconnected open regions\n", regions)
	}
	return graph, nil
}

// walkRegion runs the iterative depth-first junction walk from seed
func walkRegion(bm Bitmap, sampler Sampler, graph *MazeGraph, seed Position, visited map[Position]bool, covered []bool) {
	w := bm.Width()
	visited[seed] = true
	stack := []Position{seed}

	for len(stack) > 0 {
		pos := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node, ok := resolveJunction(bm, sampler, pos)
		if !ok {
			continue
		}
		graph.Nodes[pos] = node
		covered[pos.Y*w+pos.X] = true

		for _, d := range Directions {
			run := node.Run(d)
			if run == 0 {
				continue
			}
			for i := 1; i <= run; i++ {
				c := pos.Add(d, i)
				covered[c.Y*w+c.X] = true
			}
			next := pos.Add(d, run)
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
}

// nextUncovered resumes the row-major scan after from and returns the next
// open pixel that no region has claimed yet
func nextUncovered(bm Bitmap, sampler Sampler, covered []bool, from Position) (Position, bool) {
	w, h := bm.Width(), bm.Height()
	for i := from.Y*w + from.X + 1; i < w*h; i++ {
		if covered[i] {
			continue
		}
		x, y := i%w, i/w
		if sampler.Classify(bm, x, y) == Open {
			return Position{X: x, Y: y}, true
		}
	}
	return Position{}, false
}

// resolveJunction resolves the four run-lengths of the junction at pos. It
// returns false when pos itself is not open.
func resolveJunction(bm Bitmap, sampler Sampler, pos Position) (Node, bool) {
	if !sampler.IsOpen(bm, pos) {
		return Node{}, false
	}
	node := Node{Pos: pos}
	for _, d := range Directions {
		node.setRun(d, measureRun(bm, sampler, pos, d))
	}
	return node, true
}

// measureRun walks from pos along d until it hits a wall (or the image edge)
// or reaches a cell with an open side branch.
func measureRun(bm Bitmap, sampler Sampler, pos Position, d Direction) int {
	sideA, sideB := d.perpendicular()
	for offset := 1; ; offset++ {
		cell := pos.Add(d, offset)
		if !sampler.IsOpen(bm, cell) {
			return offset - 1
		}
		if sampler.IsOpen(bm, cell.Add(sideA, 1)) || sampler.IsOpen(bm, cell.Add(sideB, 1)) {
			return offset
		}
	}
}
