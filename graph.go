package main

import "fmt"

// Position is a pixel coordinate in the source bitmap (column, row)
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is a unit step along one axis
type Direction struct {
	DX, DY int
}

var (
	Left  = Direction{-1, 0}
	Right = Direction{1, 0}
	Up    = Direction{0, -1}
	Down  = Direction{0, 1}
)

// Directions lists the four axis directions in the order neighbours are visited
var Directions = [4]Direction{Left, Right, Up, Down}

// Add returns the position n cells away in direction d
func (p Position) Add(d Direction, n int) Position {
	return Position{X: p.X + d.DX*n, Y: p.Y + d.DY*n}
}

// perpendicular returns the two directions orthogonal to d
func (d Direction) perpendicular() (Direction, Direction) {
	if d.DX != 0 {
		return Up, Down
	}
	return Left, Right
}

// Node is a traversable position in the maze graph.
//
// Each field holds the run-length to the next node in that direction; zero
// means there is no edge. Dense graphs only ever store 0 or 1.
type Node struct {
	Pos   Position `json:"pos"`
	Left  int      `json:"left"`
	Right int      `json:"right"`
	Up    int      `json:"up"`
	Down  int      `json:"down"`
}

// Run returns the run-length stored for direction d
func (n Node) Run(d Direction) int {
	switch d {
	case Left:
		return n.Left
	case Right:
		return n.Right
	case Up:
		return n.Up
	case Down:
		return n.Down
	}
	return 0
}

func (n *Node) setRun(d Direction, run int) {
	switch d {
	case Left:
		n.Left = run
	case Right:
		n.Right = run
	case Up:
		n.Up = run
	case Down:
		n.Down = run
	}
}

func (n Node) CanGoLeft() bool  { return n.Left > 0 }
func (n Node) CanGoRight() bool { return n.Right > 0 }
func (n Node) CanGoUp() bool    { return n.Up > 0 }
func (n Node) CanGoDown() bool  { return n.Down > 0 }

// MazeGraph maps positions to nodes. It is built once by Extract and is
// read-only afterwards.
type MazeGraph struct {
	Nodes    map[Position]Node
	Width    int
	Height   int
	Strategy Strategy
}

func newMazeGraph(width, height int, strategy Strategy) *MazeGraph {
	return &MazeGraph{
		Nodes:    make(map[Position]Node),
		Width:    width,
		Height:   height,
		Strategy: strategy,
	}
}

// Edge represents a connection between two nodes with a cost
type Edge struct {
	To   Position
	Cost int // Run-length in cells
}

// Has reports whether p is a node of the graph
func (g *MazeGraph) Has(p Position) bool {
	_, ok := g.Nodes[p]
	return ok
}

// Neighbors returns the outgoing edges of the node at p in Left, Right, Up,
// Down order. Unknown positions have no edges.
func (g *MazeGraph) Neighbors(p Position) []Edge {
	node, ok := g.Nodes[p]
	if !ok {
		return nil
	}

	edges := make([]Edge, 0, 4)
	for _, d := range Directions {
		if run := node.Run(d); run > 0 {
			edges = append(edges, Edge{To: p.Add(d, run), Cost: run})
		}
	}
	return edges
}

// EdgeCount returns the number of directed edges in the graph
func (g *MazeGraph) EdgeCount() int {
	count := 0
	for _, node := range g.Nodes {
		for _, d := range Directions {
			if node.Run(d) > 0 {
				count++
			}
		}
	}
	return count
}
