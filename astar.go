package main

import (
	"container/heap"
	"fmt"
	"strings"
	"time"
)

// PriorityRule combines the accumulated cost g and the heuristic h into the
// open list priority
type PriorityRule int

const (
	// PriorityMin uses min(g, h). It pulls the search toward the goal while
	// still reacting to accumulated cost, but it is not admissible and the
	// route it returns is not guaranteed to be shortest.
	PriorityMin PriorityRule = iota
	// PriorityAStar uses g + h (textbook A*)
	PriorityAStar
	// PriorityGreedy uses h only (greedy best-first)
	PriorityGreedy
)

func (r PriorityRule) Priority(g, h int) int {
	switch r {
	case PriorityAStar:
		return g + h
	case PriorityGreedy:
		return h
	default:
		return min(g, h)
	}
}

func (r PriorityRule) String() string {
	switch r {
	case PriorityAStar:
		return "astar"
	case PriorityGreedy:
		return "greedy"
	default:
		return "min"
	}
}

// ParsePriorityRule maps "min", "astar" or "greedy" to a PriorityRule
func ParsePriorityRule(name string) (PriorityRule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "min", "hybrid":
		return PriorityMin, nil
	case "astar", "a*", "sum":
		return PriorityAStar, nil
	case "greedy", "heuristic":
		return PriorityGreedy, nil
	}
	return PriorityMin, fmt.Errorf("unknown priority rule %q", name)
}

func (r PriorityRule) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *PriorityRule) UnmarshalText(text []byte) error {
	parsed, err := ParsePriorityRule(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// openItem is an entry of the open list. The same position may be queued
// more than once; stale entries are skipped when popped.
type openItem struct {
	Pos      Position
	Priority int
	Seq      int // Insertion order, breaks priority ties FIFO
	Index    int // Index in the heap
}

// PriorityQueue implements heap.Interface for the open list
type PriorityQueue []*openItem

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].Priority != pq[j].Priority {
		return pq[i].Priority < pq[j].Priority
	}
	return pq[i].Seq < pq[j].Seq
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *PriorityQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*openItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	*pq = old[0 : n-1]
	return item
}

// SearchOptions tunes a single search run
type SearchOptions struct {
	Rule         PriorityRule
	GuardedRelax bool
	Timeout      time.Duration
}

// SearchOption is a function that modifies SearchOptions
type SearchOption func(*SearchOptions)

// WithPriorityRule selects how g and h are combined
func WithPriorityRule(rule PriorityRule) SearchOption {
	return func(o *SearchOptions) { o.Rule = rule }
}

// WithGuardedRelax only overwrites a recorded cost and parent when the new
// cost is strictly lower. The default overwrites on every re-discovery.
func WithGuardedRelax(guarded bool) SearchOption {
	return func(o *SearchOptions) { o.GuardedRelax = guarded }
}

// WithTimeout aborts the search with ErrSearchTimedOut once d has elapsed.
// Zero disables the deadline.
func WithTimeout(d time.Duration) SearchOption {
	return func(o *SearchOptions) { o.Timeout = d }
}

// SearchStats summarises the work done by one search
type SearchStats struct {
	Expanded     int           `json:"expanded"`
	Pushed       int           `json:"pushed"`
	StaleSkipped int           `json:"staleSkipped"`
	Elapsed      time.Duration `json:"elapsed"`
}

// SearchResult is the closed set and parent map left behind by Search
type SearchResult struct {
	Start       Position
	End         Position
	Found       bool
	Closed      map[Position]bool
	ClosedOrder []Position // Expansion order
	Parents     map[Position]Position
	Costs       map[Position]int
	Stats       SearchStats
}

// Path reconstructs the route found by the search
func (r *SearchResult) Path() (Path, bool) {
	if !r.Found {
		return nil, false
	}
	return Reconstruct(r.Parents, r.Start, r.End)
}

// Search runs a best-first traversal of graph from start to end.
//
// An exhausted open list is not an error: the result comes back with
// Found == false so the explored region can still be rendered.
func Search(graph *MazeGraph, start, end Position, options ...SearchOption) (*SearchResult, error) {
	var opts SearchOptions
	for _, o := range options {
		o(&opts)
	}

	if !graph.Has(start) {
		return nil, fmt.Errorf("start %v: %w", start, ErrNodeNotInGraph)
	}
	if !graph.Has(end) {
		return nil, fmt.Errorf("end %v: %w", end, ErrNodeNotInGraph)
	}

	startTime := time.Now()
	var deadline time.Time
	if opts.Timeout > 0 {
		deadline = startTime.Add(opts.Timeout)
	}

	result := &SearchResult{
		Start:   start,
		End:     end,
		Closed:  make(map[Position]bool),
		Parents: make(map[Position]Position),
		Costs:   map[Position]int{start: 0},
	}

	openSet := &PriorityQueue{}
	heap.Init(openSet)
	seq := 0
	push := func(p Position, priority int) {
		heap.Push(openSet, &openItem{Pos: p, Priority: priority, Seq: seq})
		seq++
		result.Stats.Pushed++
	}
	push(start, 0)

	for openSet.Len() > 0 {
		if !deadline.IsZero() && time.Now().After(deadline) {
			result.Stats.Elapsed = time.Since(startTime)
			return result, ErrSearchTimedOut
		}

		current := heap.Pop(openSet).(*openItem).Pos
		if result.Closed[current] {
			result.Stats.StaleSkipped++
			continue
		}
		result.Closed[current] = true
		result.ClosedOrder = append(result.ClosedOrder, current)
		result.Stats.Expanded++

		if current == end {
			result.Found = true
			break
		}

		currentCost := result.Costs[current]
		for _, edge := range graph.Neighbors(current) {
			if result.Closed[edge.To] {
				continue
			}

			tentativeG := currentCost + edge.Cost
			if opts.GuardedRelax {
				if g, seen := result.Costs[edge.To]; seen && tentativeG >= g {
					continue
				}
			}

			h := Manhattan(edge.To, end)
			result.Costs[edge.To] = tentativeG
			result.Parents[edge.To] = current
			push(edge.To, opts.Rule.Priority(tentativeG, h))
		}
	}

	result.Stats.Elapsed = time.Since(startTime)
	return result, nil
}
