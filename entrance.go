package main

// FindEntrances picks default start and end positions: the first and last
// open pixel on the image border in row-major order. Mazes without two
// border openings fall back to the first and last open pixel overall.
func FindEntrances(bm Bitmap, sampler Sampler) (Position, Position, error) {
	var border []Position
	w, h := bm.Width(), bm.Height()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x != 0 && y != 0 && x != w-1 && y != h-1 {
				continue
			}
			if sampler.Classify(bm, x, y) == Open {
				border = append(border, Position{X: x, Y: y})
			}
		}
	}
	if len(border) >= 2 {
		return border[0], border[len(border)-1], nil
	}

	first, ok := findSeed(bm, sampler)
	if !ok {
		return Position{}, Position{}, ErrNoEntrance
	}
	last := first
	for y := h - 1; y >= 0; y-- {
		found := false
		for x := w - 1; x >= 0; x-- {
			if sampler.Classify(bm, x, y) == Open {
				last = Position{X: x, Y: y}
				found = true
				break
			}
		}
		if found {
			break
		}
	}
	return first, last, nil
}

// resolveEndpoint makes sure p is a node of graph, snapping it through the
// spatial index when allowed
func resolveEndpoint(graph *MazeGraph, index *SpatialIndex, bm Bitmap, sampler Sampler, p Position, snap bool) (Position, error) {
	if graph.Has(p) {
		return p, nil
	}
	if !snap || index == nil {
		return p, ErrNodeNotInGraph
	}
	snapped, ok := index.Snap(p, graph, bm, sampler)
	if !ok {
		return p, ErrNodeNotInGraph
	}
	return snapped, nil
}
