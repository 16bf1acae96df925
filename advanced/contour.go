package advanced

import (
	"context"
	"log/slog"
	"sort"

	"github.com/osuushi/silhouette/dbg"
)

// Facilities for tracing the outline of a pixel mask into closed loops on the
// integer lattice of pixel corners.
//
// The mask is padded with one transparent pixel on every side, so a shape
// touching the image border still gets a boundary all the way around it.
// Every pair of neighbouring cells whose opacity differs contributes one unit
// edge, directed so that, looking at the image, the opaque cell is always on
// the left of the edge:
//
//	opaque cell (x, y), y-down image coordinates
//
//	     (x,y) <------ (x+1,y)
//	       |              ^
//	       |    opaque    |
//	       v              |
//	    (x,y+1) ------> (x+1,y+1)
//
// Outer boundaries therefore come out counterclockwise on screen (positive
// area once y is flipped to point up) and holes come out clockwise, without
// any hole detection.

// GridVertex is a pixel corner in padded lattice coordinates.
type GridVertex struct {
	X, Y int
}

type gridEdge struct {
	From, To GridVertex
	used     bool
}

func (e gridEdge) direction() (dx, dy int) {
	return e.To.X - e.From.X, e.To.Y - e.From.Y
}

// EdgeGraph is the arena of directed boundary edges for one trace. It is built
// fresh for each mask and never shared, so the used flags are local to a
// single invocation.
type EdgeGraph struct {
	edges []gridEdge
	// Outgoing edge indexes per vertex, in generation order
	out map[GridVertex][]int
	in  map[GridVertex]int
}

// BuildEdgeGraph generates the boundary edges of the padded mask. Vertical
// boundaries are generated first (row by row), then horizontal ones, which
// fixes the order loops are discovered in.
func BuildEdgeGraph(mask PixelMask) *EdgeGraph {
	g := &EdgeGraph{
		out: make(map[GridVertex][]int),
		in:  make(map[GridVertex]int),
	}
	// Padded size. Padded cell (x, y) is mask cell (x-1, y-1).
	pw, ph := mask.Width+2, mask.Height+2
	opaque := func(x, y int) bool {
		return mask.At(x-1, y-1)
	}

	// Vertical boundaries between (x, y) and (x+1, y)
	for y := 0; y < ph; y++ {
		for x := 0; x < pw-1; x++ {
			left, right := opaque(x, y), opaque(x+1, y)
			if left == right {
				continue
			}
			bx := x + 1
			if right {
				// Left side of the right cell runs down
				g.add(GridVertex{bx, y}, GridVertex{bx, y + 1})
			} else {
				// Right side of the left cell runs up
				g.add(GridVertex{bx, y + 1}, GridVertex{bx, y})
			}
		}
	}

	// Horizontal boundaries between (x, y) and (x, y+1)
	for y := 0; y < ph-1; y++ {
		for x := 0; x < pw; x++ {
			upper, lower := opaque(x, y), opaque(x, y+1)
			if upper == lower {
				continue
			}
			by := y + 1
			if upper {
				// Bottom side of the upper cell runs right
				g.add(GridVertex{x, by}, GridVertex{x + 1, by})
			} else {
				// Top side of the lower cell runs left
				g.add(GridVertex{x + 1, by}, GridVertex{x, by})
			}
		}
	}
	return g
}

func (g *EdgeGraph) add(from, to GridVertex) {
	g.out[from] = append(g.out[from], len(g.edges))
	g.in[to]++
	g.edges = append(g.edges, gridEdge{From: from, To: to})
}

func (g *EdgeGraph) Len() int {
	return len(g.edges)
}

func (g *EdgeGraph) OutDegree(v GridVertex) int {
	return len(g.out[v])
}

func (g *EdgeGraph) InDegree(v GridVertex) int {
	return g.in[v]
}

// Vertices lists every vertex touched by an edge, sorted by row then column.
func (g *EdgeGraph) Vertices() []GridVertex {
	seen := make(map[GridVertex]struct{}, len(g.out))
	for v := range g.out {
		seen[v] = struct{}{}
	}
	for v := range g.in {
		seen[v] = struct{}{}
	}
	vertices := make([]GridVertex, 0, len(seen))
	for v := range seen {
		vertices = append(vertices, v)
	}
	sort.Slice(vertices, func(i, j int) bool {
		if vertices[i].Y != vertices[j].Y {
			return vertices[i].Y < vertices[j].Y
		}
		return vertices[i].X < vertices[j].X
	})
	return vertices
}

// AllUsed reports whether every edge has been consumed by a loop.
func (g *EdgeGraph) AllUsed() bool {
	for _, e := range g.edges {
		if !e.used {
			return false
		}
	}
	return true
}

// Every vertex must have as many edges leaving as arriving. Boundary edges
// always satisfy this (one or two of each), and the walk below relies on it.
func (g *EdgeGraph) checkBalanced() {
	for _, v := range g.Vertices() {
		out, in := len(g.out[v]), g.in[v]
		if out != in || out < 1 || out > 2 {
			fatalf("unbalanced grid vertex (%d, %d): %d in, %d out", v.X-1, v.Y-1, in, out)
		}
	}
}

// Pick the edge to follow after arriving at v along arriving. Most vertices
// have a single outgoing edge. A vertex with two is a pinch point where two
// opaque (or two transparent) cells touch only at a corner. There we take the
// edge that turns back around the opaque cell we came along, so opaque cells
// joined only at a corner end up in separate loops, while transparent cells
// joined at a corner share one hole.
func (g *EdgeGraph) continuation(v GridVertex, arriving int) (int, bool) {
	candidates := g.out[v]
	if len(candidates) == 0 {
		return 0, false
	}
	inDX, inDY := g.edges[arriving].direction()
	best := -1
	bestTurn := 0
	for _, idx := range candidates {
		outDX, outDY := g.edges[idx].direction()
		// Negative: turn toward the cell on the arriving edge's opaque side
		turn := inDX*outDY - inDY*outDX
		if best < 0 || turn < bestTurn {
			best = idx
			bestTurn = turn
		}
	}
	return best, true
}

// TraceContours chains the boundary edges of mask into closed loops. Each loop
// is returned as a closed polygon (last point repeats the first) holding only
// its corner vertices, in mask pixel-corner coordinates. Outer boundaries are
// counterclockwise in y-up terms (negative shoelace area in image space), holes
// clockwise.
//
// Broken invariants in the edge graph panic with a GeometryError; use the
// silhouette package for an error-returning API.
func TraceContours(mask PixelMask) []Polygon {
	return BuildEdgeGraph(mask).Loops()
}

// Loops consumes every edge of the graph into closed loops. See TraceContours.
func (g *EdgeGraph) Loops() []Polygon {
	g.checkBalanced()
	logger := Logger()

	var loops []Polygon
	for start := range g.edges {
		if g.edges[start].used {
			continue
		}
		raw, closed := g.walk(start)
		if !closed {
			logger.Warn("discarding unclosed boundary chain",
				slog.Int("edges", len(raw)))
			continue
		}
		loop := collapseCollinear(raw)
		if loop.UniqueCount() < 3 {
			logger.Warn("discarding degenerate loop", slog.Int("vertices", loop.UniqueCount()))
			continue
		}
		loops = append(loops, loop)
		if logger.Enabled(context.Background(), slog.LevelDebug) {
			logger.Debug("traced loop",
				slog.String("loop", dbg.Name(raw[0])),
				slog.Int("edges", len(raw)),
				slog.Int("corners", len(loop.Points)-1),
				slog.Float64("area", -SignedArea(loop)))
		}
	}
	return loops
}

// Follow continuations from start until the next edge would be start again.
// Returns the start vertex of every edge in the chain.
func (g *EdgeGraph) walk(start int) ([]GridVertex, bool) {
	g.edges[start].used = true
	vertices := []GridVertex{g.edges[start].From}
	current := start
	for {
		next, ok := g.continuation(g.edges[current].To, current)
		if !ok {
			return vertices, false
		}
		if next == start {
			return vertices, true
		}
		if g.edges[next].used {
			e := g.edges[next]
			fatalf("boundary edge (%d, %d) -> (%d, %d) reached twice",
				e.From.X-1, e.From.Y-1, e.To.X-1, e.To.Y-1)
		}
		g.edges[next].used = true
		vertices = append(vertices, g.edges[next].From)
		current = next
	}
}

// Keep only the vertices where the direction changes, starting from the first
// such vertex, then close the loop and undo the padding offset.
func collapseCollinear(raw []GridVertex) Polygon {
	n := len(raw)
	var corners []Point
	for i := 0; i < n; i++ {
		prev := raw[CircularIndex(i-1, n)]
		v := raw[i]
		next := raw[CircularIndex(i+1, n)]
		inDX, inDY := v.X-prev.X, v.Y-prev.Y
		outDX, outDY := next.X-v.X, next.Y-v.Y
		if inDX == outDX && inDY == outDY {
			continue
		}
		corners = append(corners, Point{X: float64(v.X - 1), Y: float64(v.Y - 1)})
	}
	if len(corners) == 0 {
		return Polygon{}
	}
	corners = append(corners, corners[0])
	return Polygon{Points: corners}
}
