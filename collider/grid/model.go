package grid

// Model is one program snapshot: a beat counter, a random number
// generator, the register file, and the map itself. Models are value
// types by design — the mixer copies them wholesale to implement the
// copy-on-write snapshot step (see collider/audio).
type Model struct {
	Frame     uint64
	RNG       PCG32
	Registers [Radix]Value
	Map       [Height][Width]Value
}

// NewModel returns a zeroed Model with its rng seeded deterministically.
func NewModel() *Model {
	m := &Model{}
	m.RNG.Seed(0)
	return m
}

// At reads the cell at p, returning NONE for any out-of-bounds point.
func (m *Model) At(p Point) Value {
	if !p.InBounds() {
		return None
	}
	return m.Map[p.Y][p.X]
}

// Set writes the cell at p, silently dropping out-of-bounds writes.
func (m *Model) Set(p Point, v Value) {
	if p.InBounds() {
		m.Map[p.Y][p.X] = v
	}
}

// Clear resets every cell of the map to NONE, without touching the
// register file, frame counter, or rng state.
func (m *Model) Clear() {
	for y := range m.Map {
		for x := range m.Map[y] {
			m.Map[y][x] = None
		}
	}
}

// GraphEdgeTag distinguishes a read from a write in a recorded GraphEdge.
type GraphEdgeTag int

const (
	EdgeInput GraphEdgeTag = iota
	EdgeOutput
)

// GraphEdge records one read or write an operator performed during a beat,
// purely for display/introspection — it never feeds back into semantics.
type GraphEdge struct {
	Tag       GraphEdgeTag
	Origin    Point
	Target    Point
	Cause     Tag
	Attribute string
}

// maxGraphEdges bounds the per-beat edge list at W*H*4, the maximum
// possible number of reads+writes a single sweep can record (every cell
// dispatching an operator that touches up to 4 distinct cells).
const maxGraphEdges = Width * Height * 4

// Graph is the per-beat data-flow record produced by Step.
type Graph struct {
	Edges []GraphEdge
}

// reset clears the graph for a fresh beat, reusing the backing array when
// possible to avoid an allocation on the audio thread's hot path.
func (g *Graph) reset() {
	if g.Edges == nil {
		g.Edges = make([]GraphEdge, 0, maxGraphEdges)
	}
	g.Edges = g.Edges[:0]
}

func (g *Graph) record(edge GraphEdge) {
	if len(g.Edges) < maxGraphEdges {
		g.Edges = append(g.Edges, edge)
	}
}
