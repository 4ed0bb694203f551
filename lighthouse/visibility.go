package lighthouse

import (
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// VisibilityGraph is the undirected graph of base stations where an edge means the two base stations
// were observed together in at least one sample. Estimation can only link base stations that are in
// the same connected component as a base station of the reference sample.
type VisibilityGraph struct {
	g *simple.UndirectedGraph
}

// NewVisibilityGraph builds the graph from the base station ids seen in each sample.
func NewVisibilityGraph(samples [][]BaseStationID) *VisibilityGraph {
	g := simple.NewUndirectedGraph()
	for _, ids := range samples {
		for i, a := range ids {
			if g.Node(int64(a)) == nil {
				g.AddNode(simple.Node(a))
			}
			for _, b := range ids[i+1:] {
				if a == b {
					continue
				}
				g.SetEdge(g.NewEdge(simple.Node(a), simple.Node(b)))
			}
		}
	}
	return &VisibilityGraph{g: g}
}

// NewVisibilityGraphFromSamples builds the graph from the raw observations of the samples.
func NewVisibilityGraphFromSamples(samples []*PoseSample) *VisibilityGraph {
	ids := make([][]BaseStationID, 0, len(samples))
	for _, s := range samples {
		ids = append(ids, s.BaseStations())
	}
	return NewVisibilityGraph(ids)
}

// BaseStations returns every base station in the graph in ascending order.
func (vg *VisibilityGraph) BaseStations() []BaseStationID {
	var ids []BaseStationID
	nodes := vg.g.Nodes()
	for nodes.Next() {
		ids = append(ids, BaseStationID(nodes.Node().ID()))
	}
	slices.Sort(ids)
	return ids
}

// CoObserved reports whether the two base stations were seen in the same sample.
func (vg *VisibilityGraph) CoObserved(a, b BaseStationID) bool {
	return vg.g.HasEdgeBetween(int64(a), int64(b))
}

// Components returns the connected components of the graph. Ids are sorted within a component and
// components are sorted by their lowest id.
func (vg *VisibilityGraph) Components() [][]BaseStationID {
	var components [][]BaseStationID
	for _, cc := range topo.ConnectedComponents(vg.g) {
		ids := make([]BaseStationID, 0, len(cc))
		for _, n := range cc {
			ids = append(ids, BaseStationID(n.ID()))
		}
		slices.Sort(ids)
		components = append(components, ids)
	}
	slices.SortFunc(components, func(a, b []BaseStationID) int {
		return int(a[0]) - int(b[0])
	})
	return components
}

// Unreachable returns the base stations that share no component with any of the given base stations.
// These can not be linked to a frame anchored on a sample that observed the given base stations.
func (vg *VisibilityGraph) Unreachable(from []BaseStationID) []BaseStationID {
	var ids []BaseStationID
	for _, component := range vg.Components() {
		linked := false
		for _, id := range from {
			if slices.Contains(component, id) {
				linked = true
				break
			}
		}
		if !linked {
			ids = append(ids, component...)
		}
	}
	slices.Sort(ids)
	return ids
}
