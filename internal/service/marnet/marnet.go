// Package marnet provides the maritime network graph and shortest sea path search.
package marnet

import (
	"container/heap"
	_ "embed"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/danilovkiri/dk_go_searoute/internal/service/geo"
)

//go:embed network.geojson
var defaultNetwork []byte

// edge is one directed half of a sea lane segment, weighted in kilometers.
type edge struct {
	to       int
	weightKm float64
}

// Graph holds the sea lane network as an adjacency list over unique coordinates.
type Graph struct {
	nodes []orb.Point
	adj   [][]edge
	index map[orb.Point]int
	edges int
}

// InitGraph builds a network graph from a GeoJSON FeatureCollection of LineString
// (or MultiLineString) features, connecting every consecutive coordinate pair.
func InitGraph(data []byte) (*Graph, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, &NetworkParseError{Err: err}
	}
	g := &Graph{index: make(map[orb.Point]int)}
	for _, feature := range fc.Features {
		switch geometry := feature.Geometry.(type) {
		case orb.LineString:
			g.addLane(geometry)
		case orb.MultiLineString:
			for _, line := range geometry {
				g.addLane(line)
			}
		}
	}
	if len(g.nodes) < 2 {
		return nil, &EmptyNetworkError{}
	}
	return g, nil
}

// InitGraphFromFile builds a network graph from a GeoJSON file on disk.
func InitGraphFromFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return InitGraph(data)
}

// InitDefaultGraph builds the embedded coarse network of major sea lanes.
func InitDefaultGraph() (*Graph, error) {
	return InitGraph(defaultNetwork)
}

// NumNodes returns the number of unique network coordinates.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the number of undirected sea lane segments.
func (g *Graph) NumEdges() int {
	return g.edges
}

// Nearest returns the network node closest to an arbitrary point.
func (g *Graph) Nearest(p orb.Point) orb.Point {
	return g.nodes[g.nearestIdx(p)]
}

// ShortestPath snaps both endpoints to their nearest network nodes and returns the
// minimal-distance node chain between them.
func (g *Graph) ShortestPath(origin, destination orb.Point) (orb.LineString, error) {
	from := g.nearestIdx(origin)
	to := g.nearestIdx(destination)
	if from == to {
		return orb.LineString{g.nodes[from]}, nil
	}
	prev, ok := g.dijkstra(from, to)
	if !ok {
		return nil, &NoSeaRouteError{Origin: origin, Destination: destination}
	}
	var reversed []orb.Point
	for at := to; at != from; at = prev[at] {
		reversed = append(reversed, g.nodes[at])
	}
	reversed = append(reversed, g.nodes[from])
	path := make(orb.LineString, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	return path, nil
}

func (g *Graph) addLane(line orb.LineString) {
	for i := 0; i < len(line)-1; i++ {
		a := g.addNode(line[i])
		b := g.addNode(line[i+1])
		if a == b {
			continue
		}
		w := geo.DistanceKm(line[i], line[i+1])
		g.adj[a] = append(g.adj[a], edge{to: b, weightKm: w})
		g.adj[b] = append(g.adj[b], edge{to: a, weightKm: w})
		g.edges++
	}
}

func (g *Graph) addNode(p orb.Point) int {
	if idx, ok := g.index[p]; ok {
		return idx
	}
	idx := len(g.nodes)
	g.nodes = append(g.nodes, p)
	g.adj = append(g.adj, nil)
	g.index[p] = idx
	return idx
}

func (g *Graph) nearestIdx(p orb.Point) int {
	best := 0
	bestDist := geo.DistanceKm(p, g.nodes[0])
	for i := 1; i < len(g.nodes); i++ {
		if d := geo.DistanceKm(p, g.nodes[i]); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// dijkstra returns the predecessor table for the minimal path from -> to and whether
// the destination was reached.
func (g *Graph) dijkstra(from, to int) (map[int]int, bool) {
	dist := make([]float64, len(g.nodes))
	visited := make([]bool, len(g.nodes))
	for i := range dist {
		dist[i] = -1
	}
	prev := make(map[int]int)
	dist[from] = 0
	pq := &priorityQueue{{node: from, dist: 0}}
	heap.Init(pq)
	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		if visited[item.node] {
			continue
		}
		visited[item.node] = true
		if item.node == to {
			return prev, true
		}
		for _, e := range g.adj[item.node] {
			if visited[e.to] {
				continue
			}
			alt := dist[item.node] + e.weightKm
			if dist[e.to] < 0 || alt < dist[e.to] {
				dist[e.to] = alt
				prev[e.to] = item.node
				heap.Push(pq, &pqItem{node: e.to, dist: alt})
			}
		}
	}
	return nil, false
}

type pqItem struct {
	node int
	dist float64
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool { return pq[i].dist < pq[j].dist }

func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*pqItem))
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
