// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Position is a 2D layout hint for a graph node. It exists only so a client
// can place nodes without overlap; it carries no graph semantics.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// GraphNode is one node in the mind-map graph. Node IDs are deterministic
// composite keys: "p<i>" for the paper at index i, "p<i>-b<j>" for bullet j
// of that paper's digest.
type GraphNode struct {
	ID       string   `json:"id" yaml:"id"`
	Label    string   `json:"label" yaml:"label"`
	Position Position `json:"position" yaml:"position"`
}

// GraphEdge is a directed edge from a paper node to one of its bullet nodes.
// No other edge kinds exist.
type GraphEdge struct {
	ID     string `json:"id" yaml:"id"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// Graph is the node/edge structure the client renders as a mind map.
type Graph struct {
	Nodes []GraphNode `json:"nodes" yaml:"nodes"`
	Edges []GraphEdge `json:"edges" yaml:"edges"`
}
