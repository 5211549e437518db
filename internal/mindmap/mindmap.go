// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mindmap derives a node/edge graph from papers and their digests
// for client-side visualization. See docs/ARCHITECTURE.md § Mind Map.
package mindmap

import (
	"fmt"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Layout constants. Papers fan out along the x axis; each paper's bullets
// hang below it along the y axis, with alternate bullets nudged sideways so
// long labels do not stack. Positions are rendering hints only.
const (
	paperSpacingX  = 260.0
	bulletSpacingY = 90.0
	bulletJitterX  = 40.0
)

// Build emits one node per paper and one node plus one directed edge per
// digest bullet. papers and digests must be positionally aligned; a length
// mismatch is an alignment violation and returns an error.
//
// Node IDs, edge IDs, and positions are pure functions of the input
// indices, so repeated builds over identical input produce byte-identical
// graphs. A paper with an empty digest yields exactly one node and no
// edges.
func Build(papers []types.Paper, digests []types.Digest) (types.Graph, error) {
	if len(papers) != len(digests) {
		return types.Graph{}, fmt.Errorf("mindmap: %d papers but %d digests", len(papers), len(digests))
	}

	var g types.Graph
	for i, p := range papers {
		paperID := fmt.Sprintf("p%d", i)
		g.Nodes = append(g.Nodes, types.GraphNode{
			ID:    paperID,
			Label: p.Title,
			Position: types.Position{
				X: float64(i) * paperSpacingX,
				Y: 0,
			},
		})

		for j, bullet := range digests[i].Bullets {
			bulletID := fmt.Sprintf("p%d-b%d", i, j)
			g.Nodes = append(g.Nodes, types.GraphNode{
				ID:    bulletID,
				Label: bullet,
				Position: types.Position{
					X: float64(i)*paperSpacingX + float64(j%2)*bulletJitterX,
					Y: float64(j+1) * bulletSpacingY,
				},
			})
			g.Edges = append(g.Edges, types.GraphEdge{
				ID:     fmt.Sprintf("e%d-%d", i, j),
				Source: paperID,
				Target: bulletID,
			})
		}
	}
	return g, nil
}
