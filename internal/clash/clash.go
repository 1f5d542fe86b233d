// Package clash turns grouped "shares players" declarations into an
// undirected pairwise conflict set between team IDs.
package clash

import (
	"sort"
	"strings"

	"github.com/mwarner/courtsched/internal/config"
)

// Edge is an unordered pair of teams that must not play at the same time.
type Edge struct {
	A string
	B string
}

type pairKey struct {
	a, b string
}

func normalizePair(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// BuildEdges expands each clash row into every unordered pair within it,
// deduplicated globally. Empty entries and self-pairs are skipped.
func BuildEdges(rows []config.ClashRow) []Edge {
	seen := make(map[pairKey]bool)
	var edges []Edge

	for _, row := range rows {
		teams := make([]string, 0, len(row.Teams))
		for _, t := range row.Teams {
			if t = strings.TrimSpace(t); t != "" {
				teams = append(teams, t)
			}
		}

		for i := 0; i < len(teams); i++ {
			for j := i + 1; j < len(teams); j++ {
				a, b := teams[i], teams[j]
				if a == b {
					continue
				}
				key := normalizePair(a, b)
				if !seen[key] {
					seen[key] = true
					edges = append(edges, Edge{A: a, B: b})
				}
			}
		}
	}

	return edges
}

// Set answers O(1) clash-pair membership queries during placement.
type Set struct {
	pairs map[pairKey]bool
}

// NewSet builds a Set from edges.
func NewSet(edges []Edge) *Set {
	pairs := make(map[pairKey]bool, len(edges))
	for _, e := range edges {
		pairs[normalizePair(e.A, e.B)] = true
	}
	return &Set{pairs: pairs}
}

// IsPair reports whether a and b are a registered clash edge.
func (s *Set) IsPair(a, b string) bool {
	return s.pairs[normalizePair(a, b)]
}

// Len returns the number of distinct edges.
func (s *Set) Len() int {
	return len(s.pairs)
}

// Groups returns the connected components of the clash graph: teams
// transitively linked by shared-player chains. Each group is sorted;
// groups come out largest first. Used for diagnostics only, never by
// the placement algorithm.
func Groups(edges []Edge) [][]string {
	adj := make(map[string][]string)
	for _, e := range edges {
		if e.A == "" || e.B == "" || e.A == e.B {
			continue
		}
		adj[e.A] = append(adj[e.A], e.B)
		adj[e.B] = append(adj[e.B], e.A)
	}

	nodes := make([]string, 0, len(adj))
	for n := range adj {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)

	seen := make(map[string]bool)
	var groups [][]string

	for _, start := range nodes {
		if seen[start] {
			continue
		}
		stack := []string{start}
		seen[start] = true
		var comp []string

		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, cur)
			for _, next := range adj[cur] {
				if !seen[next] {
					seen[next] = true
					stack = append(stack, next)
				}
			}
		}

		sort.Strings(comp)
		groups = append(groups, comp)
	}

	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i]) != len(groups[j]) {
			return len(groups[i]) > len(groups[j])
		}
		return groups[i][0] < groups[j][0]
	})

	return groups
}
