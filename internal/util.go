package internal

import "slices"

// ReconstructPath follows predecessor links back from current until it
// reaches a node with no predecessor, and returns the nodes in forward order.
func ReconstructPath[NodeType comparable](
	predecessor map[NodeType]NodeType,
	current NodeType,
) []NodeType {
	path := []NodeType{current}
	for {
		previousNode, exists := predecessor[current]
		if !exists {
			break
		}
		path = append(path, previousNode)
		current = previousNode
	}
	slices.Reverse(path)
	return path
}

// SortedKeys returns the keys of m ordered by cmp.
func SortedKeys[K comparable, V any](m map[K]V, cmp func(a, b K) int) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, cmp)
	return keys
}
