package maze

// ShortestDistance returns the minimal number of orthogonal steps from start
// to goal using breadth-first search, and false when goal is unreachable or
// either endpoint is not passable. It shares no code with the A* search and
// serves as an independent check of its results.
func ShortestDistance(grid *Grid, start, goal Cell) (int, bool) {
	if grid == nil || !grid.Passable(start) || !grid.Passable(goal) {
		return 0, false
	}
	dist := map[Cell]int{start: 0}
	queue := []Cell{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == goal {
			return dist[current], true
		}
		for _, next := range grid.Neighbors(current) {
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[current] + 1
			queue = append(queue, next)
		}
	}
	return 0, false
}
