package maze

import "container/heap"

type frontierItem struct {
	Cell         Cell
	CostSoFar    int
	Estimate     int
	IndexInQueue int
}

func (item *frontierItem) priority() int { return item.CostSoFar + item.Estimate }

// frontierQueue orders by cost+estimate, then estimate, then row, then column.
type frontierQueue []*frontierItem

func (queue frontierQueue) Len() int { return len(queue) }

func (queue frontierQueue) Less(i, j int) bool {
	a, b := queue[i], queue[j]
	if pa, pb := a.priority(), b.priority(); pa != pb {
		return pa < pb
	}
	if a.Estimate != b.Estimate {
		return a.Estimate < b.Estimate
	}
	if a.Cell.Row != b.Cell.Row {
		return a.Cell.Row < b.Cell.Row
	}
	return a.Cell.Col < b.Cell.Col
}

func (queue frontierQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *frontierQueue) Push(x any) {
	item := x.(*frontierItem)
	item.IndexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *frontierQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.IndexInQueue = -1
	*queue = oldQueue[:n-1]
	return item
}

// frontier is the open set: a heap for selection plus an index for
// membership, so a cell is queued at most once.
type frontier struct {
	queue  frontierQueue
	byCell map[Cell]*frontierItem
}

func newFrontier() *frontier {
	return &frontier{byCell: make(map[Cell]*frontierItem)}
}

func (f *frontier) Len() int { return f.queue.Len() }

func (f *frontier) push(cell Cell, costSoFar, estimate int) {
	item := &frontierItem{Cell: cell, CostSoFar: costSoFar, Estimate: estimate}
	heap.Push(&f.queue, item)
	f.byCell[cell] = item
}

func (f *frontier) pop() *frontierItem {
	item := heap.Pop(&f.queue).(*frontierItem)
	delete(f.byCell, item.Cell)
	return item
}

func (f *frontier) lookup(cell Cell) (*frontierItem, bool) {
	item, ok := f.byCell[cell]
	return item, ok
}

func (f *frontier) decrease(item *frontierItem, costSoFar int) {
	item.CostSoFar = costSoFar
	heap.Fix(&f.queue, item.IndexInQueue)
}
