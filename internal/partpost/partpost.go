// Package partpost repairs and validates a raw partition vector returned by
// a k-way graph partitioner: filling empty parts, and checking that every
// part is a single connected component of the dual graph.
package partpost

import "sort"

// RepairEmptyParts guarantees every part in [0, nparts) owns at least one
// cell, by moving cells out of the largest parts into empty ones. part is
// modified in place; its length is unchanged and it remains a total
// function from cell to part (every cell still belongs to exactly one
// part). Requires len(part) >= nparts.
func RepairEmptyParts(part []int32, nparts int32) {
	if nparts <= 0 {
		return
	}

	lists := make([][]int32, nparts)
	for cell, p := range part {
		lists[p] = append(lists[p], int32(cell))
	}

	order := make([]int32, nparts)
	for i := range order {
		order[i] = int32(i)
	}
	sort.Slice(order, func(i, j int) bool {
		return len(lists[order[i]]) < len(lists[order[j]])
	})

	empty := 0
	largest := len(order) - 1
	for empty < len(order) && len(lists[order[empty]]) == 0 {
		emptyPart := order[empty]
		largePart := order[largest]

		n := len(lists[largePart])
		cell := lists[largePart][n-1]
		lists[largePart] = lists[largePart][:n-1]
		lists[emptyPart] = append(lists[emptyPart], cell)
		part[cell] = emptyPart

		empty++
		if len(lists[largePart]) <= 1 {
			largest--
		}
	}
}

// CheckContiguity flood-fills the dual graph (CSR xadj/adjncy) restricted to
// each part of part[0..n), and returns the maximum number of connected
// components ("colors") found within any single part. A return value of 1
// means every part is contiguous.
func CheckContiguity(xadj, adjncy []int32, part []int32) int {
	n := len(part)
	colorOf := make([]int32, n)
	for i := range colorOf {
		colorOf[i] = -1
	}

	maxColors := 0
	partColors := make(map[int32]int32)

	for start := 0; start < n; start++ {
		if colorOf[start] != -1 {
			continue
		}
		p := part[start]
		c := partColors[p]
		partColors[p] = c + 1

		stack := []int32{int32(start)}
		colorOf[start] = c
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, u := range adjncy[xadj[v]:xadj[v+1]] {
				if part[u] != p {
					continue
				}
				if colorOf[u] != -1 {
					continue
				}
				colorOf[u] = c
				stack = append(stack, u)
			}
		}
	}

	for _, c := range partColors {
		if int(c) > maxColors {
			maxColors = int(c)
		}
	}
	return maxColors
}
