package aedificium

// BuildCoveringPath returns a plan visiting every room in targets at
// least once: a greedy tour that, from the current room, BFS-searches
// for the nearest still-unvisited target, appends the path there, marks
// every room crossed along the way as visited, and repeats until all
// targets have been seen.
func BuildCoveringPath(targets []int, a *Aedificium) []Token {
	want := make(map[int]bool, len(targets))
	for _, t := range targets {
		want[t] = true
	}

	visited := map[int]bool{a.Start: true}
	delete(want, a.Start)

	var plan []Token
	room := a.Start
	for len(want) > 0 {
		path, found := bfsNearest(a, room, want)
		if !found {
			// No reachable unvisited target remains; the graph is
			// connected (an Aedificium invariant), so this only
			// happens if targets included an out-of-range room.
			break
		}
		for _, port := range path {
			plan = append(plan, Token{Kind: TokenMove, Value: port})
			room = a.Step(Door{Room: room, Port: port}).Room
			visited[room] = true
			delete(want, room)
		}
	}
	return plan
}

// bfsNearest runs a breadth-first search from start over a's step table
// and returns the port sequence of the shortest path to the nearest room
// in targets, or found=false if none is reachable.
func bfsNearest(a *Aedificium, start int, targets map[int]bool) ([]int, bool) {
	type item struct {
		room int
		path []int
	}
	visited := map[int]bool{start: true}
	queue := []item{{room: start}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if targets[cur.room] {
			return cur.path, true
		}
		for p := 0; p < Doors; p++ {
			dst := a.Step(Door{Room: cur.room, Port: p}).Room
			if visited[dst] {
				continue
			}
			visited[dst] = true
			next := make([]int, len(cur.path)+1)
			copy(next, cur.path)
			next[len(cur.path)] = p
			queue = append(queue, item{room: dst, path: next})
		}
	}
	return nil, false
}
