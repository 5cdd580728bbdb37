package solver

// Action labels for the six possible moves, plus the terminal action
// recorded when the target amount is reached.
const (
	ActionFillX    = "Fill bucket x"
	ActionFillY    = "Fill bucket y"
	ActionEmptyX   = "Empty bucket x"
	ActionEmptyY   = "Empty bucket y"
	ActionPourXtoY = "Transfer from bucket x to bucket y"
	ActionPourYtoX = "Transfer from bucket y to bucket x"
	ActionDone     = "Target reached"
)

// StatusSolved marks the terminal step of a solution. All earlier steps
// leave Status empty.
const StatusSolved = "Solved"

// Step is one entry in a solution: the water levels at that point in the
// sequence and the action taken there.
type Step struct {
	Step    int    `json:"step"`
	BucketX int    `json:"bucketX"`
	BucketY int    `json:"bucketY"`
	Action  string `json:"action"`
	Status  string `json:"status,omitempty"`
}

// Solution is an ordered sequence of steps from the empty state to a
// state where either jug holds the target amount. An empty Solution
// means the target is unreachable.
type Solution []Step

// Solved reports whether the solution reaches the target.
func (s Solution) Solved() bool { return len(s) > 0 }

// state is a pair of current water levels, bounded by the jug capacities.
type state struct{ x, y int }

// pathEntry records the levels a move was made from and the move's label.
type pathEntry struct {
	x, y   int
	action string
}

// queueItem pairs a state with the moves that reached it.
type queueItem struct {
	st   state
	path []pathEntry
}

// Solve returns the shortest action sequence, by move count, that leaves
// target units of water in either jug given the two jug capacities. It
// returns an empty Solution when the target is unreachable.
//
// Callers are expected to pass positive integers; the API boundary
// validates inputs before they reach the solver. Targets that are not a
// multiple of gcd(capacityX, capacityY) are discovered unreachable by
// exhausting the visited state space, which is bounded by
// capacityX x capacityY.
func Solve(capacityX, capacityY, target int) Solution {
	// No jug can ever hold more than its own capacity.
	if target > max(capacityX, capacityY) {
		return nil
	}

	queue := []queueItem{{st: state{0, 0}}}
	visited := map[state]bool{{0, 0}: true}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		x, y := item.st.x, item.st.y

		// FIFO processing: the first time a target state is dequeued,
		// its path is minimal in number of moves.
		if x == target || y == target {
			return assemble(item.path, x, y)
		}

		// Candidate moves in fixed order. The order decides which of
		// several equally short solutions is returned.
		candidates := [6]struct {
			st     state
			action string
		}{
			{state{capacityX, y}, ActionFillX},
			{state{x, capacityY}, ActionFillY},
			{state{0, y}, ActionEmptyX},
			{state{x, 0}, ActionEmptyY},
			{state{max(0, x-(capacityY-y)), min(capacityY, y+x)}, ActionPourXtoY},
			{state{min(capacityX, x+y), max(0, y-(capacityX-x))}, ActionPourYtoX},
		}

		for _, c := range candidates {
			if visited[c.st] {
				continue
			}
			visited[c.st] = true
			path := make([]pathEntry, len(item.path)+1)
			copy(path, item.path)
			path[len(item.path)] = pathEntry{x: x, y: y, action: c.action}
			queue = append(queue, queueItem{st: c.st, path: path})
		}
	}

	return nil
}

// assemble renders the accumulated path as a numbered Solution. The entry
// recorded at the start state (0,0) is dropped and a terminal step with
// the reached levels is appended, so the step count equals the number of
// moves made.
func assemble(path []pathEntry, x, y int) Solution {
	if len(path) > 0 {
		path = path[1:]
	}

	sol := make(Solution, 0, len(path)+1)
	for i, p := range path {
		sol = append(sol, Step{Step: i + 1, BucketX: p.x, BucketY: p.y, Action: p.action})
	}
	sol = append(sol, Step{
		Step:    len(path) + 1,
		BucketX: x,
		BucketY: y,
		Action:  ActionDone,
		Status:  StatusSolved,
	})
	return sol
}
