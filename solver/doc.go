// Package solver implements a breadth-first search solver for the
// two-jug water puzzle.
//
// Solve explores the space of reachable (x, y) water levels from two
// empty jugs and returns the shortest sequence of actions that leaves
// the target amount in either jug, or an empty Solution when the target
// is unreachable. The solver is pure: it holds no state between calls
// and identical inputs always produce identical solutions.
package solver
