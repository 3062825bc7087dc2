// Package grid models the electrical network the solver operates on.
//
// A Network is an ordered sequence of nodes and an ordered sequence of
// lines. Order is load-bearing: nodes[0] is the slack (reference) bus used
// by the PTDF reduction, node order fixes LP variable columns, and line
// order fixes LP constraint rows and the result mapping. Neither sequence
// changes after construction; topology editing is out of scope.
//
// Each node carries exactly one generator (capacity, marginal cost) and one
// consumption value. Mutators clamp to physical floors (negative capacity
// becomes 0, lengths floor at MinLineLengthKM) and a line's reactance is
// re-derived from its length (ReactancePerKM) on every length update.
//
// A Network is a plain value with no internal locking: the caller owns it
// exclusively for the duration of an update+solve cycle.
package grid
