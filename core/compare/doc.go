// Package compare provides the stateless comparison primitives shared by the
// reconciliation and validation engines.
//
// Compare implements tolerance-aware equality between two scalar values with explicit
// null and non-numeric handling. Similarity implements the Ratcliff/Obershelp
// "gestalt" ratio used by fuzzy text matching.
//
// Neither function holds state, so results depend only on the arguments.
package compare
