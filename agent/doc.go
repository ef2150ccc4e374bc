// Package agent decides where each falling piece should go.
//
// For a board snapshot and a piece it simulates every rotation and column,
// measures six board features on each result (landing height, eroded piece
// cells, row transitions, column transitions, holes and wells), scores them
// with a weight vector and keeps the best. Selection is deterministic: ties
// keep the candidate with the lower rotation, then the lower column.
//
// A Driver holds the host-facing configuration around the search. It never
// runs on its own; the host asks it for one decision per spawned piece.
package agent
