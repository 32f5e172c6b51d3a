// Package engine is the sequence editor core.
//
// It owns the sequence, the selection domain, the annotation set, and the
// undo history, and keeps them mutually consistent: every edit computes
// its splices, re-derives the selection and every annotation span through
// the adjustment rules, applies it all atomically, and returns a
// ChangeSet describing exactly what changed. Callers drive rendering and
// backend synchronization from the ChangeSet; the engine itself observes
// nothing and notifies nobody.
package engine
