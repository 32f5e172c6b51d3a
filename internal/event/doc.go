// Package event provides the editor's publish/subscribe bus.
//
// Topics use dot-notation to create hierarchical namespaces:
//
//	sequence.edited
//	selection.changed
//	annotation.created
//
// Subscriptions may use wildcards: "*" matches exactly one segment and
// "**" matches zero or more trailing segments, so "annotation.*" matches
// every annotation lifecycle event and "**" matches everything.
//
// Delivery is synchronous and ordered by subscription priority. The edit
// path publishes after its state is committed, so handlers always observe
// consistent engine state.
package event
