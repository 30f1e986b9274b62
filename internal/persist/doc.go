// Package persist maps gallery state to a kv.Store.
//
// Each slot is stored under its own key as JSON:
//
//	photos    []Photo   default: the four seed photos
//	albums    []Album   default: []
//	darkMode  bool      default: false
//
// Persist rewrites only the slots a transition reports, so toggling dark mode
// never rewrites the photo list. Empty lists are written as [] rather than
// null. Load treats a missing or empty key as "use the default" and fails on
// a value that does not decode, naming the slot in the error.
package persist
