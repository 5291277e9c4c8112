// Package todo implements the collection controller: the single owner of
// the in-memory task list.
//
// Every mutation goes through internal/record for validation and
// construction, updates the list, and then writes the whole list to a
// kv.Store under a fixed key. Reads derive a view by filtering and then
// sorting the list; views are never cached.
//
// # Persistence rules
//
//   - Load: a missing key starts empty. A stored value that is not a JSON
//     array of tasks is logged and discarded; the caller never sees the
//     failure.
//   - Every mutation persists, but an empty list is never written. A list
//     drained by Delete or ClearCompleted therefore leaves its last
//     non-empty snapshot in the store.
//   - ClearAll removes the key outright.
//
// A Controller is not safe for concurrent use. Callers that share one
// across goroutines must serialize access themselves.
package todo
