// Package cards implements the in-memory Flesh and Blood card index.
//
// The index loads three dataset documents (cards.json, sets.json and
// keywords.json) from a Source, either a local directory or an object storage
// bucket, and keeps them as an immutable snapshot with three lookup maps:
//
//   - unique id -> card
//   - lowercased name -> card
//   - printing identifier (e.g. "WTR001") -> card, for every printing of every card
//
// Reloads build a fresh snapshot and swap it in atomically; a failed reload leaves
// the previous snapshot serving. Until the first load succeeds every query returns
// ErrNotLoaded, which callers must treat differently from a miss.
//
// # Search
//
// Search is a case-insensitive substring match over card names in dataset order,
// paginated with 1-based pages. Match lists are memoized per snapshot in an LRU
// cache. Suggest offers fuzzy name suggestions for queries without matches.
package cards
