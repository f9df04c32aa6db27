// Package services holds the persistence and synchronization core of the
// answer knowledge base.
//
// # Components
//
//   - AnswerStore owns the answer collection and the "answers" durable entry.
//   - CategoryRegistry owns the category names and the "categories" entry.
//     It reads, but never modifies, answer categories to reconcile itself.
//   - KnowledgeBase is the single state manager: it loads both in the
//     required order, serializes every operation, and runs backup imports as
//     one atomic write over both entries.
//
// # Consistency
//
// Every mutation prepares the next collection on a copy, persists it, and
// swaps it into memory only after the write succeeded. A failed write returns
// an error wrapping common.ErrPersistence and leaves memory equal to the last
// durable state.
//
// AnswerStore and CategoryRegistry are not safe for concurrent use on their
// own; KnowledgeBase guards them with a mutex.
package services
