// Package referrer propagates removal and replacement of referenced objects
// to the objects referring to them.
//
// Two symmetric forms exist:
//
//   - Registry[T]: a shared table keyed by the referenced object; the
//     referenced side's removal path calls NotifyRemoval.
//   - Dependents[T]: a list owned by the referenced object itself.
//
// Both iterate a snapshot taken at entry: a listener may unregister itself
// or another listener during a callback, listeners removed before their turn
// are skipped, and every remaining listener is called exactly once.
//
// A Scope collects the registrations of one referrer and releases all of them
// on Close; tying Close to the referrer's own removal path leaves no
// registration behind once the referrer is gone.
//
// Referrers are compared by identity and must be comparable (pointers).
package referrer
