// Package mail defines the draft record that flows through a pipeline and
// the partial-update merge that advances it.
//
// A Draft is a plain value. Pipeline steps never modify one in place; each
// step returns an Update naming only the fields it changes, and Apply folds
// that update into a fresh Draft value. Metadata is an open side map used
// for caller context (sender name) and step diagnostics (validation report,
// word statistics).
package mail
