// Package cli provides the interactive RecipeKeeper shell.
//
// The shell wires configuration, the storage backend, the blob store and the
// services into a line-oriented REPL. Commands:
//   - register / login / logout
//   - add: submit a recipe with ingredient rows and an optional photo
//   - list [query]: browse or search the cookbook, newest first
//   - top [n]: ingredient popularity chart
//
// Per-user state lives in a Session created by the REPL and handed to every
// command; nothing is kept in package globals. The REPL is started via
// App.Run(ctx), which blocks until the user exits or input ends.
package cli
