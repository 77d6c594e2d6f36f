// Package cli provides the interactive Beehive admin command-line client.
//
// It wires configuration, the persisted session, the REST client and one
// list view per resource (articles, careers, projects, products). Without
// a subcommand the root command restores the previous session, prompts for
// credentials when there is none and starts a REPL:
//
//	beehive (admin@beehive.id)> list careers
//	beehive (admin@beehive.id)> edit careers 7
//	beehive (admin@beehive.id)> delete articles 3
//
// Lists are drawn with lipgloss tables and single records are rendered as
// markdown with glamour. Outcomes of every operation are printed as one line
// by the console notifier; a 401 from the server ends the session.
package cli
