// Package cli implements the interactive command-line surface of cvboard.
//
// The REPL forwards each command to a ui.Binder and renders what the binder
// produces as text: the full list under the "jobs" heading and search
// results under "students". Commands are handled one at a time.
//
// Commands
//
//	help            show available commands
//	add             prompt for a CV and submit it
//	presets         list the preset skills
//	skill <s|n>     add a skill (name or preset number) to the form
//	(l)ist | view   show every CV
//	search <skill>  show the CVs listing skill
//	refresh         reload the list and the skills in use
//	delete          delete every CV (asks for confirmation)
//	logout          forget the cached identity and exit
//	exit | quit     leave the program
package cli
