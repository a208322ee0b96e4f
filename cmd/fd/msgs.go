package main

// User-facing message strings, kept together so the command files stay
// focused on wiring.

const (
	MsgRootShort = "A simple, fast alternative to find"

	MsgRootLong = `fd recursively searches a directory tree for entries whose name (or
full path) matches a regular expression. Hidden files and entries
excluded by .gitignore / .ignore files are skipped by default, and
matches are colorized according to LS_COLORS when printed to a
terminal.`

	MsgRootExample = `  fd                      list everything under the current directory
  fd '\.go$'              find Go sources
  fd -H config            include hidden files in the search
  fd -p 'src/.*_test'     match against the full path
  fd readme /usr/share    search below a specific directory`

	MsgDocsShort = "Show documentation for the LS_COLORS format"

	MsgGenConfigShort = "Print a default configuration file"

	MsgGenConfigLong = `Print the default configuration as TOML. With --write, the file is
created at the user config location instead (existing files are not
overwritten).`
)
