package modpick

// Command descriptions
const (
	MsgRootShort = "Pick which mods a game client loads"
	MsgRootLong  = `modpick walks you through a questionnaire described by a rules file and
turns your answers into the list of mods to exclude, per mod directory.

Answers are saved between runs; rules that list a mod directory pick up
new mods automatically.`

	MsgRulesShort = "Print the rule tree with the current choices"
	MsgRulesLong  = `Print every rule of the rules file with its kind and current value.
Generated rules are only scanned and listed mod by mod with --expand.`

	MsgChooseShort = "Answer the questionnaire and save the choices"
	MsgChooseLong  = `Open the questionnaire seeded with the saved choices, or the defaults when
nothing was saved yet, and save the answers when done.

With --yes, or when no terminal is attached, the current answers are kept
as they are and saved.`

	MsgResolveShort = "Print the mods excluded by the current choices"
	MsgResolveLong  = `Resolve the saved choices, or the defaults, into the mods to exclude in
each mod directory. Use --write to save them to the exclusions file, or
--watch to keep that file up to date while choices are edited and mods are
added.`
	MsgResolveExample = `  modpick resolve                  # styled or plain text
  modpick resolve --format json    # machine readable
  modpick resolve --write          # also write the exclusions file
  modpick resolve --watch          # rewrite the exclusions file on changes`

	MsgGenConfigShort   = "Print the configuration"
	MsgGenConfigLong    = "Print the effective configuration as TOML, or a commented template with --template."
	MsgGenConfigExample = `  modpick genconfig                # effective configuration
  modpick genconfig --template     # commented defaults
  modpick genconfig --template -w  # write the template to the user config file`

	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
)

// Flag descriptions
const (
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Config file (default is $XDG_CONFIG_HOME/modpick/config.toml)"
	MsgFlagGameDir  = "Game directory (default is $MODPICK_GAME_DIR or the current directory)"
	MsgFlagNoColor  = "Disable styled output"
	MsgFlagExpand   = "Scan mod directories and list generated rules mod by mod"
	MsgFlagYes      = "Keep the current answers without prompting"
	MsgFlagFormat   = "Output format: text, plain, term or json (default from config)"
	MsgFlagWrite    = "Write the exclusions file"
	MsgFlagWatch    = "Keep the exclusions file up to date until interrupted"
	MsgFlagTemplate = "Print a commented template instead of the effective configuration"
	MsgFlagWriteCfg = "Write the template to the user config file"
)

// Status messages
const (
	MsgChoicesSaved      = "Saved choices to [path]{{path}}[/path]"
	MsgExclusionsWritten = "Wrote exclusions to [path]{{path}}[/path]"
	MsgWatching          = "Watching [value]{{count}}[/value] paths for changes, press Ctrl-C to stop"
	MsgConfigWritten     = "Wrote configuration template to [path]{{path}}[/path]"
	MsgConfigExists      = "configuration file %s already exists"
	MsgNothingExcluded   = "No mods excluded."
	MsgNoTerminal        = "No terminal attached, keeping current answers"
	MsgFallbackGameDir   = "Using the current directory as game directory: %s\n"
	MsgVersionFormat     = "modpick %s\n  commit: %s\n  built:  %s\n"
	MsgCancelled         = "questionnaire cancelled, choices not saved"
)
