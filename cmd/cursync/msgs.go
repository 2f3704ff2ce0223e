package cursync

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Keep .cursor/ in sync with your resource tree"
	MsgSyncShort       = "Link rules, agents, and skills into .cursor/"
	MsgStatusShort     = "Show the state of every expected link"
	MsgCleanShort      = "Remove the links cursync established"
	MsgDocsShort       = "List or read agent and skill documents"
	MsgInitShort       = "Scaffold the resource tree and a starter config"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice    = "\nDRY RUN MODE - No changes were made"
	MsgNoOperations    = "Nothing to do."
	MsgNoDocs          = "No agent or skill documents found."
	MsgWatchingNotice  = "Watching for changes, Ctrl-C to stop."
	MsgInitNothingToDo = "Repository already scaffolded, nothing to do."
	MsgInitCreatedDir  = "  created %s\n"
	MsgInitCreatedFile = "  wrote %s\n"
	MsgFallbackWarning = "Warning: no resources/ directory found, using current directory: %s\n"

	// Error messages
	MsgErrInitPaths = "failed to resolve repository root: %w"
	MsgErrLoadConf  = "failed to load configuration: %w"
	MsgErrSync      = "sync failed: %w"
	MsgErrStatus    = "failed to check link status: %w"
	MsgErrClean     = "clean failed: %w"
	MsgErrInit      = "init failed: %w"
	MsgErrReadDoc   = "failed to read document: %w"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagRoot    = "Repository root (default: walk up from the current directory)"
	MsgFlagRules   = "Comma-separated rule categories to link (default: all)"
	MsgFlagWatch   = "Keep running and re-sync when the resource tree changes"
)

// Long messages
const (
	MsgRootLong = `cursync links the files under resources/ into the .cursor/ directory
Cursor reads, using symlinks so edits flow both ways. Rule files from
every category land flat in .cursor/rules/; the agents and skills
directories are linked whole.

The resource tree stays the single source of truth: re-running sync is
always safe, and clean undoes exactly what sync created.`

	MsgSyncLong = `Sync discovers rule files under resources/rules/<category>/, links them
flat into .cursor/rules/, and links resources/agents and
resources/skills as whole directories.

Existing correct links are left alone, stale links are repointed, and
real files in the way are never overwritten. Use --rules to restrict
which categories are linked, and --watch to re-sync on every change.`

	MsgSyncExample = `  cursync sync
  cursync sync --rules code_quality,security
  cursync sync --watch
  cursync sync --dry-run`

	MsgStatusLong = `Status compares the links the current resource tree calls for against
what is actually on disk: correct, missing, pointing elsewhere, or
blocked by a real file. Nothing is modified.`

	MsgCleanLong = `Clean removes every symlink cursync established under .cursor/,
including stale rule links left over from renamed or deleted sources.
Real files and directories are never touched.`

	MsgDocsLong = `Docs lists the markdown documents under resources/agents/ and
resources/skills/. Pass a document name to render it in the terminal.`

	MsgDocsExample = `  cursync docs
  cursync docs reviewer`

	MsgInitLong = `Init creates the resources/rules, resources/agents, and
resources/skills directories and writes a commented starter
.cursync.toml at the repository root. Existing files are left alone.`

	MsgCompletionLong = `Generate a shell completion script for cursync.

Load it in your current shell session or install it to the standard
completion directory for your shell:

  # bash
  source <(cursync completion bash)

  # zsh
  cursync completion zsh > "${fpath[1]}/_cursync"

  # fish
  cursync completion fish | source`
)
