package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort     = "Runtime tooling for relocatable Python environments"
	MsgRootLong      = "relenv inspects and maintains relocatable Python environments:\nit resolves the environment root, reports its layout and metadata,\nand rewrites native library load paths so the tree can move freely."
	MsgCheckShort    = "Report the environment root, layout and trust store"
	MsgCheckLong     = "Check resolves the environment root from the running binary (or an explicit --root), loads the environment metadata and reports the derived directory layout and trust-store configuration."
	MsgRelocateShort = "Rewrite native library load paths under a directory"
	MsgRelocateLong  = "Relocate walks a directory tree and rewrites the load paths of every native binary it finds so they resolve relative to the environment's library directory."
	MsgVersionShort  = "Print version information"

	// Status messages
	MsgDryRunNotice   = "\nDRY RUN MODE - No changes were made"
	MsgRelocateResult = "Rewrote %d binaries under %s\n"
	MsgNoBinaries     = "No native binaries found."

	// Error messages
	MsgErrResolveRoot = "failed to resolve environment root: %w"
	MsgErrLoadMeta    = "failed to load environment metadata: %w"
	MsgErrRelocate    = "failed to relocate %s: %w"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagRoot    = "Environment root (default: resolved from the running binary)"
	MsgFlagLibDir  = "Library directory rewrites resolve against (default: <root>/lib)"
)
