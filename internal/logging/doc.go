// Package logging configures zerolog for folio and carries loggers through
// context.Context.
//
// The TUI owns the terminal, so interactive runs log JSON lines to a file
// only (default ~/.local/state/folio/folio.log). The log view in the UI tails
// that file through internal/logtail. CLI subcommands additionally write
// console-formatted lines to stderr.
//
//	closer, err := logging.Init(logging.Config{Level: "debug", File: path})
//	defer closer.Close()
//	ctx = logging.WithContext(ctx, logging.Component(ctx, "ui"))
//	logging.FromContext(ctx).Info().Str("view", "all").Msg("view changed")
//
// FromContext never returns nil; without a context logger it falls back to
// the global logger.
package logging
