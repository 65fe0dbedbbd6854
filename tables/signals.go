package tables

import (
	"context"

	"github.com/zoobzio/capitan"
)

// Signals for table events.
var (
	SignalTableRegistered = capitan.NewSignal("transcode.table.registered", "Charmap table installed as a codec")
	SignalTableFailed     = capitan.NewSignal("transcode.table.failed", "Charmap table file could not be loaded")
)

// Keys for typed event data.
var (
	KeyTable   = capitan.NewStringKey("table")
	KeyPath    = capitan.NewStringKey("path")
	KeyAliases = capitan.NewIntKey("aliases")
	KeyError   = capitan.NewErrorKey("error")
)

func emitTableRegistered(ctx context.Context, name string, aliases int) {
	capitan.Emit(ctx, SignalTableRegistered,
		KeyTable.Field(name),
		KeyAliases.Field(aliases),
	)
}

func emitTableFailed(ctx context.Context, path string, err error) {
	capitan.Error(ctx, SignalTableFailed,
		KeyPath.Field(path),
		KeyError.Field(err),
	)
}
