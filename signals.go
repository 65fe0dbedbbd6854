package transcode

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for transcode events.
var (
	SignalHandlerRegistered = capitan.NewSignal("transcode.handler.registered", "Error handler registered")
	SignalHandlerInvoked    = capitan.NewSignal("transcode.handler.invoked", "Error handler called for a failing span")
	SignalHandlerEscalated  = capitan.NewSignal("transcode.handler.escalated", "Error handler aborted the operation")
	SignalEncodeComplete    = capitan.NewSignal("transcode.encode.complete", "Encode operation finished")
	SignalDecodeComplete    = capitan.NewSignal("transcode.decode.complete", "Decode operation finished")
)

// Keys for typed event data.
var (
	KeyHandler  = capitan.NewStringKey("handler")
	KeyEncoding = capitan.NewStringKey("encoding")
	KeyKind     = capitan.NewStringKey("kind")
	KeyStart    = capitan.NewIntKey("start")
	KeyEnd      = capitan.NewIntKey("end")
	KeySize     = capitan.NewIntKey("size")
	KeyDuration = capitan.NewDurationKey("duration")
	KeyError    = capitan.NewErrorKey("error")
)

// emitHandlerRegistered emits an event when a handler is registered.
func emitHandlerRegistered(ctx context.Context, name string) {
	capitan.Emit(ctx, SignalHandlerRegistered,
		KeyHandler.Field(name),
	)
}

// emitHandlerInvoked emits an event before a handler is called.
func emitHandlerInvoked(ctx context.Context, name string, exc *UnicodeError) {
	capitan.Emit(ctx, SignalHandlerInvoked,
		KeyHandler.Field(name),
		KeyEncoding.Field(exc.Encoding()),
		KeyKind.Field(exc.Kind().String()),
		KeyStart.Field(exc.Start()),
		KeyEnd.Field(exc.End()),
	)
}

// emitHandlerEscalated emits an event when a handler returns an error.
func emitHandlerEscalated(ctx context.Context, name string, exc *UnicodeError, err error) {
	capitan.Error(ctx, SignalHandlerEscalated,
		KeyHandler.Field(name),
		KeyEncoding.Field(exc.Encoding()),
		KeyKind.Field(exc.Kind().String()),
		KeyStart.Field(exc.Start()),
		KeyEnd.Field(exc.End()),
		KeyError.Field(err),
	)
}

// emitEncodeComplete emits an event when an encode finishes.
func emitEncodeComplete(ctx context.Context, encoding, handler string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyEncoding.Field(encoding),
		KeyHandler.Field(handler),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalEncodeComplete, fields...)
	}
}

// emitDecodeComplete emits an event when a decode finishes.
func emitDecodeComplete(ctx context.Context, encoding, handler string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyEncoding.Field(encoding),
		KeyHandler.Field(handler),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDecodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDecodeComplete, fields...)
	}
}
