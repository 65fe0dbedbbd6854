package transcode

import (
	"context"
	"sync"
)

// Reserved names of the built-in handlers.
const (
	Strict            = "strict"
	Ignore            = "ignore"
	Replace           = "replace"
	XMLCharRefReplace = "xmlcharrefreplace"
	BackslashReplace  = "backslashreplace"
)

// The handler registry lives for the whole process. It is seeded with the
// built-ins at init and has no teardown: names can be overwritten, never
// removed.
var (
	handlers   = make(map[string]Handler)
	handlersMu sync.RWMutex
)

func init() {
	handlers[Strict] = StrictErrors
	handlers[Ignore] = IgnoreErrors
	handlers[Replace] = ReplaceErrors
	handlers[XMLCharRefReplace] = XMLCharRefReplaceErrors
	handlers[BackslashReplace] = BackslashReplaceErrors
}

// Register stores h under name, replacing any previous handler, including a
// built-in. Names are case-sensitive and must be non-empty; a nil handler or
// empty name is ignored. Safe for concurrent use.
func Register(name string, h Handler) {
	if name == "" || h == nil {
		return
	}
	handlersMu.Lock()
	handlers[name] = h
	handlersMu.Unlock()

	emitHandlerRegistered(context.Background(), name)
}

// Lookup returns the handler registered under name.
// Returns a *LookupError wrapping ErrHandlerNotFound if there is none.
func Lookup(name string) (Handler, error) {
	handlersMu.RLock()
	h, ok := handlers[name]
	handlersMu.RUnlock()
	if !ok {
		return nil, newLookupError(ErrHandlerNotFound, name)
	}
	return h, nil
}

// resolver looks a handler up on first use and caches it for the rest of one
// transcode operation.
type resolver struct {
	name    string
	handler Handler
}

func (r *resolver) resolve() (Handler, error) {
	if r.handler != nil {
		return r.handler, nil
	}
	h, err := Lookup(r.name)
	if err != nil {
		return nil, err
	}
	r.handler = h
	return h, nil
}
