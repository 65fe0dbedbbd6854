package transcode

import (
	"context"
	"unicode/utf8"
)

// call invokes h and validates its result before the loop uses it.
// Errors returned by h are passed through unchanged.
func call(name string, h Handler, exc *UnicodeError) (Replacement, error) {
	ctx := context.Background()
	emitHandlerInvoked(ctx, name, exc)

	rep, err := h(exc)
	if err != nil {
		emitHandlerEscalated(ctx, name, exc, err)
		return Replacement{}, err
	}
	if !utf8.ValidString(rep.Text) {
		return Replacement{}, newHandlerError(ErrInvalidHandlerResult, name, "replacement is not valid text")
	}
	if rep.Next <= exc.start || rep.Next > exc.Len() {
		return Replacement{}, newHandlerError(ErrPositionOutOfBounds, name,
			"position %d not in (%d, %d]", rep.Next, exc.start, exc.Len())
	}
	return rep, nil
}

// Untyped adapts a handler whose result shape is only known at run time,
// such as one backed by a scripting bridge. fn must return one of:
//
//   - a Replacement
//   - an error, which aborts the operation
//   - a []any pair of text (string or []rune) and position (int)
//
// Anything else fails with ErrInvalidHandlerResult.
func Untyped(fn func(exc *UnicodeError) any) Handler {
	return func(exc *UnicodeError) (Replacement, error) {
		switch v := fn(exc).(type) {
		case Replacement:
			return v, nil
		case error:
			return Replacement{}, v
		case []any:
			return pairToReplacement(v)
		default:
			return Replacement{}, newHandlerError(ErrInvalidHandlerResult, "",
				"expected a (text, position) pair, got %T", v)
		}
	}
}

func pairToReplacement(pair []any) (Replacement, error) {
	if len(pair) != 2 {
		return Replacement{}, newHandlerError(ErrInvalidHandlerResult, "",
			"expected a (text, position) pair, got %d elements", len(pair))
	}

	var rep Replacement
	switch t := pair[0].(type) {
	case string:
		rep.Text = t
	case []rune:
		rep.Text = string(t)
	default:
		return Replacement{}, newHandlerError(ErrInvalidHandlerResult, "",
			"replacement must be text, got %T", pair[0])
	}

	switch p := pair[1].(type) {
	case int:
		rep.Next = p
	case int64:
		rep.Next = int(p)
	case int32:
		rep.Next = int(p)
	default:
		return Replacement{}, newHandlerError(ErrInvalidHandlerResult, "",
			"position must be an integer, got %T", pair[1])
	}
	return rep, nil
}
