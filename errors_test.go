package transcode

import (
	"errors"
	"testing"
)

func TestLookupError_Is(t *testing.T) {
	err := newLookupError(ErrHandlerNotFound, "test.missing")

	if !errors.Is(err, ErrHandlerNotFound) {
		t.Error("LookupError should unwrap to ErrHandlerNotFound")
	}

	if errors.Is(err, ErrUnknownEncoding) {
		t.Error("LookupError should not match ErrUnknownEncoding")
	}
}

func TestLookupError_Message(t *testing.T) {
	err := newLookupError(ErrUnknownEncoding, "ebcdic-xyz")

	want := `unknown encoding name "ebcdic-xyz"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestHandlerError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "full context",
			err:  newHandlerError(ErrPositionOutOfBounds, "test.bad", "position %d not in (%d, %d]", 7, 0, 3),
			want: `position out of bounds (handler "test.bad"): position 7 not in (0, 3]`,
		},
		{
			name: "no handler name",
			err:  newHandlerError(ErrInvalidHandlerResult, "", "replacement must be text, got int"),
			want: "invalid handler result: replacement must be text, got int",
		},
		{
			name: "sentinel only",
			err:  &HandlerError{Err: ErrHandlerTypeMismatch},
			want: "handler cannot handle error kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandlerError_Unwrap(t *testing.T) {
	err := &HandlerError{Err: ErrInvalidHandlerResult, Handler: "test.bad"}

	if err.Unwrap() != ErrInvalidHandlerResult {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), ErrInvalidHandlerResult)
	}
}

func TestErrorsAs_HandlerError(t *testing.T) {
	err := newHandlerError(ErrPositionOutOfBounds, "test.bad", "")

	var handlerErr *HandlerError
	if !errors.As(err, &handlerErr) {
		t.Fatal("errors.As should extract *HandlerError")
	}
	if handlerErr.Handler != "test.bad" {
		t.Errorf("Handler = %q, want %q", handlerErr.Handler, "test.bad")
	}
}

func TestMismatch(t *testing.T) {
	if err := mismatch(nil); !errors.Is(err, ErrHandlerTypeMismatch) {
		t.Errorf("mismatch(nil) = %v, want ErrHandlerTypeMismatch", err)
	}

	exc := newDecodeError("ascii", []byte{0xff}, 0, 1, "ouch")
	err := mismatch(exc)
	if !errors.Is(err, ErrHandlerTypeMismatch) {
		t.Errorf("mismatch() = %v, want ErrHandlerTypeMismatch", err)
	}
	want := "handler cannot handle error kind: don't know how to handle decode error"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
