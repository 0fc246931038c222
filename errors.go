package assetforge

import "github.com/pkg/errors"

// Error kinds. Match them with errors.Is.
var (
	ErrInvalidColor    = errors.New("invalid color")
	ErrInvalidOptions  = errors.New("invalid options")
	ErrDecode          = errors.New("decode error")
	ErrEncode          = errors.New("encode error")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrAssetLoad       = errors.New("asset load error")
)

// Error is the failure returned by every pipeline operation. Kind is one of
// the Err* values above and Err, when set, is the underlying cause.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == e.Kind }

func newError(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

var errEmptyInput = errors.New("empty input")
