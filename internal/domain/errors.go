package domain

import "errors"

// Kind classifies failures so the transport layer can map them to a
// response without inspecting messages.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindPaymentRequired
	KindBadRequest
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindPaymentRequired:
		return "payment_required"
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// holds for every not-found failure regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotFound        = &Error{Kind: KindNotFound, Msg: "not found"}
	ErrPaymentRequired = &Error{Kind: KindPaymentRequired, Msg: "payment required"}
	ErrBadRequest      = &Error{Kind: KindBadRequest, Msg: "bad request"}
	ErrUnauthorized    = &Error{Kind: KindUnauthorized, Msg: "unauthorized"}
	ErrForbidden       = &Error{Kind: KindForbidden, Msg: "forbidden"}
)

func NotFound(msg string) error        { return &Error{Kind: KindNotFound, Msg: msg} }
func PaymentRequired(msg string) error { return &Error{Kind: KindPaymentRequired, Msg: msg} }

// KindOf walks the wrap chain for a *Error. Anything else is internal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
