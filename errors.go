package cancel

import "errors"

// Canceled is the error returned by Token.Check once the token is canceled.
// It carries no payload and does not say whether the token was canceled
// explicitly or by deadline expiry.
//
//lint:ignore ST1012 named for symmetry with context.Canceled
var Canceled = errors.New("operation canceled")
