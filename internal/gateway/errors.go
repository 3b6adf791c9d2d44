package gateway

import "errors"

// errFailInjected is returned by the Memory gateway when a failure switch is
// armed.
var errFailInjected = errors.New("injected write failure")
