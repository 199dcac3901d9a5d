package ledger

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIdentityNotFound means the requested identity has no enrolled
// credentials in the wallet. No connection attempt is made.
var ErrIdentityNotFound = errors.New("identity not found in wallet")

// Attempt records one failed connect strategy.
type Attempt struct {
	Strategy string
	Err      error
}

// ConnectError is returned when every connect strategy failed. It
// carries each attempt's cause plus remediation hints; the composite
// message is part of the contract, callers surface it verbatim.
type ConnectError struct {
	Identity string
	Attempts []Attempt
}

func (e *ConnectError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "failed to connect to the ledger network as %q:", e.Identity)
	for _, a := range e.Attempts {
		fmt.Fprintf(&b, " [%s] %v;", a.Strategy, a.Err)
	}
	b.WriteString(" check that (1) the network is up, (2) the chaincode is deployed on the channel, (3) the identity is enrolled in the wallet")
	return b.String()
}

func (e *ConnectError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a.Err)
	}
	return errs
}
