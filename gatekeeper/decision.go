package gatekeeper

import (
	"net/http"

	"github.com/jrsteele09/portal-gate/token"
)

// State is where a request ended up in the admission state machine.
type State int

const (
	Unchecked State = iota
	Allowlisted
	Unauthenticated
	Forbidden
	Authenticated
)

func (s State) String() string {
	switch s {
	case Allowlisted:
		return "allowlisted"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case Authenticated:
		return "authenticated"
	default:
		return "unchecked"
	}
}

// Outcome is what the hosting adapter must do with the request.
type Outcome int

const (
	Allow Outcome = iota
	Redirect
	Deny
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	default:
		return "deny"
	}
}

// Decision is the result of evaluating one request.
type Decision struct {
	Outcome Outcome
	State   State
	// Location is set for Redirect.
	Location string
	// Status is the HTTP status to answer with for Redirect and Deny.
	Status int
	// Claims is set when State is Authenticated.
	Claims *token.Claims
	// Err explains a Redirect or Deny.
	Err error
}

func Allowed(state State, claims *token.Claims) Decision {
	return Decision{Outcome: Allow, State: state, Claims: claims}
}

func RedirectTo(location string, err error) Decision {
	return Decision{
		Outcome:  Redirect,
		State:    Unauthenticated,
		Location: location,
		Status:   http.StatusFound,
		Err:      err,
	}
}

func Denied(status int, err error) Decision {
	return Decision{
		Outcome: Deny,
		State:   Forbidden,
		Status:  status,
		Err:     err,
	}
}
