package striga

import "fmt"

// Environment selects the Striga deployment the service talks to. It is
// resolved once at startup and never changes for the process lifetime.
type Environment int

const (
	Sandbox Environment = iota
	Production
)

// ParseEnvironment maps a configuration string to an Environment.
func ParseEnvironment(s string) (Environment, error) {
	switch s {
	case "sandbox":
		return Sandbox, nil
	case "production":
		return Production, nil
	default:
		return Sandbox, fmt.Errorf("unknown striga environment %q", s)
	}
}

func (e Environment) String() string {
	if e == Production {
		return "production"
	}
	return "sandbox"
}

// Endpoints holds the base URLs for the API and the three embeddable
// surfaces. All four are fixed per environment; the API base may be
// overridden from configuration for testing.
type Endpoints struct {
	API        string
	Ramp       string
	Exchange   string
	Onboarding string
}

// Endpoints returns the base URLs for the environment.
func (e Environment) Endpoints() Endpoints {
	if e == Production {
		return Endpoints{
			API:        "https://www.striga.com/api/v1",
			Ramp:       "https://ramp.striga.com",
			Exchange:   "https://exchange.striga.com",
			Onboarding: "https://onboarding.striga.com",
		}
	}
	return Endpoints{
		API:        "https://www.sandbox.striga.com/api/v1",
		Ramp:       "https://ramp.sandbox.striga.com",
		Exchange:   "https://exchange.sandbox.striga.com",
		Onboarding: "https://onboarding.sandbox.striga.com",
	}
}

// ClientIdentitySet maps an embed purpose to the client identifier Striga
// issued for it. Exactly one set is active per environment.
type ClientIdentitySet struct {
	OnOffRamp  string
	Exchange   string
	Onboarding string
}

// ClientIdentities returns the identifier set registered for the
// environment.
func (e Environment) ClientIdentities() ClientIdentitySet {
	if e == Production {
		return ClientIdentitySet{
			OnOffRamp:  "loopcard-ramp",
			Exchange:   "loopcard-exchange",
			Onboarding: "loopcard-onboarding",
		}
	}
	return ClientIdentitySet{
		OnOffRamp:  "loopcard-ramp-sandbox",
		Exchange:   "loopcard-exchange-sandbox",
		Onboarding: "loopcard-onboarding-sandbox",
	}
}

// AutoApproveGateway reports whether gateway approval is an automatic
// side effect of connection. Only sandbox approves implicitly; in
// production approval happens out-of-band through Striga operations.
func (e Environment) AutoApproveGateway() bool {
	return e == Sandbox
}
