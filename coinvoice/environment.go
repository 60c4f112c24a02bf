package coinvoice

import (
	"fmt"
	"strings"
)

const (
	// ProductionURL is the default production host.
	ProductionURL = "https://coinvoice.com"
	// SandboxURL is the default sandbox host used for test invoices.
	SandboxURL = "https://sandbox.coinvoice.com"
)

type Environment int

const (
	Prod Environment = iota
	Sandbox
)

// BaseURL is the default service host of e, empty for an unknown environment.
func (e Environment) BaseURL() string {
	switch e {
	case Prod:
		return ProductionURL
	case Sandbox:
		return SandboxURL
	}
	return ""
}

func (e Environment) Name() string {
	switch e {
	case Prod:
		return "prod"
	case Sandbox:
		return "sandbox"
	}
	return fmt.Sprintf("Environment(%d)", int(e))
}

func (e Environment) String() string {
	return e.Name()
}

// IsSandbox reports whether invoices created in e should carry the test flag.
func (e Environment) IsSandbox() bool {
	return e == Sandbox
}

func (e *Environment) UnmarshalText(text []byte) error {
	val := strings.ToLower(strings.TrimSpace(string(text)))

	switch val {
	case "prod", "production":
		*e = Prod
	case "sandbox", "test":
		*e = Sandbox
	default:
		return &ConfigurationError{Reason: fmt.Sprintf("invalid COINVOICE_ENV: %q (allowed: prod, sandbox)", val)}
	}
	return nil
}

func (e Environment) MarshalText() ([]byte, error) {
	return []byte(e.Name()), nil
}
