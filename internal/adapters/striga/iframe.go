package striga

import (
	"context"
	"fmt"
	"net/url"
)

// IframeKind identifies which embedded Striga surface a token is minted
// for.
type IframeKind string

const (
	IframeDeposit    IframeKind = "deposit"
	IframeWithdrawal IframeKind = "withdrawal"
	IframeExchange   IframeKind = "exchange"
	IframeOnboarding IframeKind = "onboarding"
)

// Scopes granted to embed tokens. Onboarding carries its own scope; the
// three wallet surfaces share the default.
const (
	scopeEmbed      = "wallet:embed"
	scopeOnboarding = "onboarding:embed"
)

// IframeService mints scope-limited bearer tokens and builds embeddable
// Striga URLs. Tokens are minted fresh on every call and never cached.
type IframeService struct {
	transport Transport
	clients   ClientIdentitySet
}

// NewIframeService creates an iframe authorization service for the
// given environment.
func NewIframeService(transport Transport, env Environment) *IframeService {
	return &IframeService{
		transport: transport,
		clients:   env.ClientIdentities(),
	}
}

// GetIframeURL mints a token bound to the managed user and returns the
// embed URL for the requested surface. An unrecognized kind fails
// before any network call with an *UnsupportedKindError.
func (s *IframeService) GetIframeURL(ctx context.Context, kind IframeKind, userUUID string) (string, error) {
	var clientID, scope string
	switch kind {
	case IframeDeposit, IframeWithdrawal:
		clientID, scope = s.clients.OnOffRamp, scopeEmbed
	case IframeExchange:
		clientID, scope = s.clients.Exchange, scopeEmbed
	case IframeOnboarding:
		clientID, scope = s.clients.Onboarding, scopeOnboarding
	default:
		return "", &UnsupportedKindError{Kind: kind}
	}

	token, err := s.mintToken(ctx, clientID, scope, userUUID)
	if err != nil {
		return "", err
	}

	eps := s.transport.Endpoints()
	switch kind {
	case IframeDeposit, IframeWithdrawal:
		return fmt.Sprintf("%s/?paymentType=%s&bearer=%s", eps.Ramp, string(kind), url.QueryEscape(token)), nil
	case IframeExchange:
		return fmt.Sprintf("%s/?bearer=%s", eps.Exchange, url.QueryEscape(token)), nil
	default:
		return fmt.Sprintf("%s/?bearer=%s", eps.Onboarding, url.QueryEscape(token)), nil
	}
}

// mintToken requests a fresh scoped token for the client identity,
// bound to the managed user through the User-Uuid header.
func (s *IframeService) mintToken(ctx context.Context, clientID, scope, userUUID string) (string, error) {
	endpoint := fmt.Sprintf("%s/auth/token/%s", s.transport.Endpoints().API, clientID)
	var resp tokenResponse
	err := s.transport.Do(ctx, "POST", endpoint,
		&tokenRequest{Scopes: []string{scope}},
		&resp,
		WithUserUUID(userUUID),
		WithSensitiveResponse(),
	)
	if err != nil {
		return "", fmt.Errorf("mint iframe token failed: %w", err)
	}
	if resp.Token == "" {
		return "", &ProtocolError{Missing: "token"}
	}
	return resp.Token, nil
}
