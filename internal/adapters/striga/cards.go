package striga

import (
	"context"
	"fmt"
)

// CardService covers card-product discovery, card customers, and the
// two-hop sensitive-details fetch.
type CardService struct {
	transport Transport
	cardAppID string
}

// NewCardService creates a card service bound to the card application
// registered for the running environment.
func NewCardService(transport Transport, cardAppID string) *CardService {
	return &CardService{
		transport: transport,
		cardAppID: cardAppID,
	}
}

// FetchCardApplicationProducts lists the card products available under
// our application. Striga documents this as a precedence step before
// customer creation; that ordering is advisory and not enforced here.
func (s *CardService) FetchCardApplicationProducts(ctx context.Context) (*CardProductsResponse, error) {
	var products CardProductsResponse
	endpoint := fmt.Sprintf("%s/cards/applications/%s/products", s.transport.Endpoints().API, s.cardAppID)
	if err := s.transport.Do(ctx, "GET", endpoint, nil, &products); err != nil {
		return nil, fmt.Errorf("fetch card products failed: %w", err)
	}
	return &products, nil
}

// CreateCustomer creates a card customer under our card application.
func (s *CardService) CreateCustomer(ctx context.Context, req *CreateCardCustomerRequest) (*CardCustomer, error) {
	var customer CardCustomer
	endpoint := s.transport.Endpoints().API + "/cards/customers"
	if err := s.transport.Do(ctx, "POST", endpoint, req, &customer, WithCardAppID(s.cardAppID)); err != nil {
		return nil, fmt.Errorf("create card customer failed: %w", err)
	}
	return &customer, nil
}

// GetCardsByCustomer lists the cards issued to a customer.
func (s *CardService) GetCardsByCustomer(ctx context.Context, customerID string) (*CardsResponse, error) {
	var cards CardsResponse
	endpoint := fmt.Sprintf("%s/cards/customers/%s/cards", s.transport.Endpoints().API, customerID)
	if err := s.transport.Do(ctx, "GET", endpoint, nil, &cards); err != nil {
		return nil, fmt.Errorf("get cards failed: %w", err)
	}
	return &cards, nil
}

// GetCardDetails retrieves the sensitive payload of a card. The flow is
// two hops: a signed token mint, then a data fetch authorized by that
// token alone. The token is single-use, never cached, and its response
// is kept out of the logs. If the mint response carries no token the
// data fetch is never attempted.
func (s *CardService) GetCardDetails(ctx context.Context, req *CardDetailsRequest) (*CardDetails, error) {
	api := s.transport.Endpoints().API

	var token tokenResponse
	err := s.transport.Do(ctx, "POST", api+"/cards/details/token", req, &token,
		WithCardAppID(s.cardAppID),
		WithSensitiveResponse(),
	)
	if err != nil {
		return nil, fmt.Errorf("mint card details token failed: %w", err)
	}
	if token.Token == "" {
		return nil, &ProtocolError{Missing: "token"}
	}

	var details CardDetails
	endpoint := fmt.Sprintf("%s/cards/%s/details", api, req.CardID)
	if err := s.transport.DoBearer(ctx, "GET", endpoint, token.Token, &details); err != nil {
		return nil, fmt.Errorf("fetch card details failed: %w", err)
	}
	return &details, nil
}
