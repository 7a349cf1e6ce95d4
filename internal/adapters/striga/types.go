package striga

import "encoding/json"

// ManagedUser is a user entity Striga holds on behalf of one of our end
// users.
type ManagedUser struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Status    string `json:"status,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// CreateUserRequest creates or updates a managed user.
type CreateUserRequest struct {
	Email string `json:"email"`
}

// UpdateUserRequest updates the email on an existing managed user.
type UpdateUserRequest struct {
	UserUUID string `json:"userUuid"`
	Email    string `json:"email"`
}

// UserState is the provider's view of a managed user's lifecycle.
type UserState struct {
	UserID           string          `json:"userId"`
	Email            string          `json:"email"`
	Status           string          `json:"status"`
	GatewayConnected bool            `json:"gatewayConnected"`
	KYC              json.RawMessage `json:"kyc,omitempty"`
}

// ConnectGatewayRequest connects a managed user to a gateway.
type ConnectGatewayRequest struct {
	GatewayUUID string `json:"gatewayUuid"`
}

// approveUserRequest is the fixed sandbox approval body. Striga expects
// all three fields present.
type approveUserRequest struct {
	Verified int      `json:"verified"`
	Reasons  []string `json:"reasons"`
	Message  string   `json:"message"`
}

// tokenResponse is the scoped bearer token minted for an iframe embed.
type tokenResponse struct {
	Token string `json:"token"`
}

// tokenRequest carries the scope list for a token mint.
type tokenRequest struct {
	Scopes []string `json:"scopes"`
}

// Wallet is a custodial wallet owned by exactly one managed user.
type Wallet struct {
	WalletID string    `json:"walletId"`
	OwnerID  string    `json:"ownerId"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Balances []Balance `json:"balances,omitempty"`
}

// Balance is one asset position inside a wallet. Amounts are provider
// strings and passed through verbatim.
type Balance struct {
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

// CreateWalletRequest creates a wallet for a managed user.
type CreateWalletRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// WalletBalanceResponse lists the balances of a wallet.
type WalletBalanceResponse struct {
	WalletID string    `json:"walletId"`
	Balances []Balance `json:"balances"`
}

// CreateTransactionRequest describes a transfer. The provider is
// authoritative; nothing is validated locally.
type CreateTransactionRequest struct {
	SourceWalletID string `json:"sourceWalletId"`
	Destination    string `json:"destination"`
	Currency       string `json:"currency"`
	Amount         string `json:"amount"`
	Reference      string `json:"reference,omitempty"`
}

// Transaction is the provider's response to a submitted transfer,
// returned verbatim.
type Transaction struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	Currency      string `json:"currency"`
	Amount        string `json:"amount"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

// Vault is a provider-side custody vault.
type Vault struct {
	VaultID  string `json:"vaultId"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// VaultsResponse lists the vaults visible to this account.
type VaultsResponse struct {
	Vaults []Vault `json:"vaults"`
}

// rateQuote is one entry of the raw rates response. Unavailable pairs
// arrive as a bare string sentinel instead of this object.
type rateQuote struct {
	Rate string `json:"rate"`
}

// CardProduct is a card product available under our card application.
type CardProduct struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Scheme    string `json:"scheme,omitempty"`
	Currency  string `json:"currency,omitempty"`
}

// CardProductsResponse lists the card products for an application.
type CardProductsResponse struct {
	Products []CardProduct `json:"products"`
}

// CreateCardCustomerRequest creates a card customer under the card
// application bound to the running environment.
type CreateCardCustomerRequest struct {
	UserUUID  string `json:"userUuid"`
	ProductID string `json:"productId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// CardCustomer is a provider card customer.
type CardCustomer struct {
	CustomerID string `json:"customerId"`
	UserUUID   string `json:"userUuid"`
	Status     string `json:"status"`
}

// Card is a provider card resource without its sensitive payload.
type Card struct {
	CardID     string `json:"cardId"`
	CustomerID string `json:"customerId"`
	Status     string `json:"status"`
	Last4      string `json:"last4,omitempty"`
	Expiry     string `json:"expiry,omitempty"`
}

// CardsResponse lists a customer's cards.
type CardsResponse struct {
	Cards []Card `json:"cards"`
}

// CardDetailsRequest asks for the sensitive payload of one card.
type CardDetailsRequest struct {
	CardID     string `json:"cardId"`
	CustomerID string `json:"customerId"`
}

// CardDetails is the sensitive card payload returned by the card-data
// endpoint.
type CardDetails struct {
	CardID string `json:"cardId"`
	PAN    string `json:"pan"`
	CVV    string `json:"cvv"`
	Expiry string `json:"expiry"`
}
