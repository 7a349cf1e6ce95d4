package striga

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// walletType is the fixed tag every wallet we create carries.
const walletType = "custodial"

// supportedAssets is the fixed set of asset codes surfaced to callers.
// Codes outside this set are dropped from the rates response.
var supportedAssets = []string{"BTC", "ETH", "USDC", "USDT", "EUR", "GBP"}

// WalletService covers wallet lifecycle, balances, transactions, vault
// introspection and exchange rates.
type WalletService struct {
	transport Transport
}

// NewWalletService creates a wallet and transaction service.
func NewWalletService(transport Transport) *WalletService {
	return &WalletService{transport: transport}
}

// CreateWallet creates a custodial wallet owned by the managed user.
func (s *WalletService) CreateWallet(ctx context.Context, userUUID, name string) (*Wallet, error) {
	var wallet Wallet
	endpoint := s.transport.Endpoints().API + "/wallets"
	err := s.transport.Do(ctx, "POST", endpoint,
		&CreateWalletRequest{Name: name, Type: walletType},
		&wallet,
		WithUserUUID(userUUID),
	)
	if err != nil {
		return nil, fmt.Errorf("create wallet failed: %w", err)
	}
	return &wallet, nil
}

// GetWallet retrieves a wallet owned by the managed user.
func (s *WalletService) GetWallet(ctx context.Context, userUUID, walletID string) (*Wallet, error) {
	var wallet Wallet
	endpoint := fmt.Sprintf("%s/user/%s/wallets/%s", s.transport.Endpoints().API, userUUID, walletID)
	if err := s.transport.Do(ctx, "GET", endpoint, nil, &wallet); err != nil {
		return nil, fmt.Errorf("get wallet failed: %w", err)
	}
	return &wallet, nil
}

// GetWalletBalance retrieves the balances of a wallet.
func (s *WalletService) GetWalletBalance(ctx context.Context, walletID string) (*WalletBalanceResponse, error) {
	var balance WalletBalanceResponse
	endpoint := fmt.Sprintf("%s/wallets/%s/balance", s.transport.Endpoints().API, walletID)
	if err := s.transport.Do(ctx, "GET", endpoint, nil, &balance); err != nil {
		return nil, fmt.Errorf("get wallet balance failed: %w", err)
	}
	return &balance, nil
}

// CreateTransaction submits a transfer. The provider response,
// including status, is returned verbatim.
func (s *WalletService) CreateTransaction(ctx context.Context, req *CreateTransactionRequest) (*Transaction, error) {
	var tx Transaction
	endpoint := s.transport.Endpoints().API + "/transactions"
	if err := s.transport.Do(ctx, "POST", endpoint, req, &tx); err != nil {
		return nil, fmt.Errorf("create transaction failed: %w", err)
	}
	return &tx, nil
}

// GetVaults lists the custody vaults visible to this account.
func (s *WalletService) GetVaults(ctx context.Context) (*VaultsResponse, error) {
	var vaults VaultsResponse
	endpoint := s.transport.Endpoints().API + "/vaults"
	if err := s.transport.Do(ctx, "GET", endpoint, nil, &vaults); err != nil {
		return nil, fmt.Errorf("get vaults failed: %w", err)
	}
	return &vaults, nil
}

// GetRates fetches all quotes against the base asset and flattens them
// to the supported set. Striga returns a bare string sentinel instead
// of a quote object for unavailable pairs; those entries are skipped,
// as are codes absent from the response.
func (s *WalletService) GetRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/rates?counter=%s&quotes=all", s.transport.Endpoints().API, url.QueryEscape(base))

	raw := map[string]json.RawMessage{}
	if err := s.transport.Do(ctx, "GET", endpoint, nil, &raw); err != nil {
		return nil, fmt.Errorf("get rates failed: %w", err)
	}

	rates := make(map[string]decimal.Decimal)
	for _, code := range supportedAssets {
		entry, ok := raw[code]
		if !ok {
			continue
		}
		var quote rateQuote
		if err := json.Unmarshal(entry, &quote); err != nil {
			// String sentinel for an unavailable pair.
			continue
		}
		rate, err := decimal.NewFromString(quote.Rate)
		if err != nil {
			continue
		}
		rates[code] = rate
	}
	return rates, nil
}
