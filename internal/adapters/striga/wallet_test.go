package striga_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loopcard/loop_service/internal/adapters/striga"
)

func TestCreateWallet(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/wallets", r.URL.Path)
		assert.Equal(t, testUserUUID, r.Header.Get("User-Uuid"))

		var body struct {
			Name string `json:"name"`
			Type string `json:"type"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Main", body.Name)
		assert.Equal(t, "custodial", body.Type)

		w.Write([]byte(`{"walletId":"w1","ownerId":"` + testUserUUID + `","name":"Main","type":"custodial"}`))
	}

	client, server := setupTestClient(handler)
	defer server.Close()

	service := striga.NewWalletService(client)
	wallet, err := service.CreateWallet(context.Background(), testUserUUID, "Main")
	require.NoError(t, err)
	assert.Equal(t, "w1", wallet.WalletID)
	assert.Equal(t, testUserUUID, wallet.OwnerID)
}

func TestGetWallet(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/user/"+testUserUUID+"/wallets/w1", r.URL.Path)
		w.Write([]byte(`{"walletId":"w1","name":"Main","balances":[{"currency":"USDC","amount":"120.50"}]}`))
	}

	client, server := setupTestClient(handler)
	defer server.Close()

	service := striga.NewWalletService(client)
	wallet, err := service.GetWallet(context.Background(), testUserUUID, "w1")
	require.NoError(t, err)
	require.Len(t, wallet.Balances, 1)
	assert.Equal(t, "120.50", wallet.Balances[0].Amount)
}

func TestGetWalletBalance(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wallets/w1/balance", r.URL.Path)
		w.Write([]byte(`{"walletId":"w1","balances":[{"currency":"BTC","amount":"0.015"},{"currency":"EUR","amount":"42.00"}]}`))
	}

	client, server := setupTestClient(handler)
	defer server.Close()

	service := striga.NewWalletService(client)
	balance, err := service.GetWalletBalance(context.Background(), "w1")
	require.NoError(t, err)
	assert.Len(t, balance.Balances, 2)
}

func TestCreateTransactionPassThrough(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/transactions", r.URL.Path)
		w.Write([]byte(`{"transactionId":"tx1","status":"pending","currency":"USDC","amount":"10"}`))
	}

	client, server := setupTestClient(handler)
	defer server.Close()

	service := striga.NewWalletService(client)
	tx, err := service.CreateTransaction(context.Background(), &striga.CreateTransactionRequest{
		SourceWalletID: "w1",
		Destination:    "w2",
		Currency:       "USDC",
		Amount:         "10",
	})
	require.NoError(t, err)
	assert.Equal(t, "tx1", tx.TransactionID)
	assert.Equal(t, "pending", tx.Status)
}

func TestGetVaults(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vaults", r.URL.Path)
		w.Write([]byte(`{"vaults":[{"vaultId":"v1","name":"EUR vault","currency":"EUR"}]}`))
	}

	client, server := setupTestClient(handler)
	defer server.Close()

	service := striga.NewWalletService(client)
	vaults, err := service.GetVaults(context.Background())
	require.NoError(t, err)
	require.Len(t, vaults.Vaults, 1)
	assert.Equal(t, "v1", vaults.Vaults[0].VaultID)
}

func TestGetRatesFiltersAndCoerces(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rates", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("counter"))
		assert.Equal(t, "all", r.URL.Query().Get("quotes"))

		// DOGE is not a supported code; USDT arrives as a string
		// sentinel for an unavailable pair.
		w.Write([]byte(`{
			"BTC": {"rate": "65000.50"},
			"ETH": {"rate": "3050.25"},
			"USDT": "unavailable",
			"DOGE": {"rate": "0.1"},
			"GBP": {"rate": "not-a-number"}
		}`))
	}

	client, server := setupTestClient(handler)
	defer server.Close()

	service := striga.NewWalletService(client)
	rates, err := service.GetRates(context.Background(), "USD")
	require.NoError(t, err)

	require.Len(t, rates, 2)
	assert.True(t, rates["BTC"].Equal(decimal.RequireFromString("65000.50")))
	assert.True(t, rates["ETH"].Equal(decimal.RequireFromString("3050.25")))
	assert.NotContains(t, rates, "USDT")
	assert.NotContains(t, rates, "DOGE")
	assert.NotContains(t, rates, "GBP")
}

func TestGetRatesEmptyResponse(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}

	client, server := setupTestClient(handler)
	defer server.Close()

	service := striga.NewWalletService(client)
	rates, err := service.GetRates(context.Background(), "USD")
	require.NoError(t, err)
	assert.Empty(t, rates)
}
