// Package lunchmoney is a strictly read-only client for the Lunch Money
// API. Every request funnels through one verb-checked path; anything other
// than GET fails before a connection is opened.
package lunchmoney

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is the fixed Lunch Money API origin.
const DefaultBaseURL = "https://dev.lunchmoney.app/v1"

// Account unifies the two upstream account shapes: manually-tracked assets
// and linked (bank-aggregated) accounts. Source tells them apart.
type Account struct {
	ID              int64
	Name            string
	Balance         string
	BalanceAsOf     string
	Currency        string
	TypeName        string
	SubtypeName     *string
	InstitutionName *string
	Source          string // "manual" or "linked"
}

// Transaction mirrors the upstream transaction shape. Either AssetID or
// PlaidAccountID references the owning account, depending on its source.
type Transaction struct {
	ID             int64   `json:"id"`
	Date           string  `json:"date"`
	Payee          string  `json:"payee"`
	Amount         string  `json:"amount"`
	Currency       string  `json:"currency"`
	Notes          *string `json:"notes"`
	CategoryID     *int64  `json:"category_id"`
	CategoryName   *string `json:"category_name"`
	AssetID        *int64  `json:"asset_id"`
	PlaidAccountID *int64  `json:"plaid_account_id"`
	Status         string  `json:"status"`
}

// BucketBalances holds the three bucket accounts; a nil slot means the
// configured account id was not in the fetched account list.
type BucketBalances struct {
	Savings  *Account
	Goals    *Account
	Spending *Account
}

// Client talks to the Lunch Money API. Zero value is not usable; use
// NewClient, then override BaseURL or HTTPClient for tests.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// do is the single request path. The verb allow-list lives here and only
// here so no future endpoint can bypass it.
func (c *Client) do(ctx context.Context, method, token, path string, query url.Values) ([]byte, error) {
	if method != http.MethodGet {
		return nil, &SecurityViolation{Method: method}
	}

	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	return body, nil
}

type apiAsset struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Balance         string  `json:"balance"`
	BalanceAsOf     string  `json:"balance_as_of"`
	Currency        string  `json:"currency"`
	TypeName        string  `json:"type_name"`
	SubtypeName     *string `json:"subtype_name"`
	InstitutionName *string `json:"institution_name"`
}

type apiPlaidAccount struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Balance           string  `json:"balance"`
	BalanceLastUpdate string  `json:"balance_last_update"`
	Currency          string  `json:"currency"`
	Type              string  `json:"type"`
	Subtype           *string `json:"subtype"`
	InstitutionName   *string `json:"institution_name"`
}

// FetchAccounts returns the full account list: manually-tracked assets and
// linked accounts merged into one shape.
func (c *Client) FetchAccounts(ctx context.Context, token string) ([]Account, error) {
	body, err := c.do(ctx, http.MethodGet, token, "/assets", nil)
	if err != nil {
		return nil, err
	}
	var assets struct {
		Assets []apiAsset `json:"assets"`
	}
	if err := json.Unmarshal(body, &assets); err != nil {
		return nil, fmt.Errorf("decode assets: %w", err)
	}

	body, err = c.do(ctx, http.MethodGet, token, "/plaid_accounts", nil)
	if err != nil {
		return nil, err
	}
	var plaid struct {
		PlaidAccounts []apiPlaidAccount `json:"plaid_accounts"`
	}
	if err := json.Unmarshal(body, &plaid); err != nil {
		return nil, fmt.Errorf("decode plaid accounts: %w", err)
	}

	out := make([]Account, 0, len(assets.Assets)+len(plaid.PlaidAccounts))
	for _, a := range assets.Assets {
		out = append(out, Account{
			ID:              a.ID,
			Name:            a.Name,
			Balance:         a.Balance,
			BalanceAsOf:     a.BalanceAsOf,
			Currency:        a.Currency,
			TypeName:        a.TypeName,
			SubtypeName:     a.SubtypeName,
			InstitutionName: a.InstitutionName,
			Source:          "manual",
		})
	}
	for _, p := range plaid.PlaidAccounts {
		out = append(out, Account{
			ID:              p.ID,
			Name:            p.Name,
			Balance:         p.Balance,
			BalanceAsOf:     p.BalanceLastUpdate,
			Currency:        p.Currency,
			TypeName:        p.Type,
			SubtypeName:     p.Subtype,
			InstitutionName: p.InstitutionName,
			Source:          "linked",
		})
	}
	return out, nil
}

// FetchTransactions returns transactions for one account. Empty start/end
// dates default to the trailing 30 days ending today. The upstream response
// may reference accounts through either asset_id or plaid_account_id, so
// both are checked when filtering.
func (c *Client) FetchTransactions(ctx context.Context, token string, accountID int64, startDate, endDate string) ([]Transaction, error) {
	if startDate == "" {
		startDate = time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	}
	if endDate == "" {
		endDate = time.Now().Format("2006-01-02")
	}
	query := url.Values{}
	query.Set("asset_id", strconv.FormatInt(accountID, 10))
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)

	body, err := c.do(ctx, http.MethodGet, token, "/transactions", query)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Transactions []Transaction `json:"transactions"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}

	out := make([]Transaction, 0, len(payload.Transactions))
	for _, t := range payload.Transactions {
		if (t.AssetID != nil && *t.AssetID == accountID) ||
			(t.PlaidAccountID != nil && *t.PlaidAccountID == accountID) {
			out = append(out, t)
		}
	}
	return out, nil
}

// FetchBucketBalances resolves the three configured bucket accounts from
// the full account list. Missing ids leave their slot nil.
func (c *Client) FetchBucketBalances(ctx context.Context, token string, savingsID, goalsID, spendingID int64) (BucketBalances, error) {
	accounts, err := c.FetchAccounts(ctx, token)
	if err != nil {
		return BucketBalances{}, err
	}
	var bb BucketBalances
	for i := range accounts {
		a := &accounts[i]
		switch a.ID {
		case savingsID:
			bb.Savings = a
		case goalsID:
			bb.Goals = a
		case spendingID:
			bb.Spending = a
		}
	}
	return bb, nil
}
