// Package billing implements the HTTP client for the remote membership and
// billing service. It signs in with configured credentials, caches the
// access token and exposes the three operations the terminal core needs:
// fetching users, fetching articles and submitting a purchase.
package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/zargony/touch-n-drink/internal/models"
	"github.com/zargony/touch-n-drink/pkg/api"
)

//go:generate moq -out client_mock.go . API

// API is the billing service surface consumed by the terminal core.
type API interface {
	// FetchUsers returns all members authorized for terminal purchases.
	FetchUsers(ctx context.Context) ([]models.User, error)

	// FetchArticles returns all purchasable articles known to the service.
	FetchArticles(ctx context.Context) ([]models.Article, error)

	// SubmitPurchase stores one purchase on the member's account. The
	// request's idempotency token is sent with every attempt so the service
	// can dedupe a request that succeeded but whose response was lost.
	SubmitPurchase(ctx context.Context, req models.PurchaseRequest) error
}

// Label prefix marking NFC tags among a member's keys
const nfcKeyPrefix = "NFC"

// Idempotency token request header for sale/add
const idempotencyKeyHeader = "Idempotency-Key"

// Credentials identify the terminal to the billing service.
type Credentials struct {
	Username    string
	PasswordMD5 string // MD5 hex digest, dictated by the service
	AppKey      string
	CID         uint32
}

// Client represents an authenticated HTTP client for the billing service
type Client struct {
	httpClient *http.Client
	baseURL    string
	creds      Credentials
	logger     *slog.Logger

	mu          sync.Mutex
	accessToken string
}

var _ API = (*Client)(nil)

// NewClient creates a new billing API client
func NewClient(baseURL string, creds Credentials, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

// FetchUsers returns all members that carry at least one NFC tag. Retired
// members and members without tags cannot authenticate at the terminal and
// are dropped here to keep the cached directory small.
func (c *Client) FetchUsers(ctx context.Context) ([]models.User, error) {
	var resp api.UserListResponse
	err := c.authRequest(ctx, "/user/list", nil, func(token string) any {
		return api.UserListRequest{AccessToken: token}
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch users failed: %w", err)
	}

	users := make([]models.User, 0, len(resp.Users))
	for _, record := range resp.Users {
		if isRetired(record.MemberStatus) {
			continue
		}
		tags := make([]models.TagID, 0, len(record.KeyManagement))
		for _, key := range record.KeyManagement {
			if !strings.HasPrefix(key.Title, nfcKeyPrefix) {
				continue
			}
			tag := models.TagID(strings.ToLower(key.KeyName))
			if tag == "" {
				c.logger.Warn("ignoring member key with empty tag id", "member_id", record.MemberID)
				continue
			}
			tags = append(tags, tag)
		}
		if len(tags) == 0 {
			continue
		}
		users = append(users, models.User{
			ID:     models.UserID(record.MemberID),
			Name:   displayName(record),
			TagIDs: tags,
		})
	}

	c.logger.Debug("fetched users", "total", resp.TotalUsers, "kept", len(users))
	return users, nil
}

// FetchArticles returns all articles of the service's article list.
// Filtering and ordering by the configured article ids happens in the
// directory cache, not here.
func (c *Client) FetchArticles(ctx context.Context) ([]models.Article, error) {
	var resp api.ArticleListResponse
	err := c.authRequest(ctx, "/articles/list", nil, func(token string) any {
		return api.ArticleListRequest{AccessToken: token}
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch articles failed: %w", err)
	}

	articles := make([]models.Article, 0, len(resp.Articles))
	for _, record := range resp.Articles {
		if record.Price <= 0 {
			c.logger.Warn("ignoring article with no valid price",
				"article_id", record.ArticleID, "designation", record.Designation)
			continue
		}
		articles = append(articles, models.Article{
			ID:    models.ArticleID(record.ArticleID),
			Name:  record.Designation,
			Price: record.Price,
		})
	}

	c.logger.Debug("fetched articles", "total", resp.TotalArticles, "kept", len(articles))
	return articles, nil
}

// SubmitPurchase stores one purchase on the member's account.
func (c *Client) SubmitPurchase(ctx context.Context, req models.PurchaseRequest) error {
	header := http.Header{}
	header.Set(idempotencyKeyHeader, req.Token)

	var resp api.SaleAddResponse
	err := c.authRequest(ctx, "/sale/add", header, func(token string) any {
		return api.SaleAddRequest{
			AccessToken: token,
			BookingDate: req.ClientTime.Format("2006-01-02"),
			ArticleID:   string(req.ArticleID),
			Amount:      req.Quantity,
			MemberID:    uint32(req.UserID),
			TotalPrice:  req.TotalPrice,
		}
	}, &resp)
	if err != nil {
		return fmt.Errorf("purchase failed: %w", err)
	}

	c.logger.Debug("purchase stored",
		"member_id", req.UserID, "article_id", req.ArticleID, "quantity", req.Quantity)
	return nil
}

// authRequest performs an authenticated POST request. An expired access
// token is dropped and the request repeated once after signing in again.
func (c *Client) authRequest(ctx context.Context, path string, header http.Header, makeBody func(token string) any, result any) error {
	token, err := c.ensureSignedIn(ctx)
	if err != nil {
		return err
	}

	err = c.doRequest(ctx, http.MethodPost, path, header, makeBody(token), result)
	if err == nil || !isUnauthorized(err) {
		return err
	}

	c.logger.Debug("access token expired, signing in again")
	c.invalidateToken(token)
	token, err = c.ensureSignedIn(ctx)
	if err != nil {
		return err
	}
	return c.doRequest(ctx, http.MethodPost, path, header, makeBody(token), result)
}

// ensureSignedIn returns the cached access token, signing in first if there
// is none. A cached token is revalidated against the service; one that has
// expired server-side is dropped and replaced by a fresh sign-in. Sign-in
// fetches a fresh access token and binds the configured credentials to it.
func (c *Client) ensureSignedIn(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" {
		var userResp api.UserInformationResponse
		err := c.doRequest(ctx, http.MethodPost, "/auth/getuser", nil, api.UserInformationRequest{
			AccessToken: c.accessToken,
		}, &userResp)
		if err == nil {
			return c.accessToken, nil
		}
		if !isUnauthorized(err) {
			return "", fmt.Errorf("validate access token failed: %w", err)
		}
		c.logger.Debug("cached access token no longer valid, signing in again")
		c.accessToken = ""
	}

	var tokenResp api.AccessTokenResponse
	if err := c.doRequest(ctx, http.MethodGet, "/auth/accesstoken", nil, nil, &tokenResp); err != nil {
		return "", fmt.Errorf("get access token failed: %w", err)
	}

	var signInResp api.SignInResponse
	err := c.doRequest(ctx, http.MethodPost, "/auth/signin", nil, api.SignInRequest{
		AccessToken: tokenResp.AccessToken,
		Username:    c.creds.Username,
		PasswordMD5: c.creds.PasswordMD5,
		AppKey:      c.creds.AppKey,
		CID:         c.creds.CID,
	}, &signInResp)
	if err != nil {
		return "", fmt.Errorf("sign in failed: %w", err)
	}

	c.accessToken = tokenResp.AccessToken
	c.logger.Info("signed in to billing service", "username", c.creds.Username)
	return c.accessToken, nil
}

// invalidateToken drops the cached access token if it still is the given
// one. A concurrent sign-in may already have replaced it.
func (c *Client) invalidateToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken == token {
		c.accessToken = ""
	}
}

// doRequest performs an HTTP request against the billing service
func (c *Client) doRequest(ctx context.Context, method, path string, header http.Header, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		message := ""
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			message = errResp.Error
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return fmt.Errorf("%w (%d): %s", ErrUnauthorized, resp.StatusCode, message)
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: message}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}

	return nil
}

// isUnauthorized reports whether err is an authorization failure.
func isUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// isRetired reports whether a member status marks the member as retired.
func isRetired(status string) bool {
	return strings.Contains(strings.ToLower(status), "ausgeschieden")
}

// displayName returns the name shown on the terminal for a member record.
func displayName(record api.UserRecord) string {
	if record.FirstName != "" {
		return record.FirstName
	}
	return record.LastName
}
