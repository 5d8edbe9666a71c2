package billing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zargony/touch-n-drink/internal/models"
	"github.com/zargony/touch-n-drink/pkg/api"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCredentials() Credentials {
	return Credentials{
		Username:    "terminal",
		PasswordMD5: "d41d8cd98f00b204e9800998ecf8427e",
		AppKey:      "appkey",
		CID:         42,
	}
}

// billingServer is a minimal fake of the billing service's auth endpoints.
// handle is called for every authenticated request.
func billingServer(t *testing.T, handle http.HandlerFunc) *httptest.Server {
	t.Helper()
	var signIns atomic.Int32
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/accesstoken":
			_ = json.NewEncoder(w).Encode(api.AccessTokenResponse{AccessToken: "token-1"})
		case "/auth/signin":
			var req api.SignInRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "terminal", req.Username)
			assert.Equal(t, "token-1", req.AccessToken)
			signIns.Add(1)
			_ = json.NewEncoder(w).Encode(api.SignInResponse{HTTPStatusCode: 200})
		case "/auth/getuser":
			var req api.UserInformationRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "token-1", req.AccessToken)
			_ = json.NewEncoder(w).Encode(api.UserInformationResponse{FirstName: "Terminal", MemberID: 1})
		default:
			handle(w, r)
		}
	}))
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/", testCredentials(), 10*time.Second, discardLogger())

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:8080", client.baseURL)
	assert.Equal(t, 10*time.Second, client.httpClient.Timeout)
}

func TestClient_FetchUsers(t *testing.T) {
	server := billingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/user/list", r.URL.Path)

		var req api.UserListRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "token-1", req.AccessToken)

		_ = json.NewEncoder(w).Encode(api.UserListResponse{
			TotalUsers: 4,
			Users: []api.UserRecord{
				{
					MemberID:  1,
					FirstName: "Alice",
					LastName:  "Adams",
					KeyManagement: []api.KeyRecord{
						{Title: "NFC Transponder 1", KeyName: "04A1B2C3"},
						{Title: "Locker", KeyName: "17"},
					},
				},
				{
					MemberID:  2,
					FirstName: "Bob",
					// no NFC keys, cannot authenticate
					KeyManagement: []api.KeyRecord{{Title: "Locker", KeyName: "18"}},
				},
				{
					MemberID:      3,
					FirstName:     "Carol",
					MemberStatus:  "Ausgeschieden",
					KeyManagement: []api.KeyRecord{{Title: "NFC Tag", KeyName: "deadbeef"}},
				},
				{
					MemberID: 4,
					LastName: "Dent",
					KeyManagement: []api.KeyRecord{
						{Title: "NFC Tag", KeyName: "b7d36526"},
						{Title: "NFC Tag 2", KeyName: "13bd5b2a"},
					},
				},
			},
		})
	})
	defer server.Close()

	client := NewClient(server.URL, testCredentials(), 10*time.Second, discardLogger())

	users, err := client.FetchUsers(context.Background())
	require.NoError(t, err)

	require.Len(t, users, 2)
	assert.Equal(t, models.User{
		ID:     1,
		Name:   "Alice",
		TagIDs: []models.TagID{"04a1b2c3"}, // normalized to lowercase
	}, users[0])
	assert.Equal(t, models.User{
		ID:     4,
		Name:   "Dent", // falls back to last name
		TagIDs: []models.TagID{"b7d36526", "13bd5b2a"},
	}, users[1])
}

func TestClient_FetchArticles(t *testing.T) {
	server := billingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/articles/list", r.URL.Path)
		_ = json.NewEncoder(w).Encode(api.ArticleListResponse{
			TotalArticles: 2,
			Articles: []api.ArticleRecord{
				{ArticleID: "1", Designation: "Cola", Price: 150},
				{ArticleID: "2", Designation: "Broken", Price: 0}, // dropped
			},
		})
	})
	defer server.Close()

	client := NewClient(server.URL, testCredentials(), 10*time.Second, discardLogger())

	articles, err := client.FetchArticles(context.Background())
	require.NoError(t, err)

	require.Len(t, articles, 1)
	assert.Equal(t, models.Article{ID: "1", Name: "Cola", Price: 150}, articles[0])
}

func TestClient_SubmitPurchase(t *testing.T) {
	var gotKey string
	server := billingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sale/add", r.URL.Path)
		gotKey = r.Header.Get("Idempotency-Key")

		var req api.SaleAddRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "1", req.ArticleID)
		assert.Equal(t, 2, req.Amount)
		assert.Equal(t, uint32(7), req.MemberID)
		assert.Equal(t, int64(300), req.TotalPrice)
		assert.Equal(t, "2026-08-31", req.BookingDate)

		_ = json.NewEncoder(w).Encode(api.SaleAddResponse{HTTPStatusCode: 200})
	})
	defer server.Close()

	client := NewClient(server.URL, testCredentials(), 10*time.Second, discardLogger())

	err := client.SubmitPurchase(context.Background(), models.PurchaseRequest{
		UserID:     7,
		ArticleID:  "1",
		Quantity:   2,
		TotalPrice: 300,
		Token:      "boot-1",
		ClientTime: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "boot-1", gotKey)
}

func TestClient_SingleSignInAcrossRequests(t *testing.T) {
	var calls atomic.Int32
	server := billingServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(api.ArticleListResponse{})
	})
	defer server.Close()

	client := NewClient(server.URL, testCredentials(), 10*time.Second, discardLogger())

	_, err := client.FetchArticles(context.Background())
	require.NoError(t, err)
	_, err = client.FetchArticles(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_RevalidatesCachedToken(t *testing.T) {
	var signIns, getUsers atomic.Int32
	var tokenExpired atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/accesstoken":
			_ = json.NewEncoder(w).Encode(api.AccessTokenResponse{AccessToken: "token-1"})
		case "/auth/signin":
			signIns.Add(1)
			_ = json.NewEncoder(w).Encode(api.SignInResponse{HTTPStatusCode: 200})
		case "/auth/getuser":
			getUsers.Add(1)
			if tokenExpired.CompareAndSwap(true, false) {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "token expired"})
				return
			}
			_ = json.NewEncoder(w).Encode(api.UserInformationResponse{MemberID: 1})
		case "/articles/list":
			_ = json.NewEncoder(w).Encode(api.ArticleListResponse{})
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, testCredentials(), 10*time.Second, discardLogger())

	// First request signs in, no cached token to revalidate yet
	_, err := client.FetchArticles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), signIns.Load())
	assert.Equal(t, int32(0), getUsers.Load())

	// Second request revalidates and reuses the cached token
	_, err = client.FetchArticles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), signIns.Load())
	assert.Equal(t, int32(1), getUsers.Load())

	// A token expired server-side is dropped and replaced by a new sign-in
	tokenExpired.Store(true)
	_, err = client.FetchArticles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), signIns.Load())
	assert.Equal(t, int32(2), getUsers.Load())
}

func TestClient_RedirectLoopAborted(t *testing.T) {
	server := billingServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.URL.Path, http.StatusFound)
	})
	defer server.Close()

	client := NewClient(server.URL, testCredentials(), 10*time.Second, discardLogger())

	_, err := client.FetchArticles(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stopped after 10 redirects")
}

func TestClient_ExpiredTokenRetriesOnce(t *testing.T) {
	var attempts atomic.Int32
	server := billingServer(t, func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "token expired"})
			return
		}
		_ = json.NewEncoder(w).Encode(api.UserListResponse{})
	})
	defer server.Close()

	client := NewClient(server.URL, testCredentials(), 10*time.Second, discardLogger())
	// Prime the token cache, then expire it behind the client's back
	_, err := client.FetchUsers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), attempts.Load())
}

func TestClient_ServerError(t *testing.T) {
	server := billingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "boom"})
	})
	defer server.Close()

	client := NewClient(server.URL, testCredentials(), 10*time.Second, discardLogger())

	_, err := client.FetchArticles(context.Background())
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.True(t, IsTransient(err))
}

func TestClient_BusinessRejection(t *testing.T) {
	server := billingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "unknown article"})
	})
	defer server.Close()

	client := NewClient(server.URL, testCredentials(), 10*time.Second, discardLogger())

	err := client.SubmitPurchase(context.Background(), models.PurchaseRequest{Token: "t"})
	require.Error(t, err)
	assert.False(t, IsTransient(err))
}

func TestClient_MalformedResponse(t *testing.T) {
	server := billingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})
	defer server.Close()

	client := NewClient(server.URL, testCredentials(), 10*time.Second, discardLogger())

	_, err := client.FetchUsers(context.Background())
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestIsTransient(t *testing.T) {
	assert.False(t, IsTransient(nil))
	assert.False(t, IsTransient(ErrUnauthorized))
	assert.False(t, IsTransient(&StatusError{StatusCode: 422}))
	assert.True(t, IsTransient(&StatusError{StatusCode: 500}))
	assert.True(t, IsTransient(&StatusError{StatusCode: 503}))
	assert.True(t, IsTransient(errors.New("dial tcp: connection refused")))
	assert.True(t, IsTransient(ErrMalformedResponse))
}
