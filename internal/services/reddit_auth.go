// File: internal/services/reddit_auth.go

package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	redditTokenURL    = "https://www.reddit.com/api/v1/access_token"
	tokenExpiryBuffer = 5 * time.Minute
)

// redditAuth manages the app-only OAuth token for the Reddit API.
type redditAuth struct {
	clientID     string
	clientSecret string
	userAgent    string
	httpClient   *http.Client

	mu          sync.RWMutex
	accessToken string
	tokenExpiry time.Time
}

func newRedditAuth(clientID, clientSecret, userAgent string, httpClient *http.Client) *redditAuth {
	return &redditAuth{
		clientID:     clientID,
		clientSecret: clientSecret,
		userAgent:    userAgent,
		httpClient:   httpClient,
	}
}

// Token returns a valid access token, refreshing it when the cached one
// is missing or within the expiry buffer.
func (a *redditAuth) Token(ctx context.Context) (string, error) {
	a.mu.RLock()
	if a.accessToken != "" && time.Now().Add(tokenExpiryBuffer).Before(a.tokenExpiry) {
		token := a.accessToken
		a.mu.RUnlock()
		return token, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if a.accessToken != "" && time.Now().Add(tokenExpiryBuffer).Before(a.tokenExpiry) {
		return a.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, redditTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("error creating token request: %w", err)
	}

	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	creds := base64.StdEncoding.EncodeToString([]byte(a.clientID + ":" + a.clientSecret))
	req.Header.Set("Authorization", "Basic "+creds)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error making token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed with status: %d", resp.StatusCode)
	}

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return "", fmt.Errorf("error parsing token response: %w", err)
	}
	if tokenResponse.AccessToken == "" {
		return "", fmt.Errorf("received empty access token")
	}

	a.accessToken = tokenResponse.AccessToken
	a.tokenExpiry = time.Now().Add(time.Duration(tokenResponse.ExpiresIn) * time.Second)

	return a.accessToken, nil
}
