package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hublist/hublist/backend/config"
)

// DiscordUser represents a Discord user from the API
type DiscordUser struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar"`
	Email         string `json:"email"`
}

// OAuthService handles Discord OAuth2 authentication
type OAuthService struct {
	config     *config.WebAppConfig
	httpClient *http.Client
}

// NewOAuthService creates a new OAuth service
func NewOAuthService(cfg *config.WebAppConfig) *OAuthService {
	return &OAuthService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GenerateAuthURL generates the Discord OAuth2 authorization URL
func (o *OAuthService) GenerateAuthURL(state string) string {
	params := url.Values{}
	params.Set("client_id", o.config.Config.Web.ClientID)
	params.Set("redirect_uri", o.config.Config.Web.RedirectURL)
	params.Set("response_type", "code")
	params.Set("scope", "identify")
	params.Set("state", state)

	return "https://discord.com/api/oauth2/authorize?" + params.Encode()
}

// ExchangeCodeForToken exchanges an authorization code for an access token
func (o *OAuthService) ExchangeCodeForToken(ctx context.Context, code string) (string, error) {
	data := url.Values{}
	data.Set("client_id", o.config.Config.Web.ClientID)
	data.Set("client_secret", o.config.Config.Web.ClientSecret)
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", o.config.Config.Web.RedirectURL)

	req, err := http.NewRequestWithContext(ctx, "POST", "https://discord.com/api/oauth2/token",
		strings.NewReader(data.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to exchange code for token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("discord API error: %s", string(body))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
		Scope       string `json:"scope"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	return tokenResp.AccessToken, nil
}

// GetUserInfo gets Discord user information using an access token
func (o *OAuthService) GetUserInfo(ctx context.Context, accessToken string) (*DiscordUser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", "https://discord.com/api/users/@me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create user info request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("discord API error: %s", string(body))
	}

	var user DiscordUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &user, nil
}

// AvatarURL builds the CDN avatar URL for a Discord user.
func (u *DiscordUser) AvatarURL() string {
	if u.Avatar == "" {
		return ""
	}
	return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", u.ID, u.Avatar)
}

// IsAdminUser checks if a Discord user ID is in the configured admin list
func (o *OAuthService) IsAdminUser(discordID string) bool {
	for _, adminID := range o.config.Config.Web.AdminUsers {
		if adminID == discordID {
			return true
		}
	}
	return false
}

// GenerateState generates a random state parameter for OAuth2
func (o *OAuthService) GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// ValidateState validates the OAuth2 state parameter
func (o *OAuthService) ValidateState(c *fiber.Ctx, expectedState string) bool {
	receivedState := c.Query("state")
	return receivedState == expectedState
}
