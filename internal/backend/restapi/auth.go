package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"taskpilot/internal/config"
)

// loginTimeout bounds the token exchange.
const loginTimeout = 30 * time.Second

// Login exchanges credentials for an access token. The backend's login
// endpoint is an OAuth2 password-grant token endpoint taking a
// form-url-encoded body, so the exchange goes through golang.org/x/oauth2.
func Login(ctx context.Context, cfg *config.Config, username, password string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  cfg.Server + "/users/login",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	token, err := conf.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			if detail := detailFromBody(retrieveErr.Body); detail != "" {
				return "", fmt.Errorf("%s", detail)
			}
			return "", fmt.Errorf("login failed (status %d)", retrieveErr.Response.StatusCode)
		}
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("request timed out")
		}
		return "", err
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("backend returned an empty token")
	}
	return token.AccessToken, nil
}

// Register creates a new account. Unlike login this is a plain JSON call.
func Register(ctx context.Context, cfg *config.Config, username, password string) error {
	ctx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.Server+"/users/register", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("request timed out")
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp)
	}
	return nil
}

func detailFromBody(data []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.Detail
}
