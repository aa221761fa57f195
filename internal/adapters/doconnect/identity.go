package doconnect

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/doconnect/doconnect-web/internal/errors"

	domainauth "github.com/doconnect/doconnect-web/internal/domain/auth"
	"github.com/doconnect/doconnect-web/internal/ports"
)

// IdentityClient is the authentication view over the shared core.
type IdentityClient struct {
	core *Client
}

var _ ports.IdentityAPI = (*IdentityClient)(nil)

// Identity returns the authentication surface of the API.
func (c *Client) Identity() *IdentityClient {
	return &IdentityClient{core: c}
}

// loginWire accepts the token under either key the upstream has used.
type loginWire struct {
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
}

// Login exchanges credentials for a bearer token. POST /auth/login.
func (c *IdentityClient) Login(ctx context.Context, in ports.LoginInput) (domainauth.Credential, error) {
	payload, err := json.Marshal(map[string]string{
		"usernameOrEmail": in.UsernameOrEmail,
		"password":        in.Password,
	})
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode login payload")
	}

	body, err := c.core.do(ctx, requestParams{
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Body:        bytes.NewReader(payload),
		ContentType: "application/json",
	})
	if err != nil {
		return "", err
	}

	var wire loginWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeUpstream, "decode login response")
	}
	token := wire.Token
	if token == "" {
		token = wire.AccessToken
	}
	if token == "" {
		return "", apperrors.Wrap(errors.New("response carried no token"), apperrors.ErrCodeUpstream, "login")
	}
	return domainauth.Credential(token), nil
}

// Me returns the identity the upstream associates with the credential.
// GET /auth/me.
func (c *IdentityClient) Me(ctx context.Context, cred domainauth.Credential) (ports.Identity, error) {
	body, err := c.core.get(ctx, cred, "/auth/me", "")
	if err != nil {
		return ports.Identity{}, err
	}

	var wire struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return ports.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "decode identity")
	}
	return ports.Identity{Role: wire.Role}, nil
}
