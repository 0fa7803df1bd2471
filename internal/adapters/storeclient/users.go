package storeclient

import (
	"context"
	"net/http"

	"eventplanner/internal/domain"
)

// UserClient calls the user store.
type UserClient struct {
	client
}

var _ domain.UserDirectory = (*UserClient)(nil)

// NewUserClient returns a client for the user store at baseURL.
func NewUserClient(baseURL string, httpClient *http.Client) *UserClient {
	return &UserClient{client: newClient(domain.StoreUsers, baseURL, httpClient)}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *UserClient) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, "register", http.MethodPost, "/register", nil,
		credentials{Username: username, Password: password}, nil,
		http.StatusOK, http.StatusCreated)
}

func (c *UserClient) Login(ctx context.Context, username, password string) error {
	return c.do(ctx, "login", http.MethodPost, "/login", nil,
		credentials{Username: username, Password: password}, nil,
		http.StatusOK)
}
