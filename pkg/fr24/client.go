package fr24

import (
	"net/http"
	"net/url"
	"sync"
	"time"
)

const (
	// DefaultTimeout for calls against the remote service.
	DefaultTimeout = 10 * time.Second

	// sessionCookieName is the cookie whose value acts as the session token
	// on live feed and detail queries.
	sessionCookieName = "_frPl"
)

// ClientConfig configures a Client.
type ClientConfig struct {
	// Email and Password log the client in on construction when both are
	// set. Anonymous access works for most endpoints.
	Email    string
	Password string

	// Timeout for each HTTP call. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Client talks to the FlightRadar24 data services.
//
// All operations are synchronous and block until every round-trip completes.
// The client keeps no state besides the tracker configuration and an optional
// login session; both are guarded by a mutex so a Client may be shared.
type Client struct {
	httpClient *http.Client
	endpoints  endpoints

	mu            sync.Mutex
	trackerConfig TrackerConfig
	session       *session
}

// session holds the authentication state produced by a successful login.
// It is owned exclusively by the Client and handed out only as copies.
type session struct {
	userData map[string]any
	cookies  map[string]string
}

func (s *session) token() string {
	return s.cookies[sessionCookieName]
}

// NewClient creates a Client, logging in when credentials are configured.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	client := &Client{
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		endpoints:     defaultEndpoints(),
		trackerConfig: DefaultTrackerConfig(),
	}

	if cfg.Email != "" && cfg.Password != "" {
		if err := client.Login(cfg.Email, cfg.Password); err != nil {
			return nil, err
		}
	}

	return client, nil
}

// Login authenticates against the service and stores the resulting session.
// A rejected credential pair or a payload without a success flag yields a
// LoginError carrying the upstream message.
func (c *Client) Login(email, password string) error {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)
	form.Set("remember", "true")
	form.Set("type", "web")

	response, err := c.sendRequest(requestOptions{
		url:     c.endpoints.userLogin,
		headers: jsonHeaders(),
		form:    form,
		// Login failures carry a JSON body on arbitrary statuses;
		// classification happens below on the success flag.
		acceptAnyStatus: true,
	})
	if err != nil {
		return err
	}

	content, jsonErr := response.JSON()

	success, _ := content["success"].(bool)
	if response.StatusCode < 200 || response.StatusCode >= 300 || !success {
		if jsonErr == nil {
			if message, ok := content["message"].(string); ok && message != "" {
				return &LoginError{Message: message}
			}
		}
		return &LoginError{Message: "your email or password is incorrect"}
	}

	userData, _ := content["userData"].(map[string]any)

	c.mu.Lock()
	c.session = &session{userData: userData, cookies: response.Cookies()}
	c.mu.Unlock()

	return nil
}

// Logout drops the stored session and notifies the service. The local state
// is cleared regardless of the remote call's outcome; the return value
// reports whether the service acknowledged the logout. Logging out while
// logged out is a no-op that reports success.
func (c *Client) Logout() (bool, error) {
	c.mu.Lock()
	current := c.session
	c.session = nil
	c.mu.Unlock()

	if current == nil {
		return true, nil
	}

	response, err := c.sendRequest(requestOptions{
		url:     c.endpoints.userLogout,
		headers: jsonHeaders(),
		cookies: current.cookies,
	})
	if err != nil {
		return false, err
	}

	return response.StatusCode >= 200 && response.StatusCode < 300, nil
}

// IsLoggedIn reports whether the client holds a session.
func (c *Client) IsLoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil
}

// LoginData returns a copy of the logged-in user's profile. It fails with a
// LoginError when the client is not logged in.
func (c *Client) LoginData() (map[string]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return nil, &LoginError{Message: "you must log in to your account"}
	}

	profile := make(map[string]any, len(c.session.userData))
	for key, value := range c.session.userData {
		profile[key] = value
	}
	return profile, nil
}

// TrackerConfig returns a copy of the live feed tracker configuration.
func (c *Client) TrackerConfig() TrackerConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trackerConfig
}

// SetTrackerConfig replaces the live feed tracker configuration.
func (c *Client) SetTrackerConfig(cfg TrackerConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trackerConfig = cfg
}

// SetTrackerOption assigns one tracker option by its wire name, with the same
// validation as TrackerConfig.Set.
func (c *Client) SetTrackerOption(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trackerConfig.Set(key, value)
}

// currentSession returns the session under the lock, or nil.
func (c *Client) currentSession() *session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}
