package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"table-booking/internal/pkg/errs"
)

var errEmailTaken = errs.New("email already registered")

type guest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type registeredUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type bookingRequest struct {
	UserID          int64  `json:"userId"`
	TableNumber     int    `json:"tableNumber"`
	NumberOfSeats   int    `json:"numberOfSeats"`
	ReservationTime string `json:"reservationTime"`
}

// apiError is the subset of the server's error envelope the seeder reads.
type apiError struct {
	StatusCode int `json:"statusCode"`
	Error      struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string, hc *http.Client) *client {
	return &client{baseURL: baseURL, http: hc}
}

func (c *client) createUser(ctx context.Context, g guest) (registeredUser, error) {
	var u registeredUser
	status, body, err := c.do(ctx, http.MethodPost, "/users", g)
	if err != nil {
		return u, err
	}
	switch status {
	case http.StatusCreated:
		return u, json.Unmarshal(body, &u)
	case http.StatusConflict:
		return u, errEmailTaken
	default:
		return u, describe(status, body)
	}
}

func (c *client) findUserByEmail(ctx context.Context, email string) (registeredUser, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/users?email="+url.QueryEscape(email), nil)
	if err != nil {
		return registeredUser{}, err
	}
	if status != http.StatusOK {
		return registeredUser{}, describe(status, body)
	}

	var users []registeredUser
	if err := json.Unmarshal(body, &users); err != nil {
		return registeredUser{}, errs.Wrap(err, "decode users")
	}
	if len(users) == 0 {
		return registeredUser{}, fmt.Errorf("no user registered with %s", email)
	}
	return users[0], nil
}

// book returns the server's error envelope when the booking is refused.
func (c *client) book(ctx context.Context, req bookingRequest) (*apiError, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/reservations", req)
	if err != nil {
		return nil, err
	}
	if status == http.StatusCreated {
		return nil, nil
	}

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return nil, describe(status, body)
	}
	return &apiErr, nil
}

func (c *client) do(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, errs.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, errs.Wrap(err, "build request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, errs.Wrap(err, method+" "+path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errs.Wrap(err, "read response")
	}
	return resp.StatusCode, body, nil
}

func describe(status int, body []byte) error {
	return fmt.Errorf("unexpected status %d: %s", status, bytes.TrimSpace(body))
}
