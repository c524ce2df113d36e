package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"

	"github.com/kwanza-pay/kwanza_pay/internal/fault"
	"github.com/kwanza-pay/kwanza_pay/internal/user"
)

const (
	createUserPath = "/rpc/user.UserService/CreateUser"
	getUserPath    = "/rpc/user.UserService/GetUser"
)

// Config locates the single upstream RPC endpoint.
type Config struct {
	BaseURL string `valid:"url,required"`
	Timeout time.Duration
}

// CreateUserRequest is the wire shape of user.UserService/CreateUser.
type CreateUserRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	DOB          string `json:"dob"`
	MobileNumber string `json:"mobno"`
}

type rpcError struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// Client is the typed RPC client consumed by the gateway handlers. RPC
// failures come back classified under the fault taxonomy; transport
// failures are internal.
type Client struct {
	baseURL string
	timeout time.Duration
}

// NewClient builds the RPC client. The configuration is validated up front
// because a bad upstream URL makes every request fail.
func NewClient(cfg Config) *Client {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{baseURL: cfg.BaseURL, timeout: cfg.Timeout}
}

// CreateUser calls user.UserService/CreateUser.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (user.View, error) {
	return c.call(ctx, createUserPath, req)
}

// GetUser calls user.UserService/GetUser.
func (c *Client) GetUser(ctx context.Context, id string) (user.View, error) {
	return c.call(ctx, getUserPath, fiber.Map{"id": id})
}

func (c *Client) call(ctx context.Context, path string, payload any) (user.View, error) {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		// A non-positive value would disable the agent timeout entirely.
		if remaining <= 0 {
			return user.View{}, fault.Wrap(fault.KindInternal, "rpc call aborted", context.DeadlineExceeded)
		}
		if remaining < timeout {
			timeout = remaining
		}
	}

	agent := fiber.Post(c.baseURL + path)
	agent.Timeout(timeout)
	agent.JSON(payload)

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return user.View{}, fault.Wrap(fault.KindInternal, "rpc endpoint unreachable", errs[0])
	}

	if status >= fiber.StatusBadRequest {
		var rpcErr rpcError
		if err := json.Unmarshal(body, &rpcErr); err != nil {
			return user.View{}, fault.Wrap(fault.KindInternal, "malformed rpc error payload", err)
		}
		return user.View{}, fault.New(fault.FromCode(rpcErr.Code), rpcErr.Msg)
	}

	var v user.View
	if err := json.Unmarshal(body, &v); err != nil {
		return user.View{}, fault.Wrap(fault.KindInternal, "malformed rpc response", err)
	}
	return v, nil
}
