package gateway

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/kwanza-pay/kwanza_pay/internal/fault"
	"github.com/kwanza-pay/kwanza_pay/internal/user"
)

// rpcClient is what the handlers need from the RPC layer.
type rpcClient interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (user.View, error)
	GetUser(ctx context.Context, id string) (user.View, error)
}

// Handler translates public HTTP requests into RPC calls and RPC outcomes
// into HTTP statuses. Outbound payloads are sanitized here: the credential
// hash is stripped and the private key never reaches this layer at all.
type Handler struct {
	client rpcClient
	logger *slog.Logger
}

// NewHandler constructs the gateway handler.
func NewHandler(client rpcClient, logger *slog.Logger) *Handler {
	return &Handler{client: client, logger: logger}
}

// userPayload is the sanitized public projection: no plaintext password, no
// credential hash, no private key.
type userPayload struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	DOB           string `json:"dob"`
	MobileNumber  string `json:"mobno"`
	WalletAddress string `json:"wallet_address"`
	Message       string `json:"message"`
}

func sanitize(v user.View, message string) userPayload {
	return userPayload{
		ID:            v.ID,
		Username:      v.Username,
		Email:         v.Email,
		DOB:           v.DateOfBirth,
		MobileNumber:  v.MobileNumber,
		WalletAddress: v.WalletAddress,
		Message:       message,
	}
}

// CreateUser handles POST /create-user.
func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed request body")
	}

	v, err := h.client.CreateUser(c.UserContext(), req)
	if err != nil {
		return h.respondError(c, err)
	}

	h.logger.Info("gateway.create-user completed",
		slog.String("user_id", v.ID),
		slog.String("username", v.Username),
	)
	return c.Status(http.StatusOK).JSON(sanitize(v, "User registered successfully!"))
}

// GetUser handles GET /get-user/{id}.
func (h *Handler) GetUser(c *fiber.Ctx) error {
	v, err := h.client.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(sanitize(v, v.Message))
}

// respondError collapses the taxonomy into status plus generic body text;
// internal diagnostics stay in the logs.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	kind := fault.KindOf(err)
	if kind == fault.KindInternal {
		h.logger.Error("gateway.rpc call failed",
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
		return fiber.NewError(http.StatusInternalServerError, "Failed to process request")
	}
	return fiber.NewError(fault.HTTPStatus(kind), fault.MessageOf(err))
}
