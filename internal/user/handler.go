package user

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/kwanza-pay/kwanza_pay/internal/fault"
)

// Handler exposes the user RPC surface.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs the user RPC handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type createUserRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	DOB          string `json:"dob"`
	MobileNumber string `json:"mobno"`
}

type getUserRequest struct {
	ID string `json:"id"`
}

// CreateUser handles user.UserService/CreateUser.
func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fault.Wrap(fault.KindValidation, "malformed request body", err))
	}

	v, err := h.service.CreateUser(c.UserContext(), CreateInput{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		DateOfBirth:  req.DOB,
		MobileNumber: req.MobileNumber,
	})
	if err != nil {
		h.logger.Warn("user.create failed",
			slog.String("username", req.Username),
			slog.String("code", fault.Code(fault.KindOf(err))),
			slog.Any("error", err),
		)
		return respondError(c, err)
	}

	h.logger.Info("user.create completed",
		slog.String("user_id", v.ID),
		slog.String("wallet_address", v.WalletAddress),
	)
	return c.Status(http.StatusOK).JSON(v)
}

// GetUser handles user.UserService/GetUser.
func (h *Handler) GetUser(c *fiber.Ctx) error {
	var req getUserRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fault.Wrap(fault.KindValidation, "malformed request body", err))
	}

	v, err := h.service.GetUser(c.UserContext(), req.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(v)
}

// respondError renders the closed error taxonomy as an RPC error payload.
// Only the classified code and boundary message go on the wire.
func respondError(c *fiber.Ctx, err error) error {
	kind := fault.KindOf(err)
	return c.Status(fault.HTTPStatus(kind)).JSON(fiber.Map{
		"code": fault.Code(kind),
		"msg":  fault.MessageOf(err),
	})
}
