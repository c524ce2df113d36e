package wallet

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/kwanza-pay/kwanza_pay/internal/fault"
)

// Handler exposes the wallet RPC surface.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs the wallet RPC handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type createWalletRequest struct {
	UserID string          `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
}

// CreateWallet handles wallet.WalletService/CreateWallet.
func (h *Handler) CreateWallet(c *fiber.Ctx) error {
	var req createWalletRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fault.Wrap(fault.KindValidation, "malformed request body", err))
	}

	v, err := h.service.Create(c.UserContext(), CreateInput{UserID: req.UserID, Amount: req.Amount})
	if err != nil {
		return respondError(c, err)
	}

	h.logger.Info("wallet.create completed",
		slog.String("wallet_id", v.ID),
		slog.String("user_id", v.UserID),
	)
	return c.Status(http.StatusOK).JSON(v)
}

func respondError(c *fiber.Ctx, err error) error {
	kind := fault.KindOf(err)
	return c.Status(fault.HTTPStatus(kind)).JSON(fiber.Map{
		"code": fault.Code(kind),
		"msg":  fault.MessageOf(err),
	})
}
