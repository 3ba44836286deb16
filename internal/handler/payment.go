package handler

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shieldsupport/backend/internal/middleware"
	"github.com/shieldsupport/backend/internal/repository"
	"github.com/shieldsupport/backend/internal/server"
	"github.com/shieldsupport/backend/internal/validation"
)

// PaymentHandler maintains the mock payment ledger. There is no processor
// behind it; every payment completes immediately with a generated
// transaction id.
type PaymentHandler struct {
	Handler
	payments *repository.PaymentRepository
}

func NewPaymentHandler(s *server.Server, payments *repository.PaymentRepository) *PaymentHandler {
	return &PaymentHandler{
		Handler:  NewHandler(s),
		payments: payments,
	}
}

type CreatePaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Plan   string  `json:"plan" validate:"required"`
}

func (r *CreatePaymentRequest) Validate() error {
	return validation.Struct(r)
}

func (h *PaymentHandler) Create(c echo.Context, req *CreatePaymentRequest) (*repository.Payment, error) {
	transactionID := fmt.Sprintf("TXN_%d", time.Now().UnixMilli())

	return h.payments.Create(
		c.Request().Context(),
		middleware.GetUserID(c),
		req.Amount,
		req.Plan,
		"Completed",
		transactionID,
	)
}

// List returns the caller's own payments.
func (h *PaymentHandler) List(c echo.Context, _ *emptyRequest) ([]*repository.Payment, error) {
	return h.payments.ListByUser(c.Request().Context(), middleware.GetUserID(c))
}

// ListAll returns the full ledger for admins.
func (h *PaymentHandler) ListAll(c echo.Context, _ *emptyRequest) ([]*repository.Payment, error) {
	return h.payments.ListAll(c.Request().Context())
}
