package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/frauddetect/fraud-detection/internal/transaction/api/metrics"
	"github.com/frauddetect/fraud-detection/internal/transaction/core/domain"
	"github.com/frauddetect/fraud-detection/internal/transaction/core/ports"
)

// TransactionHandler handles HTTP requests for transaction operations.
type TransactionHandler struct {
	service ports.TransactionService
}

func NewTransactionHandler(service ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

type createTransactionRequest struct {
	Customer  string    `json:"customer"  validate:"required"`
	VendorID  string    `json:"vendor_id" validate:"required"`
	Amount    float64   `json:"amount"    validate:"required"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"    validate:"omitempty,oneof=submitted accepted rejected"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=submitted accepted rejected"`
}

// Create handles POST /transactions.
//
// @Summary      Record a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTransactionRequest  true  "Transaction"
// @Success      201   {object}  domain.Transaction
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /transactions [post]
func (h *TransactionHandler) Create(c echo.Context) error {
	var req createTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tx, err := h.service.Create(c.Request().Context(), ports.CreateTransactionInput{
		Customer:  req.Customer,
		VendorID:  req.VendorID,
		Amount:    req.Amount,
		Timestamp: req.Timestamp,
		Status:    req.Status,
	})
	if err != nil {
		return err
	}

	metrics.TransactionsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, tx)
}

// List handles GET /transactions with optional status filter and pagination.
//
// @Summary      List transactions
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        skip    query     int     false  "Rows to skip"
// @Param        limit   query     int     false  "Max rows (default 100)"
// @Success      200     {array}   domain.Transaction
// @Failure      401     {object}  map[string]string
// @Router       /transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
	filter := ports.ListTransactionsFilter{
		Status: domain.TransactionStatus(c.QueryParam("status")),
	}
	filter.Skip, _ = strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	filter.Limit, _ = strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	txs, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if txs == nil {
		txs = []*domain.Transaction{}
	}

	return c.JSON(http.StatusOK, txs)
}

// Get handles GET /transactions/:id, including the current prediction.
//
// @Summary      Get a transaction
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Transaction ID"
// @Success      200  {object}  ports.TransactionDetail
// @Failure      404  {object}  map[string]string
// @Router       /transactions/{id} [get]
func (h *TransactionHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, detail)
}

// UpdateStatus handles PUT /transactions/:id.
//
// @Summary      Update a transaction's status
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Transaction ID"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  domain.Transaction
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /transactions/{id} [put]
func (h *TransactionHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tx, err := h.service.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tx)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid transaction id")
	}
	return id, nil
}
