package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/frauddetect/fraud-detection/internal/transaction/api/metrics"
	"github.com/frauddetect/fraud-detection/internal/transaction/core/domain"
	"github.com/frauddetect/fraud-detection/internal/transaction/core/ports"
)

// ResultHandler handles fraud-prediction results for transactions.
type ResultHandler struct {
	service ports.TransactionService
}

func NewResultHandler(service ports.TransactionService) *ResultHandler {
	return &ResultHandler{service: service}
}

// Pointer fields so that false / 0 are distinguishable from absent.
type recordResultRequest struct {
	IsFraudulent *bool    `json:"is_fraudulent" validate:"required"`
	Confidence   *float64 `json:"confidence"    validate:"required,gte=0,lte=1"`
}

// Record handles POST /transactions/:id/results.
//
// @Summary      Record a fraud prediction for a transaction
// @Tags         results
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Transaction ID"
// @Param        body  body      recordResultRequest  true  "Prediction"
// @Success      201   {object}  domain.Prediction
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /transactions/{id}/results [post]
func (h *ResultHandler) Record(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req recordResultRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.service.RecordPrediction(c.Request().Context(), ports.RecordPredictionInput{
		TransactionID: id,
		IsFraudulent:  *req.IsFraudulent,
		Confidence:    *req.Confidence,
	})
	if err != nil {
		return err
	}

	metrics.PredictionsRecordedTotal.WithLabelValues(strconv.FormatBool(p.IsFraudulent)).Inc()
	return c.JSON(http.StatusCreated, p)
}

// List handles GET /transactions/:id/results, newest first.
//
// @Summary      List fraud predictions for a transaction
// @Tags         results
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Transaction ID"
// @Success      200  {array}   domain.Prediction
// @Failure      404  {object}  map[string]string
// @Router       /transactions/{id}/results [get]
func (h *ResultHandler) List(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	predictions, err := h.service.ListPredictions(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if predictions == nil {
		predictions = []*domain.Prediction{}
	}

	return c.JSON(http.StatusOK, predictions)
}
