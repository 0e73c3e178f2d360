package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/dafibh/fortuna/caja-backend/internal/domain"
	"github.com/dafibh/fortuna/caja-backend/internal/middleware"
	"github.com/dafibh/fortuna/caja-backend/internal/service"
	"github.com/dafibh/fortuna/caja-backend/internal/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
	publisher        websocket.EventPublisher
	now              func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService, publisher websocket.EventPublisher) *DashboardHandler {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &DashboardHandler{
		dashboardService: dashboardService,
		publisher:        publisher,
		now:              time.Now,
	}
}

// CashSummaryResponse represents the cash summary cards
type CashSummaryResponse struct {
	DailyRevenue    string `json:"dailyRevenue"`
	InvoicesToday   int    `json:"invoicesToday"`
	PaidInvoices    int    `json:"paidInvoices"`
	PendingInvoices int    `json:"pendingInvoices"`
	PendingAmount   string `json:"pendingAmount"`
	VoidedInvoices  int    `json:"voidedInvoices"`
	VoidedAmount    string `json:"voidedAmount"`
	RevenueGrowth   string `json:"revenueGrowth"`
}

// PaymentMethodsResponse represents revenue split by payment method
type PaymentMethodsResponse struct {
	Cash     string `json:"cash"`
	Debit    string `json:"debit"`
	Credit   string `json:"credit"`
	Transfer string `json:"transfer"`
}

// RegisterControlResponse represents the cash register reconciliation
type RegisterControlResponse struct {
	OpeningBalance    string `json:"openingBalance"`
	Expenses          string `json:"expenses"`
	CurrentBalance    string `json:"currentBalance"`
	BalanceDifference string `json:"balanceDifference"`
	ExchangeRate      string `json:"exchangeRate"`
}

// DashboardSummaryResponse represents the dashboard summary API response
type DashboardSummaryResponse struct {
	Today          string                  `json:"today"`
	State          string                  `json:"state"`
	ActivatedAt    time.Time               `json:"activatedAt"`
	Cash           CashSummaryResponse     `json:"cash"`
	PaymentMethods PaymentMethodsResponse  `json:"paymentMethods"`
	Register       RegisterControlResponse `json:"register"`
	Account        *domain.Account         `json:"account"`
}

// InvoiceResponse represents an invoice row with its tag severities
type InvoiceResponse struct {
	Number         string          `json:"number"`
	Client         string          `json:"client"`
	Time           string          `json:"time"`
	Amount         string          `json:"amount"`
	PaymentMethod  string          `json:"paymentMethod"`
	MethodSeverity domain.Severity `json:"methodSeverity"`
	Status         string          `json:"status"`
	StatusSeverity domain.Severity `json:"statusSeverity"`
}

// ChartDatasetResponse is a chart series with numeric values
type ChartDatasetResponse struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	Fill            bool      `json:"fill"`
	BorderColor     string    `json:"borderColor"`
	Tension         float64   `json:"tension"`
	BackgroundColor string    `json:"backgroundColor"`
}

// ChartResponse represents the sales chart
type ChartResponse struct {
	Labels   []string               `json:"labels"`
	Datasets []ChartDatasetResponse `json:"datasets"`
	Options  map[string]interface{} `json:"options"`
}

// ExchangeRateResponse represents a refreshed exchange rate
type ExchangeRateResponse struct {
	ExchangeRate string `json:"exchangeRate"`
}

// SeverityResponse represents classification results
type SeverityResponse struct {
	Status         string          `json:"status,omitempty"`
	StatusSeverity domain.Severity `json:"statusSeverity,omitempty"`
	Method         string          `json:"method,omitempty"`
	MethodSeverity domain.Severity `json:"methodSeverity,omitempty"`
}

// Activate godoc
// @Summary Open the dashboard
// @Description Activate the caller's dashboard view and load today's figures
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 201 {object} DashboardSummaryResponse
// @Failure 401 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /dashboard/activate [post]
func (h *DashboardHandler) Activate(c echo.Context) error {
	subject := middleware.GetAuth0ID(c)
	if subject == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	view, err := h.dashboardService.Open(c.Request().Context(), subject)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrViewActive):
			return NewConflictError(c, "Dashboard already active")
		case errors.Is(err, domain.ErrSnapshotUnavailable):
			log.Warn().Err(err).Str("subject", subject).Msg("Dashboard data unavailable")
			return NewServiceUnavailableError(c, "Dashboard data is temporarily unavailable")
		default:
			log.Error().Err(err).Str("subject", subject).Msg("Failed to activate dashboard")
			return NewInternalError(c, "Failed to activate dashboard")
		}
	}

	return c.JSON(http.StatusCreated, h.toSummaryResponse(view))
}

// Deactivate godoc
// @Summary Close the dashboard
// @Description Deactivate the caller's dashboard view and release its subscription
// @Tags dashboard
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /dashboard [delete]
func (h *DashboardHandler) Deactivate(c echo.Context) error {
	subject := middleware.GetAuth0ID(c)
	if subject == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	if err := h.dashboardService.Close(subject); err != nil {
		return NewNotFoundError(c, "Dashboard not active")
	}
	return c.NoContent(http.StatusNoContent)
}

// GetSummary godoc
// @Summary Get dashboard summary
// @Description Cash summary, payment methods and register control of the active view
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardSummaryResponse
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	view, err := h.activeView(c)
	if err != nil || view == nil {
		return err
	}
	return c.JSON(http.StatusOK, h.toSummaryResponse(view))
}

// GetInvoices godoc
// @Summary List today's invoices
// @Description Invoices of the active view in display order with tag severities
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {array} InvoiceResponse
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /dashboard/invoices [get]
func (h *DashboardHandler) GetInvoices(c echo.Context) error {
	view, err := h.activeView(c)
	if err != nil || view == nil {
		return err
	}

	invoices := view.Invoices()
	response := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		response[i] = InvoiceResponse{
			Number:         inv.Number,
			Client:         inv.Client,
			Time:           inv.Time,
			Amount:         inv.Amount.StringFixed(2),
			PaymentMethod:  string(inv.PaymentMethod),
			MethodSeverity: view.ClassifyPaymentMethod(inv.PaymentMethod),
			Status:         string(inv.Status),
			StatusSeverity: view.ClassifyInvoiceStatus(inv.Status),
		}
	}

	return c.JSON(http.StatusOK, response)
}

// GetChart godoc
// @Summary Get hourly sales chart
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ChartResponse
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /dashboard/chart [get]
func (h *DashboardHandler) GetChart(c echo.Context) error {
	view, err := h.activeView(c)
	if err != nil || view == nil {
		return err
	}

	chart := view.Chart()
	datasets := make([]ChartDatasetResponse, len(chart.Datasets))
	for i, ds := range chart.Datasets {
		data := make([]float64, len(ds.Data))
		for j, v := range ds.Data {
			data[j] = v.InexactFloat64()
		}
		datasets[i] = ChartDatasetResponse{
			Label:           ds.Label,
			Data:            data,
			Fill:            ds.Fill,
			BorderColor:     ds.BorderColor,
			Tension:         ds.Tension,
			BackgroundColor: ds.BackgroundColor,
		}
	}

	return c.JSON(http.StatusOK, ChartResponse{
		Labels:   chart.Labels,
		Datasets: datasets,
		Options:  chart.Options,
	})
}

// RefreshExchangeRate godoc
// @Summary Refresh the exchange rate
// @Description Draw a new exchange rate within one unit of the base rate and notify the caller's clients
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ExchangeRateResponse
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Router /dashboard/exchange-rate/refresh [post]
func (h *DashboardHandler) RefreshExchangeRate(c echo.Context) error {
	view, err := h.activeView(c)
	if err != nil || view == nil {
		return err
	}

	rate, err := view.RefreshExchangeRate()
	if err != nil {
		if errors.Is(err, domain.ErrViewInactive) {
			return NewNotFoundError(c, "Dashboard not active")
		}
		log.Error().Err(err).Str("subject", view.Subject()).Msg("Failed to refresh exchange rate")
		return NewInternalError(c, "Failed to refresh exchange rate")
	}

	formatted := rate.StringFixed(2)
	h.publisher.Publish(view.Subject(), websocket.ExchangeRateUpdated(formatted))

	return c.JSON(http.StatusOK, ExchangeRateResponse{ExchangeRate: formatted})
}

// GetSeverity godoc
// @Summary Classify an invoice status or payment method
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param status query string false "Invoice status (English or Spanish label)"
// @Param method query string false "Payment method (English or Spanish label)"
// @Success 200 {object} SeverityResponse
// @Failure 400 {object} ProblemDetails
// @Router /dashboard/severity [get]
func (h *DashboardHandler) GetSeverity(c echo.Context) error {
	statusParam := c.QueryParam("status")
	methodParam := c.QueryParam("method")
	if statusParam == "" && methodParam == "" {
		return NewValidationError(c, "Nothing to classify", []ValidationError{
			{Field: "status", Message: "Provide status or method"},
			{Field: "method", Message: "Provide status or method"},
		})
	}

	var response SeverityResponse
	if statusParam != "" {
		status := domain.ParseInvoiceStatus(statusParam)
		response.Status = string(status)
		response.StatusSeverity = domain.ClassifyInvoiceStatus(status)
	}
	if methodParam != "" {
		method := domain.ParsePaymentMethod(methodParam)
		response.Method = string(method)
		response.MethodSeverity = domain.ClassifyPaymentMethod(method)
	}

	return c.JSON(http.StatusOK, response)
}

// activeView returns the caller's view. When it returns a nil view the
// error response has already been written.
func (h *DashboardHandler) activeView(c echo.Context) (*service.DashboardView, error) {
	subject := middleware.GetAuth0ID(c)
	if subject == "" {
		return nil, NewUnauthorizedError(c, "Authentication required")
	}

	view, err := h.dashboardService.View(subject)
	if err != nil {
		return nil, NewNotFoundError(c, "Dashboard not active")
	}
	return view, nil
}

func (h *DashboardHandler) toSummaryResponse(view *service.DashboardView) DashboardSummaryResponse {
	snap := view.Snapshot()
	return DashboardSummaryResponse{
		Today:       h.now().Format("2006-01-02"),
		State:       string(view.State()),
		ActivatedAt: view.ActivatedAt(),
		Cash: CashSummaryResponse{
			DailyRevenue:    snap.DailyRevenue.StringFixed(2),
			InvoicesToday:   snap.InvoicesToday,
			PaidInvoices:    snap.PaidInvoices,
			PendingInvoices: snap.PendingInvoices,
			PendingAmount:   snap.PendingAmount.StringFixed(2),
			VoidedInvoices:  snap.VoidedInvoices,
			VoidedAmount:    snap.VoidedAmount.StringFixed(2),
			RevenueGrowth:   snap.RevenueGrowth.StringFixed(1),
		},
		PaymentMethods: PaymentMethodsResponse{
			Cash:     snap.CashAmount.StringFixed(2),
			Debit:    snap.DebitAmount.StringFixed(2),
			Credit:   snap.CreditAmount.StringFixed(2),
			Transfer: snap.TransferAmount.StringFixed(2),
		},
		Register: RegisterControlResponse{
			OpeningBalance:    snap.OpeningBalance.StringFixed(2),
			Expenses:          snap.Expenses.StringFixed(2),
			CurrentBalance:    snap.CurrentBalance.StringFixed(2),
			BalanceDifference: snap.BalanceDifference().StringFixed(2),
			ExchangeRate:      snap.ExchangeRate.StringFixed(2),
		},
		Account: view.Account(),
	}
}
