package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minhvd/warehouse/internal/core/domain"
	"github.com/minhvd/warehouse/internal/core/service"
)

const dateLayout = "2006-01-02"

// HTTPHandler exposes the fulfillment core over HTTP. The caller's identity
// arrives in X-Actor-Email / X-Actor-Role headers, set by the upstream
// gateway that owns authentication; this boundary trusts them.
type HTTPHandler struct {
	fulfillment *service.FulfillmentService
	queries     *service.QueryService
}

func NewHTTPHandler(fulfillment *service.FulfillmentService, queries *service.QueryService) *HTTPHandler {
	return &HTTPHandler{fulfillment: fulfillment, queries: queries}
}

func (h *HTTPHandler) Register(r *gin.Engine) {
	r.GET("/health", h.HealthCheck)

	api := r.Group("/api")
	api.POST("/orders", h.SubmitOrder)
	api.GET("/orders", h.ListOrders)
	api.POST("/orders/:id/resolve", h.ResolveOrder)
	api.POST("/stock", h.Restock)
	api.POST("/stock/remove", h.RemoveStock)
	api.GET("/stock", h.ListStock)
	api.GET("/dashboard", h.Dashboard)
}

type submitOrderRequest struct {
	RequestID string `json:"request_id"`
	ItemCode  string `json:"item_code"`
	Quantity  int    `json:"quantity"`
	Recipient string `json:"recipient"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

type resolveOrderRequest struct {
	Decision string `json:"decision"`
}

type stockRequest struct {
	ItemCode string `json:"item_code"`
	Amount   int    `json:"amount"`
}

type orderResponse struct {
	ID          string    `json:"id"`
	ItemCode    string    `json:"item_code"`
	Quantity    int       `json:"quantity"`
	Recipient   string    `json:"recipient"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	SenderEmail string    `json:"sender_email"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type stockResponse struct {
	ItemCode  string    `json:"item_code"`
	Quantity  int       `json:"quantity"`
	Reserved  int       `json:"reserved"`
	Available int       `json:"available"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:          o.ID,
		ItemCode:    o.ItemCode,
		Quantity:    o.Quantity,
		Recipient:   o.Recipient,
		Address:     o.Address,
		Phone:       o.Phone,
		SenderEmail: o.SenderEmail,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toStockResponse(e domain.StockEntry) stockResponse {
	return stockResponse{
		ItemCode:  e.ItemCode,
		Quantity:  e.Quantity,
		Reserved:  e.Reserved,
		Available: e.Available(),
		UpdatedAt: e.UpdatedAt,
	}
}

func (h *HTTPHandler) SubmitOrder(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req submitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.fulfillment.SubmitOrder(c.Request.Context(), actor, service.SubmitOrderInput{
		RequestID: req.RequestID,
		ItemCode:  req.ItemCode,
		Quantity:  req.Quantity,
		Recipient: req.Recipient,
		Address:   req.Address,
		Phone:     req.Phone,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

func (h *HTTPHandler) ResolveOrder(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req resolveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	decision := domain.OrderStatus(req.Decision)
	if !domain.ValidDecision(decision) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "decision must be approved or rejected"})
		return
	}

	order, err := h.fulfillment.ResolveOrder(c.Request.Context(), actor, c.Param("id"), decision)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func (h *HTTPHandler) ListOrders(c *gin.Context) {
	if _, ok := requireActor(c, domain.OpListOrders); !ok {
		return
	}

	filter, err := orderFilterFrom(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orders, err := h.queries.ListOrders(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, toOrderResponse(order))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HTTPHandler) Restock(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.fulfillment.Restock(c.Request.Context(), actor, req.ItemCode, req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toStockResponse(*entry))
}

func (h *HTTPHandler) RemoveStock(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.fulfillment.RemoveStock(c.Request.Context(), actor, req.ItemCode, req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toStockResponse(*entry))
}

func (h *HTTPHandler) ListStock(c *gin.Context) {
	if _, ok := requireActor(c, domain.OpListStock); !ok {
		return
	}

	entries, err := h.queries.ListStock(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]stockResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, toStockResponse(entry))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HTTPHandler) Dashboard(c *gin.Context) {
	if _, ok := requireActor(c, domain.OpListStock); !ok {
		return
	}

	summary, err := h.queries.Dashboard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *HTTPHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func actorFrom(c *gin.Context) (domain.Actor, bool) {
	actor := domain.Actor{
		Email: c.GetHeader("X-Actor-Email"),
		Role:  domain.Role(c.GetHeader("X-Actor-Role")),
	}
	if actor.Email == "" || !domain.KnownRole(actor.Role) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or unknown actor"})
		return domain.Actor{}, false
	}
	return actor, true
}

func requireActor(c *gin.Context, op domain.Operation) (domain.Actor, bool) {
	actor, ok := actorFrom(c)
	if !ok {
		return domain.Actor{}, false
	}
	if !actor.Can(op) {
		c.JSON(http.StatusForbidden, gin.H{"error": domain.ErrUnauthorized.Error()})
		return domain.Actor{}, false
	}
	return actor, true
}

// orderFilterFrom parses ?status=&from=&to= query params. Dates are calendar
// days; "to" is inclusive through the end of its day.
func orderFilterFrom(c *gin.Context) (domain.OrderFilter, error) {
	var filter domain.OrderFilter

	if status := c.Query("status"); status != "" {
		s := domain.OrderStatus(status)
		if s != domain.OrderStatusPending && !s.Terminal() {
			return filter, errors.New("unknown status filter")
		}
		filter.Statuses = []domain.OrderStatus{s}
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return filter, errors.New("from must be YYYY-MM-DD")
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return filter, errors.New("to must be YYYY-MM-DD")
		}
		filter.To = t.Add(24*time.Hour - time.Second)
	}

	return filter, nil
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, domain.ErrItemNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrDuplicateRequest):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, domain.ErrInvalidItemCode),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrMissingRecipient),
		errors.Is(err, domain.ErrMissingSender):
		status = http.StatusBadRequest
		message = err.Error()
	}

	c.JSON(status, gin.H{"error": message})
}
