// Package http provides the inbound HTTP adapter for the marketplace.
// It translates HTTP requests into commands and queries and maps domain
// errors onto HTTP status codes.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"gharkakhana/internal/core/application/usecases/commands"
	"gharkakhana/internal/core/application/usecases/queries"
	"gharkakhana/internal/core/domain/model/kernel"
	"gharkakhana/internal/core/domain/model/meal"
	"gharkakhana/internal/core/domain/model/order"
	"gharkakhana/internal/core/domain/services"
	"gharkakhana/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlaceOrderRequest is the body of POST /api/v1/orders.
type PlaceOrderRequest struct {
	UserID              string                  `json:"userId"`
	Items               []PlaceOrderItemRequest `json:"items"`
	PickupDate          string                  `json:"pickupDate"`
	PickupTime          string                  `json:"pickupTime"`
	ContactPhone        string                  `json:"contactPhone"`
	SpecialInstructions string                  `json:"specialInstructions"`
}

// PlaceOrderItemRequest is one line item of a place-order request.
type PlaceOrderItemRequest struct {
	MealID   string `json:"mealId"`
	Quantity int    `json:"quantity"`
}

// TransitionStatusRequest is the body of PATCH /api/v1/orders/:orderID/status.
type TransitionStatusRequest struct {
	Status string `json:"status"`
}

// OrderItem is the JSON representation of one order line item.
type OrderItem struct {
	MealID    string `json:"mealId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Subtotal  string `json:"subtotal"`
}

// Order is the JSON representation of an order.
type Order struct {
	ID                  string      `json:"id"`
	Number              string      `json:"number"`
	UserID              string      `json:"userId"`
	ChefID              string      `json:"chefId"`
	TotalAmount         string      `json:"totalAmount"`
	PickupDate          string      `json:"pickupDate"`
	PickupTime          string      `json:"pickupTime"`
	ContactPhone        string      `json:"contactPhone"`
	SpecialInstructions string      `json:"specialInstructions,omitempty"`
	Status              string      `json:"status"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
	Items               []OrderItem `json:"items"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	placeOrderHandler      commands.PlaceOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderStatusCommandHandler

	getUserOrdersHandler   queries.GetUserOrdersQueryHandler
	getChefOrdersHandler   queries.GetChefOrdersQueryHandler
	getChefScheduleHandler queries.GetChefScheduleQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderStatusCommandHandler,
	getUserOrdersHandler queries.GetUserOrdersQueryHandler,
	getChefOrdersHandler queries.GetChefOrdersQueryHandler,
	getChefScheduleHandler queries.GetChefScheduleQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		placeOrderHandler:      placeOrderHandler,
		transitionOrderHandler: transitionOrderHandler,
		getUserOrdersHandler:   getUserOrdersHandler,
		getChefOrdersHandler:   getChefOrdersHandler,
		getChefScheduleHandler: getChefScheduleHandler,
		logger:                 logger.With("component", "http_server"),
	}
}

// RegisterRoutes wires the server's handlers into the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.PlaceOrder)
	v1.PATCH("/orders/:orderID/status", s.TransitionOrderStatus)
	v1.GET("/users/:userID/orders", s.GetUserOrders)
	v1.GET("/chefs/:chefID/orders", s.GetChefOrders)
	v1.GET("/chefs/:chefID/schedule", s.GetChefSchedule)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// PlaceOrder handles POST /api/v1/orders - places a new order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return badRequest(ctx, "Invalid user ID: "+err.Error())
	}

	lineItems := make([]commands.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		mealID, idErr := kernel.UUIDFromString(item.MealID)
		if idErr != nil {
			return badRequest(ctx, "Invalid meal ID: "+idErr.Error())
		}

		lineItem, liErr := commands.NewLineItem(mealID, item.Quantity)
		if liErr != nil {
			return badRequest(ctx, "Invalid line item: "+liErr.Error())
		}
		lineItems = append(lineItems, lineItem)
	}

	pickupDate, err := time.Parse(dateLayout, req.PickupDate)
	if err != nil {
		return badRequest(ctx, "Invalid pickup date, expected YYYY-MM-DD")
	}

	pickupTime, err := kernel.TimeOfDayFromString(req.PickupTime)
	if err != nil {
		return badRequest(ctx, "Invalid pickup time, expected HH:MM")
	}

	cmd, err := commands.NewPlaceOrderCommand(userID, lineItems,
		pickupDate, pickupTime, req.ContactPhone, req.SpecialInstructions)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	placed, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.orderError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromDomain(placed))
}

// TransitionOrderStatus handles PATCH /api/v1/orders/:orderID/status -
// moves an order along its lifecycle.
func (s *Server) TransitionOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var req TransitionStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(orderID, status)
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	updated, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil && errors.Is(err, commands.ErrReleaseIncomplete) {
		// the cancellation committed; the leaked releases need reconciliation
		s.logger.ErrorContext(ctx.Request().Context(),
			"Cancellation committed with incomplete inventory release",
			"orderId", orderID.String(), "error", err)
		return ctx.JSON(http.StatusOK, orderFromDomain(updated))
	}
	if err != nil {
		return s.orderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromDomain(updated))
}

// GetUserOrders handles GET /api/v1/users/:userID/orders - a customer's
// order history, most recent first.
func (s *Server) GetUserOrders(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.Param("userID"))
	if err != nil {
		return badRequest(ctx, "Invalid user ID: "+err.Error())
	}

	query, err := queries.NewGetUserOrdersQuery(userID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	orders, err := s.getUserOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, ordersFromQuery(orders))
}

// GetChefOrders handles GET /api/v1/chefs/:chefID/orders - a chef's
// incoming orders, optionally filtered with ?status=.
func (s *Server) GetChefOrders(ctx echo.Context) error {
	chefID, err := kernel.UUIDFromString(ctx.Param("chefID"))
	if err != nil {
		return badRequest(ctx, "Invalid chef ID: "+err.Error())
	}

	var query queries.GetChefOrdersQuery
	if raw := ctx.QueryParam("status"); raw != "" {
		status, statusErr := order.StatusFromString(raw)
		if statusErr != nil {
			return badRequest(ctx, "Invalid status: "+statusErr.Error())
		}
		query, err = queries.NewGetChefOrdersQueryWithStatus(chefID, status)
	} else {
		query, err = queries.NewGetChefOrdersQuery(chefID)
	}
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	orders, err := s.getChefOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, ordersFromQuery(orders))
}

// GetChefSchedule handles GET /api/v1/chefs/:chefID/schedule?date= - a
// chef's orders for a pickup date, earliest pickup first.
func (s *Server) GetChefSchedule(ctx echo.Context) error {
	chefID, err := kernel.UUIDFromString(ctx.Param("chefID"))
	if err != nil {
		return badRequest(ctx, "Invalid chef ID: "+err.Error())
	}

	date, err := time.Parse(dateLayout, ctx.QueryParam("date"))
	if err != nil {
		return badRequest(ctx, "Invalid date, expected YYYY-MM-DD")
	}

	query, err := queries.NewGetChefScheduleQuery(chefID, date)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	orders, err := s.getChefScheduleHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve schedule")
	}

	return ctx.JSON(http.StatusOK, ordersFromQuery(orders))
}

// orderError maps the order workflow's failure modes to HTTP statuses:
// absent objects are 404, business conflicts are 409, invalid input is 400,
// everything else is 500.
func (s *Server) orderError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return jsonError(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, meal.ErrMealNotOrderable),
		errors.Is(err, meal.ErrInsufficientInventory),
		errors.Is(err, services.ErrMixedChefOrder),
		errors.Is(err, services.ErrPickupOutsideWindow),
		errors.Is(err, order.ErrInvalidTransition):
		return jsonError(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return badRequest(ctx, err.Error())
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed", "error", err)
		return internalError(ctx, "Internal server error")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return jsonError(ctx, http.StatusBadRequest, message)
}

func internalError(ctx echo.Context, message string) error {
	return jsonError(ctx, http.StatusInternalServerError, message)
}

func jsonError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}

func orderFromDomain(aggregate *order.Order) Order {
	items := make([]OrderItem, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItem{
			MealID:    item.MealID().String(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().String(),
			Subtotal:  item.Subtotal().String(),
		})
	}

	return Order{
		ID:                  aggregate.ID().String(),
		Number:              aggregate.Number().String(),
		UserID:              aggregate.UserID().String(),
		ChefID:              aggregate.ChefID().String(),
		TotalAmount:         aggregate.TotalAmount().String(),
		PickupDate:          aggregate.PickupDate().Format(dateLayout),
		PickupTime:          aggregate.PickupTime().String(),
		ContactPhone:        aggregate.ContactPhone(),
		SpecialInstructions: aggregate.SpecialInstructions(),
		Status:              aggregate.Status().String(),
		CreatedAt:           aggregate.CreatedAt(),
		UpdatedAt:           aggregate.UpdatedAt(),
		Items:               items,
	}
}

func ordersFromQuery(responses []queries.OrderResponse) []Order {
	orders := make([]Order, 0, len(responses))
	for _, resp := range responses {
		items := make([]OrderItem, 0, len(resp.Items))
		for _, item := range resp.Items {
			items = append(items, OrderItem{
				MealID:    item.MealID.String(),
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice.String(),
				Subtotal:  item.Subtotal.String(),
			})
		}

		orders = append(orders, Order{
			ID:                  resp.ID.String(),
			Number:              resp.Number,
			UserID:              resp.UserID.String(),
			ChefID:              resp.ChefID.String(),
			TotalAmount:         resp.TotalAmount.String(),
			PickupDate:          resp.PickupDate.Format(dateLayout),
			PickupTime:          resp.PickupTime.String(),
			ContactPhone:        resp.ContactPhone,
			SpecialInstructions: resp.SpecialInstructions,
			Status:              resp.Status.String(),
			CreatedAt:           resp.CreatedAt,
			UpdatedAt:           resp.UpdatedAt,
			Items:               items,
		})
	}

	return orders
}
