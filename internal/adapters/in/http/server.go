// Package http is the REST surface of the service. Handlers translate
// requests into commands and queries and map core errors onto status codes;
// no business rules live here.
package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	addCartItemHandler          commands.AddCartItemCommandHandler
	updateCartItemHandler       commands.UpdateCartItemCommandHandler
	bulkUpdateCartHandler       commands.BulkUpdateCartCommandHandler
	resetCartHandler            commands.ResetCartCommandHandler
	checkoutHandler             commands.CheckoutCommandHandler
	updateOrderStatusHandler    commands.UpdateOrderStatusCommandHandler
	assignDriverHandler         commands.AssignDriverCommandHandler
	updateDriverLocationHandler commands.UpdateDriverLocationCommandHandler

	// Query handlers
	getCartHandler             queries.GetCartQueryHandler
	getOrderHandler            queries.GetOrderQueryHandler
	getTrackingSnapshotHandler queries.GetTrackingSnapshotQueryHandler
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	addCartItemHandler commands.AddCartItemCommandHandler,
	updateCartItemHandler commands.UpdateCartItemCommandHandler,
	bulkUpdateCartHandler commands.BulkUpdateCartCommandHandler,
	resetCartHandler commands.ResetCartCommandHandler,
	checkoutHandler commands.CheckoutCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	assignDriverHandler commands.AssignDriverCommandHandler,
	updateDriverLocationHandler commands.UpdateDriverLocationCommandHandler,
	getCartHandler queries.GetCartQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getTrackingSnapshotHandler queries.GetTrackingSnapshotQueryHandler,
) *Server {
	return &Server{
		addCartItemHandler:          addCartItemHandler,
		updateCartItemHandler:       updateCartItemHandler,
		bulkUpdateCartHandler:       bulkUpdateCartHandler,
		resetCartHandler:            resetCartHandler,
		checkoutHandler:             checkoutHandler,
		updateOrderStatusHandler:    updateOrderStatusHandler,
		assignDriverHandler:         assignDriverHandler,
		updateDriverLocationHandler: updateDriverLocationHandler,
		getCartHandler:              getCartHandler,
		getOrderHandler:             getOrderHandler,
		getTrackingSnapshotHandler:  getTrackingSnapshotHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1, all routes behind the
// actor middleware.
func (s *Server) RegisterRoutes(e *echo.Echo, secret []byte) {
	api := e.Group("/api/v1", ActorMiddleware(secret))

	api.GET("/cart", s.GetCart)
	api.POST("/cart/items", s.AddCartItem)
	api.PATCH("/cart/items/:lineId", s.UpdateCartItem)
	api.POST("/cart/bulk-update", s.BulkUpdateCart)
	api.DELETE("/cart", s.ResetCart)

	api.POST("/orders", s.Checkout)
	api.GET("/orders/:orderId", s.GetOrder)
	api.GET("/orders/:orderId/tracking", s.GetTracking)
	api.PATCH("/orders/:orderId/status", s.UpdateOrderStatus)
	api.PATCH("/orders/:orderId/delivery-person", s.AssignDriver)
	api.PATCH("/orders/:orderId/delivery-location", s.UpdateDriverLocation)
}

// GetCart handles GET /api/v1/cart - returns the caller's cart.
func (s *Server) GetCart(ctx echo.Context) error {
	query, err := queries.NewGetCartQuery(actorFrom(ctx).ID)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.getCartHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, cartResponseFrom(view))
}

// AddCartItem handles POST /api/v1/cart/items - adds a dish to the cart.
func (s *Server) AddCartItem(ctx echo.Context) error {
	var request AddCartItemRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewAddCartItemCommand(
		actorFrom(ctx).ID,
		request.RestaurantID,
		request.DishID,
		request.PortionID,
		request.Quantity,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.addCartItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return s.GetCart(ctx)
}

// UpdateCartItem handles PATCH /api/v1/cart/items/:lineId - changes one
// line's quantity; zero removes the line.
func (s *Server) UpdateCartItem(ctx echo.Context) error {
	var request UpdateCartItemRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	lineID, err := kernel.UUIDFromString(ctx.Param("lineId"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateCartItemCommand(actorFrom(ctx).ID, lineID, request.Quantity)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.updateCartItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return s.GetCart(ctx)
}

// BulkUpdateCart handles POST /api/v1/cart/bulk-update - applies several
// quantity changes in one transaction. Either all apply or none do.
func (s *Server) BulkUpdateCart(ctx echo.Context) error {
	var request BulkUpdateCartRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	updates := make([]commands.LineUpdate, 0, len(request.Updates))
	for _, update := range request.Updates {
		lineID, err := kernel.UUIDFromString(update.LineID)
		if err != nil {
			return writeError(ctx, err)
		}
		updates = append(updates, commands.LineUpdate{
			LineID:   lineID,
			Quantity: update.Quantity,
		})
	}

	cmd, err := commands.NewBulkUpdateCartCommand(actorFrom(ctx).ID, updates)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.bulkUpdateCartHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return s.GetCart(ctx)
}

// ResetCart handles DELETE /api/v1/cart - empties the caller's cart.
func (s *Server) ResetCart(ctx echo.Context) error {
	cmd, err := commands.NewResetCartCommand(actorFrom(ctx).ID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.resetCartHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Checkout handles POST /api/v1/orders - places an order from the caller's
// cart and returns the created order.
func (s *Server) Checkout(ctx echo.Context) error {
	var request CheckoutRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	fulfillment, err := order.FulfillmentFromString(request.Fulfillment)
	if err != nil {
		return writeError(ctx, err)
	}

	var address *commands.CheckoutAddress
	if request.Address != nil {
		address = &commands.CheckoutAddress{
			Street:     request.Address.Street,
			City:       request.Address.City,
			PostalCode: request.Address.PostalCode,
			Lat:        request.Address.Lat,
			Lng:        request.Address.Lng,
		}
	}

	cmd, err := commands.NewCheckoutCommand(
		actorFrom(ctx).ID,
		fulfillment,
		request.PaymentMethod,
		address,
		request.TaxOverride,
		request.DeliveryFeeOverride,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	businessID, err := s.checkoutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(businessID)
	if err != nil {
		return writeError(ctx, err)
	}
	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, orderResponseFrom(view))
}

// GetOrder handles GET /api/v1/orders/:orderId - returns one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	query, err := queries.NewGetOrderQuery(ctx.Param("orderId"))
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderResponseFrom(view))
}

// GetTracking handles GET /api/v1/orders/:orderId/tracking - returns the
// current tracking snapshot for clients that poll instead of subscribing.
func (s *Server) GetTracking(ctx echo.Context) error {
	query, err := queries.NewGetTrackingSnapshotQuery(ctx.Param("orderId"))
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.getTrackingSnapshotHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, TrackingResponse{
		Order:    view.Order,
		Tracking: view.Tracking,
	})
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:orderId/status - moves
// the order along its lifecycle.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	var request UpdateOrderStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	newStatus, err := order.StatusFromString(request.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(
		ctx.Param("orderId"),
		newStatus,
		actorFrom(ctx).ID,
		request.Notes,
		request.EstimatedReadyMinutes,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return s.GetOrder(ctx)
}

// AssignDriver handles PATCH /api/v1/orders/:orderId/delivery-person -
// attaches a delivery person to the order.
func (s *Server) AssignDriver(ctx echo.Context) error {
	var request AssignDriverRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	driver, err := order.NewDriverInfo(request.ID, request.Name, request.Phone, request.Vehicle)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAssignDriverCommand(ctx.Param("orderId"), driver)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.assignDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return s.GetOrder(ctx)
}

// UpdateDriverLocation handles PATCH /api/v1/orders/:orderId/delivery-location -
// records the driver's position and feeds the live tracking view.
func (s *Server) UpdateDriverLocation(ctx echo.Context) error {
	var request UpdateDriverLocationRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewUpdateDriverLocationCommand(
		ctx.Param("orderId"),
		request.Lat,
		request.Lng,
		actorFrom(ctx).ID,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.updateDriverLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
