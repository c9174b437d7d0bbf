// Package http exposes the order ledger, courier registry, and courier
// facade operations over HTTP.
package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler           commands.PlaceOrderCommandHandler
	acceptOrderHandler          commands.AcceptOrderCommandHandler
	rejectOrderHandler          commands.RejectOrderCommandHandler
	advanceOrderStatusHandler   commands.AdvanceOrderStatusCommandHandler
	cancelOrderHandler          commands.CancelOrderCommandHandler
	settlePaymentHandler        commands.SettlePaymentCommandHandler
	claimOrderHandler           commands.ClaimOrderCommandHandler
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler
	registerCourierHandler      commands.RegisterCourierCommandHandler
	setCourierShiftHandler      commands.SetCourierShiftCommandHandler

	// Query handlers
	getAllOrdersHandler         queries.GetAllOrdersQueryHandler
	getOrderHandler             queries.GetOrderQueryHandler
	getAvailableCouriersHandler queries.GetAvailableCouriersQueryHandler
	getCourierBoardHandler      queries.GetCourierBoardQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	rejectOrderHandler commands.RejectOrderCommandHandler,
	advanceOrderStatusHandler commands.AdvanceOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	settlePaymentHandler commands.SettlePaymentCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	registerCourierHandler commands.RegisterCourierCommandHandler,
	setCourierShiftHandler commands.SetCourierShiftCommandHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAvailableCouriersHandler queries.GetAvailableCouriersQueryHandler,
	getCourierBoardHandler queries.GetCourierBoardQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:           placeOrderHandler,
		acceptOrderHandler:          acceptOrderHandler,
		rejectOrderHandler:          rejectOrderHandler,
		advanceOrderStatusHandler:   advanceOrderStatusHandler,
		cancelOrderHandler:          cancelOrderHandler,
		settlePaymentHandler:        settlePaymentHandler,
		claimOrderHandler:           claimOrderHandler,
		updateDeliveryStatusHandler: updateDeliveryStatusHandler,
		registerCourierHandler:      registerCourierHandler,
		setCourierShiftHandler:      setCourierShiftHandler,
		getAllOrdersHandler:         getAllOrdersHandler,
		getOrderHandler:             getOrderHandler,
		getAvailableCouriersHandler: getAvailableCouriersHandler,
		getCourierBoardHandler:      getCourierBoardHandler,
	}
}

// RegisterRoutes attaches all routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.POST("/orders", s.PlaceOrder)
	e.GET("/orders/all", s.GetAllOrders)
	e.GET("/orders/details/:orderId", s.GetOrderDetails)
	e.PUT("/orders/:orderId/status", s.UpdateOrderStatus)
	e.PATCH("/orders/cancel/:orderId", s.CancelOrder)
	e.POST("/orders/:orderId/claim", s.ClaimOrder)
	e.POST("/orders/:orderId/delivery-status", s.UpdateDeliveryStatus)

	e.POST("/drivers", s.RegisterDriver)
	e.GET("/drivers", s.GetDrivers)
	e.GET("/drivers/:driverId/orders", s.GetDriverOrders)
	e.PATCH("/drivers/:driverId/availability", s.SetDriverAvailability)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type placeOrderRequest struct {
	CustomerID         string      `json:"customerId"`
	RestaurantID       string      `json:"restaurantId"`
	Items              []OrderItem `json:"items"`
	PaymentMethod      string      `json:"paymentMethod"`
	RestaurantLocation Location    `json:"restaurantLocation"`
	DeliveryLocation   Location    `json:"deliveryLocation"`
}

type orderEnvelope struct {
	Order Order `json:"order"`
}

// PlaceOrder handles POST /orders - registers a new customer order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req placeOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	customerID, err := parseUUID("customerId", req.CustomerID)
	if err != nil {
		return writeError(ctx, err)
	}
	restaurantID, err := parseUUID("restaurantId", req.RestaurantID)
	if err != nil {
		return writeError(ctx, err)
	}
	paymentMethod, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return writeError(ctx, err)
	}
	restaurantLocation, err := kernel.NewGeoPoint(req.RestaurantLocation.Lat, req.RestaurantLocation.Lng)
	if err != nil {
		return writeError(ctx, err)
	}
	deliveryLocation, err := kernel.NewGeoPoint(req.DeliveryLocation.Lat, req.DeliveryLocation.Lng)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, line := range req.Items {
		item, itemErr := order.NewItem(line.Name, line.Price, line.Quantity)
		if itemErr != nil {
			return writeError(ctx, itemErr)
		}
		items = append(items, item)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(
		orderID, customerID, restaurantID, items,
		paymentMethod, restaurantLocation, deliveryLocation,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return s.respondWithOrder(ctx, http.StatusCreated, orderID)
}

// GetAllOrders handles GET /orders/all - retrieves every order on record.
func (s *Server) GetAllOrders(ctx echo.Context) error {
	views, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]Order, len(views))
	for i, view := range views {
		response[i] = orderFromView(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderDetails handles GET /orders/details/:orderId.
func (s *Server) GetOrderDetails(ctx echo.Context) error {
	orderID, err := parseUUID("orderId", ctx.Param("orderId"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromView(view))
}

type updateOrderStatusRequest struct {
	OrderStatus      *string `json:"orderStatus"`
	AssignedDriverID *string `json:"assignedDriverId"`
	PrepTime         *int    `json:"prepTime"`
	RejectionReason  *string `json:"rejectionReason"`
	PaymentStatus    *string `json:"paymentStatus"`
	PaymentID        *string `json:"paymentId"`
}

// UpdateOrderStatus handles PUT /orders/:orderId/status. The body is a merge
// request: any subset of fields may be present, and each recognized group
// maps onto one lifecycle command.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := parseUUID("orderId", ctx.Param("orderId"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req updateOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	if req.OrderStatus == nil && req.AssignedDriverID == nil && req.PaymentStatus == nil {
		return writeError(ctx, errs.NewValueIsRequiredError("orderStatus"))
	}

	if req.OrderStatus != nil || req.AssignedDriverID != nil {
		if err = s.applyStatusChange(ctx, orderID, req); err != nil {
			return writeError(ctx, err)
		}
	}

	if req.PaymentStatus != nil {
		if err = s.applySettlement(ctx, orderID, req); err != nil {
			return writeError(ctx, err)
		}
	}

	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

func (s *Server) applyStatusChange(ctx echo.Context, orderID kernel.UUID, req updateOrderStatusRequest) error {
	reqCtx := ctx.Request().Context()

	// Driver assignment without an explicit status is still a claim.
	statusName := ""
	if req.OrderStatus != nil {
		statusName = *req.OrderStatus
	}

	switch statusName {
	case "accepted":
		if req.PrepTime == nil {
			return errs.NewValueIsRequiredError("prepTime")
		}
		cmd, err := commands.NewAcceptOrderCommand(orderID, *req.PrepTime)
		if err != nil {
			return err
		}
		return s.acceptOrderHandler.Handle(reqCtx, cmd)

	case "rejected":
		reason := ""
		if req.RejectionReason != nil {
			reason = *req.RejectionReason
		}
		cmd, err := commands.NewRejectOrderCommand(orderID, reason)
		if err != nil {
			return err
		}
		return s.rejectOrderHandler.Handle(reqCtx, cmd)

	case "cancelled":
		cmd, err := commands.NewCancelOrderCommand(orderID)
		if err != nil {
			return err
		}
		return s.cancelOrderHandler.Handle(reqCtx, cmd)

	case "onTheWay", "":
		if req.AssignedDriverID == nil {
			return errs.NewValueIsRequiredError("assignedDriverId")
		}
		courierID, err := parseUUID("assignedDriverId", *req.AssignedDriverID)
		if err != nil {
			return err
		}
		cmd, err := commands.NewClaimOrderCommand(orderID, courierID)
		if err != nil {
			return err
		}
		return s.claimOrderHandler.Handle(reqCtx, cmd)

	case "delivered":
		if req.AssignedDriverID == nil {
			return errs.NewValueIsRequiredError("assignedDriverId")
		}
		courierID, err := parseUUID("assignedDriverId", *req.AssignedDriverID)
		if err != nil {
			return err
		}
		cmd, err := commands.NewUpdateDeliveryStatusCommand(orderID, courierID, order.Delivered)
		if err != nil {
			return err
		}
		return s.updateDeliveryStatusHandler.Handle(reqCtx, cmd)

	default:
		target, err := order.StatusFromString(statusName)
		if err != nil {
			return err
		}
		cmd, err := commands.NewAdvanceOrderStatusCommand(orderID, target)
		if err != nil {
			return err
		}
		return s.advanceOrderStatusHandler.Handle(reqCtx, cmd)
	}
}

func (s *Server) applySettlement(ctx echo.Context, orderID kernel.UUID, req updateOrderStatusRequest) error {
	paymentStatus, err := order.PaymentStatusFromString(*req.PaymentStatus)
	if err != nil {
		return err
	}

	paymentID := ""
	if req.PaymentID != nil {
		paymentID = *req.PaymentID
	}

	cmd, err := commands.NewSettlePaymentCommand(orderID, paymentStatus, paymentID)
	if err != nil {
		return err
	}

	return s.settlePaymentHandler.Handle(ctx.Request().Context(), cmd)
}

// CancelOrder handles PATCH /orders/cancel/:orderId.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := parseUUID("orderId", ctx.Param("orderId"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

type claimRequest struct {
	DriverID string `json:"driverId"`
}

// ClaimOrder handles POST /orders/:orderId/claim - courier-initiated assignment.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	orderID, err := parseUUID("orderId", ctx.Param("orderId"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req claimRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	courierID, err := parseUUID("driverId", req.DriverID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, courierID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.claimOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

type deliveryStatusRequest struct {
	Status   string `json:"status"`
	DriverID string `json:"driverId"`
}

// UpdateDeliveryStatus handles POST /orders/:orderId/delivery-status -
// a courier reporting departure or completion of a delivery.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	orderID, err := parseUUID("orderId", ctx.Param("orderId"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req deliveryStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	courierID, err := parseUUID("driverId", req.DriverID)
	if err != nil {
		return writeError(ctx, err)
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(orderID, courierID, status)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

type registerDriverRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	VehicleNumber string `json:"vehicleNumber"`
}

// RegisterDriver handles POST /drivers - adds a courier to the registry.
// New couriers start off shift with no location fix.
func (s *Server) RegisterDriver(ctx echo.Context) error {
	var req registerDriverRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	courierID := kernel.NewUUID()
	cmd, err := commands.NewRegisterCourierCommand(courierID, req.Name, req.Phone, req.VehicleNumber)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.registerCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Courier{
		ID:            courierID.String(),
		Name:          req.Name,
		Phone:         req.Phone,
		VehicleNumber: req.VehicleNumber,
	})
}

type driverAvailabilityRequest struct {
	Availability bool `json:"availability"`
}

// SetDriverAvailability handles PATCH /drivers/:driverId/availability -
// a courier going on or off shift.
func (s *Server) SetDriverAvailability(ctx echo.Context) error {
	courierID, err := parseUUID("driverId", ctx.Param("driverId"))
	if err != nil {
		return writeError(ctx, err)
	}

	var req driverAvailabilityRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewSetCourierShiftCommand(courierID, req.Availability)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.setCourierShiftHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDrivers handles GET /drivers?availability=true.
func (s *Server) GetDrivers(ctx echo.Context) error {
	if availability := ctx.QueryParam("availability"); availability != "" && availability != "true" {
		return writeError(ctx, errs.NewValueIsInvalidError("availability"))
	}

	views, err := s.getAvailableCouriersHandler.Handle(
		ctx.Request().Context(),
		queries.NewGetAvailableCouriersQuery(),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]Courier, len(views))
	for i, view := range views {
		response[i] = courierFromView(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDriverOrders handles GET /drivers/:driverId/orders - the courier's board:
// own deliveries first, then the open pool while the courier is on shift.
func (s *Server) GetDriverOrders(ctx echo.Context) error {
	courierID, err := parseUUID("driverId", ctx.Param("driverId"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetCourierBoardQuery(courierID)
	if err != nil {
		return writeError(ctx, err)
	}

	board, err := s.getCourierBoardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]Order, len(board.Orders))
	for i, view := range board.Orders {
		response[i] = orderFromView(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// parseUUID maps malformed identifiers onto the validation error type so
// they surface as 400 rather than 500.
func parseUUID(paramName string, value string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return id, nil
}

func (s *Server) respondWithOrder(ctx echo.Context, code int, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(code, orderEnvelope{Order: orderFromView(view)})
}
