package trip

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"pod-tracker/constants"
	crm "pod-tracker/httpServices/crm"
	"pod-tracker/logger"
	trip_model "pod-tracker/models/trip"
	user_model "pod-tracker/models/user"
	"pod-tracker/services"
	"pod-tracker/services/export"
	"pod-tracker/services/filter"
	"pod-tracker/services/ledger"
	"pod-tracker/services/links"
	"pod-tracker/services/tripstore"
	"pod-tracker/services/workflow"
	"pod-tracker/types"
	trip_types "pod-tracker/types/trip"
	"pod-tracker/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TripController struct {
	db                *gorm.DB
	loggerInstance    *logger.AsyncLogger
	crmClient         *crm.CRMClient
	store             *tripstore.Store
	engine            *workflow.Engine
	ledger            *ledger.Ledger
	permissionService *services.PermissionService
}

func NewTripController(crmClient *crm.CRMClient, db *gorm.DB, async_logger *logger.AsyncLogger) *TripController {
	return &TripController{
		db:                db,
		loggerInstance:    async_logger,
		crmClient:         crmClient,
		store:             tripstore.NewStore(db),
		engine:            workflow.NewEngine(db),
		ledger:            ledger.NewLedger(db),
		permissionService: services.NewPermissionService(),
	}
}

// actor builds the workflow actor from the session claims.
func (h *TripController) actor(c *fiber.Ctx) workflow.Actor {
	uuid, _ := h.permissionService.GetUserUuid(c)
	name, _ := h.permissionService.GetUsername(c)
	return workflow.Actor{Uuid: uuid, Name: name}
}

func (h *TripController) role(c *fiber.Ctx) string {
	claims, ok := h.permissionService.GetUserInfo(c)
	if !ok {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}

// criteriaFromQuery maps the list endpoint's query string onto filter criteria.
func criteriaFromQuery(c *fiber.Ctx) filter.Criteria {
	return filter.Criteria{
		Search:            c.Query("search"),
		Tab:               c.Query("tab"),
		View:              c.Query("view"),
		TripID:            c.Query("trip_id"),
		Origin:            c.Query("origin"),
		Destination:       c.Query("destination"),
		Vehicle:           c.Query("vehicle"),
		Runner:            c.Query("runner"),
		SecondaryRunner:   c.Query("secondary_runner"),
		Priority:          c.Query("priority"),
		Status:            c.Query("status"),
		Owner:             c.Query("owner"),
		DNode:             c.Query("d_node"),
		SlotStatus:        c.Query("slot_status"),
		Supplier:          c.Query("supplier"),
		Aging:             c.Query("aging"),
		HasIssues:         c.QueryBool("has_issues"),
		HasRunnerRemarks:  c.QueryBool("has_runner_remarks"),
		RunnerRemarksType: c.Query("runner_remarks_type"),
	}
}

// refreshAging recomputes aging from the unloading time at read time.
func refreshAging(trips []trip_model.Trip) {
	nowTime := time.Now()
	for i := range trips {
		trips[i].Aging = utils.AgingDays(trips[i].UnloadedAt, nowTime)
	}
}

// writeError maps service errors onto HTTP responses.
func writeError(c *fiber.Ctx, err error) error {
	var ite *workflow.InvalidTransitionError
	var mfe *workflow.MissingFieldError

	switch {
	case errors.Is(err, tripstore.ErrTripNotFound), errors.Is(err, ledger.ErrTripNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Trip not found",
			Status:  fiber.StatusNotFound,
		})
	case errors.Is(err, ledger.ErrRemarkNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "Remark not found",
			Status:  fiber.StatusNotFound,
		})
	case errors.As(err, &ite),
		errors.Is(err, workflow.ErrIssueOpen),
		errors.Is(err, workflow.ErrNotAtHeadquarters),
		errors.Is(err, ledger.ErrIssueAlreadyOpen),
		errors.Is(err, ledger.ErrNoOpenIssue):
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusConflict,
		})
	case errors.As(err, &mfe), errors.Is(err, tripstore.ErrUnsupportedImage):
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	default:
		logger.Error("Trip operation failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}
}

// List returns trips matching the query filters for the caller's view.
func (h *TripController) List(c *fiber.Ctx) error {
	trips, err := h.store.List()
	if err != nil {
		return writeError(c, err)
	}
	refreshAging(trips)

	criteria := criteriaFromQuery(c)
	if h.role(c) == user_model.RoleRunner {
		criteria.HideDelivered = true
	}

	filtered := filter.Apply(trips, criteria)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: fmt.Sprintf("%d trips found", len(filtered)),
		Status:  fiber.StatusOK,
		Data:    filtered,
	})
}

// Get returns one trip with its full sub-records.
func (h *TripController) Get(c *fiber.Ctx) error {
	t, err := h.store.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	t.Aging = utils.AgingDays(t.UnloadedAt, time.Now())

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Trip fetched",
		Status:  fiber.StatusOK,
		Data:    t,
	})
}

// Export streams the filtered trip list as a CSV download.
func (h *TripController) Export(c *fiber.Ctx) error {
	trips, err := h.store.List()
	if err != nil {
		return writeError(c, err)
	}
	refreshAging(trips)

	criteria := criteriaFromQuery(c)
	filtered := filter.Apply(trips, criteria)

	out, err := export.Trips(filtered)
	if err != nil {
		return writeError(c, err)
	}

	fileName := export.TripsFileName(criteria.Tab, time.Now())
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, fileName))
	return c.Status(fiber.StatusOK).Send(out)
}

// UpdateStatus moves a trip one forward workflow step.
func (h *TripController) UpdateStatus(c *fiber.Ctx) error {
	var req trip_types.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	in := workflow.TransitionInput{
		CourierPartner:  req.CourierPartner,
		AWBNumber:       req.AWBNumber,
		CollectedFrom:   req.CollectedFrom,
		CourierComments: req.CourierComments,
		AtHeadquarters:  req.AtHeadquarters,
		// Only runners collect in the field, so only they get the gate.
		RequireHeadquarters: h.role(c) == user_model.RoleRunner,
	}

	t, err := h.engine.Advance(c.Params("id"), trip_model.TripStatus(req.Status), in, h.actor(c))
	if err != nil {
		return writeError(c, err)
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Status updated",
		Status:  fiber.StatusOK,
		Data:    t,
	})
}

// OverrideStatus sets an arbitrary status with a recorded reason. Only
// control tower dispatchers may call this.
func (h *TripController) OverrideStatus(c *fiber.Ctx) error {
	if !h.permissionService.IsDispatcher(c) {
		return h.permissionService.RequireAnyPermission(c, constants.DispatcherPermissions...)
	}

	var req trip_types.OverrideStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	t, err := h.engine.Override(c.Params("id"), trip_model.TripStatus(req.Status), req.Reason, h.actor(c))
	if err != nil {
		return writeError(c, err)
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Status overridden",
		Status:  fiber.StatusOK,
		Data:    t,
	})
}

// AssignRunner sets or clears the runner on a trip.
func (h *TripController) AssignRunner(c *fiber.Ctx) error {
	var req trip_types.AssignRunnerRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}

	actor := h.actor(c)
	t, err := h.store.AssignRunner(c.Params("id"), req.Runner, req.RunnerID, req.SecondaryRunner, actor.Uuid, actor.Name)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Runner assignment updated",
		Status:  fiber.StatusOK,
		Data:    t,
	})
}

// AssignOwner sets or clears the trip owner.
func (h *TripController) AssignOwner(c *fiber.Ctx) error {
	var req trip_types.AssignOwnerRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}

	t, err := h.store.AssignOwner(c.Params("id"), req.Owner)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Owner updated",
		Status:  fiber.StatusOK,
		Data:    t,
	})
}

// SetSlotStatus updates the document recovery classification.
func (h *TripController) SetSlotStatus(c *fiber.Ctx) error {
	var req trip_types.SlotStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	t, err := h.store.SetSlotStatus(c.Params("id"), trip_model.SlotStatus(req.SlotStatus))
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Slot status updated",
		Status:  fiber.StatusOK,
		Data:    t,
	})
}

// SetSupplierAddress corrects the pickup address runners navigate to.
func (h *TripController) SetSupplierAddress(c *fiber.Ctx) error {
	var req trip_types.SupplierAddressRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	t, err := h.store.SetSupplierAddress(c.Params("id"), req.SupplierAddress)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Supplier address updated",
		Status:  fiber.StatusOK,
		Data:    t,
	})
}

// AddPODImages attaches collected document images to a trip.
func (h *TripController) AddPODImages(c *fiber.Ctx) error {
	var req trip_types.PODImagesRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	t, err := h.store.AddPODImages(c.Params("id"), req.Images)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "POD images added",
		Status:  fiber.StatusOK,
		Data:    t,
	})
}

// RemovePODImage detaches one document image from a trip.
func (h *TripController) RemovePODImage(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid image name",
			Status:  fiber.StatusBadRequest,
		})
	}

	t, err := h.store.RemovePODImage(c.Params("id"), name)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "POD image removed",
		Status:  fiber.StatusOK,
		Data:    t,
	})
}

// ReportIssue opens the trip's issue slot.
func (h *TripController) ReportIssue(c *fiber.Ctx) error {
	var req trip_types.ReportIssueRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	actor := h.actor(c)
	issue, err := h.ledger.ReportIssue(c.Params("id"), req.Type, req.Description, actor.Name)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Issue reported",
		Status:  fiber.StatusCreated,
		Data:    issue,
	})
}

// UpdateIssue appends a progress note to the open issue.
func (h *TripController) UpdateIssue(c *fiber.Ctx) error {
	var req trip_types.UpdateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	actor := h.actor(c)
	update, err := h.ledger.UpdateIssue(c.Params("id"), req.Type, req.Description, actor.Name)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Issue updated",
		Status:  fiber.StatusCreated,
		Data:    update,
	})
}

// ResolveIssue closes the open issue.
func (h *TripController) ResolveIssue(c *fiber.Ctx) error {
	actor := h.actor(c)
	issue, err := h.ledger.ResolveIssue(c.Params("id"), actor.Name)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Issue resolved",
		Status:  fiber.StatusOK,
		Data:    issue,
	})
}

// AddRemark appends a runner remark, queueing an FO response for every
// fo remark.
func (h *TripController) AddRemark(c *fiber.Ctx) error {
	var req trip_types.AddRemarkRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	actor := h.actor(c)
	remark, err := h.ledger.AddRemark(c.Params("id"), req.Type, req.Text, req.Images, req.CourierService, req.DocketNumber, actor.Name)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Remark added",
		Status:  fiber.StatusCreated,
		Data:    remark,
	})
}

// AddOwnerRemark appends an owner note to the trip.
func (h *TripController) AddOwnerRemark(c *fiber.Ctx) error {
	var req trip_types.OwnerRemarkRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	actor := h.actor(c)
	remark, err := h.ledger.AddOwnerRemark(c.Params("id"), req.Text, actor.Name)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Owner remark added",
		Status:  fiber.StatusCreated,
		Data:    remark,
	})
}

// RemoveOwnerRemark deletes an owner note by id.
func (h *TripController) RemoveOwnerRemark(c *fiber.Ctx) error {
	remarkID, err := strconv.ParseUint(c.Params("remarkId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid remark id",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := h.ledger.RemoveOwnerRemark(c.Params("id"), uint(remarkID)); err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Owner remark removed",
		Status:  fiber.StatusOK,
	})
}

// Sync pulls the CRM trip feed and upserts new unloaded trips.
func (h *TripController) Sync(c *fiber.Ctx) error {
	count, err := h.crmClient.SyncTrips(h.db)
	if err != nil {
		logger.Error("CRM sync failed", err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ErrorResponse{
			Message: "Failed to sync trips from CRM",
			Status:  fiber.StatusBadGateway,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: fmt.Sprintf("%d trips synced", count),
		Status:  fiber.StatusOK,
	})
}

// History returns the append-only status event trail for a trip.
func (h *TripController) History(c *fiber.Ctx) error {
	if _, err := h.store.Get(c.Params("id")); err != nil {
		return writeError(c, err)
	}

	var events []trip_model.TripStatusEvent
	if err := h.db.Where("trip_id = ?", c.Params("id")).Order("created_at ASC, id ASC").Find(&events).Error; err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: fmt.Sprintf("%d events found", len(events)),
		Status:  fiber.StatusOK,
		Data:    events,
	})
}

// Links returns the contact and navigation URLs for a trip.
func (h *TripController) Links(c *fiber.Ctx) error {
	t, err := h.store.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}

	data := fiber.Map{
		"call_fo":       links.Call(t.FOPhone),
		"call_driver":   links.Call(t.DriverPhone),
		"whatsapp_fo":   links.WhatsApp(t.FOPhone, t.ID),
		"navigate":      links.Maps(t.SupplierAddress),
		"call_supply":   links.Call(t.SupplyPOCPhone),
		"call_demand":   links.Call(t.DemandPOCPhone),
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Links generated",
		Status:  fiber.StatusOK,
		Data:    data,
	})
}
