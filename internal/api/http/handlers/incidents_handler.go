package handlers

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/deskops/incident-desk/internal/api/dto"
	"github.com/deskops/incident-desk/internal/domain"
	"github.com/deskops/incident-desk/internal/service"
	apperrors "github.com/deskops/incident-desk/pkg/util/errorutil"
)

// CodeStorageDisabled is returned by save and load when no store is configured.
const CodeStorageDisabled = "STORAGE_DISABLED"

// IncidentsHandler exposes the desk over HTTP. The service is not safe for
// concurrent use, so every call goes through mu.
type IncidentsHandler struct {
	mu      sync.Mutex
	service *service.IncidentService
	store   service.RecordStore
	logger  *zap.Logger
}

// NewIncidentsHandler constructs handler. store may be nil.
func NewIncidentsHandler(incidentService *service.IncidentService, store service.RecordStore, logger *zap.Logger) *IncidentsHandler {
	return &IncidentsHandler{service: incidentService, store: store, logger: logger}
}

// ListIncidents GET /incidents.
func (h *IncidentsHandler) ListIncidents(c *fiber.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	label := c.Query("category")
	if label == "" {
		return c.JSON(fiber.Map{"data": summaries(h.service.ListAll())})
	}
	category, err := domain.ParseCategory(label)
	if err != nil {
		return err
	}
	rows, err := h.service.ListByCategory(category)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summaries(rows)})
}

// GetIncident GET /incidents/:id.
func (h *IncidentsHandler) GetIncident(c *fiber.Ctx) error {
	id, err := incidentID(c)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	incident, ok := h.service.Get(id)
	if !ok {
		return apperrors.NewNotFound("incident", map[string]any{"id": id})
	}
	return c.JSON(fiber.Map{"data": incidentDetail(incident)})
}

// CreateIncident POST /incidents.
func (h *IncidentsHandler) CreateIncident(c *fiber.Ctx) error {
	var req dto.CreateIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidArgument("invalid payload", nil)
	}
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return err
	}
	priority, err := domain.ParsePriority(req.Priority)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	id, err := h.service.Add(req.Caller, category, priority, req.Name, req.Note)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"id": id}})
}

// DispatchCommand POST /incidents/:id/commands.
func (h *IncidentsHandler) DispatchCommand(c *fiber.Ctx) error {
	id, err := incidentID(c)
	if err != nil {
		return err
	}
	var req dto.CommandRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidArgument("invalid payload", nil)
	}
	cmd, err := commandFromRequest(req)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	incident, ok := h.service.Get(id)
	if !ok {
		return apperrors.NewNotFound("incident", map[string]any{"id": id})
	}
	if err := h.service.Dispatch(id, cmd); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": incidentDetail(incident)})
}

// DeleteIncident DELETE /incidents/:id.
func (h *IncidentsHandler) DeleteIncident(c *fiber.Ctx) error {
	id, err := incidentID(c)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.service.Delete(id)
	return c.SendStatus(http.StatusNoContent)
}

// ExportIncidents GET /incidents/export.
func (h *IncidentsHandler) ExportIncidents(c *fiber.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return c.JSON(fiber.Map{"data": h.service.Export()})
}

// ImportIncidents POST /incidents/import.
func (h *IncidentsHandler) ImportIncidents(c *fiber.Ctx) error {
	var req dto.ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidArgument("invalid payload", nil)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.service.Import(req.Incidents); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"imported": len(req.Incidents)}})
}

// ResetIncidents POST /incidents/reset.
func (h *IncidentsHandler) ResetIncidents(c *fiber.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.service.Reset()
	return c.SendStatus(http.StatusNoContent)
}

// SaveIncidents POST /incidents/save.
func (h *IncidentsHandler) SaveIncidents(c *fiber.Ctx) error {
	if h.store == nil {
		return storageDisabled()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.service.SaveTo(c.UserContext(), h.store); err != nil {
		h.logger.Error("save incidents", zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"saved": len(h.service.ListAll())}})
}

// LoadIncidents POST /incidents/load.
func (h *IncidentsHandler) LoadIncidents(c *fiber.Ctx) error {
	if h.store == nil {
		return storageDisabled()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	before := len(h.service.ListAll())
	if err := h.service.LoadFrom(c.UserContext(), h.store); err != nil {
		if apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
			return err
		}
		h.logger.Error("load incidents", zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"loaded": len(h.service.ListAll()) - before}})
}

func storageDisabled() error {
	return apperrors.NewDomainError(CodeStorageDisabled, "no storage backend configured", http.StatusConflict, nil)
}

func incidentID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 0 {
		return 0, apperrors.NewInvalidArgument("invalid incident id", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}

func commandFromRequest(req dto.CommandRequest) (domain.Command, error) {
	return domain.ParseCommand(domain.CommandInput{
		Action:           req.Action,
		OwnerID:          req.OwnerID,
		OnHoldReason:     req.OnHoldReason,
		ResolutionCode:   req.ResolutionCode,
		CancellationCode: req.CancellationCode,
		Note:             req.Note,
	})
}

func summaries(rows []service.Row) []dto.IncidentSummary {
	items := make([]dto.IncidentSummary, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.IncidentSummary{
			ID:       row.ID,
			Category: row.Category,
			State:    row.State,
			Priority: row.Priority,
			Name:     row.Name,
		})
	}
	return items
}

func incidentDetail(incident *domain.Incident) dto.IncidentDetailResponse {
	allowed := incident.AllowedActions()
	actions := make([]string, 0, len(allowed))
	for _, a := range allowed {
		actions = append(actions, string(a))
	}

	return dto.IncidentDetailResponse{
		ID:               incident.ID(),
		Caller:           incident.Caller(),
		Category:         incident.Category().Label(),
		State:            incident.State().Label(),
		Priority:         incident.Priority().Label(),
		Owner:            incident.Owner(),
		Name:             incident.Name(),
		OnHoldReason:     incident.OnHoldReason().Label(),
		ResolutionCode:   incident.ResolutionCode().Label(),
		CancellationCode: incident.CancellationCode().Label(),
		ChangeRequest:    incident.ChangeRequest(),
		Notes:            incident.Notes(),
		WorkNotes:        incident.WorkNotesText(),
		AllowedActions:   actions,
	}
}
