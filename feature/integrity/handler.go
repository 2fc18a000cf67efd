package integrity

import (
	"bucket-manager/core/logger"
	"bucket-manager/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.SchemaReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/index", h.HandleIndexCheck)
	group.Get("/registry", h.HandleRegistryCheck)
	group.Get("/schema", h.HandleSchemaCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Checks the index pool, the available-pool registry and the catalog schema.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	if exists, err := h.service.CheckIndexPool(ctx); err != nil {
		report["index"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["index"] = map[string]interface{}{"status": "ok", "exists": exists}
	}

	if reg, err := h.service.CheckRegistry(ctx); err != nil {
		report["registry"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["registry"] = reg
	}

	if schema, err := h.service.CheckSchema(); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schema
	}

	return c.JSON(report)
}

// HandleIndexCheck checks and optionally creates the index pool.
// @Summary Check Index Pool
// @Description Checks that the bucket-index pool exists. Optionally creates it.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create the pool when missing"
// @Success 200 {object} map[string]interface{} "Index Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/index [get]
func (h *Handler) HandleIndexCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	exists, err := h.service.CheckIndexPool(c.Context())
	if err != nil {
		l.Error("Index pool check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !exists && fix {
		l.Info("Attempting to create index pool")
		if err := h.service.FixIndexPool(c.Context()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create index pool",
				"details": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "fixed", "exists": true})
	}

	return c.JSON(fiber.Map{"status": "checked", "exists": exists})
}

// HandleRegistryCheck reads the available-pool registry.
// @Summary Check Registry
// @Description Reads the available-pool registry and counts its entries.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.RegistryReport "Registry Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/registry [get]
func (h *Handler) HandleRegistryCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckRegistry(c.Context())
	if err != nil {
		l.Error("Registry check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}

// HandleSchemaCheck checks the catalog schema.
// @Summary Check Catalog Schema
// @Description Checks that the catalog table has every column the service uses.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting catalog schema check")

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Catalog schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}
