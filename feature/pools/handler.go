package pools

import (
	"bucket-manager/core/logger"
	"bucket-manager/core/reconcile"
	"bucket-manager/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for pools.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the pool routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/pools")
	group.Get("/", h.HandleListPools)
	group.Post("/maintain", h.HandleMaintain)
	group.Get("/audit", h.HandleAudit)
}

// HandleListPools lists available pools.
// @Summary List Available Pools
// @Description Returns the pools created but not yet bound to a bucket.
// @Tags pools
// @Produce json
// @Success 200 {object} map[string]interface{} "Available pools"
// @Failure 502 {object} map[string]string "Backend Error"
// @Router /pools [get]
func (h *Handler) HandleListPools(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	names, err := h.service.ListAvailable(c.Context())
	if err != nil {
		l.Error("Failed to read registry", zap.Error(err))
		return server.Error(c, err)
	}

	return c.JSON(fiber.Map{
		"count": len(names),
		"pools": names,
	})
}

// HandleMaintain runs one maintenance pass.
// @Summary Maintain Pools
// @Description Tops the registry up to the configured maximum when it is below the threshold.
// @Tags pools
// @Produce json
// @Success 200 {object} MaintainResult "Maintenance result"
// @Failure 502 {object} map[string]string "Backend Error"
// @Router /pools/maintain [post]
func (h *Handler) HandleMaintain(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering pool maintenance")

	res, err := h.service.MaintainPools(c.Context())
	if err != nil {
		l.Error("Pool maintenance failed", zap.Error(err))
		return server.Error(c, err)
	}

	return c.JSON(res)
}

// HandleAudit audits the registry.
// @Summary Audit Registry
// @Description Lists registry entries whose pool is missing or already bound. With purge and confirm, removes them.
// @Tags pools
// @Produce json
// @Param purge query boolean false "Plan removal of unhealthy entries"
// @Param confirm query boolean false "Execute planned removals"
// @Success 200 {object} map[string]interface{} "Audit report"
// @Failure 502 {object} map[string]string "Backend Error"
// @Router /pools/audit [get]
func (h *Handler) HandleAudit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	opts := reconcile.ReconcileOptions{
		DoPurge:   c.QueryBool("purge"),
		Confirmed: c.QueryBool("confirm"),
	}
	opts.DryRun = !opts.Confirmed

	plan, executed, err := h.service.Audit(c.Context(), opts)
	if err != nil {
		l.Error("Registry audit failed", zap.Error(err))
		return server.Error(c, err)
	}

	return c.JSON(fiber.Map{
		"plan":     plan,
		"executed": executed,
	})
}
