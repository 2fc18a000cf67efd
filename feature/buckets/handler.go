package buckets

import (
	"strconv"

	"bucket-manager/core/logger"
	"bucket-manager/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CreateRequest is the body of a bucket creation request.
type CreateRequest struct {
	Owner       string            `json:"owner"`
	Name        string            `json:"name"`
	Attrs       map[string]string `json:"attrs"`
	Exclusive   bool              `json:"exclusive"`
	DefaultAUID uint64            `json:"default_auid"`
}

// Handler handles HTTP requests for buckets.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the bucket routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/buckets")
	group.Post("/", h.HandleCreateBucket)
	group.Get("/id/:id", h.HandleGetBucketInfoByID)
	group.Get("/:name", h.HandleGetBucketInfo)
}

// HandleCreateBucket creates a bucket.
// @Summary Create Bucket
// @Description Creates a bucket backed by an available pool. System buckets (leading '.') are their own pool.
// @Tags buckets
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Bucket"
// @Success 201 {object} backend.Bucket "Created bucket"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Bucket exists"
// @Failure 502 {object} map[string]string "Backend Error"
// @Router /buckets [post]
func (h *Handler) HandleCreateBucket(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Name == "" || req.Owner == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and owner are required"})
	}

	var attrs map[string][]byte
	if len(req.Attrs) > 0 {
		attrs = make(map[string][]byte, len(req.Attrs))
		for k, v := range req.Attrs {
			attrs[k] = []byte(v)
		}
	}

	bucket, err := h.service.CreateBucket(c.Context(), req.Owner, req.Name, attrs, req.Exclusive, req.DefaultAUID)
	if err != nil {
		l.Error("Bucket creation failed", zap.String("bucket", req.Name), zap.Error(err))
		return server.Error(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(bucket)
}

// HandleGetBucketInfo returns a bucket record by name.
// @Summary Get Bucket Info
// @Description Returns the stored record. Unknown names return a default record whose pool is the name itself.
// @Tags buckets
// @Produce json
// @Param name path string true "Bucket name"
// @Success 200 {object} models.BucketInfo "Bucket info"
// @Failure 500 {object} map[string]string "Corrupt record"
// @Failure 502 {object} map[string]string "Backend Error"
// @Router /buckets/{name} [get]
func (h *Handler) HandleGetBucketInfo(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Params("name")

	info, err := h.service.GetBucketInfo(c.Context(), name)
	if err != nil {
		l.Error("Failed to load bucket info", zap.String("bucket", name), zap.Error(err))
		return server.Error(c, err)
	}

	return c.JSON(info)
}

// HandleGetBucketInfoByID returns a bucket record by id.
// @Summary Get Bucket Info By ID
// @Description Returns the record stored under the bucket id alias.
// @Tags buckets
// @Produce json
// @Param id path integer true "Bucket id"
// @Success 200 {object} models.BucketInfo "Bucket info"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 502 {object} map[string]string "Backend Error"
// @Router /buckets/id/{id} [get]
func (h *Handler) HandleGetBucketInfoByID(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id must be an unsigned integer"})
	}

	info, err := h.service.GetBucketInfoByID(c.Context(), id)
	if err != nil {
		l.Error("Failed to load bucket info", zap.Uint64("bucket_id", id), zap.Error(err))
		return server.Error(c, err)
	}

	return c.JSON(info)
}
