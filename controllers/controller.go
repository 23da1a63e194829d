package controllers

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sareecustoms/storefront-api/audit"
	"github.com/sareecustoms/storefront-api/blob"
	"github.com/sareecustoms/storefront-api/cache"
	"github.com/sareecustoms/storefront-api/cart"
	"github.com/sareecustoms/storefront-api/middlewares"
	"github.com/sareecustoms/storefront-api/models"
	"github.com/sareecustoms/storefront-api/repositories"
	"github.com/sareecustoms/storefront-api/utils"
)

// Controller serves every /api handler. Zero-value optional dependencies are
// replaced with no-op implementations by New.
type Controller struct {
	repos       *repositories.Repositories
	blobs       blob.Store
	cache       cache.Cache
	audit       audit.Logger
	notifier    utils.OrderNotifier
	carts       cart.Sessions
	policy      cart.StockPolicy
	degraded    bool
	exposeStack bool
	log         *zap.Logger
}

type Deps struct {
	Repos       *repositories.Repositories
	Blobs       blob.Store
	Cache       cache.Cache
	Audit       audit.Logger
	Notifier    utils.OrderNotifier
	Carts       cart.Sessions
	StockPolicy cart.StockPolicy
	Degraded    bool
	ExposeStack bool
	Logger      *zap.Logger
}

func New(d Deps) *Controller {
	c := &Controller{
		repos:       d.Repos,
		blobs:       d.Blobs,
		cache:       d.Cache,
		audit:       d.Audit,
		notifier:    d.Notifier,
		carts:       d.Carts,
		policy:      d.StockPolicy,
		degraded:    d.Degraded,
		exposeStack: d.ExposeStack,
		log:         d.Logger,
	}
	if c.blobs == nil {
		c.blobs = blob.Placeholder{}
	}
	if c.audit == nil {
		c.audit = audit.Nop{}
	}
	if c.notifier == nil {
		c.notifier = utils.NopNotifier{}
	}
	if c.carts == nil {
		c.carts = cart.NewMemorySessions()
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"error": message})
}

func sendSuccess(ctx *gin.Context, extra gin.H) {
	body := gin.H{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	sendJSONResponse(ctx, http.StatusOK, body)
}

// respondWithError maps domain errors onto status codes. Anything it does not
// recognize is logged and reported as a 500.
func (c *Controller) respondWithError(ctx *gin.Context, message string, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		sendErrorResponse(ctx, http.StatusBadRequest, verr.Error())
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, blob.ErrNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, message+": not found")
	default:
		c.log.Error(message, zap.String("path", ctx.Request.URL.Path), zap.Error(err))
		if c.exposeStack {
			ctx.JSON(http.StatusInternalServerError, gin.H{
				"error": message,
				"stack": err.Error() + "\n\n" + string(debug.Stack()),
			})
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, message)
	}
}

// requireQuery returns the named query parameter or writes a 400.
func requireQuery(ctx *gin.Context, name string) (string, bool) {
	value := ctx.Query(name)
	if value == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "missing "+name)
		return "", false
	}
	return value, true
}

// record writes an audit entry. Audit failures never fail the request.
func (c *Controller) record(ctx *gin.Context, action audit.Action, entityID string, data map[string]any) {
	entry := &audit.Entry{
		Action:   action,
		EntityID: entityID,
		ActorID:  middlewares.Subject(ctx),
		Data:     data,
	}
	if err := c.audit.Record(ctx.Request.Context(), entry); err != nil {
		c.log.Warn("Failed to record audit entry", zap.String("action", string(action)), zap.Error(err))
	}
}

const catalogCachePrefix = "catalog:"

func (c *Controller) invalidateCatalog(ctx context.Context) {
	if c.cache == nil {
		return
	}
	if err := c.cache.DeletePrefix(ctx, catalogCachePrefix); err != nil {
		c.log.Warn("Failed to invalidate catalog cache", zap.Error(err))
	}
}
