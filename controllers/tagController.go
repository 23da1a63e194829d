package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sareecustoms/storefront-api/audit"
	"github.com/sareecustoms/storefront-api/models"
)

const tagsCacheKey = catalogCachePrefix + "tags"

func (c *Controller) GetTags(ctx *gin.Context) {
	if c.cache != nil {
		var cached []models.Tag
		if found, err := c.cache.GetJSON(ctx.Request.Context(), tagsCacheKey, &cached); err == nil && found {
			sendJSONResponse(ctx, http.StatusOK, cached)
			return
		}
	}

	tags, err := c.repos.Tags.List(ctx.Request.Context())
	if err != nil {
		c.respondWithError(ctx, "Unable to fetch tags", err)
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	if c.cache != nil {
		if err := c.cache.SetJSON(ctx.Request.Context(), tagsCacheKey, tags); err != nil {
			c.log.Warn("Catalog cache write failed", zap.String("key", tagsCacheKey), zap.Error(err))
		}
	}
	sendJSONResponse(ctx, http.StatusOK, tags)
}

func (c *Controller) UpsertTag(ctx *gin.Context) {
	var tag models.Tag
	if err := ctx.ShouldBindJSON(&tag); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := tag.Validate(); err != nil {
		c.respondWithError(ctx, "Invalid tag", err)
		return
	}
	if err := c.repos.Tags.Upsert(ctx.Request.Context(), &tag); err != nil {
		c.respondWithError(ctx, "Failed to save tag", err)
		return
	}

	c.invalidateCatalog(ctx.Request.Context())
	c.record(ctx, audit.ActionTagUpsert, tag.ID, map[string]any{
		"name":     tag.Name,
		"category": string(tag.Category),
	})
	sendSuccess(ctx, gin.H{"id": tag.ID})
}

func (c *Controller) DeleteTag(ctx *gin.Context) {
	id, ok := requireQuery(ctx, "id")
	if !ok {
		return
	}
	if err := c.repos.Tags.Delete(ctx.Request.Context(), id); err != nil {
		c.respondWithError(ctx, "Tag", err)
		return
	}

	c.invalidateCatalog(ctx.Request.Context())
	c.record(ctx, audit.ActionTagDelete, id, nil)
	sendSuccess(ctx, nil)
}
