package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetBlob streams the object at ?path= or redirects to a placeholder image
// when no bucket is configured.
func (c *Controller) GetBlob(ctx *gin.Context) {
	key, ok := requireQuery(ctx, "path")
	if !ok {
		return
	}
	obj, err := c.blobs.Get(ctx.Request.Context(), key)
	if err != nil {
		c.respondWithError(ctx, "Object", err)
		return
	}
	if obj.Redirect != "" {
		ctx.Redirect(http.StatusFound, obj.Redirect)
		return
	}
	defer obj.Body.Close()

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	size := obj.Size
	if size <= 0 {
		size = -1
	}
	headers := map[string]string{}
	if obj.ETag != "" {
		headers["ETag"] = obj.ETag
	}
	ctx.DataFromReader(http.StatusOK, size, contentType, obj.Body, headers)
}

func (c *Controller) PutBlob(ctx *gin.Context) {
	key, ok := requireQuery(ctx, "path")
	if !ok {
		return
	}
	contentType := ctx.ContentType()
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	url, err := c.blobs.Put(ctx.Request.Context(), key, ctx.Request.Body, contentType)
	if err != nil {
		c.respondWithError(ctx, "Failed to store object", err)
		return
	}
	sendSuccess(ctx, gin.H{"url": url})
}

func (c *Controller) DeleteBlob(ctx *gin.Context) {
	key, ok := requireQuery(ctx, "path")
	if !ok {
		return
	}
	if err := c.blobs.Delete(ctx.Request.Context(), key); err != nil {
		c.respondWithError(ctx, "Failed to delete object", err)
		return
	}
	sendSuccess(ctx, nil)
}
