package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sareecustoms/storefront-api/audit"
	"github.com/sareecustoms/storefront-api/catalog"
	"github.com/sareecustoms/storefront-api/models"
)

// productInput accepts the stored product fields. Tags are derived on read,
// so whatever a client sends for them is ignored.
type productInput struct {
	models.Product
	Tags json.RawMessage `json:"tags"`
}

// listing loads products and tags and joins them. Results are cached per
// criteria until the next product or tag write.
func (c *Controller) listing(ctx *gin.Context, criteria catalog.Criteria, query string) ([]models.Product, error) {
	key := catalogCachePrefix + "products?" + catalog.Encode(criteria, query).Encode()
	if c.cache != nil {
		var cached []models.Product
		found, err := c.cache.GetJSON(ctx.Request.Context(), key, &cached)
		if err != nil {
			c.log.Warn("Catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		if found {
			return cached, nil
		}
	}

	products, err := c.repos.Products.List(ctx.Request.Context())
	if err != nil {
		return nil, err
	}
	tags, err := c.repos.Tags.List(ctx.Request.Context())
	if err != nil {
		return nil, err
	}
	result := catalog.Filter(catalog.Enrich(products, tags), criteria, query)

	if c.cache != nil {
		if err := c.cache.SetJSON(ctx.Request.Context(), key, result); err != nil {
			c.log.Warn("Catalog cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return result, nil
}

// GetProducts lists products enriched with their tags, newest first,
// narrowed by the filter parameters in the query string.
func (c *Controller) GetProducts(ctx *gin.Context) {
	criteria, query, err := catalog.ParseCriteria(ctx.Request.URL.Query())
	if err != nil {
		c.respondWithError(ctx, "Invalid filter", err)
		return
	}

	products, err := c.listing(ctx, criteria, query)
	if err != nil {
		c.respondWithError(ctx, "Unable to fetch products", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, products)
}

func (c *Controller) GetProduct(ctx *gin.Context) {
	product, err := c.repos.Products.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondWithError(ctx, "Product", err)
		return
	}
	tags, err := c.repos.Tags.List(ctx.Request.Context())
	if err != nil {
		c.respondWithError(ctx, "Unable to retrieve product", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, catalog.NewTagIndex(tags).Enrich(*product))
}

func (c *Controller) UpsertProduct(ctx *gin.Context) {
	var input productInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	product := input.Product
	if err := product.Validate(); err != nil {
		c.respondWithError(ctx, "Invalid product", err)
		return
	}
	if err := c.repos.Products.Upsert(ctx.Request.Context(), &product); err != nil {
		c.respondWithError(ctx, "Failed to save product", err)
		return
	}

	c.invalidateCatalog(ctx.Request.Context())
	c.record(ctx, audit.ActionProductUpsert, product.ID, map[string]any{
		"name":  product.Name,
		"price": product.Price.String(),
		"stock": product.Stock,
	})
	sendSuccess(ctx, gin.H{"id": product.ID})
}

func (c *Controller) DeleteProduct(ctx *gin.Context) {
	id, ok := requireQuery(ctx, "id")
	if !ok {
		return
	}
	if err := c.repos.Products.Delete(ctx.Request.Context(), id); err != nil {
		c.respondWithError(ctx, "Product", err)
		return
	}

	c.invalidateCatalog(ctx.Request.Context())
	c.record(ctx, audit.ActionProductDelete, id, nil)
	sendSuccess(ctx, nil)
}

// UploadProductImages stores every file of the multipart "images" field and
// appends the resulting URLs to the product's image list.
func (c *Controller) UploadProductImages(ctx *gin.Context) {
	product, err := c.repos.Products.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondWithError(ctx, "Product", err)
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid form data")
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "No files uploaded")
		return
	}

	var uploaded, failed []string
	for _, file := range files {
		f, err := file.Open()
		if err != nil {
			c.log.Warn("Error opening upload", zap.String("file", file.Filename), zap.Error(err))
			failed = append(failed, file.Filename)
			continue
		}

		key := fmt.Sprintf("products/%s-%s-%s", product.ID, time.Now().Format("20060102150405"), path.Base(file.Filename))
		url, err := c.blobs.Put(ctx.Request.Context(), key, f, file.Header.Get("Content-Type"))
		f.Close()
		if err != nil {
			c.log.Warn("Error uploading image", zap.String("file", file.Filename), zap.Error(err))
			failed = append(failed, file.Filename)
			continue
		}
		uploaded = append(uploaded, url)
	}

	if len(uploaded) > 0 {
		product.Images = append(product.Images, uploaded...)
		if err := c.repos.Products.Upsert(ctx.Request.Context(), product); err != nil {
			c.respondWithError(ctx, "Failed to save product images", err)
			return
		}
		c.invalidateCatalog(ctx.Request.Context())
		c.record(ctx, audit.ActionProductUpsert, product.ID, map[string]any{"images": uploaded})
	}

	response := gin.H{"success": len(uploaded) > 0, "urls": uploaded}
	if len(failed) > 0 {
		response["failed"] = failed
	}
	sendJSONResponse(ctx, http.StatusOK, response)
}
