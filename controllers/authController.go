package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sareecustoms/storefront-api/models"
)

// Identities come from an external provider. These handlers only keep the
// storefront profile and answer admin membership questions.

func (c *Controller) GetUser(ctx *gin.Context) {
	id, ok := requireQuery(ctx, "id")
	if !ok {
		return
	}
	user, err := c.repos.Users.Get(ctx.Request.Context(), id)
	if err != nil {
		c.respondWithError(ctx, "User", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, user)
}

func (c *Controller) UpsertUser(ctx *gin.Context) {
	var user models.User
	if err := ctx.ShouldBindJSON(&user); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	user.ID = strings.TrimSpace(user.ID)
	if user.ID == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "missing id")
		return
	}
	if err := c.repos.Users.Upsert(ctx.Request.Context(), &user); err != nil {
		c.respondWithError(ctx, "Failed to save user", err)
		return
	}
	sendSuccess(ctx, nil)
}

// CheckAdmin reports whether the uid in ?id= is an administrator.
func (c *Controller) CheckAdmin(ctx *gin.Context) {
	uid, ok := requireQuery(ctx, "id")
	if !ok {
		return
	}
	isAdmin, err := c.repos.Admins.IsAdmin(ctx.Request.Context(), uid)
	if err != nil {
		c.respondWithError(ctx, "Unable to check admin", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"isAdmin": isAdmin})
}
