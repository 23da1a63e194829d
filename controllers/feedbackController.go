package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sareecustoms/storefront-api/models"
)

func (c *Controller) GetFeedback(ctx *gin.Context) {
	feedback, err := c.repos.Feedback.List(ctx.Request.Context())
	if err != nil {
		c.respondWithError(ctx, "Unable to fetch feedback", err)
		return
	}
	if feedback == nil {
		feedback = []models.Feedback{}
	}
	sendJSONResponse(ctx, http.StatusOK, feedback)
}

func (c *Controller) CreateFeedback(ctx *gin.Context) {
	var feedback models.Feedback
	if err := ctx.ShouldBindJSON(&feedback); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	feedback.ID = ""
	if err := feedback.Validate(); err != nil {
		c.respondWithError(ctx, "Invalid feedback", err)
		return
	}
	if err := c.repos.Feedback.Create(ctx.Request.Context(), &feedback); err != nil {
		c.respondWithError(ctx, "Failed to save feedback", err)
		return
	}
	sendSuccess(ctx, gin.H{"id": feedback.ID})
}

func (c *Controller) GetContactMessages(ctx *gin.Context) {
	messages, err := c.repos.Contact.List(ctx.Request.Context())
	if err != nil {
		c.respondWithError(ctx, "Unable to fetch messages", err)
		return
	}
	if messages == nil {
		messages = []models.ContactMessage{}
	}
	sendJSONResponse(ctx, http.StatusOK, messages)
}

func (c *Controller) CreateContactMessage(ctx *gin.Context) {
	var message models.ContactMessage
	if err := ctx.ShouldBindJSON(&message); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	message.ID = ""
	if err := message.Validate(); err != nil {
		c.respondWithError(ctx, "Invalid message", err)
		return
	}
	if err := c.repos.Contact.Create(ctx.Request.Context(), &message); err != nil {
		c.respondWithError(ctx, "Failed to save message", err)
		return
	}
	sendSuccess(ctx, gin.H{"id": message.ID})
}
