package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fandressouza/indicacoes/domain"
	"github.com/fandressouza/indicacoes/internal/http/middleware"
	"github.com/fandressouza/indicacoes/internal/http/response"
)

// AdminHandlers serves the moderation queue and user administration
type AdminHandlers struct {
	moderation  domain.ModerationService
	credentials domain.CredentialService
	images      imageURLs
}

// NewAdminHandlers creates admin handlers
func NewAdminHandlers(moderation domain.ModerationService, credentials domain.CredentialService, imageBase string) *AdminHandlers {
	return &AdminHandlers{moderation: moderation, credentials: credentials, images: imageURLs(imageBase)}
}

// Queue lists the listings waiting for review
func (h *AdminHandlers) Queue(c *gin.Context) {
	seq, err := h.moderation.ListPending(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		response.Error(c, err, "/profile")
		return
	}
	pending, err := h.images.views(seq)
	if err != nil {
		response.Error(c, err, "")
		return
	}
	response.OK(c, http.StatusOK, gin.H{
		"pending": pending,
		"count":   len(pending),
	})
}

// Approve publishes a pending listing
func (h *AdminHandlers) Approve(c *gin.Context) {
	id := c.Param("id")
	if err := h.moderation.Approve(c.Request.Context(), middleware.SessionFrom(c), id); err != nil {
		response.Error(c, err, "/admin")
		return
	}
	response.Done(c, http.StatusOK, gin.H{"id": id, "status": domain.StatusApproved}, "/admin", flashApproved)
}

// Reject declines a pending listing. The reason comes from the form or the query string.
func (h *AdminHandlers) Reject(c *gin.Context) {
	id := c.Param("id")
	reason := c.DefaultPostForm("reason", c.Query("reason"))
	if err := h.moderation.Reject(c.Request.Context(), middleware.SessionFrom(c), id, reason); err != nil {
		response.Error(c, err, "/admin")
		return
	}
	response.Done(c, http.StatusOK, gin.H{"id": id, "status": domain.StatusRejected, "reason": reason}, "/admin", flashRejected)
}

// User shows a user record
func (h *AdminHandlers) User(c *gin.Context) {
	user, err := h.credentials.GetUser(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		h.userError(c, err)
		return
	}
	response.OK(c, http.StatusOK, newUserView(user))
}

// Ban sets or clears the ban flag of a user. banned defaults to true.
func (h *AdminHandlers) Ban(c *gin.Context) {
	id := c.Param("id")
	banned, err := strconv.ParseBool(c.DefaultPostForm("banned", "true"))
	if err != nil {
		response.Error(c, domain.ErrInvalidForm, "/user/"+id)
		return
	}

	if err := h.credentials.SetBanned(c.Request.Context(), middleware.SessionFrom(c), id, banned); err != nil {
		h.userError(c, err)
		return
	}

	flash := flashUserUnbanned
	if banned {
		flash = flashUserBanned
	}
	response.Done(c, http.StatusOK, gin.H{"id": id, "banned": banned}, "/user/"+id, flash)
}

// userError answers a missing user with 404 instead of the login failure code
func (h *AdminHandlers) userError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNoSuchUser) {
		response.Fail(c, http.StatusNotFound, domain.CodeNotFound, msgUserNotFound)
		return
	}
	response.Error(c, err, "/admin")
}
