package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/therohansaxena/AddressBook/internal/config"
	"github.com/therohansaxena/AddressBook/internal/domain/contact"
	"github.com/therohansaxena/AddressBook/internal/service"
)

// ContactManager is the slice of the contact service this handler consumes.
// Keep it an interface so tests can fake it.
type ContactManager interface {
	ListAll(ctx context.Context) ([]contact.ContactDTO, error)
	GetByID(ctx context.Context, id int64) (contact.ContactDTO, error)
	Create(ctx context.Context, dto contact.ContactDTO) (contact.ContactDTO, error)
	Update(ctx context.Context, id int64, dto contact.ContactDTO) (contact.ContactDTO, error)
	Delete(ctx context.Context, id int64) error
}

type ContactsHandler struct {
	svc ContactManager
}

func NewContactsHandler(svc ContactManager) *ContactsHandler {
	return &ContactsHandler{svc: svc}
}

func (h *ContactsHandler) ListContacts(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	contacts, err := h.svc.ListAll(cctx)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, contacts)
}

func (h *ContactsHandler) GetContactById(ctx *gin.Context) {
	id, ok := contactID(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	c, err := h.svc.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			RespondNotFound(ctx, contactNotFoundMessage(id))
			return
		}

		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, c)
}

func (h *ContactsHandler) CreateContact(ctx *gin.Context) {
	var dto contact.ContactDTO

	if !BindJSON(ctx, &dto) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	created, err := h.svc.Create(cctx, dto)

	if err != nil {
		var vErr *service.ValidationError

		if errors.As(err, &vErr) {
			RespondFieldErrors(ctx, vErr.Errors)
			return
		}

		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, created)
}

func (h *ContactsHandler) UpdateContact(ctx *gin.Context) {
	id, ok := contactID(ctx)

	if !ok {
		return
	}

	var dto contact.ContactDTO

	if !BindJSON(ctx, &dto) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	updated, err := h.svc.Update(cctx, id, dto)

	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			RespondNotFound(ctx, contactNotFoundMessage(id))
			return
		}

		var vErr *service.ValidationError

		if errors.As(err, &vErr) {
			RespondFieldErrors(ctx, vErr.Errors)
			return
		}

		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *ContactsHandler) DeleteContact(ctx *gin.Context) {
	id, ok := contactID(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.svc.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			RespondNotFound(ctx, contactNotFoundMessage(id))
			return
		}

		RespondInternal(ctx)
		return
	}

	RespondMessage(ctx, http.StatusOK, "Contact deleted successfully")
}

// helpers

func contactID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil {
		RespondError(ctx, http.StatusBadRequest, "Invalid contact ID")
		return 0, false
	}

	return id, true
}

func contactNotFoundMessage(id int64) string {
	return fmt.Sprintf("Contact with ID %d not found", id)
}
