package user

import (
	"context"
	"errors"
	"net/http"

	"github.com/ferdiebergado/usersvc/internal/pkg/errorx"
	"github.com/ferdiebergado/usersvc/internal/pkg/message"
	"github.com/ferdiebergado/usersvc/internal/pkg/web"
	"github.com/google/uuid"
)

type Service interface {
	ListUsers(ctx context.Context) ([]UserView, error)
	GetUser(ctx context.Context, id uuid.UUID) (*UserView, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (UserView, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	UpdateName(ctx context.Context, id uuid.UUID, name string) (UserView, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	msg := message.UsersListed
	web.RespondOK(w, &msg, &views)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		web.RespondNotFound(w, err, message.UserNotFound, codeOf(KindNotFound))
		return
	}

	view, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}

	if view == nil {
		web.RespondNotFound(w, &Error{Kind: KindNotFound, ID: id}, message.UserNotFound, codeOf(KindNotFound))
		return
	}

	msg := message.UserFound
	web.RespondOK(w, &msg, view)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[CreateUserRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	view, err := h.svc.CreateUser(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}

	msg := message.UserCreated
	web.RespondCreated(w, &msg, &view)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		web.RespondNotFound(w, err, message.UserNotFound, codeOf(KindNotFound))
		return
	}

	if err := h.svc.DeleteUser(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}

	msg := message.UserDeleted
	web.RespondOK[UserView](w, &msg, nil)
}

func (h *Handler) UpdateName(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		web.RespondNotFound(w, err, message.UserNotFound, codeOf(KindNotFound))
		return
	}

	req, err := web.ParamsFromContext[UpdateNameRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	view, err := h.svc.UpdateName(r.Context(), id, req.Name)
	if err != nil {
		h.fail(w, err)
		return
	}

	msg := message.UserUpdated
	web.RespondOK(w, &msg, &view)
}

// fail maps a service error to its response.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	if errorx.IsContextError(err) {
		web.RespondRequestTimeout(w, err, message.RequestTimeout, nil)
		return
	}

	var userErr *Error
	if !errors.As(err, &userErr) {
		web.RespondInternalServerError(w, err)
		return
	}

	code := codeOf(userErr.Kind)
	switch userErr.Kind {
	case KindNotFound:
		web.RespondNotFound(w, err, message.UserNotFound, code)
	case KindDuplicateEmail:
		web.RespondConflict(w, err, message.EmailTaken, code)
	case KindHasPendingPayments:
		web.RespondConflict(w, err, message.PendingPayments, code)
	case KindCollaborator:
		web.RespondBadGateway(w, err, message.PaymentsUnavailable, code)
	default:
		web.RespondInternalServerError(w, err)
	}
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}

func codeOf(k Kind) map[string]string {
	return map[string]string{"code": k.String()}
}
