package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/carrental/user-service/internal/command"
	"github.com/carrental/user-service/shared/cqrs"
	"github.com/carrental/user-service/shared/middleware"
	"github.com/carrental/user-service/shared/models"
	"github.com/gin-gonic/gin"
)

const (
	MsgRegistered        = "User registration successful"
	MsgSettingsUnchanged = "User settings not changed"
	MsgSettingsUpdated   = "User settings updated"
	MsgInvalidBody       = "Invalid request body"
)

// AccountCommander defines the write-side operations used by AccountHandler.
type AccountCommander interface {
	Register(context.Context, cqrs.RegisterAccountCommand) (*models.Account, error)
	UpdateSettings(context.Context, cqrs.UpdateSettingsCommand) (command.UpdateOutcome, error)
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	GetProfile(context.Context, cqrs.GetProfileQuery) (*models.UserInfo, error)
	ListAccounts(context.Context, cqrs.ListAccountsQuery) ([]models.AccountView, error)
}

// AccountHandler routes requests to the command or query service as appropriate.
type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
}

type RegisterRequest struct {
	ID              int64   `json:"id"`
	Email           string  `json:"email" validate:"omitempty,max=254"`
	Password        string  `json:"password"`
	DefaultCurrency *string `json:"defaultCurrency"`
}

type UpdateSettingsRequest struct {
	DefaultCurrency *string `json:"defaultCurrency"`
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries}
}

// Routes mounts the account routes. auth guards everything except registration;
// registration runs behind the given limiter.
func (h *AccountHandler) Routes(r gin.IRoutes, auth, limit gin.HandlerFunc) {
	r.POST("/user", limit, h.RegisterAccount)
	r.GET("/user", auth, h.GetProfile)
	r.PUT("/user", auth, h.UpdateSettings)
	r.GET("/users", auth, h.ListAccounts)
}

func (h *AccountHandler) RegisterAccount(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	_, err := h.commands.Register(c.Request.Context(), cqrs.RegisterAccountCommand{
		ID:              req.ID,
		Email:           req.Email,
		Password:        req.Password,
		DefaultCurrency: req.DefaultCurrency,
	})
	if err != nil {
		middleware.RespondWithAppError(c, err)
		return
	}

	middleware.RespondWithMessage(c, MsgRegistered)
}

func (h *AccountHandler) GetProfile(c *gin.Context) {
	email, _ := middleware.GetCallerEmail(c)

	info, err := h.queries.GetProfile(c.Request.Context(), cqrs.GetProfileQuery{CallerEmail: email})
	if err != nil {
		middleware.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *AccountHandler) UpdateSettings(c *gin.Context) {
	email, _ := middleware.GetCallerEmail(c)

	change, err := readSettingsChange(c.Request.Body)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	outcome, err := h.commands.UpdateSettings(c.Request.Context(), cqrs.UpdateSettingsCommand{
		CallerEmail: email,
		Change:      change,
	})
	if err != nil {
		middleware.RespondWithAppError(c, err)
		return
	}

	if outcome == command.SettingsUnchanged {
		middleware.RespondWithMessage(c, MsgSettingsUnchanged)
		return
	}
	middleware.RespondWithMessage(c, MsgSettingsUpdated)
}

func (h *AccountHandler) ListAccounts(c *gin.Context) {
	email, _ := middleware.GetCallerEmail(c)

	views, err := h.queries.ListAccounts(c.Request.Context(), cqrs.ListAccountsQuery{CallerEmail: email})
	if err != nil {
		middleware.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// readSettingsChange returns nil for an empty or JSON null body.
func readSettingsChange(body io.Reader) (*cqrs.SettingsChange, error) {
	if body == nil {
		return nil, nil
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var req UpdateSettingsRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, err
	}
	return &cqrs.SettingsChange{DefaultCurrency: req.DefaultCurrency}, nil
}
