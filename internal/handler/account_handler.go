package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/dafibh/fortuna/caja-backend/internal/domain"
	"github.com/dafibh/fortuna/caja-backend/internal/middleware"
	"github.com/dafibh/fortuna/caja-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AccountHandler exposes the authentication state of the caller
type AccountHandler struct {
	accountService *service.AccountService
	avatarService  *service.AvatarService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *service.AccountService, avatarService *service.AvatarService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		avatarService:  avatarService,
	}
}

// Me godoc
// @Summary Get the current account
// @Description Latest identity pushed for the caller, or 204 when logged out
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Account
// @Success 204
// @Failure 401 {object} ProblemDetails
// @Router /auth/me [get]
func (h *AccountHandler) Me(c echo.Context) error {
	subject := middleware.GetAuth0ID(c)
	if subject == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	account := h.accountService.Current(subject)
	if account == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, account)
}

// Session godoc
// @Summary Start a session
// @Description Push the token's identity onto the caller's authentication-state stream
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Account
// @Failure 401 {object} ProblemDetails
// @Router /auth/session [post]
func (h *AccountHandler) Session(c echo.Context) error {
	account := middleware.GetAccount(c)
	if account == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	// Keep an uploaded avatar over the token picture
	if current := h.accountService.Current(account.Login); current != nil && current.ImageURL != "" {
		account.ImageURL = current.ImageURL
	}

	if err := h.accountService.Authenticate(account.Login, account); err != nil {
		log.Error().Err(err).Str("subject", account.Login).Msg("Failed to start session")
		return NewInternalError(c, "Failed to start session")
	}

	return c.JSON(http.StatusOK, account)
}

// Logout godoc
// @Summary End the session
// @Description Push the empty identity onto the caller's authentication-state stream
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} ProblemDetails
// @Router /auth/logout [post]
func (h *AccountHandler) Logout(c echo.Context) error {
	subject := middleware.GetAuth0ID(c)
	if subject == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	h.accountService.Logout(subject)
	return c.NoContent(http.StatusNoContent)
}

// UploadAvatar godoc
// @Summary Upload an avatar
// @Description Crop the picture to a square avatar and push the updated account
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "JPEG or PNG picture"
// @Success 200 {object} domain.Account
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /auth/avatar [post]
func (h *AccountHandler) UploadAvatar(c echo.Context) error {
	subject := middleware.GetAuth0ID(c)
	if subject == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	// If storage isn't configured, don't attempt to process/upload
	if h.avatarService == nil || !h.avatarService.IsEnabled() {
		return NewServiceUnavailableError(c, "Avatar uploads are disabled (storage not configured)")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, service.MaxAvatarSize+1))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read file")
	}

	account, err := h.avatarService.Upload(c.Request().Context(), subject, data, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAvatarTooLarge),
			errors.Is(err, service.ErrAvatarInvalidFormat),
			errors.Is(err, service.ErrAvatarTooSmall),
			errors.Is(err, service.ErrAvatarInvalidData):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: err.Error()},
			})
		case errors.Is(err, domain.ErrUnauthorized):
			return NewUnauthorizedError(c, "Start a session before uploading an avatar")
		default:
			log.Error().Err(err).Str("subject", subject).Msg("Failed to upload avatar")
			return NewInternalError(c, "Failed to upload avatar")
		}
	}

	return c.JSON(http.StatusOK, account)
}
