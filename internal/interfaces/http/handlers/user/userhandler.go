package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stagedesk/internal/application/user/usecases"
	"stagedesk/internal/shared/constants"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
	"stagedesk/internal/shared/utils"
)

type UserHandler struct {
	registerUC usecases.RegisterUserExecutor
	loginUC    usecases.LoginUserExecutor
	profileUC  usecases.GetProfileExecutor
	logger     logger.Interface
}

func NewUserHandler(
	registerUC usecases.RegisterUserExecutor,
	loginUC usecases.LoginUserExecutor,
	profileUC usecases.GetProfileExecutor,
) *UserHandler {
	return &UserHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		profileUC:  profileUC,
		logger:     logger.NewLogger(),
	}
}

// Register handles POST /auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, newRegisterResponse(result), "Account created successfully")
}

// Login handles POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", newLoginResponse(result))
}

// GetProfile handles GET /auth/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return
	}

	result, err := h.profileUC.Execute(c.Request.Context(), usecases.GetProfileQuery{
		UserID: userID.(uint),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", newProfileResponse(result))
}
