// Package authhdl - HTTP handlers for authentication and user management.
package authhdl

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	auditsvc "nova_crm/internal/api/audit/service"
	authdto "nova_crm/internal/api/auth/dto"
	authsvc "nova_crm/internal/api/auth/service"
	basehdl "nova_crm/internal/api/base/handler"
	"nova_crm/internal/api/middleware"
	"nova_crm/internal/common"
	"nova_crm/internal/global"
	"nova_crm/internal/logger"
	"nova_crm/internal/mailer"
)

// UserHandler serves registration, login and profile routes.
type UserHandler struct {
	users  *authsvc.UserService
	mail   *mailer.Mailer
	audit  *auditsvc.Recorder
	tokens *authsvc.TokenManager
}

// NewUserHandler wires a UserHandler over its dependencies.
func NewUserHandler(users *authsvc.UserService, mail *mailer.Mailer, audit *auditsvc.Recorder) *UserHandler {
	return &UserHandler{
		users:  users,
		mail:   mail,
		audit:  audit,
		tokens: middleware.TokenManager(),
	}
}

func (h *UserHandler) recordAuth(c fiber.Ctx, userID primitive.ObjectID, action string) {
	h.audit.Record(c.Context(), auditsvc.Entry{
		User:      userID,
		Action:    action,
		Entity:    authsvc.EntityUser,
		EntityID:  userID.Hex(),
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
	})
}

// HandleRegister serves POST /auth/register.
func (h *UserHandler) HandleRegister(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input authdto.RegisterInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.Fail(c, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, nil))
		}
		if err := global.Validate.Struct(&input); err != nil {
			return basehdl.Fail(c, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error()))
		}

		user, otp, err := h.users.Register(c.Context(), &input)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		// Mail delivery never fails the registration.
		if err := h.mail.SendVerificationOTP(user.Email, user.FirstName, otp); err != nil {
			logger.GetErrorLogger().WithError(err).WithField("email", user.Email).Error("failed to send verification mail")
		}

		return basehdl.Created(c, user)
	})
}

// HandleVerifyEmail serves POST /auth/verify-email.
func (h *UserHandler) HandleVerifyEmail(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input authdto.VerifyEmailInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.Fail(c, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, nil))
		}
		if err := global.Validate.Struct(&input); err != nil {
			return basehdl.Fail(c, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error()))
		}

		user, err := h.users.VerifyEmail(c.Context(), input.Email, input.OTP)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		token, err := h.tokens.GenerateToken(user.ID.Hex(), user.Email, user.Role)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		return basehdl.Success(c, authdto.LoginResult{Token: token, User: user})
	})
}

// HandleLogin serves POST /auth/login.
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input authdto.LoginInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.Fail(c, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, nil))
		}
		if err := global.Validate.Struct(&input); err != nil {
			return basehdl.Fail(c, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error()))
		}

		user, err := h.users.Login(c.Context(), input.Email, input.Password)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		token, err := h.tokens.GenerateToken(user.ID.Hex(), user.Email, user.Role)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		h.recordAuth(c, user.ID, "LOGIN")
		logger.LogAuth("login", c, map[string]interface{}{"email": user.Email})

		return basehdl.Success(c, authdto.LoginResult{Token: token, User: user})
	})
}

// HandleLogout serves POST /auth/logout.
func (h *UserHandler) HandleLogout(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		user, ok := middleware.UserFromContext(c)
		if !ok {
			return basehdl.Fail(c, common.ErrTokenMissing)
		}

		if err := h.users.Logout(c.Context(), user.ID); err != nil {
			return basehdl.Fail(c, err)
		}

		h.recordAuth(c, user.ID, "LOGOUT")
		logger.LogAuth("logout", c, map[string]interface{}{"email": user.Email})

		return basehdl.Success(c, nil)
	})
}

// HandleGetMe serves GET /auth/me.
func (h *UserHandler) HandleGetMe(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		user, ok := middleware.UserFromContext(c)
		if !ok {
			return basehdl.Fail(c, common.ErrTokenMissing)
		}
		return basehdl.Success(c, user)
	})
}

// HandleUpdateMe serves PATCH /auth/me.
func (h *UserHandler) HandleUpdateMe(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		user, ok := middleware.UserFromContext(c)
		if !ok {
			return basehdl.Fail(c, common.ErrTokenMissing)
		}

		var input authdto.ProfileUpdateInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.Fail(c, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, nil))
		}

		updated, err := h.users.UpdateProfile(c.Context(), user.ID, &input)
		if err != nil {
			return basehdl.Fail(c, err)
		}
		return basehdl.Success(c, updated)
	})
}
