package command

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/golobby/container/v3"

	controllers "github.com/rivio-api/rivio-api/cmd/rest-api/controllers"
	common "github.com/rivio-api/rivio-api/pkg/domain"
	identity_entities "github.com/rivio-api/rivio-api/pkg/domain/identity/entities"
	identity_in "github.com/rivio-api/rivio-api/pkg/domain/identity/ports/in"
)

// IdentityController handles the registration/session family of endpoints:
// otp request, register, login, refresh, logout, password reset, and
// contact change.
type IdentityController struct {
	helper *controllers.ControllerHelper

	requestOtp       identity_in.RequestOtpCommandHandler
	registerComplete identity_in.RegisterCompleteCommandHandler
	login            identity_in.LoginCommandHandler
	refresh          identity_in.RefreshCommandHandler
	logout           identity_in.LogoutCommandHandler
	resetRequest     identity_in.PasswordResetRequestCommandHandler
	resetConfirm     identity_in.PasswordResetConfirmCommandHandler
	contactRequest   identity_in.ContactChangeRequestCommandHandler
	contactConfirm   identity_in.ContactChangeConfirmCommandHandler
}

func NewIdentityController(c container.Container) *IdentityController {
	ctl := &IdentityController{helper: controllers.NewControllerHelper()}
	if err := c.Resolve(&ctl.requestOtp); err != nil {
		panic(err)
	}
	if err := c.Resolve(&ctl.registerComplete); err != nil {
		panic(err)
	}
	if err := c.Resolve(&ctl.login); err != nil {
		panic(err)
	}
	if err := c.Resolve(&ctl.refresh); err != nil {
		panic(err)
	}
	if err := c.Resolve(&ctl.logout); err != nil {
		panic(err)
	}
	if err := c.Resolve(&ctl.resetRequest); err != nil {
		panic(err)
	}
	if err := c.Resolve(&ctl.resetConfirm); err != nil {
		panic(err)
	}
	if err := c.Resolve(&ctl.contactRequest); err != nil {
		panic(err)
	}
	if err := c.Resolve(&ctl.contactConfirm); err != nil {
		panic(err)
	}
	return ctl
}

type requestOtpRequest struct {
	Phone   string                        `json:"phone,omitempty"`
	Email   string                        `json:"email,omitempty"`
	Purpose identity_entities.OtpPurpose `json:"purpose"`
}

func (ctl *IdentityController) RequestOtp(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requestOtpRequest
		if err := ctl.helper.DecodeJSONRequest(w, r, &req); err != nil {
			return
		}

		kind, value := identity_entities.ContactKindEmail, req.Email
		if req.Phone != "" {
			kind, value = identity_entities.ContactKindPhone, req.Phone
		}

		result, err := ctl.requestOtp.Handle(r.Context(), identity_in.RequestOtpCommand{
			Kind: kind, Value: value, Purpose: req.Purpose,
		})
		if ctl.helper.HandleError(w, r, err, "request otp") {
			return
		}
		ctl.helper.WriteOK(w, r, result)
	}
}

type registerCompleteRequest struct {
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Code     string `json:"code"`
	Password string `json:"password"`
}

func (ctl *IdentityController) RegisterComplete(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerCompleteRequest
		if err := ctl.helper.DecodeJSONRequest(w, r, &req); err != nil {
			return
		}

		kind, value := identity_entities.ContactKindEmail, req.Email
		if req.Phone != "" {
			kind, value = identity_entities.ContactKindPhone, req.Phone
		}

		tokens, err := ctl.registerComplete.Handle(r.Context(), identity_in.RegisterCompleteCommand{
			Kind: kind, Value: value, Code: req.Code, Password: req.Password,
		})
		if ctl.helper.HandleError(w, r, err, "register complete") {
			return
		}
		ctl.helper.WriteCreated(w, r, tokens)
	}
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (ctl *IdentityController) Login(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := ctl.helper.DecodeJSONRequest(w, r, &req); err != nil {
			return
		}
		tokens, err := ctl.login.Handle(r.Context(), identity_in.LoginCommand{
			Identifier: req.Identifier, Password: req.Password,
		})
		if ctl.helper.HandleError(w, r, err, "login") {
			return
		}
		ctl.helper.WriteOK(w, r, tokens)
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (ctl *IdentityController) Refresh(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := ctl.helper.DecodeJSONRequest(w, r, &req); err != nil {
			return
		}
		tokens, err := ctl.refresh.Handle(r.Context(), identity_in.RefreshCommand{RefreshToken: req.RefreshToken})
		if ctl.helper.HandleError(w, r, err, "refresh") {
			return
		}
		ctl.helper.WriteOK(w, r, tokens)
	}
}

func (ctl *IdentityController) Logout(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		err := ctl.logout.Handle(r.Context(), identity_in.LogoutCommand{RefreshToken: req.RefreshToken})
		if ctl.helper.HandleError(w, r, err, "logout") {
			return
		}
		ctl.helper.WriteNoContent(w, r)
	}
}

type passwordResetRequestRequest struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

func (ctl *IdentityController) PasswordResetRequest(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req passwordResetRequestRequest
		if err := ctl.helper.DecodeJSONRequest(w, r, &req); err != nil {
			return
		}
		kind, value := identity_entities.ContactKindEmail, req.Email
		if req.Phone != "" {
			kind, value = identity_entities.ContactKindPhone, req.Phone
		}
		result, err := ctl.resetRequest.Handle(r.Context(), identity_in.PasswordResetRequestCommand{Kind: kind, Value: value})
		if ctl.helper.HandleError(w, r, err, "password reset request") {
			return
		}
		ctl.helper.WriteOK(w, r, result)
	}
}

type passwordResetConfirmRequest struct {
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

func (ctl *IdentityController) PasswordResetConfirm(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req passwordResetConfirmRequest
		if err := ctl.helper.DecodeJSONRequest(w, r, &req); err != nil {
			return
		}
		kind, value := identity_entities.ContactKindEmail, req.Email
		if req.Phone != "" {
			kind, value = identity_entities.ContactKindPhone, req.Phone
		}
		err := ctl.resetConfirm.Handle(r.Context(), identity_in.PasswordResetConfirmCommand{
			Kind: kind, Value: value, Code: req.Code, NewPassword: req.NewPassword,
		})
		if ctl.helper.HandleError(w, r, err, "password reset confirm") {
			return
		}
		ctl.helper.WriteNoContent(w, r)
	}
}

type contactChangeRequestRequest struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

func (ctl *IdentityController) ContactChangeRequest(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := common.RequireUserID(r.Context())
		if !ok {
			ctl.helper.WriteBadRequest(w, r, "missing authenticated user")
			return
		}
		var req contactChangeRequestRequest
		if err := ctl.helper.DecodeJSONRequest(w, r, &req); err != nil {
			return
		}
		kind, value := identity_entities.ContactKindEmail, req.Email
		if req.Phone != "" {
			kind, value = identity_entities.ContactKindPhone, req.Phone
		}
		result, err := ctl.contactRequest.Handle(r.Context(), identity_in.ContactChangeRequestCommand{
			UserID: userID, NewKind: kind, NewValue: value,
		})
		if ctl.helper.HandleError(w, r, err, "contact change request") {
			return
		}
		ctl.helper.WriteOK(w, r, result)
	}
}

type contactChangeConfirmRequest struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Code  string `json:"code"`
}

func (ctl *IdentityController) ContactChangeConfirm(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := common.RequireUserID(r.Context())
		if !ok {
			ctl.helper.WriteBadRequest(w, r, "missing authenticated user")
			return
		}
		var req contactChangeConfirmRequest
		if err := ctl.helper.DecodeJSONRequest(w, r, &req); err != nil {
			return
		}
		kind, value := identity_entities.ContactKindEmail, req.Email
		if req.Phone != "" {
			kind, value = identity_entities.ContactKindPhone, req.Phone
		}
		err := ctl.contactConfirm.Handle(r.Context(), identity_in.ContactChangeConfirmCommand{
			UserID: userID, NewKind: kind, NewValue: value, Code: req.Code,
		})
		if ctl.helper.HandleError(w, r, err, "contact change confirm") {
			return
		}
		ctl.helper.WriteNoContent(w, r)
	}
}
