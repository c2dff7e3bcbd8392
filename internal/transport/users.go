package transport

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/models"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/service"
)

func (s *HTTPServer) Register(c echo.Context) error {
	req := models.RegisterReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	user, token, err := s.general.Register(c.Request().Context(),
		strings.ToLower(strings.TrimSpace(req.Email)), req.Password, req.FirstName, req.LastName)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, models.AuthResp{User: userResp(user), Token: token})
}

func (s *HTTPServer) Login(c echo.Context) error {
	req := models.LoginReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	user, token, err := s.general.Login(c.Request().Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, models.AuthResp{User: userResp(user), Token: token})
}

func (s *HTTPServer) Me(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, map[string]interface{}{"user": userResp(user)})
}

func (s *HTTPServer) UpdateProfile(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := models.ProfileReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	updated, err := s.general.UpdateProfile(c.Request().Context(), user.ID, service.ProfileFields{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, map[string]interface{}{"user": userResp(updated)})
}

func (s *HTTPServer) ChangePassword(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := models.PasswordReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	err = s.general.ChangePassword(c.Request().Context(), user.ID, req.CurrentPassword, req.NewPassword)
	if errors.Is(err, service.ErrLoginPasswordDoesNotMatch) {
		return newAPIError(http.StatusBadRequest, "Current password is incorrect", nil)
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.Envelope{Success: true, Message: "Password changed successfully"})
}

func (s *HTTPServer) DeleteAccount(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	if err := s.general.DeleteAccount(c.Request().Context(), user.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.Envelope{Success: true, Message: "Account deleted successfully"})
}
