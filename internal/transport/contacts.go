package transport

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/models"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/service"
)

func (s *HTTPServer) ContactList(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := models.ContactListReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := s.contacts.List(c.Request().Context(), user.ID, service.ListFilter{
		Page:      req.Page,
		Limit:     req.Limit,
		Search:    req.Search,
		Tag:       req.Tag,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, contactListResp(res))
}

func (s *HTTPServer) ContactStats(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	st, err := s.contacts.Stats(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, statsResp(st))
}

func (s *HTTPServer) ContactGet(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	contact, err := s.contacts.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, models.ContactEnvelope{Contact: contactResp(contact)})
}

func (s *HTTPServer) ContactCreate(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := models.ContactReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	birthday, err := birthdayField(req.Birthday)
	if err != nil {
		return err
	}
	contact, err := s.contacts.Create(c.Request().Context(), user.ID, service.ContactFields{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Company:    req.Company,
		JobTitle:   req.JobTitle,
		AvatarURL:  req.AvatarURL,
		Notes:      req.Notes,
		Website:    req.Website,
		Address:    req.Address,
		Birthday:   birthday,
		IsFavorite: req.IsFavorite,
	}, req.Tags)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, models.ContactEnvelope{Contact: contactResp(contact)})
}

func (s *HTTPServer) ContactUpdate(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := models.ContactUpdateReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	birthday, err := birthdayField(req.Birthday)
	if err != nil {
		return err
	}
	contact, err := s.contacts.Update(c.Request().Context(), user.ID, id, service.ContactFields{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Company:    req.Company,
		JobTitle:   req.JobTitle,
		AvatarURL:  req.AvatarURL,
		Notes:      req.Notes,
		Website:    req.Website,
		Address:    req.Address,
		Birthday:   birthday,
		IsFavorite: req.IsFavorite,
	}, req.Tags)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, models.ContactEnvelope{Contact: contactResp(contact)})
}

func (s *HTTPServer) ContactDelete(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	if err := s.contacts.Delete(c.Request().Context(), user.ID, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.Envelope{Success: true, Message: "Contact deleted successfully"})
}

func birthdayField(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := parseDate(*raw)
	if err != nil {
		return nil, newAPIError(http.StatusBadRequest, "Validation failed", []models.FieldError{{
			Field:   "birthday",
			Rule:    "isodate",
			Message: "must be an ISO 8601 date",
		}})
	}
	return &t, nil
}
