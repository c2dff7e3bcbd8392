package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/models"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/service"
)

func (s *HTTPServer) TagList(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	tags, err := s.tags.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	resp := make([]models.TagResp, len(tags))
	for i := range tags {
		resp[i] = tagResp(&tags[i])
	}
	return respond(c, http.StatusOK, map[string]interface{}{"tags": resp})
}

func (s *HTTPServer) TagCreate(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := models.TagReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	tag, err := s.tags.Create(c.Request().Context(), user.ID, req.Name, req.Color, req.Description)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, map[string]interface{}{"tag": tagResp(tag)})
}

func (s *HTTPServer) TagUpdate(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	req := models.TagUpdateReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	tag, err := s.tags.Update(c.Request().Context(), user.ID, id, service.TagFields{
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, map[string]interface{}{"tag": tagResp(tag)})
}

func (s *HTTPServer) TagDelete(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.tags.Delete(c.Request().Context(), user.ID, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.Envelope{Success: true, Message: "Tag deleted successfully"})
}
