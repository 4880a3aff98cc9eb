package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"integrarural/pkg/apperr"
	"integrarural/pkg/load/service"
	"integrarural/pkg/report"
)

type LoadCtrl struct{ svc service.LoadService }

func New(svc service.LoadService) *LoadCtrl { return &LoadCtrl{svc} }

func (h *LoadCtrl) Create(c echo.Context) error {
	var form service.LoadForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	load, err := h.svc.Create(c.Request().Context(), form)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, load)
}

func (h *LoadCtrl) List(c echo.Context) error {
	out, err := h.svc.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoadCtrl) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	load, err := h.svc.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, load)
}

func (h *LoadCtrl) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	var patch service.LoadPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	load, err := h.svc.Update(c.Request().Context(), id, actor(c), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, load)
}

func (h *LoadCtrl) SyncNFe(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	load, err := h.svc.SyncStatus(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, load)
}

func (h *LoadCtrl) ResubmitNFe(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	load, err := h.svc.Resubmit(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, load)
}

func (h *LoadCtrl) DistinctValues(c echo.Context) error {
	out, err := h.svc.DistinctValues(c.QueryParam("field"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoadCtrl) Export(c echo.Context) error {
	loads, err := h.svc.List()
	if err != nil {
		return fail(c, err)
	}
	wb, err := report.Workbook(loads)
	if err != nil {
		return fail(c, err)
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		return fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="carregamentos.xlsx"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, &apperr.ValidationError{Field: "id", Reason: "must be a positive integer"}
	}
	return uint(id), nil
}

func actor(c echo.Context) service.Actor {
	a := service.Actor{}
	if v, ok := c.Get("uid").(uint); ok {
		a.UserID = v
	}
	if v, ok := c.Get("role").(string); ok {
		a.Role = v
	}
	return a
}

func fail(c echo.Context, err error) error {
	return c.JSON(apperr.HTTPStatus(err), echo.Map{"error": err.Error()})
}
