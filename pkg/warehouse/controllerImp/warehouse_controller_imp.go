package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"integrarural/entities"
	"integrarural/pkg/apperr"
	"integrarural/pkg/cnpj"
	"integrarural/pkg/warehouse/repository"
)

type WarehouseCtrl struct {
	repo   repository.WarehouseRepository
	lookup *cnpj.Client
}

func New(repo repository.WarehouseRepository, lookup *cnpj.Client) *WarehouseCtrl {
	return &WarehouseCtrl{repo: repo, lookup: lookup}
}

func (h *WarehouseCtrl) List(c echo.Context) error {
	out, err := h.repo.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WarehouseCtrl) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	w, err := h.repo.Get(uint(id))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, w)
}

func (h *WarehouseCtrl) Create(c echo.Context) error {
	var w entities.Warehouse
	if err := c.Bind(&w); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	if w.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if w.StdMoisturePct == 0 {
		w.StdMoisturePct = 14
	}
	if w.MoistureFactor == 0 {
		w.MoistureFactor = 1.5
	}
	if w.StdImpurityPct == 0 {
		w.StdImpurityPct = 1
	}
	if err := h.repo.Create(&w); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, w)
}

func (h *WarehouseCtrl) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	w, err := h.repo.Get(uint(id))
	if err != nil {
		return fail(c, err)
	}
	if err := c.Bind(w); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	w.ID = uint(id)
	if err := h.repo.Save(w); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, w)
}

// LookupCNPJ pre-fills recipient data from the public registry.
func (h *WarehouseCtrl) LookupCNPJ(c echo.Context) error {
	q := c.QueryParam("cnpj")
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cnpj query param is required"})
	}
	r, err := h.lookup.Fetch(c.Request().Context(), q)
	if errors.Is(err, cnpj.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "cnpj not found in public registry"})
	}
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, r)
}

func fail(c echo.Context, err error) error {
	return c.JSON(apperr.HTTPStatus(err), echo.Map{"error": err.Error()})
}
