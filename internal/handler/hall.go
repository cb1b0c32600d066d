package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seminar-hall-booking/internal/model"
	"github.com/iliyamo/seminar-hall-booking/internal/repository"
)

// HallHandler exposes the hall catalog. Reads are open to every
// authenticated user; create, update and delete are registered behind the
// ADMIN role gate by the router.
type HallHandler struct {
	HallRepo *repository.HallRepo
}

// NewHallHandler constructs a HallHandler.
func NewHallHandler(hallRepo *repository.HallRepo) *HallHandler {
	if hallRepo == nil {
		panic("nil repository passed to NewHallHandler")
	}
	return &HallHandler{HallRepo: hallRepo}
}

type hallReq struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity uint32 `json:"capacity"`
}

type hallJSON struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity uint32 `json:"capacity"`
}

func toHallJSON(h *model.Hall) hallJSON {
	return hallJSON{ID: h.ID, Name: h.Name, Location: h.Location, Capacity: h.Capacity}
}

// Create handles POST /v1/halls. Hall names are unique; a duplicate name
// yields 409.
func (h *HallHandler) Create(c echo.Context) error {
	var req hallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || strings.TrimSpace(req.Location) == "" || req.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, location and capacity are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	hall := model.Hall{Name: req.Name, Location: strings.TrimSpace(req.Location), Capacity: req.Capacity}
	if err := h.HallRepo.Create(ctx, &hall); err != nil {
		if err == repository.ErrHallExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "hall already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, toHallJSON(&hall))
}

// List handles GET /v1/halls for all authenticated users.
func (h *HallHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	halls, err := h.HallRepo.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]hallJSON, 0, len(halls))
	for _, hall := range halls {
		out = append(out, toHallJSON(hall))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/halls/:id.
func (h *HallHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	hall, err := h.HallRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrHallNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toHallJSON(hall))
}

// Update handles PUT /v1/halls/:id. Omitted fields keep their current
// values, mirroring a partial update.
func (h *HallHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	var req hallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	hall, err := h.HallRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrHallNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		hall.Name = name
	}
	if loc := strings.TrimSpace(req.Location); loc != "" {
		hall.Location = loc
	}
	if req.Capacity > 0 {
		hall.Capacity = req.Capacity
	}
	if err := h.HallRepo.Update(ctx, hall); err != nil {
		switch err {
		case repository.ErrHallNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		case repository.ErrHallExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "hall name already taken"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toHallJSON(hall))
}

// Delete handles DELETE /v1/halls/:id.
func (h *HallHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.HallRepo.Delete(ctx, id); err != nil {
		if err == repository.ErrHallNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "hall deleted"})
}
