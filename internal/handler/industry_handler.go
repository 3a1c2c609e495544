package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"communityhub/internal/auth"
	"communityhub/internal/httperr"
	"communityhub/internal/model"
	"communityhub/internal/service"
)

// IndustryHandler handles member business listing endpoints.
type IndustryHandler struct {
	industryService service.IndustryService
}

// NewIndustryHandler creates a new industry handler.
func NewIndustryHandler(industryService service.IndustryService) *IndustryHandler {
	return &IndustryHandler{industryService: industryService}
}

// ProductRequest is a product in an industry payload.
type ProductRequest struct {
	Name   string          `json:"name" validate:"required"`
	Price  decimal.Decimal `json:"price"`
	Images []string        `json:"images"`
}

// VacancyRequest is the job-opening sub-object in an industry payload.
type VacancyRequest struct {
	Open   bool            `json:"open"`
	Title  string          `json:"title"`
	Count  int             `json:"count" validate:"min=0"`
	Salary decimal.Decimal `json:"salary"`
}

// IndustryRequest is the create/update payload for an industry.
type IndustryRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	Address     string           `json:"address"`
	Phone       string           `json:"phone"`
	Website     string           `json:"website"`
	Products    []ProductRequest `json:"products" validate:"dive"`
	Vacancy     VacancyRequest   `json:"vacancy"`
}

// IndustryResponse shapes an industry for clients: the owner is expanded to
// display fields and the vacancy only appears while open.
type IndustryResponse struct {
	*model.Industry
	Owner   *model.UserRef `json:"owner,omitempty"`
	Vacancy *model.Vacancy `json:"vacancy,omitempty"`
}

func shapeIndustry(industry *model.Industry) IndustryResponse {
	resp := IndustryResponse{Industry: industry}
	if industry.Owner != nil {
		ref := industry.Owner.Ref()
		resp.Owner = &ref
	}
	if industry.Vacancy.Open {
		v := industry.Vacancy
		resp.Vacancy = &v
	}
	return resp
}

func (r *IndustryRequest) toModel() *model.Industry {
	industry := &model.Industry{
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		Phone:       r.Phone,
		Website:     r.Website,
		Vacancy: model.Vacancy{
			Open:   r.Vacancy.Open,
			Title:  r.Vacancy.Title,
			Count:  r.Vacancy.Count,
			Salary: r.Vacancy.Salary,
		},
	}
	for _, p := range r.Products {
		industry.Products = append(industry.Products, model.Product{
			Name:   p.Name,
			Price:  p.Price,
			Images: model.ImageList(p.Images),
		})
	}
	return industry
}

// List godoc
// @Summary List industries
// @Tags industries
// @Produce json
// @Success 200 {array} IndustryResponse
// @Router /industries [get]
func (h *IndustryHandler) List(c echo.Context) error {
	industries, err := h.industryService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]IndustryResponse, 0, len(industries))
	for i := range industries {
		resp = append(resp, shapeIndustry(&industries[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get an industry
// @Tags industries
// @Produce json
// @Param id path string true "Industry ID"
// @Success 200 {object} IndustryResponse
// @Failure 404 {object} httperr.Response
// @Router /industries/{id} [get]
func (h *IndustryHandler) Get(c echo.Context) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	industry, err := h.industryService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, shapeIndustry(industry))
}

// Create godoc
// @Summary Create an industry owned by the caller
// @Tags industries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body IndustryRequest true "Industry data"
// @Success 201 {object} IndustryResponse
// @Failure 400 {object} httperr.ValidationResponse
// @Failure 401 {object} httperr.Response
// @Router /industries [post]
func (h *IndustryHandler) Create(c echo.Context) error {
	ident, err := auth.FromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	var req IndustryRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	industry, err := h.industryService.Create(c.Request().Context(), ident, req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, shapeIndustry(industry))
}

// Update godoc
// @Summary Update an industry (owner or admin)
// @Tags industries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Industry ID"
// @Param request body IndustryRequest true "Industry data"
// @Success 200 {object} IndustryResponse
// @Failure 400 {object} httperr.ValidationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /industries/{id} [put]
func (h *IndustryHandler) Update(c echo.Context) error {
	ident, err := auth.FromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}
	var req IndustryRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	industry, err := h.industryService.Update(c.Request().Context(), ident, id, req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, shapeIndustry(industry))
}

// Delete godoc
// @Summary Delete an industry (owner or admin)
// @Tags industries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Industry ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /industries/{id} [delete]
func (h *IndustryHandler) Delete(c echo.Context) error {
	ident, err := auth.FromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}

	if err := h.industryService.Delete(c.Request().Context(), ident, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"msg": "industry deleted"})
}

// UploadProductImage godoc
// @Summary Upload a product image (owner or admin)
// @Tags industries
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Industry ID"
// @Param product_id formData string true "Product ID"
// @Param image formData file true "Image file"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /industries/{id}/images [post]
func (h *IndustryHandler) UploadProductImage(c echo.Context) error {
	ident, err := auth.FromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil
	}

	productID, err := parseFormUUID(c, "product_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, httperr.Response{Msg: "invalid product_id"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, httperr.Response{Msg: "image file is required"})
	}
	src, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer src.Close()

	url, err := h.industryService.AddProductImage(c.Request().Context(), ident, id, productID, fileHeader.Filename, src)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
