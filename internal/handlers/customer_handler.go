package handlers

import (
	"github.com/gin-gonic/gin"

	customerdomain "github.com/BruksfildServices01/vet-backoffice/internal/domain/customer"
	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/vet-backoffice/internal/middleware"
	ucCustomer "github.com/BruksfildServices01/vet-backoffice/internal/usecase/customer"
)

type CustomerHandler struct {
	customers *ucCustomer.Service
}

func NewCustomerHandler(customers *ucCustomer.Service) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

func (h *CustomerHandler) List(c *gin.Context) {
	page, limit := httpresp.Pagination(c)

	items, total, err := h.customers.List(c.Request.Context(), customerdomain.ListFilter{
		UserID: middleware.UserID(c),
		Query:  c.Query("query"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, items, total, page, limit)
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	customer, err := h.customers.Create(c.Request.Context(), middleware.UserID(c), ucCustomer.CreateInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, customer)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	customerID, ok := idParam(c, "customerId")
	if !ok {
		return
	}

	customer, err := h.customers.Get(c.Request.Context(), middleware.UserID(c), customerID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	customerID, ok := idParam(c, "customerId")
	if !ok {
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	customer, err := h.customers.Update(c.Request.Context(), middleware.UserID(c), customerID, ucCustomer.UpdateInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, customer)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	customerID, ok := idParam(c, "customerId")
	if !ok {
		return
	}

	if err := h.customers.Delete(c.Request.Context(), middleware.UserID(c), customerID); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}
