package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/vet-backoffice/internal/dto"
	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/vet-backoffice/internal/middleware"
	ucImage "github.com/BruksfildServices01/vet-backoffice/internal/usecase/image"
	ucPet "github.com/BruksfildServices01/vet-backoffice/internal/usecase/pet"
)

type PetHandler struct {
	pets   *ucPet.Service
	images *ucImage.Service
}

func NewPetHandler(pets *ucPet.Service, images *ucImage.Service) *PetHandler {
	return &PetHandler{pets: pets, images: images}
}

type CreatePetRequest struct {
	Name      string   `json:"name" binding:"required"`
	Species   string   `json:"species" binding:"required"`
	Breed     string   `json:"breed"`
	Sex       string   `json:"sex" binding:"omitempty,pet_sex"`
	BirthDate string   `json:"birth_date"`
	WeightKg  *float64 `json:"weight_kg"`
	Notes     string   `json:"notes"`
}

type UpdatePetRequest struct {
	Name      *string           `json:"name"`
	Species   *string           `json:"species"`
	Breed     *string           `json:"breed"`
	Sex       *string           `json:"sex" binding:"omitempty,pet_sex"`
	BirthDate Nullable[string]  `json:"birth_date"`
	WeightKg  Nullable[float64] `json:"weight_kg"`
	Notes     *string           `json:"notes"`
}

func (h *PetHandler) List(c *gin.Context) {
	customerID, ok := idParam(c, "customerId")
	if !ok {
		return
	}

	pets, err := h.pets.List(c.Request.Context(), middleware.UserID(c), customerID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, pets)
}

// Search serves the pet picker across all of the user's customers.
func (h *PetHandler) Search(c *gin.Context) {
	pets, err := h.pets.Search(c.Request.Context(), middleware.UserID(c), c.Query("query"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, pets)
}

func (h *PetHandler) Create(c *gin.Context) {
	customerID, ok := idParam(c, "customerId")
	if !ok {
		return
	}

	var req CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	pet, err := h.pets.Create(c.Request.Context(), middleware.UserID(c), customerID, ucPet.CreateInput{
		Name:      req.Name,
		Species:   req.Species,
		Breed:     req.Breed,
		Sex:       req.Sex,
		BirthDate: req.BirthDate,
		WeightKg:  req.WeightKg,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, pet)
}

func (h *PetHandler) Get(c *gin.Context) {
	ids, ok := idParams(c, "customerId", "petId")
	if !ok {
		return
	}
	userID := middleware.UserID(c)

	pet, err := h.pets.Get(c.Request.Context(), userID, ids[0], ids[1])
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	images, err := h.images.List(c.Request.Context(), ucImage.Target{
		UserID:     userID,
		CustomerID: ids[0],
		PetID:      ids[1],
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.PetDetailDTO{Pet: *pet, Images: images})
}

func (h *PetHandler) Update(c *gin.Context) {
	ids, ok := idParams(c, "customerId", "petId")
	if !ok {
		return
	}

	var req UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	pet, err := h.pets.Update(c.Request.Context(), middleware.UserID(c), ids[0], ids[1], ucPet.UpdateInput{
		Name:           req.Name,
		Species:        req.Species,
		Breed:          req.Breed,
		Sex:            req.Sex,
		BirthDate:      req.BirthDate.Value,
		WeightKg:       req.WeightKg.Value,
		Notes:          req.Notes,
		ClearBirthDate: req.BirthDate.Cleared(),
		ClearWeight:    req.WeightKg.Cleared(),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, pet)
}

func (h *PetHandler) Delete(c *gin.Context) {
	ids, ok := idParams(c, "customerId", "petId")
	if !ok {
		return
	}

	if err := h.pets.Delete(c.Request.Context(), middleware.UserID(c), ids[0], ids[1]); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}
