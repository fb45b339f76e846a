package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/httpresp"
	"github.com/BruksfildServices01/vet-backoffice/internal/middleware"
	ucImage "github.com/BruksfildServices01/vet-backoffice/internal/usecase/image"
)

// ImageHandler serves both pet and visit images; routes without a
// :visitId parameter address the pet.
type ImageHandler struct {
	images *ucImage.Service
}

func NewImageHandler(images *ucImage.Service) *ImageHandler {
	return &ImageHandler{images: images}
}

type UploadURLRequest struct {
	ContentType string `json:"content_type" binding:"required,image_content_type"`
	FileName    string `json:"file_name"`
}

type RegisterImageRequest struct {
	Key string `json:"key" binding:"required"`
}

func (h *ImageHandler) target(c *gin.Context) (ucImage.Target, bool) {
	ids, ok := idParams(c, "customerId", "petId")
	if !ok {
		return ucImage.Target{}, false
	}

	t := ucImage.Target{
		UserID:     middleware.UserID(c),
		CustomerID: ids[0],
		PetID:      ids[1],
	}

	if c.Param("visitId") != "" {
		visitID, ok := idParam(c, "visitId")
		if !ok {
			return ucImage.Target{}, false
		}
		t.VisitID = visitID
	}
	return t, true
}

func (h *ImageHandler) UploadURL(c *gin.Context) {
	t, ok := h.target(c)
	if !ok {
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	out, err := h.images.UploadURL(c.Request.Context(), t, req.ContentType, req.FileName)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *ImageHandler) Register(c *gin.Context) {
	t, ok := h.target(c)
	if !ok {
		return
	}

	var req RegisterImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	img, err := h.images.Register(c.Request.Context(), t, req.Key)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, img)
}

func (h *ImageHandler) List(c *gin.Context) {
	t, ok := h.target(c)
	if !ok {
		return
	}

	images, err := h.images.List(c.Request.Context(), t)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, images)
}

func (h *ImageHandler) Delete(c *gin.Context) {
	t, ok := h.target(c)
	if !ok {
		return
	}
	imageID, ok := idParam(c, "imageId")
	if !ok {
		return
	}

	if err := h.images.Delete(c.Request.Context(), t, imageID); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}
