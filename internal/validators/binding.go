package validators

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain/pet"
	"github.com/BruksfildServices01/vet-backoffice/internal/storage"
)

// RegisterBindingTags adds the domain tags to gin's validator. It is safe
// to call more than once.
func RegisterBindingTags() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return register(v)
}

func register(v *validator.Validate) error {
	tags := map[string]validator.Func{
		"visit_status":       validVisitStatus,
		"pet_sex":            validPetSex,
		"image_content_type": validImageContentType,
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// Only statuses a visit may be created with.
func validVisitStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "scheduled", "completed":
		return true
	}
	return false
}

func validPetSex(fl validator.FieldLevel) bool {
	_, err := pet.NormalizeSex(fl.Field().String())
	return err == nil
}

func validImageContentType(fl validator.FieldLevel) bool {
	return storage.IsAllowedContentType(fl.Field().String())
}
