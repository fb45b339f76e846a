package pet

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
)

type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

func IsValidSex(s string) bool {
	switch Sex(s) {
	case SexMale, SexFemale, SexUnknown:
		return true
	}
	return false
}

// NormalizeSex lower-cases s and maps the empty string to unknown.
func NormalizeSex(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return string(SexUnknown), nil
	}
	if !IsValidSex(s) {
		return "", httperr.ErrValidation("invalid_sex")
	}
	return s, nil
}

// ParseBirthDate accepts YYYY-MM-DD; the empty string means no date.
// Dates in the future are rejected.
func ParseBirthDate(s string, now time.Time) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date")
	}
	if d.After(now) {
		return nil, httperr.ErrValidation("birth_date_in_future")
	}
	return &d, nil
}
