package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
)

const dateLayout = "2006-01-02"

// idParam reads a positive numeric path parameter, answering 400 when it
// is malformed.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.Respond(c, httperr.ErrBusiness("invalid_id"))
		return 0, false
	}
	return uint(id), true
}

// idParams reads several path ids in order, stopping at the first bad one.
func idParams(c *gin.Context, names ...string) ([]uint, bool) {
	out := make([]uint, 0, len(names))
	for _, name := range names {
		id, ok := idParam(c, name)
		if !ok {
			return nil, false
		}
		out = append(out, id)
	}
	return out, true
}

// dateRange parses optional ?from=&to= dates in loc. The returned upper
// bound is exclusive: the day after "to".
func dateRange(c *gin.Context, loc *time.Location) (*time.Time, *time.Time, bool) {
	var from, to *time.Time

	if s := c.Query("from"); s != "" {
		t, err := time.ParseInLocation(dateLayout, s, loc)
		if err != nil {
			httperr.Respond(c, httperr.ErrBusiness("invalid_date"))
			return nil, nil, false
		}
		from = &t
	}

	if s := c.Query("to"); s != "" {
		t, err := time.ParseInLocation(dateLayout, s, loc)
		if err != nil {
			httperr.Respond(c, httperr.ErrBusiness("invalid_date"))
			return nil, nil, false
		}
		t = t.AddDate(0, 0, 1)
		to = &t
	}

	return from, to, true
}
