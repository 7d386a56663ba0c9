package handler

import (
	"mime/multipart"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "atelier/internal/errors"
)

// respondError maps a domain error onto the transport and writes the
// standard {error, code} body.
func respondError(c echo.Context, err error) error {
	he := apperrors.MapErrorToHTTP(err)
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}

// fileOrNil returns the uploaded file for the field, or nil when the field
// is absent or empty. Absent and empty are both "no new image" here; an
// explicit clear uses the remove_* form flags instead.
func fileOrNil(c echo.Context, field string) *multipart.FileHeader {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil || fh.Size == 0 {
		return nil
	}
	return fh
}

// filesOrNil returns all uploaded files for the field, or nil.
func filesOrNil(c echo.Context, field string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	fhs := form.File[field]
	if len(fhs) == 0 {
		return nil
	}
	return fhs
}

// formValue reports a form field's value and whether the field was present
// at all. Presence matters: update handlers treat a missing field as "leave
// unchanged", not "set empty".
func formValue(c echo.Context, field string) (string, bool) {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if vs, ok := form.Value[field]; ok && len(vs) > 0 {
			return vs[0], true
		}
		return "", false
	}
	if err := c.Request().ParseForm(); err == nil {
		if vs, ok := c.Request().PostForm[field]; ok && len(vs) > 0 {
			return vs[0], true
		}
	}
	return "", false
}

func strPtr(c echo.Context, field string) *string {
	v, ok := formValue(c, field)
	if !ok {
		return nil
	}
	return &v
}

func boolPtr(c echo.Context, field string) *bool {
	v, ok := formValue(c, field)
	if !ok {
		return nil
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &parsed
}

func intPtr(c echo.Context, field string) *int {
	v, ok := formValue(c, field)
	if !ok {
		return nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &parsed
}

// formFlag reads a boolean flag defaulting to false, e.g. remove_image=true.
func formFlag(c echo.Context, field string) bool {
	v, ok := formValue(c, field)
	if !ok {
		return false
	}
	parsed, err := strconv.ParseBool(v)
	return err == nil && parsed
}
