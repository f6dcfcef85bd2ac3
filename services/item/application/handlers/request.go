package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/lostfound/pkg/imaging"
	domainsvcs "github.com/ghuser/lostfound/services/item/domain/services"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling file parts to disk.
const multipartMemory = 8 << 20

// errBadRequest marks bodies that could not be decoded at all.
var errBadRequest = errors.New("malformed request body")

// itemForm is a decoded create or update request.
type itemForm struct {
	ItemRequest
	Image []byte // nil when no image part was sent
}

// decodeItemForm reads a JSON or multipart/form-data body. Images larger than
// maxImage bytes fail with imaging.ErrTooLarge.
func decodeItemForm(r *http.Request, maxImage int64) (itemForm, error) {
	var form itemForm

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if err := json.NewDecoder(r.Body).Decode(&form.ItemRequest); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				return form, err
			}
			return form, fmt.Errorf("%w: %w", errBadRequest, err)
		}
		return form, nil
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return form, err
		}
		return form, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	values := r.MultipartForm.Value
	form.Type = formValue(values, "type")
	form.Title = formValue(values, "title")
	form.Description = formValue(values, "description")
	form.Location = formValue(values, "location")
	form.Date = formValue(values, "date")
	form.Status = formValue(values, "status")

	file, _, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return form, nil
	case err != nil:
		return form, fmt.Errorf("%w: image part: %w", errBadRequest, err)
	}
	defer file.Close() //nolint:errcheck

	form.Image, err = imaging.ReadUpload(file, maxImage)
	if err != nil {
		return form, err
	}
	return form, nil
}

func formValue(values map[string][]string, key string) *string {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return nil
	}
	return &v[0]
}

func (f itemForm) itemInput() domainsvcs.ItemInput {
	return domainsvcs.ItemInput{
		Type:        deref(f.Type),
		Title:       deref(f.Title),
		Description: deref(f.Description),
		Location:    deref(f.Location),
		Date:        deref(f.Date),
	}
}

func (f itemForm) patchInput() domainsvcs.PatchInput {
	return domainsvcs.PatchInput{
		Type:        f.Type,
		Title:       f.Title,
		Description: f.Description,
		Location:    f.Location,
		Date:        f.Date,
		Status:      f.Status,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// itemID parses the {id} path parameter.
func itemID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}
