// Package services contains stateless domain services for the item bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/ghuser/lostfound/services/item/domain"
	"github.com/ghuser/lostfound/services/item/domain/models"
)

// Limits on free-text fields.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
	MaxLocationLength    = 200
)

// ItemInput is the raw, untrusted content of a new report.
type ItemInput struct {
	Type        string
	Title       string
	Description string
	Location    string
	Date        string
}

// PatchInput is the raw content of an update. A nil field was not submitted;
// a field that is blank after trimming is treated the same way.
type PatchInput struct {
	Type        *string
	Title       *string
	Description *string
	Location    *string
	Date        *string
	Status      *string
}

// BuildItem validates in and returns a new open item reported by reporterID.
// Every field is required. All problems are reported at once in a
// *domain.ValidationError.
func BuildItem(reporterID uuid.UUID, in ItemInput) (*models.Item, error) {
	var ve domain.ValidationError

	typ := checkType(&ve, in.Type)
	title := checkText(&ve, "title", in.Title, MaxTitleLength)
	description := checkText(&ve, "description", in.Description, MaxDescriptionLength)
	location := checkText(&ve, "location", in.Location, MaxLocationLength)
	date := checkDate(&ve, in.Date)

	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	return models.NewItem(reporterID, typ, title, description, location, date), nil
}

// NormalizePatch turns in into an ItemPatch. Blank fields are dropped.
// Status is kept only when isAdmin; for anyone else it is silently ignored,
// matching the rule that only admins triage.
func NormalizePatch(in PatchInput, isAdmin bool) (models.ItemPatch, error) {
	var (
		ve    domain.ValidationError
		patch models.ItemPatch
	)

	if s, ok := present(in.Type); ok {
		if t := checkType(&ve, s); t != "" {
			patch.Type = &t
		}
	}
	if s, ok := present(in.Title); ok {
		if v := checkText(&ve, "title", s, MaxTitleLength); v != "" {
			patch.Title = &v
		}
	}
	if s, ok := present(in.Description); ok {
		if v := checkText(&ve, "description", s, MaxDescriptionLength); v != "" {
			patch.Description = &v
		}
	}
	if s, ok := present(in.Location); ok {
		if v := checkText(&ve, "location", s, MaxLocationLength); v != "" {
			patch.Location = &v
		}
	}
	if s, ok := present(in.Date); ok {
		if d := checkDate(&ve, s); !d.IsZero() {
			patch.Date = &d
		}
	}
	if s, ok := present(in.Status); ok && isAdmin {
		st, err := models.ParseStatus(s)
		if err != nil {
			ve.Add("status", "Must be one of: open verified returned")
		} else {
			patch.Status = &st
		}
	}

	if err := ve.OrNil(); err != nil {
		return models.ItemPatch{}, err
	}
	return patch, nil
}

// CanModify reports whether the caller may update or delete item: the
// original reporter or any admin.
func CanModify(callerID uuid.UUID, isAdmin bool, item *models.Item) bool {
	if item == nil {
		return false
	}
	return isAdmin || (callerID != uuid.Nil && callerID == item.ReporterID)
}

func present(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	v := strings.TrimSpace(*s)
	return v, v != ""
}

func checkType(ve *domain.ValidationError, s string) models.Type {
	if strings.TrimSpace(s) == "" {
		ve.Add("type", domain.MsgRequired)
		return ""
	}
	t, err := models.ParseType(s)
	if err != nil {
		ve.Add("type", "Must be one of: lost found")
		return ""
	}
	return t
}

func checkText(ve *domain.ValidationError, field, s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		ve.Add(field, domain.MsgRequired)
		return ""
	}
	if len([]rune(s)) > maxLen {
		ve.Add(field, fmt.Sprintf("Must be at most %d characters", maxLen))
		return ""
	}
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			ve.Add(field, "Must not contain control characters")
			return ""
		}
	}
	return s
}

func checkDate(ve *domain.ValidationError, s string) time.Time {
	if strings.TrimSpace(s) == "" {
		ve.Add("date", domain.MsgRequired)
		return time.Time{}
	}
	d, err := models.ParseDate(s)
	if err != nil {
		ve.Add("date", "Must be a date in YYYY-MM-DD format")
		return time.Time{}
	}
	return d
}
