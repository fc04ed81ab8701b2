package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"event-studio/models"

	"github.com/shopspring/decimal"
)

// Draft field names, also used as keys of EventDraft.ValidationErrors.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldDate        = "date"
	FieldPrice       = "price"
	FieldCapacity    = "capacity"
	FieldLocation    = "location"
	FieldImages      = "images"
	FieldReels       = "reels"
)

const (
	TitleMinLen       = 5
	TitleMaxLen       = 100
	DescriptionMinLen = 20
	DescriptionMaxLen = 2000
	MinLeadTime       = 24 * time.Hour
	MaxLeadDays       = 365
	MaxCapacity       = 10000
	MaxImages         = 10
	MaxReels          = 5
)

var maxPriceAmount = decimal.NewFromInt(10000)

// ValidationEngine checks a draft against the authoring rules. Validate
// is pure: it reads the draft, touches nothing, and returns the same
// error map for the same draft every time.
type ValidationEngine struct {
	now func() time.Time
}

func NewValidationEngine() *ValidationEngine {
	return &ValidationEngine{now: time.Now}
}

// Validate returns a map of field name to error message. An empty map
// means every field rule passed.
func (v *ValidationEngine) Validate(draft *models.EventDraft) map[string]string {
	errs := make(map[string]string)

	for _, field := range []string{
		FieldTitle, FieldDescription, FieldCategory, FieldDate,
		FieldPrice, FieldCapacity, FieldLocation, FieldImages, FieldReels,
	} {
		if msg, ok := v.ValidateField(draft, field); !ok {
			errs[field] = msg
		}
	}

	return errs
}

// ValidateField checks a single field. It returns the error message and
// false when the field fails its rule. Rules within a field are checked
// in declared order and the first failure wins.
func (v *ValidationEngine) ValidateField(draft *models.EventDraft, field string) (string, bool) {
	switch field {
	case FieldTitle:
		return v.validateTitle(draft.Title)
	case FieldDescription:
		return v.validateDescription(draft.Description)
	case FieldCategory:
		if strings.TrimSpace(draft.Category) == "" {
			return "Category is required", false
		}
	case FieldDate:
		return v.validateDate(draft.StartAt)
	case FieldPrice:
		return v.validatePrice(draft.Price)
	case FieldCapacity:
		if draft.Capacity.MaxAttendees < 1 {
			return "Capacity must be at least 1 attendee", false
		}
		if draft.Capacity.MaxAttendees > MaxCapacity {
			return "Capacity cannot exceed 10000 attendees", false
		}
	case FieldLocation:
		if strings.TrimSpace(draft.Location.Address) == "" {
			return "Address is required", false
		}
		if !draft.Location.HasCoordinates() {
			return "Please select a location on the map", false
		}
	case FieldImages:
		if len(draft.Images) < 1 {
			return "At least 1 image is required", false
		}
		if len(draft.Images) > MaxImages {
			return "At most 10 images are allowed", false
		}
	case FieldReels:
		if len(draft.Reels) > MaxReels {
			return "At most 5 reels are allowed", false
		}
	}
	return "", true
}

func (v *ValidationEngine) validateTitle(title string) (string, bool) {
	if strings.TrimSpace(title) == "" {
		return "Title is required", false
	}
	n := utf8.RuneCountInString(title)
	if n < TitleMinLen {
		return "Title must be at least 5 characters", false
	}
	if n > TitleMaxLen {
		return "Title must be at most 100 characters", false
	}
	return "", true
}

func (v *ValidationEngine) validateDescription(description string) (string, bool) {
	if strings.TrimSpace(description) == "" {
		return "Description is required", false
	}
	n := utf8.RuneCountInString(description)
	if n < DescriptionMinLen {
		return "Description must be at least 20 characters", false
	}
	if n > DescriptionMaxLen {
		return "Description must be at most 2000 characters", false
	}
	return "", true
}

// validateDate applies the three date rules independently; the first
// failed rule in declared order (past, under 24h, over 365 days)
// supplies the message.
func (v *ValidationEngine) validateDate(startAt time.Time) (string, bool) {
	now := v.now()

	if !startAt.After(now) {
		return "Event date must be in the future", false
	}
	if startAt.Before(now.Add(MinLeadTime)) {
		return "Event date must be at least 24 hours from now", false
	}
	if startAt.After(now.AddDate(0, 0, MaxLeadDays)) {
		return "Event date must be within 365 days", false
	}
	return "", true
}

func (v *ValidationEngine) validatePrice(price models.Price) (string, bool) {
	if price.Amount.IsNegative() {
		return "Price cannot be negative", false
	}
	if price.Amount.GreaterThan(maxPriceAmount) {
		return "Price cannot exceed 10000", false
	}
	return "", true
}

// IsPublishable reports whether the draft may be published: the error
// map must be empty and the core fields must independently hold. The
// second check overlaps the first but both are enforced.
func (v *ValidationEngine) IsPublishable(draft *models.EventDraft) bool {
	if len(v.Validate(draft)) != 0 {
		return false
	}

	return strings.TrimSpace(draft.Title) != "" &&
		strings.TrimSpace(draft.Description) != "" &&
		strings.TrimSpace(draft.Category) != "" &&
		strings.TrimSpace(draft.Location.Address) != "" &&
		draft.Capacity.MaxAttendees > 0
}
