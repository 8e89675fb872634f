package domain

import "strings"

// Category is a payroll bucket a span of worked time is attributed to.
type Category string

const (
	CategoryRegular      Category = "regular"
	CategoryNight        Category = "night"
	CategorySaturday     Category = "saturday"
	CategorySunday       Category = "sunday"
	CategoryHoliday      Category = "holiday"
	CategoryDriving      Category = "driving"
	CategoryPassenger    Category = "passenger"
	CategoryEquipment    Category = "equipment"
	CategoryLeave        Category = "leave"
	CategoryMedicalLeave Category = "medical_leave"
)

// Categories lists every bucket in display order.
var Categories = []Category{
	CategoryRegular,
	CategoryNight,
	CategorySaturday,
	CategorySunday,
	CategoryHoliday,
	CategoryDriving,
	CategoryPassenger,
	CategoryEquipment,
	CategoryLeave,
	CategoryMedicalLeave,
}

// ParseCategory maps a user-supplied name to a Category. Dashes and case are
// ignored so "Medical-Leave" and "medical_leave" are the same bucket.
func ParseCategory(s string) (Category, bool) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, c := range Categories {
		if string(c) == norm {
			return c, true
		}
	}
	return "", false
}

// Activity is a special shift tag that is attributed whole instead of being
// split at category boundaries.
type Activity string

const (
	ActivityNone      Activity = ""
	ActivityDriving   Activity = "driving"
	ActivityPassenger Activity = "passenger"
	ActivityEquipment Activity = "equipment"
)

// ParseActivity resolves a free-text shift tag. known is false for a
// non-empty tag that names no special activity.
func ParseActivity(tag string) (a Activity, known bool) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "":
		return ActivityNone, true
	case "driving":
		return ActivityDriving, true
	case "passenger":
		return ActivityPassenger, true
	case "equipment":
		return ActivityEquipment, true
	}
	return ActivityNone, false
}

// Category returns the bucket a special activity is booked into.
func (a Activity) Category() Category {
	switch a {
	case ActivityDriving:
		return CategoryDriving
	case ActivityPassenger:
		return CategoryPassenger
	case ActivityEquipment:
		return CategoryEquipment
	}
	return ""
}

type TotalsState string

const (
	StateComputed   TotalsState = "computed"
	StateOverridden TotalsState = "overridden"
)

type OverrideKind string

const (
	// OverrideTrue means the allocation disagrees with the clock.
	OverrideTrue OverrideKind = "override"
	// OverrideSegmentation means the allocation agrees with the clock and
	// only the split was chosen by hand.
	OverrideSegmentation OverrideKind = "segmentation"
)
