package models

// Category tags a time block with the kind of activity it holds.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryStudy    Category = "study"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryOther    Category = "other"
)

// CategoryInfo carries the display attributes of a category.
type CategoryInfo struct {
	ID    Category
	Name  string
	Color string // hex color used by the terminal styles
}

// Categories is the fixed, process-wide category set, in display order.
// It is not user-extensible.
var Categories = []CategoryInfo{
	{CategoryWork, "Work", "#3B82F6"},
	{CategoryStudy, "Study", "#22C55E"},
	{CategoryPersonal, "Personal", "#F59E0B"},
	{CategoryHealth, "Health", "#EF4444"},
	{CategoryOther, "Other", "#8B5CF6"},
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	for _, info := range Categories {
		if info.ID == c {
			return true
		}
	}
	return false
}

// CategoryByID looks up the display attributes for a category.
func CategoryByID(c Category) (CategoryInfo, bool) {
	for _, info := range Categories {
		if info.ID == c {
			return info, true
		}
	}
	return CategoryInfo{}, false
}
