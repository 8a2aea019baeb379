package event

// Category classifies an event for display purposes.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategorySocial   Category = "social"
	CategoryTravel   Category = "travel"
	CategoryMeeting  Category = "meeting"
	CategoryDeadline Category = "deadline"
	CategoryBirthday Category = "birthday"
	CategoryHoliday  Category = "holiday"
	CategoryOther    Category = "other"
)

var categoryColors = map[Category]string{
	CategoryWork:     "#3b82f6",
	CategoryPersonal: "#8b5cf6",
	CategoryHealth:   "#10b981",
	CategorySocial:   "#f59e0b",
	CategoryTravel:   "#06b6d4",
	CategoryMeeting:  "#6366f1",
	CategoryDeadline: "#ef4444",
	CategoryBirthday: "#ec4899",
	CategoryHoliday:  "#22c55e",
	CategoryOther:    "#6b7280",
}

// ParseCategory maps a stored category value onto a known Category,
// falling back to CategoryOther for anything unrecognized.
func ParseCategory(s string) Category {
	if _, ok := categoryColors[Category(s)]; ok {
		return Category(s)
	}
	return CategoryOther
}

// Color returns the display color for the category.
func (c Category) Color() string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return categoryColors[CategoryOther]
}
