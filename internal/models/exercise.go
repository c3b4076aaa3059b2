package models

// Exercise categories.
const (
	CategoryWeightlifting = "Weightlifting"
	CategoryGymnastics    = "Gymnastics"
	CategoryCardio        = "Cardio"
	CategoryMetcons       = "Metcons"
)

// ValidCategory reports whether c is a known exercise category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryWeightlifting, CategoryGymnastics, CategoryCardio, CategoryMetcons:
		return true
	}
	return false
}

// Exercise is a reference catalog entry. Names are conventionally unique
// but the store does not enforce it.
type Exercise struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:32;not null" json:"category"`
	VideoURL    string `gorm:"size:512" json:"videoUrl,omitempty"`
}

// ExercisePatch is a partial update for Exercise. Nil fields are retained.
type ExercisePatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	VideoURL    *string `json:"videoUrl,omitempty"`
}

// Apply merges the patch into e, field by field.
func (p ExercisePatch) Apply(e *Exercise) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.VideoURL != nil {
		e.VideoURL = *p.VideoURL
	}
}
