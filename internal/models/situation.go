package models

type SituationStatus int

const (
	StatusPlanned SituationStatus = iota
	StatusOngoing
	StatusCompleted
)

var situationStatusNames = map[SituationStatus]string{
	StatusPlanned:   "Planned",
	StatusOngoing:   "Ongoing",
	StatusCompleted: "Completed",
}

func (s SituationStatus) Valid() bool {
	_, ok := situationStatusNames[s]
	return ok
}

func (s SituationStatus) String() string {
	if name, ok := situationStatusNames[s]; ok {
		return name
	}
	return "Unknown"
}

type Situation struct {
	BaseModel

	Name        string          `gorm:"not null"`
	Description string
	Status      SituationStatus `gorm:"not null;default:0"`
	ProjectID   uint            `gorm:"not null;index"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID"`
}
