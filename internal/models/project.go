package models

// ProjectCategoryTable is the join table between projects and categories.
const ProjectCategoryTable = "projects_categories"

type Project struct {
	BaseModel

	Name        string `gorm:"not null"`
	Description string
	UserID      uint `gorm:"not null;index"` // owner

	// Relationships
	Categories []Category  `gorm:"many2many:projects_categories;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Situations []Situation `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (p *Project) IsOwnedBy(userID uint) bool {
	return p.UserID != 0 && p.UserID == userID
}
