package model

type Subject struct {
	BaseModel
	Name string `gorm:"size:100;not null" json:"name"`
}

func (Subject) TableName() string {
	return "subjects"
}
