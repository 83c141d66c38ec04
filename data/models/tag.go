package models

// Tag is a vocabulary entry. Names are unique; rows are created lazily the
// first time an organiser references an unknown name.
type Tag struct {
	ID   int64  `json:"id" db:"tag_id" readOnly:"true"`
	Name string `validate:"required,max=100" json:"name" db:"tag_name"`
}

func (Tag) TableName() string {
	return "tags"
}

func (t Tag) GetID() int64 {
	return t.ID
}

func (t Tag) EmptySlice() interface{} {
	return &[]Tag{}
}
