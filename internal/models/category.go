package models

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `json:"name"`

	Products []Product `gorm:"many2many:tb_product_category;joinForeignKey:CategoryID;joinReferences:ProductID" json:"-"`
}

func (Category) TableName() string { return "tb_category" }

func (c Category) Equal(other Category) bool {
	return c.ID == other.ID
}
