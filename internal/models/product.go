package models

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImgURL      string  `gorm:"column:img_url" json:"imgUrl"`

	Categories []Category  `gorm:"many2many:tb_product_category;joinForeignKey:ProductID;joinReferences:CategoryID" json:"categories"`
	Items      []OrderItem `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string { return "tb_product" }

func (p Product) Equal(other Product) bool {
	return p.ID == other.ID
}

// Orders returns the distinct orders that contain this product, computed
// from the loaded items each time it is called. Items without a loaded
// order are skipped.
func (p Product) Orders() []Order {
	seen := make(map[uint]struct{}, len(p.Items))
	orders := make([]Order, 0, len(p.Items))
	for _, item := range p.Items {
		if item.Order == nil {
			continue
		}
		if _, ok := seen[item.Order.ID]; ok {
			continue
		}
		seen[item.Order.ID] = struct{}{}
		orders = append(orders, *item.Order)
	}
	return orders
}

// HasCategory reports whether the product is linked to the category.
func (p Product) HasCategory(c Category) bool {
	for _, existing := range p.Categories {
		if existing.Equal(c) {
			return true
		}
	}
	return false
}
