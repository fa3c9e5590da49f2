package models

type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`

	Orders []Order `gorm:"foreignKey:ClientID" json:"-"`
}

func (User) TableName() string { return "tb_user" }

func (u User) Equal(other User) bool {
	return u.ID == other.ID
}
