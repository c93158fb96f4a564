package models

const (
	OrderStatusOpen   = "open"
	OrderStatusClosed = "closed"
)

type Product struct {
	ID    uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name  string  `gorm:"not null"                  json:"name"`
	Price float64 `gorm:"not null"                  json:"price"`
	Stock int     `gorm:"not null;check:stock>=0"   json:"stock"`
}

type Table struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name      string `gorm:"not null"                   json:"name"`
	Capacity  int    `gorm:"not null;check:capacity>0"  json:"capacity"`
	SingleTab bool   `gorm:"not null"                   json:"single_tab"`
}

type Order struct {
	ID      uint        `gorm:"primaryKey;autoIncrement"  json:"id"`
	TableID uint        `gorm:"index;not null"            json:"table_id"`
	Table   *Table      `gorm:"foreignKey:TableID"        json:"table,omitempty"`
	Status  string      `gorm:"not null"                  json:"status"`
	Date    string      `gorm:"index;not null"            json:"date"`
	Items   []OrderItem `gorm:"foreignKey:OrderID"        json:"items"`
}

type OrderItem struct {
	ID        uint     `gorm:"primaryKey"                  json:"id"`
	OrderID   uint     `gorm:"index;not null"              json:"order_id"`
	ProductID uint     `gorm:"not null"                    json:"product_id"`
	Quantity  int      `gorm:"default:1;check:quantity>0"  json:"quantity"`
	Product   *Product `gorm:"foreignKey:ProductID"        json:"product,omitempty"`
}
