package model

// ProductTag 是商品与标签之间的一条关联记录，ID 均为数据库ID。
type ProductTag struct {
	ID        uint
	ProductID uint
	TagID     uint
}

// NewProductTag 是待写入的关联记录。
type NewProductTag struct {
	ProductID uint
	TagID     uint
}
