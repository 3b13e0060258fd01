package models

import "time"

// MediaImage 图片元数据记录
// 同一结构落在两张独立的表（uploaded_images / saved_images），互不关联。
// UserID 是调用方传入的不透明字符串，不与 users 表建立外键约束。
type MediaImage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Image     string    `gorm:"not null" json:"image"`
	UserID    string    `gorm:"column:user_id;index;not null" json:"userId"`
	CreatedAt time.Time `json:"-"`
}
