package data

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TopicPO topics 表，(module_id, title) 唯一
type TopicPO struct {
	ID         string         `gorm:"primaryKey;type:varchar(36)"`
	ModuleID   string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_topics_module_title,priority:1"`
	Title      string         `gorm:"type:varchar(512);not null;uniqueIndex:idx_topics_module_title,priority:2"`
	Difficulty string         `gorm:"type:varchar(20);not null"`
	Content    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name
func (TopicPO) TableName() string {
	return "topics"
}

// RoadmapPO roadmaps 表
type RoadmapPO struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	UserID    string `gorm:"type:varchar(64);not null;index"`
	Title     string `gorm:"type:varchar(255)"`
	Goal      string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name
func (RoadmapPO) TableName() string {
	return "roadmaps"
}

// ModulePO modules 表
type ModulePO struct {
	ID          string `gorm:"primaryKey;type:varchar(64)"`
	RoadmapID   string `gorm:"type:varchar(36);not null;index"`
	Title       string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text"`
	Order       int    `gorm:"column:order;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name
func (ModulePO) TableName() string {
	return "modules"
}

// Models 需要迁移的表
func Models() []interface{} {
	return []interface{}{&RoadmapPO{}, &ModulePO{}, &TopicPO{}}
}

// AutoMigrate runs database migrations for the topic domain
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
