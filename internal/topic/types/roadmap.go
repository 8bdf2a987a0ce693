package types

import (
	"encoding/json"
	"time"
)

// Roadmap 用户的学习路线
type Roadmap struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Goal      string    `json:"goal"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Modules   []*Module `json:"modules"`
}

// Module 路线中的模块，按 Order 升序排列
type Module struct {
	ID          string    `json:"id"`
	RoadmapID   string    `json:"roadmap_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Topics      []*Topic  `json:"topics"`
}

// RoadmapResponse GET /roadmap 响应，roadmap 可能为 null
type RoadmapResponse struct {
	Roadmap json.RawMessage `json:"roadmap"`
}
