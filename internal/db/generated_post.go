package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GeneratedPost 定义一条生成记录，是系统唯一持久化的业务实体。
type GeneratedPost struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	Prompt           string    `gorm:"type:text;not null" json:"prompt"`
	Content          string    `gorm:"type:text;not null" json:"content"`
	Platform         *string   `gorm:"size:64;index" json:"platform"`
	UserID           *string   `gorm:"size:64;index" json:"userId"`
	PromptTokens     int       `json:"-"`
	CompletionTokens int       `json:"-"`
	CreatedAt        time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// TableName 自定义表名以保持命名一致。
func (GeneratedPost) TableName() string {
	return "generated_posts"
}

// BeforeCreate 在插入前分配不可变的 UUID 主键。
func (p *GeneratedPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
