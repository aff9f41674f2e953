package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model содержит общие поля сущностей: UUID-идентификатор и временные метки
type Model struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate назначает идентификатор перед вставкой, если он не задан клиентским кодом
func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
