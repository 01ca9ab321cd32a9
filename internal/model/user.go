package model

import (
	"time"

	"github.com/google/uuid"
)

// User — минимальное зеркало внешней системы идентификации.
// Аутентификация внешняя; здесь хранится только владение бронями
// и административный признак.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}
