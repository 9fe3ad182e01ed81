// Package notice implementa los avisos transitorios (estilo toast) que las
// acciones de sesión y navegación muestran al usuario. Se pueden descartar y
// nunca cortan el flujo.
package notice

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// MaxNotices: pasado este límite se descartan los más viejos.
const MaxNotices = 50

type Notice struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier es lo que necesitan las acciones para levantar un aviso.
type Notifier interface {
	Notify(level Level, title, message string) Notice
}

// Board guarda los avisos pendientes de un workspace.
type Board struct {
	mu    sync.Mutex
	items []Notice
	now   func() time.Time
}

func NewBoard() *Board {
	return &Board{now: time.Now}
}

func (b *Board) Notify(level Level, title, message string) Notice {
	n := Notice{
		ID:        uuid.NewString(),
		Level:     level,
		Title:     title,
		Message:   message,
		CreatedAt: b.now(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.items = append(b.items, n)
	if over := len(b.items) - MaxNotices; over > 0 {
		b.items = append([]Notice(nil), b.items[over:]...)
	}
	return n
}

// List devuelve una copia, del más viejo al más nuevo.
func (b *Board) List() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Notice{}, b.items...)
}

// Dismiss devuelve false si el aviso no existe (o ya fue descartado).
func (b *Board) Dismiss(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, n := range b.items {
		if n.ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return true
		}
	}
	return false
}

// Drain devuelve y vacía los avisos pendientes.
func (b *Board) Drain() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.items
	b.items = nil
	if out == nil {
		out = []Notice{}
	}
	return out
}

// Discard es un Notifier que no guarda nada.
type Discard struct{}

func (Discard) Notify(level Level, title, message string) Notice {
	return Notice{Level: level, Title: title, Message: message}
}
