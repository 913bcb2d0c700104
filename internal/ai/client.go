package ai

import "context"

// Client интерфейс для взаимодействия с генеративной моделью. Все реализации должны быть взаимозаменяемыми.
// Ошибка означает сбой транспорта: сеть, не-2xx ответ, битый ответ.
type Client interface {
	Generate(ctx context.Context, req Request) (Reply, error)
}
