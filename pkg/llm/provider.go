// Интерфейс Провайдера через который работает всё приложение.

package llm

import "context"

// Provider — контракт для любого AI-сервиса.
type Provider interface {
	// Complete отправляет запрос и возвращает сырой ответ модели.
	// Реализация не ретраит — политика повторов живет уровнем выше.
	Complete(ctx context.Context, req ChatRequest) (Completion, error)
}
