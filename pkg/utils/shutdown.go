// Package utils предоставляет вспомогательные функции для graceful shutdown.
package utils

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupGracefulShutdown устанавливает обработчик SIGINT/SIGTERM.
//
// При получении сигнала вызывается cancel() — batch-обработка проверяет
// ctx.Err() между документами и корректно останавливается.
//
// Возвращает функцию которую следует вызвать через defer для
// освобождения ресурсов логгера:
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer SetupGracefulShutdown(cancel)()
func SetupGracefulShutdown(cancel context.CancelFunc) func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		Info("Received signal, shutting down gracefully", "signal", sig.String())
		cancel()
	}()

	return func() {
		signal.Stop(sigChan)
		Close()
	}
}
