// Package analyzer предоставляет ошибки клиента анализа документов.
//
// Все ошибки возвращаются вверх по стеку, никаких panic.
// Явные типы ошибок для обработки на верхних уровнях,
// поддержка errors.Is() и errors.As() для error wrapping.
package analyzer

import (
	"fmt"
	"strings"
)

// Sentinel ошибки.

// ErrConfiguration возвращается когда обязательные настройки отсутствуют.
//
// Фатальная ошибка конструктора — обнаруживается при создании клиента,
// а не при первом вызове. Никогда не ретраится.
var ErrConfiguration = fmt.Errorf("configuration invalid")

// ErrImageRead возвращается когда локальный файл изображения
// отсутствует или нечитаем.
var ErrImageRead = fmt.Errorf("image read failed")

// ErrAnalysis — единственный тип ошибки, который пересекает публичную
// границу Analyze(). Оборачивает исходную ошибку транспорта или сборки.
var ErrAnalysis = fmt.Errorf("analysis failed")

// Ошибки с контекстом.

// ConfigurationError — ошибка валидации конфигурации.
//
// Содержит ВСЕ отсутствующие обязательные поля, а не только первое:
// оператор исправляет конфиг за один проход.
type ConfigurationError struct {
	Missing []string // Имена отсутствующих ключей, например "analyzer.api_key"
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration invalid: missing required settings: %s",
		strings.Join(e.Missing, ", "))
}

// Is проверяет что ошибка является ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// ImageReadError — ошибка чтения файла изображения.
//
// Path всегда абсолютный, чтобы в логах было видно что именно искали.
type ImageReadError struct {
	Path string
	Err  error
}

func (e *ImageReadError) Error() string {
	return fmt.Sprintf("cannot read image file %s: %v", e.Path, e.Err)
}

func (e *ImageReadError) Unwrap() error {
	return e.Err
}

// Is проверяет что ошибка является ErrImageRead.
func (e *ImageReadError) Is(target error) bool {
	return target == ErrImageRead
}

// AnalysisError — обертка над исходной ошибкой вызова модели.
//
// Промежуточный шум ретраев виден только в логах; вызывающий получает
// либо заполненный AnalysisResult, либо одну эту ошибку.
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed: %v", e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// Is проверяет что ошибка является ErrAnalysis.
func (e *AnalysisError) Is(target error) bool {
	return target == ErrAnalysis
}
