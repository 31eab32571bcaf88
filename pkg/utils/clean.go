// Package utils предоставляет вспомогательные функции для обработки данных.
//
// Включает утилиты для извлечения JSON из ответов LLM.
package utils

import (
	"strings"
)

// ExtractJSONBlock ищет первый fenced code block с меткой json и
// возвращает его содержимое.
//
// LLM обычно возвращает структурированную часть ответа в виде:
//
//	```json
//	{"so_giay": "BH 123456"}
//	```
//
// Используется одиночный first-match скан: берётся первый блок,
// остальные игнорируются. Возвращает ("", false) если блока нет.
// Содержимое не валидируется — это забота json.Unmarshal у вызывающего.
func ExtractJSONBlock(s string) (string, bool) {
	const fence = "```json"

	start := strings.Index(s, fence)
	if start == -1 {
		return "", false
	}

	rest := s[start+len(fence):]
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}

	return strings.TrimSpace(rest[:end]), true
}

// ExtractJSON пытается извлечь JSON объект из строки с посторонним текстом.
//
// LLM иногда возвращает JSON вместе с пояснительным текстом даже внутри
// fenced блока. Эта функция находит первый JSON-объект по балансу скобок.
//
// Возвращает пустую строку если JSON-объект не найден.
//
// ВНИМАНИЕ: Не валидирует JSON, только извлекает его по эвристикам.
// Для валидации используйте json.Unmarshal().
func ExtractJSON(s string) string {
	// Ищем первый {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}

	// Ищем соответствующую закрывающую скобку
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return s[start:]
}
