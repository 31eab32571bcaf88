// Package store отвечает за долговременное хранение результатов анализа:
// JSON файлы на диске и опциональный SQLite индекс для выборок.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Files пишет результаты анализа в JSON файлы.
//
// Имя файла производится от текущего времени в миллисекундах:
// response_<epoch-ms>.json. Конкурентные писатели коллидируют только
// в пределах одной миллисекунды — принятый неустраняемый edge case.
type Files struct {
	dir string
}

// NewFiles создает файловое хранилище в указанной директории.
// Директория создается лениво при первой записи.
func NewFiles(dir string) *Files {
	return &Files{dir: dir}
}

// Dir возвращает директорию хранилища.
func (f *Files) Dir() string {
	return f.dir
}

// Save сериализует результат в pretty-printed JSON и пишет на диск.
//
// Создает директорию (включая родителей) если её нет.
// Возвращает путь записанного файла. Ошибки I/O возвращаются вызывающему —
// решение "логировать и проглотить" принимает анализатор, не хранилище.
func (f *Files) Save(result any) (string, error) {
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}

	filename := fmt.Sprintf("response_%d.json", time.Now().UnixMilli())
	path := filepath.Join(f.dir, filename)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write result file: %w", err)
	}

	return path, nil
}
