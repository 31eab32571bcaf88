package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // Регистрируем драйвер
)

// Index — SQLite индекс проведенных анализов.
//
// Сами результаты лежат в JSON файлах (см. Files); индекс хранит
// только строку метаданных на анализ, чтобы оператор мог делать
// выборки ("сколько токенов сожгли за вчера") без обхода директории.
type Index struct {
	db *sql.DB
}

// Record — одна строка индекса.
type Record struct {
	ID          int64
	Timestamp   time.Time
	Source      string // Путь или URL исходного изображения
	Model       string
	TotalTokens int // 0 если API не вернул usage
	Success     bool
	FilePath    string // Путь к response_*.json, пусто если файл не писался
}

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ts DATETIME NOT NULL,
	source TEXT NOT NULL,
	model TEXT NOT NULL,
	total_tokens INTEGER NOT NULL DEFAULT 0,
	success INTEGER NOT NULL,
	file_path TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_analyses_ts ON analyses(ts);
`

// OpenIndex открывает (или создает) SQLite базу и применяет схему.
func OpenIndex(path string) (*Index, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open index db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply index schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Insert добавляет строку индекса.
func (i *Index) Insert(rec Record) error {
	_, err := i.db.Exec(
		`INSERT INTO analyses (ts, source, model, total_tokens, success, file_path)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Timestamp.UTC(), rec.Source, rec.Model, rec.TotalTokens, rec.Success, rec.FilePath,
	)
	if err != nil {
		return fmt.Errorf("insert analysis record: %w", err)
	}
	return nil
}

// Recent возвращает последние limit анализов, новые первыми.
func (i *Index) Recent(limit int) ([]Record, error) {
	rows, err := i.db.Query(
		`SELECT id, ts, source, model, total_tokens, success, file_path
		 FROM analyses ORDER BY ts DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent analyses: %w", err)
	}
	defer rows.Close()

	var result []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.Source, &rec.Model,
			&rec.TotalTokens, &rec.Success, &rec.FilePath); err != nil {
			return nil, fmt.Errorf("scan analysis record: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// Close закрывает базу.
func (i *Index) Close() error {
	return i.db.Close()
}
