package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// ReadList читает весь список, сохранённый под ключом, и декодирует его в dest.
// Отсутствующий ключ не является ошибкой: dest остаётся пустым.
func (s *Storage) ReadList(ctx context.Context, key string, dest any) error {
	const op = "storage.ReadList"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT payload FROM kv_lists WHERE key = $1`
	var payload []byte
	err := s.DB.QueryRowContext(ctx, query, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// WriteList заменяет весь список под ключом; частичных обновлений нет.
func (s *Storage) WriteList(ctx context.Context, key string, value any) error {
	const op = "storage.WriteList"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO kv_lists (key, payload)
			  VALUES ($1, $2)
			  ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload`
	if _, err := s.DB.ExecContext(ctx, query, key, payload); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListKeys возвращает все ключи с заданным префиксом;
// используется планировщиком напоминаний для обхода всех списков подписок.
func (s *Storage) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	const op = "storage.ListKeys"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT key FROM kv_lists WHERE key LIKE $1 || '%' ORDER BY key`
	rows, err := s.DB.QueryContext(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
