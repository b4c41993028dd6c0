package database

import (
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"

	"shotbot/internal/config"
	"shotbot/internal/logger"
)

// DSN строка подключения к MySQL из секции database
func DSN(c config.Database) string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.Name
	mc.ParseTime = true
	return mc.FormatDSN()
}

// Open подключается к базе и проверяет соединение
func Open(c config.Database) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(c))
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return db, nil
}

const createShotResultsSQL = `
	CREATE TABLE IF NOT EXISTS shot_results (
		id CHAR(36) PRIMARY KEY,
		shot_type VARCHAR(16) NOT NULL,
		outcome VARCHAR(16) NOT NULL,
		sample_index INT NOT NULL,
		red_count INT NOT NULL,
		baseline INT NOT NULL,
		target_x INT NOT NULL,
		target_y INT NOT NULL,
		duration_ms INT NOT NULL,
		error_text TEXT,
		image_data LONGBLOB,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

// DatabaseManager журнал ударов в MySQL
type DatabaseManager struct {
	db     *sql.DB
	logger *logger.LoggerManager
	wg     sync.WaitGroup // для ожидания завершения асинхронных операций
}

// NewDatabaseManager создает новый экземпляр DatabaseManager
func NewDatabaseManager(db *sql.DB, loggerManager *logger.LoggerManager) *DatabaseManager {
	return &DatabaseManager{
		db:     db,
		logger: loggerManager,
	}
}

// EnsureSchema создает таблицу журнала, если её нет
func (h *DatabaseManager) EnsureSchema() error {
	if _, err := h.db.Exec(createShotResultsSQL); err != nil {
		return fmt.Errorf("failed to create shot_results table: %w", err)
	}
	return nil
}

// SaveShotResult сохраняет запись об ударе синхронно
func (h *DatabaseManager) SaveShotResult(rec ShotRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	insertSQL := `INSERT INTO shot_results
		(id, shot_type, outcome, sample_index, red_count, baseline, target_x, target_y, duration_ms, error_text, image_data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := h.db.Exec(insertSQL, rec.ID, rec.ShotType, rec.Outcome, rec.Sample, rec.Count, rec.Baseline,
		rec.Target.X, rec.Target.Y, rec.Duration.Milliseconds(), nullString(rec.ErrorText), rec.ImageData)
	if err != nil {
		return fmt.Errorf("failed to insert shot result %s: %w", rec.ID, err)
	}
	return nil
}

// SaveShotResultAsync сохраняет запись в фоне, чтобы не задерживать следующий удар
func (h *DatabaseManager) SaveShotResultAsync(rec ShotRecord) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		if err := h.SaveShotResult(rec); err != nil {
			h.logger.LogError(err, "Ошибка асинхронного сохранения удара")
			return
		}
		h.logger.Info("✅ Удар %s сохранен в базу", rec.ID)
	}()
}

// WaitForAsyncOperations ожидает завершения всех асинхронных операций сохранения
func (h *DatabaseManager) WaitForAsyncOperations() {
	h.logger.Info("⏳ Ожидаем завершения асинхронных операций сохранения...")
	h.wg.Wait()
	h.logger.Info("✅ Все асинхронные операции сохранения завершены")
}

// ListShotResults последние удары, новые сверху; outcome фильтрует по исходу (пусто = все)
func (h *DatabaseManager) ListShotResults(outcome string, limit, offset int) ([]ShotRecord, error) {
	query := `SELECT id, shot_type, outcome, sample_index, red_count, baseline,
		target_x, target_y, duration_ms, COALESCE(error_text, ''), image_data, created_at
		FROM shot_results`
	args := []interface{}{}
	if outcome != "" {
		query += ` WHERE outcome = ?`
		args = append(args, outcome)
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shot results: %w", err)
	}
	defer rows.Close()

	var out []ShotRecord
	for rows.Next() {
		var rec ShotRecord
		var durationMs int64
		if err := rows.Scan(&rec.ID, &rec.ShotType, &rec.Outcome, &rec.Sample, &rec.Count, &rec.Baseline,
			&rec.Target.X, &rec.Target.Y, &durationMs, &rec.ErrorText, &rec.ImageData, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shot result: %w", err)
		}
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CountShotResults число ударов в журнале по исходу (пусто = все)
func (h *DatabaseManager) CountShotResults(outcome string) (int, error) {
	var n int
	var err error
	if outcome == "" {
		err = h.db.QueryRow(`SELECT COUNT(*) FROM shot_results`).Scan(&n)
	} else {
		err = h.db.QueryRow(`SELECT COUNT(*) FROM shot_results WHERE outcome = ?`, outcome).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count shot results: %w", err)
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
