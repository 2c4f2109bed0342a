// Package replay записывает ввод игрока по тикам и воспроизводит его
// детерминированно через тот же игровой цикл. Журнал хранит только ввод
// и стартовые настройки, но не состояние мира.
package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/annel0/woodland/internal/config"
	"github.com/annel0/woodland/internal/input"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
)

// FormatVersion - текущая версия формата журнала
const FormatVersion = 1

// ErrUnsupportedVersion - журнал записан в неизвестной версии формата
var ErrUnsupportedVersion = errors.New("replay: unsupported journal version")

// Frame - события, пришедшие после Tick выполненных тиков
type Frame struct {
	Tick   uint64           `json:"tick"`
	Events []input.KeyEvent `json:"events"`
}

// Journal - записанная сессия
type Journal struct {
	Version   int                `json:"version"`
	SessionID string             `json:"session_id"`
	CreatedAt time.Time          `json:"created_at"`
	World     config.WorldConfig `json:"world"`
	Keys      input.Bindings     `json:"keys"`
	Ticks     uint64             `json:"ticks"` // Всего выполнено тиков
	Frames    []Frame            `json:"frames"`
}

// Events возвращает общее количество событий в журнале
func (j *Journal) Events() int {
	n := 0
	for _, f := range j.Frames {
		n += len(f.Events)
	}
	return n
}

// Encode пишет журнал как gzip JSON
func Encode(w io.Writer, j *Journal) error {
	zw := gzip.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(j); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encode journal: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush journal: %w", err)
	}
	return nil
}

// Decode читает журнал и проверяет версию формата и порядок кадров
func Decode(r io.Reader) (*Journal, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer zr.Close()

	var j Journal
	if err := json.NewDecoder(zr).Decode(&j); err != nil {
		return nil, fmt.Errorf("decode journal: %w", err)
	}
	if j.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, j.Version)
	}

	for i, f := range j.Frames {
		if f.Tick > j.Ticks || (i > 0 && f.Tick <= j.Frames[i-1].Tick) {
			return nil, fmt.Errorf("decode journal: frame %d has tick %d out of order", i, f.Tick)
		}
	}
	return &j, nil
}

// Save атомарно записывает журнал в файл
func Save(path string, j *Journal) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".journal-*")
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, j); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close journal: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// Load читает журнал из файла
func Load(path string) (*Journal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// newJournal создает пустой журнал новой сессии
func newJournal(world config.WorldConfig, keys input.Bindings) *Journal {
	return &Journal{
		Version:   FormatVersion,
		SessionID: uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		World:     world,
		Keys:      keys,
	}
}
