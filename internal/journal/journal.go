// Package journal keeps an append-only, fsynced record of generated
// recommendations. Entries are written before the database row so a failed
// persist still leaves a durable trace; confirmed rows are compacted away.
package journal

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hunterlab/monster-advisor/pkg/logger"
	"go.uber.org/zap"
)

// Entry is one generated recommendation.
type Entry struct {
	RecordID     string    `json:"record_id"`
	UserID       uint      `json:"user_id"`
	MonsterID    uint      `json:"monster_id"`
	WeaponID     uint      `json:"weapon_id"`
	Reasoning    string    `json:"reasoning"`
	FallbackUsed bool      `json:"fallback_used"`
	Timestamp    time.Time `json:"timestamp"`
}

// Journal is a line-oriented JSON log guarded by a mutex; safe for
// concurrent request handlers.
type Journal struct {
	path string
	file *os.File
	mu   sync.Mutex
}

func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &Journal{path: path, file: file}, nil
}

// Append writes one entry and syncs it to disk before returning.
func (j *Journal) Append(entry Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	if _, err := j.file.Write(append(data, '\n')); err != nil {
		logger.Log.Error("Journal: write failed",
			zap.String("record_id", entry.RecordID),
			zap.Error(err),
		)
		return err
	}

	if err := j.file.Sync(); err != nil {
		logger.Log.Error("Journal: sync failed",
			zap.String("record_id", entry.RecordID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// Entries returns every journaled entry. Unparseable lines are skipped.
func (j *Journal) Entries() ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.readAll()
}

// Compact drops entries whose record ids are confirmed persisted, rewriting
// the file atomically via a temp file rename.
func (j *Journal) Compact(persistedIDs []string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries, err := j.readAll()
	if err != nil {
		return err
	}

	persisted := make(map[string]bool, len(persistedIDs))
	for _, id := range persistedIDs {
		persisted[id] = true
	}

	remaining := entries[:0]
	for _, e := range entries {
		if !persisted[e.RecordID] {
			remaining = append(remaining, e)
		}
	}

	// Write the replacement fully before touching the live handle, so a
	// failure here leaves the journal open and appendable.
	tmpPath := j.path + ".tmp"
	tmp, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	for _, e := range remaining {
		data, _ := json.Marshal(e)
		tmp.Write(append(data, '\n'))
	}
	tmp.Sync()
	tmp.Close()

	if err := j.file.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, j.path); err != nil {
		// Reopen the original so later appends still land somewhere durable.
		if file, openErr := os.OpenFile(j.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644); openErr == nil {
			j.file = file
		}
		return err
	}

	// Reopen in append mode so subsequent writes land after the survivors.
	file, err := os.OpenFile(j.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	j.file = file

	logger.Log.Debug("Journal: compacted",
		zap.Int("before", len(entries)),
		zap.Int("remaining", len(remaining)),
	)

	return nil
}

func (j *Journal) readAll() ([]Entry, error) {
	file, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, scanner.Err()
}

func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}
