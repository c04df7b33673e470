package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Package localstore is the durable collection store backing the workflow
// engine. Each named collection is a JSON file with a versioned envelope;
// every write snapshots all collections first so a failed write can be
// rolled back without partial corruption across collections.

// SchemaVersion tags every collection file. Validate rejects files
// written by an incompatible layout.
const SchemaVersion = 1

// ErrStorageFailure wraps serialization or persistence failures. Callers
// see the write as all-or-nothing: by the time this error surfaces, every
// collection has been restored from the pre-write snapshot.
var ErrStorageFailure = errors.New("storage failure")

const (
	backupFileName = "backup.json"
	metaFileName   = "meta.json"
)

type envelope struct {
	Version int             `json:"version"`
	Records json.RawMessage `json:"records"`
}

type snapshot struct {
	TakenAt     time.Time                  `json:"taken_at"`
	Collections map[string]json.RawMessage `json:"collections"`
}

type meta struct {
	SchemaVersion int  `json:"schema_version"`
	Initialized   bool `json:"initialized"`
}

// Store serializes all access behind one mutex. The workflow engine is
// logically single-writer; the mutex makes that hold under goroutines.
type Store struct {
	mu          sync.Mutex
	dir         string
	collections []string
	logger      *slog.Logger
	firstRun    bool
}

// Open prepares the store directory, migrates any configured legacy keys
// into their canonical collections, then validates every collection.
// aliases maps canonical keys to historical key names that are read once
// and removed.
func Open(dir string, collections []string, aliases map[string][]string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	s := &Store{
		dir:         dir,
		collections: append([]string(nil), collections...),
		logger:      logger,
	}

	m, ok := s.readMeta()
	s.firstRun = !ok || !m.Initialized

	s.migrateAliases(aliases)
	s.validateLocked()

	if err := s.writeMeta(meta{SchemaVersion: SchemaVersion, Initialized: true}); err != nil {
		return nil, err
	}
	return s, nil
}

// FirstRun reports whether the store had never been initialized before
// this Open. A false FirstRun with empty collections means data was
// present once and may have been lost to a failed recovery; seeding
// callers must not treat the two the same way.
func (s *Store) FirstRun() bool {
	return s.firstRun
}

// ReadInto unmarshals the collection into out. An absent or corrupt
// collection yields an empty result, never an error: corruption is
// logged and treated as absence.
func (s *Store) ReadInto(key string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readIntoLocked(key, out)
}

func (s *Store) readIntoLocked(key string, out any) error {
	raw, err := os.ReadFile(s.collectionPath(key))
	if err != nil {
		return json.Unmarshal([]byte("[]"), out)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Version != SchemaVersion || len(env.Records) == 0 {
		s.logger.Warn("collection unreadable, treating as empty",
			"event", "localstore_read_corrupt",
			"module", "internal/platform/localstore",
			"layer", "platform",
			"collection", key,
		)
		return json.Unmarshal([]byte("[]"), out)
	}
	if err := json.Unmarshal(env.Records, out); err != nil {
		s.logger.Warn("collection records unreadable, treating as empty",
			"event", "localstore_read_corrupt",
			"module", "internal/platform/localstore",
			"layer", "platform",
			"collection", key,
			"error", err.Error(),
		)
		return json.Unmarshal([]byte("[]"), out)
	}
	return nil
}

// Write persists records under key. The current value of every collection
// is snapshotted first; any failure after that point restores the
// snapshot and reports ErrStorageFailure.
func (s *Store) Write(key string, records any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(map[string]any{key: records})
}

// WriteMany persists several collections under one snapshot. Either all
// entries land or the pre-write state of every collection is restored.
func (s *Store) WriteMany(entries map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(entries)
}

func (s *Store) writeLocked(entries map[string]any) error {
	snap := s.takeSnapshotLocked()
	if err := s.persistSnapshotLocked(snap); err != nil {
		return fmt.Errorf("persist backup: %w", errors.Join(ErrStorageFailure, err))
	}

	encoded := make(map[string][]byte, len(entries))
	for key, records := range entries {
		payload, err := json.Marshal(records)
		if err != nil {
			s.restoreSnapshotLocked(snap)
			return fmt.Errorf("serialize collection %s: %w", key, errors.Join(ErrStorageFailure, err))
		}
		raw, err := json.Marshal(envelope{Version: SchemaVersion, Records: payload})
		if err != nil {
			s.restoreSnapshotLocked(snap)
			return fmt.Errorf("serialize envelope %s: %w", key, errors.Join(ErrStorageFailure, err))
		}
		encoded[key] = raw
	}

	for key, raw := range encoded {
		if err := writeFileAtomic(s.collectionPath(key), raw); err != nil {
			s.restoreSnapshotLocked(snap)
			return fmt.Errorf("persist collection %s: %w", key, errors.Join(ErrStorageFailure, err))
		}
	}
	return nil
}

// Validate checks that every known collection deserializes to the
// expected envelope shape. On failure it restores from the last backup
// once; if the restored state is still invalid the store is wiped to
// empty rather than left half-readable. Returns whether the store is
// healthy without having been wiped.
func (s *Store) Validate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateLocked()
}

func (s *Store) validateLocked() bool {
	if s.allCollectionsValidLocked() {
		return true
	}

	s.logger.Error("store validation failed, restoring from backup",
		"event", "localstore_validate_failed",
		"module", "internal/platform/localstore",
		"layer", "platform",
	)
	s.restoreFromBackupFileLocked()
	if s.allCollectionsValidLocked() {
		return true
	}

	s.logger.Error("backup restore failed, leaving store empty",
		"event", "localstore_restore_failed",
		"module", "internal/platform/localstore",
		"layer", "platform",
	)
	for _, key := range s.collections {
		_ = os.Remove(s.collectionPath(key))
	}
	return false
}

func (s *Store) allCollectionsValidLocked() bool {
	for _, key := range s.collections {
		raw, err := os.ReadFile(s.collectionPath(key))
		if err != nil {
			continue // absent reads as empty
		}
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return false
		}
		if env.Version != SchemaVersion {
			return false
		}
		var records []json.RawMessage
		if err := json.Unmarshal(env.Records, &records); err != nil {
			return false
		}
	}
	return true
}

func (s *Store) takeSnapshotLocked() snapshot {
	snap := snapshot{
		TakenAt:     time.Now().UTC(),
		Collections: make(map[string]json.RawMessage, len(s.collections)),
	}
	for _, key := range s.collections {
		raw, err := os.ReadFile(s.collectionPath(key))
		if err != nil {
			continue
		}
		snap.Collections[key] = json.RawMessage(raw)
	}
	return snap
}

func (s *Store) persistSnapshotLocked(snap snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(s.dir, backupFileName), raw)
}

func (s *Store) restoreSnapshotLocked(snap snapshot) {
	for _, key := range s.collections {
		raw, ok := snap.Collections[key]
		if !ok {
			_ = os.Remove(s.collectionPath(key))
			continue
		}
		if err := writeFileAtomic(s.collectionPath(key), raw); err != nil {
			s.logger.Error("snapshot restore write failed",
				"event", "localstore_snapshot_restore_failed",
				"module", "internal/platform/localstore",
				"layer", "platform",
				"collection", key,
				"error", err.Error(),
			)
		}
	}
}

func (s *Store) restoreFromBackupFileLocked() {
	raw, err := os.ReadFile(filepath.Join(s.dir, backupFileName))
	if err != nil {
		return
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return
	}
	s.restoreSnapshotLocked(snap)
}

// migrateAliases consolidates collections historically written under
// alternate keys into the canonical key, once. Canonical data wins when
// both exist; alias files are removed either way so later reads never
// have to probe them.
func (s *Store) migrateAliases(aliases map[string][]string) {
	for canonical, legacyKeys := range aliases {
		for _, legacy := range legacyKeys {
			legacyPath := s.collectionPath(legacy)
			raw, err := os.ReadFile(legacyPath)
			if err != nil {
				continue
			}
			if _, statErr := os.Stat(s.collectionPath(canonical)); statErr != nil {
				var env envelope
				if json.Unmarshal(raw, &env) == nil && env.Version == SchemaVersion {
					if err := writeFileAtomic(s.collectionPath(canonical), raw); err == nil {
						s.logger.Info("migrated legacy collection key",
							"event", "localstore_alias_migrated",
							"module", "internal/platform/localstore",
							"layer", "platform",
							"legacy_key", legacy,
							"canonical_key", canonical,
						)
					}
				}
			}
			_ = os.Remove(legacyPath)
		}
	}
}

func (s *Store) readMeta() (meta, bool) {
	raw, err := os.ReadFile(filepath.Join(s.dir, metaFileName))
	if err != nil {
		return meta{}, false
	}
	var m meta
	if err := json.Unmarshal(raw, &m); err != nil {
		return meta{}, false
	}
	return m, true
}

func (s *Store) writeMeta(m meta) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(s.dir, metaFileName), raw)
}

func (s *Store) collectionPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
