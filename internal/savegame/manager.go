// Package savegame persists progression state in versioned, per-slot JSON
// files. Writes are atomic; older formats are upgraded through an ordered
// migration chain on load.
package savegame

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	"github.com/abhisek/ghostprotocol/internal/progress"
)

// DefaultSlots is the number of save slots when none is configured.
const DefaultSlots = 3

// Manager owns all save-file I/O for one save directory.
type Manager struct {
	dir         string
	slots       int
	gameVersion string
	logger      *zap.Logger
	now         func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithSlots sets the number of slots. Values below 1 are ignored.
func WithSlots(n int) Option {
	return func(m *Manager) {
		if n >= 1 {
			m.slots = n
		}
	}
}

// WithGameVersion records the running build's version in written saves.
func WithGameVersion(v string) Option {
	return func(m *Manager) { m.gameVersion = v }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock overrides the time source for last-modified stamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a manager for dir, creating the directory if needed.
func NewManager(dir string, opts ...Option) (*Manager, error) {
	m := &Manager{
		dir:    dir,
		slots:  DefaultSlots,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &IOError{Op: "create save dir", Path: dir, Err: err}
	}
	return m, nil
}

// Dir returns the save directory.
func (m *Manager) Dir() string { return m.dir }

// Slots returns the number of slots.
func (m *Manager) Slots() int { return m.slots }

// Path returns the file path of a slot.
func (m *Manager) Path(slot int) string {
	return filepath.Join(m.dir, fmt.Sprintf("slot-%d.json", slot))
}

// Loaded is a state read from a slot or an import, with what was learned
// while decoding it.
type Loaded struct {
	State        *progress.State
	Slot         int
	FromVersion  int // Version found on disk before migration
	SaveID       string
	GameVersion  string
	LastModified time.Time
	Warnings     []string
}

// Migrated reports whether the data was upgraded from an older format.
func (l *Loaded) Migrated() bool { return l.FromVersion != 0 && l.FromVersion < CurrentVersion }

// SlotInfo summarizes one slot for listing.
type SlotInfo struct {
	Slot         int
	Exists       bool
	Corrupt      bool
	Err          string
	PlayerName   string
	Level        int
	Experience   int
	Sanity       int
	Completed    int
	Version      int
	LastModified time.Time
}

func (m *Manager) checkSlot(slot int) error {
	if slot < 1 || slot > m.slots {
		return fmt.Errorf("%w: slot %d (valid 1..%d)", ErrSlotNotFound, slot, m.slots)
	}
	return nil
}

// Save writes state to slot atomically. A state violating its invariants
// is never written.
func (m *Manager) Save(state *progress.State, slot int) error {
	if err := m.checkSlot(slot); err != nil {
		return err
	}
	if err := state.CheckInvariants(); err != nil {
		return fmt.Errorf("refusing to save slot %d: %w", slot, err)
	}

	path := m.Path(slot)
	data, err := m.encode(state, slot, m.existingSaveID(path))
	if err != nil {
		return err
	}
	if err := writeAtomic(path, data); err != nil {
		return err
	}
	m.logger.Debug("saved game",
		zap.Int("slot", slot),
		zap.String("path", path),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// Load reads slot, upgrading older formats.
func (m *Manager) Load(slot int) (*Loaded, error) {
	if err := m.checkSlot(slot); err != nil {
		return nil, err
	}
	path := m.Path(slot)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: slot %d is empty", ErrSlotNotFound, slot)
		}
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	loaded, err := m.decode(data, slot)
	if err != nil {
		return nil, err
	}
	loaded.Slot = slot
	return loaded, nil
}

// LoadOrNew loads slot, falling back to a fresh state when the slot is
// empty or corrupt. Corruption is reported as a warning and the slot file
// is left untouched. I/O failures are still returned.
func (m *Manager) LoadOrNew(slot int, playerName string) (*Loaded, error) {
	loaded, err := m.Load(slot)
	switch {
	case err == nil:
		return loaded, nil
	case errors.Is(err, ErrCorrupt):
		m.logger.Warn("corrupt save, starting fresh", zap.Int("slot", slot), zap.Error(err))
		return &Loaded{
			State:    progress.New(playerName, m.now()),
			Slot:     slot,
			Warnings: []string{fmt.Sprintf("%v; started a new game (the slot file was kept)", err)},
		}, nil
	case errors.Is(err, ErrSlotNotFound) && m.checkSlot(slot) == nil:
		return &Loaded{State: progress.New(playerName, m.now()), Slot: slot}, nil
	default:
		return nil, err
	}
}

// Delete removes the save file of slot.
func (m *Manager) Delete(slot int) error {
	if err := m.checkSlot(slot); err != nil {
		return err
	}
	path := m.Path(slot)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: slot %d is empty", ErrSlotNotFound, slot)
		}
		return &IOError{Op: "delete", Path: path, Err: err}
	}
	m.logger.Debug("deleted save", zap.Int("slot", slot))
	return nil
}

// List summarizes every slot. Corrupt slots are reported, not returned as
// errors.
func (m *Manager) List() ([]SlotInfo, error) {
	out := make([]SlotInfo, 0, m.slots)
	for slot := 1; slot <= m.slots; slot++ {
		info := SlotInfo{Slot: slot}
		loaded, err := m.Load(slot)
		switch {
		case err == nil:
			sn := loaded.State.Snapshot()
			info.Exists = true
			info.PlayerName = sn.PlayerName
			info.Level = sn.Level()
			info.Experience = sn.Experience
			info.Sanity = sn.Sanity
			info.Completed = len(sn.Completed)
			info.Version = loaded.FromVersion
			info.LastModified = loaded.LastModified
		case errors.Is(err, ErrSlotNotFound):
		case errors.Is(err, ErrCorrupt):
			info.Exists = true
			info.Corrupt = true
			info.Err = err.Error()
		default:
			return nil, err
		}
		out = append(out, info)
	}
	return out, nil
}

// Export serializes state in the current format, not bound to a slot.
func (m *Manager) Export(state *progress.State) ([]byte, error) {
	if err := state.CheckInvariants(); err != nil {
		return nil, fmt.Errorf("refusing to export: %w", err)
	}
	return m.encode(state, 0, "")
}

// Import decodes exported (or any version of slot) data.
func (m *Manager) Import(data []byte) (*Loaded, error) {
	return m.decode(data, 0)
}

func (m *Manager) encode(state *progress.State, slot int, saveID string) ([]byte, error) {
	if saveID == "" {
		saveID = uuid.NewString()
	}
	f := fileV3{
		Version:      CurrentVersion,
		Slot:         slot,
		LastModified: m.now().UTC(),
		SaveID:       saveID,
		GameVersion:  m.gameVersion,
		State:        encodeState(state.Snapshot()),
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode save: %w", err)
	}
	return append(data, '\n'), nil
}

func (m *Manager) decode(data []byte, slot int) (*Loaded, error) {
	d, err := decode(data, slot)
	if err != nil {
		return nil, err
	}
	if d.fromVersion < CurrentVersion {
		stampMissingTimes(&d.file, m.now().UTC())
	}
	state, err := progress.Restore(decodeState(d.file.State))
	if err != nil {
		return nil, &CorruptError{Slot: slot, Err: err}
	}

	loaded := &Loaded{
		State:        state,
		Slot:         d.file.Slot,
		FromVersion:  d.fromVersion,
		SaveID:       d.file.SaveID,
		GameVersion:  d.file.GameVersion,
		LastModified: d.file.LastModified,
		Warnings:     d.warnings,
	}
	if w := m.versionWarning(d.file.GameVersion); w != "" {
		loaded.Warnings = append(loaded.Warnings, w)
	}
	if loaded.Migrated() {
		m.logger.Info("migrated save",
			zap.Int("slot", slot),
			zap.Int("from_version", d.fromVersion),
			zap.Int("to_version", CurrentVersion),
		)
	}
	for _, w := range loaded.Warnings {
		m.logger.Warn("save warning", zap.Int("slot", slot), zap.String("warning", w))
	}
	return loaded, nil
}

// versionWarning compares the build that wrote a save with this one. Only
// a newer major release is worth surfacing.
func (m *Manager) versionWarning(written string) string {
	cur, file := canonical(m.gameVersion), canonical(written)
	if cur == "" || file == "" {
		return ""
	}
	if semver.Compare(semver.Major(file), semver.Major(cur)) > 0 {
		return fmt.Sprintf("save was written by %s, newer than this build (%s); unknown data may be ignored", written, m.gameVersion)
	}
	return ""
}

// canonical returns v as a "v"-prefixed valid semver, or "" for
// development builds and garbage.
func canonical(v string) string {
	if v == "" {
		return ""
	}
	if v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}

// existingSaveID keeps a slot's identity across saves. Unreadable or
// corrupt files get a new id.
func (m *Manager) existingSaveID(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var head struct {
		SaveID string `json:"save_id"`
	}
	if json.Unmarshal(data, &head) != nil {
		return ""
	}
	if _, err := uuid.Parse(head.SaveID); err != nil {
		return ""
	}
	return head.SaveID
}

// stampMissingTimes gives a migrated document that carried no timestamps
// (v1, or a v2 without last_modified) the load time.
func stampMissingTimes(f *fileV3, now time.Time) {
	if f.LastModified.IsZero() {
		f.LastModified = now
	}
	if f.State.CreatedAt.IsZero() {
		f.State.CreatedAt = f.LastModified
	}
	if f.State.UpdatedAt.IsZero() {
		f.State.UpdatedAt = f.LastModified
	}
}
