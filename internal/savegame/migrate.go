package savegame

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/ghostprotocol/internal/progress"
)

// migration upgrades a decoded document of version from to version from+1.
// Steps are pure: the same input always yields the same output.
type migration struct {
	from int
	step func(any) any
}

// migrations is the ordered upgrade chain. Adding a version means adding a
// file type, one step here, and bumping CurrentVersion.
var migrations = []migration{
	{from: 1, step: func(v any) any { return migrateV1(v.(fileV1)) }},
	{from: 2, step: func(v any) any { return migrateV2(v.(fileV2)) }},
}

// migrateV1 wraps the bare legacy state in the versioned envelope. The
// slot and timestamp are unknown and left zero; attempts start empty.
func migrateV1(old fileV1) fileV2 {
	return fileV2{
		Version: 2,
		State: stateV2{
			PlayerName:        old.PlayerName,
			Sanity:            old.Sanity,
			Experience:        old.Experience,
			Level:             old.CurrentLevel,
			Completed:         dedupe(old.CompletedChallenges),
			DiscoveredSecrets: dedupe(old.DiscoveredSecrets),
			TutorialCompleted: old.TutorialCompleted,
			Attempts:          map[string]int{},
		},
	}
}

// migrateV2 adds hint accounting, analytics, the difficulty preference and
// timestamps. Timestamps default to the envelope's last-modified time.
func migrateV2(old fileV2) fileV3 {
	attempts := make(map[string]int, len(old.State.Attempts))
	for id, n := range old.State.Attempts {
		attempts[id] = n
	}
	return fileV3{
		Version:      3,
		Slot:         old.Slot,
		LastModified: old.LastModified,
		State: stateV3{
			PlayerName:        old.State.PlayerName,
			Sanity:            old.State.Sanity,
			Experience:        old.State.Experience,
			Level:             old.State.Level,
			Completed:         dedupe(old.State.Completed),
			DiscoveredSecrets: dedupe(old.State.DiscoveredSecrets),
			TutorialCompleted: old.State.TutorialCompleted,
			Attempts:          attempts,
			DifficultyScaling: string(progress.ScalingAdaptive),
			CreatedAt:         old.LastModified,
			UpdatedAt:         old.LastModified,
			Analytics: analyticsV3{
				Categories: map[string]categoryStatsV3{},
				Recent:     []outcomeV3{},
			},
		},
	}
}

// decoded is a save document upgraded to the current version.
type decoded struct {
	file        fileV3
	fromVersion int
	warnings    []string
}

// decode detects the version of data, upgrades it through the migration
// chain and validates the result. slot is only used for error context.
func decode(data []byte, slot int) (*decoded, error) {
	if len(data) == 0 {
		return nil, corrupt(slot, "empty file")
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, corrupt(slot, "invalid JSON: %w", err)
	}

	version, err := detectVersion(probe)
	if err != nil {
		return nil, &CorruptError{Slot: slot, Err: err}
	}

	var doc any
	switch version {
	case 1:
		var f fileV1
		err = json.Unmarshal(data, &f)
		doc = f
	case 2:
		var f fileV2
		err = json.Unmarshal(data, &f)
		doc = f
	case CurrentVersion:
		if verr := validateSchema(data); verr != nil {
			return nil, &CorruptError{Slot: slot, Err: verr}
		}
		var f fileV3
		err = json.Unmarshal(data, &f)
		doc = f
	}
	if err != nil {
		return nil, corrupt(slot, "decode version %d: %w", version, err)
	}

	for _, m := range migrations {
		if m.from >= version {
			doc = m.step(doc)
		}
	}
	file, ok := doc.(fileV3)
	if !ok {
		return nil, corrupt(slot, "migration chain ended at %T", doc)
	}

	if version < CurrentVersion {
		upgraded, err := json.Marshal(file)
		if err != nil {
			return nil, corrupt(slot, "re-encode migrated save: %w", err)
		}
		if err := validateSchema(upgraded); err != nil {
			return nil, corrupt(slot, "migrated from version %d: %w", version, err)
		}
	}

	out := &decoded{file: file, fromVersion: version}
	if want := progress.LevelFor(file.State.Experience); file.State.Level != want {
		out.warnings = append(out.warnings,
			fmt.Sprintf("stored level %d disagrees with %d experience; using level %d",
				file.State.Level, file.State.Experience, want))
		out.file.State.Level = want
	}
	return out, nil
}

// detectVersion reads the version key. Documents without one are the
// legacy bare layout, recognised by its state keys.
func detectVersion(probe map[string]json.RawMessage) (int, error) {
	raw, ok := probe["version"]
	if !ok {
		_, hasSanity := probe["sanity"]
		_, hasXP := probe["experience"]
		if hasSanity && hasXP {
			return 1, nil
		}
		return 0, fmt.Errorf("unrecognized save layout")
	}
	var v int
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("invalid version tag %s", raw)
	}
	if v < 1 || v > CurrentVersion {
		return 0, fmt.Errorf("unsupported save version %d (this build reads 1..%d)", v, CurrentVersion)
	}
	return v, nil
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
