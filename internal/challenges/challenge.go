package challenges

import (
	"slices"
	"time"
)

// Level is a challenge difficulty tier, 0 (beginner) through 4 (final).
type Level int

const (
	MinLevel Level = 0
	MaxLevel Level = 4
)

// Category groups challenges by security discipline.
type Category string

const (
	CategoryEncoding      Category = "encoding"
	CategoryCryptography  Category = "cryptography"
	CategoryWeb           Category = "web"
	CategoryForensics     Category = "forensics"
	CategoryReverse       Category = "reverse"
	CategoryBinary        Category = "binary"
	CategoryOSINT         Category = "osint"
	CategorySteganography Category = "steganography"
	CategoryMalware       Category = "malware"
	CategoryIoT           Category = "iot"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryEncoding,
		CategoryCryptography,
		CategoryWeb,
		CategoryForensics,
		CategoryReverse,
		CategoryBinary,
		CategoryOSINT,
		CategorySteganography,
		CategoryMalware,
		CategoryIoT,
	}
}

// CategoryDisplayName returns a human-readable name for a category.
func CategoryDisplayName(c Category) string {
	switch c {
	case CategoryEncoding:
		return "Encoding"
	case CategoryCryptography:
		return "Cryptography"
	case CategoryWeb:
		return "Web"
	case CategoryForensics:
		return "Forensics"
	case CategoryReverse:
		return "Reverse Engineering"
	case CategoryBinary:
		return "Binary Exploitation"
	case CategoryOSINT:
		return "OSINT"
	case CategorySteganography:
		return "Steganography"
	case CategoryMalware:
		return "Malware Analysis"
	case CategoryIoT:
		return "IoT Security"
	default:
		return string(c)
	}
}

// Difficulty selects how strict or guided a presentation of a concept is.
type Difficulty string

const (
	DifficultyBeginner Difficulty = "beginner" // Extra hints, reduced reward and cost
	DifficultyStandard Difficulty = "standard" // The base challenge
	DifficultyAdvanced Difficulty = "advanced" // Fewer hints, time pressure
	DifficultyExpert   Difficulty = "expert"   // Minimal hints, harder content
)

// Rank orders difficulties from most guided to strictest.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyBeginner:
		return -1
	case DifficultyAdvanced:
		return 1
	case DifficultyExpert:
		return 2
	default:
		return 0
	}
}

// ParseDifficulty maps a user-supplied name to a Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(s) {
	case DifficultyBeginner, DifficultyStandard, DifficultyAdvanced, DifficultyExpert:
		return Difficulty(s), true
	}
	return "", false
}

// Variant is an alternate presentation of a challenge's concept.
type Variant struct {
	ID               string
	Difficulty       Difficulty
	TitleSuffix      string
	Prompt           string   // Replaces the base prompt when non-empty
	PromptAppendix   string   // Appended to the base prompt when non-empty
	Hints            []string // Replaces the base hints when non-nil
	Solution         string   // Replaces the base solution when non-empty
	XPMultiplier     float64
	SanityMultiplier float64
	TimeLimit        time.Duration // Zero means untimed
}

// Challenge is one puzzle definition.
type Challenge struct {
	ID         string
	Title      string
	Prompt     string
	Level      Level
	Category   Category
	Hints      []string
	XPReward   int
	SanityCost int

	// Solution is one canonical accepted answer, shown after a failure.
	Solution string

	// Difficulty is DifficultyStandard for base challenges.
	Difficulty Difficulty

	// Concept is the base challenge ID. Equal to ID for base challenges.
	Concept string

	// TimeLimit is set only on timed variants.
	TimeLimit time.Duration

	Variants []Variant
}

// IsVariant reports whether c is a materialized variant of another challenge.
func (c Challenge) IsVariant() bool {
	return c.Concept != "" && c.Concept != c.ID
}

// Difficulties lists the difficulties this challenge can be presented at,
// standard first.
func (c Challenge) Difficulties() []Difficulty {
	out := []Difficulty{DifficultyStandard}
	for _, v := range c.Variants {
		out = append(out, v.Difficulty)
	}
	return out
}

// HasDifficulty reports whether the challenge offers difficulty d.
func (c Challenge) HasDifficulty(d Difficulty) bool {
	return slices.Contains(c.Difficulties(), d)
}

// Variant returns the challenge materialized at difficulty d: overrides
// applied, rewards scaled and the title suffixed. Standard returns the
// challenge itself.
func (c Challenge) Variant(d Difficulty) (Challenge, bool) {
	if d == DifficultyStandard {
		return c.clone(), true
	}
	for _, v := range c.Variants {
		if v.Difficulty == d {
			return c.apply(v), true
		}
	}
	return Challenge{}, false
}

func (c Challenge) apply(v Variant) Challenge {
	out := c.clone()
	out.ID = v.ID
	out.Concept = c.ID
	out.Difficulty = v.Difficulty
	out.Variants = nil
	out.TimeLimit = v.TimeLimit
	out.Title = c.Title + v.TitleSuffix

	if v.Prompt != "" {
		out.Prompt = v.Prompt
	}
	if v.PromptAppendix != "" {
		out.Prompt = out.Prompt + "\n\n" + v.PromptAppendix
	}
	if v.Hints != nil {
		out.Hints = slices.Clone(v.Hints)
	}
	if v.Solution != "" {
		out.Solution = v.Solution
	}

	out.XPReward = scale(c.XPReward, v.XPMultiplier)
	if out.XPReward < 1 {
		out.XPReward = 1
	}
	out.SanityCost = scale(c.SanityCost, v.SanityMultiplier)
	return out
}

func (c Challenge) clone() Challenge {
	out := c
	out.Hints = slices.Clone(c.Hints)
	out.Variants = slices.Clone(c.Variants)
	if out.Concept == "" {
		out.Concept = c.ID
	}
	if out.Difficulty == "" {
		out.Difficulty = DifficultyStandard
	}
	return out
}

// scale multiplies n by m, truncating toward zero. A zero multiplier
// leaves n unchanged.
func scale(n int, m float64) int {
	if m == 0 {
		return n
	}
	return int(float64(n) * m)
}
