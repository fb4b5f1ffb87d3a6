package words

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/scythe504/skribblr-party/internal"
)

const CustomHint = "Custom word"

// Lexicon holds the tiered word pools rooms draw their choices from.
type Lexicon struct {
	tiers map[internal.WordDifficulty][]internal.WordEntry

	mu  sync.Mutex
	rng *rand.Rand
}

// NewLexicon returns a Lexicon over the built-in corpus. A nil rng uses a randomly seeded source.
func NewLexicon(rng *rand.Rand) *Lexicon {
	return FromTiers(builtin, rng)
}

// FromTiers builds a Lexicon over caller-supplied pools.
func FromTiers(tiers map[internal.WordDifficulty][]internal.WordEntry, rng *rand.Rand) *Lexicon {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Lexicon{tiers: tiers, rng: rng}
}

// Tier returns a copy of the entries of one difficulty tier.
func (l *Lexicon) Tier(d internal.WordDifficulty) []internal.WordEntry {
	return append([]internal.WordEntry(nil), l.tiers[d]...)
}

// Sample returns up to count distinct entries in random order. Custom words are
// prepended to the pool; unknown tiers fall back to medium. A pool smaller than
// count is returned whole.
func (l *Lexicon) Sample(difficulty internal.WordDifficulty, customWords []string, count int) []internal.WordEntry {
	tier, ok := l.tiers[difficulty]
	if !ok {
		tier = l.tiers[internal.DifficultyMedium]
	}

	pool := make([]internal.WordEntry, 0, len(customWords)+len(tier))
	for _, w := range customWords {
		if w = strings.TrimSpace(w); w == "" {
			continue
		}
		pool = append(pool, internal.WordEntry{Text: w, Hint: CustomHint, Difficulty: internal.DifficultyCustom})
	}
	pool = append(pool, tier...)

	l.mu.Lock()
	l.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	l.mu.Unlock()

	if count < 0 {
		count = 0
	}
	if len(pool) > count {
		pool = pool[:count]
	}
	return pool
}

// LoadCSV builds a Lexicon from a word,hint,difficulty file. Tiers missing from the
// file keep their built-in entries.
func LoadCSV(path string, rng *rand.Rand) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open words file %s: %w", path, err)
	}
	defer f.Close()

	tiers, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse words file %s: %w", path, err)
	}
	for d, entries := range builtin {
		if len(tiers[d]) == 0 {
			tiers[d] = entries
		}
	}
	return FromTiers(tiers, rng), nil
}

// ReadCSV parses word,hint,difficulty records. Malformed records are skipped.
func ReadCSV(r io.Reader) (map[internal.WordDifficulty][]internal.WordEntry, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, err
	}

	tiers := make(map[internal.WordDifficulty][]internal.WordEntry)
	for i, record := range records {
		if len(record) < 3 {
			log.Debug().Int("line", i+1).Strs("record", record).Msg("[ReadCSV] skipping short record")
			continue
		}
		word := strings.TrimSpace(record[0])
		d := internal.WordDifficulty(strings.ToLower(strings.TrimSpace(record[2])))
		switch d {
		case internal.DifficultyEasy, internal.DifficultyMedium, internal.DifficultyHard:
		default:
			if i == 0 {
				// header row
				continue
			}
			log.Debug().Int("line", i+1).Str("difficulty", string(d)).Msg("[ReadCSV] skipping unknown difficulty")
			continue
		}
		if word == "" {
			continue
		}
		tiers[d] = append(tiers[d], internal.WordEntry{
			Text:       word,
			Hint:       strings.TrimSpace(record[1]),
			Difficulty: d,
		})
	}
	return tiers, nil
}
