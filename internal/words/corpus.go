package words

import "github.com/scythe504/skribblr-party/internal"

func entries(d internal.WordDifficulty, pairs ...string) []internal.WordEntry {
	out := make([]internal.WordEntry, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, internal.WordEntry{Text: pairs[i], Hint: pairs[i+1], Difficulty: d})
	}
	return out
}

// builtin is the default tiered corpus.
var builtin = map[internal.WordDifficulty][]internal.WordEntry{
	internal.DifficultyEasy: entries(internal.DifficultyEasy,
		"Kaaba", "Holy site in Mecca",
		"Mosque", "Place of worship",
		"Prayer", "Salah",
		"Quran", "Holy book",
		"Ramadan", "Month of fasting",
		"Eid", "Islamic celebration",
		"Moon", "Islamic symbol",
		"Star", "Islamic symbol",
		"Angel", "Malak",
		"Prophet", "Messenger of God",
		"Heaven", "Jannah",
		"Hell", "Jahannam",
		"Mercy", "Allah is merciful",
		"Peace", "Salam",
		"Faith", "Iman",
		"Book", "Religious scripture",
		"Water", "Used for wudu",
		"Heart", "Qalb",
		"Light", "Nur",
		"Truth", "Haqq",
	),
	internal.DifficultyMedium: entries(internal.DifficultyMedium,
		"Minaret", "Tower of mosque",
		"Hijab", "Head covering",
		"Wudu", "Ablution before prayer",
		"Mihrab", "Prayer niche in mosque",
		"Tasbih", "Prayer beads",
		"Sajdah", "Prostration in prayer",
		"Zakat", "Charitable giving",
		"Hajj", "Pilgrimage to Mecca",
		"Crescent", "Moon shape symbol",
		"Dome", "Top of mosque",
		"Zamzam", "Holy water from Mecca",
		"Sunnah", "Way of the Prophet",
		"Hadith", "Prophetic sayings",
		"Jannah", "Paradise",
		"Jahannam", "Hellfire",
		"Tawhid", "Oneness of God",
		"Imam", "Prayer leader",
		"Suhoor", "Pre-dawn meal",
		"Iftar", "Breaking fast",
		"Sadaqah", "Voluntary charity",
		"Dua", "Supplication",
		"Dhikr", "Remembrance of Allah",
		"Taraweeh", "Ramadan night prayer",
		"Ummah", "Muslim community",
		"Khutbah", "Friday sermon",
	),
	internal.DifficultyHard: entries(internal.DifficultyHard,
		"Muezzin", "Person who calls to prayer",
		"Qibla", "Direction of prayer",
		"Adhan", "Call to prayer",
		"Tawaf", "Circling the Kaaba",
		"Ihram", "Sacred state for pilgrimage",
		"Umrah", "Lesser pilgrimage",
		"Jummah", "Friday congregational prayer",
		"Qiyam", "Standing in prayer",
		"Ruku", "Bowing in prayer",
		"Takbir", "Allahu Akbar",
		"Shahada", "Declaration of faith",
		"Isra", "Night journey",
		"Miraj", "Ascension to heaven",
		"Laylatul Qadr", "Night of Power",
		"Ghusl", "Full ritual bath",
		"Tayammum", "Dry ablution",
		"Fitrah", "Natural disposition",
		"Barakah", "Divine blessing",
		"Taqwa", "God consciousness",
		"Ijma", "Scholarly consensus",
		"Ijtihad", "Independent reasoning",
		"Khilafah", "Caliphate",
		"Madhab", "School of thought",
		"Mufti", "Islamic legal expert",
		"Qadi", "Islamic judge",
	),
}
