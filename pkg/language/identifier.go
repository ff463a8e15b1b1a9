package language

import (
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
)

// Tag is a supported language tag.
type Tag string

const (
	TagHindi    Tag = "hi"
	TagMarathi  Tag = "mr"
	TagTamil    Tag = "ta"
	TagTelugu   Tag = "te"
	TagEnglish  Tag = "en"
	TagHinglish Tag = "en-IN"
)

var displayNames = map[Tag]string{
	TagHindi:    "Hindi",
	TagMarathi:  "Marathi",
	TagTamil:    "Tamil",
	TagTelugu:   "Telugu",
	TagEnglish:  "English",
	TagHinglish: "Hinglish",
}

// SupportedTags lists every tag Identify can return.
func SupportedTags() []Tag {
	return []Tag{TagHindi, TagMarathi, TagTamil, TagTelugu, TagEnglish, TagHinglish}
}

// Name returns the display name for a tag, or "Unknown".
func Name(tag Tag) string {
	if n, ok := displayNames[tag]; ok {
		return n
	}
	return "Unknown"
}

// Config holds the Devanagari disambiguation word lists. The Hindi/Marathi
// split by curated words is a heuristic, so the lists are injectable.
type Config struct {
	MarathiWords []string
	HindiWords   []string
}

func DefaultConfig() Config {
	return Config{
		MarathiWords: []string{"आहे", "होते", "करतो", "मराठी", "महाराष्ट्र", "मुंबई"},
		HindiWords:   []string{"है", "था", "करता", "हिंदी", "भारत"},
	}
}

// Hinglish is romanized Hindi mixed with English. These function words almost
// never appear in plain English text.
var hinglishVocabulary = []string{
	"hai", "hain", "kar", "kya", "aap", "main", "hum", "paisa", "rupee",
	"chahiye", "karna", "kaise", "kyun", "abhi", "jaldi", "nahi", "haan",
	"kal", "aaj", "thoda", "bhai",
}

// Identifier classifies raw text into one of the supported tags.
type Identifier struct {
	cfg Config
}

func NewIdentifier(cfg Config) *Identifier {
	if len(cfg.MarathiWords) == 0 || len(cfg.HindiWords) == 0 {
		cfg = DefaultConfig()
	}
	return &Identifier{cfg: cfg}
}

// Identify tags the text. It never fails: anything it cannot place ends up as
// English. The result is deterministic for identical input.
func (id *Identifier) Identify(text string) Tag {
	if strings.TrimSpace(text) == "" {
		return TagEnglish
	}

	// 1. Script ranges, first match wins.
	for _, r := range text {
		switch {
		case r >= 0x0900 && r <= 0x097F: // Devanagari: Hindi or Marathi
			return id.disambiguateDevanagari(text)
		case r >= 0x0B80 && r <= 0x0BFF:
			return TagTamil
		case r >= 0x0C00 && r <= 0x0C7F:
			return TagTelugu
		}
	}

	// 2. Romanized Hinglish vocabulary.
	if containsAnyWord(strings.ToLower(text), hinglishVocabulary) {
		return TagHinglish
	}

	// 3. Statistical fallback. whatlanggo's trigram model is deterministic.
	return statisticalTag(text)
}

// disambiguateDevanagari counts curated words per language. Marathi wins only
// with a strictly higher count; Hindi is the majority default for the script.
func (id *Identifier) disambiguateDevanagari(text string) Tag {
	marathi := 0
	for _, w := range id.cfg.MarathiWords {
		if strings.Contains(text, w) {
			marathi++
		}
	}
	hindi := 0
	for _, w := range id.cfg.HindiWords {
		if strings.Contains(text, w) {
			hindi++
		}
	}
	if marathi > hindi {
		return TagMarathi
	}
	return TagHindi
}

func statisticalTag(text string) Tag {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return ' '
		}
		return unicode.ToLower(r)
	}, text)

	info := whatlanggo.Detect(cleaned)
	switch info.Lang {
	case whatlanggo.Hin:
		return TagHindi
	case whatlanggo.Mar:
		return TagMarathi
	case whatlanggo.Tam:
		return TagTamil
	case whatlanggo.Tel:
		return TagTelugu
	default:
		return TagEnglish
	}
}

func containsAnyWord(lower string, vocab []string) bool {
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, f := range fields {
		for _, w := range vocab {
			if f == w {
				return true
			}
		}
	}
	return false
}
