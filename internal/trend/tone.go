package trend

import (
	"sort"
	"strings"

	"github.com/arcanaland/tarotlog/internal/card"
	"github.com/arcanaland/tarotlog/internal/record"
)

// Tone is the overall color of an aspect's recent texts
type Tone string

const (
	Neutral    Tone = "neutral"
	Positive   Tone = "positive"
	Cautionary Tone = "cautionary"
)

// toneWords maps each aspect to the words that signal a tone. Matching is a
// case-insensitive substring count over the aspect texts of the window, so
// both languages live in one list. This is content to tune, not logic.
var toneWords = map[Aspect]map[Tone][]string{
	Physical: {
		Cautionary: {"疲勞", "壓力", "緊張", "不適", "fatigue", "stress", "tension", "discomfort"},
		Positive:   {"活力", "能量", "健康", "平衡", "vitality", "energy", "health", "balance"},
	},
	Emotional: {
		Cautionary: {"焦慮", "不安", "失落", "衝突", "anxiety", "unease", "loss", "conflict"},
		Positive:   {"喜悅", "平靜", "愛", "滿足", "joy", "calm", "love", "content"},
	},
	Spiritual: {
		Cautionary: {"迷惘", "停滯", "執著", "confusion", "stagnation", "attachment"},
		Positive:   {"成長", "覺察", "直覺", "啟發", "growth", "awareness", "intuition", "insight"},
	},
}

func aspectText(rec record.DailyCardRecord, aspect Aspect) string {
	switch aspect {
	case Physical:
		return rec.Aspects.Physical
	case Emotional:
		return rec.Aspects.Emotional
	default:
		return rec.Aspects.Spiritual
	}
}

// ToneOf scores a single text for aspect
func ToneOf(aspect Aspect, text string) Tone {
	text = strings.ToLower(text)
	cautionary := matches(text, toneWords[aspect][Cautionary])
	positive := matches(text, toneWords[aspect][Positive])
	switch {
	case cautionary > positive:
		return Cautionary
	case positive > cautionary:
		return Positive
	default:
		return Neutral
	}
}

func aspectTexts(aspect Aspect, recs []record.DailyCardRecord) string {
	var b strings.Builder
	for _, rec := range recs {
		b.WriteString(aspectText(rec, aspect))
		b.WriteString("\n")
	}
	return b.String()
}

func toneOf(aspect Aspect, recs []record.DailyCardRecord) Tone {
	return ToneOf(aspect, aspectTexts(aspect, recs))
}

// aspectKeywords returns the n terms that occur most often in the aspect's
// own texts. Candidates are the window's card keywords followed by the
// aspect's tone words; equal counts keep that order. When nothing matches,
// fallback is returned.
func aspectKeywords(aspect Aspect, recs []record.DailyCardRecord, lang card.Lang, fallback []string, n int) []string {
	text := strings.ToLower(aspectTexts(aspect, recs))

	var candidates []string
	seen := make(map[string]bool)
	add := func(w string) {
		if w != "" && !seen[w] {
			seen[w] = true
			candidates = append(candidates, w)
		}
	}
	for _, rec := range recs {
		for _, kw := range rec.Card.Keywords(lang) {
			add(kw)
		}
	}
	for _, tone := range []Tone{Cautionary, Positive} {
		for _, w := range toneWords[aspect][tone] {
			add(w)
		}
	}

	counts := make(map[string]int, len(candidates))
	var found []string
	for _, w := range candidates {
		if c := strings.Count(text, strings.ToLower(w)); c > 0 {
			counts[w] = c
			found = append(found, w)
		}
	}
	if len(found) == 0 {
		return fallback
	}
	sort.SliceStable(found, func(i, j int) bool {
		return counts[found[i]] > counts[found[j]]
	})
	if len(found) > n {
		found = found[:n]
	}
	return found
}

func matches(text string, words []string) int {
	n := 0
	for _, w := range words {
		n += strings.Count(text, w)
	}
	return n
}
