package daily

import (
	"fmt"
	"math"

	"github.com/arcanaland/tarotlog/internal/card"
	"github.com/arcanaland/tarotlog/internal/record"
)

// byOrientation holds upright and reversed text
type byOrientation [2]card.Text

func (b byOrientation) pick(reversed bool, lang card.Lang) string {
	if reversed {
		return b[1].In(lang)
	}
	return b[0].In(lang)
}

type suitCommentary struct {
	physical  byOrientation
	emotional byOrientation
	spiritual byOrientation
}

// commentary has exactly one entry per suit; TestCommentaryCoversEverySuit keeps it that way
var commentary = map[card.Suit]suitCommentary{
	card.Major: {
		physical: byOrientation{
			{ZhTW: "身心與更大的生命節奏同步，保持平衡的作息就能維持好能量。", En: "Body and mind are in step with a larger rhythm; a balanced routine keeps your energy up."},
			{ZhTW: "生活的轉變可能帶來疲勞與壓力，放慢步調，讓身體跟上。", En: "Life changes may bring fatigue and stress; slow down and let your body catch up."},
		},
		emotional: byOrientation{
			{ZhTW: "內心能感受到一股深刻的平靜，適合正視重要的情感課題。", En: "A deep calm is within reach; a good day to face important emotional lessons."},
			{ZhTW: "重大的課題可能引起不安，允許自己有情緒，再慢慢整理。", En: "Big lessons may stir unease; allow the feelings, then sort them out slowly."},
		},
		spiritual: byOrientation{
			{ZhTW: "命運之輪正在轉動，這是靈性成長與覺察的時刻。", En: "The wheel is turning; this is a moment for spiritual growth and awareness."},
			{ZhTW: "你可能對方向感到迷惘，回到內在，重新聆聽自己的聲音。", En: "You may feel confusion about direction; turn inward and listen to yourself again."},
		},
	},
	card.Cups: {
		physical: byOrientation{
			{ZhTW: "身體狀態隨心情流動，多喝水、好好休息，能量自然充足。", En: "Your body follows your mood; drink water and rest well and your energy will follow."},
			{ZhTW: "情緒積累可能化為身體的不適，留意睡眠與飲食。", En: "Pent-up feelings may turn into physical discomfort; watch your sleep and diet."},
		},
		emotional: byOrientation{
			{ZhTW: "今天的情感溫暖流動，容易感受到愛與喜悅。", En: "Feelings flow warmly today; love and joy come easily."},
			{ZhTW: "情感可能有些失落或封閉，先照顧好自己的感受。", En: "Emotions may feel closed off or touched by loss; tend to your own feelings first."},
		},
		spiritual: byOrientation{
			{ZhTW: "直覺特別敏銳，相信內心浮現的畫面。", En: "Your intuition is sharp; trust the images that rise within."},
			{ZhTW: "過度沉浸在情緒裡可能讓你停滯，試著用冥想沉澱。", En: "Sinking into emotion may lead to stagnation; meditation can help things settle."},
		},
	},
	card.Wands: {
		physical: byOrientation{
			{ZhTW: "活力旺盛，適合運動或開始新的挑戰。", En: "Vitality runs high; a good day to exercise or take on a new challenge."},
			{ZhTW: "熱情透支可能帶來疲勞，避免同時做太多事。", En: "Burning too bright may lead to fatigue; avoid doing too much at once."},
		},
		emotional: byOrientation{
			{ZhTW: "充滿熱情與自信，樂於分享想法，心情滿足。", En: "Full of passion and confidence; sharing ideas leaves you content."},
			{ZhTW: "急躁容易引發衝突，說話前先深呼吸。", En: "Impatience can spark conflict; take a breath before you speak."},
		},
		spiritual: byOrientation{
			{ZhTW: "創造力被點燃，靈感帶來新的啟發。", En: "Creativity is lit; inspiration brings new insight."},
			{ZhTW: "方向感可能暫時模糊，別急著行動，先找回初衷。", En: "Your sense of direction may blur; do not rush, reconnect with why you began."},
		},
	},
	card.Swords: {
		physical: byOrientation{
			{ZhTW: "頭腦清晰，但別忘了讓身體也保持平衡與伸展。", En: "Your mind is clear; remember to keep your body in balance with some stretching."},
			{ZhTW: "思慮過多可能造成緊張與壓力，留意肩頸與睡眠。", En: "Overthinking may cause tension and stress; mind your shoulders and sleep."},
		},
		emotional: byOrientation{
			{ZhTW: "理性幫助你看清情緒，坦誠溝通能帶來平靜。", En: "Reason helps you see your feelings clearly; honest words bring calm."},
			{ZhTW: "內心可能有焦慮或自我批評，對自己寬容一點。", En: "Anxiety or self-criticism may surface; be kinder to yourself."},
		},
		spiritual: byOrientation{
			{ZhTW: "看清真相的能力增強，覺察力正在提升。", En: "Your ability to see the truth grows; awareness is rising."},
			{ZhTW: "過度執著於對錯，反而讓心停滯不前。", En: "Attachment to being right keeps the mind in stagnation."},
		},
	},
	card.Pentacles: {
		physical: byOrientation{
			{ZhTW: "身體穩定踏實，是培養健康習慣的好時機。", En: "Your body feels grounded; a good time to build health habits."},
			{ZhTW: "忙碌讓身體感到疲勞，記得照顧基本的飲食與休息。", En: "Busyness brings fatigue; look after basic meals and rest."},
		},
		emotional: byOrientation{
			{ZhTW: "安全感充足，對目前的生活感到滿足。", En: "You feel secure and content with life as it is."},
			{ZhTW: "對物質或未來的擔憂可能帶來不安，一步一步來就好。", En: "Worry about money or the future may bring unease; take it one step at a time."},
		},
		spiritual: byOrientation{
			{ZhTW: "在日常的小事中體會踏實的成長。", En: "Find steady growth in small everyday things."},
			{ZhTW: "過度追求物質可能讓心靈停滯，想想什麼才真正重要。", En: "Chasing material things may leave the spirit in stagnation; consider what truly matters."},
		},
	},
}

type numerologyTier struct {
	upTo int
	text card.Text // card number
}

// numerologyTiers follow the three stages of the fool's journey
var numerologyTiers = []numerologyTier{
	{7, card.Text{
		ZhTW: "數字%d屬於旅程的第一階段，關於認識自我與學習面對世界。",
		En:   "Number %d belongs to the first stage of the journey: knowing yourself and learning the world.",
	}},
	{14, card.Text{
		ZhTW: "數字%d屬於旅程的第二階段，關於內在力量與生命的平衡。",
		En:   "Number %d belongs to the second stage of the journey: inner strength and balance.",
	}},
	{math.MaxInt, card.Text{
		ZhTW: "數字%d屬於旅程的第三階段，關於超越與靈性的覺醒。",
		En:   "Number %d belongs to the third stage of the journey: transcendence and spiritual awakening.",
	}},
}

func numerologyText(number int, lang card.Lang) string {
	for _, t := range numerologyTiers {
		if number <= t.upTo {
			return fmt.Sprintf(t.text.In(lang), number)
		}
	}
	return ""
}

type aspectPhrases struct {
	physical  string // lead keyword, commentary
	emotional string // description, commentary
	spiritual string // commentary
	sep       string
}

var aspectTemplates = map[card.Lang]aspectPhrases{
	card.ZhTW: {
		physical:  "今天身體的狀態與「%s」相呼應。%s",
		emotional: "%s%s",
		spiritual: "%s",
		sep:       "",
	},
	card.En: {
		physical:  "Today your body echoes \"%s\". %s",
		emotional: "%s %s",
		spiritual: "%s",
		sep:       " ",
	},
}

// Aspects writes the physical, emotional and spiritual elaboration of a drawn card
func Aspects(dc card.DrawnCard, lang card.Lang) record.DailyAspects {
	t, ok := aspectTemplates[lang]
	if !ok {
		t = aspectTemplates[card.ZhTW]
	}
	c := commentary[dc.Card.Suit]
	m := dc.Meaning()

	lead := dc.Card.Name.In(lang)
	if kw := m.Keywords.In(lang); len(kw) > 0 {
		lead = kw[0]
	}

	spiritual := fmt.Sprintf(t.spiritual, c.spiritual.pick(dc.IsReversed, lang))
	if dc.Card.IsMajor() {
		spiritual += t.sep + numerologyText(dc.Card.Number, lang)
	}

	return record.DailyAspects{
		Physical:  fmt.Sprintf(t.physical, lead, c.physical.pick(dc.IsReversed, lang)),
		Emotional: fmt.Sprintf(t.emotional, m.Description.In(lang), c.emotional.pick(dc.IsReversed, lang)),
		Spiritual: spiritual,
	}
}
