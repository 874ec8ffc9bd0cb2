// Package spread maps a card count to a named spread with per-position
// meanings.
package spread

import "github.com/arcanaland/tarotlog/internal/card"

const (
	MinCards = 1
	MaxCards = 9
)

// Position is one labeled slot in a spread
type Position struct {
	Name        card.Text `json:"name"`
	Description card.Text `json:"description"`
}

// Framework is the static interpretation layout for one card count.
// len(Positions) always equals the card count.
type Framework struct {
	Name        card.Text  `json:"name"`
	Description card.Text  `json:"description"`
	Positions   []Position `json:"positions"`
}

// CardCount returns the number of positions in the framework
func (f Framework) CardCount() int {
	return len(f.Positions)
}

// Clamp forces n into [MinCards, MaxCards]
func Clamp(n int) int {
	if n < MinCards {
		return MinCards
	}
	if n > MaxCards {
		return MaxCards
	}
	return n
}

// For returns the framework for n cards, clamping n to [1, 9]
func For(n int) Framework {
	return frameworks[Clamp(n)-1]
}

// All returns every framework ordered by card count
func All() []Framework {
	out := make([]Framework, len(frameworks))
	copy(out, frameworks)
	return out
}

func pos(zhName, enName, zhDesc, enDesc string) Position {
	return Position{
		Name:        card.Text{ZhTW: zhName, En: enName},
		Description: card.Text{ZhTW: zhDesc, En: enDesc},
	}
}

var frameworks = []Framework{
	{
		Name:        card.Text{ZhTW: "單張指引", En: "Single Card Guidance"},
		Description: card.Text{ZhTW: "以一張牌聚焦當下最重要的訊息", En: "One card focusing on the message that matters most now"},
		Positions: []Position{
			pos("核心訊息", "Core Message", "此刻最需要留意的指引", "The guidance you most need right now"),
		},
	},
	{
		Name:        card.Text{ZhTW: "情境與建議", En: "Situation and Advice"},
		Description: card.Text{ZhTW: "看清現況並獲得行動建議", En: "See the situation clearly and receive advice"},
		Positions: []Position{
			pos("現況", "Situation", "目前所處的情境", "The situation you are in"),
			pos("建議", "Advice", "面對情境的建議方向", "The advised way forward"),
		},
	},
	{
		Name:        card.Text{ZhTW: "過去・現在・未來", En: "Past, Present, Future"},
		Description: card.Text{ZhTW: "沿著時間軸理解事情的脈絡", En: "Follow the thread of events through time"},
		Positions: []Position{
			pos("過去", "Past", "影響現況的過去因素", "Past influences shaping the present"),
			pos("現在", "Present", "當前的狀態與能量", "The current state and energy"),
			pos("未來", "Future", "依目前方向可能的發展", "The likely outcome on the current path"),
		},
	},
	{
		Name:        card.Text{ZhTW: "四元素牌陣", En: "Four Elements"},
		Description: card.Text{ZhTW: "從四個層面檢視問題", En: "Examine the question from four sides"},
		Positions: []Position{
			pos("行動", "Action", "火元素：需要採取的行動", "Fire: the action to take"),
			pos("情感", "Emotion", "水元素：內在的感受", "Water: your inner feelings"),
			pos("思考", "Thought", "風元素：需要釐清的想法", "Air: the thoughts to clarify"),
			pos("現實", "Reality", "土元素：實際的資源與限制", "Earth: practical resources and limits"),
		},
	},
	{
		Name:        card.Text{ZhTW: "五芒星牌陣", En: "Pentagram"},
		Description: card.Text{ZhTW: "探索問題的核心與周邊影響", En: "Explore the core of a question and what surrounds it"},
		Positions: []Position{
			pos("核心", "Core", "問題的本質", "The heart of the question"),
			pos("阻礙", "Obstacle", "需要克服的挑戰", "The challenge to overcome"),
			pos("助力", "Support", "可以運用的資源", "Resources you can draw on"),
			pos("建議", "Advice", "適合採取的態度", "The attitude to adopt"),
			pos("結果", "Outcome", "可能的結果", "The likely result"),
		},
	},
	{
		Name:        card.Text{ZhTW: "六芒星牌陣", En: "Hexagram"},
		Description: card.Text{ZhTW: "完整檢視時間與內外在因素", En: "A full view of time and inner and outer forces"},
		Positions: []Position{
			pos("過去", "Past", "過去的影響", "Past influences"),
			pos("現在", "Present", "目前的狀況", "The current situation"),
			pos("未來", "Future", "即將到來的發展", "What is coming"),
			pos("對策", "Strategy", "應對的方法", "How to respond"),
			pos("環境", "Environment", "周遭的人事物", "People and circumstances around you"),
			pos("內心", "Inner Self", "你真正的想法", "What you truly think"),
		},
	},
	{
		Name:        card.Text{ZhTW: "馬蹄鐵牌陣", En: "Horseshoe"},
		Description: card.Text{ZhTW: "七個階段追蹤事情的走向", En: "Seven steps tracing where things are heading"},
		Positions: []Position{
			pos("過去", "Past", "事情的起因", "How it began"),
			pos("現在", "Present", "目前的處境", "Where you stand"),
			pos("近期未來", "Near Future", "接下來的變化", "The next change"),
			pos("對策", "Approach", "最適合的做法", "The best approach"),
			pos("他人影響", "Others", "周遭人的態度", "How others see it"),
			pos("希望與恐懼", "Hopes and Fears", "內心的期待與擔憂", "Your hopes and worries"),
			pos("最終結果", "Outcome", "事情的最終走向", "Where it ends up"),
		},
	},
	{
		Name:        card.Text{ZhTW: "八方位牌陣", En: "Eight Directions"},
		Description: card.Text{ZhTW: "從八個面向檢視生活的平衡", En: "Check the balance of life across eight areas"},
		Positions: []Position{
			pos("自我", "Self", "你目前的狀態", "Your current state"),
			pos("財富", "Wealth", "金錢與資源", "Money and resources"),
			pos("溝通", "Communication", "表達與學習", "Expression and learning"),
			pos("家庭", "Home", "家庭與根基", "Family and roots"),
			pos("創造", "Creativity", "樂趣與創作", "Joy and creation"),
			pos("健康", "Health", "身體與日常", "Body and daily routine"),
			pos("關係", "Relationships", "伴侶與合作", "Partners and collaboration"),
			pos("轉化", "Transformation", "需要放下與重生的部分", "What must be released and reborn"),
		},
	},
	{
		Name:        card.Text{ZhTW: "九宮格牌陣", En: "Nine-Square Grid"},
		Description: card.Text{ZhTW: "以身心靈三層與時間三段全面解讀", En: "Body, mind and spirit across past, present and future"},
		Positions: []Position{
			pos("過去・身", "Past Body", "過去的身體與物質狀態", "Past physical and material state"),
			pos("過去・心", "Past Mind", "過去的情緒與想法", "Past emotions and thoughts"),
			pos("過去・靈", "Past Spirit", "過去的靈性課題", "Past spiritual lessons"),
			pos("現在・身", "Present Body", "現在的身體與物質狀態", "Present physical and material state"),
			pos("現在・心", "Present Mind", "現在的情緒與想法", "Present emotions and thoughts"),
			pos("現在・靈", "Present Spirit", "現在的靈性課題", "Present spiritual lessons"),
			pos("未來・身", "Future Body", "未來的身體與物質狀態", "Future physical and material state"),
			pos("未來・心", "Future Mind", "未來的情緒與想法", "Future emotions and thoughts"),
			pos("未來・靈", "Future Spirit", "未來的靈性課題", "Future spiritual lessons"),
		},
	},
}
