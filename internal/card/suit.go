package card

// Suit identifies the arcana group a card belongs to
type Suit string

const (
	Major     Suit = "major"
	Cups      Suit = "cups"
	Wands     Suit = "wands"
	Swords    Suit = "swords"
	Pentacles Suit = "pentacles"
)

// Suits lists every suit in catalog order. Ties in suit statistics are
// resolved in this order.
var Suits = []Suit{Major, Cups, Wands, Swords, Pentacles}

// MinorSuits lists the four minor arcana suits
var MinorSuits = []Suit{Cups, Wands, Swords, Pentacles}

// Element is the classical element associated with a suit
type Element string

const (
	Spirit Element = "spirit"
	Water  Element = "water"
	Fire   Element = "fire"
	Air    Element = "air"
	Earth  Element = "earth"
)

// Elements lists every element in the same order as Suits
var Elements = []Element{Spirit, Water, Fire, Air, Earth}

type suitInfo struct {
	name    Text
	element Element
	domain  Text
}

var suitTable = map[Suit]suitInfo{
	Major: {
		name:    Text{ZhTW: "大阿爾克那", En: "Major Arcana"},
		element: Spirit,
		domain:  Text{ZhTW: "人生課題與命運轉折", En: "life lessons and turning points"},
	},
	Cups: {
		name:    Text{ZhTW: "聖杯", En: "Cups"},
		element: Water,
		domain:  Text{ZhTW: "情感、關係與直覺", En: "emotions, relationships and intuition"},
	},
	Wands: {
		name:    Text{ZhTW: "權杖", En: "Wands"},
		element: Fire,
		domain:  Text{ZhTW: "熱情、行動與創造力", En: "passion, action and creativity"},
	},
	Swords: {
		name:    Text{ZhTW: "寶劍", En: "Swords"},
		element: Air,
		domain:  Text{ZhTW: "思考、溝通與挑戰", En: "thought, communication and challenge"},
	},
	Pentacles: {
		name:    Text{ZhTW: "錢幣", En: "Pentacles"},
		element: Earth,
		domain:  Text{ZhTW: "物質、工作與健康", En: "material life, work and health"},
	},
}

var elementNames = map[Element]Text{
	Spirit: {ZhTW: "靈", En: "Spirit"},
	Water:  {ZhTW: "水", En: "Water"},
	Fire:   {ZhTW: "火", En: "Fire"},
	Air:    {ZhTW: "風", En: "Air"},
	Earth:  {ZhTW: "土", En: "Earth"},
}

// Valid reports whether s is one of the five known suits
func (s Suit) Valid() bool {
	_, ok := suitTable[s]
	return ok
}

// Name returns the localized suit name
func (s Suit) Name(lang Lang) string {
	if info, ok := suitTable[s]; ok {
		return info.name.In(lang)
	}
	return string(s)
}

// Element returns the element the suit belongs to
func (s Suit) Element() Element {
	return suitTable[s].element
}

// Domain returns the thematic domain the suit speaks to
func (s Suit) Domain(lang Lang) string {
	return suitTable[s].domain.In(lang)
}

// Name returns the localized element name
func (e Element) Name(lang Lang) string {
	if t, ok := elementNames[e]; ok {
		return t.In(lang)
	}
	return string(e)
}

// Ranks lists the minor arcana ranks in numeric order (ace=1 .. king=14)
var Ranks = []string{
	"ace", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten",
	"page", "knight", "queen", "king",
}
