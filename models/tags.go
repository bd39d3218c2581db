package models

// GameTags maps game tag identifiers to their display label.
var GameTags = map[string]string{
	"1": "League of Legends",
	"2": "Valorant",
	"3": "Counter-Strike 2",
	"4": "Fortnite",
	"5": "Minecraft",
	"6": "Apex Legends",
	"7": "Overwatch 2",
	"8": "Rocket League",
}

// SportTags maps sport tag identifiers to their display label.
var SportTags = map[string]string{
	"10": "Football",
	"11": "Basketball",
	"12": "Tennis",
	"13": "Running",
	"14": "Swimming",
	"15": "Climbing",
	"16": "Cycling",
	"17": "Yoga",
}

// Tag is a resolved profile label.
type Tag struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Color    string `json:"color"`
	Category string `json:"category"`
}

// ResolveTag turns a raw tag identifier into a Tag. Labels come from the game
// table first, then the sport table, then the identifier itself.
func ResolveTag(id string) Tag {
	tag := Tag{ID: id, Label: id, Color: DefaultTagColor, Category: TagCategoryOther}
	if label, ok := GameTags[id]; ok {
		tag.Label = label
		tag.Category = TagCategoryGame
	} else if label, ok := SportTags[id]; ok {
		tag.Label = label
		tag.Category = TagCategorySport
	}
	if IsGameTag(id) {
		tag.Color = GameTagColor
	}
	return tag
}

// IsGameTag reports whether id belongs to the games color bucket.
func IsGameTag(id string) bool {
	_, ok := GameTags[id]
	return ok
}

// ResolveTags resolves tags preserving their order.
func ResolveTags(ids []string) []Tag {
	tags := make([]Tag, 0, len(ids))
	for _, id := range ids {
		tags = append(tags, ResolveTag(id))
	}
	return tags
}
