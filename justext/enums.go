package justext

//go:generate go tool go-enum --marshal --names

// Classification label of a paragraph. Context-free classification picks one
// of the four, revision narrows most paragraphs down to bad or good.
// ENUM(bad, short, nearGood, good)
type Class int
