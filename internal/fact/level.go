package fact

// MinLevel is the most frequently reviewed box. New facts start here and failed reviews return here.
const MinLevel = 1

// Leveled is anything that sits in a Leitner box.
type Leveled interface {
	Level() int
	SetLevel(level int)
}

// Promote moves l up one box. The mechanism itself has no ceiling; callers clamp.
func Promote(l Leveled) {
	l.SetLevel(l.Level() + 1)
}

// Demote sends l back to MinLevel regardless of how high it had climbed.
func Demote(l Leveled) {
	l.SetLevel(MinLevel)
}

// PromoteCapped promotes l but never past maxLevel.
// A fact already above maxLevel is left where it is.
func PromoteCapped(l Leveled, maxLevel int) {
	if l.Level() >= maxLevel {
		return
	}
	Promote(l)
}

var _ Leveled = (*Fact)(nil)
