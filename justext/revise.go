package justext

// Revise refines classes using neighbor labels in four ordered stages:
// short headings adjacent to following good text are promoted, short
// paragraphs are resolved by their neighbors in a single batched pass,
// nearGood paragraphs are resolved in document order, and finally headings
// that classified bad only in context are promoted when good text follows
// close enough. Revise always starts from the context-free classes, so
// running it repeatedly over the same sequence is stable.
func Revise(paragraphs []*Paragraph, opts Options) {
	for _, p := range paragraphs {
		p.ClassType = p.InitialClass
	}
	promoteShortHeadings(paragraphs, &opts)
	resolveShort(paragraphs)
	resolveNearGood(paragraphs)
	promoteBadHeadings(paragraphs, &opts)
}

// neighbourClass scans from i in the given direction, skipping short
// paragraphs (and nearGood ones when ignoreNearGood is set), and returns the
// class of the first paragraph not skipped. Document edges default to bad.
func neighbourClass(paragraphs []*Paragraph, i, step int, ignoreNearGood bool) Class {
	for j := i + step; 0 <= j && j < len(paragraphs); j += step {
		c := paragraphs[j].ClassType
		if c == ClassShort || (ignoreNearGood && c == ClassNearGood) {
			continue
		}
		return c
	}
	return ClassBad
}

// goodWithinDistance reports whether a good paragraph follows i within the
// character window. A paragraph is inspected while the cumulative length of
// the paragraphs before it stays within the window, its own length counts
// against the paragraphs after it.
func goodWithinDistance(paragraphs []*Paragraph, i, maxDistance int) bool {
	distance := 0
	for j := i + 1; j < len(paragraphs) && distance <= maxDistance; j++ {
		if paragraphs[j].ClassType == ClassGood {
			return true
		}
		distance += paragraphs[j].Len()
	}
	return false
}

// Stage 1: short headings followed by good text close enough become
// nearGood. Mutations are applied immediately.
func promoteShortHeadings(paragraphs []*Paragraph, opts *Options) {
	for i, p := range paragraphs {
		if !p.Heading || p.ClassType != ClassShort {
			continue
		}
		if goodWithinDistance(paragraphs, i, opts.MaxHeadingDistance) {
			p.ClassType = ClassNearGood
		}
	}
}

// Stage 2: short paragraphs take the class of their surroundings. The whole
// pass is evaluated against the classes as they stand on entry and applied
// afterwards, a freshly resolved short paragraph must not influence a later
// one in the same pass.
func resolveShort(paragraphs []*Paragraph) {
	newClasses := make(map[int]Class)
	for i, p := range paragraphs {
		if p.ClassType != ClassShort {
			continue
		}
		prev := neighbourClass(paragraphs, i, -1, true)
		next := neighbourClass(paragraphs, i, +1, true)
		switch {
		case prev == ClassGood && next == ClassGood:
			newClasses[i] = ClassGood
		case prev == ClassBad && next == ClassBad:
			newClasses[i] = ClassBad
		// mixed surroundings: the side that came back bad may have skipped
		// over a nearGood paragraph, re-query it without skipping
		case prev == ClassBad && neighbourClass(paragraphs, i, -1, false) == ClassNearGood,
			next == ClassBad && neighbourClass(paragraphs, i, +1, false) == ClassNearGood:
			newClasses[i] = ClassGood
		default:
			newClasses[i] = ClassBad
		}
	}
	for i, c := range newClasses {
		paragraphs[i].ClassType = c
	}
}

// Stage 3: nearGood paragraphs become bad between bad neighbors and good
// otherwise. Changes take effect immediately, which is deterministic because
// the neighbor helper skips paragraphs still labelled nearGood.
func resolveNearGood(paragraphs []*Paragraph) {
	for i, p := range paragraphs {
		if p.ClassType != ClassNearGood {
			continue
		}
		prev := neighbourClass(paragraphs, i, -1, true)
		next := neighbourClass(paragraphs, i, +1, true)
		if prev == ClassBad && next == ClassBad {
			p.ClassType = ClassBad
		} else {
			p.ClassType = ClassGood
		}
	}
}

// Stage 4: headings that did not start out bad but ended up bad are promoted
// straight to good when good text follows within the window.
func promoteBadHeadings(paragraphs []*Paragraph, opts *Options) {
	for i, p := range paragraphs {
		if !p.Heading || p.ClassType != ClassBad || p.InitialClass == ClassBad {
			continue
		}
		if goodWithinDistance(paragraphs, i, opts.MaxHeadingDistance) {
			p.ClassType = ClassGood
		}
	}
}
