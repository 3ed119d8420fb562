package element

// Finder narrows a query over elements. A Finder can inspect any field of
// the candidate element including its free-form attributes.
type Finder func(e *GameElement) bool

// ClassIs returns a Finder matching elements with the given ClassName.
func ClassIs(class string) Finder {
	return func(e *GameElement) bool { return e.ClassName == class }
}

// NameIs returns a Finder matching elements with the given Name.
func NameIs(name string) Finder {
	return func(e *GameElement) bool { return e.Name == name }
}

// OwnedBy returns a Finder matching elements owned by the given seat.
func OwnedBy(seat int) Finder {
	return func(e *GameElement) bool { return e.Player != nil && e.Player.Seat == seat }
}

// AttrEquals returns a Finder matching elements whose attribute key equals
// value's string/number/bool representation.
func AttrEquals(key string, value any) Finder {
	return func(e *GameElement) bool {
		res := e.Attr(key)
		switch v := value.(type) {
		case string:
			return res.String() == v
		case bool:
			return res.Bool() == v
		case int:
			return res.Int() == int64(v)
		case int64:
			return res.Int() == v
		case float64:
			return res.Num == v
		default:
			return false
		}
	}
}

// descendants walks e's subtree (excluding e itself) in document order,
// stopping as soon as visit returns false.
func descendants(e *GameElement, visit func(*GameElement) bool) bool {
	for _, child := range e.Children {
		if !visit(child) {
			return false
		}
		if !descendants(child, visit) {
			return false
		}
	}
	return true
}

func matchesAll(e *GameElement, finders []Finder) bool {
	for _, f := range finders {
		if f == nil {
			continue
		}
		if !f(e) {
			return false
		}
	}
	return true
}

// All returns every descendant of e matching class and all finders, in
// document order (spec §4.1).
func (e *GameElement) All(class string, finders ...Finder) []*GameElement {
	var out []*GameElement
	all := finders
	if class != "" {
		all = append([]Finder{ClassIs(class)}, finders...)
	}
	descendants(e, func(candidate *GameElement) bool {
		if matchesAll(candidate, all) {
			out = append(out, candidate)
		}
		return true
	})
	return out
}

// First returns the first descendant of e matching class and all finders,
// or nil. It stops walking the subtree as soon as a match is found.
func (e *GameElement) First(class string, finders ...Finder) *GameElement {
	all := finders
	if class != "" {
		all = append([]Finder{ClassIs(class)}, finders...)
	}
	var found *GameElement
	descendants(e, func(candidate *GameElement) bool {
		if matchesAll(candidate, all) {
			found = candidate
			return false
		}
		return true
	})
	return found
}

// Count returns the number of descendants of e matching class and all
// finders.
func (e *GameElement) Count(class string, finders ...Finder) int {
	return len(e.All(class, finders...))
}

// AllFiltered returns every descendant of e matching class and the given
// AIP-160 filter expression (see FilterFinder).
func (e *GameElement) AllFiltered(class, filterExpr string) ([]*GameElement, error) {
	f, err := FilterFinder(filterExpr)
	if err != nil {
		return nil, err
	}
	return e.All(class, f), nil
}
