package adminapi

// fieldValue is a single value of a named field. A bare value renders as the
// field name alone, which query strings use for valueless flags.
type fieldValue struct {
	value string
	bare  bool
}

// fieldEntry groups all values added under one name.
type fieldEntry struct {
	name   string
	values []fieldValue
}

// fields is an ordered, case-sensitive multimap for header and query
// parameters. Names keep the position of their first insertion; values keep
// insertion order within a name. Lookups match names exactly, so "UserId"
// and "userid" are distinct entries.
type fields struct {
	entries []fieldEntry
}

// index returns the position of name, or -1.
func (f *fields) index(name string) int {
	for i := range f.entries {
		if f.entries[i].name == name {
			return i
		}
	}
	return -1
}

// add appends a value under name, creating the entry at the end if needed.
func (f *fields) add(name, value string) {
	f.addValue(name, fieldValue{value: value})
}

// addBare appends a valueless flag under name.
func (f *fields) addBare(name string) {
	f.addValue(name, fieldValue{bare: true})
}

func (f *fields) addValue(name string, v fieldValue) {
	if i := f.index(name); i >= 0 {
		f.entries[i].values = append(f.entries[i].values, v)
		return
	}
	f.entries = append(f.entries, fieldEntry{name: name, values: []fieldValue{v}})
}

// set replaces all values of name with the single given value. An existing
// entry keeps its position; a new one is appended.
func (f *fields) set(name, value string) {
	if i := f.index(name); i >= 0 {
		f.entries[i].values = []fieldValue{{value: value}}
		return
	}
	f.entries = append(f.entries, fieldEntry{name: name, values: []fieldValue{{value: value}}})
}

// del removes the entry for name entirely. Removing an absent name is a no-op.
func (f *fields) del(name string) {
	if i := f.index(name); i >= 0 {
		f.entries = append(f.entries[:i], f.entries[i+1:]...)
	}
}

// removeValue removes the first occurrence of value under name. When the
// last value goes, the entry goes with it.
func (f *fields) removeValue(name, value string) {
	i := f.index(name)
	if i < 0 {
		return
	}
	e := &f.entries[i]
	for j, v := range e.values {
		if !v.bare && v.value == value {
			e.values = append(e.values[:j], e.values[j+1:]...)
			break
		}
	}
	if len(e.values) == 0 {
		f.del(name)
	}
}

// has reports whether name is present.
func (f *fields) has(name string) bool {
	return f.index(name) >= 0
}

// get returns the first value of name.
func (f *fields) get(name string) (string, bool) {
	if i := f.index(name); i >= 0 {
		return f.entries[i].values[0].value, true
	}
	return "", false
}

// values returns a copy of all values of name, in insertion order.
// Bare flags contribute empty strings.
func (f *fields) values(name string) []string {
	i := f.index(name)
	if i < 0 {
		return nil
	}
	out := make([]string, len(f.entries[i].values))
	for j, v := range f.entries[i].values {
		out[j] = v.value
	}
	return out
}

// count returns the number of values stored under name.
func (f *fields) count(name string) int {
	if i := f.index(name); i >= 0 {
		return len(f.entries[i].values)
	}
	return 0
}

// names returns the field names in insertion order.
func (f *fields) names() []string {
	out := make([]string, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.name
	}
	return out
}
