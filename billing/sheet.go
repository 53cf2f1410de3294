package billing

// Sheet holds the project title and the ordered entry list. It is a value:
// every mutating method returns a new Sheet that shares no backing storage
// with the receiver.
type Sheet struct {
	projectTitle string
	entries      []Entry
}

// NewSheet returns the initial state: empty title, one blank entry.
func NewSheet() Sheet {
	return Sheet{entries: []Entry{{}}}
}

// FromEntries builds a Sheet from already collected entries.
func FromEntries(projectTitle string, entries []Entry) Sheet {
	return Sheet{projectTitle: projectTitle, entries: cloneEntries(entries, 0)}
}

func (s Sheet) ProjectTitle() string {
	return s.projectTitle
}

// Entries returns a copy of the entry list in display order.
func (s Sheet) Entries() []Entry {
	return cloneEntries(s.entries, 0)
}

func (s Sheet) Len() int {
	return len(s.entries)
}

// Entry returns the entry at index.
func (s Sheet) Entry(index int) (Entry, bool) {
	if index < 0 || index >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[index], true
}

func (s Sheet) SetProjectTitle(text string) Sheet {
	return Sheet{projectTitle: text, entries: cloneEntries(s.entries, 0)}
}

func (s Sheet) AddEntry() Sheet {
	entries := cloneEntries(s.entries, 1)
	entries = append(entries, Entry{})
	return Sheet{projectTitle: s.projectTitle, entries: entries}
}

// UpdateEntryField sets the named field of the entry at index. Unknown field
// names and out-of-range indexes leave the sheet unchanged.
func (s Sheet) UpdateEntryField(index int, fieldName, value string) Sheet {
	field, ok := ParseField(fieldName)
	if !ok {
		return s.clone()
	}
	return s.UpdateField(index, field, value)
}

func (s Sheet) UpdateField(index int, field Field, value string) Sheet {
	next := s.clone()
	setter, ok := fieldSetters[field]
	if !ok || index < 0 || index >= len(next.entries) {
		return next
	}
	setter(&next.entries[index], value)
	return next
}

// RemoveEntry deletes the entry at index and shifts later entries down. The
// list may become empty.
func (s Sheet) RemoveEntry(index int) Sheet {
	if index < 0 || index >= len(s.entries) {
		return s.clone()
	}
	entries := make([]Entry, 0, len(s.entries)-1)
	entries = append(entries, s.entries[:index]...)
	entries = append(entries, s.entries[index+1:]...)
	return Sheet{projectTitle: s.projectTitle, entries: entries}
}

func (s Sheet) clone() Sheet {
	return Sheet{projectTitle: s.projectTitle, entries: cloneEntries(s.entries, 0)}
}

func cloneEntries(entries []Entry, extra int) []Entry {
	out := make([]Entry, len(entries), len(entries)+extra)
	copy(out, entries)
	return out
}
