package recent

// View is the picker's state for one session: the candidate list captured
// at open time, the rows currently displayed, the search query and the
// selection cursor. Transitions return a new View and never modify the
// receiver.
type View struct {
	all       []string
	displayed []string
	query     string
	cursor    int
}

// Open starts a session showing every candidate with the cursor on the
// first row.
func Open(candidates []string) View {
	all := append([]string{}, candidates...)
	return View{
		all:       all,
		displayed: all,
	}
}

// Search applies an edit of the search box.
//
// A non-empty query narrows the rows currently displayed, not the full
// candidate list, so successive edits compound: typing "ab" and then
// deleting back to "a" keeps rows the "ab" query excluded hidden. Only an
// empty query restores the full list. The cursor always returns to 0.
func (v View) Search(text string) View {
	v.query = text
	if len(text) >= 1 {
		v.displayed = Filter(v.displayed, text)
	} else {
		v.displayed = v.all
	}
	v.cursor = 0
	return v
}

// Down moves the cursor one row down unless it is on the last row.
func (v View) Down() View {
	if v.cursor < len(v.displayed)-1 {
		v.cursor++
	}
	return v
}

// Up moves the cursor one row up unless it is on the first row.
func (v View) Up() View {
	if v.cursor > 0 {
		v.cursor--
	}
	return v
}

// Selected returns the path under the cursor. It reports false when no
// row is displayed.
func (v View) Selected() (string, bool) {
	return v.At(v.cursor)
}

// At returns the displayed path at row i.
func (v View) At(i int) (string, bool) {
	if i < 0 || i > len(v.displayed)-1 {
		return "", false
	}
	return v.displayed[i], true
}

// All returns the candidate list the session was opened with, regardless
// of any narrowing.
func (v View) All() []string {
	return append([]string{}, v.all...)
}

// Displayed returns the rows currently shown.
func (v View) Displayed() []string {
	return append([]string{}, v.displayed...)
}

// Len is the number of rows currently shown.
func (v View) Len() int { return len(v.displayed) }

// Query returns the current search text.
func (v View) Query() string { return v.query }

// Cursor returns the selected row index.
func (v View) Cursor() int { return v.cursor }

// Filtered reports whether a search query is narrowing the rows.
func (v View) Filtered() bool { return v.query != "" }
