package classifier

// SuggestActions returns a fresh copy of the category's four canned actions.
// Unknown categories get the general list.
func SuggestActions(c Category) []string {
	list, ok := suggestedActions[c]
	if !ok {
		list = suggestedActions[CategoryGeneral]
	}
	out := make([]string, len(list))
	copy(out, list[:])
	return out
}
