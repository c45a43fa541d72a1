package event

// Normalize deduplicates the mark sets and enforces that no slot is both
// "great" and "if needed", keeping "great".
func Normalize(a Availability) Availability {
	selection := SelectionOf(a.Slots, a.SlotsIfNeeded)
	a.Slots = selection.Great()
	a.SlotsIfNeeded = selection.IfNeeded()
	if len(a.SlotsIfNeeded) == 0 {
		a.SlotsIfNeeded = nil
	}
	return a
}

// MergeAvailability replaces any entry with the same participant name (exact,
// case-sensitive) by the normalized submission. Fields of the previous entry
// are not carried over. The input event is not modified.
func MergeAvailability(e EventWithAvailability, submission Availability) EventWithAvailability {
	merged := make([]Availability, 0, len(e.Availability)+1)
	for _, a := range e.Availability {
		if a.ParticipantName != submission.ParticipantName {
			merged = append(merged, a)
		}
	}
	merged = append(merged, Normalize(submission))
	e.Availability = merged
	return e
}
