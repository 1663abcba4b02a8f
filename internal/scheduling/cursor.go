package scheduling

// DayCursor is an explicit navigation cursor over an ordered bookable-day
// list. It replaces ambient UI state: callers own the cursor, the selector
// owns the data, and moving the cursor never touches the underlying days.
type DayCursor struct {
	days  []BookableDay
	index int
}

// NewDayCursor positions a cursor at the first day of the list
func NewDayCursor(days []BookableDay) *DayCursor {
	return &DayCursor{days: days}
}

// Len returns the number of days the cursor ranges over
func (c *DayCursor) Len() int {
	return len(c.days)
}

// Current returns the day under the cursor, or false when the list is empty
func (c *DayCursor) Current() (BookableDay, bool) {
	if len(c.days) == 0 {
		return BookableDay{}, false
	}
	return c.days[c.index], true
}

// Next advances the cursor, wrapping around past the last day
func (c *DayCursor) Next() (BookableDay, bool) {
	if len(c.days) == 0 {
		return BookableDay{}, false
	}
	c.index = (c.index + 1) % len(c.days)
	return c.days[c.index], true
}

// Prev moves the cursor back, wrapping around before the first day
func (c *DayCursor) Prev() (BookableDay, bool) {
	if len(c.days) == 0 {
		return BookableDay{}, false
	}
	c.index = (c.index - 1 + len(c.days)) % len(c.days)
	return c.days[c.index], true
}
