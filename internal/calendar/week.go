package calendar

// Monday returns the Monday that begins the week containing d.
func Monday(d Date) Date {
	return d.AddDays(-d.Weekday())
}

// Sunday returns the Sunday that ends the week containing d.
func Sunday(d Date) Date {
	return d.AddDays(6 - d.Weekday())
}

// Week returns the Monday..Sunday bounds of the week containing d.
func Week(d Date) (start, end Date) {
	start = Monday(d)
	return start, start.AddDays(DaysInWeek - 1)
}

// WeekDays returns the seven dates of the week containing d, Monday first.
func WeekDays(d Date) []Date {
	start := Monday(d)
	days := make([]Date, DaysInWeek)
	for i := range days {
		days[i] = start.AddDays(i)
	}
	return days
}

// Range returns every date from from to to inclusive. It is empty when to is
// before from.
func Range(from, to Date) []Date {
	if to.Before(from) {
		return nil
	}
	n := to.DaysSince(from) + 1
	days := make([]Date, n)
	for i := range days {
		days[i] = from.AddDays(i)
	}
	return days
}
