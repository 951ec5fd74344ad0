package models

import "fmt"

// Filter narrows the agenda on top of the due-today rules. The numeric
// values are the persisted ordinals and must stay stable.
type Filter int

const (
	FilterAll Filter = iota
	FilterToday
	FilterCompleted
	FilterIncomplete
)

var filterNames = map[Filter]string{
	FilterAll:        "all",
	FilterToday:      "today",
	FilterCompleted:  "completed",
	FilterIncomplete: "incomplete",
}

func (f Filter) String() string {
	if name, ok := filterNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

func (f Filter) Valid() bool {
	_, ok := filterNames[f]
	return ok
}

// Next cycles through the filters in ordinal order.
func (f Filter) Next() Filter {
	return (f + 1) % Filter(len(filterNames))
}

func ParseFilter(s string) (Filter, error) {
	for f, name := range filterNames {
		if s == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("invalid filter %q (all|today|completed|incomplete)", s)
}
