package report

import "github.com/karolwisniewski/strumienie-03/internal/domain/order"

// group is a set of orders sharing a key. Groups are kept in the order their
// keys were first seen, which makes every "first encountered" tie-break
// follow the input order.
type group[K comparable] struct {
	key    K
	orders []order.Order
}

func groupBy[K comparable](orders []order.Order, keyOf func(order.Order) K) []group[K] {
	index := make(map[K]int)
	var groups []group[K]
	for _, o := range orders {
		k := keyOf(o)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group[K]{key: k})
		}
		groups[i].orders = append(groups[i].orders, o)
	}
	return groups
}

// pick returns the index of the group preferred by better. A later group
// replaces the current choice only when strictly better, so ties keep the
// earliest group. Returns -1 for no groups.
func pick[K comparable](groups []group[K], better func(a, b group[K]) bool) int {
	best := -1
	for i := range groups {
		if best == -1 || better(groups[i], groups[best]) {
			best = i
		}
	}
	return best
}

func larger[K comparable](a, b group[K]) bool { return len(a.orders) > len(b.orders) }
func smaller[K comparable](a, b group[K]) bool { return len(a.orders) < len(b.orders) }
