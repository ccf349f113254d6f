package libdiff

// Reverse returns the changes leading from the target of cs back to its
// source.
func Reverse(cs []*Change) []*Change {
	res := make([]*Change, len(cs))
	for i, c := range cs {
		r := &Change{FromPath: c.ToPath, ToPath: c.FromPath, From: c.To, To: c.From}
		switch c.Op {
		case Delete:
			r.Op = Insert
		case Insert:
			r.Op = Delete
		default:
			r.Op = c.Op
		}
		res[i] = r
	}
	return res
}
