package definition

// Response documents one status code of an operation.
type Response struct {
	Code    int
	Message string

	// Representation names the response body, if any.
	Representation string
}

// Responses is an ordered set of responses keyed by status code.
// The zero value is ready to use.
type Responses struct {
	items []*Response
}

// Set adds r, replacing a response with the same code in place.
func (rs *Responses) Set(r *Response) {
	for i, existing := range rs.items {
		if existing.Code == r.Code {
			rs.items[i] = r
			return
		}
	}
	rs.items = append(rs.items, r)
}

// Get returns the response registered for code.
func (rs *Responses) Get(code int) (*Response, bool) {
	for _, r := range rs.items {
		if r.Code == code {
			return r, true
		}
	}
	return nil, false
}

// All returns the responses in insertion order.
func (rs *Responses) All() []*Response {
	return rs.items
}

// Len returns the number of responses.
func (rs *Responses) Len() int {
	return len(rs.items)
}

// Clone returns a deep copy.
func (rs *Responses) Clone() Responses {
	if rs.items == nil {
		return Responses{}
	}

	c := Responses{items: make([]*Response, len(rs.items))}
	for i, r := range rs.items {
		rc := *r
		c.items[i] = &rc
	}
	return c
}
