package session

// Session pairs an endpoint with the credential token currently believed valid for it.
type Session struct {
	Endpoint Endpoint
	Token    string
}

// Entry is one row of a store listing.
type Entry struct {
	Endpoint Endpoint
	Token    string
	Active   bool
}
