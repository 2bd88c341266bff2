package models

// Owner is whoever a cart and checkout belong to: a signed-in user or an
// anonymous guest identified by a cart cookie.
type Owner struct {
	ID    string
	Guest bool
}

// Key namespaces the owner ID so guest and user IDs can never collide.
func (o Owner) Key() string {
	if o.Guest {
		return "guest:" + o.ID
	}
	return "user:" + o.ID
}
