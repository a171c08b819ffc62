package ws

// registry tracks live connections and hands out process-unique ids.
// It is owned by the hub goroutine; nothing else may touch it, which is
// what lets it stay lock-free.
type registry struct {
	nextId  int64
	clients map[*Client]struct{}
}

func newRegistry() *registry {
	return &registry{clients: make(map[*Client]struct{})}
}

// register assigns the next sequential id and adds the client to the
// live set. Ids are never reused for the lifetime of the process.
func (r *registry) register(client *Client) {
	r.nextId++
	client.id = r.nextId
	r.clients[client] = struct{}{}
}

// unregister removes the client from the live set. Calling it for a
// client that was already removed is a no-op; the second disconnect
// path (read error racing a shutdown) must not close Send twice.
func (r *registry) unregister(client *Client) bool {
	if _, ok := r.clients[client]; !ok {
		return false
	}
	delete(r.clients, client)
	return true
}

// members returns a snapshot of the live set for fan-out iteration, so
// a removal during the broadcast loop cannot invalidate it.
func (r *registry) members() []*Client {
	members := make([]*Client, 0, len(r.clients))
	for client := range r.clients {
		members = append(members, client)
	}
	return members
}

func (r *registry) size() int {
	return len(r.clients)
}
