package ports

// Navigator routes the UI in response to store actions.
type Navigator interface {
	Navigate(route string)
	// Reload restarts the instance, releasing any stale init guard.
	Reload()
}
