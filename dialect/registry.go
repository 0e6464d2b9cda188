package dialect

import (
	"sort"
	"sync"
)

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Driver)
)

// Register makes a driver available under the given connection-string
// token. Backend packages call it from init, so like database/sql it
// panics on a nil driver, a driver failing the compliance check, or a
// duplicate token.
func Register(token string, d Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if token == "" {
		panic("dialect: Register with empty token")
	}
	if err := Comply(d); err != nil {
		panic("dialect: Register " + token + ": " + err.Error())
	}
	if _, dup := drivers[token]; dup {
		panic("dialect: Register called twice for token " + token)
	}
	drivers[token] = d
}

// Lookup returns the driver registered for token, or false if none is.
func Lookup(token string) (Driver, bool) {
	driversMu.RLock()
	defer driversMu.RUnlock()
	d, ok := drivers[token]
	return d, ok
}

// Drivers returns the sorted list of registered tokens.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	list := make([]string, 0, len(drivers))
	for token := range drivers {
		list = append(list, token)
	}
	sort.Strings(list)
	return list
}
