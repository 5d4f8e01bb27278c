package inventory

import (
	"sync"

	"github.com/rogerio-castellano/inventory-client/internal/models"
)

// Route names a screen.
type Route string

const (
	RouteHome           Route = "Home"
	RouteAddProduct     Route = "AddProduct"
	RouteEditProduct    Route = "EditProduct"
	RouteDetailsProduct Route = "DetailsProduct"
)

// Params are the only values passed between screens.
type Params struct {
	ProductID models.ProductID
}

// Entry is one screen on the navigation stack.
type Entry struct {
	Route  Route
	Params Params
}

// Navigator moves between screens.
type Navigator interface {
	Navigate(route Route, params Params)
	GoBack()
}

// StackNavigator keeps screens on a stack. Navigating to a route already on
// the stack pops back to it and replaces its params.
type StackNavigator struct {
	mu      sync.Mutex
	stack   []Entry
	onFocus func(Entry)
}

// NewStackNavigator starts on initial. onFocus, if set, is called with the
// screen that becomes visible after every move.
func NewStackNavigator(initial Route, onFocus func(Entry)) *StackNavigator {
	return &StackNavigator{
		stack:   []Entry{{Route: initial}},
		onFocus: onFocus,
	}
}

func (n *StackNavigator) Navigate(route Route, params Params) {
	n.mu.Lock()
	entry := Entry{Route: route, Params: params}
	found := false
	for i := len(n.stack) - 1; i >= 0; i-- {
		if n.stack[i].Route == route {
			n.stack = append(n.stack[:i], entry)
			found = true
			break
		}
	}
	if !found {
		n.stack = append(n.stack, entry)
	}
	n.mu.Unlock()
	n.focus(entry)
}

func (n *StackNavigator) GoBack() {
	n.mu.Lock()
	if len(n.stack) <= 1 {
		n.mu.Unlock()
		return
	}
	n.stack = n.stack[:len(n.stack)-1]
	top := n.stack[len(n.stack)-1]
	n.mu.Unlock()
	n.focus(top)
}

// Current returns the visible screen.
func (n *StackNavigator) Current() Entry {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack[len(n.stack)-1]
}

// Depth returns the number of screens on the stack.
func (n *StackNavigator) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.stack)
}

func (n *StackNavigator) focus(e Entry) {
	if n.onFocus != nil {
		n.onFocus(e)
	}
}
