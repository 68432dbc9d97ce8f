package cart

import "sync"

// LineItem is one (product, size, color) entry in a cart. UnitPrice is the
// price locked in when the item was added; later catalog changes never touch
// it.
type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Size      string  `json:"size"`
	Color     string  `json:"color,omitempty"`
	Image     string  `json:"image"`
	Category  string  `json:"category"`
	Type      string  `json:"type"`
	Quantity  int     `json:"quantity"`
}

func (li LineItem) sameKey(productID, size, color string) bool {
	return li.ProductID == productID && li.Size == size && li.Color == color
}

// Ledger is an ordered, deduplicated collection of cart lines for one
// browsing session. It never performs I/O; all operations are synchronous
// mutations of its own state.
type Ledger struct {
	mu    sync.Mutex
	lines []LineItem
}

func NewLedger() *Ledger {
	return &Ledger{lines: make([]LineItem, 0)}
}

// AddItem appends a line, or increments the quantity when a line with the
// same (productId, size, color) key already exists. The existing line keeps
// its locked price.
func (l *Ledger) AddItem(item LineItem, qty int) {
	if qty <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, line := range l.lines {
		if line.sameKey(item.ProductID, item.Size, item.Color) {
			l.lines[i].Quantity += qty
			return
		}
	}
	item.Quantity = qty
	l.lines = append(l.lines, item)
}

// UpdateQuantity sets a line's quantity exactly; zero or below removes the
// line. Unknown keys are a no-op.
func (l *Ledger) UpdateQuantity(productID, size string, quantity int, color string) {
	if quantity <= 0 {
		l.RemoveItem(productID, size, color)
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, line := range l.lines {
		if line.sameKey(productID, size, color) {
			l.lines[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem deletes the matching line when present; it never errors.
func (l *Ledger) RemoveItem(productID, size, color string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, line := range l.lines {
		if line.sameKey(productID, size, color) {
			l.lines = append(l.lines[:i], l.lines[i+1:]...)
			return
		}
	}
}

// ChangeSize moves a line onto a different size, keeping its locked price
// and merging with an existing line under the new key.
func (l *Ledger) ChangeSize(productID, oldSize, newSize, color string) {
	if oldSize == newSize {
		return
	}
	l.mu.Lock()
	var moved *LineItem
	for i, line := range l.lines {
		if line.sameKey(productID, oldSize, color) {
			item := line
			l.lines = append(l.lines[:i], l.lines[i+1:]...)
			moved = &item
			break
		}
	}
	l.mu.Unlock()

	if moved == nil {
		return
	}
	moved.Size = newSize
	l.AddItem(*moved, moved.Quantity)
}

// TotalPrice sums unitPrice * quantity over all lines. Delivery fees are not
// included here.
func (l *Ledger) TotalPrice() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var total float64
	for _, line := range l.lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

// Items returns a copy of the lines in insertion order.
func (l *Ledger) Items() []LineItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LineItem, len(l.lines))
	copy(out, l.lines)
	return out
}

// Clear empties the ledger.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = l.lines[:0]
}
