// Package docnumber genera números de documento ordenables (facturas, pedidos de compra).
package docnumber

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Prefijos de documento.
const (
	PrefixInvoice       = "INV"
	PrefixPurchaseOrder = "PO"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// New devuelve "<prefix>-<ULID>". Los ULID generados en el mismo milisegundo son monótonos,
// así que el orden lexicográfico coincide con el de creación.
func New(prefix string) string {
	return NewAt(prefix, time.Now())
}

// NewAt igual que New pero con un instante explícito.
func NewAt(prefix string, t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return prefix + "-" + ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
