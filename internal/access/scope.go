package access

import (
	"fmt"

	"go-sales-territory/internal/territory"

	"github.com/google/uuid"
)

// ClientScope restricts client rows. Clients belong to a territory, so a
// delegate sees every client of their wilaya.
type ClientScope struct {
	All    bool
	Wilaya territory.Wilaya
}

// SaleScope restricts sale rows. Sales are credited to the representative
// who made them, so a delegate sees only their own sales, never the whole
// territory's.
type SaleScope struct {
	All              bool
	RepresentativeID uuid.UUID
}

// ResolveClientScope fails with ErrScopeUnresolved for a delegate whose
// territory is invalid. It never falls back to a default territory.
func ResolveClientScope(p Principal) (ClientScope, error) {
	if p.IsAdmin() {
		return ClientScope{All: true}, nil
	}
	if !p.HasValidTerritory() {
		return ClientScope{}, fmt.Errorf("%w: representative %s has wilaya %q", ErrScopeUnresolved, p.Username, p.RawTerritory)
	}
	return ClientScope{Wilaya: p.Territory}, nil
}

// ResolveSaleScope only needs the principal's id, so it works even when the
// territory is invalid.
func ResolveSaleScope(p Principal) SaleScope {
	if p.IsAdmin() {
		return SaleScope{All: true}
	}
	return SaleScope{RepresentativeID: p.ID}
}

// CanServe reports whether p may record a sale for a client stored with the
// given wilaya. It applies the same rule as AllowsClient.
func CanServe(p Principal, clientWilaya string) error {
	if p.IsAdmin() {
		return nil
	}
	scope, err := ResolveClientScope(p)
	if err != nil {
		return err
	}
	if !scope.AllowsClient(clientWilaya) {
		return fmt.Errorf("%w: client wilaya %q, representative wilaya %q", ErrTerritoryMismatch, clientWilaya, p.Territory)
	}
	return nil
}

// AllowsClient is the in-memory form of a client scope and must agree with
// the SQL filter: the stored wilaya has to be the canonical name. A legacy
// value such as "BATNA" matches nobody until audit-territories -fix rewrites it.
func (s ClientScope) AllowsClient(wilaya string) bool {
	if s.All {
		return true
	}
	return wilaya == s.Wilaya.String()
}

// AllowsSale is the in-memory form of a sale scope.
func (s SaleScope) AllowsSale(representativeID uuid.UUID) bool {
	return s.All || representativeID == s.RepresentativeID
}
