package service

import (
	"context"

	"go-sales-territory/internal/access"
	"go-sales-territory/internal/repository"
	"go-sales-territory/internal/territory"
)

// Audit finding statuses
const (
	AuditInvalid      = "invalid"
	AuditNonCanonical = "non_canonical"
	AuditFixed        = "fixed"
)

// AuditFinding is one stored wilaya that is not in canonical form
type AuditFinding struct {
	Kind      string `json:"kind"` // representative or client
	ID        string `json:"id"`
	Name      string `json:"name"`
	Wilaya    string `json:"wilaya"`
	Canonical string `json:"canonical,omitempty"`
	Status    string `json:"status"`
}

type TerritoryAudit struct {
	Representatives int            `json:"representatives"`
	Clients         int            `json:"clients"`
	Findings        []AuditFinding `json:"findings"`
}

// Invalid counts findings that no rewrite can repair
func (a *TerritoryAudit) Invalid() int {
	n := 0
	for _, f := range a.Findings {
		if f.Status == AuditInvalid {
			n++
		}
	}
	return n
}

// AuditTerritories reports every representative and client whose stored
// wilaya is not canonical. With fix set, values that parse are rewritten to
// their canonical name; values that do not parse are only reported, since
// guessing a territory would widen or shift someone's scope.
func AuditTerritories(ctx context.Context, store *repository.Store, fix bool) (*TerritoryAudit, error) {
	reps, err := store.Representatives.FindAll(ctx)
	if err != nil {
		return nil, storeError("list representatives", err, nil)
	}
	clients, err := store.Clients.FindAll(ctx, access.ClientScope{All: true})
	if err != nil {
		return nil, storeError("list clients", err, nil)
	}

	audit := &TerritoryAudit{Representatives: len(reps), Clients: len(clients)}

	check := func(kind, id, name, raw string, rewrite func(canonical string) error) error {
		w, err := territory.Parse(raw)
		if err != nil {
			audit.Findings = append(audit.Findings, AuditFinding{Kind: kind, ID: id, Name: name, Wilaya: raw, Status: AuditInvalid})
			return nil
		}
		if raw == w.String() {
			return nil
		}
		finding := AuditFinding{Kind: kind, ID: id, Name: name, Wilaya: raw, Canonical: w.String(), Status: AuditNonCanonical}
		if fix {
			if err := rewrite(w.String()); err != nil {
				return storeError("update wilaya", err, nil)
			}
			finding.Status = AuditFixed
		}
		audit.Findings = append(audit.Findings, finding)
		return nil
	}

	for _, rep := range reps {
		// admins are unscoped, their wilaya is informative
		if p, err := principalOf(&rep); err == nil && p.IsAdmin() {
			continue
		}
		id := rep.ID
		err := check("representative", id.String(), rep.Username, rep.Wilaya, func(canonical string) error {
			return store.Representatives.UpdateWilaya(ctx, id, canonical)
		})
		if err != nil {
			return nil, err
		}
	}

	for _, client := range clients {
		id := client.ID
		err := check("client", client.ClientID, client.FullName, client.Wilaya, func(canonical string) error {
			return store.Clients.UpdateWilaya(ctx, id, canonical)
		})
		if err != nil {
			return nil, err
		}
	}

	return audit, nil
}
