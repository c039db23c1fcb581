package postgres

import (
	"strings"
	"testing"

	"github.com/rentalinx/backoffice/internal/core/domain"
	"github.com/rentalinx/backoffice/internal/core/ports"
)

func TestListQuery(t *testing.T) {
	cases := []struct {
		name     string
		filter   ports.ListAccountsFilter
		wantArgs int
		contains []string
	}{
		{"no filter", ports.ListAccountsFilter{}, 0, []string{"FROM users ORDER BY created_at DESC"}},
		{"role only", ports.ListAccountsFilter{Role: domain.RoleManager}, 1, []string{"WHERE role = $1"}},
		{"query only", ports.ListAccountsFilter{Query: "sari"}, 1, []string{"name ILIKE $1 OR email ILIKE $1"}},
		{"both", ports.ListAccountsFilter{Role: domain.RoleAdmin, Query: "adm"}, 2, []string{"role = $1 AND (name ILIKE $2 OR email ILIKE $2)"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			query, args := listQuery(tc.filter)
			if len(args) != tc.wantArgs {
				t.Fatalf("expected %d args, got %d", tc.wantArgs, len(args))
			}
			for _, want := range tc.contains {
				if !strings.Contains(query, want) {
					t.Errorf("query %q does not contain %q", query, want)
				}
			}
		})
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`50%_off\`); got != `50\%\_off\\` {
		t.Fatalf("unexpected escape: %s", got)
	}
}
