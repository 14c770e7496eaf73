package ws

import (
	"testing"

	"go-sales-territory/internal/access"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestReceivesFollowsSaleScope(t *testing.T) {
	seller := access.Principal{ID: uuid.New(), Role: access.RoleDelegate}
	colleague := access.Principal{ID: uuid.New(), Role: access.RoleDelegate}
	admin := access.Principal{ID: uuid.New(), Role: access.RoleAdmin}

	n := Notification{RepresentativeID: seller.ID, Payload: []byte(`{}`)}

	assert.True(t, Receives(seller, n))
	assert.True(t, Receives(admin, n))
	assert.False(t, Receives(colleague, n))
}
