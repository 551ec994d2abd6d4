package handlers

import (
	"testing"

	"github.com/avolkov/userboard/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		want       int
	}{
		{"zero clamps to first", 0, 5, 1},
		{"negative clamps to first", -3, 5, 1},
		{"in range unchanged", 3, 5, 3},
		{"over range clamps to last", 9, 5, 5},
		{"first page stays", 1, 5, 1},
		{"last page stays", 5, 5, 5},
		{"unknown total only clamps low", 9, 0, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampPage(tt.page, tt.totalPages))
		})
	}
}

func TestFilterUsers(t *testing.T) {
	ann := models.User{ID: 1, FirstName: "Ann", LastName: "Smith", Email: "ann@reqres.in"}
	bob := models.User{ID: 2, FirstName: "Bob", LastName: "Jones", Email: "bob@reqres.in"}
	users := []models.User{ann, bob}

	t.Run("case-insensitive first name match", func(t *testing.T) {
		assert.Equal(t, []models.User{ann}, filterUsers(users, "an"))
		assert.Equal(t, []models.User{ann}, filterUsers(users, "AN"))
	})

	t.Run("empty query passes everything through", func(t *testing.T) {
		assert.Equal(t, users, filterUsers(users, ""))
	})

	t.Run("no match yields empty set", func(t *testing.T) {
		assert.Empty(t, filterUsers(users, "zelda"))
	})

	t.Run("last name and email are independent tests", func(t *testing.T) {
		assert.Equal(t, []models.User{bob}, filterUsers(users, "jones"))
		assert.Equal(t, []models.User{bob}, filterUsers(users, "bob@"))
	})
}

func TestRemoveUser(t *testing.T) {
	users := []models.User{{ID: 1}, {ID: 3}, {ID: 5}}

	t.Run("removes exactly the matching id in place", func(t *testing.T) {
		assert.Equal(t, []models.User{{ID: 1}, {ID: 5}}, removeUser(users, 3))
	})

	t.Run("absent id leaves the set unchanged", func(t *testing.T) {
		assert.Equal(t, users, removeUser(users, 42))
	})

	t.Run("zero id is a no-op", func(t *testing.T) {
		assert.Equal(t, users, removeUser(users, 0))
	})
}
