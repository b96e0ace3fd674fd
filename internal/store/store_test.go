package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"task-service/internal/models"
)

func TestOpenInitializesEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	s, err := Open(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)

	doc, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, doc.Users)
	require.Empty(t, doc.Tasks)
}

func TestUpdatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	s, err := Open(path)
	require.NoError(t, err)

	err = s.Update(func(doc *Document) error {
		doc.Users = append(doc.Users, models.User{ID: doc.NextUserID(), Name: "alice"})
		return nil
	})
	require.NoError(t, err)

	reopened, err := Open(path)
	require.NoError(t, err)

	doc, err := reopened.Load()
	require.NoError(t, err)
	require.Len(t, doc.Users, 1)
	require.Equal(t, 1, doc.Users[0].ID)
}

func TestUpdateErrorWritesNothing(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.Update(func(doc *Document) error {
		doc.Users = append(doc.Users, models.User{ID: 1})
		return boom
	})
	require.ErrorIs(t, err, boom)

	doc, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, doc.Users)
}

func TestNextIDsUseMaxPlusOne(t *testing.T) {
	doc := Document{
		Users: []models.User{{ID: 3}, {ID: 7}},
		Tasks: []models.Task{{ID: 2}},
	}

	require.Equal(t, 8, doc.NextUserID())
	require.Equal(t, 3, doc.NextTaskID())
	require.Equal(t, 1, doc.NextGroupID())
	require.Equal(t, 1, doc.NextMessageID())
}
