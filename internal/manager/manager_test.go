package manager

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type draft struct {
	Title string
}

func TestSessionHappyPath(t *testing.T) {
	s := NewSession[draft]()
	assert.Equal(t, StateIdle, s.State())

	require.NoError(t, s.Edit(draft{Title: "a"}))
	assert.Equal(t, StateEditing, s.State())

	d, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, "a", d.Title)
	assert.Equal(t, StateSubmitting, s.State())

	s.Complete()
	assert.Equal(t, StateIdle, s.State())
	_, ok := s.Draft()
	assert.False(t, ok)
	assert.Nil(t, s.LastErr())
}

func TestSessionFailurePreservesDraft(t *testing.T) {
	s := NewSession[draft]()
	require.NoError(t, s.Edit(draft{Title: "keep me"}))
	_, err := s.Submit()
	require.NoError(t, err)

	boom := errors.New("backend down")
	s.Fail(boom)

	assert.Equal(t, StateEditing, s.State())
	d, ok := s.Draft()
	require.True(t, ok)
	assert.Equal(t, "keep me", d.Title)
	assert.Equal(t, boom, s.LastErr())

	// the user retries without re-entering data
	d, err = s.Submit()
	require.NoError(t, err)
	assert.Equal(t, "keep me", d.Title)
	s.Complete()
	assert.Equal(t, StateIdle, s.State())
}

func TestSessionCancelDiscardsDraft(t *testing.T) {
	s := NewSession[draft]()
	require.NoError(t, s.Edit(draft{Title: "scrap"}))
	require.NoError(t, s.Cancel())

	assert.Equal(t, StateIdle, s.State())
	_, ok := s.Draft()
	assert.False(t, ok)

	_, err := s.Submit()
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestSessionNoConcurrentSubmit(t *testing.T) {
	s := NewSession[draft]()
	require.NoError(t, s.Edit(draft{Title: "a"}))
	_, err := s.Submit()
	require.NoError(t, err)

	_, err = s.Submit()
	assert.ErrorIs(t, err, ErrSubmitting)
	assert.ErrorIs(t, s.Edit(draft{Title: "b"}), ErrSubmitting)
	assert.ErrorIs(t, s.Cancel(), ErrSubmitting)
}

type item struct {
	ID   string
	Name string
}

func TestListReconciliation(t *testing.T) {
	l := NewList(func(i item) string { return i.ID })

	l.Replace([]item{{ID: "1", Name: "one"}, {ID: "2", Name: "two"}})
	assert.Len(t, l.Items(), 2)

	// upsert by id replaces in place
	l.Upsert(item{ID: "2", Name: "two (edited)"})
	items := l.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "two (edited)", items[1].Name)

	// unknown id appends
	l.Upsert(item{ID: "3", Name: "three"})
	assert.Len(t, l.Items(), 3)

	l.Remove("1")
	items = l.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "2", items[0].ID)

	// removing an absent id is a no-op
	l.Remove("1")
	assert.Len(t, l.Items(), 2)
}

func TestListItemsIsACopy(t *testing.T) {
	l := NewList(func(i item) string { return i.ID })
	l.Replace([]item{{ID: "1"}})

	items := l.Items()
	items[0].ID = "mutated"

	assert.Equal(t, "1", l.Items()[0].ID)
}
