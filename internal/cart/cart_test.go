package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MGservicing/MGservice-2/internal/model"
)

type memStorage struct {
	data []byte
}

func (m *memStorage) Load() ([]byte, error) { return m.data, nil }
func (m *memStorage) Save(b []byte) error   { m.data = b; return nil }

func TestAddMergesByID(t *testing.T) {
	c := New()
	c.Add(model.CartItem{ID: "s1", Name: "Sticker", Price: 7, Quantity: 1})
	c.Add(model.CartItem{ID: "s1", Name: "Sticker", Price: 7, Quantity: 2})

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 3, c.TotalItems())
}

func TestAddBoostReplacesExistingBoost(t *testing.T) {
	c := New()
	c.Add(model.CartItem{ID: "boost-2k", Type: model.ItemTypeBoost, Price: 10, Quantity: 5})
	c.Add(model.CartItem{ID: "s1", Price: 7, Quantity: 1})
	c.Add(model.CartItem{ID: "boost-5k", Type: model.ItemTypeBoost, Price: 22.5, Quantity: 3})

	items := c.Items()
	require.Len(t, items, 2)

	var boost *model.CartItem
	for i := range items {
		if items[i].Type == model.ItemTypeBoost {
			boost = &items[i]
		}
	}
	require.NotNil(t, boost)
	assert.Equal(t, "boost-5k", boost.ID)
	assert.Equal(t, 1, boost.Quantity, "boost quantity is locked at 1")
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	c.Add(model.CartItem{ID: "s1", Price: 7, Quantity: 1})
	c.Add(model.CartItem{ID: "b1", Type: model.ItemTypeBoost, Price: 10, Quantity: 1})

	c.UpdateQuantity("s1", 4)
	c.UpdateQuantity("b1", 4)
	c.UpdateQuantity("s1", 0)

	for _, it := range c.Items() {
		switch it.ID {
		case "s1":
			assert.Equal(t, 1, it.Quantity, "quantity never drops below 1")
		case "b1":
			assert.Equal(t, 1, it.Quantity, "boost stays at 1")
		}
	}
}

func TestRemoveAndClear(t *testing.T) {
	c := New()
	c.Add(model.CartItem{ID: "s1", Price: 7, Quantity: 1})
	c.Add(model.CartItem{ID: "s2", Price: 3, Quantity: 1})

	c.Remove("s1")
	require.Len(t, c.Items(), 1)

	c.Clear()
	assert.Empty(t, c.Items())
	assert.Equal(t, 0, c.TotalItems())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := &memStorage{}

	c := New()
	c.Add(model.CartItem{ID: "s1", Name: "Sticker", Price: 7, Quantity: 2})
	c.Add(model.CartItem{ID: "boost-5k", Type: model.ItemTypeBoost, Price: 20.5, Quantity: 1, CurrentDice: "1500"})
	require.NoError(t, c.Save(st))

	restored := New()
	require.NoError(t, restored.Load(st))
	assert.Equal(t, c.Items(), restored.Items())
}

func TestLoadCorruptSnapshotYieldsEmptyCart(t *testing.T) {
	st := &memStorage{data: []byte("{not json")}

	c := New()
	c.Add(model.CartItem{ID: "s1", Price: 7, Quantity: 1})
	require.NoError(t, c.Load(st))
	assert.Empty(t, c.Items())
}

func TestLoadEmptyStorage(t *testing.T) {
	c := New()
	require.NoError(t, c.Load(&memStorage{}))
	assert.Empty(t, c.Items())
}
