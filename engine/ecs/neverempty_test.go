package ecs

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeverEmptyVecIsNeverEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rfont.ecs")
	defer teardown()
	//
	var v NeverEmptyVec[int]
	assert.False(t, v.IsEmpty(), "zero value")
	v.Add(7)
	assert.True(t, v.Remove(7))
	assert.Equal(t, 0, v.Len())
	assert.False(t, v.IsEmpty(), "after removing last element")
	v.Extend(1, 2, 3)
	v.Clear()
	assert.Equal(t, 0, v.Len())
	assert.False(t, v.IsEmpty(), "after clear")
}

func TestNeverEmptyVecSwapOperations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rfont.ecs")
	defer teardown()
	//
	var v NeverEmptyVec[int]
	v.Extend(1, 2, 3, 4)
	v.Insert(1, 9)
	assert.Equal(t, []int{1, 9, 3, 4, 2}, v.Values())
	v.Insert(17, 8)
	assert.Equal(t, []int{1, 9, 3, 4, 2, 8}, v.Values())
	x, ok := v.RemoveAt(0)
	require.True(t, ok)
	assert.Equal(t, 1, x)
	assert.Equal(t, []int{8, 9, 3, 4, 2}, v.Values())
	_, ok = v.RemoveAt(5)
	assert.False(t, ok)
	_, ok = v.RemoveAtStable(-1)
	assert.False(t, ok)
}

func TestNeverEmptyVecStableOperations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rfont.ecs")
	defer teardown()
	//
	var v NeverEmptyVec[int]
	v.Extend(1, 2, 3, 2)
	assert.True(t, v.Remove(2))
	assert.Equal(t, []int{1, 3, 2}, v.Values(), "only first match is removed")
	assert.False(t, v.Remove(5))
	v.InsertStable(0, 0)
	v.InsertStable(10, 10)
	assert.Equal(t, []int{0, 1, 3, 2, 10}, v.Values())
	x, ok := v.RemoveAtStable(2)
	require.True(t, ok)
	assert.Equal(t, 3, x)
	assert.Equal(t, []int{0, 1, 2, 10}, v.Values())
}

func TestNeverEmptyVecSorted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rfont.ecs")
	defer teardown()
	//
	var v NeverEmptyVec[Entity]
	v.Extend(5, 1, 4, 1)
	v.Sort()
	assert.Equal(t, []Entity{1, 1, 4, 5}, v.Values())
	v.InsertSorted(3)
	v.InsertSorted(1)
	v.InsertSorted(9)
	v.InsertSorted(0)
	assert.Equal(t, []Entity{0, 1, 1, 1, 3, 4, 5, 9}, v.Values())
}

func TestNeverEmptyVecPlace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rfont.ecs")
	defer teardown()
	//
	var v NeverEmptyVec[int]
	v.Extend(1, 2, 3, 4)
	v.Place(4, 0)
	assert.Equal(t, []int{4, 2, 3, 1}, v.Values())
	v.Place(7, 0)
	assert.Equal(t, []int{4, 2, 3, 1}, v.Values(), "placing a non-element is a no-op")
	v.PlaceMostRecent(1)
	assert.Equal(t, []int{4, 1, 3, 2}, v.Values())
	v.PlaceMostRecent(99)
	assert.Equal(t, []int{4, 1, 3, 2}, v.Values())
	var empty NeverEmptyVec[int]
	empty.PlaceMostRecent(0)
	assert.Equal(t, 0, empty.Len())
}

func TestNeverEmptyVecCapacity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rfont.ecs")
	defer teardown()
	//
	v := NewNeverEmptyVec[int](2)
	v.Reserve(10)
	assert.GreaterOrEqual(t, v.Cap(), 10)
	v.Add(1)
	v.ShrinkToFit()
	assert.Equal(t, 1, v.Cap())
	v.MapValues(func(x int) int { return x + 41 })
	assert.Equal(t, 42, v.At(0))
}

// Random sequences of operations are checked against a plain slice model.
func TestNeverEmptyVecModel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rfont.ecs")
	defer teardown()
	//
	rnd := rand.New(rand.NewSource(4711))
	var v NeverEmptyVec[int]
	var model []int
	for step := 0; step < 2000; step++ {
		x := rnd.Intn(20)
		i := rnd.Intn(len(model) + 2)
		switch rnd.Intn(8) {
		case 0, 1:
			v.Add(x)
			model = append(model, x)
		case 2:
			v.Remove(x)
			if k := slices.Index(model, x); k >= 0 {
				model = slices.Delete(model, k, k+1)
			}
		case 3:
			v.Insert(i, x)
			model = append(model, x)
			if i < len(model)-1 {
				model[i], model[len(model)-1] = model[len(model)-1], model[i]
			}
		case 4:
			v.RemoveAt(i)
			if i < len(model) {
				model[i] = model[len(model)-1]
				model = model[:len(model)-1]
			}
		case 5:
			v.InsertStable(i, x)
			if i < len(model) {
				model = slices.Insert(model, i, x)
			} else {
				model = append(model, x)
			}
		case 6:
			v.RemoveAtStable(i)
			if i < len(model) {
				model = slices.Delete(model, i, i+1)
			}
		case 7:
			if rnd.Intn(10) == 0 {
				v.Clear()
				model = model[:0]
			}
		}
		require.False(t, v.IsEmpty())
		require.Equal(t, len(model), v.Len(), "step %d", step)
		if len(model) > 0 {
			require.Equal(t, model, v.Values(), "step %d", step)
		}
	}
}
