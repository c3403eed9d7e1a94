package breeds

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/breedy/internal/entities"
)

func breed(id, name string) entities.Breed {
	return entities.Breed{ID: id, Name: name}
}

func TestReconcile_SelfIsNoop(t *testing.T) {
	list := []entities.Breed{breed("1", "A"), breed("2", "B"), breed("3", "C")}

	upsert, remove := Reconcile(list, list)

	assert.Empty(t, upsert)
	assert.Empty(t, remove)
}

func TestReconcile_Partitions(t *testing.T) {
	cacheOnly := []entities.Breed{breed("a1", "Gone"), breed("a2", "Also gone")}
	networkOnly := []entities.Breed{breed("b1", "New"), breed("b2", "Also new")}
	sharedEqual := []entities.Breed{breed("c1", "Same")}
	changedBefore := []entities.Breed{breed("d1", "Old name"), breed("d2", "Old too")}
	changedAfter := []entities.Breed{breed("d1", "New name"), breed("d2", "New too")}

	var cacheList, networkList []entities.Breed
	cacheList = append(cacheList, cacheOnly...)
	cacheList = append(cacheList, sharedEqual...)
	cacheList = append(cacheList, changedBefore...)
	networkList = append(networkList, networkOnly...)
	networkList = append(networkList, sharedEqual...)
	networkList = append(networkList, changedAfter...)

	upsert, remove := Reconcile(cacheList, networkList)

	assert.Equal(t, append(append([]entities.Breed{}, networkOnly...), changedAfter...), upsert)
	assert.Equal(t, cacheOnly, remove)
}

func TestReconcile_AddsNewBreed(t *testing.T) {
	cacheList := []entities.Breed{breed("1", "A")}
	networkList := []entities.Breed{breed("1", "A"), breed("2", "B")}

	upsert, remove := Reconcile(cacheList, networkList)

	assert.Equal(t, []entities.Breed{breed("2", "B")}, upsert)
	assert.Empty(t, remove)
}

func TestReconcile_RemovesMissingBreed(t *testing.T) {
	cacheList := []entities.Breed{{ID: "1"}, {ID: "2"}}
	networkList := []entities.Breed{{ID: "1"}}

	upsert, remove := Reconcile(cacheList, networkList)

	assert.Empty(t, upsert)
	assert.Equal(t, []entities.Breed{{ID: "2"}}, remove)
}

func TestReconcile_AnyFieldChangeTriggersUpsert(t *testing.T) {
	before := breed("1", "A")
	after := before
	after.Image.URL = "https://cdn.example.com/new.jpg"

	upsert, remove := Reconcile([]entities.Breed{before}, []entities.Breed{after})

	assert.Equal(t, []entities.Breed{after}, upsert)
	assert.Empty(t, remove)
}

func TestReconcile_EmptyInputs(t *testing.T) {
	upsert, remove := Reconcile(nil, nil)
	assert.Empty(t, upsert)
	assert.Empty(t, remove)

	upsert, remove = Reconcile(nil, []entities.Breed{breed("1", "A")})
	assert.Len(t, upsert, 1)
	assert.Empty(t, remove)

	upsert, remove = Reconcile([]entities.Breed{breed("1", "A")}, nil)
	assert.Empty(t, upsert)
	assert.Len(t, remove, 1)
}
