package breeds

import "github.com/mrlokans/breedy/internal/entities"

// Reconcile compares the previously known breeds with a fresh network copy.
// A network breed is upserted when its id is unknown or its value changed;
// a known breed is deleted when the network no longer has its id. Both
// results keep the order of their source list.
func Reconcile(cacheList, networkList []entities.Breed) (upsert, remove []entities.Breed) {
	known := make(map[string]entities.Breed, len(cacheList))
	for _, b := range cacheList {
		known[b.ID] = b
	}
	fresh := make(map[string]struct{}, len(networkList))

	for _, b := range networkList {
		fresh[b.ID] = struct{}{}
		if prev, ok := known[b.ID]; !ok || !prev.Equal(b) {
			upsert = append(upsert, b)
		}
	}
	for _, b := range cacheList {
		if _, ok := fresh[b.ID]; !ok {
			remove = append(remove, b)
		}
	}
	return upsert, remove
}
