package cache

import (
	"github.com/google/uuid"
)

const (
	KeyAuthorsAll = "authors_all"
	KeyStoresAll  = "stores_all"
)

func BookDetailsKey(id uuid.UUID) string {
	return "book_details_" + id.String()
}

func StoreDetailsKey(id uuid.UUID) string {
	return "store_details_" + id.String()
}

func StoreBooksKey(id uuid.UUID) string {
	return "store_books_" + id.String()
}

// StoreKeys returns both per-store keys for every id.
func StoreKeys(ids ...uuid.UUID) []string {
	keys := make([]string, 0, 2*len(ids))
	for _, id := range ids {
		keys = append(keys, StoreDetailsKey(id), StoreBooksKey(id))
	}
	return keys
}
