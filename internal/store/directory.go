package store

// FallbackStoreID is used when a user has not selected any store.
const FallbackStoreID = "store-001"

// Store is a grocery store the planner can buy from.
type Store struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Chain   string `json:"chain"`
	Address string `json:"address"`
	City    string `json:"city"`
}

var directory = []Store{
	{ID: "store-001", Name: "FreshMart", Chain: "FreshMart", Address: "120 Market St", City: "Springfield"},
	{ID: "store-002", Name: "Green Basket", Chain: "Green Basket", Address: "48 Orchard Ave", City: "Springfield"},
	{ID: "store-003", Name: "ValueFoods", Chain: "ValueFoods", Address: "9 Depot Rd", City: "Springfield"},
	{ID: "store-004", Name: "Corner Grocer", Chain: "Independent", Address: "301 Elm St", City: "Shelbyville"},
	{ID: "store-005", Name: "Harbor Foods", Chain: "Harbor Foods", Address: "77 Pier Blvd", City: "Shelbyville"},
}

// All returns a copy of every known store.
func All() []Store {
	out := make([]Store, len(directory))
	copy(out, directory)
	return out
}

// GetStoreByID looks up a store in the directory.
func GetStoreByID(id string) (Store, bool) {
	for _, s := range directory {
		if s.ID == id {
			return s, true
		}
	}
	return Store{}, false
}

// DisplayName resolves a store id to its name, falling back to the raw id.
func DisplayName(id string) string {
	if s, ok := GetStoreByID(id); ok {
		return s.Name
	}
	return id
}

// IDs returns the ids of every known store, in directory order.
func IDs() []string {
	ids := make([]string, 0, len(directory))
	for _, s := range directory {
		ids = append(ids, s.ID)
	}
	return ids
}
