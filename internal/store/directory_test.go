package store

import "testing"

func TestGetStoreByID(t *testing.T) {
	t.Run("Known", func(t *testing.T) {
		s, ok := GetStoreByID("store-002")
		if !ok {
			t.Fatal("Expected store-002 to exist")
		}
		if s.Name != "Green Basket" {
			t.Errorf("Expected name 'Green Basket', got '%s'", s.Name)
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		if _, ok := GetStoreByID("nope"); ok {
			t.Error("Expected unknown store lookup to fail")
		}
	})
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("store-001"); got != "FreshMart" {
		t.Errorf("Expected 'FreshMart', got '%s'", got)
	}
	if got := DisplayName("store-999"); got != "store-999" {
		t.Errorf("Expected raw id fallback 'store-999', got '%s'", got)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	stores := All()
	stores[0].Name = "Mutated"
	if DisplayName("store-001") != "FreshMart" {
		t.Error("Expected All to return a copy of the directory")
	}
	if len(IDs()) != len(stores) {
		t.Errorf("Expected %d ids, got %d", len(stores), len(IDs()))
	}
}
