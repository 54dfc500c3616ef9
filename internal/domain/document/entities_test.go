package document

import "testing"

func TestLatest(t *testing.T) {
	docs := []Document{
		{Type: TypeTaxID, Version: 1, OriginalFilename: "nif-old.pdf"},
		{Type: TypeIdentity, Version: 1, OriginalFilename: "bi.pdf"},
		{Type: TypeTaxID, Version: 3, OriginalFilename: "nif-new.pdf"},
		{Type: TypeTaxID, Version: 2, OriginalFilename: "nif-mid.pdf"},
	}
	got := Latest(docs)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Type != TypeIdentity || got[1].Type != TypeTaxID {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[1].Version != 3 || got[1].OriginalFilename != "nif-new.pdf" {
		t.Fatalf("latest tax id should be v3, got %+v", got[1])
	}
}

func TestMissing(t *testing.T) {
	got := Missing([]Document{{Type: TypeIdentity}, {Type: TypeLandTitle}})
	if len(got) != 2 || got[0] != TypeTaxID || got[1] != TypeBusinessPlan {
		t.Fatalf("Missing = %v", got)
	}
	if len(Missing(nil)) != 3 {
		t.Fatal("all required types missing for empty set")
	}
}

func TestType_Valid(t *testing.T) {
	if !TypeLandTitle.Valid() || Type("selfie").Valid() {
		t.Fatal("unexpected validity")
	}
	if TypeOther.Required() {
		t.Fatal("other is optional")
	}
}
