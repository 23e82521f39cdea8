package pipeline

import (
	"testing"

	"agrisight/internal"
	"agrisight/internal/catalog"
)

func TestClassify(t *testing.T) {
	cat := catalog.New()
	cat.Add("Adama", []string{"Agas 250gms"})
	index := cat.ReverseIndex()

	cases := []struct {
		name string
		want string
	}{
		{"Agas 250gms", "Adama"},
		{"  Agas 250gms  ", "Adama"},
		{"agas 250gms", internal.OtherCompany},
		{"Unknown Product", internal.OtherCompany},
		{"", internal.OtherCompany},
	}
	for _, tc := range cases {
		if got := Classify(tc.name, index); got != tc.want {
			t.Fatalf("Classify(%q)=%q want %q", tc.name, got, tc.want)
		}
	}
}

func TestClassifySalesRowsDoesNotMutateInput(t *testing.T) {
	in := []internal.SalesRow{{Name: "Agas 250gms"}}
	out := ClassifySalesRows(in, map[string]string{"Agas 250gms": "Adama"})

	if in[0].Company != "" {
		t.Fatalf("input mutated: %+v", in[0])
	}
	if out[0].Company != "Adama" {
		t.Fatalf("company=%q", out[0].Company)
	}
}
