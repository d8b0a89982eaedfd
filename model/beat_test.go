package model

import (
	"testing"

	"musicmanager/errs"
)

func TestBeatValidate(t *testing.T) {
	cases := []struct {
		name    string
		beat    Beat
		wantErr bool
	}{
		{"valid", Beat{Name: "Night Drive", Author: "DJ Test", BPM: "128"}, false},
		{"missing name", Beat{Author: "DJ Test", BPM: "128"}, true},
		{"missing author", Beat{Name: "Night Drive", BPM: "128"}, true},
		{"missing bpm", Beat{Name: "Night Drive", Author: "DJ Test"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.beat.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errs.IsCode(err, errs.CodeValidation) {
				t.Errorf("expected validation code, got %v", err)
			}
		})
	}
}

func TestBeatUpdateApplyMergesOnlySuppliedFields(t *testing.T) {
	b := Beat{ID: 5, Name: "Night Drive", Author: "DJ Test", BPM: "120", Length: "2:45"}

	upd := BeatUpdate{BPM: strPtr("128")}
	upd.Apply(&b)

	if b.BPM != "128" {
		t.Errorf("bpm not updated: %q", b.BPM)
	}
	if b.ID != 5 || b.Name != "Night Drive" || b.Author != "DJ Test" || b.Length != "2:45" {
		t.Errorf("omitted fields changed: %+v", b)
	}
}
