package scraper

import (
	"reflect"
	"testing"
)

func TestNormalizeVoteRecord(t *testing.T) {
	rows := []VoteRow{
		{Label: "Result:", Value: "Passed"},
		{Label: "Mover:", Value: "Smith, Councilmember"},
		{Label: "Seconder:", Value: "Jones, Councilmember"},
		{Label: "Aye:", Value: "Smith, Jones, Kulpa"},
		{Label: "Nay:", Value: "Marinelli"},
		{Label: "Absent:", Value: ""},
	}

	vote := NormalizeVoteRecord(rows)

	if vote.Result != "Passed" {
		t.Errorf("expected result Passed, got %q", vote.Result)
	}
	// the title token after the comma is discarded
	if vote.Mover != "Smith" {
		t.Errorf("expected mover Smith, got %q", vote.Mover)
	}
	if _, ok := vote.ByType["seconder"]; ok {
		t.Error("seconder must not become a vote-type bucket")
	}

	if !reflect.DeepEqual(vote.TypeOrder, []string{"aye", "nay", "absent"}) {
		t.Errorf("unexpected label order %v", vote.TypeOrder)
	}
	if !reflect.DeepEqual(vote.ByType["aye"], []string{"Smith", "Jones", "Kulpa"}) {
		t.Errorf("unexpected aye voters %v", vote.ByType["aye"])
	}
	if !reflect.DeepEqual(vote.ByType["nay"], []string{"Marinelli"}) {
		t.Errorf("unexpected nay voters %v", vote.ByType["nay"])
	}
	if len(vote.ByType["absent"]) != 0 {
		t.Errorf("expected empty absent bucket, got %v", vote.ByType["absent"])
	}
}

func TestNormalizeVoteRecordLabelCasing(t *testing.T) {
	vote := NormalizeVoteRecord([]VoteRow{
		{Label: "RESULT:", Value: "Failed"},
		{Label: "AYE:", Value: "Smith"},
	})

	if vote.Result != "Failed" {
		t.Errorf("expected upper-cased result label to be recognized, got result %q", vote.Result)
	}
	if !reflect.DeepEqual(vote.ByType["aye"], []string{"Smith"}) {
		t.Errorf("expected lower-cased bucket 'aye', got %v", vote.ByType)
	}
}

func TestNormalizeVoteRecordDuplicateLabelLastWriteWins(t *testing.T) {
	vote := NormalizeVoteRecord([]VoteRow{
		{Label: "Aye:", Value: "Smith, Jones"},
		{Label: "Aye:", Value: "Kulpa"},
	})

	if !reflect.DeepEqual(vote.ByType["aye"], []string{"Kulpa"}) {
		t.Errorf("expected later occurrence to overwrite the bucket, got %v", vote.ByType["aye"])
	}
	if !reflect.DeepEqual(vote.TypeOrder, []string{"aye"}) {
		t.Errorf("expected single label entry, got %v", vote.TypeOrder)
	}
}

func TestNormalizeVoteRecordEmptyMover(t *testing.T) {
	vote := NormalizeVoteRecord([]VoteRow{
		{Label: "Mover:", Value: "Smith"},
	})
	if vote.Mover != "Smith" {
		t.Errorf("expected bare mover name kept as-is, got %q", vote.Mover)
	}
}
