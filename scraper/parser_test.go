package scraper

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// samplePage mirrors the structure of a portal LegiFile detail page: header
// fields, section blocks, the information table, downloads, discussion, and
// a two-meeting history with paired vote records.
const samplePage = `<!DOCTYPE html>
<html><body>
<div id="ContentPlaceholder1_lblResNum">2019-456</div>
<div id="ContentPlaceholder1_lblLegiFileType">Resolution</div>
<h1 id="ContentPlaceholder1_lblLegiFileTitle">Authorize Purchase of Highway Equipment</h1>

<div class="LegiFileSection">
  <h4>Information</h4>
  <div class="LegiFileSectionContents">
    <table id="tblLegiFileInfo">
      <tr><th>Department:</th><td>Highway</td></tr>
      <tr><th>Category:</th><td>Equipment</td></tr>
      <tr><th>Functions:</th><td>Zoning, Budget</td></tr>
      <tr><th>Sponsors:</th><td>Councilmember Jill Omalley</td></tr>
      <tr><th>Review:</th><td></td></tr>
    </table>
  </div>
</div>

<div class="LegiFileSection">
  <h4>Financial Impact</h4>
  <div class="LegiFileSectionContents">&nbsp;Estimated cost of $120,000.&nbsp;</div>
</div>

<div class="LegiFileSection">
  <h4>Body</h4>
  <div id="divBody">
    <div class="LegiFileSectionContents">WHEREAS,&nbsp;the Town Board requires new equipment</div>
  </div>
</div>

<div id="ContentPlaceholder1_divDownloads">
  <a href="/Citizens/FileOpen.aspx?Type=4&ID=12010">Exhibit 10</a>
  <a href="/Citizens/FileOpen.aspx?Type=4&ID=12002">Exhibit 2</a>
</div>

<div id="ContentPlaceholder1_divDiscussion">Discussion</div>

<table class="LayoutTable MeetingHistory">
  <tr class="HeaderRow HistorySection">
    <td class="Date">Jul 15, 2019 7:00 PM&nbsp;<a href="/Citizens/Detail_Meeting.aspx?ID=2145&Type=1">Town Board</a></td>
    <td class="Group">Town Board</td>
    <td class="Type">Regular Meeting</td>
  </tr>
  <tr><td>
    <table class="VoteRecord">
      <tr><td>Result:</td><td>Passed</td></tr>
      <tr><td>Mover:</td><td>Smith, Councilmember</td></tr>
      <tr><td>Seconder:</td><td>Jones, Councilmember</td></tr>
      <tr><td>Aye:</td><td>Smith, Jones, Kulpa</td></tr>
      <tr><td>Nay:</td><td>Marinelli</td></tr>
    </table>
  </td></tr>
  <tr class="HeaderRow HistorySection">
    <td class="Date">Aug 5, 2019 6:30 PM&nbsp;</td>
    <td class="Group">Town Board</td>
    <td class="Type">Special Meeting</td>
  </tr>
  <tr><td>
    <table class="VoteRecord">
      <tr><td>Result:</td><td>Passed</td></tr>
      <tr><td>Mover:</td><td>Jones, Councilmember</td></tr>
      <tr><td>Aye:</td><td>Smith, Jones</td></tr>
      <tr><td>Absent:</td><td></td></tr>
    </table>
  </td></tr>
</table>
</body></html>`

const errorPage = `<html><body>Access Denied You do not have permissions to view this record</body></html>`

func TestParseResolutionErrorPage(t *testing.T) {
	_, err := ParseResolution(errorPage, 101, true)
	if !errors.Is(err, ErrResolutionNotFound) {
		t.Fatalf("expected ErrResolutionNotFound, got %v", err)
	}
}

func TestParseResolutionHeaderFields(t *testing.T) {
	parsed, err := ParseResolution(samplePage, 29176, true)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if parsed.Name != "2019-456" {
		t.Errorf("expected name 2019-456, got %q", parsed.Name)
	}
	if parsed.Type != "Resolution" {
		t.Errorf("expected type Resolution, got %q", parsed.Type)
	}
	if parsed.Title != "Authorize Purchase of Highway Equipment" {
		t.Errorf("expected title, got %q", parsed.Title)
	}
	if parsed.Department != "Highway" || parsed.Category != "Equipment" {
		t.Errorf("unexpected department/category: %q / %q", parsed.Department, parsed.Category)
	}
}

func TestParseResolutionMissingRequiredElement(t *testing.T) {
	page := strings.Replace(samplePage, `id="ContentPlaceholder1_lblResNum"`, `id="somethingElse"`, 1)

	_, err := ParseResolution(page, 29176, true)
	var structural *StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("expected StructuralError, got %v", err)
	}
	if structural.ResolutionID != 29176 {
		t.Errorf("expected resolution id 29176 in error, got %d", structural.ResolutionID)
	}
	if !strings.Contains(structural.Element, "lblResNum") {
		t.Errorf("expected error to name the missing element, got %q", structural.Element)
	}
}

func TestParseResolutionCustomSections(t *testing.T) {
	parsed, err := ParseResolution(samplePage, 29176, true)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(parsed.CustomSections) != 1 {
		t.Fatalf("expected exactly one custom section, got %d", len(parsed.CustomSections))
	}
	section := parsed.CustomSections[0]
	if section.Name != "Financial Impact" {
		t.Errorf("expected section name Financial Impact, got %q", section.Name)
	}
	// non-breaking spaces stripped, surrounding whitespace trimmed
	if section.Content != "Estimated cost of $120,000." {
		t.Errorf("unexpected section content %q", section.Content)
	}
}

func TestParseResolutionFunctionsSplit(t *testing.T) {
	parsed, err := ParseResolution(samplePage, 29176, true)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(parsed.Functions) != 2 || parsed.Functions[0] != "Zoning" || parsed.Functions[1] != "Budget" {
		t.Errorf("expected functions [Zoning Budget], got %v", parsed.Functions)
	}
}

func TestParseResolutionAttachments(t *testing.T) {
	parsed, err := ParseResolution(samplePage, 29176, true)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(parsed.Attachments) != 2 {
		t.Fatalf("expected 2 attachments, got %d", len(parsed.Attachments))
	}
	if parsed.Attachments[0].Title != "Exhibit 10" {
		t.Errorf("unexpected attachment title %q", parsed.Attachments[0].Title)
	}
	if !strings.Contains(parsed.Attachments[0].Path, "FileOpen.aspx") {
		t.Errorf("unexpected attachment path %q", parsed.Attachments[0].Path)
	}
}

func TestParseResolutionBody(t *testing.T) {
	parsed, err := ParseResolution(samplePage, 29176, true)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed.Body == nil {
		t.Fatal("expected body to be extracted")
	}
	if strings.Contains(*parsed.Body, " ") {
		t.Error("expected non-breaking spaces to be stripped from body")
	}
	if !strings.Contains(*parsed.Body, "WHEREAS,the Town Board") {
		t.Errorf("unexpected body %q", *parsed.Body)
	}

	withoutBody, err := ParseResolution(samplePage, 29176, false)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if withoutBody.Body != nil {
		t.Error("expected body to be skipped when not requested")
	}
}

func TestParseResolutionMeetingHistory(t *testing.T) {
	parsed, err := ParseResolution(samplePage, 29176, true)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(parsed.Meetings) != 2 {
		t.Fatalf("expected 2 meetings, got %d", len(parsed.Meetings))
	}

	first := parsed.Meetings[0]
	if first.Kind != "Town Board - Regular Meeting" {
		t.Errorf("unexpected meeting kind %q", first.Kind)
	}
	want := time.Date(2019, time.July, 15, 19, 0, 0, 0, time.UTC)
	if !first.Timestamp.Equal(want) {
		t.Errorf("expected timestamp %v, got %v", want, first.Timestamp)
	}
	if first.MeetingID == nil || *first.MeetingID != 2145 {
		t.Errorf("expected meeting id 2145, got %v", first.MeetingID)
	}
	if len(first.VoteRows) != 5 {
		t.Errorf("expected 5 vote rows, got %d", len(first.VoteRows))
	}

	second := parsed.Meetings[1]
	if second.MeetingID != nil {
		t.Errorf("expected absent meeting id, got %v", *second.MeetingID)
	}
	if second.Kind != "Town Board - Special Meeting" {
		t.Errorf("unexpected meeting kind %q", second.Kind)
	}
}

func TestParseResolutionMeetingVotePairingMismatch(t *testing.T) {
	// drop one vote record; the parallel arrays are no longer equal length
	page := strings.Replace(samplePage, `class="VoteRecord"`, `class="SomethingElse"`, 1)

	_, err := ParseResolution(page, 29176, true)
	var structural *StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("expected StructuralError for pairing mismatch, got %v", err)
	}
}

func TestParseResolutionNoMeetingHistory(t *testing.T) {
	page := strings.Replace(samplePage, `class="LayoutTable MeetingHistory"`, `class="LayoutTable"`, 1)

	parsed, err := ParseResolution(page, 29176, true)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(parsed.Meetings) != 0 {
		t.Errorf("expected no meetings, got %d", len(parsed.Meetings))
	}
}
