package scraper

import (
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// errorPagePhrases are the portal's known error-page signatures. They are
// checked against the raw text before any structural parsing, since an error
// page has none of the expected elements.
var errorPagePhrases = []string{
	"The requested Document could not be retrieved.",
	"Access Denied You do not have permissions to view",
}

// wellKnownSectionNames are the five document sections with dedicated
// parsing logic. Any other section heading becomes a custom section.
var wellKnownSectionNames = map[string]struct{}{
	"Information":     {},
	"Attachments":     {},
	"Body":            {},
	"Meeting History": {},
	"Discussion":      {},
}

// emptyDiscussionText is the exact rendered text of a Discussion section
// with no comments. Anything else means the discussion feature was used.
const emptyDiscussionText = "\nDiscussion\n\n\n\nAdd Comment\n\n\nType in your comments here\n Add Comment \nComment to board only \n\n\n\n\n\n"

// meetingTimeLayout matches the portal's meeting date cells,
// eg. "Jul 15, 2019 7:00 PM"
const meetingTimeLayout = "Jan 2, 2006 3:04 PM"

// ParsedResolution is the intermediate representation of one resolution
// document before identity resolution.
type ParsedResolution struct {
	ID         int64
	Name       string
	Type       string
	Title      string
	Department string
	Category   string
	Functions  []string
	Body       *string

	CustomSections []ParsedSection
	Attachments    []ParsedAttachment
	Meetings       []ParsedMeeting
}

// ParsedSection is a narrative section outside the well-known set.
type ParsedSection struct {
	Name    string
	Content string
}

// ParsedAttachment is one linked download.
type ParsedAttachment struct {
	Path  string
	Title string
}

// ParsedMeeting is one meeting-history entry together with the raw rows of
// its paired vote-record table, oldest first in document order.
type ParsedMeeting struct {
	MeetingID *int64
	Kind      string
	Timestamp time.Time
	VoteRows  []VoteRow
}

// VoteRow is one label/value pair from a vote-record table.
type VoteRow struct {
	Label string
	Value string
}

// stripNBSP removes the non-breaking spaces the portal uses for padding.
func stripNBSP(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

// requireText returns the text of the single element matched by selector,
// or a structural error naming the element.
func requireText(doc *goquery.Document, selector string, resolutionID int64) (string, error) {
	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return "", structuralErr(resolutionID, selector, "")
	}
	return sel.First().Text(), nil
}

// ParseResolution turns one raw portal document into its intermediate
// representation. It returns ErrResolutionNotFound when the document is a
// known error page, a *StructuralError when a required element is missing
// or a document invariant is violated, and the IR otherwise. The body
// section is only extracted when includeBody is set.
func ParseResolution(raw string, resolutionID int64, includeBody bool) (*ParsedResolution, error) {
	for _, phrase := range errorPagePhrases {
		if strings.Contains(raw, phrase) {
			return nil, ErrResolutionNotFound
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, structuralErr(resolutionID, "document", err.Error())
	}

	parsed := &ParsedResolution{ID: resolutionID}

	if parsed.Name, err = requireText(doc, "div#ContentPlaceholder1_lblResNum", resolutionID); err != nil {
		return nil, err
	}
	if parsed.Type, err = requireText(doc, "div#ContentPlaceholder1_lblLegiFileType", resolutionID); err != nil {
		return nil, err
	}
	if parsed.Title, err = requireText(doc, "h1#ContentPlaceholder1_lblLegiFileTitle", resolutionID); err != nil {
		return nil, err
	}

	if err := parseCustomSections(doc, parsed); err != nil {
		return nil, err
	}
	if err := parseInformationTable(doc, parsed); err != nil {
		return nil, err
	}
	parseAttachments(doc, parsed)
	if includeBody {
		if err := parseBody(doc, parsed); err != nil {
			return nil, err
		}
	}
	if err := checkDiscussion(doc, parsed); err != nil {
		return nil, err
	}
	if err := parseMeetingHistory(doc, parsed); err != nil {
		return nil, err
	}

	return parsed, nil
}

// parseCustomSections collects every section block whose heading is not one
// of the well-known names, eg. 'Financial Impact'.
func parseCustomSections(doc *goquery.Document, parsed *ParsedResolution) error {
	var sectionErr error
	doc.Find(".LegiFileSection").EachWithBreak(func(_ int, section *goquery.Selection) bool {
		heading := section.Find("h4")
		if heading.Length() == 0 {
			sectionErr = structuralErr(parsed.ID, "LegiFileSection h4", "")
			return false
		}
		name := heading.First().Text()
		if _, wellKnown := wellKnownSectionNames[name]; wellKnown {
			return true
		}

		contents := section.Find(".LegiFileSectionContents")
		if contents.Length() == 0 {
			sectionErr = structuralErr(parsed.ID, "LegiFileSectionContents", "in section "+name)
			return false
		}
		parsed.CustomSections = append(parsed.CustomSections, ParsedSection{
			Name:    name,
			Content: strings.TrimSpace(stripNBSP(contents.First().Text())),
		})
		return true
	})
	return sectionErr
}

// parseInformationTable reads the two-column header/value table. Rows with
// empty values are skipped entirely. A header/value count mismatch is a
// non-fatal warning; the shorter prefix is still consumed.
func parseInformationTable(doc *goquery.Document, parsed *ParsedResolution) error {
	table := doc.Find("table#tblLegiFileInfo")
	if table.Length() == 0 {
		return structuralErr(parsed.ID, "table#tblLegiFileInfo", "")
	}

	headers := table.Find("th")
	values := table.Find("td")
	count := headers.Length()
	if count != values.Length() {
		log.Printf("Warning: resolution %d: information table has %d headers but %d values", parsed.ID, count, values.Length())
		if values.Length() < count {
			count = values.Length()
		}
	}

	for i := 0; i < count; i++ {
		// 'Department:' -> 'department'
		header := strings.ToLower(strings.ReplaceAll(headers.Eq(i).Text(), ":", ""))
		value := values.Eq(i).Text()
		if value == "" {
			continue
		}

		switch header {
		case "department":
			parsed.Department = value
		case "category":
			parsed.Category = value
		case "functions":
			parsed.Functions = strings.Split(value, ", ")
		case "sponsors":
			// recognized but intentionally not populated: sponsor values
			// embed free-text titles that cannot be matched by exact name
		}
	}
	return nil
}

// parseAttachments reads the optional downloads container; each link in it
// is one attachment.
func parseAttachments(doc *goquery.Document, parsed *ParsedResolution) {
	doc.Find("div#ContentPlaceholder1_divDownloads a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		parsed.Attachments = append(parsed.Attachments, ParsedAttachment{
			Path:  href,
			Title: a.Text(),
		})
	})
}

// parseBody extracts the optional full text body. Stripping non-breaking
// spaces may drop embedded non-text content; that loss is accepted.
func parseBody(doc *goquery.Document, parsed *ParsedResolution) error {
	bodySection := doc.Find("div#divBody")
	if bodySection.Length() == 0 {
		return nil
	}
	contents := bodySection.Find(".LegiFileSectionContents")
	if contents.Length() == 0 {
		return structuralErr(parsed.ID, "divBody LegiFileSectionContents", "")
	}
	body := stripNBSP(contents.First().Text())
	parsed.Body = &body
	return nil
}

// checkDiscussion verifies the required discussion container and detects
// whether the comment feature was ever used. Non-empty discussions are not
// parsed; they are logged and left alone.
func checkDiscussion(doc *goquery.Document, parsed *ParsedResolution) error {
	discussion := doc.Find("div#ContentPlaceholder1_divDiscussion")
	if discussion.Length() == 0 {
		return structuralErr(parsed.ID, "div#ContentPlaceholder1_divDiscussion", "")
	}
	if discussion.First().Text() != emptyDiscussionText {
		log.Printf("resolution %d: discussion section has content, skipping it", parsed.ID)
	}
	return nil
}

// parseMeetingHistory consumes the optional meeting-history table: a
// parallel pair of header rows and vote-record tables of equal length,
// oldest first. Each pair becomes one ParsedMeeting.
func parseMeetingHistory(doc *goquery.Document, parsed *ParsedResolution) error {
	history := doc.Find("table.LayoutTable.MeetingHistory")
	if history.Length() == 0 {
		return nil
	}

	voteTables := history.Find("table.VoteRecord")
	headerRows := history.Find("tr.HeaderRow.HistorySection")
	if voteTables.Length() != headerRows.Length() {
		return structuralErr(parsed.ID, "meeting history",
			"header row and vote record counts differ")
	}

	for i := 0; i < voteTables.Length(); i++ {
		headerRow := headerRows.Eq(i)

		group := headerRow.Find("td.Group")
		kind := headerRow.Find("td.Type")
		if group.Length() == 0 || kind.Length() == 0 {
			return structuralErr(parsed.ID, "meeting header Group/Type cells", "")
		}

		dateCell := headerRow.Find("td.Date")
		if dateCell.Length() == 0 {
			return structuralErr(parsed.ID, "meeting header Date cell", "")
		}
		// the cell pads the time with non-breaking spaces; only the leading
		// date text is meaningful
		dateText := strings.SplitN(dateCell.First().Text(), " ", 2)[0]
		timestamp, err := time.Parse(meetingTimeLayout, dateText)
		if err != nil {
			return structuralErr(parsed.ID, "meeting date", err.Error())
		}

		meeting := ParsedMeeting{
			Kind:      group.First().Text() + " - " + kind.First().Text(),
			Timestamp: timestamp,
			MeetingID: findMeetingID(dateCell),
		}

		var rowErr error
		voteTables.Eq(i).Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
			cols := tr.Find("td")
			if cols.Length() < 2 {
				rowErr = structuralErr(parsed.ID, "vote record row", "fewer than two cells")
				return false
			}
			meeting.VoteRows = append(meeting.VoteRows, VoteRow{
				Label: cols.Eq(0).Text(),
				Value: cols.Eq(1).Text(),
			})
			return true
		})
		if rowErr != nil {
			return rowErr
		}

		parsed.Meetings = append(parsed.Meetings, meeting)
	}
	return nil
}

// findMeetingID scans the date cell's links for an ID query parameter,
// taking the first match. Absence is fine; extraction is best effort.
func findMeetingID(dateCell *goquery.Selection) *int64 {
	var meetingID *int64
	dateCell.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok {
			return true
		}
		parsedURL, err := url.Parse(href)
		if err != nil {
			return true
		}
		idValue := parsedURL.Query().Get("ID")
		if idValue == "" {
			return true
		}
		id, err := strconv.ParseInt(idValue, 10, 64)
		if err != nil {
			return true
		}
		meetingID = &id
		return false
	})
	return meetingID
}
