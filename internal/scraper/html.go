package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"classroom-status-backend/internal/schedule"
)

// subjectLinks extracts the per-subject page links from the schedule
// index page. They live in anchor tags under div.indexList.
func subjectLinks(doc *goquery.Document) []string {
	var hrefs []string
	doc.Find("div.indexList a").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if ok && href != "" && href != "#" {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}

// sectionsFromCoursePage extracts raw section records from one subject
// page. Each course is a div.courseHeader followed by a sibling table of
// sections; the table's th[scope=col] headers name the columns, and the
// LOCATION, DAYS and TIME columns carry the fields the builder needs.
func sectionsFromCoursePage(doc *goquery.Document) []schedule.Section {
	var sections []schedule.Section
	doc.Find("div.courseHeader").Each(func(_ int, header *goquery.Selection) {
		table := header.NextAllFiltered("table").First()
		if table.Length() == 0 {
			return
		}
		sections = append(sections, sectionsFromTable(table)...)
	})
	return sections
}

func sectionsFromTable(table *goquery.Selection) []schedule.Section {
	var headers []string
	table.Find(`th[scope="col"]`).Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})

	var sections []schedule.Section
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		fields := make(map[string]string, len(headers))
		row.Find("th, td").Each(func(j int, cell *goquery.Selection) {
			if j < len(headers) {
				fields[headers[j]] = strings.TrimSpace(cell.Text())
			}
		})
		sections = append(sections, schedule.Section{
			Location: fields["LOCATION"],
			Days:     fields["DAYS"],
			Time:     fields["TIME"],
		})
	})
	return sections
}
