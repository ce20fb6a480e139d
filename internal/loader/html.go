package loader

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// readHTML extracts the rows of the first table matching selector. The
// first row holding cells is the header. Further rows inside <thead> are
// skipped.
func readHTML(r io.Reader, selector string) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	if selector == "" {
		selector = "table"
	}
	table := doc.Find(selector).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no table matches %q", selector)
	}

	var records [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) == 0 {
			return
		}
		if len(records) > 0 && tr.ParentsFiltered("thead").Length() > 0 {
			return
		}
		records = append(records, cells)
	})
	return records, nil
}
